package standing

import "context"

type Repository interface {
	ListBySeason(ctx context.Context, seasonID int64) ([]Row, error)
	ListAll(ctx context.Context) ([]Row, error)
	// ReplaceSeason swaps the season's rows atomically: delete then insert in
	// one transaction.
	ReplaceSeason(ctx context.Context, seasonID int64, rows []Row) error
	ReplaceAll(ctx context.Context, rows []Row) error
}
