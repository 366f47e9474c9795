package seasonstats

import "context"

type PlayerRepository interface {
	ListBySeason(ctx context.Context, seasonID int64) ([]PlayerRow, error)
	ListAll(ctx context.Context) ([]PlayerRow, error)
	ReplaceSeason(ctx context.Context, seasonID int64, rows []PlayerRow) error
	ReplaceAll(ctx context.Context, rows []PlayerRow) error
}

type TeamRepository interface {
	ListBySeason(ctx context.Context, seasonID int64) ([]TeamRow, error)
	ListAll(ctx context.Context) ([]TeamRow, error)
	ReplaceSeason(ctx context.Context, seasonID int64, rows []TeamRow) error
	ReplaceAll(ctx context.Context, rows []TeamRow) error
}
