package participation

import "context"

type Repository interface {
	ListBySeason(ctx context.Context, seasonID int64) ([]Participation, error)
	ListByPlayerAndSeason(ctx context.Context, playerID, seasonID int64) ([]Participation, error)
}
