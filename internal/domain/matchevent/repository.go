package matchevent

import "context"

// Repository exposes read-only event counts used by aggregation and by the
// consistency validator's participation cross-check.
type Repository interface {
	ListGoalsByMatch(ctx context.Context, matchID int64) ([]Goal, error)
	ListAssistsByMatch(ctx context.Context, matchID int64) ([]Assist, error)
	// CountGoalsByPlayer returns per-player goal counts over one season.
	CountGoalsByPlayer(ctx context.Context, seasonID int64) (map[int64]int, error)
	// CountAssistsByPlayer returns per-player assist counts over one season.
	CountAssistsByPlayer(ctx context.Context, seasonID int64) (map[int64]int, error)
}
