package memory

import (
	"context"
	"sync"

	"github.com/ftbarchive/show-stats/internal/domain/matchevent"
)

type MatchEventRepository struct {
	mu      sync.RWMutex
	goals   []matchevent.Goal
	assists []matchevent.Assist
	// seasonByMatch resolves which season a goal or assist belongs to.
	seasonByMatch map[int64]int64
}

func NewMatchEventRepository(goals []matchevent.Goal, assists []matchevent.Assist, seasonByMatch map[int64]int64) *MatchEventRepository {
	goalsCopy := make([]matchevent.Goal, len(goals))
	copy(goalsCopy, goals)
	assistsCopy := make([]matchevent.Assist, len(assists))
	copy(assistsCopy, assists)

	seasons := make(map[int64]int64, len(seasonByMatch))
	for matchID, seasonID := range seasonByMatch {
		seasons[matchID] = seasonID
	}

	return &MatchEventRepository{
		goals:         goalsCopy,
		assists:       assistsCopy,
		seasonByMatch: seasons,
	}
}

func (r *MatchEventRepository) ListGoalsByMatch(_ context.Context, matchID int64) ([]matchevent.Goal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]matchevent.Goal, 0)
	for _, item := range r.goals {
		if item.MatchID == matchID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *MatchEventRepository) ListAssistsByMatch(_ context.Context, matchID int64) ([]matchevent.Assist, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]matchevent.Assist, 0)
	for _, item := range r.assists {
		if item.MatchID == matchID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *MatchEventRepository) CountGoalsByPlayer(_ context.Context, seasonID int64) (map[int64]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[int64]int)
	for _, item := range r.goals {
		if r.seasonByMatch[item.MatchID] == seasonID {
			out[item.PlayerID]++
		}
	}
	return out, nil
}

func (r *MatchEventRepository) CountAssistsByPlayer(_ context.Context, seasonID int64) (map[int64]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[int64]int)
	for _, item := range r.assists {
		if r.seasonByMatch[item.MatchID] == seasonID {
			out[item.PlayerID]++
		}
	}
	return out, nil
}
