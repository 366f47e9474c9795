package memory

import (
	"context"
	"sync"

	"github.com/ftbarchive/show-stats/internal/domain/standing"
)

type StandingRepository struct {
	mu   sync.RWMutex
	rows []standing.Row
}

func NewStandingRepository(rows []standing.Row) *StandingRepository {
	out := make([]standing.Row, len(rows))
	copy(out, rows)
	return &StandingRepository{rows: out}
}

func (r *StandingRepository) ListBySeason(_ context.Context, seasonID int64) ([]standing.Row, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]standing.Row, 0)
	for _, item := range r.rows {
		if item.SeasonID == seasonID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *StandingRepository) ListAll(_ context.Context) ([]standing.Row, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]standing.Row, len(r.rows))
	copy(out, r.rows)
	return out, nil
}

func (r *StandingRepository) ReplaceSeason(_ context.Context, seasonID int64, rows []standing.Row) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := make([]standing.Row, 0, len(r.rows)+len(rows))
	for _, item := range r.rows {
		if item.SeasonID != seasonID {
			kept = append(kept, item)
		}
	}
	kept = append(kept, rows...)
	r.rows = kept
	return nil
}

func (r *StandingRepository) ReplaceAll(_ context.Context, rows []standing.Row) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]standing.Row, len(rows))
	copy(out, rows)
	r.rows = out
	return nil
}

// Mutate applies fn to every stored row matching the key. It exists so tests
// and tooling can corrupt a persisted aggregate deliberately.
func (r *StandingRepository) Mutate(teamID, seasonID int64, fn func(*standing.Row)) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for idx := range r.rows {
		if r.rows[idx].TeamID == teamID && r.rows[idx].SeasonID == seasonID {
			fn(&r.rows[idx])
		}
	}
}
