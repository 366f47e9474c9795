package memory

import (
	"context"
	"sync"

	"github.com/ftbarchive/show-stats/internal/domain/seasonstats"
)

type PlayerStatsRepository struct {
	mu   sync.RWMutex
	rows []seasonstats.PlayerRow
}

func NewPlayerStatsRepository(rows []seasonstats.PlayerRow) *PlayerStatsRepository {
	out := make([]seasonstats.PlayerRow, len(rows))
	copy(out, rows)
	return &PlayerStatsRepository{rows: out}
}

func (r *PlayerStatsRepository) ListBySeason(_ context.Context, seasonID int64) ([]seasonstats.PlayerRow, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]seasonstats.PlayerRow, 0)
	for _, item := range r.rows {
		if item.SeasonID == seasonID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *PlayerStatsRepository) ListAll(_ context.Context) ([]seasonstats.PlayerRow, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]seasonstats.PlayerRow, len(r.rows))
	copy(out, r.rows)
	return out, nil
}

func (r *PlayerStatsRepository) ReplaceSeason(_ context.Context, seasonID int64, rows []seasonstats.PlayerRow) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := make([]seasonstats.PlayerRow, 0, len(r.rows)+len(rows))
	for _, item := range r.rows {
		if item.SeasonID != seasonID {
			kept = append(kept, item)
		}
	}
	kept = append(kept, rows...)
	r.rows = kept
	return nil
}

func (r *PlayerStatsRepository) ReplaceAll(_ context.Context, rows []seasonstats.PlayerRow) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]seasonstats.PlayerRow, len(rows))
	copy(out, rows)
	r.rows = out
	return nil
}

type TeamStatsRepository struct {
	mu   sync.RWMutex
	rows []seasonstats.TeamRow
}

func NewTeamStatsRepository(rows []seasonstats.TeamRow) *TeamStatsRepository {
	out := make([]seasonstats.TeamRow, len(rows))
	copy(out, rows)
	return &TeamStatsRepository{rows: out}
}

func (r *TeamStatsRepository) ListBySeason(_ context.Context, seasonID int64) ([]seasonstats.TeamRow, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]seasonstats.TeamRow, 0)
	for _, item := range r.rows {
		if item.SeasonID == seasonID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *TeamStatsRepository) ListAll(_ context.Context) ([]seasonstats.TeamRow, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]seasonstats.TeamRow, len(r.rows))
	copy(out, r.rows)
	return out, nil
}

func (r *TeamStatsRepository) ReplaceSeason(_ context.Context, seasonID int64, rows []seasonstats.TeamRow) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := make([]seasonstats.TeamRow, 0, len(r.rows)+len(rows))
	for _, item := range r.rows {
		if item.SeasonID != seasonID {
			kept = append(kept, item)
		}
	}
	kept = append(kept, rows...)
	r.rows = kept
	return nil
}

func (r *TeamStatsRepository) ReplaceAll(_ context.Context, rows []seasonstats.TeamRow) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]seasonstats.TeamRow, len(rows))
	copy(out, rows)
	r.rows = out
	return nil
}
