package memory

import (
	"context"
	"sync"

	"github.com/ftbarchive/show-stats/internal/domain/participation"
)

type ParticipationRepository struct {
	mu    sync.RWMutex
	items []participation.Participation
}

func NewParticipationRepository(items []participation.Participation) *ParticipationRepository {
	out := make([]participation.Participation, len(items))
	copy(out, items)
	return &ParticipationRepository{items: out}
}

func (r *ParticipationRepository) ListBySeason(_ context.Context, seasonID int64) ([]participation.Participation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]participation.Participation, 0)
	for _, item := range r.items {
		if item.SeasonID == seasonID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *ParticipationRepository) ListByPlayerAndSeason(_ context.Context, playerID, seasonID int64) ([]participation.Participation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]participation.Participation, 0)
	for _, item := range r.items {
		if item.SeasonID == seasonID && item.PlayerID == playerID {
			out = append(out, item)
		}
	}
	return out, nil
}
