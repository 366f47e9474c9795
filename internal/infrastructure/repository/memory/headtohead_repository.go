package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/ftbarchive/show-stats/internal/domain/headtohead"
)

type HeadToHeadRepository struct {
	mu   sync.RWMutex
	rows map[headtohead.PairKey]headtohead.PairStats
}

func NewHeadToHeadRepository(rows []headtohead.PairStats) *HeadToHeadRepository {
	byKey := make(map[headtohead.PairKey]headtohead.PairStats, len(rows))
	for _, item := range rows {
		byKey[item.Key] = item
	}
	return &HeadToHeadRepository{rows: byKey}
}

func (r *HeadToHeadRepository) Get(_ context.Context, key headtohead.PairKey) (headtohead.PairStats, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats, ok := r.rows[key]
	return stats, ok, nil
}

func (r *HeadToHeadRepository) List(_ context.Context, limit int) ([]headtohead.PairStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]headtohead.PairStats, 0, len(r.rows))
	for _, item := range r.rows {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Key.SmallID != out[j].Key.SmallID {
			return out[i].Key.SmallID < out[j].Key.SmallID
		}
		return out[i].Key.LargeID < out[j].Key.LargeID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *HeadToHeadRepository) UpsertPairs(_ context.Context, rows []headtohead.PairStats) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range rows {
		r.rows[item.Key] = item
	}
	return nil
}

func (r *HeadToHeadRepository) ReplaceAll(_ context.Context, rows []headtohead.PairStats) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	byKey := make(map[headtohead.PairKey]headtohead.PairStats, len(rows))
	for _, item := range rows {
		byKey[item.Key] = item
	}
	r.rows = byKey
	return nil
}
