package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/ftbarchive/show-stats/internal/domain/match"
)

type MatchRepository struct {
	mu      sync.RWMutex
	matches []match.Match
}

func NewMatchRepository(matches []match.Match) *MatchRepository {
	out := make([]match.Match, len(matches))
	copy(out, matches)
	return &MatchRepository{matches: out}
}

func (r *MatchRepository) GetByID(_ context.Context, matchID int64) (match.Match, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.matches {
		if item.ID == matchID {
			return item, true, nil
		}
	}
	return match.Match{}, false, nil
}

func (r *MatchRepository) ListBySeason(_ context.Context, seasonID int64) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]match.Match, 0)
	for _, item := range r.matches {
		if item.SeasonID == seasonID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *MatchRepository) ListByTeamAndSeason(_ context.Context, teamID, seasonID int64) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]match.Match, 0)
	for _, item := range r.matches {
		if item.SeasonID == seasonID && item.Involves(teamID) {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *MatchRepository) ListBetweenTeams(_ context.Context, teamAID, teamBID int64) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]match.Match, 0)
	for _, item := range r.matches {
		if item.Involves(teamAID) && item.Involves(teamBID) {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *MatchRepository) ListSeasonIDs(_ context.Context) ([]int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[int64]struct{})
	out := make([]int64, 0)
	for _, item := range r.matches {
		if _, ok := seen[item.SeasonID]; ok {
			continue
		}
		seen[item.SeasonID] = struct{}{}
		out = append(out, item.SeasonID)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}
