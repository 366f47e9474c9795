package cache

import (
	"context"
	"testing"
	"time"

	"github.com/ftbarchive/show-stats/internal/domain/match"
	basecache "github.com/ftbarchive/show-stats/internal/platform/cache"
)

type countingMatchRepo struct {
	matches map[int64]match.Match
	calls   int
}

func (r *countingMatchRepo) GetByID(_ context.Context, matchID int64) (match.Match, bool, error) {
	r.calls++
	m, ok := r.matches[matchID]
	return m, ok, nil
}

func (r *countingMatchRepo) ListBySeason(_ context.Context, seasonID int64) ([]match.Match, error) {
	r.calls++
	var out []match.Match
	for _, m := range r.matches {
		if m.SeasonID == seasonID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *countingMatchRepo) ListByTeamAndSeason(_ context.Context, teamID, seasonID int64) ([]match.Match, error) {
	r.calls++
	var out []match.Match
	for _, m := range r.matches {
		if m.SeasonID == seasonID && (m.HomeTeamID == teamID || m.AwayTeamID == teamID) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *countingMatchRepo) ListBetweenTeams(_ context.Context, teamAID, teamBID int64) ([]match.Match, error) {
	r.calls++
	var out []match.Match
	for _, m := range r.matches {
		if (m.HomeTeamID == teamAID && m.AwayTeamID == teamBID) || (m.HomeTeamID == teamBID && m.AwayTeamID == teamAID) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *countingMatchRepo) ListSeasonIDs(_ context.Context) ([]int64, error) {
	r.calls++
	seen := map[int64]bool{}
	var out []int64
	for _, m := range r.matches {
		if !seen[m.SeasonID] {
			seen[m.SeasonID] = true
			out = append(out, m.SeasonID)
		}
	}
	return out, nil
}

func TestMatchRepositoryReadThrough(t *testing.T) {
	t.Parallel()

	next := &countingMatchRepo{matches: map[int64]match.Match{
		1: {ID: 1, SeasonID: 7, HomeTeamID: 1, AwayTeamID: 2, Status: match.StatusCompleted},
	}}
	repo := NewMatchRepository(next, basecache.NewStore(time.Minute))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		m, ok, err := repo.GetByID(ctx, 1)
		if err != nil {
			t.Fatalf("GetByID: %v", err)
		}
		if !ok || m.ID != 1 {
			t.Fatalf("unexpected result: %+v exists=%t", m, ok)
		}
	}
	if next.calls != 1 {
		t.Fatalf("expected a single backing load, got %d", next.calls)
	}
}

func TestMatchRepositoryCachesMisses(t *testing.T) {
	t.Parallel()

	next := &countingMatchRepo{matches: map[int64]match.Match{}}
	repo := NewMatchRepository(next, basecache.NewStore(time.Minute))
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, ok, err := repo.GetByID(ctx, 99); err != nil || ok {
			t.Fatalf("expected clean miss, exists=%t err=%v", ok, err)
		}
	}
	if next.calls != 1 {
		t.Fatalf("misses must be cached too, got %d loads", next.calls)
	}
}

func TestMatchRepositoryPairKeyIsOrderless(t *testing.T) {
	t.Parallel()

	next := &countingMatchRepo{matches: map[int64]match.Match{
		1: {ID: 1, SeasonID: 7, HomeTeamID: 2, AwayTeamID: 5, Status: match.StatusCompleted},
	}}
	repo := NewMatchRepository(next, basecache.NewStore(time.Minute))
	ctx := context.Background()

	if _, err := repo.ListBetweenTeams(ctx, 5, 2); err != nil {
		t.Fatalf("ListBetweenTeams: %v", err)
	}
	if _, err := repo.ListBetweenTeams(ctx, 2, 5); err != nil {
		t.Fatalf("ListBetweenTeams swapped: %v", err)
	}
	if next.calls != 1 {
		t.Fatalf("swapped team order must share a cache entry, got %d loads", next.calls)
	}
}
