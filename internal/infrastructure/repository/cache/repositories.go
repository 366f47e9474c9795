package cache

import (
	"context"
	"strconv"

	"github.com/ftbarchive/show-stats/internal/domain/match"
	basecache "github.com/ftbarchive/show-stats/internal/platform/cache"
)

// MatchRepository is a read-through cache over the match store. Matches are
// written by admin tooling outside this service, so short TTLs are safe.
type MatchRepository struct {
	next  match.Repository
	cache *basecache.Store
}

func NewMatchRepository(next match.Repository, cache *basecache.Store) *MatchRepository {
	return &MatchRepository{next: next, cache: cache}
}

type cachedMatchByID struct {
	value  match.Match
	exists bool
}

func (r *MatchRepository) GetByID(ctx context.Context, matchID int64) (match.Match, bool, error) {
	key := "match:id:" + strconv.FormatInt(matchID, 10)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, matchID)
		if err != nil {
			return nil, err
		}
		return cachedMatchByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return match.Match{}, false, err
	}

	cached, _ := v.(cachedMatchByID)
	return cached.value, cached.exists, nil
}

func (r *MatchRepository) ListBySeason(ctx context.Context, seasonID int64) ([]match.Match, error) {
	key := "match:season:" + strconv.FormatInt(seasonID, 10)
	return r.loadList(ctx, key, func(ctx context.Context) ([]match.Match, error) {
		return r.next.ListBySeason(ctx, seasonID)
	})
}

func (r *MatchRepository) ListByTeamAndSeason(ctx context.Context, teamID, seasonID int64) ([]match.Match, error) {
	key := "match:team:" + strconv.FormatInt(teamID, 10) + ":season:" + strconv.FormatInt(seasonID, 10)
	return r.loadList(ctx, key, func(ctx context.Context) ([]match.Match, error) {
		return r.next.ListByTeamAndSeason(ctx, teamID, seasonID)
	})
}

func (r *MatchRepository) ListBetweenTeams(ctx context.Context, teamAID, teamBID int64) ([]match.Match, error) {
	small, large := teamAID, teamBID
	if small > large {
		small, large = large, small
	}
	key := "match:pair:" + strconv.FormatInt(small, 10) + "-" + strconv.FormatInt(large, 10)
	return r.loadList(ctx, key, func(ctx context.Context) ([]match.Match, error) {
		return r.next.ListBetweenTeams(ctx, teamAID, teamBID)
	})
}

func (r *MatchRepository) ListSeasonIDs(ctx context.Context) ([]int64, error) {
	v, err := r.cache.GetOrLoad(ctx, "match:seasons", func(ctx context.Context) (any, error) {
		ids, err := r.next.ListSeasonIDs(ctx)
		if err != nil {
			return nil, err
		}
		return append([]int64(nil), ids...), nil
	})
	if err != nil {
		return nil, err
	}

	ids, _ := v.([]int64)
	return append([]int64(nil), ids...), nil
}

func (r *MatchRepository) loadList(ctx context.Context, key string, load func(context.Context) ([]match.Match, error)) ([]match.Match, error) {
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := load(ctx)
		if err != nil {
			return nil, err
		}
		return append([]match.Match(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]match.Match)
	return append([]match.Match(nil), items...), nil
}
