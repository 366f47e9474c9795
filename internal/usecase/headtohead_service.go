package usecase

import (
	"context"
	"fmt"

	"github.com/ftbarchive/show-stats/internal/domain/headtohead"
	"github.com/ftbarchive/show-stats/internal/domain/match"
	"github.com/ftbarchive/show-stats/internal/platform/cache"
)

const headToHeadCachePrefix = "h2h:pair:"

// MatchHeadToHead is the head-to-head record for one fixture, expressed from
// both sides. TeamA is the fixture's home team.
type MatchHeadToHead struct {
	MatchID int64             `json:"match_id"`
	TeamA   int64             `json:"teamA"`
	TeamB   int64             `json:"teamB"`
	Summary HeadToHeadSummary `json:"summary"`
}

type HeadToHeadSummary struct {
	Total int              `json:"total"`
	TeamA HeadToHeadRecord `json:"teamA"`
	TeamB HeadToHeadRecord `json:"teamB"`
}

type HeadToHeadRecord struct {
	Wins         int `json:"wins"`
	Draws        int `json:"draws"`
	Losses       int `json:"losses"`
	GoalsFor     int `json:"goals_for"`
	GoalsAgainst int `json:"goals_against"`
}

type HeadToHeadService struct {
	matchRepo match.Repository
	pairRepo  headtohead.Repository
	cache     *cache.Store
}

func NewHeadToHeadService(matchRepo match.Repository, pairRepo headtohead.Repository, store *cache.Store) *HeadToHeadService {
	return &HeadToHeadService{
		matchRepo: matchRepo,
		pairRepo:  pairRepo,
		cache:     store,
	}
}

// Aggregate recomputes the pair row for two teams from their full match
// history, in either argument order. The returned row is perspective-free.
func (s *HeadToHeadService) Aggregate(ctx context.Context, teamAID, teamBID int64) (headtohead.PairStats, []SkippedMatch, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.HeadToHeadService.Aggregate")
	defer span.End()

	key, err := headtohead.NewPairKey(teamAID, teamBID)
	if err != nil {
		return headtohead.PairStats{}, nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	matches, err := s.matchRepo.ListBetweenTeams(ctx, key.SmallID, key.LargeID)
	if err != nil {
		return headtohead.PairStats{}, nil, fmt.Errorf("list pair matches: %w", err)
	}

	pairs, skipped := ComputeHeadToHeadPairs(matches)
	for _, stats := range pairs {
		if stats.Key == key {
			return stats, skipped, nil
		}
	}
	// No countable match between the two teams yet: an explicit zero row, not
	// an absence.
	return headtohead.PairStats{Key: key}, skipped, nil
}

// MatchSummary looks up the stored head-to-head record for the two teams of a
// fixture. A pair with no stored row yields a zero summary so callers can
// render "no history" deterministically.
func (s *HeadToHeadService) MatchSummary(ctx context.Context, matchID int64) (MatchHeadToHead, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.HeadToHeadService.MatchSummary")
	defer span.End()

	if matchID <= 0 {
		return MatchHeadToHead{}, fmt.Errorf("%w: match id must be greater than zero", ErrInvalidInput)
	}

	m, exists, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return MatchHeadToHead{}, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return MatchHeadToHead{}, fmt.Errorf("%w: match=%d", ErrNotFound, matchID)
	}

	key, err := headtohead.NewPairKey(m.HomeTeamID, m.AwayTeamID)
	if err != nil {
		return MatchHeadToHead{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	stats, err := s.loadPairStats(ctx, key)
	if err != nil {
		return MatchHeadToHead{}, err
	}

	teamASummary, err := stats.SummaryFor(m.HomeTeamID)
	if err != nil {
		return MatchHeadToHead{}, fmt.Errorf("summarize pair %s: %w", key, err)
	}
	teamBSummary, err := stats.SummaryFor(m.AwayTeamID)
	if err != nil {
		return MatchHeadToHead{}, fmt.Errorf("summarize pair %s: %w", key, err)
	}

	return MatchHeadToHead{
		MatchID: m.ID,
		TeamA:   m.HomeTeamID,
		TeamB:   m.AwayTeamID,
		Summary: HeadToHeadSummary{
			Total: stats.TotalMatches,
			TeamA: recordFromSummary(teamASummary),
			TeamB: recordFromSummary(teamBSummary),
		},
	}, nil
}

func (s *HeadToHeadService) loadPairStats(ctx context.Context, key headtohead.PairKey) (headtohead.PairStats, error) {
	load := func(ctx context.Context) (any, error) {
		stats, found, err := s.pairRepo.Get(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("get pair row %s: %w", key, err)
		}
		if !found {
			return headtohead.PairStats{Key: key}, nil
		}
		return stats, nil
	}

	if s.cache == nil {
		value, err := load(ctx)
		if err != nil {
			return headtohead.PairStats{}, err
		}
		return value.(headtohead.PairStats), nil
	}

	value, err := s.cache.GetOrLoad(ctx, headToHeadCachePrefix+key.String(), load)
	if err != nil {
		return headtohead.PairStats{}, err
	}
	stats, ok := value.(headtohead.PairStats)
	if !ok {
		return headtohead.PairStats{}, fmt.Errorf("unexpected cache value for pair %s", key)
	}
	return stats, nil
}

func recordFromSummary(s headtohead.Summary) HeadToHeadRecord {
	return HeadToHeadRecord{
		Wins:         s.Wins,
		Draws:        s.Draws,
		Losses:       s.Losses,
		GoalsFor:     s.GoalsFor,
		GoalsAgainst: s.GoalsAgainst,
	}
}
