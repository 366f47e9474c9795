package usecase

import (
	"context"
	"fmt"

	"github.com/sourcegraph/conc/pool"

	"github.com/ftbarchive/show-stats/internal/domain/headtohead"
	"github.com/ftbarchive/show-stats/internal/domain/match"
	"github.com/ftbarchive/show-stats/internal/domain/participation"
	"github.com/ftbarchive/show-stats/internal/domain/seasonstats"
	"github.com/ftbarchive/show-stats/internal/domain/standing"
	"github.com/ftbarchive/show-stats/internal/platform/cache"
	"github.com/ftbarchive/show-stats/internal/platform/logging"
)

type RecomputeResult struct {
	SeasonID  int64          `json:"season_id"`
	Persisted map[string]int `json:"persisted"`
	Skipped   []SkippedMatch `json:"skipped"`
}

// RecomputeService is the one write path over the aggregate tables that goes
// through the compute pipeline. Validation reads and reports; this refreshes.
type RecomputeService struct {
	matchRepo         match.Repository
	participationRepo participation.Repository
	standingRepo      standing.Repository
	playerStatsRepo   seasonstats.PlayerRepository
	teamStatsRepo     seasonstats.TeamRepository
	pairRepo          headtohead.Repository
	cache             *cache.Store
	logger            *logging.Logger
}

func NewRecomputeService(
	matchRepo match.Repository,
	participationRepo participation.Repository,
	standingRepo standing.Repository,
	playerStatsRepo seasonstats.PlayerRepository,
	teamStatsRepo seasonstats.TeamRepository,
	pairRepo headtohead.Repository,
	store *cache.Store,
	logger *logging.Logger,
) *RecomputeService {
	if logger == nil {
		logger = logging.Default()
	}
	return &RecomputeService{
		matchRepo:         matchRepo,
		participationRepo: participationRepo,
		standingRepo:      standingRepo,
		playerStatsRepo:   playerStatsRepo,
		teamStatsRepo:     teamStatsRepo,
		pairRepo:          pairRepo,
		cache:             store,
		logger:            logger,
	}
}

// RecomputeSeason rebuilds every aggregate family for one season from the
// event tables and persists the results. Pair rows touched by the season's
// matches are recomputed over the pair's full cross-season history and
// upserted; untouched pairs stay as they are.
func (s *RecomputeService) RecomputeSeason(ctx context.Context, seasonID int64) (RecomputeResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RecomputeService.RecomputeSeason")
	defer span.End()

	if seasonID <= 0 {
		return RecomputeResult{}, fmt.Errorf("%w: season id must be greater than zero", ErrInvalidInput)
	}

	var (
		matches []match.Match
		parts   []participation.Participation
	)
	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) error {
		var err error
		matches, err = s.matchRepo.ListBySeason(ctx, seasonID)
		if err != nil {
			return fmt.Errorf("list matches season=%d: %w", seasonID, err)
		}
		return nil
	})
	p.Go(func(ctx context.Context) error {
		var err error
		parts, err = s.participationRepo.ListBySeason(ctx, seasonID)
		if err != nil {
			return fmt.Errorf("list participations season=%d: %w", seasonID, err)
		}
		return nil
	})
	if err := p.Wait(); err != nil {
		return RecomputeResult{}, err
	}
	if len(matches) == 0 {
		return RecomputeResult{}, fmt.Errorf("%w: season=%d has no matches", ErrNotFound, seasonID)
	}

	standings, skipped := ComputeStandings(seasonID, matches)
	teamRows := TeamRowsFromStandings(standings)
	playerRows := ComputePlayerSeasonStats(seasonID, parts)

	pairRows, err := s.recomputeTouchedPairs(ctx, matches)
	if err != nil {
		return RecomputeResult{}, err
	}

	if err := s.standingRepo.ReplaceSeason(ctx, seasonID, standings); err != nil {
		return RecomputeResult{}, fmt.Errorf("persist standings season=%d: %w", seasonID, err)
	}
	if err := s.teamStatsRepo.ReplaceSeason(ctx, seasonID, teamRows); err != nil {
		return RecomputeResult{}, fmt.Errorf("persist team season stats season=%d: %w", seasonID, err)
	}
	if err := s.playerStatsRepo.ReplaceSeason(ctx, seasonID, playerRows); err != nil {
		return RecomputeResult{}, fmt.Errorf("persist player season stats season=%d: %w", seasonID, err)
	}
	if err := s.pairRepo.UpsertPairs(ctx, pairRows); err != nil {
		return RecomputeResult{}, fmt.Errorf("persist pair stats season=%d: %w", seasonID, err)
	}

	if s.cache != nil {
		s.cache.DeletePrefix(ctx, headToHeadCachePrefix)
	}

	for _, item := range skipped {
		s.logger.WarnContext(ctx, "match skipped during recompute",
			"match_id", item.MatchID,
			"season_id", seasonID,
			"reason", item.Reason,
		)
	}

	return RecomputeResult{
		SeasonID: seasonID,
		Persisted: map[string]int{
			familyStandings:   len(standings),
			familyTeamStats:   len(teamRows),
			familyPlayerStats: len(playerRows),
			familyPairStats:   len(pairRows),
		},
		Skipped: skipped,
	}, nil
}

func (s *RecomputeService) recomputeTouchedPairs(ctx context.Context, matches []match.Match) ([]headtohead.PairStats, error) {
	touched := make(map[headtohead.PairKey]struct{})
	keys := make([]headtohead.PairKey, 0)
	for _, m := range matches {
		if m.Status != match.StatusCompleted {
			continue
		}
		key, err := headtohead.NewPairKey(m.HomeTeamID, m.AwayTeamID)
		if err != nil {
			continue
		}
		if _, ok := touched[key]; ok {
			continue
		}
		touched[key] = struct{}{}
		keys = append(keys, key)
	}

	out := make([]headtohead.PairStats, 0, len(keys))
	for _, key := range keys {
		history, err := s.matchRepo.ListBetweenTeams(ctx, key.SmallID, key.LargeID)
		if err != nil {
			return nil, fmt.Errorf("list matches for pair %s: %w", key, err)
		}
		stats := headtohead.PairStats{Key: key}
		pairs, _ := ComputeHeadToHeadPairs(history)
		for _, item := range pairs {
			if item.Key == key {
				stats = item
				break
			}
		}
		out = append(out, stats)
	}
	return out, nil
}
