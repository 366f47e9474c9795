package usecase

import (
	"context"
	"fmt"

	"github.com/ftbarchive/show-stats/internal/domain/match"
	"github.com/ftbarchive/show-stats/internal/domain/standing"
	"github.com/ftbarchive/show-stats/internal/platform/logging"
)

type StandingsService struct {
	matchRepo    match.Repository
	standingRepo standing.Repository
	logger       *logging.Logger
}

func NewStandingsService(matchRepo match.Repository, standingRepo standing.Repository, logger *logging.Logger) *StandingsService {
	if logger == nil {
		logger = logging.Default()
	}
	return &StandingsService{
		matchRepo:    matchRepo,
		standingRepo: standingRepo,
		logger:       logger,
	}
}

// ComputeSeason recomputes the ranked table for one season straight from the
// match events, bypassing the persisted standings rows entirely.
func (s *StandingsService) ComputeSeason(ctx context.Context, seasonID int64) ([]standing.Row, []SkippedMatch, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.ComputeSeason")
	defer span.End()

	if seasonID <= 0 {
		return nil, nil, fmt.Errorf("%w: season id must be greater than zero", ErrInvalidInput)
	}

	matches, err := s.matchRepo.ListBySeason(ctx, seasonID)
	if err != nil {
		return nil, nil, fmt.Errorf("list season matches: %w", err)
	}
	if len(matches) == 0 {
		return nil, nil, fmt.Errorf("%w: season=%d has no matches", ErrNotFound, seasonID)
	}

	rows, skipped := ComputeStandings(seasonID, matches)
	for _, item := range skipped {
		s.logger.WarnContext(ctx, "match skipped during standings fold",
			"match_id", item.MatchID,
			"season_id", seasonID,
			"reason", item.Reason,
		)
	}

	return RankStandings(rows), skipped, nil
}

// ListPersisted returns the stored standings rows for a season as-is, without
// recomputation. The validator is the place that decides whether they are
// still truthful.
func (s *StandingsService) ListPersisted(ctx context.Context, seasonID int64) ([]standing.Row, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.ListPersisted")
	defer span.End()

	if seasonID <= 0 {
		return nil, fmt.Errorf("%w: season id must be greater than zero", ErrInvalidInput)
	}

	rows, err := s.standingRepo.ListBySeason(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("list persisted standings: %w", err)
	}
	return RankStandings(rows), nil
}
