package usecase

import (
	"context"
	"fmt"

	"github.com/ftbarchive/show-stats/internal/domain/match"
	"github.com/ftbarchive/show-stats/internal/domain/matchevent"
	"github.com/ftbarchive/show-stats/internal/domain/participation"
	"github.com/ftbarchive/show-stats/internal/domain/seasonstats"
)

type SeasonStatsService struct {
	matchRepo         match.Repository
	participationRepo participation.Repository
	eventRepo         matchevent.Repository
}

func NewSeasonStatsService(matchRepo match.Repository, participationRepo participation.Repository, eventRepo matchevent.Repository) *SeasonStatsService {
	return &SeasonStatsService{
		matchRepo:         matchRepo,
		participationRepo: participationRepo,
		eventRepo:         eventRepo,
	}
}

// GetTeamStats recomputes one team's season totals from its matches. A team
// with no countable match in the season is reported as not found rather than
// returned zero-filled.
func (s *SeasonStatsService) GetTeamStats(ctx context.Context, seasonID, teamID int64) (seasonstats.TeamRow, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonStatsService.GetTeamStats")
	defer span.End()

	if seasonID <= 0 || teamID <= 0 {
		return seasonstats.TeamRow{}, fmt.Errorf("%w: season id and team id must be greater than zero", ErrInvalidInput)
	}

	matches, err := s.matchRepo.ListByTeamAndSeason(ctx, teamID, seasonID)
	if err != nil {
		return seasonstats.TeamRow{}, fmt.Errorf("list team matches: %w", err)
	}

	rows, _ := ComputeStandings(seasonID, matches)
	for _, row := range TeamRowsFromStandings(rows) {
		if row.TeamID == teamID {
			return row, nil
		}
	}
	return seasonstats.TeamRow{}, fmt.Errorf("%w: team=%d has no countable matches in season=%d", ErrNotFound, teamID, seasonID)
}

// GetPlayerStats sums one player's participation records for a season.
func (s *SeasonStatsService) GetPlayerStats(ctx context.Context, seasonID, playerID int64) (seasonstats.PlayerRow, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonStatsService.GetPlayerStats")
	defer span.End()

	if seasonID <= 0 || playerID <= 0 {
		return seasonstats.PlayerRow{}, fmt.Errorf("%w: season id and player id must be greater than zero", ErrInvalidInput)
	}

	parts, err := s.participationRepo.ListByPlayerAndSeason(ctx, playerID, seasonID)
	if err != nil {
		return seasonstats.PlayerRow{}, fmt.Errorf("list player participations: %w", err)
	}

	rows := ComputePlayerSeasonStats(seasonID, parts)
	for _, row := range rows {
		if row.PlayerID == playerID {
			return row, nil
		}
	}
	return seasonstats.PlayerRow{}, fmt.Errorf("%w: player=%d has no participations in season=%d", ErrNotFound, playerID, seasonID)
}

// MatchEvents lists the recorded goals and assists of one fixture. A match
// with no events yet returns empty slices, not an error.
func (s *SeasonStatsService) MatchEvents(ctx context.Context, matchID int64) ([]matchevent.Goal, []matchevent.Assist, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonStatsService.MatchEvents")
	defer span.End()

	if matchID <= 0 {
		return nil, nil, fmt.Errorf("%w: match id must be greater than zero", ErrInvalidInput)
	}

	_, exists, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, nil, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return nil, nil, fmt.Errorf("%w: match=%d", ErrNotFound, matchID)
	}

	goals, err := s.eventRepo.ListGoalsByMatch(ctx, matchID)
	if err != nil {
		return nil, nil, fmt.Errorf("list goals match=%d: %w", matchID, err)
	}
	assists, err := s.eventRepo.ListAssistsByMatch(ctx, matchID)
	if err != nil {
		return nil, nil, fmt.Errorf("list assists match=%d: %w", matchID, err)
	}
	return goals, assists, nil
}
