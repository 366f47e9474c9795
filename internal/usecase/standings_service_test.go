package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/ftbarchive/show-stats/internal/infrastructure/repository/memory"
	"github.com/ftbarchive/show-stats/internal/platform/logging"
)

func TestComputeSeasonRanksFromEvents(t *testing.T) {
	t.Parallel()

	f := newValidatorFixture()
	svc := NewStandingsService(f.matches, f.standings, logging.NewNop())

	rows, skipped, err := svc.ComputeSeason(context.Background(), memory.SeedSeasonID)
	if err != nil {
		t.Fatalf("ComputeSeason: %v", err)
	}
	if len(skipped) != 0 {
		t.Fatalf("seed matches must all count: %+v", skipped)
	}
	if len(rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(rows))
	}

	// Teams 1 and 3 both sit on 6 points; team 1 leads on goal difference.
	if rows[0].TeamID != 1 || rows[1].TeamID != 3 {
		t.Fatalf("unexpected top of table: %+v", rows)
	}
	for _, row := range rows {
		if err := row.CheckInvariants(); err != nil {
			t.Fatalf("row %+v violates invariants: %v", row, err)
		}
	}
}

func TestComputeSeasonUnknownSeason(t *testing.T) {
	t.Parallel()

	f := newValidatorFixture()
	svc := NewStandingsService(f.matches, f.standings, logging.NewNop())

	_, _, err := svc.ComputeSeason(context.Background(), 77)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListPersistedRanksStoredRows(t *testing.T) {
	t.Parallel()

	f := newValidatorFixture()
	svc := NewStandingsService(f.matches, f.standings, logging.NewNop())

	rows, err := svc.ListPersisted(context.Background(), memory.SeedSeasonID)
	if err != nil {
		t.Fatalf("ListPersisted: %v", err)
	}
	if len(rows) != 4 || rows[0].TeamID != 1 {
		t.Fatalf("unexpected persisted table: %+v", rows)
	}

	if _, err := svc.ListPersisted(context.Background(), 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestMatchEventsListsGoalsAndAssists(t *testing.T) {
	t.Parallel()

	f := newValidatorFixture()
	svc := NewSeasonStatsService(f.matches, f.participations, f.events)
	ctx := context.Background()

	goals, assists, err := svc.MatchEvents(ctx, 1)
	if err != nil {
		t.Fatalf("MatchEvents: %v", err)
	}
	if len(goals) != 4 || len(assists) != 1 {
		t.Fatalf("unexpected events: goals=%d assists=%d", len(goals), len(assists))
	}

	if _, _, err := svc.MatchEvents(ctx, 999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown match, got %v", err)
	}
}

func TestSeasonStatsGetters(t *testing.T) {
	t.Parallel()

	f := newValidatorFixture()
	svc := NewSeasonStatsService(f.matches, f.participations, f.events)
	ctx := context.Background()

	team, err := svc.GetTeamStats(ctx, memory.SeedSeasonID, 1)
	if err != nil {
		t.Fatalf("GetTeamStats: %v", err)
	}
	if team.Played != 2 || team.Wins != 2 || team.GoalsFor != 5 || team.Points != 6 {
		t.Fatalf("unexpected team totals: %+v", team)
	}

	player, err := svc.GetPlayerStats(ctx, memory.SeedSeasonID, 10)
	if err != nil {
		t.Fatalf("GetPlayerStats: %v", err)
	}
	if player.Played != 2 || player.Goals != 3 || player.MinutesPlayed != 180 {
		t.Fatalf("unexpected player totals: %+v", player)
	}

	if _, err := svc.GetTeamStats(ctx, memory.SeedSeasonID, 42); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown team, got %v", err)
	}
	if _, err := svc.GetPlayerStats(ctx, memory.SeedSeasonID, 42); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown player, got %v", err)
	}
	if _, err := svc.GetPlayerStats(ctx, 0, 10); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
