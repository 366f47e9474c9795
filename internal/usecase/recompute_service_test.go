package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/ftbarchive/show-stats/internal/domain/standing"
	"github.com/ftbarchive/show-stats/internal/infrastructure/repository/memory"
	"github.com/ftbarchive/show-stats/internal/platform/cache"
	"github.com/ftbarchive/show-stats/internal/platform/logging"
)

func TestRecomputeThenValidateIsClean(t *testing.T) {
	t.Parallel()

	f := newValidatorFixture()
	ctx := context.Background()

	// Corrupt two families, then let the recompute path heal them.
	f.standings.Mutate(3, memory.SeedSeasonID, func(row *standing.Row) {
		row.Points = 1
		row.Wins = 0
	})
	if err := f.pairs.ReplaceAll(ctx, nil); err != nil {
		t.Fatalf("wipe pairs: %v", err)
	}

	recompute := NewRecomputeService(
		f.matches, f.participations,
		f.standings, f.playerStats, f.teamStats, f.pairs,
		cache.NewStore(time.Minute), logging.NewNop(),
	)
	result, err := recompute.RecomputeSeason(ctx, memory.SeedSeasonID)
	if err != nil {
		t.Fatalf("RecomputeSeason: %v", err)
	}
	if result.Persisted[familyStandings] != 4 || result.Persisted[familyPairStats] != 4 {
		t.Fatalf("unexpected persisted counts: %+v", result.Persisted)
	}
	if len(result.Skipped) != 0 {
		t.Fatalf("seed matches must all count: %+v", result.Skipped)
	}

	validator := f.service(ValidatorConfig{})
	seasonID := memory.SeedSeasonID
	report, err := validator.Validate(ctx, &seasonID)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if !report.Valid {
		t.Fatalf("recomputed season must validate clean, got %v", report.Issues)
	}
}

func TestRecomputeRejectsUnknownSeason(t *testing.T) {
	t.Parallel()

	f := newValidatorFixture()
	recompute := NewRecomputeService(
		f.matches, f.participations,
		f.standings, f.playerStats, f.teamStats, f.pairs,
		nil, logging.NewNop(),
	)
	if _, err := recompute.RecomputeSeason(context.Background(), 123); err == nil {
		t.Fatalf("expected error for unknown season")
	}
}
