package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ftbarchive/show-stats/internal/platform/cache"
)

func newHeadToHeadService(f validatorFixture) *HeadToHeadService {
	return NewHeadToHeadService(f.matches, f.pairs, cache.NewStore(time.Minute))
}

func TestAggregateIsOrderIndependent(t *testing.T) {
	t.Parallel()

	svc := newHeadToHeadService(newValidatorFixture())
	ctx := context.Background()

	ab, _, err := svc.Aggregate(ctx, 1, 2)
	if err != nil {
		t.Fatalf("Aggregate(1,2): %v", err)
	}
	ba, _, err := svc.Aggregate(ctx, 2, 1)
	if err != nil {
		t.Fatalf("Aggregate(2,1): %v", err)
	}
	if ab != ba {
		t.Fatalf("argument order changed the stored row: %+v vs %+v", ab, ba)
	}
	if ab.TotalMatches != 1 || ab.SmallWins != 1 || ab.SmallGoals != 3 || ab.LargeGoals != 1 {
		t.Fatalf("unexpected pair row: %+v", ab)
	}
}

func TestMatchSummaryPerspectives(t *testing.T) {
	t.Parallel()

	svc := newHeadToHeadService(newValidatorFixture())

	// Match 1 is team 1 at home to team 2.
	out, err := svc.MatchSummary(context.Background(), 1)
	if err != nil {
		t.Fatalf("MatchSummary: %v", err)
	}
	if out.TeamA != 1 || out.TeamB != 2 {
		t.Fatalf("unexpected teams: %+v", out)
	}
	if out.Summary.Total != 1 {
		t.Fatalf("unexpected total: %+v", out.Summary)
	}
	if out.Summary.TeamA.Wins != out.Summary.TeamB.Losses {
		t.Fatalf("perspectives not swapped: %+v", out.Summary)
	}
	if out.Summary.TeamA.GoalsFor != 3 || out.Summary.TeamB.GoalsFor != 1 {
		t.Fatalf("goals not perspective-correct: %+v", out.Summary)
	}
}

func TestMatchSummaryZeroHistory(t *testing.T) {
	t.Parallel()

	svc := newHeadToHeadService(newValidatorFixture())

	// Match 5 pairs teams 1 and 3, which have no stored head-to-head row.
	out, err := svc.MatchSummary(context.Background(), 5)
	if err != nil {
		t.Fatalf("MatchSummary: %v", err)
	}
	if out.Summary.Total != 0 {
		t.Fatalf("expected zero history, got %+v", out.Summary)
	}
	zero := HeadToHeadRecord{}
	if out.Summary.TeamA != zero || out.Summary.TeamB != zero {
		t.Fatalf("zero summary must be explicit zeros: %+v", out.Summary)
	}
}

func TestMatchSummaryUnknownMatch(t *testing.T) {
	t.Parallel()

	svc := newHeadToHeadService(newValidatorFixture())
	_, err := svc.MatchSummary(context.Background(), 404)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAggregateRejectsSameTeam(t *testing.T) {
	t.Parallel()

	svc := newHeadToHeadService(newValidatorFixture())
	_, _, err := svc.Aggregate(context.Background(), 7, 7)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
