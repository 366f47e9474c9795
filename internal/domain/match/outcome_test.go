package match

import (
	"testing"
	"time"
)

func completedMatch(home, away int) Match {
	return Match{
		ID:         1,
		SeasonID:   1,
		HomeTeamID: 1,
		AwayTeamID: 2,
		HomeScore:  IntPtr(home),
		AwayScore:  IntPtr(away),
		Status:     StatusCompleted,
		PlayedAt:   time.Date(2024, 5, 1, 20, 0, 0, 0, time.UTC),
	}
}

func TestResolveOutcome(t *testing.T) {
	t.Parallel()

	shootout := completedMatch(2, 2)
	shootout.PenaltyHomeScore = IntPtr(5)
	shootout.PenaltyAwayScore = IntPtr(4)

	levelNoShootout := completedMatch(1, 1)

	drawnShootout := completedMatch(0, 0)
	drawnShootout.PenaltyHomeScore = IntPtr(3)
	drawnShootout.PenaltyAwayScore = IntPtr(3)

	tests := []struct {
		name     string
		match    Match
		teamID   int64
		expected Outcome
	}{
		{name: "home win", match: completedMatch(3, 1), teamID: 1, expected: OutcomeWin},
		{name: "home win from away perspective", match: completedMatch(3, 1), teamID: 2, expected: OutcomeLoss},
		{name: "away win", match: completedMatch(0, 2), teamID: 1, expected: OutcomeLoss},
		{name: "shootout win", match: shootout, teamID: 1, expected: OutcomeWin},
		{name: "shootout loss", match: shootout, teamID: 2, expected: OutcomeLoss},
		{name: "level without shootout", match: levelNoShootout, teamID: 1, expected: OutcomeUndecided},
		{name: "drawn shootout is defensive skip", match: drawnShootout, teamID: 1, expected: OutcomeUndecided},
		{name: "unplayed match", match: Match{ID: 9, SeasonID: 1, HomeTeamID: 1, AwayTeamID: 2, Status: StatusScheduled}, teamID: 1, expected: OutcomeUndecided},
		{name: "team not in match", match: completedMatch(3, 1), teamID: 99, expected: OutcomeUndecided},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := ResolveOutcome(tc.match, tc.teamID); got != tc.expected {
				t.Fatalf("ResolveOutcome=%s, expected %s", got, tc.expected)
			}
		})
	}
}

func TestResolveOutcome_PerspectivesAreOpposites(t *testing.T) {
	t.Parallel()

	matches := []Match{
		completedMatch(3, 1),
		completedMatch(0, 0),
		completedMatch(2, 5),
	}
	withShootout := completedMatch(1, 1)
	withShootout.PenaltyHomeScore = IntPtr(4)
	withShootout.PenaltyAwayScore = IntPtr(2)
	matches = append(matches, withShootout)

	for _, m := range matches {
		home := ResolveOutcome(m, m.HomeTeamID)
		away := ResolveOutcome(m, m.AwayTeamID)
		if home.Opposite() != away {
			t.Fatalf("match %d: home=%s away=%s are not opposites", m.ID, home, away)
		}
	}
}

func TestMatchValidate(t *testing.T) {
	t.Parallel()

	valid := completedMatch(1, 0)
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid match rejected: %v", err)
	}

	selfPlay := completedMatch(1, 0)
	selfPlay.AwayTeamID = selfPlay.HomeTeamID
	if err := selfPlay.Validate(); err == nil {
		t.Fatalf("expected error for team playing itself")
	}

	negative := completedMatch(1, 0)
	negative.HomeScore = IntPtr(-1)
	if err := negative.Validate(); err == nil {
		t.Fatalf("expected error for negative score")
	}

	earlyShootout := Match{ID: 1, SeasonID: 1, HomeTeamID: 1, AwayTeamID: 2, Status: StatusScheduled, PenaltyHomeScore: IntPtr(3)}
	if err := earlyShootout.Validate(); err == nil {
		t.Fatalf("expected error for shootout score on unplayed match")
	}
}

func TestMatchHasInconsistentShootout(t *testing.T) {
	t.Parallel()

	m := completedMatch(2, 2)
	m.PenaltyHomeScore = IntPtr(4)
	if !m.HasInconsistentShootout() {
		t.Fatalf("expected half-recorded shootout to be inconsistent")
	}

	m.PenaltyAwayScore = IntPtr(3)
	if m.HasInconsistentShootout() {
		t.Fatalf("complete shootout flagged as inconsistent")
	}
}
