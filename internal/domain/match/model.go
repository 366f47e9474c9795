package match

import (
	"fmt"
	"time"
)

const (
	StatusScheduled = "scheduled"
	StatusLive      = "live"
	StatusCompleted = "completed"
)

// Match is one fixture of the show. Scores are nil until the match has been
// played; shootout scores are set only when the match ended level and went to
// penalties.
type Match struct {
	ID               int64
	SeasonID         int64
	HomeTeamID       int64
	AwayTeamID       int64
	HomeScore        *int
	AwayScore        *int
	PenaltyHomeScore *int
	PenaltyAwayScore *int
	Status           string
	PlayedAt         time.Time
}

// IsDecided reports whether both main scores are recorded.
func (m Match) IsDecided() bool {
	return m.HomeScore != nil && m.AwayScore != nil
}

// WentToShootout reports whether both shootout scores are recorded.
func (m Match) WentToShootout() bool {
	return m.PenaltyHomeScore != nil && m.PenaltyAwayScore != nil
}

// HasInconsistentShootout reports whether exactly one shootout score is
// recorded. Such a match must be skipped and flagged, never coerced.
func (m Match) HasInconsistentShootout() bool {
	return (m.PenaltyHomeScore == nil) != (m.PenaltyAwayScore == nil)
}

// Involves reports whether teamID played in this match.
func (m Match) Involves(teamID int64) bool {
	return m.HomeTeamID == teamID || m.AwayTeamID == teamID
}

// OpponentOf returns the other side of the fixture.
func (m Match) OpponentOf(teamID int64) (int64, bool) {
	switch teamID {
	case m.HomeTeamID:
		return m.AwayTeamID, true
	case m.AwayTeamID:
		return m.HomeTeamID, true
	default:
		return 0, false
	}
}

// ScoreFor returns (goals for, goals against) from teamID's perspective.
func (m Match) ScoreFor(teamID int64) (int, int, bool) {
	if !m.IsDecided() || !m.Involves(teamID) {
		return 0, 0, false
	}
	if teamID == m.HomeTeamID {
		return *m.HomeScore, *m.AwayScore, true
	}
	return *m.AwayScore, *m.HomeScore, true
}

func (m Match) Validate() error {
	if m.ID <= 0 {
		return fmt.Errorf("match id must be > 0")
	}
	if m.SeasonID <= 0 {
		return fmt.Errorf("season id must be > 0")
	}
	if m.HomeTeamID <= 0 || m.AwayTeamID <= 0 {
		return fmt.Errorf("team ids must be > 0")
	}
	if m.HomeTeamID == m.AwayTeamID {
		return fmt.Errorf("a team cannot play itself")
	}
	for _, score := range []*int{m.HomeScore, m.AwayScore, m.PenaltyHomeScore, m.PenaltyAwayScore} {
		if score != nil && *score < 0 {
			return fmt.Errorf("scores must be >= 0")
		}
	}
	if m.PenaltyHomeScore != nil && !m.IsDecided() {
		return fmt.Errorf("shootout score recorded before main score")
	}
	switch m.Status {
	case StatusScheduled, StatusLive, StatusCompleted:
	default:
		return fmt.Errorf("unknown status %q", m.Status)
	}
	return nil
}

func IntPtr(v int) *int {
	return &v
}
