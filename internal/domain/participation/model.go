package participation

import "fmt"

// Participation is the per-match granular record for one player. Player season
// totals must sum to these rows exactly; the validator treats drift between
// participations and goal/assist events as a finding.
type Participation struct {
	ID            int64
	MatchID       int64
	SeasonID      int64
	PlayerID      int64
	TeamID        int64
	MinutesPlayed int
	Goals         int
	Assists       int
	YellowCards   int
	RedCards      int
}

func (p Participation) Validate() error {
	if p.MatchID <= 0 || p.PlayerID <= 0 || p.TeamID <= 0 {
		return fmt.Errorf("match, player and team ids must be > 0")
	}
	if p.MinutesPlayed < 0 || p.Goals < 0 || p.Assists < 0 || p.YellowCards < 0 || p.RedCards < 0 {
		return fmt.Errorf("participation counters must be >= 0")
	}
	return nil
}
