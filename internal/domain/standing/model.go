package standing

import "fmt"

// Row is one persisted standings line for a team in a season. It is derived
// state: always reproducible from the match table, never the sole record of a
// result.
type Row struct {
	TeamID         int64
	SeasonID       int64
	Played         int
	Wins           int
	Draws          int
	Losses         int
	GoalsFor       int
	GoalsAgainst   int
	GoalDifference int
	Points         int
}

// CheckInvariants verifies the arithmetic a standings row must satisfy.
func (r Row) CheckInvariants() error {
	if r.Points != r.Wins*3+r.Draws {
		return fmt.Errorf("points=%d does not equal wins*3+draws=%d", r.Points, r.Wins*3+r.Draws)
	}
	if r.GoalDifference != r.GoalsFor-r.GoalsAgainst {
		return fmt.Errorf("goal_difference=%d does not equal goals_for-goals_against=%d", r.GoalDifference, r.GoalsFor-r.GoalsAgainst)
	}
	if r.Played != r.Wins+r.Draws+r.Losses {
		return fmt.Errorf("played=%d does not equal wins+draws+losses=%d", r.Played, r.Wins+r.Draws+r.Losses)
	}
	return nil
}
