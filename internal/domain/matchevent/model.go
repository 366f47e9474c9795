package matchevent

// Goal is one scoring event inside a match. Insertion order carries no
// aggregation meaning; only counts matter.
type Goal struct {
	ID       int64
	MatchID  int64
	PlayerID int64
	TeamID   int64
	Minute   int
}

// Assist references the goal it set up.
type Assist struct {
	ID       int64
	MatchID  int64
	PlayerID int64
	TeamID   int64
	GoalID   int64
}
