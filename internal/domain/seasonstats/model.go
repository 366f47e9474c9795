package seasonstats

// PlayerRow is the persisted season total for one player, summed from the
// per-match participation records.
type PlayerRow struct {
	PlayerID      int64
	SeasonID      int64
	Played        int
	Goals         int
	Assists       int
	MinutesPlayed int
	YellowCards   int
	RedCards      int
}

// TeamRow is the persisted season total for one team, derived from match
// outcomes.
type TeamRow struct {
	TeamID       int64
	SeasonID     int64
	Played       int
	Wins         int
	Draws        int
	Losses       int
	GoalsFor     int
	GoalsAgainst int
	Points       int
}
