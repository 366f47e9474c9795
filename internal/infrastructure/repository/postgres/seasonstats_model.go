package postgres

import "github.com/ftbarchive/show-stats/internal/domain/seasonstats"

type playerStatsTableModel struct {
	PlayerID      int64 `db:"player_id"`
	SeasonID      int64 `db:"season_id"`
	Played        int   `db:"played"`
	Goals         int   `db:"goals"`
	Assists       int   `db:"assists"`
	MinutesPlayed int   `db:"minutes_played"`
	YellowCards   int   `db:"yellow_cards"`
	RedCards      int   `db:"red_cards"`
}

func (m playerStatsTableModel) toDomain() seasonstats.PlayerRow {
	return seasonstats.PlayerRow(m)
}

type teamStatsTableModel struct {
	TeamID       int64 `db:"team_id"`
	SeasonID     int64 `db:"season_id"`
	Played       int   `db:"played"`
	Wins         int   `db:"wins"`
	Draws        int   `db:"draws"`
	Losses       int   `db:"losses"`
	GoalsFor     int   `db:"goals_for"`
	GoalsAgainst int   `db:"goals_against"`
	Points       int   `db:"points"`
}

func (m teamStatsTableModel) toDomain() seasonstats.TeamRow {
	return seasonstats.TeamRow(m)
}
