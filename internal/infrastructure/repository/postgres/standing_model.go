package postgres

import "github.com/ftbarchive/show-stats/internal/domain/standing"

type standingTableModel struct {
	TeamID         int64 `db:"team_id"`
	SeasonID       int64 `db:"season_id"`
	Played         int   `db:"played"`
	Wins           int   `db:"wins"`
	Draws          int   `db:"draws"`
	Losses         int   `db:"losses"`
	GoalsFor       int   `db:"goals_for"`
	GoalsAgainst   int   `db:"goals_against"`
	GoalDifference int   `db:"goal_difference"`
	Points         int   `db:"points"`
}

func (m standingTableModel) toDomain() standing.Row {
	return standing.Row(m)
}

func standingInsertModel(row standing.Row) standingTableModel {
	return standingTableModel(row)
}
