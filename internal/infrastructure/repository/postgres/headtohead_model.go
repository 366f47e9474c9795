package postgres

import "github.com/ftbarchive/show-stats/internal/domain/headtohead"

type pairStatsTableModel struct {
	TeamSmallID  int64 `db:"team_small_id"`
	TeamLargeID  int64 `db:"team_large_id"`
	TotalMatches int   `db:"total_matches"`
	SmallWins    int   `db:"small_wins"`
	LargeWins    int   `db:"large_wins"`
	Draws        int   `db:"draws"`
	SmallGoals   int   `db:"small_goals"`
	LargeGoals   int   `db:"large_goals"`
}

func (m pairStatsTableModel) toDomain() headtohead.PairStats {
	return headtohead.PairStats{
		Key:          headtohead.PairKey{SmallID: m.TeamSmallID, LargeID: m.TeamLargeID},
		TotalMatches: m.TotalMatches,
		SmallWins:    m.SmallWins,
		LargeWins:    m.LargeWins,
		Draws:        m.Draws,
		SmallGoals:   m.SmallGoals,
		LargeGoals:   m.LargeGoals,
	}
}

func pairStatsInsertModel(row headtohead.PairStats) pairStatsTableModel {
	return pairStatsTableModel{
		TeamSmallID:  row.Key.SmallID,
		TeamLargeID:  row.Key.LargeID,
		TotalMatches: row.TotalMatches,
		SmallWins:    row.SmallWins,
		LargeWins:    row.LargeWins,
		Draws:        row.Draws,
		SmallGoals:   row.SmallGoals,
		LargeGoals:   row.LargeGoals,
	}
}
