package postgres

import "github.com/ftbarchive/show-stats/internal/domain/matchevent"

type goalTableModel struct {
	ID       int64 `db:"id"`
	MatchID  int64 `db:"match_id"`
	PlayerID int64 `db:"player_id"`
	TeamID   int64 `db:"team_id"`
	Minute   int   `db:"minute"`
}

func (m goalTableModel) toDomain() matchevent.Goal {
	return matchevent.Goal{
		ID:       m.ID,
		MatchID:  m.MatchID,
		PlayerID: m.PlayerID,
		TeamID:   m.TeamID,
		Minute:   m.Minute,
	}
}

type assistTableModel struct {
	ID       int64 `db:"id"`
	MatchID  int64 `db:"match_id"`
	PlayerID int64 `db:"player_id"`
	TeamID   int64 `db:"team_id"`
	GoalID   int64 `db:"goal_id"`
}

func (m assistTableModel) toDomain() matchevent.Assist {
	return matchevent.Assist{
		ID:       m.ID,
		MatchID:  m.MatchID,
		PlayerID: m.PlayerID,
		TeamID:   m.TeamID,
		GoalID:   m.GoalID,
	}
}

type playerCountModel struct {
	PlayerID int64 `db:"player_id"`
	Total    int   `db:"total"`
}
