package postgres

import "github.com/ftbarchive/show-stats/internal/domain/participation"

type participationTableModel struct {
	ID            int64 `db:"id"`
	MatchID       int64 `db:"match_id"`
	SeasonID      int64 `db:"season_id"`
	PlayerID      int64 `db:"player_id"`
	TeamID        int64 `db:"team_id"`
	MinutesPlayed int   `db:"minutes_played"`
	Goals         int   `db:"goals"`
	Assists       int   `db:"assists"`
	YellowCards   int   `db:"yellow_cards"`
	RedCards      int   `db:"red_cards"`
}

func (m participationTableModel) toDomain() participation.Participation {
	return participation.Participation{
		ID:            m.ID,
		MatchID:       m.MatchID,
		SeasonID:      m.SeasonID,
		PlayerID:      m.PlayerID,
		TeamID:        m.TeamID,
		MinutesPlayed: m.MinutesPlayed,
		Goals:         m.Goals,
		Assists:       m.Assists,
		YellowCards:   m.YellowCards,
		RedCards:      m.RedCards,
	}
}
