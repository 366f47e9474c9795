package postgres

import (
	"time"

	"github.com/ftbarchive/show-stats/internal/domain/match"
)

type matchTableModel struct {
	ID               int64     `db:"id"`
	SeasonID         int64     `db:"season_id"`
	HomeTeamID       int64     `db:"home_team_id"`
	AwayTeamID       int64     `db:"away_team_id"`
	HomeScore        *int      `db:"home_score"`
	AwayScore        *int      `db:"away_score"`
	PenaltyHomeScore *int      `db:"penalty_home_score"`
	PenaltyAwayScore *int      `db:"penalty_away_score"`
	Status           string    `db:"status"`
	PlayedAt         time.Time `db:"played_at"`
}

func (m matchTableModel) toDomain() match.Match {
	return match.Match{
		ID:               m.ID,
		SeasonID:         m.SeasonID,
		HomeTeamID:       m.HomeTeamID,
		AwayTeamID:       m.AwayTeamID,
		HomeScore:        m.HomeScore,
		AwayScore:        m.AwayScore,
		PenaltyHomeScore: m.PenaltyHomeScore,
		PenaltyAwayScore: m.PenaltyAwayScore,
		Status:           m.Status,
		PlayedAt:         m.PlayedAt,
	}
}

func matchesToDomain(rows []matchTableModel) []match.Match {
	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out
}
