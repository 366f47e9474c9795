package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/ftbarchive/show-stats/internal/domain/match"
	qb "github.com/ftbarchive/show-stats/internal/platform/querybuilder"
)

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) GetByID(ctx context.Context, matchID int64) (match.Match, bool, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(qb.Eq("id", matchID)).
		ToSQL()
	if err != nil {
		return match.Match{}, false, fmt.Errorf("build get match query: %w", err)
	}

	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, fmt.Errorf("get match id=%d: %w", matchID, err)
	}
	return row.toDomain(), true, nil
}

func (r *MatchRepository) ListBySeason(ctx context.Context, seasonID int64) ([]match.Match, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(qb.Eq("season_id", seasonID)).
		OrderBy("played_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list season matches query: %w", err)
	}

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list matches season=%d: %w", seasonID, err)
	}
	return matchesToDomain(rows), nil
}

func (r *MatchRepository) ListByTeamAndSeason(ctx context.Context, teamID, seasonID int64) ([]match.Match, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(
			qb.Eq("season_id", seasonID),
			qb.Or(qb.Eq("home_team_id", teamID), qb.Eq("away_team_id", teamID)),
		).
		OrderBy("played_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list team matches query: %w", err)
	}

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list matches team=%d season=%d: %w", teamID, seasonID, err)
	}
	return matchesToDomain(rows), nil
}

func (r *MatchRepository) ListBetweenTeams(ctx context.Context, teamAID, teamBID int64) ([]match.Match, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(
			qb.Or(
				qb.And(qb.Eq("home_team_id", teamAID), qb.Eq("away_team_id", teamBID)),
				qb.And(qb.Eq("home_team_id", teamBID), qb.Eq("away_team_id", teamAID)),
			),
		).
		OrderBy("played_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list pair matches query: %w", err)
	}

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list matches between teams %d and %d: %w", teamAID, teamBID, err)
	}
	return matchesToDomain(rows), nil
}

func (r *MatchRepository) ListSeasonIDs(ctx context.Context) ([]int64, error) {
	query, args, err := qb.Select("DISTINCT season_id").From("matches").
		OrderBy("season_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list season ids query: %w", err)
	}

	var out []int64
	if err := r.db.SelectContext(ctx, &out, query, args...); err != nil {
		return nil, fmt.Errorf("list season ids: %w", err)
	}
	return out, nil
}
