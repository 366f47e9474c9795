package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/ftbarchive/show-stats/internal/domain/participation"
	qb "github.com/ftbarchive/show-stats/internal/platform/querybuilder"
)

type ParticipationRepository struct {
	db *sqlx.DB
}

func NewParticipationRepository(db *sqlx.DB) *ParticipationRepository {
	return &ParticipationRepository{db: db}
}

func (r *ParticipationRepository) ListBySeason(ctx context.Context, seasonID int64) ([]participation.Participation, error) {
	query, args, err := qb.Select("*").From("match_participations").
		Where(qb.Eq("season_id", seasonID)).
		OrderBy("match_id", "player_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list participations query: %w", err)
	}
	return r.list(ctx, query, args)
}

func (r *ParticipationRepository) ListByPlayerAndSeason(ctx context.Context, playerID, seasonID int64) ([]participation.Participation, error) {
	query, args, err := qb.Select("*").From("match_participations").
		Where(
			qb.Eq("season_id", seasonID),
			qb.Eq("player_id", playerID),
		).
		OrderBy("match_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list player participations query: %w", err)
	}
	return r.list(ctx, query, args)
}

func (r *ParticipationRepository) list(ctx context.Context, query string, args []any) ([]participation.Participation, error) {
	var rows []participationTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list participations: %w", err)
	}

	out := make([]participation.Participation, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}
