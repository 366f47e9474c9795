package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/ftbarchive/show-stats/internal/domain/matchevent"
	qb "github.com/ftbarchive/show-stats/internal/platform/querybuilder"
)

type MatchEventRepository struct {
	db *sqlx.DB
}

func NewMatchEventRepository(db *sqlx.DB) *MatchEventRepository {
	return &MatchEventRepository{db: db}
}

func (r *MatchEventRepository) ListGoalsByMatch(ctx context.Context, matchID int64) ([]matchevent.Goal, error) {
	query, args, err := qb.Select("*").From("goals").
		Where(qb.Eq("match_id", matchID)).
		OrderBy("minute", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list goals query: %w", err)
	}

	var rows []goalTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list goals match=%d: %w", matchID, err)
	}

	out := make([]matchevent.Goal, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *MatchEventRepository) ListAssistsByMatch(ctx context.Context, matchID int64) ([]matchevent.Assist, error) {
	query, args, err := qb.Select("*").From("assists").
		Where(qb.Eq("match_id", matchID)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list assists query: %w", err)
	}

	var rows []assistTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list assists match=%d: %w", matchID, err)
	}

	out := make([]matchevent.Assist, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *MatchEventRepository) CountGoalsByPlayer(ctx context.Context, seasonID int64) (map[int64]int, error) {
	return r.countByPlayer(ctx, "goals", seasonID)
}

func (r *MatchEventRepository) CountAssistsByPlayer(ctx context.Context, seasonID int64) (map[int64]int, error) {
	return r.countByPlayer(ctx, "assists", seasonID)
}

func (r *MatchEventRepository) countByPlayer(ctx context.Context, table string, seasonID int64) (map[int64]int, error) {
	query, args, err := qb.Select("e.player_id AS player_id", "COUNT(*) AS total").
		From(table + " e JOIN matches m ON m.id = e.match_id").
		Where(qb.Eq("m.season_id", seasonID)).
		GroupBy("e.player_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build count %s query: %w", table, err)
	}

	var rows []playerCountModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("count %s season=%d: %w", table, seasonID, err)
	}

	out := make(map[int64]int, len(rows))
	for _, row := range rows {
		out[row.PlayerID] = row.Total
	}
	return out, nil
}
