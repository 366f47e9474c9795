package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/ftbarchive/show-stats/internal/domain/seasonstats"
	qb "github.com/ftbarchive/show-stats/internal/platform/querybuilder"
)

type PlayerStatsRepository struct {
	db *sqlx.DB
}

func NewPlayerStatsRepository(db *sqlx.DB) *PlayerStatsRepository {
	return &PlayerStatsRepository{db: db}
}

func (r *PlayerStatsRepository) ListBySeason(ctx context.Context, seasonID int64) ([]seasonstats.PlayerRow, error) {
	query, args, err := qb.Select("*").From("player_season_stats").
		Where(qb.Eq("season_id", seasonID)).
		OrderBy("player_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list player stats query: %w", err)
	}
	return r.list(ctx, query, args)
}

func (r *PlayerStatsRepository) ListAll(ctx context.Context) ([]seasonstats.PlayerRow, error) {
	query, args, err := qb.Select("*").From("player_season_stats").
		OrderBy("season_id", "player_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list all player stats query: %w", err)
	}
	return r.list(ctx, query, args)
}

func (r *PlayerStatsRepository) ReplaceSeason(ctx context.Context, seasonID int64, rows []seasonstats.PlayerRow) error {
	return r.replace(ctx, []qb.Condition{qb.Eq("season_id", seasonID)}, rows)
}

func (r *PlayerStatsRepository) ReplaceAll(ctx context.Context, rows []seasonstats.PlayerRow) error {
	return r.replace(ctx, nil, rows)
}

func (r *PlayerStatsRepository) replace(ctx context.Context, scope []qb.Condition, rows []seasonstats.PlayerRow) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx replace player stats: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	clearQuery, clearArgs, err := qb.DeleteFrom("player_season_stats").Where(scope...).ToSQL()
	if err != nil {
		return fmt.Errorf("build clear player stats query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, clearQuery, clearArgs...); err != nil {
		return fmt.Errorf("clear player stats: %w", err)
	}

	for _, row := range rows {
		query, args, err := qb.InsertModel("player_season_stats", playerStatsTableModel(row), "")
		if err != nil {
			return fmt.Errorf("build insert player stats query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert player stats player=%d season=%d: %w", row.PlayerID, row.SeasonID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace player stats tx: %w", err)
	}
	return nil
}

func (r *PlayerStatsRepository) list(ctx context.Context, query string, args []any) ([]seasonstats.PlayerRow, error) {
	var rows []playerStatsTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list player stats: %w", err)
	}

	out := make([]seasonstats.PlayerRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

type TeamStatsRepository struct {
	db *sqlx.DB
}

func NewTeamStatsRepository(db *sqlx.DB) *TeamStatsRepository {
	return &TeamStatsRepository{db: db}
}

func (r *TeamStatsRepository) ListBySeason(ctx context.Context, seasonID int64) ([]seasonstats.TeamRow, error) {
	query, args, err := qb.Select("*").From("team_season_stats").
		Where(qb.Eq("season_id", seasonID)).
		OrderBy("team_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list team stats query: %w", err)
	}
	return r.list(ctx, query, args)
}

func (r *TeamStatsRepository) ListAll(ctx context.Context) ([]seasonstats.TeamRow, error) {
	query, args, err := qb.Select("*").From("team_season_stats").
		OrderBy("season_id", "team_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list all team stats query: %w", err)
	}
	return r.list(ctx, query, args)
}

func (r *TeamStatsRepository) ReplaceSeason(ctx context.Context, seasonID int64, rows []seasonstats.TeamRow) error {
	return r.replace(ctx, []qb.Condition{qb.Eq("season_id", seasonID)}, rows)
}

func (r *TeamStatsRepository) ReplaceAll(ctx context.Context, rows []seasonstats.TeamRow) error {
	return r.replace(ctx, nil, rows)
}

func (r *TeamStatsRepository) replace(ctx context.Context, scope []qb.Condition, rows []seasonstats.TeamRow) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx replace team stats: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	clearQuery, clearArgs, err := qb.DeleteFrom("team_season_stats").Where(scope...).ToSQL()
	if err != nil {
		return fmt.Errorf("build clear team stats query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, clearQuery, clearArgs...); err != nil {
		return fmt.Errorf("clear team stats: %w", err)
	}

	for _, row := range rows {
		query, args, err := qb.InsertModel("team_season_stats", teamStatsTableModel(row), "")
		if err != nil {
			return fmt.Errorf("build insert team stats query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert team stats team=%d season=%d: %w", row.TeamID, row.SeasonID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace team stats tx: %w", err)
	}
	return nil
}

func (r *TeamStatsRepository) list(ctx context.Context, query string, args []any) ([]seasonstats.TeamRow, error) {
	var rows []teamStatsTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list team stats: %w", err)
	}

	out := make([]seasonstats.TeamRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}
