package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/ftbarchive/show-stats/internal/domain/standing"
	qb "github.com/ftbarchive/show-stats/internal/platform/querybuilder"
)

type StandingRepository struct {
	db *sqlx.DB
}

func NewStandingRepository(db *sqlx.DB) *StandingRepository {
	return &StandingRepository{db: db}
}

func (r *StandingRepository) ListBySeason(ctx context.Context, seasonID int64) ([]standing.Row, error) {
	query, args, err := qb.Select("*").From("standings").
		Where(qb.Eq("season_id", seasonID)).
		OrderBy("team_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list standings query: %w", err)
	}
	return r.list(ctx, query, args)
}

func (r *StandingRepository) ListAll(ctx context.Context) ([]standing.Row, error) {
	query, args, err := qb.Select("*").From("standings").
		OrderBy("season_id", "team_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list all standings query: %w", err)
	}
	return r.list(ctx, query, args)
}

func (r *StandingRepository) ReplaceSeason(ctx context.Context, seasonID int64, rows []standing.Row) error {
	return r.replace(ctx, []qb.Condition{qb.Eq("season_id", seasonID)}, rows)
}

func (r *StandingRepository) ReplaceAll(ctx context.Context, rows []standing.Row) error {
	return r.replace(ctx, nil, rows)
}

// replace swaps the in-scope rows inside one transaction, so a failure
// partway through leaves the table as it was.
func (r *StandingRepository) replace(ctx context.Context, scope []qb.Condition, rows []standing.Row) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx replace standings: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	clearQuery, clearArgs, err := qb.DeleteFrom("standings").Where(scope...).ToSQL()
	if err != nil {
		return fmt.Errorf("build clear standings query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, clearQuery, clearArgs...); err != nil {
		return fmt.Errorf("clear standings: %w", err)
	}

	for _, row := range rows {
		query, args, err := qb.InsertModel("standings", standingInsertModel(row), "")
		if err != nil {
			return fmt.Errorf("build insert standing query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert standing team=%d season=%d: %w", row.TeamID, row.SeasonID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace standings tx: %w", err)
	}
	return nil
}

func (r *StandingRepository) list(ctx context.Context, query string, args []any) ([]standing.Row, error) {
	var rows []standingTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list standings: %w", err)
	}

	out := make([]standing.Row, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}
