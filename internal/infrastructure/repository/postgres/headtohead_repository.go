package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/ftbarchive/show-stats/internal/domain/headtohead"
	qb "github.com/ftbarchive/show-stats/internal/platform/querybuilder"
)

const pairUpsertSuffix = `ON CONFLICT (team_small_id, team_large_id) DO UPDATE SET
total_matches = EXCLUDED.total_matches,
small_wins = EXCLUDED.small_wins,
large_wins = EXCLUDED.large_wins,
draws = EXCLUDED.draws,
small_goals = EXCLUDED.small_goals,
large_goals = EXCLUDED.large_goals`

type HeadToHeadRepository struct {
	db *sqlx.DB
}

func NewHeadToHeadRepository(db *sqlx.DB) *HeadToHeadRepository {
	return &HeadToHeadRepository{db: db}
}

func (r *HeadToHeadRepository) Get(ctx context.Context, key headtohead.PairKey) (headtohead.PairStats, bool, error) {
	query, args, err := qb.Select("*").From("h2h_pair_stats").
		Where(
			qb.Eq("team_small_id", key.SmallID),
			qb.Eq("team_large_id", key.LargeID),
		).
		ToSQL()
	if err != nil {
		return headtohead.PairStats{}, false, fmt.Errorf("build get pair stats query: %w", err)
	}

	var row pairStatsTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return headtohead.PairStats{}, false, nil
		}
		return headtohead.PairStats{}, false, fmt.Errorf("get pair stats %s: %w", key, err)
	}
	return row.toDomain(), true, nil
}

func (r *HeadToHeadRepository) List(ctx context.Context, limit int) ([]headtohead.PairStats, error) {
	builder := qb.Select("*").From("h2h_pair_stats").
		OrderBy("team_small_id", "team_large_id")
	if limit > 0 {
		builder = builder.Limit(limit)
	}
	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list pair stats query: %w", err)
	}

	var rows []pairStatsTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list pair stats: %w", err)
	}

	out := make([]headtohead.PairStats, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *HeadToHeadRepository) UpsertPairs(ctx context.Context, rows []headtohead.PairStats) error {
	if len(rows) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx upsert pair stats: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, row := range rows {
		query, args, err := qb.InsertModel("h2h_pair_stats", pairStatsInsertModel(row), pairUpsertSuffix)
		if err != nil {
			return fmt.Errorf("build upsert pair stats query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert pair stats %s: %w", row.Key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert pair stats tx: %w", err)
	}
	return nil
}

func (r *HeadToHeadRepository) ReplaceAll(ctx context.Context, rows []headtohead.PairStats) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx replace pair stats: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	clearQuery, clearArgs, err := qb.DeleteFrom("h2h_pair_stats").ToSQL()
	if err != nil {
		return fmt.Errorf("build clear pair stats query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, clearQuery, clearArgs...); err != nil {
		return fmt.Errorf("clear pair stats: %w", err)
	}

	for _, row := range rows {
		query, args, err := qb.InsertModel("h2h_pair_stats", pairStatsInsertModel(row), "")
		if err != nil {
			return fmt.Errorf("build insert pair stats query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert pair stats %s: %w", row.Key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace pair stats tx: %w", err)
	}
	return nil
}
