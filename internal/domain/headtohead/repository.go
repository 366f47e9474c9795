package headtohead

import "context"

type Repository interface {
	Get(ctx context.Context, key PairKey) (PairStats, bool, error)
	// List returns stored pair rows in canonical key order, capped at limit
	// when limit > 0.
	List(ctx context.Context, limit int) ([]PairStats, error)
	UpsertPairs(ctx context.Context, rows []PairStats) error
	// ReplaceAll swaps the whole pair table atomically. Pair rows carry no
	// season scope, so restore always targets the full table.
	ReplaceAll(ctx context.Context, rows []PairStats) error
}
