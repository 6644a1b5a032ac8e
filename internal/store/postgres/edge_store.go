package postgres

import (
	"context"
	"fmt"

	"github.com/bruhhgnik/DCLG-outfitrec/internal/domain"
)

// EdgeStore implements store.EdgeStore using PostgreSQL.
type EdgeStore struct {
	pool dbpool
}

// NewEdgeStore creates a new PostgreSQL-backed edge store.
func NewEdgeStore(pool dbpool) *EdgeStore {
	return &EdgeStore{pool: pool}
}

// Neighbors returns every edge out of sku with score >= minScore, ordered by
// score descending then to_sku ascending, matching EdgeStore.neighbors.
func (s *EdgeStore) Neighbors(ctx context.Context, sku string, minScore float64) ([]domain.Edge, error) {
	query := `
		SELECT from_sku, to_sku, target_slot, score
		FROM edges
		WHERE from_sku = $1 AND score >= $2
		ORDER BY score DESC, to_sku ASC`

	rows, err := s.pool.Query(ctx, query, sku, minScore)
	if err != nil {
		return nil, fmt.Errorf("fetch neighbors of %s: %w", sku, err)
	}
	defer rows.Close()

	var edges []domain.Edge
	for rows.Next() {
		var e domain.Edge
		var targetSlot string
		if err := rows.Scan(&e.FromSKU, &e.ToSKU, &targetSlot, &e.Score); err != nil {
			return nil, fmt.Errorf("scan edge row: %w", err)
		}
		e.TargetSlot = domain.Slot(targetSlot)
		edges = append(edges, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate edge rows: %w", err)
	}

	return edges, nil
}
