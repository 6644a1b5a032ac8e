// Package store defines the two read-only collaborators the DCLG core
// consumes: ProductStore and EdgeStore. Ingestion, scoring, and the catalog's
// own persistence concerns live outside this package entirely.
package store

import (
	"context"
	"errors"

	"github.com/bruhhgnik/DCLG-outfitrec/internal/domain"
)

// ErrProductNotFound is the sentinel every ProductStore implementation
// returns from Get when the sku has no row.
var ErrProductNotFound = errors.New("product not found")

// ProductStore is keyed sku -> Product.
type ProductStore interface {
	// Get retrieves a single product. Returns apperrors.ErrAnchorNotFound-
	// wrapping behavior is the caller's responsibility; implementations
	// return a plain not-found sentinel (see postgres.ErrProductNotFound).
	Get(ctx context.Context, sku string) (domain.Product, error)

	// GetMany batch-loads products by sku. Missing skus are omitted from the
	// result map rather than causing an error.
	GetMany(ctx context.Context, skus []string) (map[string]domain.Product, error)
}

// EdgeStore is keyed (sku, target_slot?) -> [(peer_sku, score)], ordered by
// score descending, ties broken lexicographically by peer sku.
type EdgeStore interface {
	// Neighbors returns every edge out of sku with Score >= minScore, ordered
	// by score descending then ToSKU ascending.
	Neighbors(ctx context.Context, sku string, minScore float64) ([]domain.Edge, error)
}
