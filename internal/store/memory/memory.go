// Package memory provides an in-process ProductStore/EdgeStore pair used by
// the seed scenarios and service-level tests. It is not a production
// collaborator; the postgres package holds those.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/bruhhgnik/DCLG-outfitrec/internal/domain"
	"github.com/bruhhgnik/DCLG-outfitrec/internal/store"
)

// Store is an in-memory ProductStore and EdgeStore, thread-safe via
// sync.RWMutex, in the style of the teacher's in-memory search engine.
type Store struct {
	mu       sync.RWMutex
	products map[string]domain.Product
	edges    map[string][]domain.Edge // keyed by from_sku
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		products: make(map[string]domain.Product),
		edges:    make(map[string][]domain.Edge),
	}
}

// AddProduct indexes a single product.
func (s *Store) AddProduct(p domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[p.SKU] = p
}

// AddEdge indexes a single directed edge. AddEdge does not validate that
// e.TargetSlot matches the actual slot of e.ToSKU; callers (fixtures, tests)
// are expected to keep this consistent, mirroring the store-layer invariant
// that ingestion owns.
func (s *Store) AddEdge(e domain.Edge) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.edges[e.FromSKU] = append(s.edges[e.FromSKU], e)
}

// Get retrieves a single product by sku.
func (s *Store) Get(_ context.Context, sku string) (domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.products[sku]
	if !ok {
		return domain.Product{}, store.ErrProductNotFound
	}
	return p, nil
}

// GetMany batch-loads products by sku; missing skus are simply omitted.
func (s *Store) GetMany(_ context.Context, skus []string) (map[string]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]domain.Product, len(skus))
	for _, sku := range skus {
		if p, ok := s.products[sku]; ok {
			out[sku] = p
		}
	}
	return out, nil
}

// Neighbors returns every edge out of sku with score >= minScore, ordered by
// score descending then ToSKU ascending.
func (s *Store) Neighbors(_ context.Context, sku string, minScore float64) ([]domain.Edge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Edge
	for _, e := range s.edges[sku] {
		if e.Score >= minScore {
			out = append(out, e)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].ToSKU < out[j].ToSKU
	})

	return out, nil
}
