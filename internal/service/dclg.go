// Package service implements DCLGService: the orchestrator that wires the
// cache, stores, validity filter, clusterer, assembler, and scorer into the
// single generate operation the transport layer calls.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bruhhgnik/DCLG-outfitrec/internal/assembler"
	"github.com/bruhhgnik/DCLG-outfitrec/internal/cache"
	"github.com/bruhhgnik/DCLG-outfitrec/internal/cluster"
	"github.com/bruhhgnik/DCLG-outfitrec/internal/domain"
	"github.com/bruhhgnik/DCLG-outfitrec/internal/platform/apperrors"
	"github.com/bruhhgnik/DCLG-outfitrec/internal/scorer"
	"github.com/bruhhgnik/DCLG-outfitrec/internal/store"
	"github.com/bruhhgnik/DCLG-outfitrec/internal/validity"
)

// Config holds the per-request tunables the orchestrator itself consumes,
// independent of its collaborators' own configs.
type Config struct {
	MinEdgeScore     float64
	MaxLooks         int
	CoherenceWeights scorer.Weights
}

// DCLGService orchestrates a single generate call: cache probe, store
// fetches, filtering, clustering, and the select/assemble/score loop.
type DCLGService struct {
	products     store.ProductStore
	edges        store.EdgeStore
	cache        *cache.FingerprintCache
	filter       *validity.Filter
	clusterer    *cluster.Clusterer
	assemblerCfg assembler.Config
	cfg          Config
	log          *slog.Logger
}

// New creates a DCLGService bound to its collaborators.
func New(
	products store.ProductStore,
	edges store.EdgeStore,
	fc *cache.FingerprintCache,
	filter *validity.Filter,
	clusterer *cluster.Clusterer,
	assemblerCfg assembler.Config,
	cfg Config,
	log *slog.Logger,
) *DCLGService {
	return &DCLGService{
		products:     products,
		edges:        edges,
		cache:        fc,
		filter:       filter,
		clusterer:    clusterer,
		assemblerCfg: assemblerCfg,
		cfg:          cfg,
		log:          log,
	}
}

// Generate produces up to numLooks coherent looks anchored on anchorSKU.
func (s *DCLGService) Generate(ctx context.Context, anchorSKU string, numLooks int) (domain.LooksResponse, error) {
	if numLooks < 1 || numLooks > s.cfg.MaxLooks {
		return domain.LooksResponse{}, apperrors.InvalidArgument(
			fmt.Sprintf("numLooks must be between 1 and %d, got %d", s.cfg.MaxLooks, numLooks))
	}

	key := cache.Key{Anchor: anchorSKU, NumLooks: numLooks}
	if cached, ok := s.cache.Get(key); ok {
		s.log.DebugContext(ctx, "cache hit", slog.String("anchor", anchorSKU), slog.Int("num_looks", numLooks))
		return cached, nil
	}

	resp, err := s.generate(ctx, anchorSKU, numLooks)
	if err != nil {
		return domain.LooksResponse{}, err
	}

	s.cache.Put(key, resp)
	return resp, nil
}

func (s *DCLGService) generate(ctx context.Context, anchorSKU string, numLooks int) (domain.LooksResponse, error) {
	anchor, err := s.products.Get(ctx, anchorSKU)
	if err != nil {
		if errors.Is(err, store.ErrProductNotFound) {
			return domain.LooksResponse{}, apperrors.AnchorNotFound(anchorSKU)
		}
		return domain.LooksResponse{}, apperrors.StoreUnavailable(err)
	}

	edges, err := s.edges.Neighbors(ctx, anchorSKU, s.cfg.MinEdgeScore)
	if err != nil {
		return domain.LooksResponse{}, apperrors.StoreUnavailable(err)
	}

	if len(edges) == 0 {
		return domain.LooksResponse{Anchor: anchor, Looks: []domain.Look{}, TotalLooks: 0}, nil
	}

	peerSKUs := make([]string, 0, len(edges))
	for _, e := range edges {
		peerSKUs = append(peerSKUs, e.ToSKU)
	}

	peers, err := s.products.GetMany(ctx, peerSKUs)
	if err != nil {
		return domain.LooksResponse{}, apperrors.StoreUnavailable(err)
	}

	candidates := make([]domain.Candidate, 0, len(edges))
	for _, e := range edges {
		p, ok := peers[e.ToSKU]
		if !ok {
			s.log.DebugContext(ctx, "peer missing from product store, dropping", slog.String("sku", e.ToSKU))
			continue
		}
		candidates = append(candidates, domain.Candidate{Product: p, Score: e.Score})
	}

	candidates = s.filter.Apply(anchor, candidates)
	if len(candidates) == 0 {
		return domain.LooksResponse{Anchor: anchor, Looks: []domain.Look{}, TotalLooks: 0}, nil
	}

	edgeIndex := scorer.NewEdgeIndex(edges)
	sc := scorer.New(edgeIndex, s.cfg.CoherenceWeights)
	asm := assembler.New(sc, s.assemblerCfg)

	clusters := s.clusterer.Cluster(anchor, candidates)
	sel := cluster.NewSelector(clusters)

	looks := make([]domain.Look, 0, numLooks)
	for len(looks) < numLooks {
		c, ok := sel.Next()
		if !ok {
			break
		}
		look, ok := asm.Assemble(anchor, c)
		if !ok {
			continue
		}
		lookSKUs := look.SKUSet()
		duplicate := false
		for _, prev := range looks {
			prevSKUs := prev.SKUSet()
			same := len(prevSKUs) == len(lookSKUs)
			for sku := range lookSKUs {
				if _, found := prevSKUs[sku]; !found {
					same = false
				}
			}
			duplicate = duplicate || same
		}
		if duplicate {
			continue
		}
		looks = append(looks, look)
		sel.MarkEmitted(look)
	}

	return domain.LooksResponse{Anchor: anchor, Looks: looks, TotalLooks: len(looks)}, nil
}
