// Package scorer implements the CoherenceScorer: the pairwise edge-score
// lookup, the per-candidate greedy increment used by LookAssembler, and the
// final informational coherence value reported in a response.
package scorer

import (
	"strconv"

	"github.com/bruhhgnik/DCLG-outfitrec/internal/cluster"
	"github.com/bruhhgnik/DCLG-outfitrec/internal/domain"
)

// Weights are the coherence formula's component weights (see spec §4.7).
type Weights struct {
	Alpha float64 // meanPairwise weight
	Beta  float64 // dimensionAgreement / dimensionBonus weight
	Gamma float64 // slotCoverage weight
}

// DefaultWeights matches the spec's fixed constants.
func DefaultWeights() Weights {
	return Weights{Alpha: 0.5, Beta: 0.3, Gamma: 0.2}
}

type pairKey struct {
	a, b string
}

func newPairKey(x, y string) pairKey {
	if x > y {
		x, y = y, x
	}
	return pairKey{x, y}
}

// EdgeIndex is a symmetric lookup over the anchor's directed compatibility
// edges. Only anchor-to-peer edges are ever fetched from EdgeStore, so any
// pair not involving the anchor resolves to a default score of 0.
type EdgeIndex struct {
	scores map[pairKey]float64
}

// NewEdgeIndex builds a symmetric lookup from a set of directed edges,
// taking the max of the two directions whenever both are present.
func NewEdgeIndex(edges []domain.Edge) *EdgeIndex {
	idx := &EdgeIndex{scores: make(map[pairKey]float64, len(edges))}
	for _, e := range edges {
		k := newPairKey(e.FromSKU, e.ToSKU)
		if existing, ok := idx.scores[k]; !ok || e.Score > existing {
			idx.scores[k] = e.Score
		}
	}
	return idx
}

// Score returns edgeScore(x, y): the symmetric max(E(x,y), E(y,x)) if either
// direction is known, else 0.
func (idx *EdgeIndex) Score(x, y string) float64 {
	if x == y {
		return 0
	}
	return idx.scores[newPairKey(x, y)]
}

// Scorer computes coherence increments during assembly and the final
// informational coherence value for a completed look.
type Scorer struct {
	edges   *EdgeIndex
	weights Weights
}

// New creates a CoherenceScorer bound to the request's edge index.
func New(edges *EdgeIndex, weights Weights) *Scorer {
	return &Scorer{edges: edges, weights: weights}
}

// Increment computes coherenceIncrement(c, L) for a candidate product c
// against the partial look's current items, constrained to the anchor and
// the selected cluster's dimension/value for the dimensionBonus term.
func (s *Scorer) Increment(c domain.Product, current []domain.Product, anchor domain.Product, dimension domain.Dimension, value string) float64 {
	meanEdge := s.meanEdgeScore(c, current)
	bonus := s.dimensionBonus(c, current, anchor, dimension, value)
	return meanEdge + bonus*s.weights.Beta
}

func (s *Scorer) meanEdgeScore(c domain.Product, current []domain.Product) float64 {
	if len(current) == 0 {
		return 0
	}
	var sum float64
	for _, p := range current {
		sum += s.edges.Score(c.SKU, p.SKU)
	}
	return sum / float64(len(current))
}

func (s *Scorer) dimensionBonus(c domain.Product, current []domain.Product, anchor domain.Product, dimension domain.Dimension, value string) float64 {
	all := append(append([]domain.Product{}, current...), c)
	var matching int
	for _, p := range all {
		if sharesClusterValue(p, anchor, dimension, value) {
			matching++
		}
	}
	return float64(matching) / float64(len(all))
}

// sharesClusterValue reports whether p belongs to the named (dimension,
// value) cluster, evaluated against anchor for the color-strategy and
// formality dimensions whose cluster value is defined relative to the
// anchor rather than as a literal per-item tag.
func sharesClusterValue(p, anchor domain.Product, dimension domain.Dimension, value string) bool {
	switch dimension {
	case domain.DimensionOccasion:
		return p.HasOccasion(value)
	case domain.DimensionAesthetic:
		return p.HasAesthetic(value)
	case domain.DimensionColor:
		switch value {
		case cluster.ColorMonochrome:
			return domain.ColorsEqual(p.PrimaryColor, anchor.PrimaryColor)
		case cluster.ColorNeutral:
			return domain.IsNeutral(p.PrimaryColor)
		case cluster.ColorAccent:
			return domain.IsAccentPair(p.PrimaryColor, anchor.PrimaryColor)
		case cluster.ColorTonal:
			return domain.IsTonal(p.PrimaryColor, anchor.PrimaryColor)
		default:
			return false
		}
	case domain.DimensionFormality:
		want, err := strconv.Atoi(value)
		if err != nil {
			return false
		}
		return p.FormalityScore == want
	default:
		return false
	}
}

// Score computes the final informational coherence(L) for a completed look:
// alpha*meanPairwise + beta*dimensionAgreement + gamma*slotCoverage.
func (s *Scorer) Score(items []domain.Product, anchor domain.Product, dimension domain.Dimension, value string, totalSlots int) float64 {
	mean := s.meanPairwise(items)
	agreement := s.dimensionAgreement(items, anchor, dimension, value)
	coverage := float64(len(items)) / float64(totalSlots)
	return s.weights.Alpha*mean + s.weights.Beta*agreement + s.weights.Gamma*coverage
}

func (s *Scorer) meanPairwise(items []domain.Product) float64 {
	n := len(items)
	if n < 2 {
		return 0
	}
	var sum float64
	var pairs int
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			sum += s.edges.Score(items[i].SKU, items[j].SKU)
			pairs++
		}
	}
	if pairs == 0 {
		return 0
	}
	return sum / float64(pairs)
}

func (s *Scorer) dimensionAgreement(items []domain.Product, anchor domain.Product, dimension domain.Dimension, value string) float64 {
	if len(items) == 0 {
		return 0
	}
	var matching int
	for _, p := range items {
		if sharesClusterValue(p, anchor, dimension, value) {
			matching++
		}
	}
	return float64(matching) / float64(len(items))
}
