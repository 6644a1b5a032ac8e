package cluster

import "github.com/bruhhgnik/DCLG-outfitrec/internal/domain"

// Selector is a FIFO of (dimension, value) clusters, ordered by the
// Clusterer's priority rule, with a diversity constraint against
// already-emitted looks.
type Selector struct {
	queue   []Cluster
	emitted []map[string]struct{} // sku sets of looks already accepted
}

// NewSelector creates a Selector over clusters, which must already be in
// final selection-priority order (see Clusterer.Cluster).
func NewSelector(clusters []Cluster) *Selector {
	return &Selector{queue: clusters}
}

// Next pops the highest-priority unused cluster that is not a subset of any
// already-emitted look's member set, skipping over any that are. It returns
// false once the queue is exhausted.
func (s *Selector) Next() (Cluster, bool) {
	for len(s.queue) > 0 {
		c := s.queue[0]
		s.queue = s.queue[1:]
		if s.isSubsetOfEmitted(c) {
			continue
		}
		return c, true
	}
	return Cluster{}, false
}

// MarkEmitted records the SKU set of a look the caller just accepted from a
// cluster returned by Next, so future Next calls can enforce diversity.
func (s *Selector) MarkEmitted(look domain.Look) {
	s.emitted = append(s.emitted, look.SKUSet())
}

func (s *Selector) isSubsetOfEmitted(c Cluster) bool {
	candidateSKUs := make(map[string]struct{}, len(c.Candidates))
	for _, cand := range c.Candidates {
		candidateSKUs[cand.Product.SKU] = struct{}{}
	}
	for _, used := range s.emitted {
		if isSubset(candidateSKUs, used) {
			return true
		}
	}
	return false
}

func isSubset(a, b map[string]struct{}) bool {
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}
