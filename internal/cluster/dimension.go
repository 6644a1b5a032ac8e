// Package cluster implements the DimensionClusterer and ClusterSelector:
// partitioning the candidate pool into (dimension, value) clusters and
// ordering them for look generation.
package cluster

import (
	"sort"
	"strconv"

	"github.com/bruhhgnik/DCLG-outfitrec/internal/domain"
)

// Color Strategy bucket names; these ARE the cluster value strings reported
// in the response (e.g. "Monochrome Color"), not the literal anchor color.
const (
	ColorMonochrome = "Monochrome"
	ColorNeutral    = "Neutral"
	ColorAccent     = "Accent"
	ColorTonal      = "Tonal"
)

// Cluster is a set of candidates sharing a value of one dimension.
type Cluster struct {
	Dimension  domain.Dimension
	Value      string
	Candidates []domain.Candidate
}

func (c Cluster) meanScore() float64 {
	if len(c.Candidates) == 0 {
		return 0
	}
	var sum float64
	for _, cand := range c.Candidates {
		sum += cand.Score
	}
	return sum / float64(len(c.Candidates))
}

func (c Cluster) distinctSlots() int {
	seen := make(map[domain.Slot]struct{}, len(c.Candidates))
	for _, cand := range c.Candidates {
		seen[cand.Product.Slot] = struct{}{}
	}
	return len(seen)
}

// Clusterer partitions a validity-filtered candidate pool into overlapping
// dimension clusters and returns them in the fixed priority order used by
// selection: Occasion, then Aesthetic, then Color Strategy, then Formality;
// within a dimension, by descending mean score, then descending size, then
// lexicographically by value.
type Clusterer struct{}

// New creates a DimensionClusterer.
func New() *Clusterer { return &Clusterer{} }

// Cluster builds every non-empty, non-degenerate cluster for anchor over
// candidates, in final selection order.
func (d *Clusterer) Cluster(anchor domain.Product, candidates []domain.Candidate) []Cluster {
	var all []Cluster
	all = append(all, order(occasionClusters(anchor, candidates))...)
	all = append(all, order(aestheticClusters(anchor, candidates))...)
	all = append(all, order(colorClusters(anchor, candidates))...)
	all = append(all, order(formalityClusters(anchor, candidates))...)
	return all
}

func order(clusters []Cluster) []Cluster {
	sort.Slice(clusters, func(i, j int) bool {
		if clusters[i].meanScore() != clusters[j].meanScore() {
			return clusters[i].meanScore() > clusters[j].meanScore()
		}
		if len(clusters[i].Candidates) != len(clusters[j].Candidates) {
			return len(clusters[i].Candidates) > len(clusters[j].Candidates)
		}
		return clusters[i].Value < clusters[j].Value
	})
	return clusters
}

func viable(dimension domain.Dimension, value string, members []domain.Candidate) (Cluster, bool) {
	c := Cluster{Dimension: dimension, Value: value, Candidates: members}
	if c.distinctSlots() < 2 {
		return Cluster{}, false
	}
	return c, true
}

func occasionClusters(anchor domain.Product, candidates []domain.Candidate) []Cluster {
	var out []Cluster
	for _, value := range anchor.Occasion {
		var members []domain.Candidate
		for _, c := range candidates {
			if c.Product.HasOccasion(value) {
				members = append(members, c)
			}
		}
		if cl, ok := viable(domain.DimensionOccasion, value, members); ok {
			out = append(out, cl)
		}
	}
	return out
}

func aestheticClusters(anchor domain.Product, candidates []domain.Candidate) []Cluster {
	var out []Cluster
	for _, value := range anchor.Aesthetics {
		var members []domain.Candidate
		for _, c := range candidates {
			if c.Product.HasAesthetic(value) {
				members = append(members, c)
			}
		}
		if cl, ok := viable(domain.DimensionAesthetic, value, members); ok {
			out = append(out, cl)
		}
	}
	return out
}

func colorClusters(anchor domain.Product, candidates []domain.Candidate) []Cluster {
	var out []Cluster
	anchorColor := anchor.PrimaryColor

	if anchorColor != "" {
		var mono []domain.Candidate
		for _, c := range candidates {
			if domain.ColorsEqual(c.Product.PrimaryColor, anchorColor) {
				mono = append(mono, c)
			}
		}
		if cl, ok := viable(domain.DimensionColor, ColorMonochrome, mono); ok {
			out = append(out, cl)
		}
	}

	var neutral []domain.Candidate
	for _, c := range candidates {
		if domain.IsNeutral(c.Product.PrimaryColor) {
			neutral = append(neutral, c)
		}
	}
	if cl, ok := viable(domain.DimensionColor, ColorNeutral, neutral); ok {
		out = append(out, cl)
	}

	if anchorColor != "" {
		var accent []domain.Candidate
		for _, c := range candidates {
			if domain.IsAccentPair(c.Product.PrimaryColor, anchorColor) {
				accent = append(accent, c)
			}
		}
		if cl, ok := viable(domain.DimensionColor, ColorAccent, accent); ok {
			out = append(out, cl)
		}

		var tonal []domain.Candidate
		for _, c := range candidates {
			if domain.IsTonal(c.Product.PrimaryColor, anchorColor) {
				tonal = append(tonal, c)
			}
		}
		if cl, ok := viable(domain.DimensionColor, ColorTonal, tonal); ok {
			out = append(out, cl)
		}
	}

	return out
}

func formalityClusters(anchor domain.Product, candidates []domain.Candidate) []Cluster {
	if anchor.FormalityScore == 0 {
		return nil
	}

	seen := make(map[int]struct{}, 3)
	var values []int
	for _, delta := range []int{0, -1, 1} {
		v := anchor.FormalityScore + delta
		if v < 1 || v > 5 {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}

	var out []Cluster
	for _, v := range values {
		var members []domain.Candidate
		for _, c := range candidates {
			if c.Product.FormalityScore == v {
				members = append(members, c)
			}
		}
		if cl, ok := viable(domain.DimensionFormality, strconv.Itoa(v), members); ok {
			out = append(out, cl)
		}
	}
	return out
}
