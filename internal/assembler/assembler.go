// Package assembler implements the LookAssembler: greedy per-slot selection
// of a coherent outfit from a single dimension cluster, subject to the
// pairwise fashion rules that govern what may sit in the same look.
package assembler

import (
	"sort"

	"github.com/bruhhgnik/DCLG-outfitrec/internal/cluster"
	"github.com/bruhhgnik/DCLG-outfitrec/internal/domain"
	"github.com/bruhhgnik/DCLG-outfitrec/internal/scorer"
)

// closedOuterwear is the set of outerwear categories treated as
// closed-silhouette for the statement-piece pairwise rule.
var closedOuterwear = map[string]struct{}{
	"Hoodie": {}, "Knit": {}, "Puffer": {}, "Zip Jacket": {},
}

// Config holds the tunables the assembler reads from service config.
type Config struct {
	IntraLookFormalitySpread int
}

// DefaultConfig matches the spec's fixed default.
func DefaultConfig() Config {
	return Config{IntraLookFormalitySpread: 2}
}

// Assembler builds one Look at a time from an anchor and a dimension
// cluster's candidate pool.
type Assembler struct {
	scorer *scorer.Scorer
	cfg    Config
}

// New creates a LookAssembler bound to a request's CoherenceScorer.
func New(s *scorer.Scorer, cfg Config) *Assembler {
	return &Assembler{scorer: s, cfg: cfg}
}

// Assemble greedily fills every non-anchor slot from c's candidates,
// enforces the footwear-or-accessory and minimum-size requirements, and
// returns the completed look. The second return value is false if the
// cluster was rejected by either requirement.
func (a *Assembler) Assemble(anchor domain.Product, c cluster.Cluster) (domain.Look, bool) {
	bySlot := indexBySlot(c.Candidates)

	items := map[domain.Slot]domain.Product{anchor.Slot: anchor}
	ordered := []domain.Product{anchor}
	slotsFilled := []domain.Slot{anchor.Slot}

	for _, slot := range domain.AssemblyOrder() {
		if slot == anchor.Slot {
			continue
		}
		pool := bySlot[slot]
		if len(pool) == 0 {
			continue
		}

		best, ok := a.pickBest(pool, ordered, items, anchor, c.Dimension, c.Value)
		if !ok {
			continue
		}

		items[slot] = best.Product
		ordered = append(ordered, best.Product)
		slotsFilled = append(slotsFilled, slot)
	}

	if !hasFootwearOrAccessory(items) {
		return domain.Look{}, false
	}
	if len(ordered) < 3 {
		return domain.Look{}, false
	}

	totalSlots := len(domain.AllSlots())
	coherence := a.scorer.Score(ordered, anchor, c.Dimension, c.Value, totalSlots)

	return domain.Look{
		Anchor:         anchor,
		Items:          items,
		Dimension:      c.Dimension,
		DimensionValue: c.Value,
		Coherence:      coherence,
		SlotsFilled:    slotsFilled,
	}, true
}

func (a *Assembler) pickBest(
	pool []domain.Candidate,
	current []domain.Product,
	items map[domain.Slot]domain.Product,
	anchor domain.Product,
	dimension domain.Dimension,
	value string,
) (domain.Candidate, bool) {
	type scored struct {
		candidate domain.Candidate
		increment float64
	}
	var viable []scored

	for _, cand := range pool {
		if !a.obeysPairwiseRules(cand.Product, current, items) {
			continue
		}
		inc := a.scorer.Increment(cand.Product, current, anchor, dimension, value)
		viable = append(viable, scored{candidate: cand, increment: inc})
	}
	if len(viable) == 0 {
		return domain.Candidate{}, false
	}

	sort.Slice(viable, func(i, j int) bool {
		if viable[i].increment != viable[j].increment {
			return viable[i].increment > viable[j].increment
		}
		if viable[i].candidate.Score != viable[j].candidate.Score {
			return viable[i].candidate.Score > viable[j].candidate.Score
		}
		return viable[i].candidate.Product.SKU < viable[j].candidate.Product.SKU
	})
	return viable[0].candidate, true
}

func (a *Assembler) obeysPairwiseRules(candidate domain.Product, current []domain.Product, items map[domain.Slot]domain.Product) bool {
	for _, p := range current {
		if p.SKU == candidate.SKU {
			return false
		}
		if violatesStatementAthletic(candidate, p) || violatesStatementAthletic(p, candidate) {
			return false
		}
		if violatesStatementClosedOuterwear(candidate, p) || violatesStatementClosedOuterwear(p, candidate) {
			return false
		}
		if !withinIntraLookFormalitySpread(candidate, p, a.cfg.IntraLookFormalitySpread) {
			return false
		}
	}
	if candidate.Slot == domain.SlotAccessory {
		if !obeysAccessoryColorRule(candidate, current) {
			return false
		}
	}
	return true
}

func violatesStatementAthletic(top, other domain.Product) bool {
	if top.Slot != domain.SlotBaseTop || !top.StatementPiece {
		return false
	}
	if other.Slot != domain.SlotPrimaryBottom && other.Slot != domain.SlotSecondaryBottom {
		return false
	}
	return other.HasAesthetic("Athletic")
}

func violatesStatementClosedOuterwear(top, outerwear domain.Product) bool {
	if top.Slot != domain.SlotBaseTop || !top.StatementPiece {
		return false
	}
	if outerwear.Slot != domain.SlotOuterwear {
		return false
	}
	_, closed := closedOuterwear[outerwear.Category]
	return closed
}

func withinIntraLookFormalitySpread(a, b domain.Product, spread int) bool {
	if a.FormalityScore == 0 || b.FormalityScore == 0 {
		return true
	}
	diff := a.FormalityScore - b.FormalityScore
	if diff < 0 {
		diff = -diff
	}
	return diff <= spread
}

// obeysAccessoryColorRule enforces §4.6's accessory-color constraint against
// the look's non-accessory palette, which is fully known by the time
// Accessory is filled (last in AssemblyOrder).
func obeysAccessoryColorRule(accessory domain.Product, palette []domain.Product) bool {
	if domain.IsNeutral(accessory.PrimaryColor) {
		return true
	}

	colors := make([]string, 0, len(palette))
	for _, p := range palette {
		if p.PrimaryColor != "" {
			colors = append(colors, p.PrimaryColor)
		}
	}
	if len(colors) == 0 {
		return true
	}

	if allSameColor(colors) {
		return domain.ColorsEqual(accessory.PrimaryColor, colors[0])
	}
	if allNeutral(colors) {
		// Palette is neutral but the accessory isn't (checked above); reject.
		return false
	}
	if accent, ok := accentColor(colors); ok {
		return domain.ColorsEqual(accessory.PrimaryColor, accent)
	}
	// Palette fits no strict strategy (e.g. tonal-only); don't constrain.
	return true
}

func allSameColor(colors []string) bool {
	for _, c := range colors[1:] {
		if !domain.ColorsEqual(c, colors[0]) {
			return false
		}
	}
	return true
}

func allNeutral(colors []string) bool {
	for _, c := range colors {
		if !domain.IsNeutral(c) {
			return false
		}
	}
	return true
}

// accentColor finds the first palette color that forms an accent pair with
// another palette color and returns that partner color, which is taken as
// the accent hue of the look.
func accentColor(colors []string) (string, bool) {
	for i, a := range colors {
		for j, b := range colors {
			if i == j {
				continue
			}
			if domain.IsAccentPair(a, b) {
				return b, true
			}
		}
	}
	return "", false
}

func hasFootwearOrAccessory(items map[domain.Slot]domain.Product) bool {
	_, footwear := items[domain.SlotFootwear]
	_, accessory := items[domain.SlotAccessory]
	return footwear || accessory
}

func indexBySlot(candidates []domain.Candidate) map[domain.Slot][]domain.Candidate {
	idx := make(map[domain.Slot][]domain.Candidate)
	for _, c := range candidates {
		idx[c.Product.Slot] = append(idx[c.Product.Slot], c)
	}
	return idx
}
