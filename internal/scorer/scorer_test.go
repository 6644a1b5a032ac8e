package scorer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bruhhgnik/DCLG-outfitrec/internal/domain"
)

func TestEdgeIndex_SymmetricMaxOfBothDirections(t *testing.T) {
	idx := NewEdgeIndex([]domain.Edge{
		{FromSKU: "A", ToSKU: "B", Score: 0.6},
		{FromSKU: "B", ToSKU: "A", Score: 0.8},
	})
	assert.Equal(t, 0.8, idx.Score("A", "B"))
	assert.Equal(t, 0.8, idx.Score("B", "A"))
}

func TestEdgeIndex_UnknownPairDefaultsZero(t *testing.T) {
	idx := NewEdgeIndex([]domain.Edge{{FromSKU: "A", ToSKU: "B", Score: 0.9}})
	assert.Equal(t, float64(0), idx.Score("B", "C"))
	assert.Equal(t, float64(0), idx.Score("X", "X"))
}

func TestScorer_Increment_MeanEdgeScorePlusDimensionBonus(t *testing.T) {
	idx := NewEdgeIndex([]domain.Edge{
		{FromSKU: "ANCHOR", ToSKU: "SHORTS", Score: 0.9},
		{FromSKU: "ANCHOR", ToSKU: "SNEAKER", Score: 0.8},
	})
	s := New(idx, DefaultWeights())
	anchor := domain.Product{SKU: "ANCHOR", Occasion: []string{"Gym"}}
	shorts := domain.Product{SKU: "SHORTS", Occasion: []string{"Gym"}}
	sneaker := domain.Product{SKU: "SNEAKER", Occasion: []string{"Gym"}}

	inc := s.Increment(sneaker, []domain.Product{shorts}, anchor, domain.DimensionOccasion, "Gym")
	// meanEdge: edgeScore(SNEAKER, SHORTS) = 0 (non-anchor pair); bonus: both share Gym -> 1*0.3
	assert.InDelta(t, 0.3, inc, 1e-9)
}

func TestScorer_Increment_AnchorPairUsesRealEdgeScore(t *testing.T) {
	idx := NewEdgeIndex([]domain.Edge{{FromSKU: "ANCHOR", ToSKU: "SHORTS", Score: 0.9}})
	s := New(idx, DefaultWeights())
	anchor := domain.Product{SKU: "ANCHOR", Occasion: []string{"Gym"}}
	shorts := domain.Product{SKU: "SHORTS", Occasion: []string{"Gym"}}

	inc := s.Increment(shorts, []domain.Product{anchor}, anchor, domain.DimensionOccasion, "Gym")
	assert.InDelta(t, 0.9+0.3, inc, 1e-9)
}

func TestScorer_Score_SlotCoverageAndAgreement(t *testing.T) {
	idx := NewEdgeIndex([]domain.Edge{
		{FromSKU: "ANCHOR", ToSKU: "SHORTS", Score: 1.0},
		{FromSKU: "ANCHOR", ToSKU: "SNEAKER", Score: 1.0},
	})
	s := New(idx, DefaultWeights())
	anchor := domain.Product{SKU: "ANCHOR", Occasion: []string{"Gym"}}
	shorts := domain.Product{SKU: "SHORTS", Occasion: []string{"Gym"}}
	sneaker := domain.Product{SKU: "SNEAKER", Occasion: []string{"Gym"}}

	items := []domain.Product{anchor, shorts, sneaker}
	got := s.Score(items, anchor, domain.DimensionOccasion, "Gym", 6)

	// meanPairwise: (E(anchor,shorts)=1 + E(anchor,sneaker)=1 + E(shorts,sneaker)=0)/3 = 0.6667
	// agreement: 3/3 = 1
	// coverage: 3/6 = 0.5
	expected := 0.5*(2.0/3.0) + 0.3*1.0 + 0.2*0.5
	assert.InDelta(t, expected, got, 1e-6)
}

func TestScorer_Score_ColorMonochromeAgreement(t *testing.T) {
	idx := NewEdgeIndex(nil)
	s := New(idx, DefaultWeights())
	anchor := domain.Product{SKU: "ANCHOR", PrimaryColor: "Black"}
	matchingAccessory := domain.Product{SKU: "CAP", PrimaryColor: "Black"}
	offAccessory := domain.Product{SKU: "BELT", PrimaryColor: "Red"}

	items := []domain.Product{anchor, matchingAccessory}
	got := s.Score(items, anchor, domain.DimensionColor, "Monochrome", 6)
	assert.Greater(t, got, float64(0))

	itemsOff := []domain.Product{anchor, offAccessory}
	gotOff := s.Score(itemsOff, anchor, domain.DimensionColor, "Monochrome", 6)
	assert.Less(t, gotOff, got)
}
