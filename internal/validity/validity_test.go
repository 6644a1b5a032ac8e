package validity

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bruhhgnik/DCLG-outfitrec/internal/domain"
)

func anchor() domain.Product {
	return domain.Product{
		SKU:            "GYM_TANK_001",
		Slot:           domain.SlotBaseTop,
		Occasion:       []string{"Gym", "Casual", "Everyday"},
		Aesthetics:     []string{"Athletic", "Streetwear"},
		FormalityScore: 1,
	}
}

func TestFilter_Valid_SameSlotRejected(t *testing.T) {
	f := New(Config{FormalitySpread: 2})
	a := anchor()
	c := a
	c.SKU = "OTHER_TOP"
	assert.False(t, f.Valid(a, c))
}

func TestFilter_Valid_OccasionDisjointRejected(t *testing.T) {
	f := New(Config{FormalitySpread: 2})
	a := anchor()
	c := domain.Product{SKU: "X", Slot: domain.SlotFootwear, Occasion: []string{"Formal"}, FormalityScore: 1}
	assert.False(t, f.Valid(a, c))
}

func TestFilter_Valid_EmptyOccasionVacuouslyPasses(t *testing.T) {
	f := New(Config{FormalitySpread: 2})
	a := anchor()
	c := domain.Product{SKU: "X", Slot: domain.SlotFootwear, FormalityScore: 1}
	assert.True(t, f.Valid(a, c))
}

func TestFilter_Valid_FormalitySpreadExceeded(t *testing.T) {
	f := New(Config{FormalitySpread: 2})
	a := anchor()
	c := domain.Product{SKU: "BLAZER_001", Slot: domain.SlotOuterwear, Occasion: []string{"Gym"}, FormalityScore: 4}
	assert.False(t, f.Valid(a, c))
}

func TestFilter_Valid_FormalitySpreadWithinBound(t *testing.T) {
	f := New(Config{FormalitySpread: 2})
	a := anchor()
	c := domain.Product{SKU: "JACKET_001", Slot: domain.SlotOuterwear, Occasion: []string{"Gym"}, FormalityScore: 3}
	assert.True(t, f.Valid(a, c))
}

func TestFilter_Valid_SeasonDisjointRejected(t *testing.T) {
	f := New(Config{FormalitySpread: 2})
	a := anchor()
	a.Season = []string{"Winter"}
	c := domain.Product{SKU: "X", Slot: domain.SlotFootwear, Occasion: []string{"Gym"}, Season: []string{"Summer"}, FormalityScore: 1}
	assert.False(t, f.Valid(a, c))
}

func TestFilter_Valid_StrictAestheticsRejectsNoOverlap(t *testing.T) {
	f := New(Config{FormalitySpread: 2, StrictAesthetics: true})
	a := anchor()
	c := domain.Product{SKU: "X", Slot: domain.SlotFootwear, Occasion: []string{"Gym"}, Aesthetics: []string{"Formalwear"}, FormalityScore: 1}
	assert.False(t, f.Valid(a, c))
}

func TestFilter_Apply_PreservesScore(t *testing.T) {
	f := New(Config{FormalitySpread: 2})
	a := anchor()
	valid := domain.Product{SKU: "SHORTS_001", Slot: domain.SlotPrimaryBottom, Occasion: []string{"Gym"}, FormalityScore: 1}
	invalid := domain.Product{SKU: "BLAZER_001", Slot: domain.SlotOuterwear, Occasion: []string{"Gym"}, FormalityScore: 5}

	out := f.Apply(a, []domain.Candidate{
		{Product: valid, Score: 0.9},
		{Product: invalid, Score: 0.8},
	})

	assert.Len(t, out, 1)
	assert.Equal(t, "SHORTS_001", out[0].Product.SKU)
	assert.Equal(t, 0.9, out[0].Score)
}
