package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bruhhgnik/DCLG-outfitrec/internal/assembler"
	"github.com/bruhhgnik/DCLG-outfitrec/internal/cache"
	"github.com/bruhhgnik/DCLG-outfitrec/internal/cluster"
	"github.com/bruhhgnik/DCLG-outfitrec/internal/domain"
	"github.com/bruhhgnik/DCLG-outfitrec/internal/platform/apperrors"
	"github.com/bruhhgnik/DCLG-outfitrec/internal/platform/logger"
	"github.com/bruhhgnik/DCLG-outfitrec/internal/scorer"
	"github.com/bruhhgnik/DCLG-outfitrec/internal/store/memory"
	"github.com/bruhhgnik/DCLG-outfitrec/internal/validity"
)

// countingEdgeStore wraps a memory.Store and counts Neighbors invocations,
// used by the cache-hit test to assert that a repeated request is served
// from the cache without calling the upstream collaborator again.
type countingEdgeStore struct {
	*memory.Store
	calls int
}

func (c *countingEdgeStore) Neighbors(ctx context.Context, sku string, minScore float64) ([]domain.Edge, error) {
	c.calls++
	return c.Store.Neighbors(ctx, sku, minScore)
}

func newService(t *testing.T, mem *memory.Store) *DCLGService {
	t.Helper()
	fc, err := cache.New(2048, 300*time.Second)
	require.NoError(t, err)

	return New(
		mem,
		mem,
		fc,
		validity.New(validity.Config{FormalitySpread: 2}),
		cluster.New(),
		assembler.DefaultConfig(),
		Config{MinEdgeScore: 0.5, MaxLooks: 10, CoherenceWeights: scorer.DefaultWeights()},
		logger.New("dclg-test", "error"),
	)
}

// gymFixture seeds the catalog used by the seed-scenario tests: a gym tank
// anchor plus a bottom/footwear/accessory triad for the Gym occasion cluster,
// a bottom/footwear pair plus a hoodie for the streetwear aesthetic cluster,
// and a formality-4 blazer that the validity filter drops.
func gymFixture() *memory.Store {
	mem := memory.New()

	anchor := domain.Product{
		SKU: "GYM_TANK_001", Slot: domain.SlotBaseTop,
		Occasion: []string{"Gym", "Casual", "Everyday"}, Aesthetics: []string{"Athletic", "Streetwear"},
		FormalityScore: 1, PrimaryColor: "Black",
	}
	mem.AddProduct(anchor)

	peers := []domain.Product{
		{SKU: "SHORTS_001", Slot: domain.SlotPrimaryBottom, Occasion: []string{"Gym"}, Aesthetics: []string{"Athletic"}, FormalityScore: 1, PrimaryColor: "Gray"},
		{SKU: "SNEAKER_001", Slot: domain.SlotFootwear, Occasion: []string{"Gym"}, Aesthetics: []string{"Athletic"}, FormalityScore: 1, PrimaryColor: "White"},
		{SKU: "CAP_001", Slot: domain.SlotAccessory, Occasion: []string{"Gym"}, Aesthetics: []string{"Athletic"}, FormalityScore: 1, PrimaryColor: "Black"},
		{SKU: "JOGGERS_001", Slot: domain.SlotPrimaryBottom, Occasion: []string{"Casual"}, Aesthetics: []string{"Streetwear"}, FormalityScore: 1, PrimaryColor: "Black"},
		{SKU: "SNEAKER_002", Slot: domain.SlotFootwear, Occasion: []string{"Casual"}, Aesthetics: []string{"Streetwear"}, FormalityScore: 1, PrimaryColor: "White"},
		{SKU: "HOODIE_001", Slot: domain.SlotOuterwear, Occasion: []string{"Casual"}, Aesthetics: []string{"Streetwear"}, FormalityScore: 1, PrimaryColor: "Black", Category: "Hoodie"},
		{SKU: "BLAZER_001", Slot: domain.SlotOuterwear, Occasion: []string{"Gym"}, Aesthetics: []string{"Athletic"}, FormalityScore: 4, PrimaryColor: "Navy"},
	}
	for _, p := range peers {
		mem.AddProduct(p)
	}

	edges := []struct {
		to    string
		score float64
	}{
		{"SHORTS_001", 0.85}, {"SNEAKER_001", 0.8}, {"CAP_001", 0.75},
		{"JOGGERS_001", 0.6}, {"SNEAKER_002", 0.58}, {"HOODIE_001", 0.55},
		{"BLAZER_001", 0.95},
	}
	slotOf := make(map[string]domain.Slot, len(peers))
	for _, p := range peers {
		slotOf[p.SKU] = p.Slot
	}
	for _, e := range edges {
		mem.AddEdge(domain.Edge{FromSKU: anchor.SKU, ToSKU: e.to, TargetSlot: slotOf[e.to], Score: e.score})
	}

	return mem
}

func TestGenerate_S1_GymOccasionFiresFirst(t *testing.T) {
	mem := gymFixture()
	svc := newService(t, mem)

	resp, err := svc.Generate(context.Background(), "GYM_TANK_001", 2)
	require.NoError(t, err)
	require.NotEmpty(t, resp.Looks)

	first := resp.Looks[0]
	assert.Equal(t, domain.DimensionOccasion, first.Dimension)
	assert.Equal(t, "Gym", first.DimensionValue)
	assert.Equal(t, "SHORTS_001", first.Items[domain.SlotPrimaryBottom].SKU)
	assert.Equal(t, "SNEAKER_001", first.Items[domain.SlotFootwear].SKU)
	assert.Equal(t, "CAP_001", first.Items[domain.SlotAccessory].SKU)
	assert.Greater(t, first.Coherence, float64(0))
	assert.Less(t, first.Coherence, float64(1))
}

func TestGenerate_S3_FormalityGapExcludesBlazer(t *testing.T) {
	mem := gymFixture()
	svc := newService(t, mem)

	resp, err := svc.Generate(context.Background(), "GYM_TANK_001", 10)
	require.NoError(t, err)

	for _, look := range resp.Looks {
		for _, item := range look.Items {
			assert.NotEqual(t, "BLAZER_001", item.SKU, "formality gap of 3 exceeds the anchor-vs-item spread of 2")
		}
	}
}

func TestGenerate_S4_StatementTopDropsHoodie(t *testing.T) {
	mem := gymFixture()
	anchor, err := mem.Get(context.Background(), "GYM_TANK_001")
	require.NoError(t, err)
	anchor.StatementPiece = true
	mem.AddProduct(anchor)
	svc := newService(t, mem)

	resp, err := svc.Generate(context.Background(), "GYM_TANK_001", 10)
	require.NoError(t, err)

	for _, look := range resp.Looks {
		if look.Items[domain.SlotOuterwear].SKU == "HOODIE_001" {
			t.Fatalf("statement-top anchor must never be combined with closed-silhouette hoodie outerwear")
		}
	}
}

func TestGenerate_S5_CacheHitSkipsSecondNeighborsCall(t *testing.T) {
	mem := gymFixture()
	counting := &countingEdgeStore{Store: mem}

	fc, err := cache.New(2048, 300*time.Second)
	require.NoError(t, err)
	svc := New(
		mem, counting, fc,
		validity.New(validity.Config{FormalitySpread: 2}),
		cluster.New(), assembler.DefaultConfig(),
		Config{MinEdgeScore: 0.5, MaxLooks: 10, CoherenceWeights: scorer.DefaultWeights()},
		logger.New("dclg-test", "error"),
	)

	_, err = svc.Generate(context.Background(), "GYM_TANK_001", 3)
	require.NoError(t, err)
	_, err = svc.Generate(context.Background(), "GYM_TANK_001", 3)
	require.NoError(t, err)

	assert.Equal(t, 1, counting.calls)
}

func TestGenerate_S6_EmptyNeighborAnchorReturnsEmptyLooks(t *testing.T) {
	mem := memory.New()
	mem.AddProduct(domain.Product{SKU: "LONELY_001", Slot: domain.SlotBaseTop, FormalityScore: 1})
	svc := newService(t, mem)

	resp, err := svc.Generate(context.Background(), "LONELY_001", 3)
	require.NoError(t, err)
	assert.Empty(t, resp.Looks)
	assert.Equal(t, 0, resp.TotalLooks)
}

func TestGenerate_AnchorNotFound(t *testing.T) {
	mem := memory.New()
	svc := newService(t, mem)

	_, err := svc.Generate(context.Background(), "MISSING", 3)
	require.Error(t, err)
	assert.Equal(t, 404, apperrors.HTTPStatus(err))
}

func TestGenerate_NumLooksOutOfRange(t *testing.T) {
	mem := gymFixture()
	svc := newService(t, mem)

	_, err := svc.Generate(context.Background(), "GYM_TANK_001", 0)
	require.Error(t, err)
	assert.Equal(t, 400, apperrors.HTTPStatus(err))

	_, err = svc.Generate(context.Background(), "GYM_TANK_001", 11)
	require.Error(t, err)
	assert.Equal(t, 400, apperrors.HTTPStatus(err))
}

func TestGenerate_LooksArePairwiseDistinctAndContainAnchorOnce(t *testing.T) {
	mem := gymFixture()
	svc := newService(t, mem)

	resp, err := svc.Generate(context.Background(), "GYM_TANK_001", 10)
	require.NoError(t, err)
	require.NotEmpty(t, resp.Looks)

	seen := make(map[string]bool)
	for _, look := range resp.Looks {
		set := look.SKUSet()
		key := ""
		for sku := range set {
			key += sku + ","
		}
		assert.False(t, seen[key], "duplicate look sku-set emitted")
		seen[key] = true

		assert.Equal(t, "GYM_TANK_001", look.Anchor.SKU)
		assert.GreaterOrEqual(t, len(look.Items)+1, 3)
	}
}
