package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bruhhgnik/DCLG-outfitrec/internal/assembler"
	"github.com/bruhhgnik/DCLG-outfitrec/internal/cache"
	"github.com/bruhhgnik/DCLG-outfitrec/internal/cluster"
	"github.com/bruhhgnik/DCLG-outfitrec/internal/domain"
	"github.com/bruhhgnik/DCLG-outfitrec/internal/platform/logger"
	"github.com/bruhhgnik/DCLG-outfitrec/internal/scorer"
	"github.com/bruhhgnik/DCLG-outfitrec/internal/service"
	"github.com/bruhhgnik/DCLG-outfitrec/internal/store/memory"
	"github.com/bruhhgnik/DCLG-outfitrec/internal/validity"
)

func newTestHandler(t *testing.T) *LooksHandler {
	t.Helper()
	mem := memory.New()
	anchor := domain.Product{SKU: "GYM_TANK_001", Slot: domain.SlotBaseTop, Occasion: []string{"Gym"}, FormalityScore: 1, PrimaryColor: "Black"}
	shorts := domain.Product{SKU: "SHORTS_001", Slot: domain.SlotPrimaryBottom, Occasion: []string{"Gym"}, FormalityScore: 1, PrimaryColor: "Gray"}
	sneaker := domain.Product{SKU: "SNEAKER_001", Slot: domain.SlotFootwear, Occasion: []string{"Gym"}, FormalityScore: 1, PrimaryColor: "White"}
	mem.AddProduct(anchor)
	mem.AddProduct(shorts)
	mem.AddProduct(sneaker)
	mem.AddEdge(domain.Edge{FromSKU: anchor.SKU, ToSKU: shorts.SKU, TargetSlot: domain.SlotPrimaryBottom, Score: 0.8})
	mem.AddEdge(domain.Edge{FromSKU: anchor.SKU, ToSKU: sneaker.SKU, TargetSlot: domain.SlotFootwear, Score: 0.7})

	fc, err := cache.New(2048, 300*time.Second)
	require.NoError(t, err)

	svc := service.New(
		mem, mem, fc,
		validity.New(validity.Config{FormalitySpread: 2}),
		cluster.New(), assembler.DefaultConfig(),
		service.Config{MinEdgeScore: 0.5, MaxLooks: 10, CoherenceWeights: scorer.DefaultWeights()},
		logger.New("dclg-test", "error"),
	)

	return NewLooksHandler(svc, logger.New("dclg-test", "error"))
}

func TestGenerateLooks_OK(t *testing.T) {
	h := newTestHandler(t)
	r := chi.NewRouter()
	r.Get("/api/v1/looks/{anchorSku}", h.GenerateLooks)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/looks/GYM_TANK_001?numLooks=2", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data generateLooksResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "GYM_TANK_001", body.Data.Anchor.SKU)
}

func TestGenerateLooks_AnchorNotFound(t *testing.T) {
	h := newTestHandler(t)
	r := chi.NewRouter()
	r.Get("/api/v1/looks/{anchorSku}", h.GenerateLooks)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/looks/MISSING", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGenerateLooks_InvalidNumLooks(t *testing.T) {
	h := newTestHandler(t)
	r := chi.NewRouter()
	r.Get("/api/v1/looks/{anchorSku}", h.GenerateLooks)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/looks/GYM_TANK_001?numLooks=notanumber", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGenerateLooks_DefaultNumLooksIsThree(t *testing.T) {
	h := newTestHandler(t)
	r := chi.NewRouter()
	r.Get("/api/v1/looks/{anchorSku}", h.GenerateLooks)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/looks/GYM_TANK_001", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}
