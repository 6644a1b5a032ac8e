package http

import (
	"fmt"
	"math"

	"github.com/bruhhgnik/DCLG-outfitrec/internal/domain"
)

// generateLooksResponse is the wire shape for a LooksResponse.
type generateLooksResponse struct {
	Anchor     productDTO `json:"anchor"`
	Looks      []lookDTO  `json:"looks"`
	TotalLooks int        `json:"totalLooks"`
}

type lookDTO struct {
	ID             string                `json:"id"`
	Name           string                `json:"name"`
	Dimension      string                `json:"dimension"`
	DimensionValue string                `json:"dimensionValue"`
	Coherence      float64               `json:"coherence"`
	Items          map[string]productDTO `json:"items"`
	SlotsFilled    []string              `json:"slotsFilled"`
}

type productDTO struct {
	SKU      string `json:"sku"`
	Title    string `json:"title"`
	Brand    string `json:"brand"`
	ImageURL string `json:"imageUrl"`
	Type     string `json:"type"`
	Color    string `json:"color"`
	Slot     string `json:"slot"`
}

func toProductDTO(p domain.Product) productDTO {
	return productDTO{
		SKU:      p.SKU,
		Title:    p.Title,
		Brand:    p.Brand,
		ImageURL: p.ImageURL,
		Type:     p.Type,
		Color:    p.PrimaryColor,
		Slot:     string(p.Slot),
	}
}

func toLookDTO(index int, look domain.Look) lookDTO {
	items := make(map[string]productDTO, len(look.Items))
	for slot, p := range look.Items {
		items[slot.Key()] = toProductDTO(p)
	}

	slotsFilled := make([]string, 0, len(look.SlotsFilled))
	for _, s := range look.SlotsFilled {
		slotsFilled = append(slotsFilled, s.Key())
	}

	return lookDTO{
		ID:             fmt.Sprintf("look_%d", index+1),
		Name:           look.Name(),
		Dimension:      string(look.Dimension),
		DimensionValue: look.DimensionValue,
		Coherence:      round3(look.Coherence),
		Items:          items,
		SlotsFilled:    slotsFilled,
	}
}

func toLooksResponse(resp domain.LooksResponse) generateLooksResponse {
	looks := make([]lookDTO, 0, len(resp.Looks))
	for i, l := range resp.Looks {
		looks = append(looks, toLookDTO(i, l))
	}
	return generateLooksResponse{
		Anchor:     toProductDTO(resp.Anchor),
		Looks:      looks,
		TotalLooks: resp.TotalLooks,
	}
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
