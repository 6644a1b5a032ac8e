// Package domain holds the types the DCLG core operates on: products, edges,
// candidates, and the looks assembled from them.
package domain

import "strings"

// Slot is the exclusive wardrobe role a product fills. At most one item per
// slot is present in a given look.
type Slot string

const (
	SlotBaseTop         Slot = "Base Top"
	SlotOuterwear       Slot = "Outerwear"
	SlotPrimaryBottom   Slot = "Primary Bottom"
	SlotSecondaryBottom Slot = "Secondary Bottom"
	SlotFootwear        Slot = "Footwear"
	SlotAccessory       Slot = "Accessory"
)

// AllSlots returns the full set of wardrobe slots, used for slot-coverage
// scoring (len(slotsFilled) / len(AllSlots())).
func AllSlots() []Slot {
	return []Slot{SlotBaseTop, SlotOuterwear, SlotPrimaryBottom, SlotSecondaryBottom, SlotFootwear, SlotAccessory}
}

// AssemblyOrder is the fixed slot visitation order used by the LookAssembler:
// Outerwear, Base Top, Primary Bottom, Secondary Bottom, Footwear, Accessory.
func AssemblyOrder() []Slot {
	return []Slot{SlotOuterwear, SlotBaseTop, SlotPrimaryBottom, SlotSecondaryBottom, SlotFootwear, SlotAccessory}
}

// Key returns the lowercased wire representation of the slot, used as the
// map key in the transport-layer items object.
func (s Slot) Key() string {
	return strings.ToLower(string(s))
}

// Dimension is a facet a look can be coherent along.
type Dimension string

const (
	DimensionOccasion  Dimension = "occasion"
	DimensionAesthetic Dimension = "aesthetic"
	DimensionColor     Dimension = "color"
	DimensionFormality Dimension = "formality"
)

// Label is the human-readable, title-cased name used to build a look's
// display name ("<DimensionValue> <DimensionName>").
func (d Dimension) Label() string {
	switch d {
	case DimensionOccasion:
		return "Occasion"
	case DimensionAesthetic:
		return "Aesthetic"
	case DimensionColor:
		return "Color"
	case DimensionFormality:
		return "Formality"
	default:
		return string(d)
	}
}

// Product is a single catalog item, hydrated from ProductStore. Presentation
// fields (Title, Brand, ImageURL, Type, Category) are opaque to the DCLG
// core and are forwarded into responses untouched.
type Product struct {
	SKU            string
	Slot           Slot
	Occasion       []string
	Aesthetics     []string
	Season         []string
	FormalityScore int // 1..5; 0 means unset
	FormalityLevel string
	PrimaryColor   string
	StatementPiece bool
	Title          string
	Brand          string
	ImageURL       string
	Type           string
	Category       string
}

// HasOccasion reports whether the product's occasion set contains value.
func (p Product) HasOccasion(value string) bool { return contains(p.Occasion, value) }

// HasAesthetic reports whether the product's aesthetic set contains value.
func (p Product) HasAesthetic(value string) bool { return contains(p.Aesthetics, value) }

// HasSeason reports whether the product's season set contains value.
func (p Product) HasSeason(value string) bool { return contains(p.Season, value) }

// SharesOccasion reports whether the two products have any occasion value in
// common. An empty set on either side is treated as "matches all" per spec.
func SharesOccasion(a, b Product) bool {
	if len(a.Occasion) == 0 || len(b.Occasion) == 0 {
		return true
	}
	return intersects(a.Occasion, b.Occasion)
}

// SharesSeason reports whether the two products have any season in common.
// An empty set on either side is treated as "any season" per spec.
func SharesSeason(a, b Product) bool {
	if len(a.Season) == 0 || len(b.Season) == 0 {
		return true
	}
	return intersects(a.Season, b.Season)
}

// SharesAesthetic reports whether the two products have any aesthetic in
// common. Used only when the strictAesthetics config flag is enabled.
func SharesAesthetic(a, b Product) bool {
	return intersects(a.Aesthetics, b.Aesthetics)
}

func contains(set []string, value string) bool {
	for _, v := range set {
		if strings.EqualFold(v, value) {
			return true
		}
	}
	return false
}

func intersects(a, b []string) bool {
	for _, v := range a {
		if contains(b, v) {
			return true
		}
	}
	return false
}
