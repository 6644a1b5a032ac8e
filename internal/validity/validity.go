// Package validity implements the anchor-vs-candidate compatibility rules
// that gate which edges become candidates at all.
package validity

import (
	"github.com/bruhhgnik/DCLG-outfitrec/internal/domain"
)

// Config holds the tunables the validity filter reads from service config.
type Config struct {
	StrictAesthetics bool
	FormalitySpread  int
}

// Filter drops candidates whose peer violates slot/occasion/season/formality
// (and optionally aesthetic) constraints against the anchor.
type Filter struct {
	cfg Config
}

// New creates a ValidityFilter with the given config.
func New(cfg Config) *Filter {
	return &Filter{cfg: cfg}
}

// Valid reports whether candidate is compatible with anchor per all of the
// slot, occasion, season, formality, and (if enabled) aesthetic rules.
func (f *Filter) Valid(anchor, candidate domain.Product) bool {
	if candidate.Slot == anchor.Slot {
		return false
	}
	if !domain.SharesOccasion(anchor, candidate) {
		return false
	}
	if !domain.SharesSeason(anchor, candidate) {
		return false
	}
	if !withinFormalitySpread(anchor, candidate, f.cfg.FormalitySpread) {
		return false
	}
	if f.cfg.StrictAesthetics && !domain.SharesAesthetic(anchor, candidate) {
		return false
	}
	return true
}

// Apply filters candidates down to those valid against anchor, preserving
// each candidate's compatibility score.
func (f *Filter) Apply(anchor domain.Product, candidates []domain.Candidate) []domain.Candidate {
	out := make([]domain.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if f.Valid(anchor, c.Product) {
			out = append(out, c)
		}
	}
	return out
}

func withinFormalitySpread(anchor, candidate domain.Product, spread int) bool {
	if anchor.FormalityScore == 0 || candidate.FormalityScore == 0 {
		return true
	}
	diff := anchor.FormalityScore - candidate.FormalityScore
	if diff < 0 {
		diff = -diff
	}
	return diff <= spread
}
