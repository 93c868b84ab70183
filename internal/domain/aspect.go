package domain

import (
	"math"
	"strings"
)

// AspectKind names an angular relationship between two bodies.
type AspectKind string

// Aspect kinds.
const (
	Conjunction AspectKind = "conjunction"
	Sextile     AspectKind = "sextile"
	Square      AspectKind = "square"
	Trine       AspectKind = "trine"
	Opposition  AspectKind = "opposition"
)

// AspectRule is one row of the classification table.
type AspectRule struct {
	Kind  AspectKind
	Angle float64
	Orb   float64
}

// AspectRules is evaluated in order; the first rule within its orb wins.
var AspectRules = []AspectRule{
	{Kind: Conjunction, Angle: 0, Orb: 8},
	{Kind: Sextile, Angle: 60, Orb: 6},
	{Kind: Square, Angle: 90, Orb: 7},
	{Kind: Trine, Angle: 120, Orb: 8},
	{Kind: Opposition, Angle: 180, Orb: 8},
}

// TieBreak chooses between rules that match the same separation.
type TieBreak string

const (
	// TieBreakPriority keeps the first matching rule in table order.
	TieBreakPriority TieBreak = "priority"

	// TieBreakTightest keeps the matching rule with the smallest orb.
	TieBreakTightest TieBreak = "tightest"
)

// ParseTieBreak parses a tie-break policy. Empty means priority.
func ParseTieBreak(s string) (TieBreak, error) {
	switch TieBreak(strings.ToLower(strings.TrimSpace(s))) {
	case "", TieBreakPriority:
		return TieBreakPriority, nil
	case TieBreakTightest:
		return TieBreakTightest, nil
	default:
		return "", NewValidationErrorWithValue("aspectTieBreak", "must be priority or tightest", s)
	}
}

// Aspect relates two bodies. First always has the lower body id.
type Aspect struct {
	First  Body
	Second Body
	Kind   AspectKind
	Angle  float64
	Orb    float64
}

// Separation returns the angular distance between two longitudes folded to [0,180].
func Separation(a, b float64) float64 {
	diff := math.Abs(NormalizeDegrees(a) - NormalizeDegrees(b))
	if diff > 180 {
		diff = 360 - diff
	}

	return diff
}

// ClassifySeparation finds the aspect rule matching a folded separation.
func ClassifySeparation(diff float64, policy TieBreak) (AspectRule, float64, bool) {
	var (
		best    AspectRule
		bestOrb = math.Inf(1)
		found   bool
	)

	for _, rule := range AspectRules {
		orb := math.Abs(diff - rule.Angle)
		if orb > rule.Orb {
			continue
		}

		if policy != TieBreakTightest {
			return rule, orb, true
		}

		if orb < bestOrb {
			best, bestOrb, found = rule, orb, true
		}
	}

	return best, bestOrb, found
}

// FindAspect classifies the pair (a, b). The result does not depend on argument order.
func FindAspect(a, b BodyPosition, policy TieBreak) (Aspect, bool) {
	rule, orb, ok := ClassifySeparation(Separation(a.Longitude, b.Longitude), policy)
	if !ok {
		return Aspect{}, false
	}

	first, second := a.Body, b.Body
	if second < first {
		first, second = second, first
	}

	return Aspect{First: first, Second: second, Kind: rule.Kind, Angle: rule.Angle, Orb: orb}, true
}

// FindAspects checks every unordered pair of positions in input order.
func FindAspects(positions []BodyPosition, policy TieBreak) []Aspect {
	aspects := make([]Aspect, 0)

	for i := range positions {
		for j := i + 1; j < len(positions); j++ {
			if aspect, ok := FindAspect(positions[i], positions[j], policy); ok {
				aspects = append(aspects, aspect)
			}
		}
	}

	return aspects
}

// Involves reports whether the aspect touches body b.
func (a Aspect) Involves(b Body) bool {
	return a.First == b || a.Second == b
}
