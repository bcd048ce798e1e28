package rules

import (
	"github.com/shopspring/decimal"

	"faraid-engine/internal/model"
)

// fixedRule returns the fraction owed to a category, or ok=false when the
// category takes no fixed share in this heir set.
type fixedRule func(h model.HeirSet) (f Fraction, rationale string, ok bool)

// fixedOrder is the order fixed-share entries appear in a distribution.
var fixedOrder = []model.HeirCategory{
	model.Husband, model.Wife, model.Father, model.Mother,
	model.Daughter, model.Granddaughter, model.Sister,
}

var fixedTable = map[model.HeirCategory]fixedRule{
	model.Husband: func(h model.HeirSet) (Fraction, string, bool) {
		if h.HasDescendants() {
			return Quarter, "children present", true
		}
		return Half, "no children", true
	},
	model.Wife: func(h model.HeirSet) (Fraction, string, bool) {
		if h.HasDescendants() {
			return Eighth, "children present", true
		}
		return Quarter, "no children", true
	},
	model.Father: func(h model.HeirSet) (Fraction, string, bool) {
		if h.HasDescendants() {
			return Sixth, "children present", true
		}
		return noFraction, "", false
	},
	model.Mother: func(h model.HeirSet) (Fraction, string, bool) {
		switch {
		case h.HasDescendants():
			return Sixth, "children present", true
		case h.SiblingCount() >= 2:
			return Sixth, "two or more siblings present", true
		}
		return Third, "no children and fewer than two siblings", true
	},
	model.Daughter: func(h model.HeirSet) (Fraction, string, bool) {
		if h.SonCount > 0 {
			return noFraction, "", false
		}
		if h.DaughterCount == 1 {
			return Half, "sole daughter, no son", true
		}
		return TwoThirds, "two or more daughters, no son", true
	},
	model.Granddaughter: func(h model.HeirSet) (Fraction, string, bool) {
		if h.SonCount > 0 || h.GrandsonCount > 0 {
			return noFraction, "", false
		}
		switch {
		case h.DaughterCount == 1:
			return Sixth, "one daughter present, completing two thirds", true
		case h.DaughterCount > 1:
			return noFraction, "", false
		case h.GranddaughterCount == 1:
			return Half, "sole granddaughter, no daughter", true
		}
		return TwoThirds, "two or more granddaughters, no daughter", true
	},
	model.Sister: func(h model.HeirSet) (Fraction, string, bool) {
		if h.BrotherCount > 0 || h.HasDescendants() {
			return noFraction, "", false
		}
		if h.SisterCount == 1 {
			return Half, "sole sister, no brother or descendant", true
		}
		return TwoThirds, "two or more sisters, no brother or descendant", true
	},
}

// ComputeFixedShares applies the fixed-share table to every present, unblocked
// category. Each fraction is taken of the original net value. The residue is
// netValue minus the fixed total, clamped at zero.
func ComputeFixedShares(h model.HeirSet, blocked BlockedSet, netValue decimal.Decimal, scale int32) ([]model.ShareEntry, decimal.Decimal) {
	var entries []model.ShareEntry

	for _, c := range fixedOrder {
		if !h.Present(c) || blocked.Has(c) {
			continue
		}
		f, rationale, ok := fixedTable[c](h)
		if !ok {
			continue
		}
		amount := f.Of(netValue, scale)
		entries = append(entries, newEntry(h, c, amount, f.String(), rationale, scale))
	}

	residue := netValue.Sub(model.SumAmounts(entries))
	if residue.IsNegative() {
		residue = decimal.Zero
	}
	return entries, residue
}

func newEntry(h model.HeirSet, c model.HeirCategory, amount decimal.Decimal, notation, rationale string, scale int32) model.ShareEntry {
	n := h.Count(c)
	return model.ShareEntry{
		Category:      c,
		HeirLabel:     c.Label(),
		Count:         n,
		Amount:        amount,
		PerHeir:       perHeir(amount, n, scale),
		ShareNotation: notation,
		Rationale:     rationale,
	}
}
