package rules

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/shopspring/decimal"

	"faraid-engine/internal/model"
)

// ErrNoParts is returned when a residuary class has no members to split between.
var ErrNoParts = eris.New("rules: residuary class has zero parts")

// residuaryClass is one link in the asabah priority chain.
type residuaryClass struct {
	male      model.HeirCategory
	female    model.HeirCategory // zero when the class has no female members
	applies   func(h model.HeirSet, blocked BlockedSet) bool
	rationale string
	// explain overrides rationale when the reason depends on the heir set.
	explain func(h model.HeirSet) string
}

var residuaryChain = []residuaryClass{
	{
		male:   model.Son,
		female: model.Daughter,
		applies: func(h model.HeirSet, _ BlockedSet) bool {
			return h.SonCount > 0
		},
		rationale: "sons present",
	},
	{
		male:   model.Grandson,
		female: model.Granddaughter,
		applies: func(h model.HeirSet, blocked BlockedSet) bool {
			return h.GrandsonCount > 0 && !blocked.Has(model.Grandson)
		},
		rationale: "son's sons present, no son",
	},
	{
		male: model.Father,
		applies: func(h model.HeirSet, _ BlockedSet) bool {
			return h.HasFather && !h.HasMaleDescendants()
		},
		rationale: "no male descendant",
	},
	{
		male:   model.Brother,
		female: model.Sister,
		applies: func(h model.HeirSet, blocked BlockedSet) bool {
			if blocked.Has(model.Brother) || blocked.Has(model.Sister) {
				return false
			}
			if h.BrotherCount > 0 {
				return true
			}
			// Sisters become residuary beside female descendants.
			return h.SisterCount > 0 && h.HasFemaleDescendants()
		},
		rationale: "no descendant male or father",
		explain: func(h model.HeirSet) string {
			if h.BrotherCount == 0 {
				return "sisters with female descendants, no brother"
			}
			return "no descendant male or father"
		},
	},
	{
		male: model.Nephew,
		applies: func(h model.HeirSet, blocked BlockedSet) bool {
			return h.NephewCount > 0 && !blocked.Has(model.Nephew)
		},
		rationale: "no closer male agnate",
	},
	{
		male: model.Uncle,
		applies: func(h model.HeirSet, blocked BlockedSet) bool {
			return h.UncleCount > 0 && !blocked.Has(model.Uncle)
		},
		rationale: "no closer male agnate",
	},
}

// DistributeResidue hands the whole residue to the first applicable class of
// the priority chain and splits it 2:1 between its male and female members.
// ok is false when no class applies; the residue is then left undistributed.
func DistributeResidue(h model.HeirSet, blocked BlockedSet, residue decimal.Decimal, scale int32) (entries []model.ShareEntry, ok bool, err error) {
	for _, class := range residuaryChain {
		if !class.applies(h, blocked) {
			continue
		}

		males := h.Count(class.male)
		females := 0
		if class.female != 0 && !blocked.Has(class.female) {
			females = h.Count(class.female)
		}

		male, female, err := SplitResidue(residue, males, females, scale)
		if err != nil {
			return nil, false, eris.Wrapf(err, "rules: distribute residue to %s", class.male)
		}

		why := class.rationale
		if class.explain != nil {
			why = class.explain(h)
		}
		notation := "Ashabah"
		rationale := "residuary: " + why
		if males > 0 && females > 0 {
			notation = "2:1 ratio"
			rationale = fmt.Sprintf("residuary with %s at 2:1: %s", class.female, why)
		}

		if males > 0 {
			entries = append(entries, residuaryEntry(class.male, males, male, notation, rationale))
		}
		if females > 0 {
			entries = append(entries, residuaryEntry(class.female, females, female, notation, rationale))
		}
		return entries, true, nil
	}
	return nil, false, nil
}

// SplitResidue divides residue into parts = 2*males + females and returns the
// per-heir amount for one male (two parts) and one female (one part).
func SplitResidue(residue decimal.Decimal, males, females int, scale int32) (male, female decimal.Decimal, err error) {
	parts := males*2 + females
	if parts <= 0 {
		return decimal.Zero, decimal.Zero, ErrNoParts
	}
	unit := truncDiv(residue, decimal.NewFromInt(int64(parts)), scale)
	return unit.Mul(decimal.NewFromInt(2)), unit, nil
}

func residuaryEntry(c model.HeirCategory, n int, perHeir decimal.Decimal, notation, rationale string) model.ShareEntry {
	return model.ShareEntry{
		Category:      c,
		HeirLabel:     c.Label(),
		Count:         n,
		Amount:        perHeir.Mul(decimal.NewFromInt(int64(n))),
		PerHeir:       perHeir,
		ShareNotation: notation,
		Rationale:     rationale,
	}
}
