package rules

import (
	"strings"

	"faraid-engine/internal/model"
)

// BlockedSet maps each excluded category to the reason it is excluded.
type BlockedSet map[model.HeirCategory]string

// Has reports whether c is excluded.
func (b BlockedSet) Has(c model.HeirCategory) bool {
	_, ok := b[c]
	return ok
}

// blockRule excludes its targets when blockers returns a non-empty list.
type blockRule struct {
	targets  []model.HeirCategory
	blockers func(h model.HeirSet, blocked BlockedSet) []string
}

// blockTable is ordered strongest blockers first. A relative who is already
// excluded never counts as a blocker; the ordering makes one pass enough.
var blockTable = []blockRule{
	{
		targets: []model.HeirCategory{model.Grandson, model.Granddaughter},
		blockers: func(h model.HeirSet, blocked BlockedSet) []string {
			return presentOf(h, blocked, model.Son)
		},
	},
	{
		// Two daughters exhaust the 2/3 for female descendants; a son's son
		// would pull the granddaughters into the residue instead.
		targets: []model.HeirCategory{model.Granddaughter},
		blockers: func(h model.HeirSet, blocked BlockedSet) []string {
			if h.DaughterCount >= 2 && h.GrandsonCount == 0 {
				return []string{"two or more daughters"}
			}
			return nil
		},
	},
	{
		targets: []model.HeirCategory{model.Brother, model.Sister},
		blockers: func(h model.HeirSet, blocked BlockedSet) []string {
			return presentOf(h, blocked, model.Son, model.Grandson, model.Father)
		},
	},
	{
		targets: []model.HeirCategory{model.Nephew, model.Uncle},
		blockers: func(h model.HeirSet, blocked BlockedSet) []string {
			return presentOf(h, blocked, model.Son, model.Grandson, model.Father, model.Brother)
		},
	},
	{
		// Sisters beside female descendants take the residue as agnates.
		targets: []model.HeirCategory{model.Nephew, model.Uncle},
		blockers: func(h model.HeirSet, blocked BlockedSet) []string {
			if !h.HasFemaleDescendants() {
				return nil
			}
			return presentOf(h, blocked, model.Sister)
		},
	},
	{
		targets: []model.HeirCategory{model.Uncle},
		blockers: func(h model.HeirSet, blocked BlockedSet) []string {
			return presentOf(h, blocked, model.Nephew)
		},
	},
}

// ResolveBlocking returns the present categories that are excluded entirely
// by a closer relative. Absent categories never appear in the result.
func ResolveBlocking(h model.HeirSet) BlockedSet {
	blocked := BlockedSet{}
	for _, rule := range blockTable {
		by := rule.blockers(h, blocked)
		if len(by) == 0 {
			continue
		}
		for _, t := range rule.targets {
			if !h.Present(t) || blocked.Has(t) {
				continue
			}
			blocked[t] = "excluded by " + strings.Join(by, ", ")
		}
	}
	return blocked
}

// Exclusions lists the blocked categories in display order.
func (b BlockedSet) Exclusions(h model.HeirSet) []model.Exclusion {
	out := []model.Exclusion{}
	for _, c := range model.Categories {
		reason, ok := b[c]
		if !ok {
			continue
		}
		out = append(out, model.Exclusion{
			Category:  c,
			HeirLabel: c.Label(),
			Count:     h.Count(c),
			Reason:    reason,
		})
	}
	return out
}

// presentOf names the categories that are present and not themselves blocked.
func presentOf(h model.HeirSet, blocked BlockedSet, cats ...model.HeirCategory) []string {
	var names []string
	for _, c := range cats {
		if h.Present(c) && !blocked.Has(c) {
			names = append(names, c.String())
		}
	}
	return names
}
