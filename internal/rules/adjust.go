package rules

import (
	"github.com/shopspring/decimal"

	"faraid-engine/internal/model"
)

// ApplyAwl scales every fixed share by netValue/sum so that oversubscribed
// fixed shares exactly exhaust the estate. Entries are returned unchanged when
// their sum does not exceed netValue. The input slice is not modified.
func ApplyAwl(entries []model.ShareEntry, netValue decimal.Decimal, scale int32) ([]model.ShareEntry, bool) {
	sum := model.SumAmounts(entries)
	if sum.LessThanOrEqual(netValue) || sum.IsZero() {
		return entries, false
	}

	out := make([]model.ShareEntry, len(entries))
	for i, e := range entries {
		e.Amount = truncDiv(e.Amount.Mul(netValue), sum, scale)
		e.PerHeir = perHeir(e.Amount, e.Count, scale)
		e.ShareNotation += " (awl)"
		e.Rationale += "; reduced proportionally, fixed shares exceed estate"
		out[i] = e
	}
	return out, true
}

// ApplyRadd returns residue to the fixed-share heirs in proportion to their
// shares. Spouses take part only when they are the sole fixed-share heirs.
// ok is false when there is no fixed-share heir to return the residue to.
func ApplyRadd(entries []model.ShareEntry, residue decimal.Decimal, scale int32) ([]model.ShareEntry, bool) {
	if len(entries) == 0 || !residue.IsPositive() {
		return entries, false
	}

	eligible := func(e model.ShareEntry) bool {
		return e.Category != model.Husband && e.Category != model.Wife
	}
	base := decimal.Zero
	for _, e := range entries {
		if eligible(e) {
			base = base.Add(e.Amount)
		}
	}
	if base.IsZero() {
		eligible = func(model.ShareEntry) bool { return true }
		base = model.SumAmounts(entries)
	}
	if base.IsZero() {
		return entries, false
	}

	out := make([]model.ShareEntry, len(entries))
	returned := decimal.Zero
	last := -1
	for i, e := range entries {
		if eligible(e) {
			inc := truncDiv(residue.Mul(e.Amount), base, scale)
			returned = returned.Add(inc)
			last = i
			e.Amount = e.Amount.Add(inc)
			e.ShareNotation += " + radd"
			e.Rationale += "; residue returned, no residuary heir"
		}
		out[i] = e
	}

	// Truncation leaves a remainder below one unit of scale; the last
	// eligible heir takes it so the whole residue is returned.
	out[last].Amount = out[last].Amount.Add(residue.Sub(returned))
	for i := range out {
		if eligible(out[i]) {
			out[i].PerHeir = perHeir(out[i].Amount, out[i].Count, scale)
		}
	}
	return out, true
}

func perHeir(amount decimal.Decimal, n int, scale int32) decimal.Decimal {
	if n <= 1 {
		return amount
	}
	return truncDiv(amount, decimal.NewFromInt(int64(n)), scale)
}
