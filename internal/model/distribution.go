package model

import "github.com/shopspring/decimal"

// Estate is the value left after debts and bequests have been settled.
type Estate struct {
	NetValue decimal.Decimal `json:"net_value"`
	Currency string          `json:"currency,omitempty"`
}

// ShareEntry is the allotment of one inheriting category.
type ShareEntry struct {
	Category      HeirCategory    `json:"category"`
	HeirLabel     string          `json:"heir_label"`
	Count         int             `json:"count"`
	Amount        decimal.Decimal `json:"amount"`   // total for the category
	PerHeir       decimal.Decimal `json:"per_heir"` // Amount / Count
	ShareNotation string          `json:"share_notation"`
	Rationale     string          `json:"rationale"`
}

// Exclusion records a present relative who inherits nothing, and why.
type Exclusion struct {
	Category  HeirCategory `json:"category"`
	HeirLabel string       `json:"heir_label"`
	Count     int          `json:"count"`
	Reason    string       `json:"reason"`
}

// Distribution is the result of one computation. It is built once and not
// mutated afterwards.
type Distribution struct {
	NetValue      decimal.Decimal `json:"net_value"`
	Shares        []ShareEntry    `json:"shares"`
	Excluded      []Exclusion     `json:"excluded"`
	Total         decimal.Decimal `json:"total"`
	Undistributed decimal.Decimal `json:"undistributed"`
	Adjustments   []string        `json:"adjustments,omitempty"` // "awl", "radd"
}

// Share returns the entry for category c, if c inherits.
func (d *Distribution) Share(c HeirCategory) (ShareEntry, bool) {
	for _, s := range d.Shares {
		if s.Category == c {
			return s, true
		}
	}
	return ShareEntry{}, false
}

// Amount returns the total allotted to category c, zero when c does not inherit.
func (d *Distribution) Amount(c HeirCategory) decimal.Decimal {
	s, _ := d.Share(c)
	return s.Amount
}

// SumAmounts totals the amounts of the given entries.
func SumAmounts(entries []ShareEntry) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(e.Amount)
	}
	return total
}
