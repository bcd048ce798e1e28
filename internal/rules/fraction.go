// Package rules holds the Faraid rule table: who is blocked, who takes a
// fixed Quranic fraction, and which residuary class takes what is left.
// Everything in this package is a pure function of its arguments.
package rules

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Fraction is a Quranic share such as 1/8 or 2/3.
type Fraction struct {
	Num int64
	Den int64
}

var (
	Half       = Fraction{1, 2}
	Third      = Fraction{1, 3}
	Quarter    = Fraction{1, 4}
	Sixth      = Fraction{1, 6}
	Eighth     = Fraction{1, 8}
	TwoThirds  = Fraction{2, 3}
	noFraction = Fraction{}
)

func (f Fraction) String() string {
	return fmt.Sprintf("%d/%d", f.Num, f.Den)
}

// IsZero reports whether f is the empty fraction.
func (f Fraction) IsZero() bool {
	return f.Num == 0 || f.Den == 0
}

// Of returns f applied to v, truncated to scale decimal places so that the
// result never exceeds the exact value.
func (f Fraction) Of(v decimal.Decimal, scale int32) decimal.Decimal {
	if f.IsZero() {
		return decimal.Zero
	}
	return truncDiv(v.Mul(decimal.NewFromInt(f.Num)), decimal.NewFromInt(f.Den), scale)
}

// truncDiv divides n by d keeping scale decimal places, rounding toward zero.
func truncDiv(n, d decimal.Decimal, scale int32) decimal.Decimal {
	q, _ := n.QuoRem(d, scale)
	return q
}
