package engine

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"faraid-engine/internal/model"
	"faraid-engine/internal/rules"
)

// Options tunes numeric precision and the opt-in awl and radd resolutions.
type Options struct {
	Scale     int32           // decimal places kept in amounts
	Epsilon   decimal.Decimal // tolerance for the sum check
	ApplyAwl  bool
	ApplyRadd bool
}

// DefaultOptions keeps ten decimal places and reports awl and radd cases as
// errors instead of resolving them.
func DefaultOptions() Options {
	return Options{
		Scale:   10,
		Epsilon: decimal.New(1, -6),
	}
}

// Engine computes inheritance distributions. It holds no mutable state and is
// safe for concurrent use.
type Engine struct {
	opts Options
}

func New(opts Options) *Engine {
	if opts.Scale <= 0 {
		opts.Scale = DefaultOptions().Scale
	}
	if opts.Epsilon.IsNegative() {
		opts.Epsilon = decimal.Zero
	}
	return &Engine{opts: opts}
}

var defaultEngine = New(DefaultOptions())

// Compute runs Compute on an engine with default options.
func Compute(h model.HeirSet, netValue decimal.Decimal) (*model.Distribution, error) {
	return defaultEngine.Compute(h, netValue)
}

// Compute determines who inherits from netValue and how much.
//
// The returned error is always a *ComputationError. For UnhandledConfiguration
// the distribution is returned as well: its shares are valid and the residue
// nobody could take is reported in Undistributed.
func (e *Engine) Compute(h model.HeirSet, netValue decimal.Decimal) (*model.Distribution, error) {
	if msgs := validate(h, netValue); len(msgs) > 0 {
		return nil, &ComputationError{Kind: InvalidInput, Messages: msgs}
	}

	scale := e.opts.Scale
	blocked := rules.ResolveBlocking(h)
	fixed, residue := rules.ComputeFixedShares(h, blocked, netValue, scale)

	var adjustments []string
	if e.opts.ApplyAwl {
		var awl bool
		if fixed, awl = rules.ApplyAwl(fixed, netValue, scale); awl {
			// awl consumes the whole estate; truncation dust is not residue.
			adjustments = append(adjustments, "awl")
			residue = decimal.Zero
		}
	}

	residual, found, err := rules.DistributeResidue(h, blocked, residue, scale)
	if err != nil {
		return nil, &ComputationError{
			Kind: InvariantViolation,
			Messages: []model.CalculationMessage{{
				Level:   model.LevelCritical,
				Code:    model.CodeInvariantViolation,
				Message: "Residuary split failed",
			}},
			cause: err,
		}
	}

	undistributed := decimal.Zero
	if !found && residue.IsPositive() {
		var radd bool
		if e.opts.ApplyRadd {
			fixed, radd = rules.ApplyRadd(fixed, residue, scale)
		}
		if radd {
			adjustments = append(adjustments, "radd")
		} else {
			undistributed = residue
		}
	}

	shares := mergeShares(fixed, residual)
	dist := &model.Distribution{
		NetValue:      netValue,
		Shares:        shares,
		Excluded:      blocked.Exclusions(h),
		Total:         model.SumAmounts(shares),
		Undistributed: undistributed,
		Adjustments:   adjustments,
	}

	if err := e.checkInvariant(dist); err != nil {
		return nil, err
	}

	zap.L().Debug("engine: computed distribution",
		zap.String("net_value", netValue.String()),
		zap.Int("shares", len(dist.Shares)),
		zap.Int("excluded", len(dist.Excluded)),
		zap.String("undistributed", undistributed.String()),
		zap.Strings("adjustments", adjustments),
	)

	if undistributed.IsPositive() {
		return dist, &ComputationError{
			Kind:          UnhandledConfiguration,
			Undistributed: undistributed,
			Messages: []model.CalculationMessage{{
				Level: model.LevelWarning,
				Code:  model.CodeUndistributedResidue,
				Message: fmt.Sprintf("No residuary heir present; %s of the estate is left undistributed",
					undistributed.String()),
			}},
		}
	}
	return dist, nil
}

func validate(h model.HeirSet, netValue decimal.Decimal) []model.CalculationMessage {
	msgs := h.Validate()
	if netValue.IsNegative() {
		msgs = append(msgs, model.CalculationMessage{
			Level:   model.LevelCritical,
			Code:    model.CodeNegativeEstate,
			Message: fmt.Sprintf("Net estate value must be non-negative, got %s", netValue.String()),
		})
	}
	return msgs
}

// checkInvariant rejects negative amounts and totals above the estate.
func (e *Engine) checkInvariant(d *model.Distribution) error {
	violation := func(format string, args ...any) error {
		return &ComputationError{
			Kind: InvariantViolation,
			Messages: []model.CalculationMessage{{
				Level:   model.LevelCritical,
				Code:    model.CodeInvariantViolation,
				Message: fmt.Sprintf(format, args...),
			}},
		}
	}

	for _, s := range d.Shares {
		if s.Amount.IsNegative() || s.PerHeir.IsNegative() {
			return violation("Negative share %s for %s", s.Amount.String(), s.Category)
		}
	}

	limit := d.NetValue.Add(e.opts.Epsilon)
	if d.Total.Add(d.Undistributed).GreaterThan(limit) {
		return violation("Shares total %s exceeds net estate %s", d.Total.String(), d.NetValue.String())
	}
	return nil
}

// mergeShares combines fixed and residuary entries into one entry per
// category, ordered by model.Categories.
func mergeShares(fixed, residual []model.ShareEntry) []model.ShareEntry {
	byCat := make(map[model.HeirCategory]model.ShareEntry, len(fixed)+len(residual))
	for _, e := range append(append([]model.ShareEntry{}, fixed...), residual...) {
		prev, ok := byCat[e.Category]
		if !ok {
			byCat[e.Category] = e
			continue
		}
		prev.Amount = prev.Amount.Add(e.Amount)
		prev.PerHeir = prev.PerHeir.Add(e.PerHeir)
		prev.ShareNotation = strings.Join([]string{prev.ShareNotation, e.ShareNotation}, " + ")
		prev.Rationale = strings.Join([]string{prev.Rationale, e.Rationale}, "; ")
		byCat[e.Category] = prev
	}

	out := make([]model.ShareEntry, 0, len(byCat))
	for _, c := range model.Categories {
		if s, ok := byCat[c]; ok {
			out = append(out, s)
		}
	}
	return out
}
