// SPDX-License-Identifier: MIT

package validation

import (
	"math"
	"slices"

	"github.com/katalvlaran/thermobar/table"
)

// Check identifies one quality check. CheckNone marks a passing sample.
type Check int

const (
	CheckNone Check = iota
	CheckLowQuality
	CheckLowRecalcTotal
	CheckHighRecalcTotal
	CheckUnbalancedCharge
	CheckNegativeFerrous
	CheckLowMgNumber
	CheckLowCalcium
	CheckHighCalcium
	CheckLowBCations
)

// Message returns the human-readable reason written to the output table.
func (c Check) Message() string {
	switch c {
	case CheckLowQuality:
		return "Cation oxide Total<90"
	case CheckLowRecalcTotal:
		return "Recalc Total<98.5"
	case CheckHighRecalcTotal:
		return "Recalc Total>102"
	case CheckUnbalancedCharge:
		return "unbalanced charge (>46.5)"
	case CheckNegativeFerrous:
		return "unbalanced charge (Fe2<0)"
	case CheckLowMgNumber:
		return "Low Mg# (<54)"
	case CheckLowCalcium:
		return "Low Ca (<1.5)"
	case CheckHighCalcium:
		return "High Ca (>2.05)"
	case CheckLowBCations:
		return "Low B Cations"
	default:
		return ""
	}
}

// Err returns the advisory sentinel for c, or nil for CheckNone.
func (c Check) Err() error {
	switch c {
	case CheckLowQuality:
		return ErrLowQualityInput
	case CheckLowRecalcTotal:
		return ErrLowRecalcTotal
	case CheckHighRecalcTotal:
		return ErrHighRecalcTotal
	case CheckUnbalancedCharge:
		return ErrUnbalancedComposition
	case CheckNegativeFerrous:
		return ErrNegativeFerrous
	case CheckLowMgNumber:
		return ErrLowMagnesiumNumber
	case CheckLowCalcium:
		return ErrLowCalcium
	case CheckHighCalcium:
		return ErrHighCalcium
	case CheckLowBCations:
		return ErrLowBCations
	default:
		return nil
	}
}

// String returns Message, or "pass" for CheckNone.
func (c Check) String() string {
	if c == CheckNone {
		return "pass"
	}

	return c.Message()
}

// Report is the per-sample outcome of Run.
//   - Pass    — true when no check failed.
//   - Reason  — message of the last failing check ("" when passing).
//   - Failure — the last failing check (CheckNone when passing).
//   - Derived — intermediate quantities (H2O_calc, Charge, Total_recalc, ...).
type Report struct {
	Pass    []bool
	Reason  []string
	Failure []Check
	Derived *table.Table
}

// Clear returns a copy of p with NaN wherever the sample failed.
// p must have one entry per sample; extra entries are left untouched.
func (r Report) Clear(p []float64) []float64 {
	out := slices.Clone(p)
	for i, ok := range r.Pass {
		if !ok && i < len(out) {
			out[i] = math.NaN()
		}
	}

	return out
}

// Failed returns the number of failing samples.
func (r Report) Failed() int {
	n := 0
	for _, ok := range r.Pass {
		if !ok {
			n++
		}
	}

	return n
}
