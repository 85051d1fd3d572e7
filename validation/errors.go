// SPDX-License-Identifier: MIT
// Package validation: sentinel errors.
//
// The advisory sentinels are never returned by Run; they are attached to
// failing rows through Check.Err so callers can match them with errors.Is.

package validation

import "errors"

// Advisory, per-row.
var (
	ErrLowQualityInput       = errors.New("validation: oxide total below 90")
	ErrLowRecalcTotal        = errors.New("validation: recalculated total below 98.5")
	ErrHighRecalcTotal       = errors.New("validation: recalculated total above 102")
	ErrUnbalancedComposition = errors.New("validation: unbalanced charge")
	ErrNegativeFerrous       = errors.New("validation: negative ferrous iron")
	ErrLowMagnesiumNumber    = errors.New("validation: low Mg number")
	ErrLowCalcium            = errors.New("validation: low calcium")
	ErrHighCalcium           = errors.New("validation: high calcium")
	ErrLowBCations           = errors.New("validation: low B-site cations")
)
