// SPDX-License-Identifier: MIT

package solver

import (
	"fmt"
	"math"
)

// Default iteration budget and initial temperature guess (K).
const (
	DefaultIterations = 30
	DefaultTInitial   = 1300.0
)

// Options configures Solve.
//
// Fields:
//   - Iterations     — exact number of P/T substitution rounds (> 0).
//   - TInitial       — starting temperature in kelvin, broadcast to every sample.
//   - TInitialVector — per-sample starting temperatures; overrides TInitial when non-nil.
type Options struct {
	Iterations     int
	TInitial       float64
	TInitialVector []float64
}

// DefaultOptions returns 30 iterations from 1300 K.
func DefaultOptions() Options {
	return Options{Iterations: DefaultIterations, TInitial: DefaultTInitial}
}

// Validate checks the budget and the initial guess. The length of
// TInitialVector is checked by Solve, which knows the sample count.
//
// Errors: ErrInvalidIterations, ErrInvalidInitial.
func (o Options) Validate() error {
	if o.Iterations < 1 {
		return fmt.Errorf("%d: %w", o.Iterations, ErrInvalidIterations)
	}
	if o.TInitialVector == nil && !finite(o.TInitial) {
		return fmt.Errorf("TInitial=%g: %w", o.TInitial, ErrInvalidInitial)
	}
	for i, v := range o.TInitialVector {
		if !finite(v) {
			return fmt.Errorf("TInitialVector[%d]=%g: %w", i, v, ErrInvalidInitial)
		}
	}

	return nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// Mode records how a Solution was obtained.
type Mode int

const (
	// ModeDirect: both sides were already computed; nothing was evaluated.
	ModeDirect Mode = iota

	// ModeSingle: one side was computed; the other was evaluated once at it.
	ModeSingle

	// ModeIterated: both sides were deferred; the fixed-point loop ran.
	ModeIterated
)

// String returns the mode name for logs.
func (m Mode) String() string {
	switch m {
	case ModeDirect:
		return "direct"
	case ModeSingle:
		return "single"
	case ModeIterated:
		return "iterated"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Solution is a coupled P (kbar) and T (K) estimate per sample.
//   - Iterations  — rounds actually run (0 unless Mode is ModeIterated).
//   - DeltaP/T    — |change| over the final round; nil unless ModeIterated.
//     DeltaP is NaN when only one round ran.
type Solution struct {
	P, T           []float64
	Iterations     int
	Mode           Mode
	DeltaP, DeltaT []float64
}
