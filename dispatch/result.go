// SPDX-License-Identifier: MIT

package dispatch

import (
	"slices"

	"github.com/katalvlaran/thermobar/equation"
)

// Evaluator is one calibration with its features bound, waiting for the
// dependent variable. It is immutable and safe to call repeatedly.
type Evaluator struct {
	desc equation.Descriptor
	in   equation.Inputs
}

// ID returns the calibration ID.
func (e *Evaluator) ID() string { return e.desc.ID }

// Rows returns the number of bound samples.
func (e *Evaluator) Rows() int { return e.in.Rows() }

// Kind returns the calibration kind.
func (e *Evaluator) Kind() equation.Kind { return e.desc.Kind }

// Apply evaluates the calibration at x, one entry per sample. It accepts
// exactly what Evaluate accepts as Vector(x); use ApplyScalar for a constant.
//
// Errors: ErrLengthMismatch.
func (e *Evaluator) Apply(x []float64) ([]float64, error) {
	dep, err := Vector(x).expand(e.in.Rows())
	if err != nil {
		return nil, dispatchErrorf(e.desc.ID, err)
	}

	return e.desc.Eval(e.in, dep), nil
}

// ApplyScalar evaluates the calibration with v for every sample.
func (e *Evaluator) ApplyScalar(v float64) []float64 {
	dep, _ := Scalar(v).expand(e.in.Rows())
	return e.desc.Eval(e.in, dep)
}

// Result is either a computed vector or a deferred evaluator.
type Result struct {
	value    []float64
	deferred *Evaluator

	// Notes holds advisory messages produced while dispatching.
	Notes []string
}

// Value wraps a computed vector.
func Value(v []float64) Result { return Result{value: v} }

// Deferred wraps an evaluator.
func Deferred(e *Evaluator) Result { return Result{deferred: e} }

// IsDeferred reports whether r holds an evaluator.
func (r Result) IsDeferred() bool { return r.deferred != nil }

// Vector returns a copy of the computed vector; ok is false for deferred results.
func (r Result) Vector() (v []float64, ok bool) {
	if r.deferred != nil {
		return nil, false
	}

	return slices.Clone(r.value), true
}

// Evaluator returns the deferred evaluator; ok is false for computed results.
func (r Result) Evaluator() (e *Evaluator, ok bool) {
	return r.deferred, r.deferred != nil
}

// Len returns the number of samples in r.
func (r Result) Len() int {
	if r.deferred != nil {
		return r.deferred.Rows()
	}

	return len(r.value)
}
