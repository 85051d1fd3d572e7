// SPDX-License-Identifier: MIT

package solver

import (
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/thermobar/dispatch"
)

const opSolve = "Solve"

// Solve resolves a pressure Result p and a temperature Result t into a
// per-sample (P, T) pair.
//
// Stage 1 (Validate): options and matching sample counts.
// Stage 2 (Degenerate): a computed side short-circuits the loop.
// Stage 3 (Iterate): exactly opts.Iterations rounds of P ← p(T); T ← t(P).
//
// Errors: ErrInvalidIterations, ErrInvalidInitial, ErrLengthMismatch, and
// dispatch.ErrLengthMismatch from the evaluators.
func Solve(p, t dispatch.Result, opts Options) (Solution, error) {
	if err := opts.Validate(); err != nil {
		return Solution{}, solverErrorf(opSolve, err)
	}
	if p.Len() != t.Len() {
		return Solution{}, solverErrorf(opSolve, fmt.Errorf("P has %d rows, T has %d: %w", p.Len(), t.Len(), ErrLengthMismatch))
	}

	pf, pDeferred := p.Evaluator()
	tf, tDeferred := t.Evaluator()
	switch {
	case !pDeferred && !tDeferred:
		pv, _ := p.Vector()
		tv, _ := t.Vector()
		return Solution{P: pv, T: tv, Mode: ModeDirect}, nil

	case !pDeferred:
		pv, _ := p.Vector()
		tv, err := tf.Apply(pv)
		if err != nil {
			return Solution{}, solverErrorf(opSolve, err)
		}
		return Solution{P: pv, T: tv, Mode: ModeSingle}, nil

	case !tDeferred:
		tv, _ := t.Vector()
		pv, err := pf.Apply(tv)
		if err != nil {
			return Solution{}, solverErrorf(opSolve, err)
		}
		return Solution{P: pv, T: tv, Mode: ModeSingle}, nil
	}

	return iterate(pf, tf, opts)
}

// iterate runs the fixed-point loop on two evaluators of equal row count.
func iterate(pf, tf *dispatch.Evaluator, opts Options) (Solution, error) {
	rows := pf.Rows()
	tv, err := initialT(rows, opts)
	if err != nil {
		return Solution{}, solverErrorf(opSolve, err)
	}

	var pv, pPrev, tPrev []float64
	for k := 0; k < opts.Iterations; k++ {
		pPrev, tPrev = pv, tv
		if pv, err = pf.Apply(tv); err != nil {
			return Solution{}, solverErrorf(opSolve, err)
		}
		if tv, err = tf.Apply(pv); err != nil {
			return Solution{}, solverErrorf(opSolve, err)
		}
	}

	return Solution{
		P:          pv,
		T:          tv,
		Iterations: opts.Iterations,
		Mode:       ModeIterated,
		DeltaP:     absDiff(pv, pPrev),
		DeltaT:     absDiff(tv, tPrev),
	}, nil
}

// initialT expands the initial guess to rows samples.
func initialT(rows int, opts Options) ([]float64, error) {
	if opts.TInitialVector != nil {
		if len(opts.TInitialVector) != rows {
			return nil, fmt.Errorf("TInitialVector has %d values, want %d: %w", len(opts.TInitialVector), rows, ErrLengthMismatch)
		}
		return slices.Clone(opts.TInitialVector), nil
	}
	out := make([]float64, rows)
	for i := range out {
		out[i] = opts.TInitial
	}

	return out, nil
}

// absDiff returns |cur − prev| elementwise; all NaN when prev is nil.
func absDiff(cur, prev []float64) []float64 {
	out := make([]float64, len(cur))
	if prev == nil {
		for i := range out {
			out[i] = math.NaN()
		}
		return out
	}
	floats.SubTo(out, cur, prev)
	for i, v := range out {
		out[i] = math.Abs(v)
	}

	return out
}
