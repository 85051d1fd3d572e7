// SPDX-License-Identifier: MIT

// Package solver couples a pressure calibration and a temperature calibration
// by fixed-point substitution.
//
// Algorithm (both sides deferred):
//
//	T ← TInitial (scalar or per-sample)
//	repeat Iterations times:
//	    P ← p(T)
//	    T ← t(P)
//
// The loop always runs the full budget. There is no convergence test and no
// early exit, so results reproduce reference values computed with the same
// fixed scheme. Solution.DeltaP and Solution.DeltaT report the change over the
// final iteration so callers can flag samples that have not settled.
//
// Degenerate cases:
//   - both sides already computed → returned unchanged (ModeDirect);
//   - one side computed → the other is evaluated once at it (ModeSingle).
//
// Determinism: Solve is a pure function of its arguments; repeated calls return
// bit-identical output.
//
// Complexity: O(Iterations · (cost(p) + cost(t))) time, O(rows) extra memory.
package solver
