// SPDX-License-Identifier: MIT

// Package dispatch resolves a calibration ID and a dependent-variable argument
// into either a computed vector or a deferred evaluator.
//
// What:
//   - Dependent is the "other unknown" argument: None, Scalar, Vector or Solve.
//   - Result is a tagged union: Value(vec) | Deferred(*Evaluator).
//   - Evaluator binds every known feature of one calibration and waits for the
//     dependent variable; Apply(x) equals Evaluate(id, tbl, Vector(x)) bit for bit.
//
// Check order in Evaluate (structural errors abort before arithmetic):
//  1. Lookup                 → equation.ErrUnknownEquation
//  2. Required features      → table.ErrMissingRequiredFeature
//  3. Dependent policy       → ErrMissingDependentVariable, ErrLengthMismatch;
//     a value passed to an independent calibration is ignored with a note.
//  4. Evaluate, or bind into an Evaluator for Solve.
//
// Complexity:
//   - Evaluate: O(r·f) to bind f features over r rows, plus the body.
//   - Apply: O(r) plus the body.
//
// AI-Hints:
//   - Use Scalar for a single P or T applied to every sample.
//   - Use Solve only for calibrations that need the dependent variable; for
//     independent ones Solve is ignored like any other supplied value.
//   - Feed two Results into solver.Solve to obtain a coupled P–T pair.
package dispatch
