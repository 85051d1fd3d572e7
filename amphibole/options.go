// SPDX-License-Identifier: MIT

package amphibole

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/katalvlaran/thermobar/equation"
	"github.com/katalvlaran/thermobar/solver"
)

// Option customizes an Engine. Option constructors panic on meaningless input;
// Engine methods never panic.
type Option func(*Engine)

// WithCatalog replaces the built-in calibration catalogue. Panics on nil.
func WithCatalog(c *equation.Catalog) Option {
	if c == nil {
		panic("amphibole: WithCatalog(nil)")
	}
	return func(e *Engine) { e.cat = c }
}

// WithLogger sets the logger shared by the engine, its dispatchers and the
// validation gate. Panics on nil.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic("amphibole: WithLogger(nil)")
	}
	return func(e *Engine) { e.log = l }
}

// WithSolverOptions sets the iteration budget and initial guess of coupled
// solves. Panics if opts do not validate.
func WithSolverOptions(opts solver.Options) Option {
	if err := opts.Validate(); err != nil {
		panic(fmt.Sprintf("amphibole: WithSolverOptions: %v", err))
	}
	return func(e *Engine) { e.solverOpts = opts }
}

// WithDeltaNNO sets the oxygen fugacity (log units relative to NNO) used by
// P_Kraw2012. Panics on NaN or ±Inf.
func WithDeltaNNO(v float64) Option {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		panic("amphibole: WithDeltaNNO(non-finite)")
	}
	return func(e *Engine) { e.deltaNNO = &v }
}

// WithH2OLiquid overrides the H2O_Liq column (wt%) of every liquid before the
// hydrous mole fractions are computed. Panics on a negative or non-finite value.
func WithH2OLiquid(wt float64) Option {
	if math.IsNaN(wt) || math.IsInf(wt, 0) || wt < 0 {
		panic("amphibole: WithH2OLiquid(invalid)")
	}
	return func(e *Engine) { e.h2oLiq = &wt }
}
