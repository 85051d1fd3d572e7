// SPDX-License-Identifier: MIT

package dispatch

import (
	"fmt"
	"log/slog"

	"github.com/katalvlaran/thermobar/equation"
	"github.com/katalvlaran/thermobar/table"
)

// Option customizes a Dispatcher.
type Option func(*config)

type config struct {
	logger *slog.Logger
}

// WithLogger routes advisory warnings to l. Panics on nil.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic("dispatch: WithLogger(nil)")
	}
	return func(c *config) { c.logger = l }
}

// Dispatcher evaluates calibrations from one registry.
type Dispatcher struct {
	reg *equation.Registry
	log *slog.Logger
}

// New returns a Dispatcher over reg. Panics on a nil registry.
func New(reg *equation.Registry, opts ...Option) *Dispatcher {
	if reg == nil {
		panic(ErrNilRegistry)
	}
	cfg := config{logger: slog.Default()}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Dispatcher{reg: reg, log: cfg.logger}
}

// Registry returns the registry the dispatcher resolves IDs against.
func (d *Dispatcher) Registry() *equation.Registry { return d.reg }

// Evaluate resolves id against the registry and evaluates it on tbl.
//
// Errors: equation.ErrUnknownEquation, table.ErrMissingRequiredFeature,
// table.ErrNilTable, ErrMissingDependentVariable, ErrLengthMismatch.
func (d *Dispatcher) Evaluate(id string, tbl *table.Table, dep Dependent) (Result, error) {
	// Stage 1: lookup.
	desc, err := d.reg.Lookup(id)
	if err != nil {
		return Result{}, err
	}

	// Stage 2: required features.
	in, err := desc.Bind(tbl)
	if err != nil {
		return Result{}, err
	}

	// Stage 3: dependent policy.
	if !desc.NeedsDependent {
		var notes []string
		if !dep.IsNone() {
			note := fmt.Sprintf("%s does not depend on %s; supplied %s ignored", id, desc.Kind.Dependent(), dep)
			d.log.Warn("dependent variable ignored",
				slog.String("equation", id),
				slog.String("dependent", desc.Kind.Dependent()),
				slog.String("supplied", dep.String()))
			notes = append(notes, note)
		}
		res := Value(desc.Eval(in, nil))
		res.Notes = notes
		return res, nil
	}
	if dep.IsNone() {
		return Result{}, dispatchErrorf(id, fmt.Errorf("requires %s or Solve: %w", desc.Kind.Dependent(), ErrMissingDependentVariable))
	}
	if dep.IsSolve() {
		return Deferred(&Evaluator{desc: desc, in: in}), nil
	}
	x, err := dep.expand(in.Rows())
	if err != nil {
		return Result{}, dispatchErrorf(id, err)
	}

	// Stage 4: direct evaluation.
	return Value(desc.Eval(in, x)), nil
}
