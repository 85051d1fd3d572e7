package solver_test

import (
	"io"
	"log/slog"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/thermobar/dispatch"
	"github.com/katalvlaran/thermobar/equation"
	"github.com/katalvlaran/thermobar/solver"
	"github.com/katalvlaran/thermobar/table"
)

// counters records how many times each synthetic calibration body ran.
type counters struct{ p, t int }

// linearPair builds P = 0.001·T and T = 1000 + 10·P as deferred results over rows samples.
func linearPair(t *testing.T, rows int, c *counters) (p, tt dispatch.Result) {
	t.Helper()
	tbl, err := table.FromColumns([]string{"x"}, [][]float64{make([]float64, rows)})
	require.NoError(t, err)

	pReg := equation.MustRegistry(equation.AmpOnlyPressure, equation.Descriptor{
		ID: "P_lin", Kind: equation.AmpOnlyPressure, Requires: []string{"x"}, NeedsDependent: true,
		Body: func(in equation.Inputs, dep []float64) []float64 {
			c.p++
			out := make([]float64, in.Rows())
			for i := range out {
				out[i] = 0.001 * dep[i]
			}
			return out
		},
	})
	tReg := equation.MustRegistry(equation.AmpOnlyTemperature, equation.Descriptor{
		ID: "T_lin", Kind: equation.AmpOnlyTemperature, Requires: []string{"x"}, NeedsDependent: true,
		Body: func(in equation.Inputs, dep []float64) []float64 {
			c.t++
			out := make([]float64, in.Rows())
			for i := range out {
				out[i] = 1000 + 10*dep[i]
			}
			return out
		},
	})
	log := dispatch.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))

	p, err = dispatch.New(pReg, log).Evaluate("P_lin", tbl, dispatch.Solve())
	require.NoError(t, err)
	tt, err = dispatch.New(tReg, log).Evaluate("T_lin", tbl, dispatch.Solve())
	require.NoError(t, err)
	return p, tt
}

// TestSolve_RunsFullBudget: the loop never exits early even after convergence.
func TestSolve_RunsFullBudget(t *testing.T) {
	var c counters
	p, tt := linearPair(t, 2, &c)

	sol, err := solver.Solve(p, tt, solver.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, solver.ModeIterated, sol.Mode)
	assert.Equal(t, 30, sol.Iterations)
	assert.Equal(t, 30, c.p)
	assert.Equal(t, 30, c.t)

	// Fixed point of T = 1000 + 0.01·T.
	assert.InDeltaSlice(t, []float64{1000 / 0.99, 1000 / 0.99}, sol.T, 1e-9)
	assert.InDeltaSlice(t, []float64{1 / 0.99, 1 / 0.99}, sol.P, 1e-12)
}

// TestSolve_TwoRoundsByHand follows the substitution sequence explicitly.
func TestSolve_TwoRoundsByHand(t *testing.T) {
	var c counters
	p, tt := linearPair(t, 1, &c)

	one, err := solver.Solve(p, tt, solver.Options{Iterations: 1, TInitial: 1300})
	require.NoError(t, err)
	assert.InDelta(t, 1.3, one.P[0], 1e-12)
	assert.InDelta(t, 1013, one.T[0], 1e-9)
	assert.True(t, math.IsNaN(one.DeltaP[0]))
	assert.InDelta(t, 287, one.DeltaT[0], 1e-9)

	two, err := solver.Solve(p, tt, solver.Options{Iterations: 2, TInitial: 1300})
	require.NoError(t, err)
	assert.InDelta(t, 1.013, two.P[0], 1e-12)
	assert.InDelta(t, 1010.13, two.T[0], 1e-9)
	assert.InDelta(t, 0.287, two.DeltaP[0], 1e-12)
	assert.InDelta(t, 2.87, two.DeltaT[0], 1e-9)
}

// TestSolve_Deterministic: identical arguments give bit-identical output.
func TestSolve_Deterministic(t *testing.T) {
	feats, err := table.FromColumns(
		[]string{"Al2O3_Amp_cat_23ox", "SiO2_Amp_cat_23ox", "TiO2_Amp_cat_23ox", "FeOt_Amp_cat_23ox", "Na2O_Amp_cat_23ox"},
		[][]float64{{1.6, 1.9}, {6.5, 6.3}, {0.25, 0.3}, {1.7, 1.8}, {0.6, 0.7}})
	require.NoError(t, err)
	c := equation.DefaultCatalog()
	p, err := dispatch.New(c.AmpOnlyP).Evaluate("P_Anderson1995", feats, dispatch.Solve())
	require.NoError(t, err)
	tt, err := dispatch.New(c.AmpOnlyT).Evaluate("T_Put2016_eq6", feats, dispatch.Solve())
	require.NoError(t, err)

	opts := solver.Options{Iterations: 30, TInitialVector: []float64{1200, 1250}}
	first, err := solver.Solve(p, tt, opts)
	require.NoError(t, err)
	second, err := solver.Solve(p, tt, opts)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

// TestSolve_SingleEvaluation: a computed side short-circuits the loop.
func TestSolve_SingleEvaluation(t *testing.T) {
	var c counters
	pDeferred, tDeferred := linearPair(t, 2, &c)

	sol, err := solver.Solve(dispatch.Value([]float64{2, 3}), tDeferred, solver.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, solver.ModeSingle, sol.Mode)
	assert.Zero(t, sol.Iterations)
	assert.InDeltaSlice(t, []float64{1020, 1030}, sol.T, 1e-12)
	assert.Equal(t, []float64{2, 3}, sol.P)
	assert.Nil(t, sol.DeltaT)

	sol, err = solver.Solve(pDeferred, dispatch.Value([]float64{1000, 2000}), solver.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, solver.ModeSingle, sol.Mode)
	assert.InDeltaSlice(t, []float64{1, 2}, sol.P, 1e-12)

	assert.Equal(t, 1, c.p)
	assert.Equal(t, 1, c.t)
}

// TestSolve_Direct returns computed vectors untouched.
func TestSolve_Direct(t *testing.T) {
	sol, err := solver.Solve(dispatch.Value([]float64{1}), dispatch.Value([]float64{1100}), solver.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, solver.ModeDirect, sol.Mode)
	assert.Equal(t, []float64{1}, sol.P)
	assert.Equal(t, []float64{1100}, sol.T)
	assert.Equal(t, "direct", sol.Mode.String())
}

// TestSolve_Errors covers option and shape validation.
func TestSolve_Errors(t *testing.T) {
	var c counters
	p, tt := linearPair(t, 2, &c)

	_, err := solver.Solve(p, tt, solver.Options{Iterations: 0, TInitial: 1300})
	assert.ErrorIs(t, err, solver.ErrInvalidIterations)

	_, err = solver.Solve(p, tt, solver.Options{Iterations: 3, TInitial: math.NaN()})
	assert.ErrorIs(t, err, solver.ErrInvalidInitial)

	_, err = solver.Solve(p, tt, solver.Options{Iterations: 3, TInitialVector: []float64{1300}})
	assert.ErrorIs(t, err, solver.ErrLengthMismatch)

	_, err = solver.Solve(p, dispatch.Value([]float64{1, 2, 3}), solver.DefaultOptions())
	assert.ErrorIs(t, err, solver.ErrLengthMismatch)
	assert.Zero(t, c.p)
}
