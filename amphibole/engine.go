// SPDX-License-Identifier: MIT

package amphibole

import (
	"fmt"
	"log/slog"

	"github.com/katalvlaran/thermobar/composition"
	"github.com/katalvlaran/thermobar/dispatch"
	"github.com/katalvlaran/thermobar/equation"
	"github.com/katalvlaran/thermobar/solver"
	"github.com/katalvlaran/thermobar/table"
	"github.com/katalvlaran/thermobar/validation"
)

// Pressure IDs handled outside the registries.
const (
	PRidolfi2021 = "P_Ridolfi2021"
	PKraw2012    = "P_Kraw2012"
)

// Operation tags.
const (
	opPressure          = "Pressure"
	opTemperature       = "Temperature"
	opPressureTemp      = "PressureTemperature"
	opRidolfi2021       = "Ridolfi2021"
	opKraw2012          = "Kraw2012"
	opLiqPressure       = "LiquidPressure"
	opLiqTemperature    = "LiquidTemperature"
	opLiqPressureTemp   = "LiquidPressureTemperature"
	krawApplicability   = "P_Kraw2012 gives PH2O at the first appearance of amphibole; apply it to the highest-Mg# amphibole of each suite. With CO2 present PH2O is not the total pressure."
	solveIgnoredFmtNote = "%s does not depend on %s; supplied %s ignored"
)

// Engine runs the amphibole pipelines. It holds no per-call state and may be
// shared between goroutines.
type Engine struct {
	cat        *equation.Catalog
	log        *slog.Logger
	solverOpts solver.Options
	deltaNNO   *float64
	h2oLiq     *float64
}

// New returns an Engine over the built-in catalogue with default solver options.
func New(opts ...Option) *Engine {
	e := &Engine{
		cat:        equation.DefaultCatalog(),
		log:        slog.Default(),
		solverOpts: solver.DefaultOptions(),
	}
	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Catalog returns the catalogue the engine dispatches into.
func (e *Engine) Catalog() *equation.Catalog { return e.cat }

func (e *Engine) dispatcher(k equation.Kind) *dispatch.Dispatcher {
	return dispatch.New(e.cat.Registry(k), dispatch.WithLogger(e.log))
}

func (e *Engine) gate() *validation.Gate { return validation.New(validation.WithLogger(e.log)) }

// ampFeatures derives every amphibole feature the catalogue and the gate read:
// 23-oxygen and 13-cation formulae, Sum_input, and the raw FeOt/F/Cl columns.
func ampFeatures(amp *table.Table) (*table.Table, error) {
	if amp == nil {
		return nil, table.ErrNilTable
	}
	ox23, err := composition.Amphibole23Oxygens(amp)
	if err != nil {
		return nil, err
	}
	cat13, err := composition.Amphibole13Cations(amp)
	if err != nil {
		return nil, err
	}
	total, err := composition.AmphiboleTotal(amp)
	if err != nil {
		return nil, err
	}
	feats, err := table.Join(ox23, cat13)
	if err != nil {
		return nil, err
	}
	if feats, err = feats.With(composition.SumInput, total); err != nil {
		return nil, err
	}
	for _, ox := range []composition.Oxide{composition.FeOt, composition.F, composition.Cl} {
		name := ox.Column(composition.PhaseAmp)
		if !amp.Has(name) {
			continue
		}
		v, _ := amp.Column(name)
		if feats, err = feats.With(name, v); err != nil {
			return nil, err
		}
	}

	return feats, nil
}

// single wraps a dispatch Result into an Output with one numeric column.
func single(res dispatch.Result, name string) (*Output, error) {
	if f, ok := res.Evaluator(); ok {
		return &Output{Deferred: f, Notes: res.Notes}, nil
	}
	v, _ := res.Vector()
	t, err := table.FromColumns([]string{name}, [][]float64{v})
	if err != nil {
		return nil, err
	}

	return &Output{Numeric: t, Notes: res.Notes}, nil
}

// Pressure evaluates an amphibole-only barometer. t is the temperature (K)
// argument: None for T-independent equations, a value, or Solve for a deferred
// evaluator.
//
// Errors: equation.ErrUnknownEquation, table.ErrMissingRequiredFeature,
// dispatch.ErrMissingDependentVariable, dispatch.ErrLengthMismatch, ErrMissingDeltaNNO.
func (e *Engine) Pressure(amp *table.Table, equationP string, t dispatch.Dependent) (*Output, error) {
	switch equationP {
	case PRidolfi2021:
		out, err := e.Ridolfi2021(amp)
		if err != nil {
			return nil, err
		}
		if !t.IsNone() {
			e.log.Warn("dependent variable ignored", slog.String("equation", PRidolfi2021), slog.String("supplied", t.String()))
			out.Notes = append(out.Notes, fmt.Sprintf(solveIgnoredFmtNote, PRidolfi2021, "T", t))
		}
		return out, nil
	case PKraw2012:
		return e.Kraw2012(amp, t)
	}

	// Lookup precedes feature derivation so unknown IDs are reported first.
	if _, err := e.cat.AmpOnlyP.Lookup(equationP); err != nil {
		return nil, amphiboleErrorf(opPressure, err)
	}
	feats, err := ampFeatures(amp)
	if err != nil {
		return nil, amphiboleErrorf(opPressure, err)
	}
	res, err := e.dispatcher(equation.AmpOnlyPressure).Evaluate(equationP, feats, t)
	if err != nil {
		return nil, amphiboleErrorf(opPressure, err)
	}
	out, err := single(res, ColPressure)
	if err != nil {
		return nil, amphiboleErrorf(opPressure, err)
	}

	return out, nil
}

// Temperature evaluates an amphibole-only thermometer. p is the pressure (kbar)
// argument, with the same conventions as Pressure.
func (e *Engine) Temperature(amp *table.Table, equationT string, p dispatch.Dependent) (*Output, error) {
	if _, err := e.cat.AmpOnlyT.Lookup(equationT); err != nil {
		return nil, amphiboleErrorf(opTemperature, err)
	}
	feats, err := ampFeatures(amp)
	if err != nil {
		return nil, amphiboleErrorf(opTemperature, err)
	}
	res, err := e.dispatcher(equation.AmpOnlyTemperature).Evaluate(equationT, feats, p)
	if err != nil {
		return nil, amphiboleErrorf(opTemperature, err)
	}
	out, err := single(res, ColTemperature)
	if err != nil {
		return nil, amphiboleErrorf(opTemperature, err)
	}

	return out, nil
}

// Kraw2012 returns PH2O (kbar) at amphibole saturation from the amphibole Mg#
// and the engine's ΔNNO. t follows the Pressure conventions; the equation is
// T-independent so any value is ignored with a note.
//
// Output columns: PH2O_kbar_calc, Mg#_Amp.
//
// Errors: ErrMissingDeltaNNO, table.ErrNilTable, table.ErrMissingRequiredFeature.
func (e *Engine) Kraw2012(amp *table.Table, t dispatch.Dependent) (*Output, error) {
	if e.deltaNNO == nil {
		return nil, amphiboleErrorf(opKraw2012, ErrMissingDeltaNNO)
	}
	mgno, err := composition.AmphiboleMgNumber(amp)
	if err != nil {
		return nil, amphiboleErrorf(opKraw2012, err)
	}
	nno := make([]float64, len(mgno))
	for i := range nno {
		nno[i] = *e.deltaNNO
	}
	feats, err := table.FromColumns([]string{composition.MgnoAmp, equation.DeltaNNO}, [][]float64{mgno, nno})
	if err != nil {
		return nil, amphiboleErrorf(opKraw2012, err)
	}
	e.log.Warn(krawApplicability)

	res, err := e.dispatcher(equation.AmpOnlyPressure).Evaluate(PKraw2012, feats, t)
	if err != nil {
		return nil, amphiboleErrorf(opKraw2012, err)
	}
	ph2o, _ := res.Vector()
	numeric, err := table.FromColumns([]string{ColPH2O, ColMgNumber}, [][]float64{ph2o, mgno})
	if err != nil {
		return nil, amphiboleErrorf(opKraw2012, err)
	}

	return &Output{Numeric: numeric, Notes: append(res.Notes, krawApplicability)}, nil
}

// PressureTemperature couples an amphibole-only barometer and thermometer.
// P_Ridolfi2021 is accepted as the barometer; it is T-independent, so the
// thermometer is evaluated once at its pressures.
//
// Output columns: P_kbar_calc, T_K_calc, and Delta_P_kbar_Iter/Delta_T_K_Iter
// when the solver iterated; Ridolfi (2021) diagnostics follow when used.
//
// Errors: those of Pressure and Temperature, ErrUnsupportedCoupling, and the
// solver sentinels.
func (e *Engine) PressureTemperature(amp *table.Table, equationP, equationT string) (*Output, error) {
	if equationP == PKraw2012 {
		return nil, amphiboleErrorf(opPressureTemp, fmt.Errorf("%s: %w", equationP, ErrUnsupportedCoupling))
	}
	if equationP != PRidolfi2021 {
		if _, err := e.cat.AmpOnlyP.Lookup(equationP); err != nil {
			return nil, amphiboleErrorf(opPressureTemp, err)
		}
	}
	if _, err := e.cat.AmpOnlyT.Lookup(equationT); err != nil {
		return nil, amphiboleErrorf(opPressureTemp, err)
	}
	feats, err := ampFeatures(amp)
	if err != nil {
		return nil, amphiboleErrorf(opPressureTemp, err)
	}

	var (
		pRes dispatch.Result
		base *Output
	)
	if equationP == PRidolfi2021 {
		if base, err = e.Ridolfi2021(amp); err != nil {
			return nil, err
		}
		pv, _ := base.Column(ColPressure)
		pRes = dispatch.Value(pv)
	} else if pRes, err = e.couple(e.dispatcher(equation.AmpOnlyPressure), equationP, feats); err != nil {
		return nil, amphiboleErrorf(opPressureTemp, err)
	}
	tRes, err := e.couple(e.dispatcher(equation.AmpOnlyTemperature), equationT, feats)
	if err != nil {
		return nil, amphiboleErrorf(opPressureTemp, err)
	}

	out, err := e.solve(pRes, tRes, equationP, equationT, base)
	if err != nil {
		return nil, amphiboleErrorf(opPressureTemp, err)
	}

	return out, nil
}

// couple evaluates id for use in a coupled solve: Solve when it depends on the
// other unknown, a direct value otherwise.
func (e *Engine) couple(d *dispatch.Dispatcher, id string, feats *table.Table) (dispatch.Result, error) {
	desc, err := d.Registry().Lookup(id)
	if err != nil {
		return dispatch.Result{}, err
	}
	dep := dispatch.None()
	if desc.NeedsDependent {
		dep = dispatch.Solve()
	}

	return d.Evaluate(id, feats, dep)
}

// solve runs the solver and assembles P, T, the iteration deltas and, when
// base is non-nil, the remaining columns and labels of base.
func (e *Engine) solve(pRes, tRes dispatch.Result, equationP, equationT string, base *Output) (*Output, error) {
	sol, err := solver.Solve(pRes, tRes, e.solverOpts)
	if err != nil {
		return nil, err
	}
	e.log.Debug("coupled solve",
		slog.String("equationP", equationP),
		slog.String("equationT", equationT),
		slog.String("mode", sol.Mode.String()),
		slog.Int("iterations", sol.Iterations))

	var c columns
	c.add(ColPressure, sol.P)
	c.add(ColTemperature, sol.T)
	if sol.Mode == solver.ModeIterated {
		c.add(ColDeltaP, sol.DeltaP)
		c.add(ColDeltaT, sol.DeltaT)
	}
	out := &Output{Notes: append(append([]string(nil), pRes.Notes...), tRes.Notes...)}
	if base != nil {
		c.addFrom(base.Numeric)
		out.Equation, out.InputCheck, out.FailMsg = base.Equation, base.InputCheck, base.FailMsg
		out.Notes = append(out.Notes, base.Notes...)
	}
	if out.Numeric, err = c.table(); err != nil {
		return nil, err
	}

	return out, nil
}
