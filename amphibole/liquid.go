// SPDX-License-Identifier: MIT

package amphibole

import (
	"fmt"

	"github.com/katalvlaran/thermobar/composition"
	"github.com/katalvlaran/thermobar/dispatch"
	"github.com/katalvlaran/thermobar/equation"
	"github.com/katalvlaran/thermobar/table"
)

// liquidFeatures pairs amphibole and liquid row by row. It returns the joined
// features (23-oxygen and 13-cation amphibole formulae, hydrous and anhydrous
// liquid fractions) and the liquid table after the H2O override.
func (e *Engine) liquidFeatures(amp, liq *table.Table) (feats, liqUsed *table.Table, err error) {
	if amp == nil || liq == nil {
		return nil, nil, table.ErrNilTable
	}
	if amp.Rows() != liq.Rows() {
		return nil, nil, fmt.Errorf("%d amphiboles, %d liquids: %w", amp.Rows(), liq.Rows(), table.ErrLengthMismatch)
	}
	liqUsed = liq
	if e.h2oLiq != nil {
		h2o := make([]float64, liq.Rows())
		for i := range h2o {
			h2o[i] = *e.h2oLiq
		}
		if liqUsed, err = liq.With(composition.H2O.Column(composition.PhaseLiq), h2o); err != nil {
			return nil, nil, err
		}
	}

	ox23, err := composition.Amphibole23Oxygens(amp)
	if err != nil {
		return nil, nil, err
	}
	cat13, err := composition.Amphibole13Cations(amp)
	if err != nil {
		return nil, nil, err
	}
	hyd, err := composition.LiquidHydrousFractions(liqUsed)
	if err != nil {
		return nil, nil, err
	}
	anh, err := composition.LiquidAnhydrousFractions(liqUsed)
	if err != nil {
		return nil, nil, err
	}
	if feats, err = table.Join(ox23, cat13, hyd, anh); err != nil {
		return nil, nil, err
	}

	return feats, liqUsed, nil
}

// resolve finds id in the two-phase registry first, then in the
// amphibole-only registry of the same estimate.
func (e *Engine) resolve(id string, twoPhase, ampOnly equation.Kind) (*dispatch.Dispatcher, error) {
	if e.cat.Registry(twoPhase).Has(id) {
		return e.dispatcher(twoPhase), nil
	}
	if id == PRidolfi2021 || id == PKraw2012 {
		return nil, fmt.Errorf("%s: %w", id, ErrUnsupportedCoupling)
	}
	if e.cat.Registry(ampOnly).Has(id) {
		return e.dispatcher(ampOnly), nil
	}
	_, err := e.cat.Registry(twoPhase).Lookup(id)

	return nil, err
}

// withEquilibrium appends Kd-Fe-Mg and the Putirka (2016) flag to out.
func withEquilibrium(out *Output, amp, liq *table.Table) error {
	kd, err := composition.KdFeMg(amp, liq)
	if err != nil {
		return err
	}
	if out.Numeric == nil {
		out.Numeric = table.New(len(kd))
	}
	if out.Numeric, err = out.Numeric.With(ColKd, kd); err != nil {
		return err
	}
	out.EqTest = composition.PutirkaEquilibrium(kd)

	return nil
}

// LiquidPressure evaluates a barometer on amphibole–liquid pairs. Amphibole-only
// IDs are accepted as well; they read only the amphibole half. t follows the
// Pressure conventions. With eqTests, Kd-Fe-Mg and the equilibrium flag are
// added.
//
// Errors: those of Pressure, table.ErrLengthMismatch for unequal row counts,
// ErrUnsupportedCoupling for P_Ridolfi2021 and P_Kraw2012.
func (e *Engine) LiquidPressure(amp, liq *table.Table, equationP string, t dispatch.Dependent, eqTests bool) (*Output, error) {
	return e.liquidSingle(opLiqPressure, amp, liq, equationP, t, eqTests,
		equation.AmpLiqPressure, equation.AmpOnlyPressure, ColPressure)
}

// LiquidTemperature is LiquidPressure for thermometers; p is in kbar.
func (e *Engine) LiquidTemperature(amp, liq *table.Table, equationT string, p dispatch.Dependent, eqTests bool) (*Output, error) {
	return e.liquidSingle(opLiqTemperature, amp, liq, equationT, p, eqTests,
		equation.AmpLiqTemperature, equation.AmpOnlyTemperature, ColTemperature)
}

func (e *Engine) liquidSingle(op string, amp, liq *table.Table, id string, dep dispatch.Dependent, eqTests bool,
	twoPhase, ampOnly equation.Kind, col string) (*Output, error) {
	d, err := e.resolve(id, twoPhase, ampOnly)
	if err != nil {
		return nil, amphiboleErrorf(op, err)
	}
	feats, liqUsed, err := e.liquidFeatures(amp, liq)
	if err != nil {
		return nil, amphiboleErrorf(op, err)
	}
	res, err := d.Evaluate(id, feats, dep)
	if err != nil {
		return nil, amphiboleErrorf(op, err)
	}
	out, err := single(res, col)
	if err != nil {
		return nil, amphiboleErrorf(op, err)
	}
	if eqTests {
		if err = withEquilibrium(out, amp, liqUsed); err != nil {
			return nil, amphiboleErrorf(op, err)
		}
	}

	return out, nil
}

// LiquidPressureTemperature couples a barometer and a thermometer on
// amphibole–liquid pairs. Each ID is looked up in the two-phase registry first
// and then in the amphibole-only one, so a Putirka (2016) liquid thermometer
// can be paired with an amphibole-only barometer.
//
// Output columns: P_kbar_calc, T_K_calc, the iteration deltas when the solver
// iterated, and Kd-Fe-Mg with eqTests.
func (e *Engine) LiquidPressureTemperature(amp, liq *table.Table, equationP, equationT string, eqTests bool) (*Output, error) {
	dp, err := e.resolve(equationP, equation.AmpLiqPressure, equation.AmpOnlyPressure)
	if err != nil {
		return nil, amphiboleErrorf(opLiqPressureTemp, err)
	}
	dt, err := e.resolve(equationT, equation.AmpLiqTemperature, equation.AmpOnlyTemperature)
	if err != nil {
		return nil, amphiboleErrorf(opLiqPressureTemp, err)
	}
	feats, liqUsed, err := e.liquidFeatures(amp, liq)
	if err != nil {
		return nil, amphiboleErrorf(opLiqPressureTemp, err)
	}
	pRes, err := e.couple(dp, equationP, feats)
	if err != nil {
		return nil, amphiboleErrorf(opLiqPressureTemp, err)
	}
	tRes, err := e.couple(dt, equationT, feats)
	if err != nil {
		return nil, amphiboleErrorf(opLiqPressureTemp, err)
	}
	out, err := e.solve(pRes, tRes, equationP, equationT, nil)
	if err != nil {
		return nil, amphiboleErrorf(opLiqPressureTemp, err)
	}
	if eqTests {
		if err = withEquilibrium(out, amp, liqUsed); err != nil {
			return nil, amphiboleErrorf(opLiqPressureTemp, err)
		}
	}

	return out, nil
}
