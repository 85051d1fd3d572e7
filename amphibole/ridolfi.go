// SPDX-License-Identifier: MIT

package amphibole

import (
	"log/slog"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/thermobar/classifier"
	"github.com/katalvlaran/thermobar/composition"
	"github.com/katalvlaran/thermobar/dispatch"
	"github.com/katalvlaran/thermobar/equation"
	"github.com/katalvlaran/thermobar/table"
	"github.com/katalvlaran/thermobar/validation"
)

// ridolfi2012 are equations 1a–1e, in candidate order.
var ridolfi2012 = [5]string{
	equation.PRidolfi2012a, equation.PRidolfi2012b, equation.PRidolfi2012c,
	equation.PRidolfi2012d, equation.PRidolfi2012e,
}

// candidateColumns name the per-equation MPa estimates in the output.
var candidateColumns = [5]string{colRidolfiMPa1a, "P_MPa_1b", "P_MPa_1c", "P_MPa_1d", "P_MPa_1e"}

// formulaColumns is the 13-cation formula echoed in the output.
var formulaColumns = []string{
	composition.SiO2.Cat13Column(), composition.TiO2.Cat13Column(),
	composition.Al2O3.Cat13Column(), composition.Cr2O3.Cat13Column(),
	composition.FeOt.Cat13Column(), composition.MnO.Cat13Column(),
	composition.MgO.Cat13Column(), composition.CaO.Cat13Column(),
	composition.Na2O.Cat13Column(), composition.K2O.Cat13Column(),
	composition.F13Cat, composition.Cl13Cat, composition.CationSumSiMg,
}

// Ridolfi2021 runs the Ridolfi (2021) barometer: equations 1a–1e on the
// 13-cation formula, one estimate per sample chosen by the classifier, then
// the quality gate. Samples that fail the gate keep their diagnostics but get
// NaN pressure.
//
// Output columns, in order: P_kbar_calc, the gate's derived quantities
// (H2O_calc, Fe2O3_calc, FeO_calc, Total_recalc, ...), Sum_input, XPae,
// deltaPdb, P_MPa_1a..P_MPa_1e and the 13-cation formula. Equation, InputCheck
// and FailMsg are set.
//
// Errors: table.ErrNilTable, table.ErrMissingRequiredFeature, classifier.ErrEmptyInput.
func (e *Engine) Ridolfi2021(amp *table.Table) (*Output, error) {
	// Stage 1 (Features).
	feats, err := ampFeatures(amp)
	if err != nil {
		return nil, amphiboleErrorf(opRidolfi2021, err)
	}

	// Stage 2 (Candidates): kbar bodies → MPa.
	d := e.dispatcher(equation.AmpOnlyPressure)
	var mpa [5][]float64
	for k, id := range ridolfi2012 {
		res, err := d.Evaluate(id, feats, dispatch.None())
		if err != nil {
			return nil, amphiboleErrorf(opRidolfi2021, err)
		}
		v, _ := res.Vector()
		floats.Scale(100, v)
		mpa[k] = v
	}

	// Stage 3 (Select).
	quality, _ := feats.Column(composition.SumInput)
	sel, err := classifier.Select(classifier.Candidates{
		A: mpa[0], B: mpa[1], C: mpa[2], D: mpa[3], E: mpa[4],
		Quality: quality,
	})
	if err != nil {
		return nil, amphiboleErrorf(opRidolfi2021, err)
	}

	// Stage 4 (Gate): APE compares the selection with equation 1a.
	gateIn, err := feats.With(validation.PressureMPa, sel.Pressure)
	if err == nil {
		gateIn, err = gateIn.With(validation.Pressure1aMPa, mpa[0])
	}
	if err != nil {
		return nil, amphiboleErrorf(opRidolfi2021, err)
	}
	rep, err := e.gate().Run(gateIn)
	if err != nil {
		return nil, amphiboleErrorf(opRidolfi2021, err)
	}
	pKbar := rep.Clear(sel.Pressure)
	for i := range pKbar {
		pKbar[i] /= 100
	}

	// Stage 5 (Emit).
	var c columns
	c.add(ColPressure, pKbar)
	c.addFrom(rep.Derived)
	c.add(composition.SumInput, quality)
	c.add(ColXPae, sel.XPae)
	c.add(ColDeltaPdb, sel.DeltaPdb)
	for k, name := range candidateColumns {
		c.add(name, mpa[k])
	}
	formula, err := feats.Select(formulaColumns...)
	if err != nil {
		return nil, amphiboleErrorf(opRidolfi2021, err)
	}
	c.addFrom(formula)
	numeric, err := c.table()
	if err != nil {
		return nil, amphiboleErrorf(opRidolfi2021, err)
	}
	e.log.Debug("ridolfi 2021",
		slog.Int("rows", numeric.Rows()),
		slog.Int("failed", rep.Failed()))

	return &Output{
		Numeric:    numeric,
		Equation:   sel.Labels(),
		InputCheck: rep.Pass,
		FailMsg:    rep.Reason,
	}, nil
}
