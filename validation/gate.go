// SPDX-License-Identifier: MIT

package validation

import (
	"fmt"
	"log/slog"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/thermobar/composition"
	"github.com/katalvlaran/thermobar/table"
)

// Optional pressure inputs (MPa) used for APE.
const (
	PressureMPa   = "P_MPa_calc"
	Pressure1aMPa = "P_MPa_1a"
)

// Derived column names.
const (
	H2OCalc     = "H2O_calc"
	Charge      = "Charge"
	Fe3Calc     = "Fe3_calc"
	Fe2Calc     = "Fe2_calc"
	Fe2O3Calc   = "Fe2O3_calc"
	FeOCalc     = "FeO_calc"
	OFCl        = "O=F,Cl"
	TotalRecalc = "Total_recalc"
	MgnoFe2     = "Mgno_Fe2"
	NaCalc      = "Na_calc"
	BSum        = "B_Sum"
	APE         = "APE"
)

// Thresholds.
const (
	minSumInput    = 90.0
	minRecalcTotal = 98.5
	maxRecalcTotal = 102.0
	maxCharge      = 46.5
	ferricCharge   = 46.0
	minMgNumber    = 54.0
	minCa          = 1.5
	maxCa          = 2.05
	minBSum        = 1.99
)

// Oxide conversion factors.
const (
	fe2o3Mass = 159.691
	feoMass   = 71.846
	oxyF      = 0.421070639014633
	oxyCl     = 0.225636758525372
)

const opRun = "Run"

// Option customizes a Gate.
type Option func(*Gate)

// WithLogger sets the logger used for the per-batch summary. Panics on nil.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic("validation: WithLogger(nil)")
	}
	return func(g *Gate) { g.log = l }
}

// Gate runs the quality checks. The zero value is not usable; call New.
type Gate struct {
	log *slog.Logger
}

// New returns a Gate logging to slog.Default unless overridden.
func New(opts ...Option) *Gate {
	g := &Gate{log: slog.Default()}
	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Required lists the columns Run needs.
func Required() []string {
	return []string{
		composition.SiO2.Cat13Column(), composition.TiO2.Cat13Column(),
		composition.Al2O3.Cat13Column(), composition.Cr2O3.Cat13Column(),
		composition.FeOt.Cat13Column(), composition.MnO.Cat13Column(),
		composition.MgO.Cat13Column(), composition.CaO.Cat13Column(),
		composition.Na2O.Cat13Column(), composition.K2O.Cat13Column(),
		composition.F13Cat, composition.Cl13Cat, composition.CationSumSiMg,
		composition.FeOt.Column(composition.PhaseAmp), composition.SumInput,
	}
}

// Run derives the correction quantities and evaluates every check on tbl.
// Raw F_Amp and Cl_Amp are optional (absent reads as zero).
//
// Stage 1 (Validate): required columns.
// Stage 2 (Derive): H2O, charge, Fe3/Fe2 split, recalculated total, Mg#, B site, APE.
// Stage 3 (Check): ordered checks; later failures overwrite the reason.
//
// Errors: table.ErrNilTable, table.ErrMissingRequiredFeature.
func (g *Gate) Run(tbl *table.Table) (Report, error) {
	// Stage 1 (Validate).
	if tbl == nil {
		return Report{}, fmt.Errorf("validation.%s: %w", opRun, table.ErrNilTable)
	}
	if err := tbl.Require(Required()...); err != nil {
		return Report{}, fmt.Errorf("validation.%s: %w", opRun, err)
	}
	col := func(name string) []float64 {
		v, _ := tbl.Column(name)
		return v
	}
	n := tbl.Rows()

	si, ti, al, cr := col(composition.SiO2.Cat13Column()), col(composition.TiO2.Cat13Column()),
		col(composition.Al2O3.Cat13Column()), col(composition.Cr2O3.Cat13Column())
	fe, mn, mg := col(composition.FeOt.Cat13Column()), col(composition.MnO.Cat13Column()), col(composition.MgO.Cat13Column())
	ca, na, k := col(composition.CaO.Cat13Column()), col(composition.Na2O.Cat13Column()), col(composition.K2O.Cat13Column())
	f13, cl13, sum := col(composition.F13Cat), col(composition.Cl13Cat), col(composition.CationSumSiMg)
	feot, sumInput := col(composition.FeOt.Column(composition.PhaseAmp)), col(composition.SumInput)
	fRaw := tbl.ColumnOrZero(composition.F.Column(composition.PhaseAmp))
	clRaw := tbl.ColumnOrZero(composition.Cl.Column(composition.PhaseAmp))

	// Stage 2 (Derive).
	d := derived{
		h2o: make([]float64, n), charge: make([]float64, n), fe3: make([]float64, n),
		fe2: make([]float64, n), fe2o3: make([]float64, n), feo: make([]float64, n),
		oxy: make([]float64, n), total: make([]float64, n), mgno: make([]float64, n),
		naCalc: make([]float64, n), bSum: make([]float64, n),
	}
	for i := 0; i < n; i++ {
		d.h2o[i] = (2 - f13[i] - cl13[i]) * sum[i] * 17 / 13 / 2
		d.charge[i] = si[i]*4 + ti[i]*4 + al[i]*3 + cr[i]*3 + fe[i]*2 + mn[i]*2 + mg[i]*2 + ca[i]*2 + na[i] + k[i]
		d.fe3[i] = ferricCharge - d.charge[i]
		if d.charge[i] > ferricCharge {
			d.fe3[i] = 0
		}
		d.fe2[i] = fe[i] - d.fe3[i]
		d.fe2o3[i] = d.fe3[i] * sum[i] * fe2o3Mass / 13 / 2
		d.feo[i] = d.fe2[i] * sum[i] * feoMass / 13
		d.oxy[i] = -(fRaw[i]*oxyF + clRaw[i]*oxyCl)
		if sumInput[i] < minSumInput {
			d.h2o[i], d.fe2o3[i], d.feo[i], d.oxy[i] = math.NaN(), math.NaN(), math.NaN(), math.NaN()
		}
		d.mgno[i] = mg[i] / (mg[i] + d.fe2[i])
		d.naCalc[i] = 2 - ca[i]
		if na[i] < 2-ca[i] {
			d.naCalc[i] = na[i]
		}
		d.bSum[i] = d.naCalc[i] + ca[i]
	}
	floats.SubTo(d.total, sumInput, feot)
	floats.Add(d.total, d.h2o)
	floats.Add(d.total, d.fe2o3)
	floats.Add(d.total, d.feo)
	floats.Add(d.total, d.oxy)

	if tbl.Has(PressureMPa) && tbl.Has(Pressure1aMPa) {
		p, p1a := col(PressureMPa), col(Pressure1aMPa)
		d.ape = make([]float64, n)
		for i := range d.ape {
			d.ape[i] = math.Abs(p1a[i]-p[i]) / (p1a[i] + p[i]) * 200
		}
	}

	// Stage 3 (Check).
	checks := []struct {
		check Check
		fail  func(i int) bool
	}{
		{CheckLowQuality, func(i int) bool { return sumInput[i] < minSumInput }},
		{CheckLowRecalcTotal, func(i int) bool { return d.total[i] < minRecalcTotal }},
		{CheckHighRecalcTotal, func(i int) bool { return d.total[i] > maxRecalcTotal }},
		{CheckUnbalancedCharge, func(i int) bool { return d.charge[i] > maxCharge }},
		{CheckNegativeFerrous, func(i int) bool { return d.fe2[i] < 0 }},
		{CheckLowMgNumber, func(i int) bool { return 100*d.mgno[i] < minMgNumber }},
		{CheckLowCalcium, func(i int) bool { return ca[i] < minCa }},
		{CheckHighCalcium, func(i int) bool { return ca[i] > maxCa }},
		{CheckLowBCations, func(i int) bool { return d.bSum[i] < minBSum }},
	}
	rep := Report{Pass: make([]bool, n), Reason: make([]string, n), Failure: make([]Check, n)}
	for i := 0; i < n; i++ {
		rep.Pass[i] = true
		for _, c := range checks {
			if c.fail(i) {
				rep.Pass[i] = false
				rep.Failure[i] = c.check
				rep.Reason[i] = c.check.Message()
			}
		}
	}

	var err error
	if rep.Derived, err = d.table(); err != nil {
		return Report{}, fmt.Errorf("validation.%s: %w", opRun, err)
	}
	g.log.Debug("validation gate", slog.Int("rows", n), slog.Int("failed", rep.Failed()))

	return rep, nil
}

// derived holds the Stage 2 vectors.
type derived struct {
	h2o, charge, fe3, fe2, fe2o3, feo, oxy, total, mgno, naCalc, bSum, ape []float64
}

func (d derived) table() (*table.Table, error) {
	names := []string{H2OCalc, Fe2O3Calc, FeOCalc, TotalRecalc, Charge, Fe3Calc, Fe2Calc, OFCl, MgnoFe2, NaCalc, BSum}
	cols := [][]float64{d.h2o, d.fe2o3, d.feo, d.total, d.charge, d.fe3, d.fe2, d.oxy, d.mgno, d.naCalc, d.bSum}
	if d.ape != nil {
		names = append(names, APE)
		cols = append(cols, d.ape)
	}

	return table.FromColumns(names, cols)
}
