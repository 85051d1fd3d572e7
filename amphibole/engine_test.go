package amphibole_test

import (
	"io"
	"log/slog"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/thermobar/amphibole"
	"github.com/katalvlaran/thermobar/classifier"
	"github.com/katalvlaran/thermobar/composition"
	"github.com/katalvlaran/thermobar/dispatch"
	"github.com/katalvlaran/thermobar/equation"
	"github.com/katalvlaran/thermobar/solver"
	"github.com/katalvlaran/thermobar/table"
)

const tol = 1e-9

// hastingsite is a calcic amphibole analysis (wt%, Sum_input 96.85).
var hastingsite = map[string]float64{
	"SiO2_Amp": 42.5, "TiO2_Amp": 2.5, "Al2O3_Amp": 11.8, "FeOt_Amp": 11.5,
	"MnO_Amp": 0.15, "MgO_Amp": 14.2, "CaO_Amp": 11.2, "Na2O_Amp": 2.4,
	"K2O_Amp": 0.6,
}

// andesite is a hydrous melt analysis (wt%).
var andesite = map[string]float64{
	"SiO2_Liq": 60, "TiO2_Liq": 0.6, "Al2O3_Liq": 17, "FeOt_Liq": 5,
	"MnO_Liq": 0.1, "MgO_Liq": 2, "CaO_Liq": 5.5, "Na2O_Liq": 4,
	"K2O_Liq": 1.5, "P2O5_Liq": 0.2, "H2O_Liq": 4,
}

// rows builds a table with one row per scale factor applied to base.
func rows(t *testing.T, base map[string]float64, scales ...float64) *table.Table {
	t.Helper()
	cols := make(map[string][]float64, len(base))
	for name, v := range base {
		for _, s := range scales {
			cols[name] = append(cols[name], v*s)
		}
	}
	tbl, err := table.FromMap(cols)
	require.NoError(t, err)

	return tbl
}

func column(t *testing.T, out *amphibole.Output, name string) []float64 {
	t.Helper()
	v, err := out.Column(name)
	require.NoError(t, err, name)

	return v
}

// EngineSuite exercises the amphibole-only pipelines.
type EngineSuite struct {
	suite.Suite
	eng *amphibole.Engine
	amp *table.Table
}

func (s *EngineSuite) SetupTest() {
	s.eng = amphibole.New(amphibole.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	s.amp = rows(s.T(), hastingsite, 1, 0.98, 1.02)
}

// TestPressure_HandComputed: Hammarstrom & Zen eq1 is linear in Al(23 O).
func (s *EngineSuite) TestPressure_HandComputed() {
	out, err := s.eng.Pressure(s.amp, "P_Hammerstrom1986_eq1", dispatch.None())
	s.Require().NoError(err)
	s.Nil(out.Deferred)
	s.Empty(out.Notes)

	ox23, err := composition.Amphibole23Oxygens(s.amp)
	s.Require().NoError(err)
	al, _ := ox23.Column(composition.AlTotAmp)
	p := column(s.T(), out, amphibole.ColPressure)
	s.Require().Len(p, 3)
	for i := range p {
		s.InDelta(-3.92+5.03*al[i], p[i], tol)
	}
}

// TestPressure_IgnoredTemperature: a supplied T on an independent barometer
// leaves the values unchanged and adds a note.
func (s *EngineSuite) TestPressure_IgnoredTemperature() {
	plain, err := s.eng.Pressure(s.amp, "P_Mutch2016", dispatch.None())
	s.Require().NoError(err)
	noted, err := s.eng.Pressure(s.amp, "P_Mutch2016", dispatch.Scalar(1000))
	s.Require().NoError(err)

	s.Equal(column(s.T(), plain, amphibole.ColPressure), column(s.T(), noted, amphibole.ColPressure))
	s.Require().Len(noted.Notes, 1)
	s.Contains(noted.Notes[0], "P_Mutch2016")
}

// TestPressure_DependentPolicy covers None, Scalar and Solve on Anderson (1995).
func (s *EngineSuite) TestPressure_DependentPolicy() {
	_, err := s.eng.Pressure(s.amp, "P_Anderson1995", dispatch.None())
	s.ErrorIs(err, dispatch.ErrMissingDependentVariable)

	direct, err := s.eng.Pressure(s.amp, "P_Anderson1995", dispatch.Scalar(1000))
	s.Require().NoError(err)

	deferred, err := s.eng.Pressure(s.amp, "P_Anderson1995", dispatch.Solve())
	s.Require().NoError(err)
	s.Nil(deferred.Numeric)
	s.Require().NotNil(deferred.Deferred)
	s.Equal("P_Anderson1995", deferred.Deferred.ID())
	s.Equal(column(s.T(), direct, amphibole.ColPressure), deferred.Deferred.ApplyScalar(1000))

	_, err = s.eng.Pressure(s.amp, "P_Anderson1995", dispatch.Vector([]float64{1000}))
	s.ErrorIs(err, dispatch.ErrLengthMismatch)
}

// TestPressure_StructuralErrors: unknown IDs are reported before features.
func (s *EngineSuite) TestPressure_StructuralErrors() {
	_, err := s.eng.Pressure(nil, "P_Nope", dispatch.None())
	s.ErrorIs(err, equation.ErrUnknownEquation)
	_, err = s.eng.Temperature(s.amp, "P_Mutch2016", dispatch.None())
	s.ErrorIs(err, equation.ErrUnknownEquation)

	short, err := table.FromMap(map[string][]float64{"SiO2_Amp": {45}})
	s.Require().NoError(err)
	_, err = s.eng.Pressure(short, "P_Mutch2016", dispatch.None())
	s.ErrorIs(err, table.ErrMissingRequiredFeature)
}

// TestTemperature_MatchesDispatcher: the engine adds only feature derivation.
func (s *EngineSuite) TestTemperature_MatchesDispatcher() {
	out, err := s.eng.Temperature(s.amp, "T_Put2016_SiHbl", dispatch.None())
	s.Require().NoError(err)

	ox23, err := composition.Amphibole23Oxygens(s.amp)
	s.Require().NoError(err)
	res, err := dispatch.New(equation.DefaultCatalog().AmpOnlyT).Evaluate("T_Put2016_SiHbl", ox23, dispatch.None())
	s.Require().NoError(err)
	want, _ := res.Vector()
	s.Equal(want, column(s.T(), out, amphibole.ColTemperature))
}

// TestPressureTemperature_Iterated: both sides depend on the other unknown, so
// the final T is the thermometer at the final P.
func (s *EngineSuite) TestPressureTemperature_Iterated() {
	out, err := s.eng.PressureTemperature(s.amp, "P_Anderson1995", "T_Put2016_eq6")
	s.Require().NoError(err)
	s.Equal([]string{amphibole.ColPressure, amphibole.ColTemperature, amphibole.ColDeltaP, amphibole.ColDeltaT},
		out.Numeric.Names())

	p := column(s.T(), out, amphibole.ColPressure)
	tk := column(s.T(), out, amphibole.ColTemperature)
	check, err := s.eng.Temperature(s.amp, "T_Put2016_eq6", dispatch.Vector(p))
	s.Require().NoError(err)
	s.InDeltaSlice(column(s.T(), check, amphibole.ColTemperature), tk, tol)
	for _, d := range column(s.T(), out, amphibole.ColDeltaT) {
		s.False(math.IsNaN(d))
	}
}

// TestPressureTemperature_Single: an independent barometer is evaluated once.
func (s *EngineSuite) TestPressureTemperature_Single() {
	out, err := s.eng.PressureTemperature(s.amp, "P_Hammerstrom1986_eq1", "T_Put2016_eq6")
	s.Require().NoError(err)
	s.Equal([]string{amphibole.ColPressure, amphibole.ColTemperature}, out.Numeric.Names())
	s.Empty(out.Notes)

	p := column(s.T(), out, amphibole.ColPressure)
	check, err := s.eng.Temperature(s.amp, "T_Put2016_eq6", dispatch.Vector(p))
	s.Require().NoError(err)
	s.Equal(column(s.T(), check, amphibole.ColTemperature), column(s.T(), out, amphibole.ColTemperature))
}

// TestPressureTemperature_Direct: neither side reads the other.
func (s *EngineSuite) TestPressureTemperature_Direct() {
	out, err := s.eng.PressureTemperature(s.amp, "P_Mutch2016", "T_Put2016_SiHbl")
	s.Require().NoError(err)
	s.Equal([]string{amphibole.ColPressure, amphibole.ColTemperature}, out.Numeric.Names())
}

// TestPressureTemperature_IterationBudget: fewer rounds change the answer only
// through the solver options.
func (s *EngineSuite) TestPressureTemperature_IterationBudget() {
	one := amphibole.New(
		amphibole.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		amphibole.WithSolverOptions(solver.Options{Iterations: 1, TInitial: 1300}))
	out, err := one.PressureTemperature(s.amp, "P_Anderson1995", "T_Put2016_eq6")
	s.Require().NoError(err)

	direct, err := s.eng.Pressure(s.amp, "P_Anderson1995", dispatch.Scalar(1300))
	s.Require().NoError(err)
	s.Equal(column(s.T(), direct, amphibole.ColPressure), column(s.T(), out, amphibole.ColPressure))
	for _, d := range column(s.T(), out, amphibole.ColDeltaP) {
		s.True(math.IsNaN(d))
	}
}

// TestKraw2012 checks the PH2O formula, its note and its restrictions.
func (s *EngineSuite) TestKraw2012() {
	_, err := s.eng.Pressure(s.amp, amphibole.PKraw2012, dispatch.None())
	s.ErrorIs(err, amphibole.ErrMissingDeltaNNO)

	eng := amphibole.New(
		amphibole.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		amphibole.WithDeltaNNO(1.5))
	out, err := eng.Pressure(s.amp, amphibole.PKraw2012, dispatch.None())
	s.Require().NoError(err)
	s.Equal([]string{amphibole.ColPH2O, amphibole.ColMgNumber}, out.Numeric.Names())
	s.NotEmpty(out.Notes)

	mgno, err := composition.AmphiboleMgNumber(s.amp)
	s.Require().NoError(err)
	ph2o := column(s.T(), out, amphibole.ColPH2O)
	for i := range mgno {
		s.InDelta(0.01*math.Pow(mgno[i]/52.7-0.014*1.5, 15.12), ph2o[i], tol)
	}

	_, err = eng.PressureTemperature(s.amp, amphibole.PKraw2012, "T_Put2016_eq6")
	s.ErrorIs(err, amphibole.ErrUnsupportedCoupling)
}

// TestRidolfi2021 checks selection, the gate and the low-total path.
func (s *EngineSuite) TestRidolfi2021() {
	amp := rows(s.T(), hastingsite, 1, 0.9)
	out, err := s.eng.Pressure(amp, amphibole.PRidolfi2021, dispatch.None())
	s.Require().NoError(err)

	names := out.Numeric.Names()
	s.Equal(amphibole.ColPressure, names[0])
	for _, want := range []string{"H2O_calc", "Total_recalc", "Sum_input", amphibole.ColXPae,
		amphibole.ColDeltaPdb, "P_MPa_1a", "P_MPa_1e", "SiO2_Amp_13_cat", "cation_sum_Si_Mg"} {
		s.Contains(names, want)
	}
	s.Len(out.Equation, 2)
	s.Len(out.InputCheck, 2)
	s.Len(out.FailMsg, 2)

	cand := func(name string) []float64 { return column(s.T(), out, name) }
	sel, err := classifier.Select(classifier.Candidates{
		A: cand("P_MPa_1a"), B: cand("P_MPa_1b"), C: cand("P_MPa_1c"),
		D: cand("P_MPa_1d"), E: cand("P_MPa_1e"), Quality: cand("Sum_input"),
	})
	s.Require().NoError(err)
	s.Equal(sel.Labels(), out.Equation)

	p := cand(amphibole.ColPressure)
	if out.InputCheck[0] {
		s.InDelta(sel.Pressure[0]/100, p[0], tol)
		s.Empty(out.FailMsg[0])
	} else {
		s.True(math.IsNaN(p[0]))
	}
	// Row 1 has a 87.2 wt% total: no selection and a failed gate.
	s.True(math.IsNaN(p[1]))
	s.False(out.InputCheck[1])
	s.NotEmpty(out.FailMsg[1])

	text := out.Text()
	s.Require().Len(text, 3)
	s.Equal(amphibole.ColEquation, text[0].Name)
	s.Equal(amphibole.ColInputCheck, text[1].Name)
	s.Equal(amphibole.ColFailMsg, text[2].Name)
}

// TestRidolfi2021_Coupled: the thermometer runs at the selected pressures and
// the labels are carried over.
func (s *EngineSuite) TestRidolfi2021_Coupled() {
	out, err := s.eng.PressureTemperature(s.amp, amphibole.PRidolfi2021, "T_Ridolfi2012")
	s.Require().NoError(err)
	s.Len(out.Equation, 3)
	s.NotContains(out.Numeric.Names(), amphibole.ColDeltaP)

	p := column(s.T(), out, amphibole.ColPressure)
	tk := column(s.T(), out, amphibole.ColTemperature)
	check, err := s.eng.Temperature(s.amp, "T_Ridolfi2012", dispatch.Vector(p))
	s.Require().NoError(err)
	want := column(s.T(), check, amphibole.ColTemperature)
	for i := range p {
		if math.IsNaN(p[i]) {
			s.True(math.IsNaN(tk[i]))
			continue
		}
		s.InDelta(want[i], tk[i], tol)
	}
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineSuite))
}

// TestOptions_Panics covers the option constructors.
func TestOptions_Panics(t *testing.T) {
	assert.Panics(t, func() { amphibole.WithCatalog(nil) })
	assert.Panics(t, func() { amphibole.WithLogger(nil) })
	assert.Panics(t, func() { amphibole.WithSolverOptions(solver.Options{Iterations: 0, TInitial: 1300}) })
	assert.Panics(t, func() { amphibole.WithDeltaNNO(math.NaN()) })
	assert.Panics(t, func() { amphibole.WithH2OLiquid(-1) })
	assert.NotPanics(t, func() { amphibole.WithH2OLiquid(0) })
}
