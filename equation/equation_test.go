package equation_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/thermobar/composition"
	"github.com/katalvlaran/thermobar/equation"
	"github.com/katalvlaran/thermobar/table"
)

func constBody(v float64) equation.Body {
	return func(in equation.Inputs, _ []float64) []float64 {
		out := make([]float64, in.Rows())
		for i := range out {
			out[i] = v
		}
		return out
	}
}

// TestNewRegistry_Rejects covers every construction failure.
func TestNewRegistry_Rejects(t *testing.T) {
	ok := equation.Descriptor{ID: "P_x", Kind: equation.AmpOnlyPressure, Body: constBody(1)}

	_, err := equation.NewRegistry(equation.AmpOnlyPressure, ok, ok)
	assert.ErrorIs(t, err, equation.ErrDuplicateEquation)

	noID := ok
	noID.ID = ""
	_, err = equation.NewRegistry(equation.AmpOnlyPressure, noID)
	assert.ErrorIs(t, err, equation.ErrInvalidDescriptor)

	noBody := ok
	noBody.Body = nil
	_, err = equation.NewRegistry(equation.AmpOnlyPressure, noBody)
	assert.ErrorIs(t, err, equation.ErrInvalidDescriptor)

	_, err = equation.NewRegistry(equation.AmpOnlyTemperature, ok)
	assert.ErrorIs(t, err, equation.ErrInvalidDescriptor)

	_, err = equation.NewRegistry(equation.Kind(42), ok)
	assert.ErrorIs(t, err, equation.ErrInvalidDescriptor)

	assert.Panics(t, func() { equation.MustRegistry(equation.AmpOnlyPressure, ok, ok) })
}

// TestRegistry_LookupIsolation verifies lookups cannot mutate the registry.
func TestRegistry_LookupIsolation(t *testing.T) {
	reg := equation.MustRegistry(equation.AmpOnlyPressure, equation.Descriptor{
		ID: "P_x", Kind: equation.AmpOnlyPressure, Requires: []string{"a"}, Body: constBody(1),
	})

	d, err := reg.Lookup("P_x")
	require.NoError(t, err)
	d.Requires[0] = "mutated"

	again, err := reg.Lookup("P_x")
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, again.Requires)

	_, err = reg.Lookup("P_nope")
	assert.ErrorIs(t, err, equation.ErrUnknownEquation)
	assert.Contains(t, err.Error(), "P_nope")
}

// TestDefaultCatalog_Contents pins the registered IDs of each kind.
func TestDefaultCatalog_Contents(t *testing.T) {
	c := equation.DefaultCatalog()
	assert.Same(t, c, equation.DefaultCatalog())

	assert.Equal(t, 16, c.AmpOnlyP.Len())
	assert.Equal(t, 5, c.AmpOnlyT.Len())
	assert.Equal(t, 3, c.AmpLiqP.Len())
	assert.Equal(t, 3, c.AmpLiqT.Len())

	ids := c.AmpOnlyT.IDs()
	assert.True(t, sort.StringsAreSorted(ids))
	assert.Equal(t, []string{"T_Put2016_SiHbl", "T_Put2016_eq5", "T_Put2016_eq6", "T_Put2016_eq8", "T_Ridolfi2012"}, ids)

	// The saturation-surface thermometer needs melt features; it is amp–liq only.
	assert.False(t, c.AmpOnlyT.Has("T_Put2016_eq4a_amp_sat"))
	assert.True(t, c.AmpLiqT.Has("T_Put2016_eq4a_amp_sat"))

	for _, k := range equation.Kinds() {
		require.NotNil(t, c.Registry(k), k.String())
		assert.Equal(t, k, c.Registry(k).Kind())
	}
	assert.Nil(t, c.Registry(equation.Kind(9)))
}

// TestDependentFlags pins which calibrations need the other unknown.
func TestDependentFlags(t *testing.T) {
	c := equation.DefaultCatalog()
	dependent := map[string]bool{
		"P_Anderson1995": true, "T_Put2016_eq6": true, "T_Put2016_eq8": true, "T_Ridolfi2012": true,
	}
	for _, k := range equation.Kinds() {
		reg := c.Registry(k)
		for _, id := range reg.IDs() {
			d, err := reg.Lookup(id)
			require.NoError(t, err)
			assert.Equal(t, dependent[id], d.NeedsDependent, id)
			assert.NotEmpty(t, d.Reference, id)
		}
	}
}

func ampTable(t *testing.T) *table.Table {
	t.Helper()
	tbl, err := table.FromMap(map[string][]float64{
		"SiO2_Amp": {42.0, 44.5}, "TiO2_Amp": {2.5, 1.8}, "Al2O3_Amp": {12.0, 10.5},
		"FeOt_Amp": {12.0, 13.1}, "MnO_Amp": {0.2, 0.3}, "MgO_Amp": {14.0, 13.2},
		"CaO_Amp": {11.0, 11.2}, "Na2O_Amp": {2.5, 2.1}, "K2O_Amp": {0.8, 0.6},
	})
	require.NoError(t, err)
	return tbl
}

func liqTable(t *testing.T) *table.Table {
	t.Helper()
	tbl, err := table.FromMap(map[string][]float64{
		"SiO2_Liq": {60, 62}, "TiO2_Liq": {0.7, 0.6}, "Al2O3_Liq": {17, 16.5},
		"FeOt_Liq": {5, 4.6}, "MnO_Liq": {0.1, 0.1}, "MgO_Liq": {2.5, 2.2},
		"CaO_Liq": {5.5, 5.1}, "Na2O_Liq": {4, 4.1}, "K2O_Liq": {2, 2.2},
		"P2O5_Liq": {0.2, 0.2}, "H2O_Liq": {4, 4},
	})
	require.NoError(t, err)
	return tbl
}

// TestCatalogRequires_SatisfiedByComposition checks that the normalization
// outputs provide every feature the catalogue declares.
func TestCatalogRequires_SatisfiedByComposition(t *testing.T) {
	amp := ampTable(t)
	ox23, err := composition.Amphibole23Oxygens(amp)
	require.NoError(t, err)
	cat13, err := composition.Amphibole13Cations(amp)
	require.NoError(t, err)
	mgno, err := composition.AmphiboleMgNumber(amp)
	require.NoError(t, err)
	ampFeatures, err := table.Join(ox23, cat13)
	require.NoError(t, err)
	ampFeatures, err = ampFeatures.With(composition.MgnoAmp, mgno)
	require.NoError(t, err)
	ampFeatures, err = ampFeatures.With(equation.DeltaNNO, []float64{1, 1})
	require.NoError(t, err)

	hyd, err := composition.LiquidHydrousFractions(liqTable(t))
	require.NoError(t, err)
	anh, err := composition.LiquidAnhydrousFractions(liqTable(t))
	require.NoError(t, err)
	pair, err := table.Join(ox23, hyd, anh)
	require.NoError(t, err)

	c := equation.DefaultCatalog()
	for _, reg := range []*equation.Registry{c.AmpOnlyP, c.AmpOnlyT} {
		for _, id := range reg.IDs() {
			d, _ := reg.Lookup(id)
			_, err := d.Bind(ampFeatures)
			assert.NoError(t, err, id)
		}
	}
	for _, reg := range []*equation.Registry{c.AmpLiqP, c.AmpLiqT} {
		for _, id := range reg.IDs() {
			d, _ := reg.Lookup(id)
			in, err := d.Bind(pair)
			require.NoError(t, err, id)
			out := d.Eval(in, nil)
			assert.Len(t, out, 2, id)
		}
	}
}

// TestHammarstromEq1_HandComputed evaluates -3.92 + 5.03·Al on three rows.
func TestHammarstromEq1_HandComputed(t *testing.T) {
	feats, err := table.FromColumns([]string{"Al2O3_Amp_cat_23ox"}, [][]float64{{1, 2, 3}})
	require.NoError(t, err)

	d, err := equation.DefaultCatalog().AmpOnlyP.Lookup("P_Hammerstrom1986_eq1")
	require.NoError(t, err)
	in, err := d.Bind(feats)
	require.NoError(t, err)

	assert.InDeltaSlice(t, []float64{1.11, 6.14, 11.17}, d.Eval(in, nil), 1e-12)
}

// TestMutch2016_HandComputed evaluates 0.5 + 0.331·Al + 0.995·Al² on the
// 23-oxygen total Al.
func TestMutch2016_HandComputed(t *testing.T) {
	feats, err := table.FromColumns([]string{composition.AlTotAmp}, [][]float64{{1, 2}})
	require.NoError(t, err)

	d, err := equation.DefaultCatalog().AmpOnlyP.Lookup("P_Mutch2016")
	require.NoError(t, err)
	assert.Equal(t, []string{composition.AlTotAmp}, d.Requires)
	in, err := d.Bind(feats)
	require.NoError(t, err)

	assert.InDeltaSlice(t, []float64{1.826, 5.142}, d.Eval(in, nil), 1e-12)
}

// TestAnderson1995_ReferenceTemperature: at 675 °C the T correction vanishes.
func TestAnderson1995_ReferenceTemperature(t *testing.T) {
	feats, err := table.FromColumns([]string{"Al2O3_Amp_cat_23ox"}, [][]float64{{2}})
	require.NoError(t, err)

	d, err := equation.DefaultCatalog().AmpOnlyP.Lookup("P_Anderson1995")
	require.NoError(t, err)
	in, err := d.Bind(feats)
	require.NoError(t, err)

	assert.InDelta(t, 6.51, d.Eval(in, []float64{675 + 273.15})[0], 1e-12)
}

// TestSiHbl_HandComputed evaluates 273.15 + 2061 − 178.4·Si.
func TestSiHbl_HandComputed(t *testing.T) {
	feats, err := table.FromColumns([]string{"SiO2_Amp_cat_23ox"}, [][]float64{{6.5}})
	require.NoError(t, err)

	d, err := equation.DefaultCatalog().AmpOnlyT.Lookup("T_Put2016_SiHbl")
	require.NoError(t, err)
	in, err := d.Bind(feats)
	require.NoError(t, err)

	assert.InDelta(t, 1174.55, d.Eval(in, []float64{5})[0], 1e-9)
}

// TestBind_MissingFeature reports the missing column before any arithmetic.
func TestBind_MissingFeature(t *testing.T) {
	d, err := equation.DefaultCatalog().AmpOnlyP.Lookup("P_Ridolfi2010")
	require.NoError(t, err)

	feats, err := table.FromColumns([]string{"Al2O3_Amp_cat_23ox"}, [][]float64{{1}})
	require.NoError(t, err)
	_, err = d.Bind(feats)
	assert.ErrorIs(t, err, table.ErrMissingRequiredFeature)
	assert.Contains(t, err.Error(), composition.CationSumSiCa)

	_, err = d.Bind(nil)
	assert.ErrorIs(t, err, table.ErrNilTable)
}

// TestKind_Helpers pins the naming helpers used in logs.
func TestKind_Helpers(t *testing.T) {
	assert.Equal(t, "T", equation.AmpOnlyPressure.Dependent())
	assert.Equal(t, "P", equation.AmpLiqTemperature.Dependent())
	assert.Equal(t, "P", equation.AmpLiqPressure.Estimates())
	assert.Equal(t, 2, equation.AmpLiqPressure.Phases())
	assert.Equal(t, 1, equation.AmpOnlyTemperature.Phases())
	assert.Equal(t, "kind(7)", equation.Kind(7).String())
}
