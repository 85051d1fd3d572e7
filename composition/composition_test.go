package composition_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/thermobar/composition"
	"github.com/katalvlaran/thermobar/table"
)

const tol = 1e-12

// ampTable builds an amphibole table with one mole of SiO2 and one of MgO per
// 100 g and zeros elsewhere, so every normalization is easy to check by hand.
func ampTable(t *testing.T) *table.Table {
	t.Helper()
	tbl, err := table.FromMap(map[string][]float64{
		"SiO2_Amp":  {composition.SiO2.Mass},
		"TiO2_Amp":  {0},
		"Al2O3_Amp": {0},
		"FeOt_Amp":  {0},
		"MgO_Amp":   {composition.MgO.Mass},
		"CaO_Amp":   {0},
		"Na2O_Amp":  {0},
		"K2O_Amp":   {0},
	})
	require.NoError(t, err)

	return tbl
}

// TestAmphibole23Oxygens checks the oxygen-basis normalization by hand:
// 1 Si (2 O) + 1 Mg (1 O) → factor 23/3.
func TestAmphibole23Oxygens(t *testing.T) {
	out, err := composition.Amphibole23Oxygens(ampTable(t))
	require.NoError(t, err)

	si, _ := out.Column("SiO2_Amp_cat_23ox")
	mg, _ := out.Column("MgO_Amp_cat_23ox")
	sum, _ := out.Column(composition.CationSumSiCa)
	assert.InDelta(t, 23.0/3, si[0], tol)
	assert.InDelta(t, 23.0/3, mg[0], tol)
	assert.InDelta(t, 46.0/3, sum[0], tol)
	assert.True(t, out.Has(composition.AlTotAmp))
}

// TestAmphibole13Cations checks Si..Mg = 13 and the raw cation sum.
func TestAmphibole13Cations(t *testing.T) {
	out, err := composition.Amphibole13Cations(ampTable(t))
	require.NoError(t, err)

	si, _ := out.Column("SiO2_Amp_13_cat")
	mg, _ := out.Column("MgO_Amp_13_cat")
	raw, _ := out.Column(composition.CationSumSiMg)
	f, _ := out.Column(composition.F13Cat)
	assert.InDelta(t, 6.5, si[0], tol)
	assert.InDelta(t, 6.5, mg[0], tol)
	assert.InDelta(t, 2.0, raw[0], tol)
	assert.Equal(t, 0.0, f[0], "absent halogen counts as zero")
}

// TestAmphibole_MissingMajor verifies the required-oxide contract.
func TestAmphibole_MissingMajor(t *testing.T) {
	tbl, _ := table.FromMap(map[string][]float64{"SiO2_Amp": {45}})
	_, err := composition.Amphibole23Oxygens(tbl)
	assert.ErrorIs(t, err, table.ErrMissingRequiredFeature)
	_, err = composition.Amphibole13Cations(tbl)
	assert.ErrorIs(t, err, table.ErrMissingRequiredFeature)
	_, err = composition.Amphibole13Cations(nil)
	assert.ErrorIs(t, err, table.ErrNilTable)
}

// TestLiquidFractions checks hydrous vs anhydrous mole fractions.
func TestLiquidFractions(t *testing.T) {
	liq, err := table.FromMap(map[string][]float64{
		"SiO2_Liq":  {composition.SiO2.Mass},
		"Al2O3_Liq": {0},
		"FeOt_Liq":  {0},
		"MgO_Liq":   {composition.MgO.Mass},
		"CaO_Liq":   {0},
		"Na2O_Liq":  {0},
		"K2O_Liq":   {0},
		"H2O_Liq":   {composition.H2O.Mass},
	})
	require.NoError(t, err)

	hyd, err := composition.LiquidHydrousFractions(liq)
	require.NoError(t, err)
	si, _ := hyd.Column("SiO2_Liq_mol_frac_hyd")
	h2o, _ := hyd.Column("H2O_Liq_mol_frac_hyd")
	assert.InDelta(t, 1.0/3, si[0], tol)
	assert.InDelta(t, 1.0/3, h2o[0], tol)

	anh, err := composition.LiquidAnhydrousFractions(liq)
	require.NoError(t, err)
	si, _ = anh.Column("SiO2_Liq_mol_frac")
	assert.InDelta(t, 0.5, si[0], tol)
	assert.False(t, anh.Has("H2O_Liq_mol_frac"))
}

// TestKdFeMg checks the exchange coefficient and the Putirka window.
func TestKdFeMg(t *testing.T) {
	amp, _ := table.FromMap(map[string][]float64{
		"FeOt_Amp": {composition.FeOt.Mass},
		"MgO_Amp":  {composition.MgO.Mass},
	})
	liq, _ := table.FromMap(map[string][]float64{
		"SiO2_Liq":  {0},
		"Al2O3_Liq": {0},
		"FeOt_Liq":  {composition.FeOt.Mass},
		"MgO_Liq":   {2 * composition.MgO.Mass},
		"CaO_Liq":   {0},
		"Na2O_Liq":  {0},
		"K2O_Liq":   {0},
	})
	kd, err := composition.KdFeMg(amp, liq)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, kd[0], tol)

	assert.Equal(t,
		[]string{"No", "Yes", "Yes", "Yes", "No"},
		composition.PutirkaEquilibrium([]float64{0.1699, 0.17, 0.3, 0.39, 0.3901}),
	)
}

// TestTotalsAndMgNumber covers Sum_input and Kraw's Mg#.
func TestTotalsAndMgNumber(t *testing.T) {
	amp, _ := table.FromMap(map[string][]float64{
		"SiO2_Amp": {40, 45},
		"MgO_Amp":  {40.3044, 10},
		"FeOt_Amp": {71.844, 10},
		"Cl_Amp":   {0.5, 0},
		"Note":     {1000, 1000},
	})
	sum, err := composition.AmphiboleTotal(amp)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{152.6484, 65}, sum, 1e-9, "non-oxide columns are not counted")

	mgno, err := composition.AmphiboleMgNumber(amp)
	require.NoError(t, err)
	assert.InDelta(t, 50.0, mgno[0], tol)
}
