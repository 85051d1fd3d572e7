package amphibole_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/thermobar/amphibole"
	"github.com/katalvlaran/thermobar/composition"
	"github.com/katalvlaran/thermobar/dispatch"
	"github.com/katalvlaran/thermobar/table"
)

// Hand-computed for the hastingsite analysis.
const meltTol = 1e-6

func TestMeltComposition_Ridolfi2021(t *testing.T) {
	out, err := quiet().MeltComposition(rows(t, hastingsite, 1), amphibole.MeltRidolfi2021, dispatch.None())
	require.NoError(t, err)
	assert.Empty(t, out.Notes)

	names := out.Numeric.Names()
	assert.Equal(t, []string{amphibole.ColDeltaNNO, amphibole.ColH2OMelt}, names[:2])
	assert.Equal(t, composition.SiteColumns(), names[2:])

	get := func(name string) float64 {
		v, err := out.Column(name)
		require.NoError(t, err, name)
		return v[0]
	}
	assert.InDelta(t, 1.891300245, get(amphibole.ColDeltaNNO), meltTol)
	assert.InDelta(t, 5.735056421, get(amphibole.ColH2OMelt), meltTol)
	assert.InDelta(t, 1.806113, get(composition.AlT), meltTol)
	assert.InDelta(t, 0.749779, get(composition.Fe3C), meltTol)
	assert.InDelta(t, 0.427063, get(composition.NaA), meltTol)

	// Any supplied temperature is ignored with a note.
	noted, err := quiet().MeltComposition(rows(t, hastingsite, 1), amphibole.MeltRidolfi2021, dispatch.Scalar(1200))
	require.NoError(t, err)
	assert.Equal(t, out.Numeric.Names(), noted.Numeric.Names())
	require.Len(t, noted.Notes, 1)
	assert.Contains(t, noted.Notes[0], amphibole.MeltRidolfi2021)
}

func TestMeltComposition_Zhang2017(t *testing.T) {
	amp := rows(t, hastingsite, 1)
	want := map[string]float64{
		"SiO2_Eq1": 63.416550023, "SiO2_Eq2": 64.652501583, "SiO2_Eq3": 60.503482762,
		"SiO2_Eq4": 60.009268001, "TiO2_Eq5": 0.629841375, "TiO2_Eq6": 0.627923775,
		"FeO_Eq7": 4.209445986, "FeO_Eq8": 4.818712965, "MgO_Eq9": 1.649332018,
		"CaO_Eq10": 6.032698776, "CaO_Eq11": 4.481731179, "K2O_Eq12": 1.869022881,
		"K2O_Eq13": 2.131745116, "Al2O3_Eq14": 17.978951390,
	}

	out, err := quiet().MeltComposition(amp, amphibole.MeltZhang2017, dispatch.Scalar(1273.15))
	require.NoError(t, err)
	assert.Empty(t, out.Notes)
	for name, v := range want {
		got, err := out.Column(name)
		require.NoError(t, err, name)
		assert.InDelta(t, v, got[0], meltTol, name)
	}
	factor, err := out.Column(composition.FerricFactor)
	require.NoError(t, err)
	assert.InDelta(t, 0.978458387, factor[0], meltTol)

	// Without T the two temperature-dependent equations are left out.
	noT, err := quiet().MeltComposition(amp, amphibole.MeltZhang2017, dispatch.None())
	require.NoError(t, err)
	assert.False(t, noT.Numeric.Has("SiO2_Eq3"))
	assert.False(t, noT.Numeric.Has("TiO2_Eq5"))
	eq1, _ := noT.Column("SiO2_Eq1")
	assert.InDelta(t, want["SiO2_Eq1"], eq1[0], meltTol)
	require.Len(t, noT.Notes, 1)
	assert.Contains(t, noT.Notes[0], "SiO2_Eq3, TiO2_Eq5")
}

func TestMeltComposition_Errors(t *testing.T) {
	amp := rows(t, hastingsite, 1, 1.01)
	eng := quiet()

	_, err := eng.MeltComposition(amp, "Putirka08", dispatch.None())
	assert.ErrorIs(t, err, amphibole.ErrUnknownMeltMethod)

	_, err = eng.MeltComposition(amp, amphibole.MeltZhang2017, dispatch.Solve())
	assert.ErrorIs(t, err, amphibole.ErrUnsupportedCoupling)

	_, err = eng.MeltComposition(amp, amphibole.MeltZhang2017, dispatch.Vector([]float64{1273.15}))
	assert.ErrorIs(t, err, dispatch.ErrLengthMismatch)

	_, err = eng.MeltComposition(nil, amphibole.MeltRidolfi2021, dispatch.None())
	assert.ErrorIs(t, err, table.ErrNilTable)
}

func TestAllPressures(t *testing.T) {
	amp := rows(t, hastingsite, 1, 0.98, 1.02)
	eng := quiet()
	ids := eng.Catalog().AmpOnlyP.IDs()

	out, err := eng.AllPressures(amp, dispatch.Scalar(1000))
	require.NoError(t, err)
	names := out.Numeric.Names()
	assert.Len(t, names, len(ids))
	assert.NotContains(t, names, amphibole.PKraw2012)
	assert.Equal(t, amphibole.PRidolfi2021, names[len(names)-1])
	assert.Len(t, out.Equation, 3)

	for _, id := range []string{"P_Mutch2016", "P_Anderson1995"} {
		one, err := eng.Pressure(amp, id, dispatch.Scalar(1000))
		require.NoError(t, err)
		want, _ := one.Column(amphibole.ColPressure)
		got, err := out.Column(id)
		require.NoError(t, err)
		assert.Equal(t, want, got, id)
	}
	// T reaches only the T-dependent barometer, so nothing is noted as ignored.
	assert.Empty(t, out.Notes)

	noT, err := eng.AllPressures(amp, dispatch.None())
	require.NoError(t, err)
	assert.False(t, noT.Numeric.Has("P_Anderson1995"))
	assert.True(t, noT.Numeric.Has("P_Hammerstrom1986_eq1"))
	require.Len(t, noT.Notes, 1)
	assert.Contains(t, noT.Notes[0], "P_Anderson1995")

	withNNO, err := quiet(amphibole.WithDeltaNNO(1.5)).AllPressures(amp, dispatch.Scalar(1000))
	require.NoError(t, err)
	kraw, err := quiet(amphibole.WithDeltaNNO(1.5)).Kraw2012(amp, dispatch.None())
	require.NoError(t, err)
	want, _ := kraw.Column(amphibole.ColPH2O)
	got, err := withNNO.Column(amphibole.PKraw2012)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = eng.AllPressures(amp, dispatch.Solve())
	assert.ErrorIs(t, err, amphibole.ErrUnsupportedCoupling)
}
