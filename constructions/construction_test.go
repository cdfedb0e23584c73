package constructions

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func opaqueR(name string, thick_in, r float64) Opaque {
	return NewOpaqueFromRValue(name, thick_in, r, WithDensity(30.0), WithSpecificHeat(0.25))
}

func TestSeriesRValueIsSum(t *testing.T) {
	c := NewConstruction("series", []float64{1.0})
	c.AddLayer("", NewSimple("a", 2.0))
	c.AddLayer("", NewSimple("b", 3.0))
	c.AddLayer("", NewSimple("c", 5.0))

	r, err := c.AssemblyRValue()
	require.NoError(t, err)
	assert.InDelta(t, 10.0, r, 1e-9)
}

func TestSeriesLayersOverSeveralPaths(t *testing.T) {
	c := NewConstruction("series", []float64{0.2, 0.8})
	c.AddLayer("", opaqueR("a", 1.0, 2.0))
	c.AddLayer("", opaqueR("b", 1.0, 3.0))

	r, err := c.AssemblyRValue()
	require.NoError(t, err)
	assert.InDelta(t, 5.0, r, 1e-9)
}

func parallel_wall() *Construction {
	c := NewConstruction("parallel", []float64{0.25, 0.75})
	c.AddLayer("", NewSimple("outside", 1.0))
	c.AddLayer("StudAndCavity", opaqueR("stud", 3.5, 4.0), opaqueR("cavity", 3.5, 12.0))
	c.AddLayer("", NewSimple("inside", 1.0))
	return c
}

func TestParallelPathConductanceLaw(t *testing.T) {
	r, err := parallel_wall().AssemblyRValue()
	require.NoError(t, err)
	assert.InDelta(t, 2.0+1.0/(0.25/4.0+0.75/12.0), r, 1e-6)
}

func TestEffectiveMaterialRoundTrip(t *testing.T) {
	cases := map[string]func() (*Construction, error){
		"parallel": func() (*Construction, error) { return parallel_wall(), nil },
		"wood stud": func() (*Construction, error) {
			p := DefaultWoodStudWallParams()
			p.InstallGrade = 3
			p.RigidR = 5.0
			p.RigidThickIn = 1.0
			return WoodStudWall("w", p)
		},
		"double stud": func() (*Construction, error) { return DoubleStudWall("d", DefaultDoubleStudWallParams()) },
		"cmu furred": func() (*Construction, error) {
			p := DefaultCMUWallParams()
			p.FurringR = 10.0
			p.FurringDepthIn = 1.5
			p.FurringFramingFactor = 0.1
			return CMUWall("cmu", p)
		},
		"icf":     func() (*Construction, error) { return ICFWall("icf", DefaultICFWallParams()) },
		"sip":     func() (*Construction, error) { return SIPWall("sip", DefaultSIPWallParams()) },
		"roof":    func() (*Construction, error) { return FinishedRoof("roof", DefaultFinishedRoofParams()) },
		"ceiling": func() (*Construction, error) { return UnfinishedAtticFloor("ceil", DefaultUnfinishedAtticFloorParams()) },
		"floor":   func() (*Construction, error) { return JoistFloor("floor", DefaultJoistFloorParams()) },
	}

	for name, build := range cases {
		t.Run(name, func(t *testing.T) {
			c, err := build()
			require.NoError(t, err)

			want, err := c.AssemblyRValue()
			require.NoError(t, err)

			h, err := c.Homogenized()
			require.NoError(t, err)
			got, err := h.AssemblyRValue()
			require.NoError(t, err)
			assert.InDelta(t, want, got, 1e-6)

			// rebuild by hand with ParallelMaterial in place of each parallel layer
			manual := NewConstruction("manual", []float64{1.0})
			for i, l := range c.Layers() {
				if l.IsParallel() {
					m, err := c.ParallelMaterial(i)
					require.NoError(t, err)
					manual.AddLayer(l.Name, m)
				} else {
					manual.AddLayer(l.Name, l.Materials[0])
				}
			}
			got, err = manual.AssemblyRValue()
			require.NoError(t, err)
			assert.InDelta(t, want, got, 1e-6)
		})
	}
}

func TestParallelMaterialProperties(t *testing.T) {
	c := NewConstruction("mass", []float64{0.25, 0.75})
	a := NewOpaqueFromRValue("a", 2.0, 2.0, WithDensity(32.0), WithSpecificHeat(0.29))
	b := NewOpaqueFromRValue("b", 2.0, 8.0, WithDensity(2.0), WithSpecificHeat(0.25))
	c.AddLayer("Core", a, b)

	m, err := c.ParallelMaterial(0)
	require.NoError(t, err)

	rho := 0.25*32.0 + 0.75*2.0
	assert.Equal(t, "Core", m.Name())
	assert.InDelta(t, 2.0, m.ThickIn(), 1e-12)
	assert.InDelta(t, rho, m.Rho(), 1e-12)
	assert.InDelta(t, (0.25*32.0*0.29+0.75*2.0*0.25)/rho, m.Cp(), 1e-12)

	// a lone parallel layer is exact
	assert.InDelta(t, 1.0/(0.25/2.0+0.75/8.0), m.RValue(), 1e-9)
}

func TestParallelMaterialRejectsSeriesLayer(t *testing.T) {
	c := parallel_wall()
	_, err := c.ParallelMaterial(0)
	assert.ErrorIs(t, err, ErrNotParallel)

	_, err = c.ParallelMaterial(7)
	assert.ErrorIs(t, err, ErrLayerIndex)
}

func TestPathFractionValidation(t *testing.T) {
	build := func(fracs []float64) error {
		c := NewConstruction("fracs", fracs)
		mats := make([]Material, len(fracs))
		for i := range fracs {
			mats[i] = opaqueR("m", 1.0, float64(i+1))
		}
		c.AddLayer("", mats...)
		return c.Validate()
	}

	for _, bad := range [][]float64{{0.25, 0.25}, {0.75, 0.75}, {0.5}, {1.5}} {
		err := build(bad)
		assert.ErrorIs(t, err, ErrPathFractionSum, "%v", bad)
	}
	for _, good := range [][]float64{
		{0.2, 0.3, 0.5}, {0.5, 0.2, 0.3}, {0.3, 0.5, 0.2}, {1.0}, {0.9995}, {0.5, 0.5009},
	} {
		assert.NoError(t, build(good), "%v", good)
	}

	assert.ErrorIs(t, build([]float64{1.2, -0.2}), ErrNegativePathFrac)
}

func TestNonContiguousParallelLayers(t *testing.T) {
	c := NewConstruction("split", []float64{0.5, 0.5})
	c.AddLayer("", opaqueR("a", 1.0, 1.0), opaqueR("b", 1.0, 2.0))
	c.AddLayer("", NewSimple("series", 1.0))
	c.AddLayer("", opaqueR("c", 1.0, 1.0), opaqueR("d", 1.0, 2.0))

	err := c.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNonContiguous)

	_, err = c.AssemblyRValue()
	assert.ErrorIs(t, err, ErrNonContiguous)
}

func TestLayerValidation(t *testing.T) {
	t.Run("material count", func(t *testing.T) {
		c := NewConstruction("c", []float64{0.2, 0.3, 0.5})
		c.AddLayer("two", opaqueR("a", 1.0, 1.0), opaqueR("b", 1.0, 2.0))
		err := c.Validate()
		assert.ErrorIs(t, err, ErrLayerMaterialCount)

		var ve *ValidationError
		require.True(t, errors.As(err, &ve))
		assert.Equal(t, "c", ve.Construction)
		assert.Equal(t, "two", ve.Layer)
	})
	t.Run("thickness", func(t *testing.T) {
		c := NewConstruction("c", []float64{0.5, 0.5})
		c.AddLayer("", opaqueR("a", 1.0, 1.0), opaqueR("b", 1.5, 2.0))
		assert.ErrorIs(t, c.Validate(), ErrLayerThickness)
	})
	t.Run("simple in parallel", func(t *testing.T) {
		c := NewConstruction("c", []float64{0.5, 0.5})
		c.AddLayer("", opaqueR("a", 1.0, 1.0), NewSimple("s", 2.0))
		assert.ErrorIs(t, c.Validate(), ErrParallelNotOpaque)
	})
	t.Run("glazing in parallel", func(t *testing.T) {
		c := NewConstruction("c", []float64{0.5, 0.5})
		c.AddLayer("", opaqueR("a", 1.0, 1.0), NewGlazing("g", 0.3, 0.4))
		err := c.Validate()
		assert.True(t, errors.Is(err, ErrGlazingParallel) || errors.Is(err, ErrMixedGlazing))
	})
	t.Run("mixed glazing", func(t *testing.T) {
		c := NewConstruction("c", []float64{1.0})
		c.AddLayer("", NewGlazing("g", 0.3, 0.4))
		c.AddFilm(AirFilmVertical())
		assert.ErrorIs(t, c.Validate(), ErrMixedGlazing)
	})
	t.Run("zero thickness", func(t *testing.T) {
		c := NewConstruction("c", []float64{1.0})
		c.AddLayer("", NewOpaque("thin", 0.0, 1.0))
		assert.ErrorIs(t, c.Validate(), ErrInvalidMaterial)
	})
	t.Run("negative r", func(t *testing.T) {
		c := NewConstruction("c", []float64{1.0})
		c.AddLayer("", NewSimple("neg", -1.0))
		assert.ErrorIs(t, c.Validate(), ErrInvalidMaterial)
	})
	t.Run("empty", func(t *testing.T) {
		assert.ErrorIs(t, NewConstruction("c", []float64{1.0}).Validate(), ErrNoLayers)
	})
}

func TestGlazingConstruction(t *testing.T) {
	c := NewConstruction("window", []float64{1.0})
	c.AddLayer("", NewGlazing("Glazing", 0.35, 0.44))
	r, err := c.AssemblyRValue()
	require.NoError(t, err)
	assert.InDelta(t, 1.0/0.35, r, 1e-12)
}

func TestLayerNames(t *testing.T) {
	c := NewConstruction("names", []float64{0.5, 0.5})
	c.AddLayer("", GypsumWall(0.5))
	c.AddLayer("", opaqueR("a", 1.0, 1.0), opaqueR("b", 1.0, 2.0))
	c.AddLayer("Named", OSB(0.5))

	layers := c.Layers()
	assert.Equal(t, "GypsumWall", layers[0].Name)
	assert.Equal(t, "ParallelMaterial", layers[1].Name)
	assert.Equal(t, "Named", layers[2].Name)
}

func TestWoodStudEmptyCavity(t *testing.T) {
	p := DefaultWoodStudWallParams()
	p.CavityR = 0.0
	p.InstallGrade = 3
	c, err := WoodStudWall("empty", p)
	require.NoError(t, err)

	var found bool
	for _, l := range c.Layers() {
		if l.Name != "WallStudAndCavity" {
			continue
		}
		found = true
		assert.Equal(t, "AirCavityClosed", l.Materials[1].Name())
	}
	require.True(t, found)

	// no gap path when there is no insulation
	assert.Equal(t, 0.0, c.PathFracs()[2])

	r, err := c.AssemblyRValue()
	require.NoError(t, err)
	assert.False(t, math.IsInf(r, 0) || math.IsNaN(r))
	assert.Greater(t, r, 0.0)
}

func TestWoodStudInstallGrade(t *testing.T) {
	r_of := func(grade InstallGrade) float64 {
		p := DefaultWoodStudWallParams()
		p.InstallGrade = grade
		c, err := WoodStudWall("g", p)
		require.NoError(t, err)
		r, err := c.AssemblyRValue()
		require.NoError(t, err)
		return r
	}
	r1, r2, r3 := r_of(1), r_of(2), r_of(3)
	assert.Greater(t, r1, r2)
	assert.Greater(t, r2, r3)

	// a 2x4 R-13 wall lands a little above R-11 whole-assembly
	assert.InDelta(t, 11.8, r1, 1.5)
}

func TestAssemblyInputErrors(t *testing.T) {
	p := DefaultWoodStudWallParams()
	p.FramingFactor = 1.0
	_, err := WoodStudWall("bad", p)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)

	var ie *InputError
	require.True(t, errors.As(err, &ie))
	assert.Equal(t, "framing_factor", ie.Field)

	p = DefaultWoodStudWallParams()
	p.CavityR = -1.0
	_, err = WoodStudWall("bad", p)
	assert.ErrorIs(t, err, ErrInvalidInput)

	p = DefaultWoodStudWallParams()
	p.InstallGrade = 4
	_, err = WoodStudWall("bad", p)
	assert.ErrorIs(t, err, ErrInvalidInput)

	p = DefaultWoodStudWallParams()
	p.Finish = "FinishUnobtainium"
	_, err = WoodStudWall("bad", p)
	assert.ErrorIs(t, err, ErrUnknownBaseMaterial)

	s := DefaultSIPWallParams()
	s.SIPThickIn = 0.0
	_, err = SIPWall("bad", s)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = GenericWall("bad", nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSteelStudCorrectionFactor(t *testing.T) {
	p := DefaultSteelStudWallParams()
	c, err := SteelStudWall("steel", p)
	require.NoError(t, err)
	r, err := c.AssemblyRValue()
	require.NoError(t, err)

	w, err := WoodStudWall("wood", DefaultWoodStudWallParams())
	require.NoError(t, err)
	rw, err := w.AssemblyRValue()
	require.NoError(t, err)
	assert.Less(t, r, rw)
}

func TestGenericWall(t *testing.T) {
	c, err := GenericWall("generic", []GenericLayer{
		{Name: "Brick", ThickIn: 4.0, KIn: 5.5, Rho: 110.0, Cp: 0.19},
		{Name: "Foam", ThickIn: 2.0, KIn: 0.2, Rho: 2.0, Cp: 0.29},
	})
	require.NoError(t, err)
	r, err := c.AssemblyRValue()
	require.NoError(t, err)
	assert.InDelta(t, 0.197+4.0/5.5+2.0/0.2+0.68, r, 1e-9)
}

func TestSlab(t *testing.T) {
	p := DefaultSlabParams()
	p.UnderSlabR = 10.0
	p.UnderThickIn = 2.0
	c, err := Slab("slab", p)
	require.NoError(t, err)
	r, err := c.AssemblyRValue()
	require.NoError(t, err)
	assert.Greater(t, r, 10.0)
}

func TestAirFilms(t *testing.T) {
	assert.InDelta(t, 0.62, AirFilmSlopeEnhanced(45.0).RValue(), 0.01)
	assert.InDelta(t, 0.76, AirFilmSlopeReduced(45.0).RValue(), 0.01)
	assert.InDelta(t, (0.61+0.92)/2.0, AirFilmFloorAverage().RValue(), 1e-12)

	// a flat roof film sits between the flat enhanced and reduced values
	r := AirFilmRoof(0.0).RValue()
	assert.Greater(t, r, AirFilmFlatEnhanced().RValue()-0.01)
	assert.Less(t, r, AirFilmFlatReduced().RValue()+0.01)
}

func TestBaseMaterials(t *testing.T) {
	g, err := LookupBaseMaterial("Gypsum")
	require.NoError(t, err)
	assert.InDelta(t, 50.0, g.Rho, 1e-12)
	assert.InDelta(t, 1.1112, g.KIn, 1e-12)

	_, err = LookupBaseMaterial("nope")
	assert.ErrorIs(t, err, ErrUnknownBaseMaterial)

	names := BaseMaterialNames()
	assert.Contains(t, names, "Wood")
	assert.Contains(t, names, "RoofingAsphaltShingles")
	assert.IsIncreasing(t, names)
}

func TestAirCavities(t *testing.T) {
	assert.InDelta(t, 1.0, AirCavityClosed(3.5).RValue(), 1e-12)
	assert.Less(t, AirCavityOpen(3.5).RValue(), 0.01)
	assert.InDelta(t, 0.07518, AirCavityClosed(3.5).Rho(), 1e-12)
}
