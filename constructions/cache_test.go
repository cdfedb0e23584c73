package constructions

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"envelope_hvac_calc/units"
)

type fakeSurface struct {
	name string
	c    *HostConstruction
	adj  *fakeSurface
}

func (s *fakeSurface) SetConstruction(c *HostConstruction) { s.c = c }

func (s *fakeSurface) AdjacentSurface() Surface {
	if s.adj == nil {
		return nil
	}
	return s.adj
}

func TestCacheReusesMatchingMaterial(t *testing.T) {
	cache := NewMaterialCache()
	a := cache.Resolve(Stud2x(3.5))
	b := cache.Resolve(Stud2x(3.5))
	assert.Same(t, a, b)
	assert.Equal(t, 1, cache.Len())
	assert.NotEqual(t, uuid.Nil, a.Handle)

	// within tolerance in SI
	tiny := units.MToIn(1e-6)
	c := cache.Resolve(Stud2x(3.5 + tiny))
	assert.Same(t, a, c)

	d := cache.Resolve(Stud2x(5.5))
	assert.NotSame(t, a, d)
	assert.Equal(t, "Stud2x 1", d.Name)
	assert.Equal(t, 2, cache.Len())

	// the suffixed name is still found by prefix
	assert.Same(t, d, cache.Resolve(Stud2x(5.5)))
	assert.Equal(t, 2, cache.Len())
}

func TestCacheNamesNeverCollide(t *testing.T) {
	cache := NewMaterialCache()
	a := cache.Resolve(Stud2x(3.5))
	b := cache.Resolve(Stud2x(5.5))
	require.Equal(t, "Stud2x 1", b.Name)

	// an unrelated material already called "Stud2x 1"
	c := cache.Resolve(NewOpaque("Stud2x 1", 1.0, 0.5, WithDensity(30), WithSpecificHeat(0.3)))
	d := cache.Resolve(Stud2x(7.25))

	names := map[string]bool{}
	for _, hm := range []*HostMaterial{a, b, c, d} {
		assert.False(t, names[hm.Name], "duplicate host name %q", hm.Name)
		names[hm.Name] = true
	}
	assert.Equal(t, "Stud2x 1 1", c.Name)
	assert.Equal(t, "Stud2x 2", d.Name)
	assert.Equal(t, 4, cache.Len())

	cache2 := NewMaterialCache()
	e := cache2.Resolve(NewOpaque("Stud2x 1", 1.0, 0.5, WithDensity(30), WithSpecificHeat(0.3)))
	f := cache2.Resolve(Stud2x(3.5))
	g := cache2.Resolve(Stud2x(5.5))
	assert.Equal(t, "Stud2x 1", e.Name)
	assert.Equal(t, "Stud2x", f.Name)
	assert.Equal(t, "Stud2x 2", g.Name)
}

func TestCacheKinds(t *testing.T) {
	cache := NewMaterialCache()
	s := cache.Resolve(NewSimple("R5", 5.0))
	g := cache.Resolve(NewGlazing("Window", 0.3, 0.4))

	assert.Equal(t, KindSimple, s.Kind)
	assert.InDelta(t, units.RIPToSI(5.0), s.RValue, 1e-12)
	assert.Equal(t, KindGlazing, g.Kind)
	assert.InDelta(t, units.UIPToSI(0.3), g.UFactor, 1e-12)

	assert.Same(t, s, cache.Resolve(NewSimple("R5", 5.0)))
	assert.NotSame(t, s, cache.Resolve(NewSimple("R5", 6.0)))
	assert.NotSame(t, g, cache.Resolve(NewGlazing("Window", 0.3, 0.5)))

	// same name, different kind
	o := cache.Resolve(NewOpaqueFromRValue("R5", 1.0, 5.0))
	assert.NotSame(t, s, o)
	assert.Equal(t, "Opaque", o.Kind.String())
}

func TestCacheConcurrentResolve(t *testing.T) {
	cache := NewMaterialCache()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cache.Resolve(GypsumWall(0.5))
			cache.Resolve(OSB(0.5))
		}()
	}
	wg.Wait()
	assert.Equal(t, 2, cache.Len())
}

func TestCreateAndAssignConstructions(t *testing.T) {
	c, err := WoodStudWall("ExtWall", DefaultWoodStudWallParams())
	require.NoError(t, err)

	cache := NewMaterialCache()
	front := &fakeSurface{name: "front"}
	back := &fakeSurface{name: "back"}
	garage := &fakeSurface{name: "garage"}
	partition := &fakeSurface{name: "partition", adj: garage}
	other := &fakeSurface{name: "other"}
	partition2 := &fakeSurface{name: "partition2", adj: other}

	host, err := c.CreateAndAssignConstructions([]Surface{front, back, partition, partition2}, cache)
	require.NoError(t, err)

	// films are dropped: finish, sheathing, stud layer, drywall
	require.Len(t, host.Layers, 4)
	assert.Equal(t, "FinishVinyl", host.Layers[0].Name)
	assert.Equal(t, "WallStudAndCavity", host.Layers[2].Name)
	assert.Equal(t, "GypsumWall", host.Layers[3].Name)

	assert.Same(t, host, front.c)
	assert.Same(t, host, back.c)
	assert.Same(t, host, partition.c)

	require.NotNil(t, garage.c)
	assert.Same(t, garage.c, other.c)
	assert.Equal(t, "ExtWall Reversed", garage.c.Name)
	assert.Equal(t, "GypsumWall", garage.c.Layers[0].Name)
	assert.Equal(t, "FinishVinyl", garage.c.Layers[3].Name)
	assert.InDelta(t, host.RValueSI(), garage.c.RValueSI(), 1e-12)

	// host stack matches the construction without its films
	r, err := c.AssemblyRValue()
	require.NoError(t, err)
	films := AirFilmOutside().RValue() + AirFilmVertical().RValue()
	assert.InEpsilon(t, units.RIPToSI(r-films), host.RValueSI(), 1e-5)

	// a second wall of the same kind reuses every material
	n := cache.Len()
	_, err = c.CreateAndAssignConstructions(nil, cache)
	require.NoError(t, err)
	assert.Equal(t, n, cache.Len())
}

func TestCreateAndAssignRejectsInvalid(t *testing.T) {
	c := NewConstruction("bad", []float64{0.5})
	c.AddLayer("", Stud2x(3.5))
	s := &fakeSurface{}
	_, err := c.CreateAndAssignConstructions([]Surface{s}, NewMaterialCache())
	assert.ErrorIs(t, err, ErrPathFractionSum)
	assert.Nil(t, s.c)

	films := NewConstruction("films", []float64{1.0})
	films.AddFilm(AirFilmOutside())
	_, err = films.CreateAndAssignConstructions(nil, NewMaterialCache())
	assert.ErrorIs(t, err, ErrNoLayers)
}

func TestResponseFactorIdentities(t *testing.T) {
	c, err := WoodStudWall("w", DefaultWoodStudWallParams())
	require.NoError(t, err)
	host, err := c.CreateAndAssignConstructions(nil, NewMaterialCache())
	require.NoError(t, err)

	const r_o = 0.04
	rf, err := host.ResponseFactor(r_o)
	require.NoError(t, err)

	assert.Len(t, rf.RFT1(), nRoot)
	assert.Len(t, rf.Row(), nRoot)
	assert.InDelta(t, 1.0, rf.SteadyTransmission(), 1e-9)
	assert.InDelta(t, host.RValueSI()+r_o, rf.SteadyAbsorption(), 1e-6)
	assert.Greater(t, rf.RFA0(), 0.0)
	for _, row := range rf.Row() {
		assert.GreaterOrEqual(t, row, 0.0)
		assert.Less(t, row, 1.0)
	}
}

func TestResponseFactorSteady(t *testing.T) {
	c := NewConstruction("window", []float64{1.0})
	c.AddLayer("", NewGlazing("Glazing", 0.35, 0.44))
	host, err := c.CreateAndAssignConstructions(nil, NewMaterialCache())
	require.NoError(t, err)

	rf, err := host.ResponseFactor(0.04)
	require.NoError(t, err)
	assert.Equal(t, 1.0, rf.RFT0())
	assert.InDelta(t, units.RIPToSI(1.0/0.35)+0.04, rf.RFA0(), 1e-12)
	assert.InDelta(t, rf.RFA0(), rf.SteadyAbsorption(), 1e-12)
}

func TestGroundResponseFactor(t *testing.T) {
	c, err := Slab("slab", DefaultSlabParams())
	require.NoError(t, err)
	host, err := c.CreateAndAssignConstructions(nil, NewMaterialCache())
	require.NoError(t, err)

	rf, err := host.GroundResponseFactor()
	require.NoError(t, err)
	assert.Equal(t, 1.0, rf.RFT0())
	assert.Equal(t, make([]float64, nRoot), rf.RFT1())
	assert.InDelta(t, host.RValueSI()+3.0, rf.SteadyAbsorption(), 1e-6)
}
