package constructions

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// path fraction sum tolerance
const path_frac_tol = 0.001

// parallel materials must agree in thickness to this, in
const thick_tol = 1.0e-6

// Layer is one position in a construction. A layer with one material spans every
// path; a parallel layer carries one material per path.
type Layer struct {
	Name      string
	Materials []Material

	// Informational layers count toward every R-value but are not emitted to the host.
	Informational bool
}

// IsParallel reports whether the layer has one material per path.
func (l Layer) IsParallel() bool {
	return len(l.Materials) > 1
}

func (l Layer) material_in_path(p int) Material {
	if l.IsParallel() {
		return l.Materials[p]
	}
	return l.Materials[0]
}

// Construction is an ordered stack of layers over parallel heat-flow paths.
type Construction struct {
	_name       string
	_path_fracs []float64
	_layers     []Layer
}

/*
NewConstruction creates an empty construction.

	Args:
		name: construction name
		path_fracs: parallel path area fractions, -, [path数]
*/
func NewConstruction(name string, path_fracs []float64) *Construction {
	fr := make([]float64, len(path_fracs))
	copy(fr, path_fracs)
	return &Construction{_name: name, _path_fracs: fr}
}

func (c *Construction) Name() string { return c._name }

func (c *Construction) PathFracs() []float64 {
	return append([]float64(nil), c._path_fracs...)
}

func (c *Construction) Layers() []Layer {
	return append([]Layer(nil), c._layers...)
}

// AddLayer appends a series layer (one material) or a parallel layer (one per path).
// An empty name takes the material's own name, or "ParallelMaterial".
func (c *Construction) AddLayer(name string, materials ...Material) {
	if name == "" {
		if len(materials) == 1 {
			name = materials[0].Name()
		} else {
			name = "ParallelMaterial"
		}
	}
	mats := append([]Material(nil), materials...)
	c._layers = append(c._layers, Layer{Name: name, Materials: mats})
}

// AddFilm appends an informational air film layer.
func (c *Construction) AddFilm(film Material) {
	c._layers = append(c._layers, Layer{Name: film.Name(), Materials: []Material{film}, Informational: true})
}

func (c *Construction) invalid(l *Layer, err error) error {
	ve := &ValidationError{Construction: c._name, Err: err}
	if l != nil {
		ve.Layer = l.Name
	}
	return ve
}

func material_ok(m Material) bool {
	switch m := m.(type) {
	case Opaque:
		return m.valid()
	case Simple:
		return m._rvalue >= 0 && !math.IsInf(m._rvalue, 0) && !math.IsNaN(m._rvalue)
	case Glazing:
		return m._ufactor > 0 && !math.IsInf(m._ufactor, 0) && m._shgc >= 0 && m._shgc <= 1
	}
	return false
}

// Validate checks the path fractions and the layer stack.
func (c *Construction) Validate() error {
	if len(c._layers) == 0 {
		return c.invalid(nil, ErrNoLayers)
	}
	if len(c._path_fracs) == 0 {
		return c.invalid(nil, ErrPathFractionSum)
	}
	for _, f := range c._path_fracs {
		if f < 0 {
			return c.invalid(nil, ErrNegativePathFrac)
		}
	}
	if s := floats.Sum(c._path_fracs); s < 1.0-path_frac_tol || s > 1.0+path_frac_tol {
		return c.invalid(nil, ErrPathFractionSum)
	}

	n_paths := len(c._path_fracs)
	n_glazing := 0
	first, last, n_parallel := -1, -1, 0
	for i := range c._layers {
		l := &c._layers[i]
		n := len(l.Materials)
		if n != 1 && n != n_paths {
			return c.invalid(l, ErrLayerMaterialCount)
		}
		for _, m := range l.Materials {
			if !material_ok(m) {
				return c.invalid(l, ErrInvalidMaterial)
			}
			if _, ok := m.(Glazing); ok {
				n_glazing++
			}
		}
		if !l.IsParallel() {
			continue
		}

		if first < 0 {
			first = i
		}
		last = i
		n_parallel++

		var thick float64
		for j, m := range l.Materials {
			switch m := m.(type) {
			case Opaque:
				if j == 0 {
					thick = m.ThickIn()
				} else if math.Abs(m.ThickIn()-thick) > thick_tol {
					return c.invalid(l, ErrLayerThickness)
				}
			case Glazing:
				return c.invalid(l, ErrGlazingParallel)
			case Simple:
				return c.invalid(l, ErrParallelNotOpaque)
			}
		}
	}

	if n_parallel > 0 && last-first+1 != n_parallel {
		return c.invalid(nil, ErrNonContiguous)
	}
	if n_glazing > 0 && (n_glazing != 1 || len(c._layers) != 1 || n_paths != 1) {
		return c.invalid(nil, ErrMixedGlazing)
	}
	return nil
}

// AssemblyRValue returns the overall R-value, hr-ft2-F/Btu, combining the paths in parallel.
func (c *Construction) AssemblyRValue() (float64, error) {
	if err := c.Validate(); err != nil {
		return 0, err
	}
	return c.assembly_rvalue(), nil
}

func (c *Construction) assembly_rvalue() float64 {
	u := 0.0
	for p, f := range c._path_fracs {
		r_path := 0.0
		for _, l := range c._layers {
			r_path += l.material_in_path(p).RValue()
		}
		u += f / r_path
	}
	return 1.0 / u
}

// layer_rvalue is the path-weighted R-value of one layer on its own.
func (c *Construction) layer_rvalue(l Layer) float64 {
	if !l.IsParallel() {
		return l.Materials[0].RValue()
	}
	u := 0.0
	for p, f := range c._path_fracs {
		u += f / l.Materials[p].RValue()
	}
	return 1.0 / u
}

/*
ParallelMaterial synthesises the homogenised material of a parallel layer.

	Args:
		index: layer index

	Returns:
		the effective material, named after the layer

	Notes:
		The gap between the true assembly R-value and the series sum of the layer
		R-values is shared among the parallel layers in proportion to their own R.
		Density is the path-weighted sum, cp is the mass-weighted mean.
*/
func (c *Construction) ParallelMaterial(index int) (Opaque, error) {
	if err := c.Validate(); err != nil {
		return Opaque{}, err
	}
	if index < 0 || index >= len(c._layers) {
		return Opaque{}, c.invalid(nil, ErrLayerIndex)
	}
	l := c._layers[index]
	if !l.IsParallel() {
		return Opaque{}, c.invalid(&l, ErrNotParallel)
	}
	return c.parallel_material(l), nil
}

func (c *Construction) parallel_material(l Layer) Opaque {
	r_overall := c.assembly_rvalue()

	sum_r_all, sum_r_parallel := 0.0, 0.0
	for _, layer := range c._layers {
		r := c.layer_rvalue(layer)
		sum_r_all += r
		if layer.IsParallel() {
			sum_r_parallel += r
		}
	}

	r_l := c.layer_rvalue(l)
	r_eff := r_l + (r_overall-sum_r_all)*r_l/sum_r_parallel

	n := len(l.Materials)
	rhos := make([]float64, n)
	cps := make([]float64, n)
	mass := make([]float64, n)
	for p, m := range l.Materials {
		o := m.(Opaque)
		rhos[p] = o.Rho()
		cps[p] = o.Cp()
		mass[p] = c._path_fracs[p] * o.Rho()
	}
	rho := floats.Dot(c._path_fracs, rhos)

	var cp float64
	if rho > 0 {
		cp = stat.Mean(cps, mass)
	} else {
		cp = stat.Mean(cps, c._path_fracs)
	}

	thick_in := l.Materials[0].(Opaque).ThickIn()
	return NewOpaque(l.Name, thick_in, thick_in/r_eff, WithDensity(rho), WithSpecificHeat(cp))
}

// Homogenized returns a single-path copy with every parallel layer replaced by its
// effective material. Its assembly R-value equals that of c.
func (c *Construction) Homogenized() (*Construction, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	h := NewConstruction(c._name, []float64{1.0})
	for _, l := range c._layers {
		m := l.Materials[0]
		if l.IsParallel() {
			m = c.parallel_material(l)
		}
		h._layers = append(h._layers, Layer{Name: l.Name, Materials: []Material{m}, Informational: l.Informational})
	}
	return h, nil
}

/*
CreateAndAssignConstructions resolves the layer stack against the cache and assigns
the result to every surface. Surfaces with an adjacent surface hand it the reversed
construction, which is built once.

	Notes:
		Informational layers are dropped from the emitted stack.
*/
func (c *Construction) CreateAndAssignConstructions(surfaces []Surface, cache *MaterialCache) (*HostConstruction, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	var layers []*HostMaterial
	for _, l := range c._layers {
		if l.Informational {
			continue
		}
		var m Material = l.Materials[0]
		if l.IsParallel() {
			m = c.parallel_material(l)
		}
		layers = append(layers, cache.Resolve(m))
	}
	if len(layers) == 0 {
		return nil, c.invalid(nil, ErrNoLayers)
	}

	host := newHostConstruction(c._name, layers)

	var reversed *HostConstruction
	for _, s := range surfaces {
		s.SetConstruction(host)
		adj := s.AdjacentSurface()
		if adj == nil {
			continue
		}
		if reversed == nil {
			reversed = host.Reverse()
		}
		adj.SetConstruction(reversed)
	}
	return host, nil
}
