package constructions

import (
	"math"

	"envelope_hvac_calc/units"
)

// Material is one of Opaque, Simple or Glazing. R-values are hr-ft2-F/Btu.
type Material interface {
	Name() string
	RValue() float64
	material()
}

// Opaque is a massive layer with thickness and conductivity.
type Opaque struct {
	_name     string
	_thick_in float64
	_k        float64 // Btu/h-ft-F
	_rho      float64 // lb/ft3
	_cp       float64 // Btu/lb-F
	_t_abs    *float64
	_s_abs    *float64
	_v_abs    *float64
}

// Simple has an R-value only.
type Simple struct {
	_name   string
	_rvalue float64
}

// Glazing is a window described by U-factor and SHGC.
type Glazing struct {
	_name    string
	_ufactor float64 // Btu/h-ft2-F
	_shgc    float64
}

func (Opaque) material() {}
func (Simple) material() {}
func (Glazing) material() {}

// OpaqueOption overrides a property of an Opaque material at construction.
type OpaqueOption func(*Opaque)

func WithDensity(rho float64) OpaqueOption { return func(m *Opaque) { m._rho = rho } }
func WithSpecificHeat(cp float64) OpaqueOption { return func(m *Opaque) { m._cp = cp } }
func WithThermalAbs(a float64) OpaqueOption { return func(m *Opaque) { m._t_abs = &a } }
func WithSolarAbs(a float64) OpaqueOption { return func(m *Opaque) { m._s_abs = &a } }
func WithVisibleAbs(a float64) OpaqueOption { return func(m *Opaque) { m._v_abs = &a } }
func WithConductivity(k_in float64) OpaqueOption { return func(m *Opaque) { m._k = k_in / 12.0 } }

/*
NewOpaque creates an opaque material.

	Args:
		name: material name
		thick_in: thickness, in
		k_in: conductivity, Btu-in/h-ft2-F
*/
func NewOpaque(name string, thick_in, k_in float64, opts ...OpaqueOption) Opaque {
	m := Opaque{_name: name, _thick_in: thick_in, _k: k_in / 12.0}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// NewOpaqueFromRValue derives conductivity from the installed R-value.
func NewOpaqueFromRValue(name string, thick_in, rvalue float64, opts ...OpaqueOption) Opaque {
	return NewOpaque(name, thick_in, thick_in/rvalue, opts...)
}

/*
NewOpaqueFromBase builds a material from a library entry. Options are applied
after the base properties, so any of them can be overridden.

	Notes:
		When the base has no conductivity and rvalue > 0, k = thick / rvalue.
		A non-positive thick_in falls back to the base thickness.
*/
func NewOpaqueFromBase(name string, base BaseMaterial, thick_in, rvalue float64, opts ...OpaqueOption) Opaque {
	if thick_in <= 0 {
		thick_in = base.ThickIn
	}
	k_in := base.KIn
	if rvalue > 0 {
		k_in = thick_in / rvalue
	}
	t_abs, s_abs := base.ThermalAbs, base.SolarAbs
	m := Opaque{
		_name:     name,
		_thick_in: thick_in,
		_k:        k_in / 12.0,
		_rho:      base.Rho,
		_cp:       base.Cp,
		_t_abs:    &t_abs,
		_s_abs:    &s_abs,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

func (m Opaque) Name() string { return m._name }

// RValue = thick_ft / k
func (m Opaque) RValue() float64 { return units.InToFt(m._thick_in) / m._k }

func (m Opaque) ThickIn() float64 { return m._thick_in }
func (m Opaque) ThickFt() float64 { return units.InToFt(m._thick_in) }

// K returns the conductivity, Btu/h-ft-F.
func (m Opaque) K() float64 { return m._k }
func (m Opaque) Rho() float64 { return m._rho }
func (m Opaque) Cp() float64 { return m._cp }

func optional(p *float64) (float64, bool) {
	if p == nil {
		return 0, false
	}
	return *p, true
}

func (m Opaque) ThermalAbs() (float64, bool) { return optional(m._t_abs) }
func (m Opaque) SolarAbs() (float64, bool) { return optional(m._s_abs) }
func (m Opaque) VisibleAbs() (float64, bool) { return optional(m._v_abs) }

// valid reports positive finite thickness and conductivity and non-negative mass.
func (m Opaque) valid() bool {
	ok := func(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
	return ok(m._thick_in) && ok(m._k) && m._thick_in > 0 && m._k > 0 && m._rho >= 0 && m._cp >= 0
}

// NewSimple creates an R-value only material.
func NewSimple(name string, rvalue float64) Simple {
	return Simple{_name: name, _rvalue: rvalue}
}

func (m Simple) Name() string { return m._name }
func (m Simple) RValue() float64 { return m._rvalue }

func NewGlazing(name string, ufactor, shgc float64) Glazing {
	return Glazing{_name: name, _ufactor: ufactor, _shgc: shgc}
}

func (m Glazing) Name() string { return m._name }
func (m Glazing) RValue() float64 { return 1.0 / m._ufactor }
func (m Glazing) UFactor() float64 { return m._ufactor }
func (m Glazing) SHGC() float64 { return m._shgc }

// air properties, IP
const (
	air_rho = 0.07518 // lb/ft3
	air_cp  = 0.2396  // Btu/lb-F

	air_gap_rvalue = 1.0
	air_open_k_in  = 10000.0

	adiabatic_rvalue = 1000.0
)

// AirCavityClosed is an enclosed air space with R = 1.
func AirCavityClosed(thick_in float64) Opaque {
	return NewOpaqueFromRValue("AirCavityClosed", thick_in, air_gap_rvalue,
		WithDensity(air_rho), WithSpecificHeat(air_cp))
}

// AirCavityOpen is a vented air space with negligible resistance.
func AirCavityOpen(thick_in float64) Opaque {
	return NewOpaque("AirCavityOpen", thick_in, air_open_k_in,
		WithDensity(air_rho), WithSpecificHeat(air_cp))
}

// air films
func AirFilmOutside() Simple { return NewSimple("AirFilmOutside", 0.197) }
func AirFilmVertical() Simple { return NewSimple("AirFilmVertical", 0.68) }
func AirFilmFlatEnhanced() Simple { return NewSimple("AirFilmFlatEnhanced", 0.61) }
func AirFilmFlatReduced() Simple { return NewSimple("AirFilmFlatReduced", 0.92) }
func AirFilmFloorAverage() Simple { return NewSimple("AirFilmFloorAverage", (0.61+0.92)/2.0) }
func AirFilmFloorReduced() Simple { return NewSimple("AirFilmFloorReduced", 0.92) }
func AirFilmOutsideASHRAE() Simple { return NewSimple("AirFilmOutsideASHRAE", 0.17) }

// AirFilmSlopeEnhanced is the inside film of a sloped surface with heat flowing upward, pitch in degrees.
func AirFilmSlopeEnhanced(pitch float64) Simple {
	return NewSimple("AirFilmSlopeEnhanced", 0.002*math.Exp(0.0398*pitch)+0.608)
}

// AirFilmSlopeReduced is the inside film of a sloped surface with heat flowing downward.
func AirFilmSlopeReduced(pitch float64) Simple {
	return NewSimple("AirFilmSlopeReduced", 0.32*math.Exp(-0.0154*pitch)+0.6)
}

// AirFilmRoof averages the enhanced and reduced sloped films.
func AirFilmRoof(pitch float64) Simple {
	r := (AirFilmSlopeEnhanced(pitch).RValue() + AirFilmSlopeReduced(pitch).RValue()) / 2.0
	return NewSimple("AirFilmRoof", r)
}

func Adiabatic() Simple { return NewSimple("Adiabatic", adiabatic_rvalue) }

func GypsumWall(thick_in float64) Opaque {
	return NewOpaqueFromBase("GypsumWall", mustBase("Gypsum"), thick_in, 0)
}

func GypsumCeiling(thick_in float64) Opaque {
	return NewOpaqueFromBase("GypsumCeiling", mustBase("Gypsum"), thick_in, 0)
}

// Stud2x is dimensional lumber framing of the given depth.
func Stud2x(thick_in float64) Opaque {
	return NewOpaqueFromBase("Stud2x", mustBase("Wood"), thick_in, 0)
}

func Plywood(thick_in float64) Opaque {
	return NewOpaqueFromBase("Plywood", mustBase("Wood"), thick_in, 0)
}

func OSB(thick_in float64) Opaque {
	return NewOpaqueFromBase("OSB", mustBase("Wood"), thick_in, 0)
}

func Concrete(thick_in float64) Opaque {
	return NewOpaqueFromBase("Concrete", mustBase("Concrete"), thick_in, 0)
}

func Soil(thick_in float64) Opaque {
	return NewOpaqueFromBase("Soil", mustBase("Soil"), thick_in, 0)
}

// RigidInsulation is continuous foam board of the given R-value.
func RigidInsulation(thick_in, rvalue float64) Opaque {
	return NewOpaqueFromBase("RigidInsulation", mustBase("InsulationRigid"), thick_in, rvalue)
}

func CoveringBare() Opaque {
	return NewOpaque("CoveringBare", 0.01, 4.7, WithDensity(100.0), WithSpecificHeat(0.2),
		WithThermalAbs(0.9), WithSolarAbs(0.9))
}

// ExteriorFinish returns a siding material from the library, for example "FinishVinyl".
func ExteriorFinish(base string) (Opaque, error) {
	b, err := LookupBaseMaterial(base)
	if err != nil {
		return Opaque{}, err
	}
	return NewOpaqueFromBase(base, b, 0, 0), nil
}

// Roofing returns a roof covering from the library, for example "RoofingAsphaltShingles".
func Roofing(base string) (Opaque, error) {
	return ExteriorFinish(base)
}
