package constructions

import (
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/google/uuid"

	"envelope_hvac_calc/units"
)

// MaterialKind tags the host material variant.
type MaterialKind int

const (
	KindOpaque MaterialKind = iota
	KindSimple
	KindGlazing
)

func (k MaterialKind) String() string {
	switch k {
	case KindOpaque:
		return "Opaque"
	case KindSimple:
		return "Simple"
	case KindGlazing:
		return "Glazing"
	}
	return fmt.Sprintf("MaterialKind(%d)", int(k))
}

// default absorptances of the host when a material leaves them unset
const (
	default_t_abs = 0.9
	default_s_abs = 0.7
	default_v_abs = 0.7
)

// HostMaterial is the SI material descriptor handed to the host model.
type HostMaterial struct {
	Handle uuid.UUID
	Name   string
	Kind   MaterialKind

	Thickness    float64 // m
	Conductivity float64 // W/m-K
	Density      float64 // kg/m3
	SpecificHeat float64 // J/kg-K
	ThermalAbs   float64
	SolarAbs     float64
	VisibleAbs   float64

	RValue  float64 // m2-K/W, Simple only
	UFactor float64 // W/m2-K, Glazing only
	SHGC    float64
}

// ResistanceSI returns the layer resistance, m2-K/W.
func (h *HostMaterial) ResistanceSI() float64 {
	switch h.Kind {
	case KindOpaque:
		return h.Thickness / h.Conductivity
	case KindSimple:
		return h.RValue
	default:
		return 1.0 / h.UFactor
	}
}

// HeatCapacitySI returns the areal heat capacity, J/m2-K.
func (h *HostMaterial) HeatCapacitySI() float64 {
	if h.Kind != KindOpaque {
		return 0.0
	}
	return h.Thickness * h.Density * h.SpecificHeat
}

func to_host(m Material) *HostMaterial {
	switch m := m.(type) {
	case Opaque:
		hm := &HostMaterial{
			Name:         m.Name(),
			Kind:         KindOpaque,
			Thickness:    units.InToM(m.ThickIn()),
			Conductivity: units.BtuhFtFToWmK(m.K()),
			Density:      units.LbFt3ToKgM3(m.Rho()),
			SpecificHeat: units.BtuLbFToJKgK(m.Cp()),
			ThermalAbs:   default_t_abs,
			SolarAbs:     default_s_abs,
			VisibleAbs:   default_v_abs,
		}
		if v, ok := m.ThermalAbs(); ok {
			hm.ThermalAbs = v
		}
		if v, ok := m.SolarAbs(); ok {
			hm.SolarAbs = v
		}
		if v, ok := m.VisibleAbs(); ok {
			hm.VisibleAbs = v
		}
		return hm
	case Simple:
		return &HostMaterial{Name: m.Name(), Kind: KindSimple, RValue: units.RIPToSI(m.RValue())}
	case Glazing:
		return &HostMaterial{Name: m.Name(), Kind: KindGlazing, UFactor: units.UIPToSI(m.UFactor()), SHGC: m.SHGC()}
	}
	panic(fmt.Sprintf("constructions: unhandled material %T", m))
}

// DefaultCacheTolerance is the absolute tolerance of a property match, SI units.
const DefaultCacheTolerance = 1.0e-4

// MaterialCache owns the host materials and reuses one whose properties match a
// request within the tolerance. Safe for concurrent use.
type MaterialCache struct {
	mu        sync.Mutex
	tol       float64
	materials []*HostMaterial
	issued    map[string]bool
	next      map[string]int // next suffix to try per base name
}

func NewMaterialCache() *MaterialCache {
	return &MaterialCache{tol: DefaultCacheTolerance, issued: map[string]bool{}, next: map[string]int{}}
}

func (c *MaterialCache) close(a, b float64) bool {
	return math.Abs(a-b) <= c.tol
}

func (c *MaterialCache) same(a, b *HostMaterial) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindOpaque:
		return c.close(a.Thickness, b.Thickness) &&
			c.close(a.Conductivity, b.Conductivity) &&
			c.close(a.Density, b.Density) &&
			c.close(a.SpecificHeat, b.SpecificHeat) &&
			c.close(a.ThermalAbs, b.ThermalAbs) &&
			c.close(a.SolarAbs, b.SolarAbs) &&
			c.close(a.VisibleAbs, b.VisibleAbs)
	case KindSimple:
		return c.close(a.RValue, b.RValue)
	default:
		return c.close(a.UFactor, b.UFactor) && c.close(a.SHGC, b.SHGC)
	}
}

// Resolve returns the cached material matching m, creating it when none matches.
// Candidates are host materials whose name starts with m's name.
func (c *MaterialCache) Resolve(m Material) *HostMaterial {
	want := to_host(m)

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, hm := range c.materials {
		if !strings.HasPrefix(hm.Name, want.Name) {
			continue
		}
		if c.same(hm, want) {
			return hm
		}
	}

	want.Name = c.unique_name(want.Name)
	want.Handle = uuid.New()
	c.materials = append(c.materials, want)
	return want
}

// unique_name issues base, or base with the first free numeric suffix: a
// second "Stud2x" becomes "Stud2x 1". Caller holds c.mu.
func (c *MaterialCache) unique_name(base string) string {
	name := base
	if c.issued[name] {
		n := c.next[base]
		if n == 0 {
			n = 1
		}
		for c.issued[fmt.Sprintf("%s %d", base, n)] {
			n++
		}
		name = fmt.Sprintf("%s %d", base, n)
		c.next[base] = n + 1
	}
	c.issued[name] = true
	return name
}

// Len returns the number of host materials created so far.
func (c *MaterialCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.materials)
}

// Materials returns the host materials in creation order.
func (c *MaterialCache) Materials() []*HostMaterial {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*HostMaterial(nil), c.materials...)
}
