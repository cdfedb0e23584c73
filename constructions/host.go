package constructions

import (
	"github.com/google/uuid"
)

// Surface is a host surface that accepts a construction.
type Surface interface {
	SetConstruction(c *HostConstruction)

	// AdjacentSurface returns the surface on the other side, or nil.
	AdjacentSurface() Surface
}

// HostConstruction is the material stack emitted to the host, outside to inside.
type HostConstruction struct {
	Handle uuid.UUID
	Name   string
	Layers []*HostMaterial
}

func newHostConstruction(name string, layers []*HostMaterial) *HostConstruction {
	return &HostConstruction{Handle: uuid.New(), Name: name, Layers: layers}
}

// Reverse returns the mirror-ordered construction for the adjacent surface.
func (h *HostConstruction) Reverse() *HostConstruction {
	n := len(h.Layers)
	layers := make([]*HostMaterial, n)
	for i, m := range h.Layers {
		layers[n-1-i] = m
	}
	return newHostConstruction(h.Name+" Reversed", layers)
}

// RValueSI returns the series resistance of the stack, m2-K/W.
func (h *HostConstruction) RValueSI() float64 {
	r := 0.0
	for _, m := range h.Layers {
		r += m.ResistanceSI()
	}
	return r
}

// layer_props returns the areal heat capacity, J/m2K, and resistance, m2K/W, per
// layer ordered from the inside surface.
func (h *HostConstruction) layer_props() ([]float64, []float64) {
	n := len(h.Layers)
	cs := make([]float64, n)
	rs := make([]float64, n)
	for i := range h.Layers {
		m := h.Layers[n-1-i]
		cs[i] = m.HeatCapacitySI()
		rs[i] = m.ResistanceSI()
	}
	return cs, rs
}

/*
ResponseFactor computes the conduction response factors of the stack.

	Args:
		r_o: 室外側熱伝達抵抗, m2K/W

	Returns:
		応答係数
*/
func (h *HostConstruction) ResponseFactor(r_o float64) (*ResponseFactor, error) {
	cs, rs := h.layer_props()

	total_c := 0.0
	for _, c := range cs {
		total_c += c
	}
	if total_c < 0.001 {
		r := r_o
		for _, v := range rs {
			r += v
		}
		return create_for_steady(r), nil
	}
	return create_for_unsteady(cs, rs, r_o)
}

// GroundResponseFactor computes the response factors of the stack laid on soil.
func (h *HostConstruction) GroundResponseFactor() (*ResponseFactor, error) {
	cs, rs := h.layer_props()
	return create_for_unsteady_ground(cs, rs)
}
