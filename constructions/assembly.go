package constructions

import (
	"fmt"
	"math"
)

// InstallGrade is the RESNET insulation installation grade, 1 (best) to 3.
type InstallGrade int

// gap_factor returns the area fraction of uninsulated voids in the cavity.
func gap_factor(grade InstallGrade, framing_factor, cavity_r float64) float64 {
	if cavity_r <= 0 {
		return 0.0
	}
	switch grade {
	case 2:
		return 0.02 * (1.0 - framing_factor)
	case 3:
		return 0.05 * (1.0 - framing_factor)
	}
	return 0.0
}

/*
stud_cavity returns the framing, cavity and gap materials of a framed layer.

	Args:
		cavity_r: 断熱材の熱抵抗, hr-ft2-F/Btu
		depth_in: 空洞の深さ, in
		filled: 断熱材が空洞を満たしているか
		base: 断熱材の種類
*/
func stud_cavity(cavity_r, depth_in float64, filled bool, base string) (Opaque, Opaque, Opaque) {
	framing := Stud2x(depth_in)
	gap := AirCavityClosed(depth_in)

	var cavity Opaque
	switch {
	case cavity_r <= 0:
		cavity = AirCavityClosed(depth_in)
	case filled:
		cavity = NewOpaqueFromBase("CavityInsulation", mustBase(base), depth_in, cavity_r)
	default:
		cavity = NewOpaqueFromBase("CavityInsulation", mustBase(base), depth_in, cavity_r+air_gap_rvalue)
	}
	return framing, cavity, gap
}

type check struct {
	err error
}

func (c *check) positive(field string, v float64) {
	if c.err == nil && !(v > 0 && !math.IsInf(v, 0)) {
		c.err = &InputError{Field: field, Value: v, Reason: "must be positive"}
	}
}

func (c *check) nonNegative(field string, v float64) {
	if c.err == nil && !(v >= 0 && !math.IsInf(v, 0)) {
		c.err = &InputError{Field: field, Value: v, Reason: "must not be negative"}
	}
}

func (c *check) fraction(field string, v float64) {
	if c.err == nil && !(v >= 0 && v < 1) {
		c.err = &InputError{Field: field, Value: v, Reason: "must be in [0, 1)"}
	}
}

func (c *check) grade(field string, g InstallGrade) {
	if c.err == nil && (g < 1 || g > 3) {
		c.err = &InputError{Field: field, Value: float64(g), Reason: "must be 1, 2 or 3"}
	}
}

func (c *check) base(field, name string) {
	if c.err != nil {
		return
	}
	if _, err := LookupBaseMaterial(name); err != nil {
		c.err = fmt.Errorf("%s: %w", field, err)
	}
}

// finish validates and returns the named exterior finish or roofing.
func finish(name string) (Opaque, error) {
	return ExteriorFinish(name)
}

// built validates the assembled construction before it is handed out.
func built(c *Construction) (*Construction, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}
