package constructions

// JoistFloorParams describes a framed floor over an unconditioned space.
// Layers run from the space below up to the floor covering.
type JoistFloorParams struct {
	CavityR         float64      `yaml:"cavity_r"`
	InstallGrade    InstallGrade `yaml:"install_grade"`
	JoistHeightIn   float64      `yaml:"joist_height_in"`
	FramingFactor   float64      `yaml:"framing_factor"`
	PlywoodThickIn  float64      `yaml:"plywood_thick_in"`
	IncludeCovering bool         `yaml:"include_covering"`
}

func DefaultJoistFloorParams() JoistFloorParams {
	return JoistFloorParams{
		CavityR:         19.0,
		InstallGrade:    1,
		JoistHeightIn:   9.25,
		FramingFactor:   0.13,
		PlywoodThickIn:  0.75,
		IncludeCovering: true,
	}
}

func (p JoistFloorParams) Validate() error {
	var c check
	c.nonNegative("cavity_r", p.CavityR)
	c.grade("install_grade", p.InstallGrade)
	c.positive("joist_height_in", p.JoistHeightIn)
	c.fraction("framing_factor", p.FramingFactor)
	c.nonNegative("plywood_thick_in", p.PlywoodThickIn)
	return c.err
}

func JoistFloor(name string, p JoistFloorParams) (*Construction, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	gap := gap_factor(p.InstallGrade, p.FramingFactor, p.CavityR)
	framing, cavity, air := stud_cavity(p.CavityR, p.JoistHeightIn, true, "InsulationGenericDensepack")

	c := NewConstruction(name, []float64{p.FramingFactor, 1.0 - p.FramingFactor - gap, gap})
	c.AddFilm(AirFilmFloorReduced())
	c.AddLayer("FloorJoistAndCavity", framing, cavity, air)
	if p.PlywoodThickIn > 0 {
		c.AddLayer("FloorSubfloor", Plywood(p.PlywoodThickIn))
	}
	if p.IncludeCovering {
		c.AddLayer("FloorCovering", CoveringBare())
	}
	c.AddFilm(AirFilmFloorReduced())
	return built(c)
}

// SlabParams describes a slab on grade with optional under-slab insulation.
type SlabParams struct {
	ThickIn         float64 `yaml:"thick_in"`
	UnderSlabR      float64 `yaml:"under_slab_r"`
	UnderThickIn    float64 `yaml:"under_slab_thick_in"`
	IncludeCovering bool    `yaml:"include_covering"`
}

func DefaultSlabParams() SlabParams {
	return SlabParams{ThickIn: 4.0, IncludeCovering: true}
}

func (p SlabParams) Validate() error {
	var c check
	c.positive("thick_in", p.ThickIn)
	c.nonNegative("under_slab_r", p.UnderSlabR)
	if p.UnderSlabR > 0 {
		c.positive("under_slab_thick_in", p.UnderThickIn)
	}
	return c.err
}

// Slab builds the slab, soil side first. The soil itself is added by the ground
// response factor, not as a layer.
func Slab(name string, p SlabParams) (*Construction, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	c := NewConstruction(name, []float64{1.0})
	if p.UnderSlabR > 0 {
		c.AddLayer("SlabUnderIns", RigidInsulation(p.UnderThickIn, p.UnderSlabR))
	}
	c.AddLayer("SlabConcrete", Concrete(p.ThickIn))
	if p.IncludeCovering {
		c.AddLayer("SlabCovering", CoveringBare())
	}
	c.AddFilm(AirFilmFloorReduced())
	return built(c)
}
