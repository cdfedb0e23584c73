package constructions

// FinishedRoofParams describes a cathedral ceiling or finished roof, rafters
// insulated between, with optional rigid insulation above the deck.
type FinishedRoofParams struct {
	CavityR        float64      `yaml:"cavity_r"`
	InstallGrade   InstallGrade `yaml:"install_grade"`
	CavityDepthIn  float64      `yaml:"cavity_depth_in"`
	CavityFilled   bool         `yaml:"cavity_filled"`
	FramingFactor  float64      `yaml:"framing_factor"`
	RigidR         float64      `yaml:"rigid_r"`
	RigidThickIn   float64      `yaml:"rigid_thick_in"`
	OSBThickIn     float64      `yaml:"osb_thick_in"`
	DrywallThickIn float64      `yaml:"drywall_thick_in"`
	Pitch          float64      `yaml:"pitch"` // degrees
	Roofing        string       `yaml:"roofing"`
}

func DefaultFinishedRoofParams() FinishedRoofParams {
	return FinishedRoofParams{
		CavityR:        30.0,
		InstallGrade:   1,
		CavityDepthIn:  9.25,
		CavityFilled:   true,
		FramingFactor:  0.07,
		OSBThickIn:     0.75,
		DrywallThickIn: 0.5,
		Pitch:          26.565,
		Roofing:        "RoofingAsphaltShingles",
	}
}

func (p FinishedRoofParams) Validate() error {
	var c check
	c.nonNegative("cavity_r", p.CavityR)
	c.grade("install_grade", p.InstallGrade)
	c.positive("cavity_depth_in", p.CavityDepthIn)
	c.fraction("framing_factor", p.FramingFactor)
	c.nonNegative("rigid_r", p.RigidR)
	if p.RigidR > 0 {
		c.positive("rigid_thick_in", p.RigidThickIn)
	}
	c.nonNegative("osb_thick_in", p.OSBThickIn)
	c.nonNegative("drywall_thick_in", p.DrywallThickIn)
	c.nonNegative("pitch", p.Pitch)
	c.base("roofing", p.Roofing)
	return c.err
}

func FinishedRoof(name string, p FinishedRoofParams) (*Construction, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	roofing, err := Roofing(p.Roofing)
	if err != nil {
		return nil, err
	}

	gap := gap_factor(p.InstallGrade, p.FramingFactor, p.CavityR)
	framing, cavity, air := stud_cavity(p.CavityR, p.CavityDepthIn, p.CavityFilled, "InsulationGenericDensepack")

	c := NewConstruction(name, []float64{p.FramingFactor, 1.0 - p.FramingFactor - gap, gap})
	c.AddFilm(AirFilmOutside())
	c.AddLayer("RoofRoofing", roofing)
	if p.RigidR > 0 {
		c.AddLayer("RoofRigidIns", RigidInsulation(p.RigidThickIn, p.RigidR))
	}
	if p.OSBThickIn > 0 {
		c.AddLayer("RoofSheathing", OSB(p.OSBThickIn))
	}
	c.AddLayer("RoofRafterAndCavity", framing, cavity, air)
	if p.DrywallThickIn > 0 {
		c.AddLayer("RoofDrywall", GypsumCeiling(p.DrywallThickIn))
	}
	c.AddFilm(AirFilmRoof(p.Pitch))
	return built(c)
}

// UnfinishedAtticFloorParams describes the ceiling below a vented attic: joists
// insulated between and loose fill above. Layers run attic side first.
type UnfinishedAtticFloorParams struct {
	JoistR         float64      `yaml:"joist_r"`
	InstallGrade   InstallGrade `yaml:"install_grade"`
	JoistHeightIn  float64      `yaml:"joist_height_in"`
	FramingFactor  float64      `yaml:"framing_factor"`
	AboveJoistR    float64      `yaml:"above_joist_r"`
	AboveThickIn   float64      `yaml:"above_joist_thick_in"`
	DrywallThickIn float64      `yaml:"drywall_thick_in"`
}

func DefaultUnfinishedAtticFloorParams() UnfinishedAtticFloorParams {
	return UnfinishedAtticFloorParams{
		JoistR:         11.0,
		InstallGrade:   1,
		JoistHeightIn:  3.5,
		FramingFactor:  0.07,
		AboveJoistR:    27.0,
		AboveThickIn:   10.0,
		DrywallThickIn: 0.5,
	}
}

func (p UnfinishedAtticFloorParams) Validate() error {
	var c check
	c.nonNegative("joist_r", p.JoistR)
	c.grade("install_grade", p.InstallGrade)
	c.positive("joist_height_in", p.JoistHeightIn)
	c.fraction("framing_factor", p.FramingFactor)
	c.nonNegative("above_joist_r", p.AboveJoistR)
	if p.AboveJoistR > 0 {
		c.positive("above_joist_thick_in", p.AboveThickIn)
	}
	c.nonNegative("drywall_thick_in", p.DrywallThickIn)
	return c.err
}

func UnfinishedAtticFloor(name string, p UnfinishedAtticFloorParams) (*Construction, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	gap := gap_factor(p.InstallGrade, p.FramingFactor, p.JoistR)
	framing, cavity, air := stud_cavity(p.JoistR, p.JoistHeightIn, true, "InsulationGenericLoosefill")

	c := NewConstruction(name, []float64{p.FramingFactor, 1.0 - p.FramingFactor - gap, gap})
	c.AddFilm(AirFilmFloorAverage())
	if p.AboveJoistR > 0 {
		fill := NewOpaqueFromBase("CeilingLooseFill", mustBase("InsulationGenericLoosefill"), p.AboveThickIn, p.AboveJoistR)
		c.AddLayer("CeilingUninsAboveJoist", fill)
	}
	c.AddLayer("CeilingJoistAndCavity", framing, cavity, air)
	if p.DrywallThickIn > 0 {
		c.AddLayer("CeilingDrywall", GypsumCeiling(p.DrywallThickIn))
	}
	c.AddFilm(AirFilmFloorAverage())
	return built(c)
}
