package constructions

// WoodStudWallParams describes a wood-framed wall, outside to inside:
// finish, rigid insulation, sheathing, studs and cavity, drywall.
type WoodStudWallParams struct {
	CavityR        float64      `yaml:"cavity_r"`
	InstallGrade   InstallGrade `yaml:"install_grade"`
	CavityDepthIn  float64      `yaml:"cavity_depth_in"`
	CavityFilled   bool         `yaml:"cavity_filled"`
	FramingFactor  float64      `yaml:"framing_factor"`
	DrywallThickIn float64      `yaml:"drywall_thick_in"`
	OSBThickIn     float64      `yaml:"osb_thick_in"`
	RigidR         float64      `yaml:"rigid_r"`
	RigidThickIn   float64      `yaml:"rigid_thick_in"`
	Finish         string       `yaml:"finish"`
}

// DefaultWoodStudWallParams is a 2x4 R-13 wall at 16 in. on center.
func DefaultWoodStudWallParams() WoodStudWallParams {
	return WoodStudWallParams{
		CavityR:        13.0,
		InstallGrade:   1,
		CavityDepthIn:  3.5,
		CavityFilled:   true,
		FramingFactor:  0.25,
		DrywallThickIn: 0.5,
		OSBThickIn:     0.5,
		Finish:         "FinishVinyl",
	}
}

func (p WoodStudWallParams) Validate() error {
	var c check
	c.nonNegative("cavity_r", p.CavityR)
	c.grade("install_grade", p.InstallGrade)
	c.positive("cavity_depth_in", p.CavityDepthIn)
	c.fraction("framing_factor", p.FramingFactor)
	c.nonNegative("drywall_thick_in", p.DrywallThickIn)
	c.nonNegative("osb_thick_in", p.OSBThickIn)
	c.nonNegative("rigid_r", p.RigidR)
	if p.RigidR > 0 {
		c.positive("rigid_thick_in", p.RigidThickIn)
	}
	c.base("finish", p.Finish)
	return c.err
}

// WoodStudWall builds the wall. A zero cavity R leaves an empty closed air cavity.
func WoodStudWall(name string, p WoodStudWallParams) (*Construction, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	ext, err := finish(p.Finish)
	if err != nil {
		return nil, err
	}

	gap := gap_factor(p.InstallGrade, p.FramingFactor, p.CavityR)
	framing, cavity, air := stud_cavity(p.CavityR, p.CavityDepthIn, p.CavityFilled, "InsulationGenericDensepack")

	c := NewConstruction(name, []float64{p.FramingFactor, 1.0 - p.FramingFactor - gap, gap})
	c.AddFilm(AirFilmOutside())
	c.AddLayer("WallExtFinish", ext)
	if p.RigidR > 0 {
		c.AddLayer("WallRigidIns", RigidInsulation(p.RigidThickIn, p.RigidR))
	}
	if p.OSBThickIn > 0 {
		c.AddLayer("WallSheathing", OSB(p.OSBThickIn))
	}
	c.AddLayer("WallStudAndCavity", framing, cavity, air)
	if p.DrywallThickIn > 0 {
		c.AddLayer("WallDrywall", GypsumWall(p.DrywallThickIn))
	}
	c.AddFilm(AirFilmVertical())
	return built(c)
}

// DoubleStudWallParams describes two rows of studs separated by an insulated gap.
type DoubleStudWallParams struct {
	CavityR        float64      `yaml:"cavity_r"`
	InstallGrade   InstallGrade `yaml:"install_grade"`
	StudDepthIn    float64      `yaml:"stud_depth_in"`
	GapDepthIn     float64      `yaml:"gap_depth_in"`
	FramingFactor  float64      `yaml:"framing_factor"`
	DrywallThickIn float64      `yaml:"drywall_thick_in"`
	OSBThickIn     float64      `yaml:"osb_thick_in"`
	Finish         string       `yaml:"finish"`
}

func DefaultDoubleStudWallParams() DoubleStudWallParams {
	return DoubleStudWallParams{
		CavityR:        40.0,
		InstallGrade:   1,
		StudDepthIn:    3.5,
		GapDepthIn:     3.5,
		FramingFactor:  0.22,
		DrywallThickIn: 0.5,
		OSBThickIn:     0.5,
		Finish:         "FinishVinyl",
	}
}

func (p DoubleStudWallParams) Validate() error {
	var c check
	c.nonNegative("cavity_r", p.CavityR)
	c.grade("install_grade", p.InstallGrade)
	c.positive("stud_depth_in", p.StudDepthIn)
	c.nonNegative("gap_depth_in", p.GapDepthIn)
	c.fraction("framing_factor", p.FramingFactor)
	c.nonNegative("drywall_thick_in", p.DrywallThickIn)
	c.nonNegative("osb_thick_in", p.OSBThickIn)
	c.base("finish", p.Finish)
	return c.err
}

/*
DoubleStudWall builds the wall.

	Notes:
		The cavity insulation fills both stud rows and the gap between them; its
		R-value is split in proportion to depth. Only the stud path crosses framing
		in the stud rows, while the gap row is insulated in every path but the void.
*/
func DoubleStudWall(name string, p DoubleStudWallParams) (*Construction, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	ext, err := finish(p.Finish)
	if err != nil {
		return nil, err
	}

	total_depth := 2.0*p.StudDepthIn + p.GapDepthIn
	r_per_in := p.CavityR / total_depth
	gap := gap_factor(p.InstallGrade, p.FramingFactor, p.CavityR)

	c := NewConstruction(name, []float64{p.FramingFactor, 1.0 - p.FramingFactor - gap, gap})
	c.AddFilm(AirFilmOutside())
	c.AddLayer("WallExtFinish", ext)
	if p.OSBThickIn > 0 {
		c.AddLayer("WallSheathing", OSB(p.OSBThickIn))
	}

	framing, cavity, air := stud_cavity(r_per_in*p.StudDepthIn, p.StudDepthIn, true, "InsulationCelluloseDensepack")
	c.AddLayer("WallStudAndCavityOuter", framing, cavity, air)
	if p.GapDepthIn > 0 {
		_, mid, mid_air := stud_cavity(r_per_in*p.GapDepthIn, p.GapDepthIn, true, "InsulationCelluloseDensepack")
		c.AddLayer("WallCavity", mid, mid, mid_air)
	}
	c.AddLayer("WallStudAndCavityInner", framing, cavity, air)

	if p.DrywallThickIn > 0 {
		c.AddLayer("WallDrywall", GypsumWall(p.DrywallThickIn))
	}
	c.AddFilm(AirFilmVertical())
	return built(c)
}

// SteelStudWallParams describes a steel-framed wall. The correction factor
// derates the cavity R-value for the steel thermal bridge.
type SteelStudWallParams struct {
	CavityR          float64      `yaml:"cavity_r"`
	InstallGrade     InstallGrade `yaml:"install_grade"`
	CavityDepthIn    float64      `yaml:"cavity_depth_in"`
	CavityFilled     bool         `yaml:"cavity_filled"`
	CorrectionFactor float64      `yaml:"correction_factor"`
	DrywallThickIn   float64      `yaml:"drywall_thick_in"`
	OSBThickIn       float64      `yaml:"osb_thick_in"`
	Finish           string       `yaml:"finish"`
}

func DefaultSteelStudWallParams() SteelStudWallParams {
	return SteelStudWallParams{
		CavityR:          13.0,
		InstallGrade:     1,
		CavityDepthIn:    3.5,
		CavityFilled:     true,
		CorrectionFactor: 0.46,
		DrywallThickIn:   0.5,
		OSBThickIn:       0.5,
		Finish:           "FinishVinyl",
	}
}

func (p SteelStudWallParams) Validate() error {
	var c check
	c.nonNegative("cavity_r", p.CavityR)
	c.grade("install_grade", p.InstallGrade)
	c.positive("cavity_depth_in", p.CavityDepthIn)
	c.positive("correction_factor", p.CorrectionFactor)
	c.nonNegative("drywall_thick_in", p.DrywallThickIn)
	c.nonNegative("osb_thick_in", p.OSBThickIn)
	c.base("finish", p.Finish)
	return c.err
}

func SteelStudWall(name string, p SteelStudWallParams) (*Construction, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	ext, err := finish(p.Finish)
	if err != nil {
		return nil, err
	}

	r_eff := p.CavityR * p.CorrectionFactor
	gap := gap_factor(p.InstallGrade, 0.0, p.CavityR)
	_, cavity, air := stud_cavity(r_eff, p.CavityDepthIn, p.CavityFilled, "InsulationGenericDensepack")

	c := NewConstruction(name, []float64{1.0 - gap, gap})
	c.AddFilm(AirFilmOutside())
	c.AddLayer("WallExtFinish", ext)
	if p.OSBThickIn > 0 {
		c.AddLayer("WallSheathing", OSB(p.OSBThickIn))
	}
	c.AddLayer("WallStudAndCavity", cavity, air)
	if p.DrywallThickIn > 0 {
		c.AddLayer("WallDrywall", GypsumWall(p.DrywallThickIn))
	}
	c.AddFilm(AirFilmVertical())
	return built(c)
}

// CMUWallParams describes a concrete masonry unit wall with optional interior furring.
type CMUWallParams struct {
	ThickIn              float64 `yaml:"thick_in"`
	ConductivityIn       float64 `yaml:"conductivity_in"` // Btu-in/h-ft2-F
	Density              float64 `yaml:"density"`         // lb/ft3
	FramingFactor        float64 `yaml:"framing_factor"`
	FurringR             float64 `yaml:"furring_r"`
	FurringDepthIn       float64 `yaml:"furring_depth_in"`
	FurringFramingFactor float64 `yaml:"furring_framing_factor"`
	DrywallThickIn       float64 `yaml:"drywall_thick_in"`
	Finish               string  `yaml:"finish"`
}

func DefaultCMUWallParams() CMUWallParams {
	return CMUWallParams{
		ThickIn:        8.0,
		ConductivityIn: 5.33,
		Density:        119.0,
		FramingFactor:  0.076,
		DrywallThickIn: 0.5,
		Finish:         "FinishStucco",
	}
}

func (p CMUWallParams) Validate() error {
	var c check
	c.positive("thick_in", p.ThickIn)
	c.positive("conductivity_in", p.ConductivityIn)
	c.positive("density", p.Density)
	c.fraction("framing_factor", p.FramingFactor)
	c.nonNegative("furring_r", p.FurringR)
	if p.FurringR > 0 {
		c.positive("furring_depth_in", p.FurringDepthIn)
		c.fraction("furring_framing_factor", p.FurringFramingFactor)
		c.fraction("framing_factor + furring_framing_factor", p.FramingFactor+p.FurringFramingFactor)
	}
	c.nonNegative("drywall_thick_in", p.DrywallThickIn)
	c.base("finish", p.Finish)
	return c.err
}

/*
CMUWall builds the wall. Paths are the grouted framing, the furring studs and the
open block; the furring layer is only added when furring_r > 0.
*/
func CMUWall(name string, p CMUWallParams) (*Construction, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	ext, err := finish(p.Finish)
	if err != nil {
		return nil, err
	}

	concrete := mustBase("Concrete")
	cmu := NewOpaqueFromBase("CMU", concrete, p.ThickIn, 0,
		WithConductivity(p.ConductivityIn), WithDensity(p.Density))
	framing := Stud2x(p.ThickIn)

	furring_ff := 0.0
	if p.FurringR > 0 {
		furring_ff = p.FurringFramingFactor
	}

	c := NewConstruction(name, []float64{p.FramingFactor, furring_ff, 1.0 - p.FramingFactor - furring_ff})
	c.AddFilm(AirFilmOutside())
	c.AddLayer("WallExtFinish", ext)
	c.AddLayer("WallCMU", framing, cmu, cmu)
	if p.FurringR > 0 {
		stud, ins, _ := stud_cavity(p.FurringR, p.FurringDepthIn, true, "InsulationGenericDensepack")
		c.AddLayer("WallFurring", ins, stud, ins)
	}
	if p.DrywallThickIn > 0 {
		c.AddLayer("WallDrywall", GypsumWall(p.DrywallThickIn))
	}
	c.AddFilm(AirFilmVertical())
	return built(c)
}

// SIPWallParams describes a structural insulated panel wall.
type SIPWallParams struct {
	SIPR             float64 `yaml:"sip_r"`
	SIPThickIn       float64 `yaml:"sip_thick_in"`
	FramingFactor    float64 `yaml:"framing_factor"` // splines
	SheathingThickIn float64 `yaml:"sheathing_thick_in"`
	DrywallThickIn   float64 `yaml:"drywall_thick_in"`
	Finish           string  `yaml:"finish"`
}

func DefaultSIPWallParams() SIPWallParams {
	return SIPWallParams{
		SIPR:             22.0,
		SIPThickIn:       5.5,
		FramingFactor:    0.156,
		SheathingThickIn: 0.44,
		DrywallThickIn:   0.5,
		Finish:           "FinishVinyl",
	}
}

func (p SIPWallParams) Validate() error {
	var c check
	c.positive("sip_r", p.SIPR)
	c.positive("sip_thick_in", p.SIPThickIn)
	c.fraction("framing_factor", p.FramingFactor)
	c.positive("sheathing_thick_in", p.SheathingThickIn)
	c.nonNegative("drywall_thick_in", p.DrywallThickIn)
	c.base("finish", p.Finish)
	return c.err
}

func SIPWall(name string, p SIPWallParams) (*Construction, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	ext, err := finish(p.Finish)
	if err != nil {
		return nil, err
	}

	spline := Stud2x(p.SIPThickIn)
	core := RigidInsulation(p.SIPThickIn, p.SIPR)

	c := NewConstruction(name, []float64{p.FramingFactor, 1.0 - p.FramingFactor})
	c.AddFilm(AirFilmOutside())
	c.AddLayer("WallExtFinish", ext)
	c.AddLayer("WallSheathingOuter", OSB(p.SheathingThickIn))
	c.AddLayer("WallSIPCore", spline, core)
	c.AddLayer("WallSheathingInner", OSB(p.SheathingThickIn))
	if p.DrywallThickIn > 0 {
		c.AddLayer("WallDrywall", GypsumWall(p.DrywallThickIn))
	}
	c.AddFilm(AirFilmVertical())
	return built(c)
}

// ICFWallParams describes an insulated concrete form wall. The foam R is split
// evenly between the two faces; the framing factor is the web tie fraction.
type ICFWallParams struct {
	ICFR            float64 `yaml:"icf_r"`
	FoamThickIn     float64 `yaml:"foam_thick_in"` // each face
	ConcreteThickIn float64 `yaml:"concrete_thick_in"`
	FramingFactor   float64 `yaml:"framing_factor"`
	DrywallThickIn  float64 `yaml:"drywall_thick_in"`
	Finish          string  `yaml:"finish"`
}

func DefaultICFWallParams() ICFWallParams {
	return ICFWallParams{
		ICFR:            20.0,
		FoamThickIn:     2.5,
		ConcreteThickIn: 6.0,
		FramingFactor:   0.076,
		DrywallThickIn:  0.5,
		Finish:          "FinishStucco",
	}
}

func (p ICFWallParams) Validate() error {
	var c check
	c.positive("icf_r", p.ICFR)
	c.positive("foam_thick_in", p.FoamThickIn)
	c.positive("concrete_thick_in", p.ConcreteThickIn)
	c.fraction("framing_factor", p.FramingFactor)
	c.nonNegative("drywall_thick_in", p.DrywallThickIn)
	c.base("finish", p.Finish)
	return c.err
}

func ICFWall(name string, p ICFWallParams) (*Construction, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	ext, err := finish(p.Finish)
	if err != nil {
		return nil, err
	}

	tie := Stud2x(p.FoamThickIn)
	foam := RigidInsulation(p.FoamThickIn, p.ICFR/2.0)
	concrete := Concrete(p.ConcreteThickIn)

	c := NewConstruction(name, []float64{p.FramingFactor, 1.0 - p.FramingFactor})
	c.AddFilm(AirFilmOutside())
	c.AddLayer("WallExtFinish", ext)
	c.AddLayer("WallICFFoamOuter", tie, foam)
	c.AddLayer("WallICFConcrete", concrete, concrete)
	c.AddLayer("WallICFFoamInner", tie, foam)
	if p.DrywallThickIn > 0 {
		c.AddLayer("WallDrywall", GypsumWall(p.DrywallThickIn))
	}
	c.AddFilm(AirFilmVertical())
	return built(c)
}

// GenericLayer is one series layer of a generic wall, IP units.
type GenericLayer struct {
	Name    string  `yaml:"name"`
	ThickIn float64 `yaml:"thick_in"`
	KIn     float64 `yaml:"k_in"`
	Rho     float64 `yaml:"rho"`
	Cp      float64 `yaml:"cp"`
}

// GenericWall builds a single-path wall from explicit layers, outside first.
func GenericWall(name string, layers []GenericLayer) (*Construction, error) {
	if len(layers) == 0 {
		return nil, &InputError{Field: "layers", Value: 0, Reason: "at least one layer is required"}
	}
	var chk check
	for _, l := range layers {
		chk.positive(l.Name+".thick_in", l.ThickIn)
		chk.positive(l.Name+".k_in", l.KIn)
		chk.nonNegative(l.Name+".rho", l.Rho)
		chk.nonNegative(l.Name+".cp", l.Cp)
	}
	if chk.err != nil {
		return nil, chk.err
	}

	c := NewConstruction(name, []float64{1.0})
	c.AddFilm(AirFilmOutside())
	for _, l := range layers {
		c.AddLayer(l.Name, NewOpaque(l.Name, l.ThickIn, l.KIn, WithDensity(l.Rho), WithSpecificHeat(l.Cp)))
	}
	c.AddFilm(AirFilmVertical())
	return built(c)
}
