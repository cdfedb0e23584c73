package hvac

import (
	"fmt"
	"math"

	"envelope_hvac_calc/mathtools"
	"envelope_hvac_calc/psychrometrics"
	"envelope_hvac_calc/units"
)

// rated air flow per ton of the design speed, cfm/ton
var (
	coolingCFMPerTon = map[int]float64{1: 386.1, 2: 355.2, 4: 315.8}
	heatingCFMPerTon = map[int]float64{1: 384.1, 2: 352.2, 4: 296.9}
)

// rated cooling coil entering condition, F
const (
	rated_db_in = 80.0
	rated_wb_in = 67.0
)

const min_shr = 0.60

// MaxSHR returns the highest gross SHR with a coil exit state below saturation.
func MaxSHR(cfm_per_ton float64) float64 {
	return 0.3821066 + 0.001050652*cfm_per_ton - 0.01
}

// curve validity ranges, C
var (
	cool_curve_x = [2]float64{13.88, 23.88}
	cool_curve_y = [2]float64{18.33, 51.66}
	heat_curve   = [2]float64{-100.0, 100.0}
	flow_curve   = [2]float64{0.0, 2.0}
)

func biquadratic_si(name string, ip []float64, x, y [2]float64) mathtools.Curve {
	return mathtools.Curve{
		Name:         name,
		Kind:         mathtools.CurveBiquadratic,
		Coefficients: mathtools.BiquadraticIPToSI(ip),
		MinX:         x[0],
		MaxX:         x[1],
		MinY:         y[0],
		MaxY:         y[1],
	}
}

func quadratic(name string, c []float64, x [2]float64) mathtools.Curve {
	return mathtools.Curve{
		Name:         name,
		Kind:         mathtools.CurveQuadratic,
		Coefficients: append([]float64(nil), c...),
		MinX:         x[0],
		MaxX:         x[1],
	}
}

// PLFCurve is the part load fraction curve 1 - cd + cd x.
func PLFCurve(name string, cd float64) mathtools.Curve {
	return quadratic(name, []float64{1.0 - cd, cd, 0.0}, [2]float64{0.0, 1.0})
}

// CoilSpeed is one compressor speed of a DX coil.
type CoilSpeed struct {
	CapacityRatio float64
	FanSpeedRatio float64
	RatedNet      float64 // EER (cooling) or COP (heating), net of fan
	GrossCOP      float64 // derated
	CFMPerTon     float64
	SHR           float64 // gross, cooling only
	BypassFactor  float64 // cooling only
	AoFactor      float64 // kg/s per ton, cooling only

	CapFT    mathtools.Curve
	EIRFT    mathtools.Curve
	CapFFlow mathtools.Curve
	EIRFFlow mathtools.Curve
	PLF      mathtools.Curve

	GrossCapacity float64 // W, 0 when unsized
	Airflow       float64 // m3/s, 0 when unsized
}

// Coil is a DX coil and the rating solve behind it.
type Coil struct {
	Speeds   []CoilSpeed
	CD       float64
	Rating   float64 // SEER or HSPF
	Solution Solution
}

// CoolingParams is the cooling side of an air conditioner or heat pump.
type CoolingParams struct {
	SEER           float64   `yaml:"seer"`
	Speeds         int       `yaml:"speeds"`
	CapacityRatios []float64 `yaml:"capacity_ratios"`
	FanSpeedRatios []float64 `yaml:"fan_speed_ratios"`
	SHR            []float64 `yaml:"shr"` // rated net
	CapacityDerate []float64 `yaml:"capacity_derate"`
	FanPowerRated  float64   `yaml:"fan_power_rated"` // W/cfm
}

// HeatingParams is the heating side of a heat pump.
type HeatingParams struct {
	HSPF           float64   `yaml:"hspf"`
	Speeds         int       `yaml:"speeds"`
	CapacityRatios []float64 `yaml:"capacity_ratios"`
	FanSpeedRatios []float64 `yaml:"fan_speed_ratios"`
	CapacityDerate []float64 `yaml:"capacity_derate"`
	FanPowerRated  float64   `yaml:"fan_power_rated"` // W/cfm
}

// DefaultCoolingParams returns the default staging for 1, 2 or 4 speeds.
func DefaultCoolingParams(speeds int) (CoolingParams, error) {
	switch speeds {
	case 1:
		return CoolingParams{SEER: 13.0, Speeds: 1, CapacityRatios: []float64{1.0}, FanSpeedRatios: []float64{1.0},
			SHR: []float64{0.73}, CapacityDerate: []float64{0.0}, FanPowerRated: 0.365}, nil
	case 2:
		return CoolingParams{SEER: 16.0, Speeds: 2, CapacityRatios: []float64{0.72, 1.0}, FanSpeedRatios: []float64{0.86, 1.0},
			SHR: []float64{0.71, 0.73}, CapacityDerate: []float64{0.0, 0.0}, FanPowerRated: 0.14}, nil
	case 4:
		return CoolingParams{SEER: 22.0, Speeds: 4, CapacityRatios: []float64{0.36, 0.51, 0.67, 1.0},
			FanSpeedRatios: []float64{0.42, 0.54, 0.68, 1.0}, SHR: []float64{0.98, 0.82, 0.745, 0.77},
			CapacityDerate: []float64{0.0, 0.0, 0.0, 0.0}, FanPowerRated: 0.14}, nil
	}
	return CoolingParams{}, speedError(speeds)
}

// DefaultHeatingParams returns the default heat pump heating staging.
func DefaultHeatingParams(speeds int) (HeatingParams, error) {
	switch speeds {
	case 1:
		return HeatingParams{HSPF: 7.7, Speeds: 1, CapacityRatios: []float64{1.0}, FanSpeedRatios: []float64{1.0},
			CapacityDerate: []float64{0.0}, FanPowerRated: 0.365}, nil
	case 2:
		return HeatingParams{HSPF: 9.0, Speeds: 2, CapacityRatios: []float64{0.72, 1.0}, FanSpeedRatios: []float64{0.8, 1.0},
			CapacityDerate: []float64{0.0, 0.0}, FanPowerRated: 0.14}, nil
	case 4:
		return HeatingParams{HSPF: 10.0, Speeds: 4, CapacityRatios: []float64{0.33, 0.56, 1.0, 1.17},
			FanSpeedRatios: []float64{0.63, 0.76, 1.0, 1.19}, CapacityDerate: []float64{0.0, 0.0, 0.0, 0.0},
			FanPowerRated: 0.14}, nil
	}
	return HeatingParams{}, speedError(speeds)
}

func positive(field string, v float64) error {
	if !(v > 0) || math.IsInf(v, 0) {
		return &InputError{Field: field, Value: v, Reason: "must be positive"}
	}
	return nil
}

func per_speed(field string, v []float64, n int, lo, hi float64) error {
	if len(v) != n {
		return &InputError{Field: field, Value: float64(len(v)), Reason: fmt.Sprintf("need one value per speed (%d)", n)}
	}
	for i, x := range v {
		if x < lo || x > hi || math.IsNaN(x) {
			return &InputError{Field: fmt.Sprintf("%s[%d]", field, i), Value: x, Reason: fmt.Sprintf("must be in [%g, %g]", lo, hi)}
		}
	}
	return nil
}

func (p CoolingParams) Validate() error {
	if p.Speeds != 1 && p.Speeds != 2 && p.Speeds != 4 {
		return speedError(p.Speeds)
	}
	for _, err := range []error{
		positive("seer", p.SEER),
		positive("fan_power_rated", p.FanPowerRated),
		per_speed("capacity_ratios", p.CapacityRatios, p.Speeds, 1e-6, 2.0),
		per_speed("fan_speed_ratios", p.FanSpeedRatios, p.Speeds, 1e-6, 2.0),
		per_speed("shr", p.SHR, p.Speeds, 0.0, 1.0),
		per_speed("capacity_derate", p.CapacityDerate, p.Speeds, 0.0, 0.99),
	} {
		if err != nil {
			return err
		}
	}
	return nil
}

func (p HeatingParams) Validate() error {
	if p.Speeds != 1 && p.Speeds != 2 && p.Speeds != 4 {
		return speedError(p.Speeds)
	}
	for _, err := range []error{
		positive("hspf", p.HSPF),
		positive("fan_power_rated", p.FanPowerRated),
		per_speed("capacity_ratios", p.CapacityRatios, p.Speeds, 1e-6, 2.0),
		per_speed("fan_speed_ratios", p.FanSpeedRatios, p.Speeds, 1e-6, 2.0),
		per_speed("capacity_derate", p.CapacityDerate, p.Speeds, 0.0, 0.99),
	} {
		if err != nil {
			return err
		}
	}
	return nil
}

// design_index is the speed whose capacity ratio is 1 and that sizes the unit.
func design_index(ratios []float64, heating bool) int {
	if heating && len(ratios) == 4 {
		return 2
	}
	return len(ratios) - 1
}

/*
cooling_coil solves the rated EER and builds every cooling speed.

	Args:
		p: cooling parameters
		heat_pump: selects the heat pump low-stage correlation of two-speed units
		tons: design-speed capacity; 0 leaves the speeds unsized
*/
func cooling_coil(p CoolingParams, heat_pump bool, tons float64, opts SolverOptions) (Coil, error) {
	if err := p.Validate(); err != nil {
		return Coil{}, err
	}
	curves, err := CoolingCurves(p.Speeds)
	if err != nil {
		return Coil{}, err
	}
	cd, err := CoolingCD(p.Speeds, p.SEER)
	if err != nil {
		return Coil{}, err
	}

	m := CoolingModel{
		Speeds:         p.Speeds,
		CD:             cd,
		FanPower:       p.FanPowerRated,
		CapacityRatios: p.CapacityRatios,
		FanSpeedRatios: p.FanSpeedRatios,
		CapFT:          curves.CapFT,
		EIRFT:          curves.EIRFT,
		HeatPump:       heat_pump,
	}
	sol := SolveEER(m, p.SEER, opts)
	eers := m.SpeedEERs(sol.Value)

	coil := Coil{CD: cd, Rating: p.SEER, Solution: sol}
	for i, eer := range eers {
		cap_ratio, fan_ratio := p.CapacityRatios[i], p.FanSpeedRatios[i]
		cfm_per_ton := coolingCFMPerTon[p.Speeds] * fan_ratio / cap_ratio

		// fan heat per Btuh of net capacity at this speed
		fan_heat := p.FanPowerRated * btu_per_wh * CFMPerBtuh * fan_ratio / cap_ratio
		shr := (p.SHR[i] + fan_heat) / (1.0 + fan_heat)
		shr = math.Max(min_shr, math.Min(shr, MaxSHR(cfm_per_ton)))

		pt, err := psychrometrics.SolveCoil(psychrometrics.CoilState{
			DryBulbIn: units.FToC(rated_db_in),
			WetBulbIn: units.FToC(rated_wb_in),
			Pressure:  psychrometrics.StandardPressure,
			Capacity:  units.BtuhToW(units.TonsToBtuh(1.0)),
			SHR:       shr,
			Airflow:   units.CfmToM3s(cfm_per_ton),
		})
		if err != nil {
			return Coil{}, fmt.Errorf("hvac: cooling speed %d: %w", i+1, err)
		}

		spd := CoilSpeed{
			CapacityRatio: cap_ratio,
			FanSpeedRatio: fan_ratio,
			RatedNet:      eer,
			GrossCOP:      1.0 / EIRFromEER(eer, p.FanPowerRated),
			CFMPerTon:     cfm_per_ton,
			SHR:           shr,
			BypassFactor:  pt.BypassFactor,
			AoFactor:      pt.AoFactor,
			CapFT:         biquadratic_si(fmt.Sprintf("Cool-Cap-fT%d", i+1), curves.CapFT[i], cool_curve_x, cool_curve_y),
			EIRFT:         biquadratic_si(fmt.Sprintf("Cool-EIR-fT%d", i+1), curves.EIRFT[i], cool_curve_x, cool_curve_y),
			CapFFlow:      quadratic(fmt.Sprintf("Cool-Cap-fFF%d", i+1), curves.CapFFlow[i], flow_curve),
			EIRFFlow:      quadratic(fmt.Sprintf("Cool-EIR-fFF%d", i+1), curves.EIRFFlow[i], flow_curve),
			PLF:           PLFCurve(fmt.Sprintf("Cool-PLF-fPLR%d", i+1), cd),
		}
		if tons > 0 {
			gross_tons := tons * cap_ratio * (1.0 - p.CapacityDerate[i])
			spd.GrossCapacity = units.BtuhToW(units.TonsToBtuh(gross_tons))
			spd.Airflow = units.CfmToM3s(cfm_per_ton * tons * cap_ratio)
		}
		coil.Speeds = append(coil.Speeds, spd)
	}
	return coil, nil
}

// heating_coil solves the rated COP and builds every heating speed.
func heating_coil(p HeatingParams, tons float64, opts SolverOptions) (Coil, error) {
	if err := p.Validate(); err != nil {
		return Coil{}, err
	}
	curves, err := HeatingCurves(p.Speeds)
	if err != nil {
		return Coil{}, err
	}
	cd, err := HeatingCD(p.Speeds, p.HSPF)
	if err != nil {
		return Coil{}, err
	}

	m := HeatingModel{
		Speeds:         p.Speeds,
		CD:             cd,
		FanPower:       p.FanPowerRated,
		CapacityRatios: p.CapacityRatios,
		FanSpeedRatios: p.FanSpeedRatios,
		CapFT:          curves.CapFT,
		EIRFT:          curves.EIRFT,
	}
	sol := SolveCOP(m, p.HSPF, opts)
	cops := m.SpeedCOPs(sol.Value)
	nominal := design_index(p.CapacityRatios, true)

	coil := Coil{CD: cd, Rating: p.HSPF, Solution: sol}
	for i, cop := range cops {
		cap_ratio := p.CapacityRatios[i] / p.CapacityRatios[nominal]
		fan_ratio := p.FanSpeedRatios[i] / p.FanSpeedRatios[nominal]
		cfm_per_ton := heatingCFMPerTon[p.Speeds] * fan_ratio / cap_ratio

		spd := CoilSpeed{
			CapacityRatio: p.CapacityRatios[i],
			FanSpeedRatio: p.FanSpeedRatios[i],
			RatedNet:      cop,
			GrossCOP:      1.0 / EIRFromCOP(cop, p.FanPowerRated),
			CFMPerTon:     cfm_per_ton,
			CapFT:         biquadratic_si(fmt.Sprintf("HP_Heat-Cap-fT%d", i+1), curves.CapFT[i], heat_curve, heat_curve),
			EIRFT:         biquadratic_si(fmt.Sprintf("HP_Heat-EIR-fT%d", i+1), curves.EIRFT[i], heat_curve, heat_curve),
			CapFFlow:      quadratic(fmt.Sprintf("HP_Heat-Cap-fFF%d", i+1), curves.CapFFlow[i], flow_curve),
			EIRFFlow:      quadratic(fmt.Sprintf("HP_Heat-EIR-fFF%d", i+1), curves.EIRFFlow[i], flow_curve),
			PLF:           PLFCurve(fmt.Sprintf("HP_Heat-PLF-fPLR%d", i+1), cd),
		}
		if tons > 0 {
			gross_tons := tons * p.CapacityRatios[i] * (1.0 - p.CapacityDerate[i])
			spd.GrossCapacity = units.BtuhToW(units.TonsToBtuh(gross_tons))
			spd.Airflow = units.CfmToM3s(cfm_per_ton * tons * p.CapacityRatios[i])
		}
		coil.Speeds = append(coil.Speeds, spd)
	}
	return coil, nil
}

// Crankcase is the compressor crankcase heater.
type Crankcase struct {
	Power   float64 // W
	MaxTemp float64 // C, heater off above
}

// CentralACParams configures NewCentralAirConditioner.
type CentralACParams struct {
	Name              string        `yaml:"name"`
	Cooling           CoolingParams `yaml:"cooling"`
	FanPowerInstalled float64       `yaml:"fan_power_installed"` // W/cfm
	CrankcaseW        float64       `yaml:"crankcase_w"`
	CrankcaseMaxTempF float64       `yaml:"crankcase_max_temp_f"`
	NominalTons       float64       `yaml:"nominal_tons"` // 0 leaves the unit unsized
	Solver            SolverOptions `yaml:"-"`
}

func DefaultCentralACParams(speeds int) (CentralACParams, error) {
	c, err := DefaultCoolingParams(speeds)
	if err != nil {
		return CentralACParams{}, err
	}
	installed := 0.5
	if speeds > 1 {
		installed = 0.3
	}
	return CentralACParams{
		Name:              "Central Air Conditioner",
		Cooling:           c,
		FanPowerInstalled: installed,
		CrankcaseW:        0.0,
		CrankcaseMaxTempF: 55.0,
		Solver:            DefaultEERSolverOptions(),
	}, nil
}

// CentralAirConditioner is an assembled split-system air conditioner.
type CentralAirConditioner struct {
	Name      string
	Cooling   Coil
	Fan       Fan
	Crankcase Crankcase
}

// Warnings lists the solver fallbacks taken while assembling.
func (ac *CentralAirConditioner) Warnings() []*ConvergenceWarning {
	if ac.Cooling.Solution.Warning != nil {
		return []*ConvergenceWarning{ac.Cooling.Solution.Warning}
	}
	return nil
}

// NewCentralAirConditioner solves the rated EER and assembles the system.
func NewCentralAirConditioner(p CentralACParams) (*CentralAirConditioner, error) {
	if p.FanPowerInstalled < 0 {
		return nil, &InputError{Field: "fan_power_installed", Value: p.FanPowerInstalled, Reason: "must not be negative"}
	}
	if p.NominalTons < 0 {
		return nil, &InputError{Field: "nominal_tons", Value: p.NominalTons, Reason: "must not be negative"}
	}
	opts := solver_defaults(p.Solver, DefaultEERSolverOptions())

	cool, err := cooling_coil(p.Cooling, false, p.NominalTons, opts)
	if err != nil {
		return nil, err
	}
	opts.logger().Printf("%s: SEER %.2f -> EER %.4f (%d speed)", p.Name, p.Cooling.SEER, cool.Solution.Value, p.Cooling.Speeds)

	design := cool.Speeds[design_index(p.Cooling.CapacityRatios, false)]
	return &CentralAirConditioner{
		Name:      p.Name,
		Cooling:   cool,
		Fan:       NewFan(p.FanPowerInstalled, p.Cooling.FanSpeedRatios, units.M3sToCfm(design.Airflow)),
		Crankcase: Crankcase{Power: p.CrankcaseW, MaxTemp: units.FToC(p.CrankcaseMaxTempF)},
	}, nil
}

// HeatPumpParams configures NewAirSourceHeatPump.
type HeatPumpParams struct {
	Name                   string        `yaml:"name"`
	Cooling                CoolingParams `yaml:"cooling"`
	Heating                HeatingParams `yaml:"heating"`
	FanPowerInstalled      float64       `yaml:"fan_power_installed"` // W/cfm
	MinOutdoorTempF        float64       `yaml:"min_outdoor_temp_f"`
	SupplementalEfficiency float64       `yaml:"supplemental_efficiency"`
	SupplementalKBtuh      float64       `yaml:"supplemental_kbtuh"` // 0 leaves it unsized
	MaxSupplementalTempF   float64       `yaml:"max_supplemental_temp_f"`
	CrankcaseW             float64       `yaml:"crankcase_w"`
	CrankcaseMaxTempF      float64       `yaml:"crankcase_max_temp_f"`
	NominalTons            float64       `yaml:"nominal_tons"`
	Solver                 SolverOptions `yaml:"-"`
}

func DefaultHeatPumpParams(speeds int) (HeatPumpParams, error) {
	c, err := DefaultCoolingParams(speeds)
	if err != nil {
		return HeatPumpParams{}, err
	}
	h, err := DefaultHeatingParams(speeds)
	if err != nil {
		return HeatPumpParams{}, err
	}
	installed := 0.5
	if speeds > 1 {
		installed = 0.3
	}
	return HeatPumpParams{
		Name:                   "Air Source Heat Pump",
		Cooling:                c,
		Heating:                h,
		FanPowerInstalled:      installed,
		MinOutdoorTempF:        0.0,
		SupplementalEfficiency: 1.0,
		MaxSupplementalTempF:   40.0,
		CrankcaseW:             0.02 * 1000.0,
		CrankcaseMaxTempF:      55.0,
	}, nil
}

// Supplemental is the backup resistance heater of a heat pump.
type Supplemental struct {
	Efficiency float64
	Capacity   float64 // W, 0 when unsized
	MaxTemp    float64 // C, no supplemental heat above
}

// AirSourceHeatPump is an assembled split-system heat pump.
type AirSourceHeatPump struct {
	Name           string
	Cooling        Coil
	Heating        Coil
	Fan            Fan
	Defrost        mathtools.Curve
	MinOutdoorTemp float64 // C, compressor lockout
	Supplemental   Supplemental
	Crankcase      Crankcase
}

func (hp *AirSourceHeatPump) Warnings() []*ConvergenceWarning {
	var ws []*ConvergenceWarning
	for _, w := range []*ConvergenceWarning{hp.Cooling.Solution.Warning, hp.Heating.Solution.Warning} {
		if w != nil {
			ws = append(ws, w)
		}
	}
	return ws
}

// NewAirSourceHeatPump solves the rated EER and COP and assembles the system.
func NewAirSourceHeatPump(p HeatPumpParams) (*AirSourceHeatPump, error) {
	if p.FanPowerInstalled < 0 {
		return nil, &InputError{Field: "fan_power_installed", Value: p.FanPowerInstalled, Reason: "must not be negative"}
	}
	if p.NominalTons < 0 {
		return nil, &InputError{Field: "nominal_tons", Value: p.NominalTons, Reason: "must not be negative"}
	}
	if err := positive("supplemental_efficiency", p.SupplementalEfficiency); err != nil {
		return nil, err
	}
	if p.SupplementalKBtuh < 0 {
		return nil, &InputError{Field: "supplemental_kbtuh", Value: p.SupplementalKBtuh, Reason: "must not be negative"}
	}

	cool, err := cooling_coil(p.Cooling, true, p.NominalTons, solver_defaults(p.Solver, DefaultEERSolverOptions()))
	if err != nil {
		return nil, err
	}
	heat_opts := solver_defaults(p.Solver, DefaultCOPSolverOptions())
	heat, err := heating_coil(p.Heating, p.NominalTons, heat_opts)
	if err != nil {
		return nil, err
	}
	heat_opts.logger().Printf("%s: SEER %.2f -> EER %.4f, HSPF %.2f -> COP %.4f",
		p.Name, p.Cooling.SEER, cool.Solution.Value, p.Heating.HSPF, heat.Solution.Value)

	// the fan is sized on the larger of the two design airflows
	max_cfm := 0.0
	ratios := p.Cooling.FanSpeedRatios
	for _, c := range []Coil{cool, heat} {
		for _, s := range c.Speeds {
			if cfm := units.M3sToCfm(s.Airflow); cfm > max_cfm {
				max_cfm = cfm
			}
		}
	}
	if len(p.Heating.FanSpeedRatios) > len(ratios) {
		ratios = p.Heating.FanSpeedRatios
	}

	return &AirSourceHeatPump{
		Name:           p.Name,
		Cooling:        cool,
		Heating:        heat,
		Fan:            NewFan(p.FanPowerInstalled, ratios, max_cfm),
		Defrost:        biquadratic_si("Defrost EIR", DefrostEIRCurve, heat_curve, heat_curve),
		MinOutdoorTemp: units.FToC(p.MinOutdoorTempF),
		Supplemental: Supplemental{
			Efficiency: p.SupplementalEfficiency,
			Capacity:   units.BtuhToW(p.SupplementalKBtuh * 1000.0),
			MaxTemp:    units.FToC(p.MaxSupplementalTempF),
		},
		Crankcase: Crankcase{Power: p.CrankcaseW, MaxTemp: units.FToC(p.CrankcaseMaxTempF)},
	}, nil
}

// solver_defaults fills unset solver fields from d.
func solver_defaults(o, d SolverOptions) SolverOptions {
	if o.Lo == 0 && o.Hi == 0 {
		o.Lo, o.Hi = d.Lo, d.Hi
	}
	if o.Tol == 0 {
		o.Tol = d.Tol
	}
	if o.MaxIter == 0 {
		o.MaxIter = d.MaxIter
	}
	return o
}
