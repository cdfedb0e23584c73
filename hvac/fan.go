package hvac

import (
	"envelope_hvac_calc/units"
)

// rated external static pressure, inH2O
const fan_static_inh2o = 0.5

// Fan is the supply fan descriptor.
type Fan struct {
	PowerPerCFM     float64 // installed, W/cfm
	StaticPressure  float64 // Pa
	Efficiency      float64 // total, -
	MotorEfficiency float64 // -
	Airflow         float64 // m3/s at the highest speed, 0 when unsized
	SpeedRatios     []float64
}

/*
NewFan derives the fan efficiency from the installed power.

	Args:
		w_per_cfm: installed fan power, W/cfm
		speed_ratios: flow fractions of the highest speed, [speed]
		max_cfm: airflow at the highest speed, cfm; 0 leaves the fan unsized
*/
func NewFan(w_per_cfm float64, speed_ratios []float64, max_cfm float64) Fan {
	dp := units.InH2OToPa(fan_static_inh2o)
	eff := 0.0
	if w_per_cfm > 0 {
		eff = dp * units.CfmToM3s(1.0) / w_per_cfm
	}
	return Fan{
		PowerPerCFM:     w_per_cfm,
		StaticPressure:  dp,
		Efficiency:      eff,
		MotorEfficiency: 1.0,
		Airflow:         units.CfmToM3s(max_cfm),
		SpeedRatios:     append([]float64(nil), speed_ratios...),
	}
}

// Power returns the fan power, W, at speed ratio r of the sized airflow.
func (f Fan) Power(r float64) float64 {
	return f.PowerPerCFM * units.M3sToCfm(f.Airflow) * r
}
