// Package hvac backs out rated EER/COP from seasonal ratings over the AHRI
// bin-weather method and assembles the coil, fan and curve descriptors of
// central air conditioners and air-source heat pumps.
package hvac

// rated fan flow per Btuh of capacity, cfm/(Btu/h)
const CFMPerBtuh = 400.0 / 12000.0

const btu_per_wh = 3.412

// cooling bins, F, and fractional bin hours
var (
	CoolingBinTemps     = []float64{67.0, 72.0, 77.0, 82.0, 87.0, 92.0, 97.0, 102.0}
	CoolingBinFractions = []float64{0.214, 0.231, 0.216, 0.161, 0.104, 0.052, 0.018, 0.004}
)

// heating bins, F, and fractional bin hours
var (
	HeatingBinTemps     = []float64{62.0, 57.0, 52.0, 47.0, 42.0, 37.0, 32.0, 27.0, 22.0, 17.0, 12.0, 7.0, 2.0, -3.0, -8.0}
	HeatingBinFractions = []float64{0.132, 0.111, 0.103, 0.093, 0.100, 0.109, 0.126, 0.087, 0.055, 0.036, 0.026, 0.013, 0.006, 0.002, 0.001}
)

// heating bin method, F
const (
	heating_design_temp = 5.0
	heating_off_temp    = 10.0
	heating_on_temp     = 14.0

	// building load line slope relative to rated capacity
	heating_load_factor = 0.77
	// cooling load at 95 F is the rated net capacity over this sizing factor
	cooling_sizing_factor = 1.1
)

// linear fallbacks when the solver does not converge
const (
	fallback_eer_slope     = 0.73
	fallback_eer_intercept = 1.47
	fallback_cop_slope     = 0.31
	fallback_cop_intercept = 0.977
)

// FallbackEER is the linear EER correlation used when the solver fails.
func FallbackEER(seer float64) float64 {
	return fallback_eer_slope*seer + fallback_eer_intercept
}

// FallbackCOP is the linear COP correlation used when the solver fails.
func FallbackCOP(hspf float64) float64 {
	return fallback_cop_slope*hspf + fallback_cop_intercept
}

/*
EIRFromEER converts a net EER to a gross EIR.

	Args:
		eer: net EER, Btu/Wh
		fan_power: rated fan power, W/cfm

	Returns:
		gross EIR, -
*/
func EIRFromEER(eer, fan_power float64) float64 {
	return ((1.0-btu_per_wh*fan_power*CFMPerBtuh)/eer - fan_power*CFMPerBtuh) * btu_per_wh
}

// EERFromEIR inverts EIRFromEER.
func EERFromEIR(eir, fan_power float64) float64 {
	return (1.0 - btu_per_wh*fan_power*CFMPerBtuh) / (eir/btu_per_wh + fan_power*CFMPerBtuh)
}

// EIRFromCOP converts a net heating COP to a gross EIR.
func EIRFromCOP(cop, fan_power float64) float64 {
	return ((1.0/btu_per_wh+fan_power*CFMPerBtuh)/cop - fan_power*CFMPerBtuh) * btu_per_wh
}

// COPFromEIR inverts EIRFromCOP.
func COPFromEIR(eir, fan_power float64) float64 {
	return (1.0/btu_per_wh + fan_power*CFMPerBtuh) / (eir/btu_per_wh + fan_power*CFMPerBtuh)
}

// CoolingCD returns the cycling degradation coefficient for cooling.
func CoolingCD(speeds int, seer float64) (float64, error) {
	switch speeds {
	case 1:
		if seer < 13.0 {
			return 0.20, nil
		}
		return 0.07, nil
	case 2:
		return 0.11, nil
	case 4:
		return 0.25, nil
	}
	return 0, speedError(speeds)
}

// HeatingCD returns the cycling degradation coefficient for heating.
func HeatingCD(speeds int, hspf float64) (float64, error) {
	switch speeds {
	case 1:
		if hspf < 7.0 {
			return 0.20, nil
		}
		return 0.11, nil
	case 2:
		return 0.11, nil
	case 4:
		return 0.24, nil
	}
	return 0, speedError(speeds)
}

// PLF returns the part load factor at part load ratio x.
func PLF(cd, x float64) float64 {
	return 1.0 - cd*(1.0-x)
}

// line is the straight line through (t0, v0) and (t1, v1) evaluated at t.
func line(t, t0, v0, t1, v1 float64) float64 {
	return v0 + (v1-v0)*(t-t0)/(t1-t0)
}

// heating_cutoff is the fraction of the bin the compressor runs, by outdoor
// temperature and the COP it would deliver there.
func heating_cutoff(t, cop float64) float64 {
	if t <= heating_off_temp || cop < 1.0 {
		return 0.0
	}
	if t <= heating_on_temp {
		return 0.5
	}
	return 1.0
}
