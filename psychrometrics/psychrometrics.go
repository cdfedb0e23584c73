// Package psychrometrics provides the moist-air relations used to check rated coil
// conditions. All quantities are SI: degree C, Pa, kg/kgDA, J/kgDA.
package psychrometrics

import (
	"errors"
	"fmt"
	"math"

	"envelope_hvac_calc/mathtools"
)

// 標準大気圧, Pa
const StandardPressure = 101325.0

// 乾き空気の比熱, J/kg K
func get_c_a() float64 {
	return 1005.0
}

// 水蒸気の定圧比熱, J/kg K
func get_c_v() float64 {
	return 1846.0
}

// 水の蒸発潜熱 (0 degree C), J/kg
func get_l_wtr() float64 {
	return 2501000.0
}

// 乾き空気の気体定数, J/kg K
func get_r_da() float64 {
	return 287.055
}

// 水蒸気と乾き空気の分子量比
const ratio_mw = 0.62198

// coil apparatus dew point search
const (
	ADPMaxIter   = 50
	ADPTolerance = 1.0e-4 // degree C

	adp_min = -60.0
)

var (
	// ErrNoADP indicates the coil process line never reaches saturation.
	ErrNoADP = errors.New("psychrometrics: coil process line does not intersect the saturation curve")
	// ErrSaturatedOutlet indicates the leaving air state is beyond saturation.
	ErrSaturatedOutlet = errors.New("psychrometrics: leaving air is supersaturated")
)

/*
飽和水蒸気圧を計算する。

	Args:
		theta: 空気温度, degree C

	Returns:
		飽和水蒸気圧, Pa
*/
func SaturationPressure(theta float64) float64 {
	// 絶対温度
	t := theta + 273.15

	const a1 = -6096.9385
	const a2 = 21.2409642
	const a3 = -0.02711193
	const a4 = 0.00001673952
	const a5 = 2.433502
	const b1 = -6024.5282
	const b2 = 29.32707
	const b3 = 0.010613863
	const b4 = -0.000013198825
	const b5 = -0.49382577

	if theta >= 0.0 {
		return math.Exp(a1/t + a2 + a3*t + a4*t*t + a5*math.Log(t))
	}
	return math.Exp(b1/t + b2 + b3*t + b4*t*t + b5*math.Log(t))
}

/*
水蒸気圧から絶対湿度を計算する。

	Args:
		p_v: 水蒸気圧, Pa
		p: 大気圧, Pa

	Returns:
		絶対湿度, kg/kgDA
*/
func HumidityRatioFromVaporPressure(p_v, p float64) float64 {
	return ratio_mw * p_v / (p - p_v)
}

// VaporPressure returns the vapour pressure, Pa, of air with humidity ratio x.
func VaporPressure(x, p float64) float64 {
	return p * x / (x + ratio_mw)
}

// RelativeHumidity returns the relative humidity, %.
func RelativeHumidity(p_v, p_vs float64) float64 {
	return p_v / p_vs * 100.0
}

// SaturationHumidityRatio returns the humidity ratio of saturated air at theta.
func SaturationHumidityRatio(theta, p float64) float64 {
	return HumidityRatioFromVaporPressure(SaturationPressure(theta), p)
}

/*
湿球温度から絶対湿度を計算する。

	Args:
		t_db: 乾球温度, degree C
		t_wb: 湿球温度, degree C
		p: 大気圧, Pa

	Returns:
		絶対湿度, kg/kgDA

	Notes:
		ASHRAE Handbook Fundamentals, psychrometrics, wet-bulb relation above freezing.
*/
func HumidityRatioFromWetBulb(t_db, t_wb, p float64) float64 {
	w_s := SaturationHumidityRatio(t_wb, p)
	return ((2501.0-2.326*t_wb)*w_s - 1.006*(t_db-t_wb)) / (2501.0 + 1.86*t_db - 4.186*t_wb)
}

// Enthalpy returns the specific enthalpy of moist air, J/kgDA.
func Enthalpy(t_db, w float64) float64 {
	return get_c_a()*t_db + w*(get_l_wtr()+get_c_v()*t_db)
}

// DryBulbFromEnthalpy inverts Enthalpy for t_db.
func DryBulbFromEnthalpy(h, w float64) float64 {
	return (h - w*get_l_wtr()) / (get_c_a() + w*get_c_v())
}

// HumidityRatioFromEnthalpy inverts Enthalpy for w.
func HumidityRatioFromEnthalpy(h, t_db float64) float64 {
	return (h - get_c_a()*t_db) / (get_l_wtr() + get_c_v()*t_db)
}

// DryAirDensity returns the mass of dry air per m3 of moist air, kgDA/m3.
func DryAirDensity(t_db, w, p float64) float64 {
	return p / (get_r_da() * (t_db + 273.15) * (1.0 + w/ratio_mw))
}

/*
コイルの装置露点温度を求める。

	Args:
		t_in, w_in: 入口空気の乾球温度 degree C, 絶対湿度 kg/kgDA
		t_out, w_out: 出口空気の乾球温度 degree C, 絶対湿度 kg/kgDA
		p: 大気圧, Pa

	Returns:
		装置露点温度, degree C

	Notes:
		入口と出口を結ぶ直線を低温側へ延長し、飽和曲線と交わる点を二分法で求める。
*/
func CoilADP(t_in, w_in, t_out, w_out, p float64) (float64, error) {
	if w_out > SaturationHumidityRatio(t_out, p) {
		return 0, fmt.Errorf("%w: %.2f C, %.5f kg/kg", ErrSaturatedOutlet, t_out, w_out)
	}

	slope := (w_in - w_out) / (t_in - t_out)
	g := func(t float64) float64 {
		return w_out + slope*(t-t_out) - SaturationHumidityRatio(t, p)
	}

	// 出口側から低温側へ1Kずつ走査し、飽和曲線を越える区間を探す
	hi := t_out
	lo := hi
	for g(lo) <= 0.0 {
		hi = lo
		lo -= 1.0
		if lo < adp_min {
			return 0, fmt.Errorf("%w: entering %.2f C / %.5f, leaving %.2f C / %.5f", ErrNoADP, t_in, w_in, t_out, w_out)
		}
	}

	res := mathtools.Bisect(g, lo, hi, ADPTolerance, ADPMaxIter)
	if !res.Bracketed || !res.Converged {
		return 0, fmt.Errorf("%w: entering %.2f C / %.5f, leaving %.2f C / %.5f", ErrNoADP, t_in, w_in, t_out, w_out)
	}
	return res.Root, nil
}

/*
CoilState is the rated condition of a cooling coil.

	t_db_in, t_wb_in: entering dry bulb / wet bulb, degree C
	q_total: gross total capacity, W
	shr: gross sensible heat ratio, -
	v_air: volumetric air flow, m3/s
*/
type CoilState struct {
	DryBulbIn float64
	WetBulbIn float64
	Pressure  float64
	Capacity  float64
	SHR       float64
	Airflow   float64
}

// CoilPoint is the solved coil process.
type CoilPoint struct {
	ADP          float64 // degree C
	BypassFactor float64 // -
	AoFactor     float64 // kg/s
	DryBulbOut   float64 // degree C
	HumidityOut  float64 // kg/kgDA
}

// SolveCoil computes the leaving state, apparatus dew point, bypass factor and Ao factor.
func SolveCoil(cs CoilState) (CoilPoint, error) {
	p := cs.Pressure
	if p == 0 {
		p = StandardPressure
	}

	w_in := HumidityRatioFromWetBulb(cs.DryBulbIn, cs.WetBulbIn, p)
	h_in := Enthalpy(cs.DryBulbIn, w_in)

	// 乾き空気の質量流量, kg/s
	m_da := cs.Airflow * DryAirDensity(cs.DryBulbIn, w_in, p)

	h_out := h_in - cs.Capacity/m_da
	t_out := cs.DryBulbIn - cs.Capacity*cs.SHR/(m_da*(get_c_a()+w_in*get_c_v()))
	w_out := HumidityRatioFromEnthalpy(h_out, t_out)

	adp, err := CoilADP(cs.DryBulbIn, w_in, t_out, w_out, p)
	if err != nil {
		return CoilPoint{}, err
	}
	h_adp := Enthalpy(adp, SaturationHumidityRatio(adp, p))

	bf := (h_out - h_adp) / (h_in - h_adp)
	return CoilPoint{
		ADP:          adp,
		BypassFactor: bf,
		AoFactor:     -math.Log(bf) * m_da,
		DryBulbOut:   t_out,
		HumidityOut:  w_out,
	}, nil
}
