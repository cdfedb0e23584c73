package hvac

import (
	"gonum.org/v1/gonum/floats"

	"envelope_hvac_calc/mathtools"
)

// cooling rating points, F
const (
	cool_wb_in = 67.0
	cool_t_a   = 95.0
	cool_t_b   = 82.0
	cool_t_ev  = 87.0
	cool_t_f   = 67.0
	cool_t_bal = 65.0
)

// rated EIR ratios of the four variable-speed cooling stages to the design speed
var CoolEIRRatios4 = []float64{1.07, 1.11, 1.08, 1.0}

/*
CoolingModel is the bin-weather SEER calculation of one cooling coil.

	Notes:
		Capacities are per Btuh of rated capacity at the design speed, so only
		the ratios matter. Rated EER is always the design (highest) speed.
*/
type CoolingModel struct {
	Speeds         int
	CD             float64
	FanPower       float64 // rated, W/cfm
	CapacityRatios []float64
	FanSpeedRatios []float64
	CapFT          [][]float64
	EIRFT          [][]float64
	HeatPump       bool
}

// SpeedEERs returns the rated net EER of every speed for a design-speed EER.
func (m CoolingModel) SpeedEERs(eer float64) []float64 {
	switch m.Speeds {
	case 2:
		eir_hi := EIRFromEER(eer, m.FanPower)
		var eir_lo float64
		if m.HeatPump {
			eir_lo = 0.8887*eir_hi + 0.0083
		} else {
			eir_lo = 0.8691*eir_hi + 0.0127
		}
		return []float64{EERFromEIR(eir_lo, m.FanPower), eer}
	case 4:
		eir := EIRFromEER(eer, m.FanPower)
		eers := make([]float64, len(CoolEIRRatios4))
		for i, r := range CoolEIRRatios4 {
			eers[i] = EERFromEIR(eir/r, m.FanPower)
		}
		return eers
	}
	return []float64{eer}
}

// SEER returns the seasonal rating for a candidate design-speed EER.
func (m CoolingModel) SEER(eer float64) float64 {
	switch m.Speeds {
	case 2:
		return m.seer_two_speed(m.SpeedEERs(eer))
	case 4:
		return m.seer_variable_speed(m.SpeedEERs(eer))
	}
	return m.seer_single_speed(eer)
}

func (m CoolingModel) seer_single_speed(eer_a float64) float64 {
	eir_a := EIRFromEER(eer_a, m.FanPower)
	eir_b := eir_a * mathtools.Biquadratic(cool_wb_in, cool_t_b, m.EIRFT[0])
	return EERFromEIR(eir_b, m.FanPower) * (1.0 - 0.5*m.CD)
}

// SingleSpeedEER inverts the single-speed SEER directly; the solver result
// must agree with it.
func SingleSpeedEER(seer, cd, fan_power float64, eirft []float64) float64 {
	eer_b := seer / (1.0 - 0.5*cd)
	eir_a := EIRFromEER(eer_b, fan_power) / mathtools.Biquadratic(cool_wb_in, cool_t_b, eirft)
	return EERFromEIR(eir_a, fan_power)
}

// cooling_point is a net capacity and power at one rating condition, per rated Btuh.
type cooling_point struct {
	q float64 // net capacity, Btuh
	p float64 // power, W
}

func (m CoolingModel) point(speed int, eir_rated, t_odb float64) cooling_point {
	cfm := CFMPerBtuh * m.FanSpeedRatios[speed]
	q := m.CapacityRatios[speed] * mathtools.Biquadratic(cool_wb_in, t_odb, m.CapFT[speed])
	eir := eir_rated * mathtools.Biquadratic(cool_wb_in, t_odb, m.EIRFT[speed])
	return cooling_point{
		q: q - m.FanPower*btu_per_wh*cfm,
		p: q*eir/btu_per_wh + m.FanPower*cfm,
	}
}

// cooling_load is the building load at bin temperature t.
func cooling_load(t, q_a2 float64) float64 {
	return (t - cool_t_bal) / (cool_t_a - cool_t_bal) * q_a2 / cooling_sizing_factor
}

/*
seer_two_speed runs the two-stage bin calculation.

	Notes:
		Low stage cycles below its capacity, the stages alternate between the
		two capacity lines, and the high stage runs continuously above.
*/
func (m CoolingModel) seer_two_speed(eers []float64) float64 {
	eir_1 := EIRFromEER(eers[0], m.FanPower)
	eir_2 := EIRFromEER(eers[1], m.FanPower)

	a2 := m.point(1, eir_2, cool_t_a)
	b2 := m.point(1, eir_2, cool_t_b)
	b1 := m.point(0, eir_1, cool_t_b)
	f1 := m.point(0, eir_1, cool_t_f)

	q := make([]float64, len(CoolingBinTemps))
	e := make([]float64, len(CoolingBinTemps))
	for i, t := range CoolingBinTemps {
		bl := cooling_load(t, a2.q)
		q_k1 := line(t, cool_t_f, f1.q, cool_t_b, b1.q)
		p_k1 := line(t, cool_t_f, f1.p, cool_t_b, b1.p)
		q_k2 := line(t, cool_t_b, b2.q, cool_t_a, a2.q)
		p_k2 := line(t, cool_t_b, b2.p, cool_t_a, a2.p)

		switch {
		case bl <= q_k1:
			x := bl / q_k1
			q[i] = x * q_k1
			e[i] = x * p_k1 / PLF(m.CD, x)
		case bl < q_k2:
			x := (bl - q_k1) / (q_k2 - q_k1)
			q[i] = x*q_k2 + (1.0-x)*q_k1
			e[i] = x*p_k2 + (1.0-x)*p_k1
		default:
			q[i] = q_k2
			e[i] = p_k2
		}
	}
	return floats.Dot(q, CoolingBinFractions) / floats.Dot(e, CoolingBinFractions)
}

/*
seer_variable_speed runs the variable-speed bin calculation with speeds k1
(minimum), kv (intermediate) and k2 (design).

	Notes:
		The intermediate speed is rated at 87 F only; its capacity and power lines
		take slopes blended from the k1 and k2 lines. Between k1 and k2 the unit
		modulates to the load with EER interpolated by a quadratic in load through
		the three speed anchors.
*/
func (m CoolingModel) seer_variable_speed(eers []float64) float64 {
	k1, kv, k2 := 0, 1, len(eers)-1

	eir_1 := EIRFromEER(eers[k1], m.FanPower)
	eir_v := EIRFromEER(eers[kv], m.FanPower)
	eir_2 := EIRFromEER(eers[k2], m.FanPower)

	a2 := m.point(k2, eir_2, cool_t_a)
	b2 := m.point(k2, eir_2, cool_t_b)
	ev := m.point(kv, eir_v, cool_t_ev)
	b1 := m.point(k1, eir_1, cool_t_b)
	f1 := m.point(k1, eir_1, cool_t_f)

	slope_q1 := (b1.q - f1.q) / (cool_t_b - cool_t_f)
	slope_p1 := (b1.p - f1.p) / (cool_t_b - cool_t_f)
	slope_q2 := (a2.q - b2.q) / (cool_t_a - cool_t_b)
	slope_p2 := (a2.p - b2.p) / (cool_t_a - cool_t_b)

	q_k1_87 := line(cool_t_ev, cool_t_f, f1.q, cool_t_b, b1.q)
	p_k1_87 := line(cool_t_ev, cool_t_f, f1.p, cool_t_b, b1.p)
	q_k2_87 := line(cool_t_ev, cool_t_b, b2.q, cool_t_a, a2.q)
	p_k2_87 := line(cool_t_ev, cool_t_b, b2.p, cool_t_a, a2.p)

	n_q := (ev.q - q_k1_87) / (q_k2_87 - q_k1_87)
	m_q := slope_q1*(1.0-n_q) + slope_q2*n_q
	n_e := (ev.p - p_k1_87) / (p_k2_87 - p_k1_87)
	m_e := slope_p1*(1.0-n_e) + slope_p2*n_e

	q := make([]float64, len(CoolingBinTemps))
	e := make([]float64, len(CoolingBinTemps))
	for i, t := range CoolingBinTemps {
		bl := cooling_load(t, a2.q)
		q_k1 := line(t, cool_t_f, f1.q, cool_t_b, b1.q)
		p_k1 := line(t, cool_t_f, f1.p, cool_t_b, b1.p)
		q_k2 := line(t, cool_t_b, b2.q, cool_t_a, a2.q)
		p_k2 := line(t, cool_t_b, b2.p, cool_t_a, a2.p)
		q_kv := ev.q + m_q*(t-cool_t_ev)
		p_kv := ev.p + m_e*(t-cool_t_ev)

		switch {
		case bl <= q_k1:
			x := bl / q_k1
			q[i] = x * q_k1
			e[i] = x * p_k1 / PLF(m.CD, x)
		case bl < q_k2:
			eer := quadratic_through(
				[3]float64{q_k1, q_kv, q_k2},
				[3]float64{q_k1 / p_k1, q_kv / p_kv, q_k2 / p_k2},
				bl,
			)
			q[i] = bl
			e[i] = bl / eer
		default:
			q[i] = q_k2
			e[i] = p_k2
		}
	}
	return floats.Dot(q, CoolingBinFractions) / floats.Dot(e, CoolingBinFractions)
}

// quadratic_through evaluates at x the parabola through three anchors. Coincident
// anchors fall back to linear interpolation between the outer two.
func quadratic_through(xs, ys [3]float64, x float64) float64 {
	c, err := mathtools.QuadraticThrough(xs, ys)
	if err != nil {
		return line(x, xs[0], ys[0], xs[2], ys[2])
	}
	return mathtools.Quadratic(x, c)
}
