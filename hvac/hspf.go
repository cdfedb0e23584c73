package hvac

import (
	"gonum.org/v1/gonum/floats"

	"envelope_hvac_calc/mathtools"
)

// heating rating points, F
const (
	heat_db_in = 70.0
	heat_t_h0  = 62.0
	heat_t_h1  = 47.0
	heat_t_h2  = 35.0
	heat_t_h3  = 17.0
	heat_t_bal = 65.0

	// frost band where the 17-35 F line applies
	heat_frost_lo = 17.0
	heat_frost_hi = 45.0
)

// single-speed net capacity at 35 F relative to 47 F
const heat_q35_ratio = 0.7519

// rated EIR ratios of the four variable-speed heating stages to the nominal speed
var HeatEIRRatios4 = []float64{1.385171617, 1.183214059, 1.0, 0.95544453}

// HeatingModel is the bin-weather HSPF calculation of one heat pump heating coil.
// Rated COP is the nominal speed at 47 F: the only speed of a single-speed unit,
// the high stage of a two-speed unit, speed 3 of 4 for variable speed.
type HeatingModel struct {
	Speeds         int
	CD             float64
	FanPower       float64 // rated, W/cfm
	CapacityRatios []float64
	FanSpeedRatios []float64
	CapFT          [][]float64
	EIRFT          [][]float64
}

// SpeedCOPs returns the rated net COP of every speed for a nominal-speed COP.
func (m HeatingModel) SpeedCOPs(cop float64) []float64 {
	switch m.Speeds {
	case 2:
		eir_hi := EIRFromCOP(cop, m.FanPower)
		eir_lo := 0.6241*eir_hi + 0.0681
		return []float64{COPFromEIR(eir_lo, m.FanPower), cop}
	case 4:
		eir := EIRFromCOP(cop, m.FanPower)
		cops := make([]float64, len(HeatEIRRatios4))
		for i, r := range HeatEIRRatios4 {
			cops[i] = COPFromEIR(eir/r, m.FanPower)
		}
		return cops
	}
	return []float64{cop}
}

// HSPF returns the seasonal rating for a candidate nominal-speed COP.
func (m HeatingModel) HSPF(cop float64) float64 {
	switch m.Speeds {
	case 2:
		return m.hspf_two_speed(m.SpeedCOPs(cop))
	case 4:
		return m.hspf_variable_speed(m.SpeedCOPs(cop))
	}
	return m.hspf_single_speed(cop)
}

// heating_point is a net capacity and power at one rating condition, per rated Btuh.
type heating_point struct {
	q float64 // net capacity, Btuh
	p float64 // power, W
}

func (m HeatingModel) net(speed int, q, eir float64) heating_point {
	cfm := CFMPerBtuh * m.FanSpeedRatios[speed]
	return heating_point{
		q: q + m.FanPower*btu_per_wh*cfm,
		p: q*eir/btu_per_wh + m.FanPower*cfm,
	}
}

func (m HeatingModel) point(speed int, eir_rated, t_odb float64) heating_point {
	q := m.CapacityRatios[speed] * mathtools.Biquadratic(heat_db_in, t_odb, m.CapFT[speed])
	eir := eir_rated * mathtools.Biquadratic(heat_db_in, t_odb, m.EIRFT[speed])
	return m.net(speed, q, eir)
}

// frost returns the 35 F frosting point from the 17 F and 47 F points.
func frost(p17, p47 heating_point) heating_point {
	return heating_point{
		q: 0.9 * (p17.q + 0.6*(p47.q-p17.q)),
		p: 0.985 * (p17.p + 0.6*(p47.p-p17.p)),
	}
}

// heating_load is the building load at bin temperature t.
func heating_load(t, q47 float64) float64 {
	return (heat_t_bal - t) / (heat_t_bal - heating_design_temp) * heating_load_factor * q47
}

// in_frost_band reports whether the 17-35 F line applies at t.
func in_frost_band(t float64) bool {
	return t > heat_frost_lo && t < heat_frost_hi
}

// full_line interpolates the full-capacity line through 17, 35 and 47 F.
func full_line(t float64, p17, p35, p47 heating_point) heating_point {
	if in_frost_band(t) {
		return heating_point{
			q: line(t, heat_t_h3, p17.q, heat_t_h2, p35.q),
			p: line(t, heat_t_h3, p17.p, heat_t_h2, p35.p),
		}
	}
	return heating_point{
		q: line(t, heat_t_h3, p17.q, heat_t_h1, p47.q),
		p: line(t, heat_t_h3, p17.p, heat_t_h1, p47.p),
	}
}

// bin_result is the weighted compressor energy and resistance energy of one bin.
type bin_result struct {
	e  float64
	rh float64
}

// cycling is a bin where the load is below the capacity of the given stage.
func (m HeatingModel) cycling(t, bl float64, k heating_point) bin_result {
	x := bl / k.q
	d := heating_cutoff(t, k.q/(btu_per_wh*k.p))
	return bin_result{
		e:  x * k.p * d / PLF(m.CD, x),
		rh: (bl - x*k.q*d) / btu_per_wh,
	}
}

// full is a bin where the stage runs continuously and resistance heat covers the rest.
func full(t, bl float64, k heating_point) bin_result {
	d := heating_cutoff(t, k.q/(btu_per_wh*k.p))
	return bin_result{
		e:  k.p * d,
		rh: (bl - k.q*d) / btu_per_wh,
	}
}

func hspf_sum(loads []float64, res []bin_result) float64 {
	e := make([]float64, len(res))
	rh := make([]float64, len(res))
	for i, r := range res {
		e[i] = r.e
		rh[i] = r.rh
	}
	return floats.Dot(loads, HeatingBinFractions) /
		(floats.Dot(e, HeatingBinFractions) + floats.Dot(rh, HeatingBinFractions))
}

func (m HeatingModel) hspf_single_speed(cop47 float64) float64 {
	eir47 := EIRFromCOP(cop47, m.FanPower)
	eir35 := eir47 * mathtools.Biquadratic(heat_db_in, heat_t_h2, m.EIRFT[0])
	eir17 := eir47 * mathtools.Biquadratic(heat_db_in, heat_t_h3, m.EIRFT[0])

	q47 := 1.0
	q17 := q47 * mathtools.Biquadratic(heat_db_in, heat_t_h3, m.CapFT[0])

	p47 := m.net(0, q47, eir47)
	p35 := m.net(0, heat_q35_ratio, eir35)
	p17 := m.net(0, q17, eir17)

	loads := make([]float64, len(HeatingBinTemps))
	res := make([]bin_result, len(HeatingBinTemps))
	for i, t := range HeatingBinTemps {
		bl := heating_load(t, q47)
		loads[i] = bl

		k := full_line(t, p17, p35, p47)
		x := bl / k.q
		if x > 1.0 {
			x = 1.0
		}
		d := heating_cutoff(t, k.q/(btu_per_wh*k.p))
		res[i] = bin_result{
			e:  x * k.p * d / PLF(m.CD, x),
			rh: (bl - x*k.q*d) / btu_per_wh,
		}
	}
	return hspf_sum(loads, res)
}

func (m HeatingModel) hspf_two_speed(cops []float64) float64 {
	eir_1 := EIRFromCOP(cops[0], m.FanPower)
	eir_2 := EIRFromCOP(cops[1], m.FanPower)

	h12 := m.point(1, eir_2, heat_t_h1)
	h32 := m.point(1, eir_2, heat_t_h3)
	h22 := frost(h32, h12)

	h11 := m.point(0, eir_1, heat_t_h1)
	h01 := m.point(0, eir_1, heat_t_h0)
	h31 := m.point(0, eir_1, heat_t_h3)
	h21 := frost(h31, h11)

	loads := make([]float64, len(HeatingBinTemps))
	res := make([]bin_result, len(HeatingBinTemps))
	for i, t := range HeatingBinTemps {
		bl := heating_load(t, h12.q)
		loads[i] = bl

		var k1 heating_point
		switch {
		case t >= 40.0:
			k1 = heating_point{q: line(t, heat_t_h1, h11.q, heat_t_h0, h01.q), p: line(t, heat_t_h1, h11.p, heat_t_h0, h01.p)}
		case t >= heat_t_h3:
			k1 = heating_point{q: line(t, heat_t_h3, h31.q, heat_t_h2, h21.q), p: line(t, heat_t_h3, h31.p, heat_t_h2, h21.p)}
		default:
			k1 = heating_point{q: line(t, heat_t_h3, h31.q, heat_t_h1, h11.q), p: line(t, heat_t_h3, h31.p, heat_t_h1, h11.p)}
		}
		k2 := full_line(t, h32, h22, h12)

		switch {
		case bl <= k1.q:
			res[i] = m.cycling(t, bl, k1)
		case bl < k2.q:
			x := (k2.q - bl) / (k2.q - k1.q)
			res[i] = full(t, bl, heating_point{
				q: x*k1.q + (1.0-x)*k2.q,
				p: x*k1.p + (1.0-x)*k2.p,
			})
		default:
			res[i] = full(t, bl, k2)
		}
	}
	return hspf_sum(loads, res)
}

/*
hspf_variable_speed runs the variable-speed bin calculation.

	Notes:
		Speeds are k1 (minimum, rated at 47 and 62 F), kv (intermediate, rated
		at 35 F), the nominal speed that sizes the load line, and k2 (maximum,
		rated at 17 and 47 F). Between k1 and k2 the COP follows a quadratic in
		load through the three stage anchors.
*/
func (m HeatingModel) hspf_variable_speed(cops []float64) float64 {
	k1, kv, kn, k2 := 0, 1, 2, 3

	eirs := make([]float64, len(cops))
	for i, c := range cops {
		eirs[i] = EIRFromCOP(c, m.FanPower)
	}

	h11 := m.point(k1, eirs[k1], heat_t_h1)
	h01 := m.point(k1, eirs[k1], heat_t_h0)
	h2v := m.point(kv, eirs[kv], heat_t_h2)
	h1n := m.net(kn, m.CapacityRatios[kn], eirs[kn])
	h12 := m.point(k2, eirs[k2], heat_t_h1)
	h32 := m.point(k2, eirs[k2], heat_t_h3)
	h22 := frost(h32, h12)

	q_k1_35 := line(heat_t_h2, heat_t_h1, h11.q, heat_t_h0, h01.q)
	p_k1_35 := line(heat_t_h2, heat_t_h1, h11.p, heat_t_h0, h01.p)

	n_q := (h2v.q - q_k1_35) / (h22.q - q_k1_35)
	n_e := (h2v.p - p_k1_35) / (h22.p - p_k1_35)
	m_q := (h01.q-h11.q)/(heat_t_h0-heat_t_h1)*(1.0-n_q) + (h22.q-h32.q)/(heat_t_h2-heat_t_h3)*n_q
	m_e := (h01.p-h11.p)/(heat_t_h0-heat_t_h1)*(1.0-n_e) + (h22.p-h32.p)/(heat_t_h2-heat_t_h3)*n_e

	loads := make([]float64, len(HeatingBinTemps))
	res := make([]bin_result, len(HeatingBinTemps))
	for i, t := range HeatingBinTemps {
		bl := heating_load(t, h1n.q)
		loads[i] = bl

		k1p := heating_point{q: line(t, heat_t_h1, h11.q, heat_t_h0, h01.q), p: line(t, heat_t_h1, h11.p, heat_t_h0, h01.p)}
		k2p := full_line(t, h32, h22, h12)
		kvp := heating_point{q: h2v.q + m_q*(t-heat_t_h2), p: h2v.p + m_e*(t-heat_t_h2)}

		switch {
		case bl <= k1p.q:
			res[i] = m.cycling(t, bl, k1p)
		case bl < k2p.q:
			cop := quadratic_through(
				[3]float64{k1p.q, kvp.q, k2p.q},
				[3]float64{
					k1p.q / (btu_per_wh * k1p.p),
					kvp.q / (btu_per_wh * kvp.p),
					k2p.q / (btu_per_wh * k2p.p),
				},
				bl,
			)
			d := heating_cutoff(t, cop)
			res[i] = bin_result{
				e:  bl / (btu_per_wh * cop) * d,
				rh: bl * (1.0 - d) / btu_per_wh,
			}
		default:
			res[i] = full(t, bl, k2p)
		}
	}
	return hspf_sum(loads, res)
}
