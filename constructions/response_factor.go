package constructions

// 応答係数の初項、指数項別応答係数、公比の計算

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

const nRoot = 12

// 計算時間間隔, s
const rf_interval = 900.0

// ResponseFactor holds the triangular-pulse conduction response of a layer stack.
type ResponseFactor struct {
	_rft0 float64   // 貫流応答係数の初項
	_rfa0 float64   // 吸熱応答係数の初項
	_rft1 []float64 // 指数項別貫流応答係数
	_rfa1 []float64 // 指数項別吸熱応答係数
	_row  []float64 // 公比
}

// 貫流応答係数の初項
func (rf *ResponseFactor) RFT0() float64 { return rf._rft0 }

// 吸熱応答係数の初項
func (rf *ResponseFactor) RFA0() float64 { return rf._rfa0 }

func (rf *ResponseFactor) RFT1() []float64 { return append([]float64(nil), rf._rft1...) }
func (rf *ResponseFactor) RFA1() []float64 { return append([]float64(nil), rf._rfa1...) }
func (rf *ResponseFactor) Row() []float64  { return append([]float64(nil), rf._row...) }

// SteadyTransmission returns RFT0 + Σ RFT1/(1-row), which is 1 for any stack.
func (rf *ResponseFactor) SteadyTransmission() float64 {
	return steady_sum(rf._rft0, rf._rft1, rf._row)
}

// SteadyAbsorption returns RFA0 + Σ RFA1/(1-row), the total resistance, m2K/W.
func (rf *ResponseFactor) SteadyAbsorption() float64 {
	return steady_sum(rf._rfa0, rf._rfa1, rf._row)
}

func steady_sum(rf0 float64, rf1, row []float64) float64 {
	s := rf0
	for i, r := range rf1 {
		if row[i] == 0.0 && r == 0.0 {
			continue
		}
		s += r / (1.0 - row[i])
	}
	return s
}

func pad(v []float64) []float64 {
	out := make([]float64, nRoot)
	copy(out, v)
	return out
}

/*
	Args:
		r: 室内表面から屋外までの熱抵抗, m2K/W

	Returns:
		応答係数
*/
func create_for_steady(r float64) *ResponseFactor {
	return &ResponseFactor{
		_rft0: 1.0,
		_rfa0: r,
		_rft1: make([]float64, nRoot),
		_rfa1: make([]float64, nRoot),
		_row:  make([]float64, nRoot),
	}
}

/*
	応答係数を作成する（地盤以外に用いる）

	裏面に、熱抵抗 r_o をもち、熱容量は 0.0 の層を追加する。
	Args:
		cs: 単位面積あたりの熱容量, J/m2K, [layer数]
		rs: 熱抵抗, m2K/W, [layer数]
		r_o: 室外側熱伝達抵抗, m2K/W
*/
func create_for_unsteady(cs, rs []float64, r_o float64) (*ResponseFactor, error) {
	cs = append(append([]float64(nil), cs...), 0.0)
	rs = append(append([]float64(nil), rs...), r_o)

	// 固定根, 初項 1/(86400*365)、終項 1/600、項数 10
	alpha_m := make([]float64, 10)
	floats.LogSpan(alpha_m, 1.0/(86400.0*365.0), 1.0/600.0)

	return calc_response_factor(cs, rs, alpha_m, true)
}

/*
	応答係数を作成する（地盤用）

	裏面に地盤の層を加える。土壌の計算は吸熱応答のみで行うため、貫流応答は
	初項を1、指数項別応答係数をすべて0とする。
*/
func create_for_unsteady_ground(cs, rs []float64) (*ResponseFactor, error) {
	cs = append(append([]float64(nil), cs...), 3300.0*3.0*1000.0)
	rs = append(append([]float64(nil), rs...), 3.0/1.0)

	rf, err := calc_response_factor(cs, rs, ground_alpha_m, false)
	if err != nil {
		return nil, err
	}
	rf._rft0 = 1.0
	rf._rft1 = make([]float64, nRoot)
	return rf, nil
}

// 地盤の固定根
var ground_alpha_m = []float64{
	1.05699306612549e-08,
	3.27447457677204e-08,
	1.01440436059147e-07,
	3.14253839100315e-07,
	9.73531652917036e-07,
	3.01591822058485e-06,
	9.34305801562961e-06,
	2.89439987091205e-05,
	8.96660450863221e-05,
	2.77777777777778e-04,
}

// ラプラス変数の設定
// alp: 固定根
func get_laps(alp []float64) []float64 {
	n := len(alp) * 2
	laps := make([]float64, n)

	for i := 1; i <= n; i++ {
		if i%2 == 0 {
			// 偶数番目はαをそのまま入力
			laps[i-1] = alp[(i-1)/2]
		} else if i == 1 {
			// 最初はα1/√(α2/α1）とする
			laps[i-1] = alp[0] / math.Sqrt(alp[1]/alp[0])
		} else {
			// それ以外は等比数列で補間
			l := (i - 1) / 2
			laps[i-1] = alp[l] / math.Sqrt(alp[l]/alp[l-1])
		}
	}

	return laps
}

/*
	四端子行列から伝達関数を計算する。

	Args:
		cs: 層の熱容量, J/m2K
		rs: 層の熱抵抗, m2K/W
		lap: ラプラス変数, 1/s

	Returns:
		吸熱伝達関数, 貫流伝達関数
*/
func transfer_function(cs, rs []float64, lap float64) (float64, float64) {
	ft := mat.NewDense(2, 2, []float64{1.0, 0.0, 0.0, 1.0})
	for k, r := range rs {
		c := cs[k]

		var fi *mat.Dense
		if math.Abs(c) < 0.001 {
			// 定常部位（空気層等）の場合
			fi = mat.NewDense(2, 2, []float64{1.0, r, 0.0, 1.0})
		} else {
			t := math.Sqrt(r * c * lap)
			fi = mat.NewDense(2, 2, []float64{
				math.Cosh(t), r / t * math.Sinh(t),
				t / r * math.Sinh(t), math.Cosh(t),
			})
		}
		ft.Mul(ft, fi)
	}

	return ft.At(0, 1) / ft.At(1, 1), 1.0 / ft.At(1, 1)
}

// solve tolerates an ill-conditioned system, the fit stays usable.
func solve(u *mat.Dense, b *mat.VecDense) (*mat.VecDense, error) {
	var x mat.VecDense
	if err := x.SolveVec(u, b); err != nil {
		var cond mat.Condition
		if !errors.As(err, &cond) {
			return nil, fmt.Errorf("constructions: response factor fit: %w", err)
		}
	}
	return &x, nil
}

/*
	壁体の単位応答を最小二乗法で求める。

	Args:
		cs: 熱容量, J/m2K, [layer数]
		rs: 熱抵抗, m2K/W, [layer数]
		laps: ラプラス変数
		alp: 固定根
		weighted: ラプラス変数の二乗で重み付けするか

	Returns:
		単位貫流応答の初項, 単位吸熱応答の初項, 貫流伝達関数の係数, 吸熱伝達関数の係数
*/
func step_response(cs, rs, laps, alp []float64, weighted bool) (float64, float64, []float64, []float64, error) {
	nlaps, nroot := len(laps), len(alp)

	at0 := 1.0
	aa0 := floats.Sum(rs)

	ga := mat.NewVecDense(nlaps, nil)
	gt := mat.NewVecDense(nlaps, nil)
	f := mat.NewDense(nlaps, nroot, nil)
	w := mat.NewDiagDense(nlaps, nil)
	for i, lap := range laps {
		a, t := transfer_function(cs, rs, lap)
		ga.SetVec(i, a-aa0)
		gt.SetVec(i, t-at0)
		for j, root := range alp {
			f.Set(i, j, lap/(lap+root))
		}
		if weighted {
			w.SetDiag(i, lap*lap)
		} else {
			w.SetDiag(i, 1.0)
		}
	}

	// 正規方程式 F'WF a = F'W g
	var fw, u mat.Dense
	fw.Mul(f.T(), w)
	u.Mul(&fw, f)

	var ca, ct mat.VecDense
	ca.MulVec(&fw, ga)
	ct.MulVec(&fw, gt)

	aa, err := solve(&u, &ca)
	if err != nil {
		return 0, 0, nil, nil, err
	}
	at, err := solve(&u, &ct)
	if err != nil {
		return 0, 0, nil, nil, err
	}

	return at0, aa0, at.RawVector().Data, aa.RawVector().Data, nil
}

// 二等辺三角波励振の応答係数の初項、指数項別応答係数、公比
func calc_response_factor(cs, rs, alp []float64, weighted bool) (*ResponseFactor, error) {
	laps := get_laps(alp)

	at0, aa0, at, aa, err := step_response(cs, rs, laps, alp, weighted)
	if err != nil {
		return nil, err
	}

	n := len(alp)
	rft1 := make([]float64, n)
	rfa1 := make([]float64, n)
	row := make([]float64, n)
	rft0, rfa0 := at0, aa0
	for k, a := range alp {
		d := a * rf_interval
		e := math.Exp(-d)
		rft0 += at[k] * (1.0 - e) / d
		rfa0 += aa[k] * (1.0 - e) / d
		rft1[k] = -at[k] * (1.0 - e) * (1.0 - e) / d
		rfa1[k] = -aa[k] * (1.0 - e) * (1.0 - e) / d
		row[k] = e
	}

	return &ResponseFactor{
		_rft0: rft0,
		_rfa0: rfa0,
		_rft1: pad(rft1),
		_rfa1: pad(rfa1),
		_row:  pad(row),
	}, nil
}
