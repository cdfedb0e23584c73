package hvac

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"

	"envelope_hvac_calc/mathtools"
	"envelope_hvac_calc/units"
)

type EquipmentSuite struct {
	suite.Suite
}

func TestEquipmentSuite(t *testing.T) {
	suite.Run(t, new(EquipmentSuite))
}

func (s *EquipmentSuite) central_ac(speeds int, tons float64) *CentralAirConditioner {
	p, err := DefaultCentralACParams(speeds)
	s.Require().NoError(err)
	p.NominalTons = tons
	p.Solver.Logger = quiet()
	ac, err := NewCentralAirConditioner(p)
	s.Require().NoError(err)
	return ac
}

func (s *EquipmentSuite) heat_pump(speeds int, tons float64) *AirSourceHeatPump {
	p, err := DefaultHeatPumpParams(speeds)
	s.Require().NoError(err)
	p.NominalTons = tons
	p.SupplementalKBtuh = 10.0
	p.Solver.Logger = quiet()
	hp, err := NewAirSourceHeatPump(p)
	s.Require().NoError(err)
	return hp
}

func (s *EquipmentSuite) TestSpeedCounts() {
	for _, n := range []int{1, 2, 4} {
		ac := s.central_ac(n, 0)
		s.Len(ac.Cooling.Speeds, n)
		s.Empty(ac.Warnings())

		hp := s.heat_pump(n, 0)
		s.Len(hp.Cooling.Speeds, n)
		s.Len(hp.Heating.Speeds, n)
		s.Empty(hp.Warnings())
	}
}

func (s *EquipmentSuite) TestSingleSpeedRatedValues() {
	ac := s.central_ac(1, 0)
	s.InDelta(11.2196, ac.Cooling.Solution.Value, 0.01)
	s.InDelta(ac.Cooling.Solution.Value, ac.Cooling.Speeds[0].RatedNet, 1e-12)
	s.Equal(0.07, ac.Cooling.CD)
	s.InDelta(386.1, ac.Cooling.Speeds[0].CFMPerTon, 1e-9)

	hp := s.heat_pump(1, 0)
	s.InDelta(3.1173, hp.Heating.Solution.Value, 0.01)
	s.Equal(0.11, hp.Heating.CD)
	s.Greater(hp.Heating.Speeds[0].GrossCOP, hp.Heating.Speeds[0].RatedNet)
	s.Greater(hp.Cooling.Speeds[0].GrossCOP*3.412, hp.Cooling.Speeds[0].RatedNet)
}

func (s *EquipmentSuite) TestCoilBounds() {
	for _, n := range []int{1, 2, 4} {
		ac := s.central_ac(n, 3.0)
		for i, spd := range ac.Cooling.Speeds {
			s.GreaterOrEqual(spd.SHR, min_shr, "speed %d", i)
			s.LessOrEqual(spd.SHR, MaxSHR(spd.CFMPerTon)+1e-12, "speed %d", i)
			s.Greater(spd.BypassFactor, 0.0, "speed %d", i)
			s.Less(spd.BypassFactor, 1.0, "speed %d", i)
			s.Greater(spd.AoFactor, 0.0, "speed %d", i)
		}
	}
}

func (s *EquipmentSuite) TestSizing() {
	ac := s.central_ac(2, 3.0)
	low, high := ac.Cooling.Speeds[0], ac.Cooling.Speeds[1]
	s.InDelta(units.BtuhToW(36000.0), high.GrossCapacity, 1e-6)
	s.InDelta(0.72*high.GrossCapacity, low.GrossCapacity, 1e-6)
	s.InDelta(units.CfmToM3s(355.2*3.0), high.Airflow, 1e-9)
	s.InDelta(high.Airflow, ac.Fan.Airflow, 1e-12)

	unsized := s.central_ac(2, 0)
	s.Zero(unsized.Cooling.Speeds[1].GrossCapacity)
	s.Zero(unsized.Fan.Airflow)
}

func (s *EquipmentSuite) TestCapacityDerate() {
	p, err := DefaultCentralACParams(1)
	s.Require().NoError(err)
	p.NominalTons = 2.0
	p.Cooling.CapacityDerate = []float64{0.1}
	p.Solver.Logger = quiet()
	ac, err := NewCentralAirConditioner(p)
	s.Require().NoError(err)

	ref := s.central_ac(1, 2.0)
	s.InDelta(0.9*ref.Cooling.Speeds[0].GrossCapacity, ac.Cooling.Speeds[0].GrossCapacity, 1e-6)
	s.InDelta(ref.Cooling.Speeds[0].RatedNet, ac.Cooling.Speeds[0].RatedNet, 1e-12)
	s.InDelta(ref.Cooling.Speeds[0].Airflow, ac.Cooling.Speeds[0].Airflow, 1e-12)
}

func (s *EquipmentSuite) TestFan() {
	ac := s.central_ac(1, 0)
	s.InDelta(0.1176, ac.Fan.Efficiency, 1e-3)
	s.InDelta(units.InH2OToPa(0.5), ac.Fan.StaticPressure, 1e-12)

	f := NewFan(0.3, []float64{0.5, 1.0}, 1200.0)
	s.InDelta(360.0, f.Power(1.0), 1e-9)
	s.InDelta(180.0, f.Power(0.5), 1e-9)
	s.Zero(NewFan(0.0, nil, 0.0).Efficiency)
}

func (s *EquipmentSuite) TestHeatPumpDescriptors() {
	hp := s.heat_pump(4, 3.0)
	s.Equal(mathtools.CurveBiquadratic, hp.Defrost.Kind)
	s.InDelta(0.1528, hp.Defrost.Evaluate(5.0, 2.0), 1e-12)
	s.InDelta(units.BtuhToW(10000.0), hp.Supplemental.Capacity, 1e-9)
	s.InDelta(units.FToC(40.0), hp.Supplemental.MaxTemp, 1e-12)
	s.InDelta(units.FToC(0.0), hp.MinOutdoorTemp, 1e-12)
	s.Equal(20.0, hp.Crankcase.Power)

	// nominal heating speed is 3 of 4 and the fan sizes on the largest flow
	s.InDelta(hp.Heating.Solution.Value, hp.Heating.Speeds[2].RatedNet, 1e-12)
	s.InDelta(hp.Heating.Speeds[3].Airflow, hp.Fan.Airflow, 1e-12)
	s.Len(hp.Fan.SpeedRatios, 4)

	spd := hp.Heating.Speeds[0]
	s.Equal("HP_Heat-Cap-fT1", spd.CapFT.Name)
	s.Equal(mathtools.CurveQuadratic, spd.PLF.Kind)
	s.InDelta(1.0, spd.PLF.Evaluate(1.0, 0), 1e-12)
	s.InDelta(1.0-hp.Heating.CD, spd.PLF.Evaluate(0.0, 0), 1e-12)
}

func (s *EquipmentSuite) TestCurvesInSI() {
	ac := s.central_ac(1, 0)
	c := ac.Cooling.Speeds[0].EIRFT
	ip := mathtools.Biquadratic(67.0, 82.0, CoolEIRFTSpec1[0])
	s.InDelta(ip, c.Evaluate(units.FToC(67.0), units.FToC(82.0)), 1e-9)
	s.Equal("Cool-EIR-fT1", c.Name)
}

func (s *EquipmentSuite) TestHeatPumpCoolingSharesCurves() {
	for _, n := range []int{1, 2, 4} {
		ac := s.central_ac(n, 0)
		hp := s.heat_pump(n, 0)
		s.Require().Len(hp.Cooling.Speeds, n)
		for i := range ac.Cooling.Speeds {
			s.Equal(ac.Cooling.Speeds[i].CapFT, hp.Cooling.Speeds[i].CapFT, "%d speed", n)
			s.Equal(ac.Cooling.Speeds[i].EIRFT, hp.Cooling.Speeds[i].EIRFT, "%d speed", n)
		}
	}

	// only the two-speed low stage tells them apart
	curves, err := CoolingCurves(2)
	s.Require().NoError(err)
	m := CoolingModel{
		Speeds:         2,
		FanPower:       0.14,
		CapacityRatios: []float64{0.72, 1.0},
		FanSpeedRatios: []float64{0.86, 1.0},
		CapFT:          curves.CapFT,
		EIRFT:          curves.EIRFT,
	}
	ac_eers := m.SpeedEERs(12.0)
	m.HeatPump = true
	hp_eers := m.SpeedEERs(12.0)
	s.Equal(ac_eers[1], hp_eers[1])
	s.NotEqual(ac_eers[0], hp_eers[0])
}

func (s *EquipmentSuite) TestFallbackWarnings() {
	p, err := DefaultHeatPumpParams(1)
	s.Require().NoError(err)
	p.Solver = SolverOptions{MaxIter: 1, Logger: quiet()}
	hp, err := NewAirSourceHeatPump(p)
	s.Require().NoError(err)

	ws := hp.Warnings()
	s.Require().Len(ws, 2)
	s.Equal("SEER", ws[0].Rating)
	s.Equal("HSPF", ws[1].Rating)
	s.InDelta(FallbackCOP(7.7), hp.Heating.Solution.Value, 1e-12)
	for _, w := range ws {
		s.True(errors.Is(w, ErrNotConverged))
	}
}

func (s *EquipmentSuite) TestInputErrors() {
	p, err := DefaultCentralACParams(2)
	s.Require().NoError(err)
	p.Cooling.SHR = []float64{0.7}
	_, err = NewCentralAirConditioner(p)
	s.ErrorIs(err, ErrInvalidInput)
	var ie *InputError
	s.Require().True(errors.As(err, &ie))
	s.Equal("shr", ie.Field)

	p, _ = DefaultCentralACParams(1)
	p.Cooling.Speeds = 3
	_, err = NewCentralAirConditioner(p)
	s.ErrorIs(err, ErrSpeeds)

	p, _ = DefaultCentralACParams(1)
	p.Cooling.SEER = -1.0
	_, err = NewCentralAirConditioner(p)
	s.ErrorIs(err, ErrInvalidInput)

	p, _ = DefaultCentralACParams(1)
	p.NominalTons = -2.0
	_, err = NewCentralAirConditioner(p)
	s.ErrorIs(err, ErrInvalidInput)

	hp, _ := DefaultHeatPumpParams(1)
	hp.SupplementalEfficiency = 0.0
	_, err = NewAirSourceHeatPump(hp)
	s.ErrorIs(err, ErrInvalidInput)

	_, err = DefaultHeatPumpParams(5)
	s.ErrorIs(err, ErrSpeeds)
}
