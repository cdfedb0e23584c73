package main

import (
	"fmt"
	"log"

	"envelope_hvac_calc/constructions"
	"envelope_hvac_calc/hvac"
	"envelope_hvac_calc/units"
)

// jobSurface is a named host surface collected from the job file.
type jobSurface struct {
	name         string
	construction *constructions.HostConstruction
	adjacent     *jobSurface
}

func (s *jobSurface) SetConstruction(c *constructions.HostConstruction) { s.construction = c }

func (s *jobSurface) AdjacentSurface() constructions.Surface {
	if s.adjacent == nil {
		return nil
	}
	return s.adjacent
}

func surfaces_of(a AssemblyJob) ([]constructions.Surface, []*jobSurface) {
	var ss []constructions.Surface
	var all []*jobSurface
	for _, sj := range a.Surfaces {
		s := &jobSurface{name: sj.Name}
		if sj.Adjacent != "" {
			s.adjacent = &jobSurface{name: sj.Adjacent}
			all = append(all, s.adjacent)
		}
		ss = append(ss, s)
		all = append(all, s)
	}
	return ss, all
}

/*
run はジョブに含まれる外皮と設備を順に計算する

	Args:
		job: ジョブ
		logger: ログの出力先

	Returns:
		*Report

	Notes:
		外皮は全て一つの MaterialCache を共有する。
		構築に失敗した外皮・設備は Report.Failures に記録して読み飛ばし、残りの計算を続ける。
*/
func run(job *Job, logger *log.Logger) *Report {
	report := &Report{}
	cache := constructions.NewMaterialCache()

	// 室外側熱伝達抵抗, m2K/W
	r_o := units.RIPToSI(constructions.AirFilmOutside().RValue())

	for _, a := range job.Assemblies {
		logger.Printf("assembly `%s` (%s)", a.Name, a.Type)
		row, err := build_assembly(a, cache, r_o)
		if err != nil {
			logger.Printf("assembly `%s` skipped: %v", a.Name, err)
			report.add_failure("assembly", a.Name, a.Type, err)
			continue
		}
		report.Assemblies = append(report.Assemblies, *row)
	}
	report.Materials = cache.Len()
	logger.Printf("%d unique host materials", report.Materials)

	opts := hvac.SolverOptions{Logger: logger}
	for _, e := range job.Equipment {
		logger.Printf("equipment `%s` (%s, %d speed)", e.Name, e.Type, e.Speeds)
		eq, err := e.Build(opts)
		if err != nil {
			logger.Printf("equipment `%s` skipped: %v", e.Name, err)
			report.add_failure("equipment", e.Name, e.Type, err)
			continue
		}
		report.add_equipment(eq)
	}
	return report
}

// build_assembly builds one assembly, assigns it to its surfaces and computes
// its response factors.
func build_assembly(a AssemblyJob, cache *constructions.MaterialCache, r_o float64) (*AssemblyRow, error) {
	c, err := a.Build()
	if err != nil {
		return nil, err
	}
	r_ip, err := c.AssemblyRValue()
	if err != nil {
		return nil, err
	}

	surfaces, all := surfaces_of(a)
	host, err := c.CreateAndAssignConstructions(surfaces, cache)
	if err != nil {
		return nil, err
	}

	var rf *constructions.ResponseFactor
	if a.Ground {
		rf, err = host.GroundResponseFactor()
	} else {
		rf, err = host.ResponseFactor(r_o)
	}
	if err != nil {
		return nil, fmt.Errorf("response factor: %w", err)
	}

	assigned := 0
	for _, s := range all {
		if s.construction != nil {
			assigned++
		}
	}
	return &AssemblyRow{
		Name:       a.Name,
		Type:       a.Type,
		RValueIP:   r_ip,
		UFactorSI:  1.0 / units.RIPToSI(r_ip),
		Layers:     len(c.Layers()),
		HostLayers: len(host.Layers),
		RFT0:       rf.RFT0(),
		RFA0:       rf.RFA0(),
		Surfaces:   assigned,
	}, nil
}
