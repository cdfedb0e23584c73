package main

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"envelope_hvac_calc/constructions"
	"envelope_hvac_calc/hvac"
)

var (
	ErrUnknownAssembly  = errors.New("job: unknown assembly type")
	ErrUnknownEquipment = errors.New("job: unknown equipment type")
	ErrEmptyJob         = errors.New("job: no assemblies or equipment")
	ErrParams           = errors.New("job: params")
)

// Job is one calculation request read from a YAML file.
type Job struct {
	Assemblies []AssemblyJob  `yaml:"assemblies"`
	Equipment  []EquipmentJob `yaml:"equipment"`
}

// SurfaceJob names a host surface and, for interior partitions, the surface
// on its other side.
type SurfaceJob struct {
	Name     string `yaml:"name"`
	Adjacent string `yaml:"adjacent"`
}

// AssemblyJob is an envelope assembly. Params overrides the type's defaults
// field by field.
type AssemblyJob struct {
	Name     string                       `yaml:"name"`
	Type     string                       `yaml:"type"`
	Params   yaml.Node                    `yaml:"params"`
	Layers   []constructions.GenericLayer `yaml:"layers"` // generic_wall only
	Surfaces []SurfaceJob                 `yaml:"surfaces"`
	Ground   bool                         `yaml:"ground"`
}

// EquipmentJob is a central air conditioner or heat pump.
type EquipmentJob struct {
	Name   string    `yaml:"name"`
	Type   string    `yaml:"type"`
	Speeds int       `yaml:"speeds"`
	Params yaml.Node `yaml:"params"`
}

/*
LoadJob は YAML のジョブファイルを読み込む

	Args:
		path: ジョブファイルへのパス

	Returns:
		*Job
*/
func LoadJob(path string) (*Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("job: %w", err)
	}
	return ParseJob(data)
}

// ParseJob decodes a job document.
func ParseJob(data []byte) (*Job, error) {
	var job Job
	if err := yaml.Unmarshal(data, &job); err != nil {
		return nil, fmt.Errorf("job: %w", err)
	}
	if len(job.Assemblies) == 0 && len(job.Equipment) == 0 {
		return nil, ErrEmptyJob
	}
	for i := range job.Assemblies {
		if job.Assemblies[i].Name == "" {
			job.Assemblies[i].Name = fmt.Sprintf("%s %d", job.Assemblies[i].Type, i+1)
		}
	}
	for i := range job.Equipment {
		if job.Equipment[i].Speeds == 0 {
			job.Equipment[i].Speeds = 1
		}
	}
	return &job, nil
}

// decode overlays the params node on the defaults already in v.
func decode(n *yaml.Node, v interface{}) error {
	if n.Kind == 0 {
		return nil
	}
	if err := n.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", ErrParams, err)
	}
	return nil
}

// Build constructs the assembly with its params laid over the defaults.
func (a AssemblyJob) Build() (*constructions.Construction, error) {
	switch a.Type {
	case "wood_stud_wall":
		p := constructions.DefaultWoodStudWallParams()
		if err := decode(&a.Params, &p); err != nil {
			return nil, err
		}
		return constructions.WoodStudWall(a.Name, p)
	case "double_stud_wall":
		p := constructions.DefaultDoubleStudWallParams()
		if err := decode(&a.Params, &p); err != nil {
			return nil, err
		}
		return constructions.DoubleStudWall(a.Name, p)
	case "steel_stud_wall":
		p := constructions.DefaultSteelStudWallParams()
		if err := decode(&a.Params, &p); err != nil {
			return nil, err
		}
		return constructions.SteelStudWall(a.Name, p)
	case "cmu_wall":
		p := constructions.DefaultCMUWallParams()
		if err := decode(&a.Params, &p); err != nil {
			return nil, err
		}
		return constructions.CMUWall(a.Name, p)
	case "sip_wall":
		p := constructions.DefaultSIPWallParams()
		if err := decode(&a.Params, &p); err != nil {
			return nil, err
		}
		return constructions.SIPWall(a.Name, p)
	case "icf_wall":
		p := constructions.DefaultICFWallParams()
		if err := decode(&a.Params, &p); err != nil {
			return nil, err
		}
		return constructions.ICFWall(a.Name, p)
	case "generic_wall":
		return constructions.GenericWall(a.Name, a.Layers)
	case "finished_roof":
		p := constructions.DefaultFinishedRoofParams()
		if err := decode(&a.Params, &p); err != nil {
			return nil, err
		}
		return constructions.FinishedRoof(a.Name, p)
	case "unfinished_attic_floor":
		p := constructions.DefaultUnfinishedAtticFloorParams()
		if err := decode(&a.Params, &p); err != nil {
			return nil, err
		}
		return constructions.UnfinishedAtticFloor(a.Name, p)
	case "joist_floor":
		p := constructions.DefaultJoistFloorParams()
		if err := decode(&a.Params, &p); err != nil {
			return nil, err
		}
		return constructions.JoistFloor(a.Name, p)
	case "slab":
		p := constructions.DefaultSlabParams()
		if err := decode(&a.Params, &p); err != nil {
			return nil, err
		}
		return constructions.Slab(a.Name, p)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownAssembly, a.Type)
}

// Equipment is an assembled system ready for reporting.
type Equipment interface {
	Warnings() []*hvac.ConvergenceWarning
}

// Build assembles the system, sending solver logs to opts.Logger.
func (e EquipmentJob) Build(opts hvac.SolverOptions) (Equipment, error) {
	switch e.Type {
	case "central_ac":
		p, err := hvac.DefaultCentralACParams(e.Speeds)
		if err != nil {
			return nil, err
		}
		if err := decode(&e.Params, &p); err != nil {
			return nil, err
		}
		if e.Name != "" {
			p.Name = e.Name
		}
		p.Solver = opts
		ac, err := hvac.NewCentralAirConditioner(p)
		if err != nil {
			return nil, err
		}
		return ac, nil
	case "heat_pump":
		p, err := hvac.DefaultHeatPumpParams(e.Speeds)
		if err != nil {
			return nil, err
		}
		if err := decode(&e.Params, &p); err != nil {
			return nil, err
		}
		if e.Name != "" {
			p.Name = e.Name
		}
		p.Solver = opts
		hp, err := hvac.NewAirSourceHeatPump(p)
		if err != nil {
			return nil, err
		}
		return hp, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownEquipment, e.Type)
}
