package main

import (
	"bytes"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gocarina/gocsv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"envelope_hvac_calc/constructions"
	"envelope_hvac_calc/hvac"
)

const sampleJob = `
assemblies:
  - name: Exterior Wall
    type: wood_stud_wall
    params:
      cavity_r: 19
      cavity_depth_in: 5.5
      framing_factor: 0.22
    surfaces:
      - name: north
      - name: south
  - name: Garage Partition
    type: wood_stud_wall
    surfaces:
      - name: garage wall
        adjacent: garage wall back
  - name: Floor
    type: slab
    ground: true
  - type: generic_wall
    layers:
      - {name: Brick, thick_in: 4, k_in: 5.0, rho: 120, cp: 0.2}
      - {name: Board, thick_in: 1, k_in: 0.2, rho: 2, cp: 0.29}
equipment:
  - name: AC
    type: central_ac
    params:
      cooling:
        seer: 14
      nominal_tons: 3
  - name: HP
    type: heat_pump
    speeds: 2
`

func quiet() *log.Logger { return log.New(io.Discard, "", 0) }

func TestParseJob(t *testing.T) {
	job, err := ParseJob([]byte(sampleJob))
	require.NoError(t, err)
	require.Len(t, job.Assemblies, 4)
	require.Len(t, job.Equipment, 2)

	assert.Equal(t, "generic_wall 4", job.Assemblies[3].Name)
	assert.Equal(t, 1, job.Equipment[0].Speeds)
	assert.Equal(t, 2, job.Equipment[1].Speeds)
	assert.True(t, job.Assemblies[2].Ground)
	assert.Equal(t, "garage wall back", job.Assemblies[1].Surfaces[0].Adjacent)
}

func TestLoadJob(t *testing.T) {
	path := filepath.Join(t.TempDir(), "job.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleJob), 0o644))
	job, err := LoadJob(path)
	require.NoError(t, err)
	assert.Len(t, job.Assemblies, 4)

	_, err = LoadJob(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestParseJobErrors(t *testing.T) {
	_, err := ParseJob([]byte("assemblies: []\n"))
	assert.ErrorIs(t, err, ErrEmptyJob)

	_, err = ParseJob([]byte("assemblies: [\n"))
	assert.Error(t, err)
}

func TestParamsOverlayDefaults(t *testing.T) {
	job, err := ParseJob([]byte(sampleJob))
	require.NoError(t, err)

	wall, err := job.Assemblies[0].Build()
	require.NoError(t, err)
	r19, err := wall.AssemblyRValue()
	require.NoError(t, err)

	p := constructions.DefaultWoodStudWallParams()
	p.CavityR, p.CavityDepthIn, p.FramingFactor = 19.0, 5.5, 0.22
	ref, err := constructions.WoodStudWall("ref", p)
	require.NoError(t, err)
	r_ref, err := ref.AssemblyRValue()
	require.NoError(t, err)
	assert.InDelta(t, r_ref, r19, 1e-12)

	def, err := job.Assemblies[1].Build()
	require.NoError(t, err)
	r13, err := def.AssemblyRValue()
	require.NoError(t, err)
	assert.Less(t, r13, r19)

	eq, err := job.Equipment[0].Build(hvac.SolverOptions{Logger: quiet()})
	require.NoError(t, err)
	ac, ok := eq.(*hvac.CentralAirConditioner)
	require.True(t, ok)
	assert.Equal(t, "AC", ac.Name)
	assert.Equal(t, 14.0, ac.Cooling.Rating)
	// fields absent from the job keep their defaults
	assert.Equal(t, 0.5, ac.Fan.PowerPerCFM)
	assert.InDelta(t, 386.1, ac.Cooling.Speeds[0].CFMPerTon, 1e-9)
	assert.Greater(t, ac.Cooling.Speeds[0].GrossCapacity, 0.0)
}

func TestUnknownTypes(t *testing.T) {
	_, err := AssemblyJob{Name: "x", Type: "strawbale_wall"}.Build()
	assert.ErrorIs(t, err, ErrUnknownAssembly)

	_, err = EquipmentJob{Name: "x", Type: "boiler", Speeds: 1}.Build(hvac.SolverOptions{Logger: quiet()})
	assert.ErrorIs(t, err, ErrUnknownEquipment)

	_, err = EquipmentJob{Type: "central_ac", Speeds: 3}.Build(hvac.SolverOptions{Logger: quiet()})
	assert.ErrorIs(t, err, hvac.ErrSpeeds)
}

func TestInvalidParams(t *testing.T) {
	job, err := ParseJob([]byte(`
assemblies:
  - name: Bad
    type: wood_stud_wall
    params:
      framing_factor: 1.5
`))
	require.NoError(t, err)
	report := run(job, quiet())
	assert.Empty(t, report.Assemblies)
	require.Len(t, report.Failures, 1)
	f := report.Failures[0]
	assert.Equal(t, "assembly", f.Section)
	assert.Equal(t, "Bad", f.Name)
	assert.Equal(t, "invalid_input", f.Kind)
	assert.ErrorIs(t, f.Err, constructions.ErrInvalidInput)
}

func TestRunContinuesPastFailures(t *testing.T) {
	job, err := ParseJob([]byte(`
assemblies:
  - name: Bad
    type: wood_stud_wall
    params:
      framing_factor: 1.5
  - name: Good
    type: generic_wall
    layers:
      - {name: Brick, thick_in: 4, k_in: 5.0, rho: 120, cp: 0.2}
  - name: Odd
    type: strawbale_wall
  - name: Typo
    type: sip_wall
    params:
      sip_thick_in: [1, 2]
equipment:
  - name: Three
    type: central_ac
    speeds: 3
  - name: AC
    type: central_ac
`))
	require.NoError(t, err)
	report := run(job, quiet())

	require.Len(t, report.Assemblies, 1)
	assert.Equal(t, "Good", report.Assemblies[0].Name)
	assert.Greater(t, report.Assemblies[0].RValueIP, 0.0)
	require.Len(t, report.Coils, 1)
	assert.Equal(t, "AC", report.Coils[0].System)

	require.Len(t, report.Failures, 4)
	kinds := map[string]string{}
	for _, f := range report.Failures {
		kinds[f.Name] = f.Kind
	}
	assert.Equal(t, map[string]string{
		"Bad":   "invalid_input",
		"Odd":   "unknown_type",
		"Typo":  "params",
		"Three": "speeds",
	}, kinds)
	assert.ErrorIs(t, report.Failures[3].Err, hvac.ErrSpeeds)

	var buf bytes.Buffer
	require.NoError(t, report.WriteText(&buf, 2))
	out := buf.String()
	assert.Contains(t, out, "Good [generic_wall]")
	assert.Contains(t, out, "ERRORS (4):")
	assert.Contains(t, out, "assembly Bad [wood_stud_wall] invalid_input")

	buf.Reset()
	require.NoError(t, report.WriteCSV(&buf, 3))
	parts := strings.Split(buf.String(), "\n\n")
	require.Len(t, parts, 3)
	var failures []FailureRow
	require.NoError(t, gocsv.UnmarshalString(parts[2], &failures))
	require.Len(t, failures, 4)
	assert.Equal(t, "equipment", failures[3].Section)
	assert.Equal(t, "Three", failures[3].Name)
}

func TestRun(t *testing.T) {
	job, err := ParseJob([]byte(sampleJob))
	require.NoError(t, err)

	report := run(job, quiet())
	require.Len(t, report.Assemblies, 4)
	assert.Empty(t, report.Failures)

	ext := report.Assemblies[0]
	assert.Equal(t, 2, ext.Surfaces)
	assert.Less(t, ext.HostLayers, ext.Layers)
	assert.InDelta(t, 1.0/ext.UFactorSI, ext.RValueIP*0.1761101838, 1e-6)
	assert.Greater(t, ext.RFA0, 0.0)

	assert.Equal(t, 2, report.Assemblies[1].Surfaces)
	assert.Greater(t, report.Materials, 0)

	// 1 cooling speed for the AC, 2 cooling and 2 heating for the heat pump
	require.Len(t, report.Coils, 5)
	assert.Equal(t, "heating", report.Coils[4].Mode)
	assert.Empty(t, report.Warnings)
	for _, c := range report.Coils {
		assert.True(t, c.Converged)
		assert.Greater(t, c.RatedNet, 0.0)
	}
}

func TestWriteText(t *testing.T) {
	job, err := ParseJob([]byte(sampleJob))
	require.NoError(t, err)
	report := run(job, quiet())

	var buf bytes.Buffer
	require.NoError(t, report.WriteText(&buf, 2))
	out := buf.String()
	assert.Contains(t, out, "ASSEMBLIES (4")
	assert.Contains(t, out, "Exterior Wall [wood_stud_wall]")
	assert.Contains(t, out, "AC cooling speed 1: EER ")
	assert.Contains(t, out, "HP heating speed 2: COP ")
	assert.NotContains(t, out, "WARNINGS")
}

func TestWriteCSV(t *testing.T) {
	job, err := ParseJob([]byte(sampleJob))
	require.NoError(t, err)
	report := run(job, quiet())

	var buf bytes.Buffer
	require.NoError(t, report.WriteCSV(&buf, 3))
	parts := strings.SplitN(buf.String(), "\n\n", 2)
	require.Len(t, parts, 2)

	var rows []AssemblyRow
	require.NoError(t, gocsv.UnmarshalString(parts[0], &rows))
	require.Len(t, rows, 4)
	assert.Equal(t, "Exterior Wall", rows[0].Name)
	assert.InDelta(t, report.Assemblies[0].RValueIP, rows[0].RValueIP, 5e-4)

	var coils []CoilRow
	require.NoError(t, gocsv.UnmarshalString(parts[1], &coils))
	require.Len(t, coils, 5)
	assert.Equal(t, "HP", coils[1].System)
}

func TestRatingEquipment(t *testing.T) {
	eq, err := rating_equipment("heat_pump", 1, 13.0, 7.7, hvac.SolverOptions{Logger: quiet()})
	require.NoError(t, err)
	hp := eq.(*hvac.AirSourceHeatPump)
	assert.InDelta(t, 11.2196, hp.Cooling.Solution.Value, 0.05)
	assert.InDelta(t, 3.1173, hp.Heating.Solution.Value, 0.01)

	_, err = rating_equipment("furnace", 1, 0, 0, hvac.SolverOptions{})
	assert.ErrorIs(t, err, ErrUnknownEquipment)
}
