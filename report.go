package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"

	"envelope_hvac_calc/constructions"
	"envelope_hvac_calc/hvac"
	"envelope_hvac_calc/units"
)

// AssemblyRow is one envelope assembly of the report.
type AssemblyRow struct {
	Name       string  `csv:"name"`
	Type       string  `csv:"type"`
	RValueIP   float64 `csv:"r_value_ip"`  // hr-ft2-F/Btu, films included
	UFactorSI  float64 `csv:"u_factor_si"` // W/m2-K
	Layers     int     `csv:"layers"`
	HostLayers int     `csv:"host_layers"`
	RFT0       float64 `csv:"rft0"`
	RFA0       float64 `csv:"rfa0"`
	Surfaces   int     `csv:"surfaces"`
}

// CoilRow is one compressor speed of an assembled system.
type CoilRow struct {
	System       string  `csv:"system"`
	Mode         string  `csv:"mode"`
	Speed        int     `csv:"speed"`
	Rating       float64 `csv:"rating"` // SEER or HSPF
	RatedNet     float64 `csv:"rated_net"`
	GrossCOP     float64 `csv:"gross_cop"`
	CFMPerTon    float64 `csv:"cfm_per_ton"`
	SHR          float64 `csv:"shr"`
	BypassFactor float64 `csv:"bypass_factor"`
	CapacityKW   float64 `csv:"capacity_kw"`
	Converged    bool    `csv:"converged"`
}

// FailureRow is an assembly or system that could not be built. The rest of
// the job is still reported.
type FailureRow struct {
	Section string `csv:"section"` // assembly or equipment
	Name    string `csv:"name"`
	Type    string `csv:"type"`
	Kind    string `csv:"kind"`
	Message string `csv:"error"`
	Err     error  `csv:"-"`
}

// Report collects the results of a job.
type Report struct {
	Assemblies []AssemblyRow
	Coils      []CoilRow
	Failures   []FailureRow
	Materials  int
	Warnings   []*hvac.ConvergenceWarning
}

// failure_kind classifies err for the report.
func failure_kind(err error) string {
	var ve *constructions.ValidationError
	switch {
	case errors.As(err, &ve):
		return "validation"
	case errors.Is(err, constructions.ErrInvalidInput), errors.Is(err, hvac.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, ErrUnknownAssembly), errors.Is(err, ErrUnknownEquipment):
		return "unknown_type"
	case errors.Is(err, hvac.ErrSpeeds):
		return "speeds"
	case errors.Is(err, ErrParams):
		return "params"
	}
	return "error"
}

func (r *Report) add_failure(section, name, typ string, err error) {
	r.Failures = append(r.Failures, FailureRow{
		Section: section,
		Name:    name,
		Type:    typ,
		Kind:    failure_kind(err),
		Message: err.Error(),
		Err:     err,
	})
}

func (r *Report) add_coil(system, mode string, c hvac.Coil) {
	for i, s := range c.Speeds {
		r.Coils = append(r.Coils, CoilRow{
			System:       system,
			Mode:         mode,
			Speed:        i + 1,
			Rating:       c.Rating,
			RatedNet:     s.RatedNet,
			GrossCOP:     s.GrossCOP,
			CFMPerTon:    s.CFMPerTon,
			SHR:          s.SHR,
			BypassFactor: s.BypassFactor,
			CapacityKW:   s.GrossCapacity / 1000.0,
			Converged:    c.Solution.Converged(),
		})
	}
}

func (r *Report) add_equipment(eq Equipment) {
	switch sys := eq.(type) {
	case *hvac.CentralAirConditioner:
		r.add_coil(sys.Name, "cooling", sys.Cooling)
	case *hvac.AirSourceHeatPump:
		r.add_coil(sys.Name, "cooling", sys.Cooling)
		r.add_coil(sys.Name, "heating", sys.Heating)
	}
	r.Warnings = append(r.Warnings, eq.Warnings()...)
}

func round(v float64, places int32) float64 {
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}

func fixed(v float64, places int32) string {
	return decimal.NewFromFloat(v).StringFixed(places)
}

// Rounded returns a copy of the report with every value rounded to places.
func (r *Report) Rounded(places int32) *Report {
	out := &Report{Materials: r.Materials, Warnings: r.Warnings, Failures: r.Failures}
	for _, a := range r.Assemblies {
		a.RValueIP = round(a.RValueIP, places)
		a.UFactorSI = round(a.UFactorSI, places)
		a.RFT0 = round(a.RFT0, places)
		a.RFA0 = round(a.RFA0, places)
		out.Assemblies = append(out.Assemblies, a)
	}
	for _, c := range r.Coils {
		c.Rating = round(c.Rating, places)
		c.RatedNet = round(c.RatedNet, places)
		c.GrossCOP = round(c.GrossCOP, places)
		c.CFMPerTon = round(c.CFMPerTon, places)
		c.SHR = round(c.SHR, places)
		c.BypassFactor = round(c.BypassFactor, places)
		c.CapacityKW = round(c.CapacityKW, places)
		out.Coils = append(out.Coils, c)
	}
	return out
}

// WriteCSV writes the assembly, coil and failure tables, separated by blank
// lines. Empty tables are left out.
func (r *Report) WriteCSV(w io.Writer, places int32) error {
	rr := r.Rounded(places)
	var tables []interface{}
	if len(rr.Assemblies) > 0 {
		tables = append(tables, &rr.Assemblies)
	}
	if len(rr.Coils) > 0 {
		tables = append(tables, &rr.Coils)
	}
	if len(rr.Failures) > 0 {
		tables = append(tables, &rr.Failures)
	}
	for i, t := range tables {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if err := gocsv.Marshal(t, w); err != nil {
			return err
		}
	}
	return nil
}

// WriteText writes a human-readable summary.
func (r *Report) WriteText(w io.Writer, places int32) error {
	var err error
	p := func(format string, a ...interface{}) {
		if err == nil {
			_, err = fmt.Fprintf(w, format, a...)
		}
	}

	if len(r.Assemblies) > 0 {
		p("ASSEMBLIES (%d, %d unique host materials):\n", len(r.Assemblies), r.Materials)
		for _, a := range r.Assemblies {
			p("  %s [%s]\n", a.Name, a.Type)
			p("    R-%s hr-ft2-F/Btu (RSI %s), U %s W/m2-K\n",
				fixed(a.RValueIP, places), fixed(units.RIPToSI(a.RValueIP), places), fixed(a.UFactorSI, places))
			p("    %d layers, %d host layers, %d surfaces\n", a.Layers, a.HostLayers, a.Surfaces)
			p("    RFT0 %s, RFA0 %s\n", fixed(a.RFT0, places), fixed(a.RFA0, places))
		}
		p("\n")
	}

	if len(r.Coils) > 0 {
		p("EQUIPMENT:\n")
		for _, c := range r.Coils {
			net := "EER"
			if c.Mode == "heating" {
				net = "COP"
			}
			p("  %s %s speed %d: %s %s", c.System, c.Mode, c.Speed, net, fixed(c.RatedNet, places))
			p(", gross COP %s, %s cfm/ton", fixed(c.GrossCOP, places), fixed(c.CFMPerTon, 1))
			if c.Mode == "cooling" {
				p(", SHR %s, BF %s", fixed(c.SHR, places), fixed(c.BypassFactor, places))
			}
			if c.CapacityKW > 0 {
				p(", %s kW", fixed(c.CapacityKW, places))
			}
			p("\n")
		}
		p("\n")
	}

	if len(r.Warnings) > 0 {
		p("WARNINGS (%d):\n", len(r.Warnings))
		for _, wn := range r.Warnings {
			p("  %v\n", wn)
		}
		p("\n")
	}

	if len(r.Failures) > 0 {
		p("ERRORS (%d):\n", len(r.Failures))
		for _, f := range r.Failures {
			p("  %s %s [%s] %s: %s\n", f.Section, f.Name, f.Type, f.Kind, f.Message)
		}
	}
	return err
}
