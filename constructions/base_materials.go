package constructions

import (
	"bytes"
	_ "embed"
	"fmt"
	"sort"
	"sync"

	"github.com/gocarina/gocsv"
)

//go:embed base_materials.csv
var base_materials_csv []byte

// BaseMaterial carries the bulk properties of a material family.
// rho lb/ft3, cp Btu/lb-F, k_in Btu-in/h-ft2-F. KIn is 0 when conductivity
// follows from the installed R-value (loose-fill and dense-pack insulation).
type BaseMaterial struct {
	Name       string  `csv:"name"`
	Rho        float64 `csv:"rho"`
	Cp         float64 `csv:"cp"`
	KIn        float64 `csv:"k_in"`
	ThickIn    float64 `csv:"thick_in"`
	ThermalAbs float64 `csv:"t_abs"`
	SolarAbs   float64 `csv:"s_abs"`
}

var (
	base_once    sync.Once
	base_library map[string]BaseMaterial
	base_err     error
)

func load_base_materials() {
	var rows []*BaseMaterial
	if err := gocsv.Unmarshal(bytes.NewReader(base_materials_csv), &rows); err != nil {
		base_err = fmt.Errorf("constructions: reading base materials: %w", err)
		return
	}
	base_library = make(map[string]BaseMaterial, len(rows))
	for _, r := range rows {
		base_library[r.Name] = *r
	}
}

// LookupBaseMaterial returns the library entry with the given name.
func LookupBaseMaterial(name string) (BaseMaterial, error) {
	base_once.Do(load_base_materials)
	if base_err != nil {
		return BaseMaterial{}, base_err
	}
	b, ok := base_library[name]
	if !ok {
		return BaseMaterial{}, fmt.Errorf("%w: %q", ErrUnknownBaseMaterial, name)
	}
	return b, nil
}

// BaseMaterialNames lists the library entries in sorted order.
func BaseMaterialNames() []string {
	base_once.Do(load_base_materials)
	names := make([]string, 0, len(base_library))
	for n := range base_library {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// mustBase is used by the named factories; the embedded library is fixed at build time.
func mustBase(name string) BaseMaterial {
	b, err := LookupBaseMaterial(name)
	if err != nil {
		panic(err)
	}
	return b
}
