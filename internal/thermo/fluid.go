package thermo

import (
	_ "embed"
	"fmt"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

const (
	// UniversalGasConstant in J/(kmol·K)
	UniversalGasConstant = 8314.462618

	// DefaultFluid is used when a request does not name one.
	DefaultFluid = "air"
)

//go:embed fluids.yaml
var catalogYAML []byte

// Fluid holds the constants of a pure working fluid.
type Fluid struct {
	Name                string  `yaml:"name" json:"name"`
	MolarMass           float64 `yaml:"molar_mass" json:"molar_mass"`
	Gamma               float64 `yaml:"gamma" json:"gamma"`
	CriticalTemperature float64 `yaml:"tc" json:"critical_temperature"`
	CriticalPressure    float64 `yaml:"pc" json:"critical_pressure"`
	AcentricFactor      float64 `yaml:"omega" json:"acentric_factor"`
	TMin                float64 `yaml:"tmin" json:"t_min"`
	TMax                float64 `yaml:"tmax" json:"t_max"`
}

// R returns the specific gas constant in J/(kg·K).
func (f Fluid) R() float64 {
	return UniversalGasConstant / f.MolarMass
}

// Cv returns the ideal-gas specific heat at constant volume in J/(kg·K).
func (f Fluid) Cv() float64 {
	return f.R() / (f.Gamma - 1)
}

// Cp returns the ideal-gas specific heat at constant pressure in J/(kg·K).
func (f Fluid) Cp() float64 {
	return f.Gamma * f.Cv()
}

func (f Fluid) validate() error {
	switch {
	case f.Name == "":
		return fmt.Errorf("fluid entry without name")
	case f.MolarMass <= 0:
		return fmt.Errorf("fluid %s: molar mass must be positive", f.Name)
	case f.Gamma <= 1:
		return fmt.Errorf("fluid %s: gamma must be greater than 1", f.Name)
	case f.CriticalTemperature <= 0 || f.CriticalPressure <= 0:
		return fmt.Errorf("fluid %s: critical point must be positive", f.Name)
	case f.TMin <= 0 || f.TMax <= f.TMin:
		return fmt.Errorf("fluid %s: invalid temperature window [%g, %g]", f.Name, f.TMin, f.TMax)
	}
	return nil
}

var loadCatalog = sync.OnceValues(func() (map[string]Fluid, error) {
	var doc struct {
		Fluids []Fluid `yaml:"fluids"`
	}
	if err := yaml.Unmarshal(catalogYAML, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse fluid catalog: %w", err)
	}

	catalog := make(map[string]Fluid, len(doc.Fluids))
	for _, f := range doc.Fluids {
		if err := f.validate(); err != nil {
			return nil, err
		}
		if _, dup := catalog[f.Name]; dup {
			return nil, fmt.Errorf("duplicate fluid %s in catalog", f.Name)
		}
		catalog[f.Name] = f
	}
	return catalog, nil
})

// LookupFluid returns the catalog entry for name.
func LookupFluid(name string) (Fluid, error) {
	catalog, err := loadCatalog()
	if err != nil {
		return Fluid{}, err
	}
	f, ok := catalog[name]
	if !ok {
		return Fluid{}, fmt.Errorf("%w: %q", ErrUnknownFluid, name)
	}
	return f, nil
}

// Fluids returns every catalog entry sorted by name.
func Fluids() ([]Fluid, error) {
	catalog, err := loadCatalog()
	if err != nil {
		return nil, err
	}
	out := make([]Fluid, 0, len(catalog))
	for _, f := range catalog {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
