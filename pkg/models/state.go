package models

import "time"

// StatePoint represents a single thermodynamic state on a process path
type StatePoint struct {
	T float64 `json:"T" doc:"Temperature in K"`
	P float64 `json:"P" doc:"Pressure in Pa"`
	V float64 `json:"v" doc:"Specific volume in m³/kg"`
	S float64 `json:"s" doc:"Specific entropy in kJ/(kg·K)"`
}

// FluidInfo describes a working fluid from the catalog
type FluidInfo struct {
	Name                string  `json:"name" doc:"Fluid identifier"`
	MolarMass           float64 `json:"molar_mass" doc:"Molar mass in kg/kmol"`
	GasConstant         float64 `json:"gas_constant" doc:"Specific gas constant in J/(kg·K)"`
	Gamma               float64 `json:"gamma" doc:"Ideal-gas specific heat ratio cp/cv"`
	CriticalTemperature float64 `json:"critical_temperature" doc:"Critical temperature in K"`
	CriticalPressure    float64 `json:"critical_pressure" doc:"Critical pressure in Pa"`
	TMin                float64 `json:"t_min" doc:"Lowest valid temperature in K"`
	TMax                float64 `json:"t_max" doc:"Highest valid temperature in K"`
}

// ProcessRun represents a recorded trajectory computation (for internal use)
type ProcessRun struct {
	ID         string       `json:"id" doc:"Run unique identifier"`
	ProcessKey string       `json:"process_key" doc:"Process identifier"`
	Fluid      string       `json:"fluid" doc:"Working fluid"`
	Model      string       `json:"model" doc:"Property model"`
	T0         float64      `json:"T0" doc:"Initial temperature in K"`
	V0         float64      `json:"V0" doc:"Initial specific volume in m³/kg"`
	NPoints    int          `json:"n_points" doc:"Number of state points"`
	Index      *float64     `json:"n,omitempty" doc:"Polytropic index"`
	SpanRatio  float64      `json:"span_ratio" doc:"Ratio of last to first swept value"`
	Points     []StatePoint `json:"points" doc:"Computed state points"`
	CreatedAt  time.Time    `json:"created_at" doc:"Run creation timestamp"`
}
