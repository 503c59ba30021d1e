package models

import (
	"reflect"
	"time"

	"github.com/danielgtaylor/huma/v2"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Body struct {
		Status  string    `json:"status" example:"healthy" doc:"Service health status"`
		Version string    `json:"version" example:"1.0.0" doc:"API version"`
		Time    time.Time `json:"time" doc:"Current server time"`
	}
}

// ProcessQueryRequest represents a request for the state points of one process
type ProcessQueryRequest struct {
	ProcessKey string        `path:"process_key" enum:"constant_volume,constant_pressure,isothermal,adiabatic,polytropic" doc:"Process identifier"`
	T0         float64       `query:"T0" required:"true" exclusiveMinimum:"0" example:"300" doc:"Initial temperature in K"`
	V0         float64       `query:"V0" required:"true" exclusiveMinimum:"0" example:"1.0" doc:"Initial specific volume in m³/kg"`
	NPoints    int           `query:"n_points" default:"20" minimum:"5" maximum:"50" doc:"Number of state points"`
	N          OptionalFloat `query:"n" doc:"Polytropic index (required for polytropic, must not be 0 or 1)"`
	Fluid      string        `query:"fluid" example:"air" doc:"Working fluid; defaults to the server setting"`
	Model      string        `query:"model" example:"ideal" doc:"Property model: ideal or peng_robinson; defaults to the server setting"`
}

// OptionalFloat is a query parameter that records whether it was sent, so an
// explicit 0 is not mistaken for an omitted value.
type OptionalFloat struct {
	Value float64
	IsSet bool
}

// Some returns a set OptionalFloat holding v.
func Some(v float64) OptionalFloat {
	return OptionalFloat{Value: v, IsSet: true}
}

func (o OptionalFloat) Schema(r huma.Registry) *huma.Schema {
	return huma.SchemaFromType(r, reflect.TypeOf(o.Value))
}

func (o *OptionalFloat) Receiver() reflect.Value {
	return reflect.ValueOf(o).Elem().Field(0)
}

func (o *OptionalFloat) OnParamSet(isSet bool, parsed any) {
	o.IsSet = isSet
}

// ProcessQueryResponse carries the ordered state points of a process
type ProcessQueryResponse struct {
	RunID string       `header:"X-Run-ID" doc:"Identifier of the recorded run, when recording is enabled"`
	Cache string       `header:"X-Cache" doc:"HIT when served from the trajectory cache"`
	Body  []StatePoint `json:"-"`
}

// ListFluidsResponse lists the working fluids
type ListFluidsResponse struct {
	Body []FluidInfo `json:"-"`
}

// GetRunRequest represents a request for a recorded run
type GetRunRequest struct {
	ID string `path:"id" doc:"Run ID"`
}

// GetRunResponse returns a recorded run
type GetRunResponse struct {
	Body *ProcessRun `json:"-"`
}

// ListRunsRequest represents a request for the most recent runs
type ListRunsRequest struct {
	Limit int `query:"limit" default:"20" minimum:"1" maximum:"100" doc:"Maximum number of runs"`
}

// ListRunsResponse lists recorded runs, newest first
type ListRunsResponse struct {
	Body []*ProcessRun `json:"-"`
}

// ExportRunRequest represents a request to export a run as CSV
type ExportRunRequest struct {
	ID string `path:"id" doc:"Run ID"`
}

// ExportRunResponseBody is the body of the export response
type ExportRunResponseBody struct {
	ID          string `json:"id" doc:"Run ID"`
	DownloadURL string `json:"download_url" doc:"Pre-signed URL of the CSV file"`
	ExpiresIn   int    `json:"expires_in" doc:"URL expiration time in seconds"`
}

// ExportRunResponse represents the response from exporting a run
type ExportRunResponse struct {
	Body ExportRunResponseBody
}
