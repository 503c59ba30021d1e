package api

import (
	"net/http"

	"github.com/RMahshie/nonflow/internal/api/handlers"
	"github.com/RMahshie/nonflow/internal/processing"
	"github.com/danielgtaylor/huma/v2"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterRoutes sets up all API routes. registry may be nil, in which case
// /metrics is not mounted.
func RegisterRoutes(router *chi.Mux, api huma.API, processingSvc processing.ProcessingService, registry *prometheus.Registry) {
	RegisterProcessRoutes(api, processingSvc)

	if registry != nil {
		router.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}
}

// RegisterProcessRoutes registers the trajectory, fluid and run operations
func RegisterProcessRoutes(api huma.API, processingSvc processing.ProcessingService) {
	processHandler := handlers.NewProcessHandler(processingSvc)

	huma.Register(api, huma.Operation{
		OperationID: "getProcess",
		Method:      http.MethodGet,
		Path:        "/process/{process_key}",
		Summary:     "Get process state points",
		Description: "Samples a non-flow process from the initial state (T0, V0) and returns the ordered state points",
		Tags:        []string{"Process"},
	}, processHandler.GetProcess)

	huma.Register(api, huma.Operation{
		OperationID: "listFluids",
		Method:      http.MethodGet,
		Path:        "/fluids",
		Summary:     "List working fluids",
		Description: "Returns the fluid catalog with ideal-gas and critical constants",
		Tags:        []string{"Process"},
	}, processHandler.ListFluids)

	huma.Register(api, huma.Operation{
		OperationID: "listRuns",
		Method:      http.MethodGet,
		Path:        "/runs",
		Summary:     "List recent runs",
		Description: "Returns the most recently recorded trajectory runs, newest first",
		Tags:        []string{"Runs"},
	}, processHandler.ListRuns)

	huma.Register(api, huma.Operation{
		OperationID: "getRun",
		Method:      http.MethodGet,
		Path:        "/runs/{id}",
		Summary:     "Get a recorded run",
		Description: "Returns the inputs and state points of a recorded trajectory run",
		Tags:        []string{"Runs"},
	}, processHandler.GetRun)

	huma.Register(api, huma.Operation{
		OperationID: "exportRun",
		Method:      http.MethodPost,
		Path:        "/runs/{id}/export",
		Summary:     "Export a run as CSV",
		Description: "Writes the run's state points to object storage and returns a pre-signed download URL",
		Tags:        []string{"Runs"},
	}, processHandler.ExportRun)
}
