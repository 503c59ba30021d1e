package handlers

import (
	"context"
	"errors"

	"github.com/RMahshie/nonflow/internal/process"
	"github.com/RMahshie/nonflow/internal/processing"
	"github.com/RMahshie/nonflow/internal/thermo"
	"github.com/RMahshie/nonflow/pkg/models"
	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ProcessHandler handles trajectory and run HTTP requests
type ProcessHandler struct {
	processingSvc processing.ProcessingService
}

// NewProcessHandler creates a new process handler
func NewProcessHandler(processingSvc processing.ProcessingService) *ProcessHandler {
	return &ProcessHandler{processingSvc: processingSvc}
}

// GetProcess returns the state points of one process
func (h *ProcessHandler) GetProcess(ctx context.Context, req *models.ProcessQueryRequest) (*models.ProcessQueryResponse, error) {
	log.Info().
		Str("process", req.ProcessKey).
		Float64("T0", req.T0).
		Float64("V0", req.V0).
		Int("nPoints", req.NPoints).
		Msg("Process query received")

	q := processing.Query{
		ProcessKey: req.ProcessKey,
		T0:         req.T0,
		V0:         req.V0,
		NPoints:    req.NPoints,
		Fluid:      req.Fluid,
		Model:      req.Model,
	}
	if req.N.IsSet {
		n := req.N.Value
		q.Index = &n
	}

	res, err := h.processingSvc.ComputeTrajectory(ctx, q)
	if err != nil {
		return nil, toHTTPError(err)
	}

	resp := &models.ProcessQueryResponse{
		RunID: res.RunID,
		Body:  processing.ToRecords(res.Points),
	}
	if res.Cached {
		resp.Cache = "HIT"
	}
	return resp, nil
}

// ListFluids returns the working fluid catalog
func (h *ProcessHandler) ListFluids(ctx context.Context, _ *struct{}) (*models.ListFluidsResponse, error) {
	fluids, err := h.processingSvc.Fluids()
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to load fluid catalog", err)
	}

	resp := &models.ListFluidsResponse{Body: make([]models.FluidInfo, len(fluids))}
	for i, f := range fluids {
		resp.Body[i] = models.FluidInfo{
			Name:                f.Name,
			MolarMass:           f.MolarMass,
			GasConstant:         f.R(),
			Gamma:               f.Gamma,
			CriticalTemperature: f.CriticalTemperature,
			CriticalPressure:    f.CriticalPressure,
			TMin:                f.TMin,
			TMax:                f.TMax,
		}
	}
	return resp, nil
}

// GetRun returns a recorded run
func (h *ProcessHandler) GetRun(ctx context.Context, req *models.GetRunRequest) (*models.GetRunResponse, error) {
	runID, err := uuid.Parse(req.ID)
	if err != nil {
		return nil, huma.Error400BadRequest("Invalid run ID", err)
	}

	run, err := h.processingSvc.GetRun(ctx, runID)
	if err != nil {
		return nil, toHTTPError(err)
	}
	return &models.GetRunResponse{Body: run}, nil
}

// ListRuns returns the most recent runs
func (h *ProcessHandler) ListRuns(ctx context.Context, req *models.ListRunsRequest) (*models.ListRunsResponse, error) {
	runs, err := h.processingSvc.ListRuns(ctx, req.Limit)
	if err != nil {
		return nil, toHTTPError(err)
	}
	if runs == nil {
		runs = []*models.ProcessRun{}
	}
	return &models.ListRunsResponse{Body: runs}, nil
}

// ExportRun uploads a run as CSV and returns a download URL
func (h *ProcessHandler) ExportRun(ctx context.Context, req *models.ExportRunRequest) (*models.ExportRunResponse, error) {
	runID, err := uuid.Parse(req.ID)
	if err != nil {
		return nil, huma.Error400BadRequest("Invalid run ID", err)
	}

	log.Info().Str("runID", runID.String()).Msg("Export request received")
	export, err := h.processingSvc.ExportRun(ctx, runID)
	if err != nil {
		return nil, toHTTPError(err)
	}

	return &models.ExportRunResponse{
		Body: models.ExportRunResponseBody{
			ID:          export.RunID,
			DownloadURL: export.DownloadURL,
			ExpiresIn:   int(export.ExpiresIn.Seconds()),
		},
	}, nil
}

// toHTTPError maps service errors to status codes
func toHTTPError(err error) error {
	var invalid *process.InvalidParameterError
	var unsupported *process.UnsupportedProcessError
	var property *thermo.PropertyError

	switch {
	case errors.As(err, &invalid):
		return huma.Error422UnprocessableEntity(invalid.Error(), &huma.ErrorDetail{
			Location: paramLocation(invalid.Field),
			Message:  invalid.Reason,
		})
	case errors.As(err, &unsupported):
		return huma.Error422UnprocessableEntity(unsupported.Error(), &huma.ErrorDetail{
			Location: "path.process_key",
			Message:  unsupported.Error(),
			Value:    unsupported.Kind,
		})
	case errors.As(err, &property):
		return huma.Error500InternalServerError("State point could not be resolved", err)
	case errors.Is(err, processing.ErrRunNotFound):
		return huma.Error404NotFound("Run not found", err)
	case errors.Is(err, processing.ErrRunsDisabled), errors.Is(err, processing.ErrExportDisabled):
		return huma.Error503ServiceUnavailable(err.Error())
	default:
		log.Error().Err(err).Msg("Request failed")
		return huma.Error500InternalServerError("Internal server error", err)
	}
}

func paramLocation(field string) string {
	if field == "process_key" {
		return "path." + field
	}
	return "query." + field
}
