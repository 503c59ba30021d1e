package processing

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/RMahshie/nonflow/internal/cache"
	"github.com/RMahshie/nonflow/internal/metrics"
	"github.com/RMahshie/nonflow/internal/process"
	"github.com/RMahshie/nonflow/internal/repository"
	"github.com/RMahshie/nonflow/internal/storage"
	"github.com/RMahshie/nonflow/internal/thermo"
	"github.com/RMahshie/nonflow/internal/trajectory"
	"github.com/RMahshie/nonflow/pkg/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var (
	// ErrRunsDisabled is returned by run operations when no repository is configured
	ErrRunsDisabled = errors.New("run recording is not configured")
	// ErrExportDisabled is returned by ExportRun when no export store is configured
	ErrExportDisabled = errors.New("run export is not configured")
	// ErrRunNotFound is returned when the requested run does not exist
	ErrRunNotFound = errors.New("run not found")
)

// ProcessingService computes process trajectories and manages recorded runs
type ProcessingService interface {
	ComputeTrajectory(ctx context.Context, q Query) (*Result, error)
	GetRun(ctx context.Context, id uuid.UUID) (*models.ProcessRun, error)
	ListRuns(ctx context.Context, limit int) ([]*models.ProcessRun, error)
	ExportRun(ctx context.Context, id uuid.UUID) (*Export, error)
	Fluids() ([]thermo.Fluid, error)
}

// Query describes one trajectory request
type Query struct {
	ProcessKey string
	T0         float64
	V0         float64
	NPoints    int
	Index      *float64
	Fluid      string
	Model      string
}

// Result is a computed trajectory
type Result struct {
	RunID   string
	Kind    process.Kind
	Fluid   string
	Model   string
	Points  []thermo.StatePoint
	Summary trajectory.Summary
	Cached  bool
}

// Export locates an exported CSV file
type Export struct {
	RunID       string
	Key         string
	DownloadURL string
	ExpiresIn   time.Duration
}

// Settings holds the service defaults
type Settings struct {
	Fluid     string
	Model     string
	SpanRatio float64
}

type processingService struct {
	settings Settings
	cache    cache.TrajectoryCache
	repo     repository.RunRepository
	store    storage.ExportStore
	metrics  *metrics.Metrics
}

// NewProcessingService creates the service. The cache, repository, store and
// metrics are optional and may be nil.
func NewProcessingService(settings Settings, c cache.TrajectoryCache, repo repository.RunRepository, store storage.ExportStore, m *metrics.Metrics) ProcessingService {
	if settings.Fluid == "" {
		settings.Fluid = thermo.DefaultFluid
	}
	if settings.Model == "" {
		settings.Model = thermo.ModelIdealGas
	}
	if settings.SpanRatio == 0 {
		settings.SpanRatio = process.DefaultSpanRatio
	}
	return &processingService{
		settings: settings,
		cache:    c,
		repo:     repo,
		store:    store,
		metrics:  m,
	}
}

// ComputeTrajectory validates q, then samples the requested process. Cache
// and repository failures are logged and do not fail the request.
func (s *processingService) ComputeTrajectory(ctx context.Context, q Query) (*Result, error) {
	start := time.Now()
	res, err := s.compute(ctx, q)
	label := q.ProcessKey
	if !process.Kind(label).Valid() {
		label = "unknown"
	}
	s.metrics.Observe(label, outcome(err), time.Since(start))
	if err != nil {
		log.Warn().Err(err).Str("process", q.ProcessKey).Msg("Trajectory request rejected")
		return nil, err
	}
	return res, nil
}

func (s *processingService) compute(ctx context.Context, q Query) (*Result, error) {
	if err := trajectory.ValidatePointCount(q.NPoints); err != nil {
		return nil, err
	}
	kind, err := process.ParseKind(q.ProcessKey)
	if err != nil {
		return nil, err
	}

	fluid, model := q.Fluid, q.Model
	if fluid == "" {
		fluid = s.settings.Fluid
	}
	if model == "" {
		model = s.settings.Model
	}
	provider, err := thermo.NewProvider(model, fluid)
	switch {
	case errors.Is(err, thermo.ErrUnknownFluid):
		return nil, &process.InvalidParameterError{Field: "fluid", Reason: err.Error(), Err: err}
	case errors.Is(err, thermo.ErrUnknownModel):
		return nil, &process.InvalidParameterError{Field: "model", Reason: err.Error(), Err: err}
	case err != nil:
		return nil, err
	}

	selector, err := process.NewSelector(provider, process.WithSpanRatio(s.settings.SpanRatio))
	if err != nil {
		return nil, err
	}
	pm, err := selector.Select(process.Spec{Kind: kind, Index: q.Index}, process.Initial{T0: q.T0, V0: q.V0})
	if err != nil {
		return nil, err
	}

	res := &Result{Kind: kind, Fluid: fluid, Model: model}
	key := s.cacheKey(kind, fluid, model, q, pm.Exponent())

	if points, ok := s.cached(ctx, key); ok {
		res.Points = points
		res.Cached = true
		s.metrics.CacheHit()
	} else {
		traj, err := trajectory.Sample(pm, q.NPoints)
		if err != nil {
			return nil, err
		}
		res.Points = traj.Points
		if s.cache != nil {
			if err := s.cache.Set(ctx, key, res.Points); err != nil {
				log.Warn().Err(err).Str("key", key).Msg("Failed to cache trajectory")
			}
		}
	}
	res.Summary = trajectory.Summarize(res.Points)
	res.RunID = s.record(ctx, res, q)

	log.Info().
		Str("process", string(kind)).
		Str("fluid", fluid).
		Str("model", model).
		Int("points", len(res.Points)).
		Bool("cached", res.Cached).
		Str("runID", res.RunID).
		Msg("Trajectory computed")

	return res, nil
}

func (s *processingService) cached(ctx context.Context, key string) ([]thermo.StatePoint, bool) {
	if s.cache == nil {
		return nil, false
	}
	points, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Trajectory cache lookup failed")
		return nil, false
	}
	return points, ok
}

// record stores the run and returns its ID, or "" when recording is off or fails.
func (s *processingService) record(ctx context.Context, res *Result, q Query) string {
	if s.repo == nil {
		return ""
	}
	run := &models.ProcessRun{
		ID:         uuid.New().String(),
		ProcessKey: string(res.Kind),
		Fluid:      res.Fluid,
		Model:      res.Model,
		T0:         q.T0,
		V0:         q.V0,
		NPoints:    len(res.Points),
		SpanRatio:  s.settings.SpanRatio,
		Points:     ToRecords(res.Points),
		CreatedAt:  time.Now().UTC(),
	}
	if res.Kind == process.Polytropic {
		run.Index = q.Index
	}
	if err := s.repo.Create(ctx, run); err != nil {
		log.Error().Err(err).Str("process", run.ProcessKey).Msg("Failed to record run")
		return ""
	}
	return run.ID
}

// cacheKey identifies a trajectory by every input that affects its points.
func (s *processingService) cacheKey(kind process.Kind, fluid, model string, q Query, exponent float64) string {
	parts := []string{
		string(kind),
		fluid,
		model,
		strconv.FormatFloat(q.T0, 'g', -1, 64),
		strconv.FormatFloat(q.V0, 'g', -1, 64),
		strconv.Itoa(q.NPoints),
		strconv.FormatFloat(s.settings.SpanRatio, 'g', -1, 64),
	}
	if kind == process.Polytropic {
		parts = append(parts, strconv.FormatFloat(exponent, 'g', -1, 64))
	}
	return strings.Join(parts, ":")
}

// GetRun retrieves a recorded run
func (s *processingService) GetRun(ctx context.Context, id uuid.UUID) (*models.ProcessRun, error) {
	if s.repo == nil {
		return nil, ErrRunsDisabled
	}
	run, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load run %s: %w", id, err)
	}
	return run, nil
}

// ListRuns returns the most recent runs, newest first
func (s *processingService) ListRuns(ctx context.Context, limit int) ([]*models.ProcessRun, error) {
	if s.repo == nil {
		return nil, ErrRunsDisabled
	}
	runs, err := s.repo.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return runs, nil
}

// ExportRun uploads a run as CSV and returns a pre-signed download URL
func (s *processingService) ExportRun(ctx context.Context, id uuid.UUID) (*Export, error) {
	if s.store == nil {
		return nil, ErrExportDisabled
	}
	run, err := s.GetRun(ctx, id)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := trajectory.WriteCSV(&buf, FromRecords(run.Points)); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("runs/%s.csv", run.ID)
	if err := s.store.Upload(ctx, key, "text/csv", buf.Bytes()); err != nil {
		return nil, err
	}
	url, err := s.store.GenerateDownloadURL(ctx, key)
	if err != nil {
		return nil, err
	}

	log.Info().Str("runID", run.ID).Str("key", key).Msg("Run exported")
	return &Export{
		RunID:       run.ID,
		Key:         key,
		DownloadURL: url,
		ExpiresIn:   s.store.URLExpiry(),
	}, nil
}

// Fluids lists the catalog fluids
func (s *processingService) Fluids() ([]thermo.Fluid, error) {
	return thermo.Fluids()
}

// ToRecords converts state points to their API representation
func ToRecords(points []thermo.StatePoint) []models.StatePoint {
	out := make([]models.StatePoint, len(points))
	for i, p := range points {
		out[i] = models.StatePoint{T: p.T, P: p.P, V: p.V, S: p.S}
	}
	return out
}

// FromRecords converts API state points back to thermo state points
func FromRecords(points []models.StatePoint) []thermo.StatePoint {
	out := make([]thermo.StatePoint, len(points))
	for i, p := range points {
		out[i] = thermo.StatePoint{T: p.T, P: p.P, V: p.V, S: p.S}
	}
	return out
}

func outcome(err error) string {
	var invalid *process.InvalidParameterError
	var unsupported *process.UnsupportedProcessError
	var property *thermo.PropertyError
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.As(err, &invalid), errors.As(err, &unsupported):
		return metrics.OutcomeInvalid
	case errors.As(err, &property):
		return metrics.OutcomeProperty
	default:
		return metrics.OutcomeError
	}
}
