package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/ANIKETSHETTY47/zero-energy-home/internal/analysis"
	"github.com/ANIKETSHETTY47/zero-energy-home/internal/domain"
)

var ErrAnalysisUnavailable = errors.New("analysis service not configured")

// Run kinds, as archived and as accepted by Runs.
const (
	KindMonteCarlo        = "montecarlo"
	KindOptimizeLinear    = "optimize-linear"
	KindOptimizeNonLinear = "optimize-nonlinear"
	KindForecast          = "forecast"
)

func IsRunKind(kind string) bool {
	switch kind {
	case KindMonteCarlo, KindOptimizeLinear, KindOptimizeNonLinear, KindForecast:
		return true
	}
	return false
}

// AnalysisService forwards analyses to the computation service and archives
// successful runs when a run store is configured.
type AnalysisService struct {
	client *analysis.Client
	runs   RunStore
}

func (s *AnalysisService) MonteCarlo(ctx context.Context, in analysis.SimulationInput) (*analysis.SimulationResults, error) {
	if s.client == nil {
		return nil, ErrAnalysisUnavailable
	}
	out, err := s.client.RunMonteCarlo(ctx, in)
	if err != nil {
		return nil, err
	}
	s.archive(ctx, KindMonteCarlo, in, out)
	return out, nil
}

func (s *AnalysisService) OptimizeLinear(ctx context.Context, cfg analysis.SolarSystemConfig) (*analysis.OptimizationResults, error) {
	if s.client == nil {
		return nil, ErrAnalysisUnavailable
	}
	out, err := s.client.OptimizeLinear(ctx, cfg)
	if err != nil {
		return nil, err
	}
	s.archive(ctx, KindOptimizeLinear, cfg, out)
	return out, nil
}

func (s *AnalysisService) OptimizeNonLinear(ctx context.Context, cfg analysis.SolarPanelConfig) ([]analysis.OptimizationResult, error) {
	if s.client == nil {
		return nil, ErrAnalysisUnavailable
	}
	out, err := s.client.OptimizeNonLinear(ctx, cfg)
	if err != nil {
		return nil, err
	}
	s.archive(ctx, KindOptimizeNonLinear, cfg, out)
	return out, nil
}

// Forecast runs the ARIMA forecast. Without an explicit appliance list the
// household catalogue ratings (Wh) are sent.
func (s *AnalysisService) Forecast(ctx context.Context, cfg analysis.ForecastConfig) (*analysis.ForecastResult, error) {
	if s.client == nil {
		return nil, ErrAnalysisUnavailable
	}
	if len(cfg.Appliances) == 0 {
		cfg.Appliances = CatalogAppliances(domain.Devices())
	}
	out, err := s.client.Forecast(ctx, cfg)
	if err != nil {
		return nil, err
	}
	s.archive(ctx, KindForecast, cfg, out)
	return out, nil
}

func CatalogAppliances(devices []domain.Device) map[string]float64 {
	out := make(map[string]float64, len(devices))
	for _, d := range devices {
		out[d.Field] = d.ConsumptionWh
	}
	return out
}

func (s *AnalysisService) Runs(ctx context.Context, kind string) ([]domain.AnalysisRun, error) {
	if s.runs == nil {
		return nil, ErrCloudDisabled
	}
	runs, err := s.runs.ListRuns(ctx, kind)
	if err != nil {
		return nil, err
	}
	if runs == nil {
		runs = []domain.AnalysisRun{}
	}
	return runs, nil
}

func (s *AnalysisService) archive(ctx context.Context, kind string, in, out any) {
	if s.runs == nil {
		return
	}
	inJSON, err := json.Marshal(in)
	if err != nil {
		log.Error().Err(err).Str("kind", kind).Msg("archive run: marshal input")
		return
	}
	outJSON, err := json.Marshal(out)
	if err != nil {
		log.Error().Err(err).Str("kind", kind).Msg("archive run: marshal output")
		return
	}
	run := domain.AnalysisRun{
		RunID:     uuid.NewString(),
		Kind:      kind,
		CreatedAt: time.Now().UTC(),
		Input:     inJSON,
		Output:    outJSON,
	}
	if err := s.runs.PutRun(ctx, run); err != nil {
		log.Error().Err(err).Str("kind", kind).Str("run_id", run.RunID).Msg("archive run failed")
	}
}
