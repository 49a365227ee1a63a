package service

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/ANIKETSHETTY47/zero-energy-home/internal/analysis"
	"github.com/ANIKETSHETTY47/zero-energy-home/internal/domain"
	"github.com/ANIKETSHETTY47/zero-energy-home/internal/repository"
)

// DefaultLoaderLimit caps every page loader read.
const DefaultLoaderLimit = 100

var ErrCloudDisabled = errors.New("cloud services not enabled")

// Store is the relational storage behind the page loaders and ingestion.
type Store interface {
	ListCasaDoma(ctx context.Context, limit int) ([]domain.CasaDoma, error)
	ListMeasurements(ctx context.Context, limit int) ([]domain.Measurement, error)
	InsertCasaDoma(ctx context.Context, c *domain.CasaDoma) error
	InsertMeasurement(ctx context.Context, m *domain.Measurement) error
}

// SnapshotStore keeps exported page snapshots.
type SnapshotStore interface {
	UploadSnapshot(ctx context.Context, key string, data []byte) (string, error)
	ListSnapshots(ctx context.Context, prefix string) ([]string, error)
	DownloadSnapshot(ctx context.Context, key string) ([]byte, error)
}

type Notifier interface {
	SendConsumptionAlert(ctx context.Context, sample domain.CasaDoma, activeWs float64) error
}

// RunStore archives analysis runs.
type RunStore interface {
	PutRun(ctx context.Context, run domain.AnalysisRun) error
	ListRuns(ctx context.Context, kind string) ([]domain.AnalysisRun, error)
}

type Tariff struct {
	Rate   float64 // currency per kWh
	Period string  // "peak" or "offpeak"
	Window int     // moving average window, in samples
}

// SpikeDetection configures the rolling-window spike detector run over the
// consumption series.
type SpikeDetection struct {
	Threshold float64 // standard deviations from the rolling mean
	Window    int     // samples in the rolling window
}

type Options struct {
	LoaderLimit      int
	Tariff           Tariff
	Spikes           SpikeDetection
	AlertThresholdWs float64
	Topics           Topics
	Analysis         *analysis.Client
	Snapshots        SnapshotStore
	Notifier         Notifier
	Runs             RunStore
}

type Services struct {
	Store       Store
	Pages       *PageService
	Consumption *ConsumptionService
	Readings    *ReadingService
	Analysis    *AnalysisService
	Export      *ExportService
}

func New(db *sqlx.DB, opts Options) *Services {
	return NewWithStore(repository.New(db), opts)
}

func NewWithStore(store Store, opts Options) *Services {
	limit := opts.LoaderLimit
	if limit <= 0 {
		limit = DefaultLoaderLimit
	}
	pages := &PageService{store: store, limit: limit}
	consumption := NewConsumptionService(domain.Devices(), opts.Tariff, opts.Spikes)
	return &Services{
		Store:       store,
		Pages:       pages,
		Consumption: consumption,
		Readings: &ReadingService{
			store:       store,
			consumption: consumption,
			notifier:    opts.Notifier,
			thresholdWs: opts.AlertThresholdWs,
			topics:      opts.Topics.withDefaults(),
		},
		Analysis: &AnalysisService{client: opts.Analysis, runs: opts.Runs},
		Export:   newExportService(pages, opts.Snapshots),
	}
}
