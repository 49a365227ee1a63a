package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ANIKETSHETTY47/zero-energy-home/internal/analysis"
	"github.com/ANIKETSHETTY47/zero-energy-home/internal/domain"
)

var t0 = time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

func TestPagesUseLimitAndReturnRows(t *testing.T) {
	store := &fakeStore{
		casaDoma:     []domain.CasaDoma{{ID: 2, FechaHora: t0.Add(5 * time.Second)}, {ID: 1, FechaHora: t0}},
		measurements: []domain.Measurement{{ID: 9}},
	}
	svcs := NewWithStore(store, Options{})

	ec := svcs.Pages.ElectricalConsumption(context.Background())
	assert.Len(t, ec.CasaDoma, 2)
	proto := svcs.Pages.Prototype(context.Background())
	assert.Len(t, proto.Mediciones, 1)
	assert.Equal(t, []int{DefaultLoaderLimit, DefaultLoaderLimit}, store.limits)

	svcs = NewWithStore(store, Options{LoaderLimit: 10})
	svcs.Pages.Prototype(context.Background())
	assert.Equal(t, 10, store.limits[len(store.limits)-1])
}

func TestPagesNeverNilOnFailure(t *testing.T) {
	store := &fakeStore{listErr: errors.New("connection refused")}
	svcs := NewWithStore(store, Options{})

	ec := svcs.Pages.ElectricalConsumption(context.Background())
	require.NotNil(t, ec.CasaDoma)
	assert.Empty(t, ec.CasaDoma)

	proto := svcs.Pages.Prototype(context.Background())
	require.NotNil(t, proto.Mediciones)
	assert.Empty(t, proto.Mediciones)

	b, err := json.Marshal(ec)
	require.NoError(t, err)
	assert.JSONEq(t, `{"casaDoma":[]}`, string(b))
}

func TestPagesPrototypeDropsRowsOnError(t *testing.T) {
	store := &fakeStore{
		casaDoma:     []domain.CasaDoma{{ID: 1}},
		measurements: []domain.Measurement{{ID: 1}},
		listErr:      errors.New("timeout"),
	}
	svcs := NewWithStore(store, Options{})

	assert.Len(t, svcs.Pages.ElectricalConsumption(context.Background()).CasaDoma, 1)
	assert.Empty(t, svcs.Pages.Prototype(context.Background()).Mediciones)
}

func TestSummarizeEmpty(t *testing.T) {
	s := NewConsumptionService(domain.Devices(), Tariff{Rate: 0.2}, SpikeDetection{})
	sum := s.Summarize(nil)

	assert.Zero(t, sum.Samples)
	assert.NotNil(t, sum.Series)
	assert.NotNil(t, sum.MovingAverageKWh)
	assert.Len(t, sum.Devices, 9)
	assert.Equal(t, "peak", sum.TariffPeriod)
}

func TestSummarize(t *testing.T) {
	s := NewConsumptionService(domain.Devices(), Tariff{Rate: 0.2, Period: "peak", Window: 2}, SpikeDetection{})
	samples := []domain.CasaDoma{
		{ID: 3, FechaHora: t0.Add(10 * time.Second), Refrigerador: true},
		{ID: 2, FechaHora: t0.Add(5 * time.Second), Refrigerador: true, Ducha: true},
		{ID: 1, FechaHora: t0, Refrigerador: true, Focos: true},
	}

	sum := s.Summarize(samples)
	require.Equal(t, 3, sum.Samples)
	require.Len(t, sum.Series, 3)
	assert.Equal(t, int64(1), sum.Series[0].ID)
	assert.Equal(t, int64(3), sum.Series[2].ID)

	wantWs := (750.0 + 250) + (750 + 22500) + 750
	assert.InDelta(t, wantWs, sum.TotalWs, 1e-9)
	assert.InDelta(t, wantWs/3.6e6, sum.TotalKWh, 1e-12)
	assert.InDelta(t, wantWs/3.6e6/3, sum.AverageKWh, 1e-12)
	assert.InDelta(t, sum.TotalKWh/1000, sum.TotalMWh, 1e-12)
	assert.Equal(t, 23250.0, sum.PeakWs)
	assert.Greater(t, sum.EstimatedCost, 0.0)
	assert.NotNil(t, sum.MovingAverageKWh)

	byID := map[string]DeviceUsage{}
	for _, d := range sum.Devices {
		byID[d.DeviceID] = d
	}
	assert.Equal(t, 3, byID["fridge"].OnCount)
	assert.InDelta(t, 1.0, byID["fridge"].DutyCycle, 1e-9)
	assert.Equal(t, 1, byID["shower"].OnCount)
	assert.InDelta(t, 22500.0, byID["shower"].EnergyWs, 1e-9)
	assert.Zero(t, byID["dryer"].OnCount)
}

func TestSummarizeDoesNotReorderInput(t *testing.T) {
	s := NewConsumptionService(domain.Devices(), Tariff{}, SpikeDetection{})
	samples := []domain.CasaDoma{{ID: 2, FechaHora: t0.Add(time.Second)}, {ID: 1, FechaHora: t0}}
	s.Summarize(samples)
	assert.Equal(t, int64(2), samples[0].ID)
}

func TestSummarizeFlagsShowerSpike(t *testing.T) {
	s := NewConsumptionService(domain.Devices(), Tariff{}, SpikeDetection{Threshold: 2, Window: 3})
	at := func(i int) time.Time { return t0.Add(time.Duration(i) * 5 * time.Second) }
	samples := []domain.CasaDoma{
		{ID: 1, FechaHora: at(0), Refrigerador: true},
		{ID: 2, FechaHora: at(1), Refrigerador: true, Focos: true},
		{ID: 3, FechaHora: at(2), Refrigerador: true},
		{ID: 4, FechaHora: at(3), Refrigerador: true, Focos: true},
		{ID: 5, FechaHora: at(4), Refrigerador: true, Ducha: true},
		{ID: 6, FechaHora: at(5), Refrigerador: true},
	}

	sum := s.Summarize(samples)
	require.Len(t, sum.Spikes, 1)
	assert.Equal(t, int64(5), sum.Spikes[0].ID)
	assert.Equal(t, 23250.0, sum.Spikes[0].ActiveWs)
	require.Len(t, sum.Outliers, 1)
	assert.Equal(t, int64(5), sum.Outliers[0].ID)
}

func TestSummarizeNoSpikesOnFlatSeries(t *testing.T) {
	s := NewConsumptionService(domain.Devices(), Tariff{}, SpikeDetection{Window: 2})
	samples := make([]domain.CasaDoma, 5)
	for i := range samples {
		samples[i] = domain.CasaDoma{ID: int64(i + 1), FechaHora: t0.Add(time.Duration(i) * time.Second), Refrigerador: true}
	}

	sum := s.Summarize(samples)
	assert.NotNil(t, sum.Spikes)
	assert.Empty(t, sum.Spikes)
	assert.Empty(t, sum.Outliers)
}

func TestFromMQTTRoutesByTopic(t *testing.T) {
	store := &fakeStore{}
	svcs := NewWithStore(store, Options{Topics: Topics{CasaDoma: "home/state", Prototype: "home/pv"}})
	ctx := context.Background()

	require.NoError(t, svcs.Readings.FromMQTT(ctx, "home/state", []byte(`{"lavadora":true,"fecha_hora":"2024-06-01T10:00:00Z"}`)))
	require.NoError(t, svcs.Readings.FromMQTT(ctx, "home/pv", []byte(`{"potencia_panel":2.1,"voltaje_panel":13.2}`)))

	require.Len(t, store.casaDoma, 1)
	assert.True(t, store.casaDoma[0].Lavadora)
	assert.True(t, store.casaDoma[0].FechaHora.Equal(t0))
	require.Len(t, store.measurements, 1)
	assert.Equal(t, 2.1, store.measurements[0].PanelPower)
	assert.False(t, store.measurements[0].CreatedAt.IsZero())

	err := svcs.Readings.FromMQTT(ctx, "home/other", []byte(`{}`))
	assert.ErrorIs(t, err, ErrUnknownTopic)

	err = svcs.Readings.FromMQTT(ctx, "home/state", []byte(`not json`))
	assert.Error(t, err)
}

func TestDefaultTopics(t *testing.T) {
	svcs := NewWithStore(&fakeStore{}, Options{})
	assert.Equal(t, Topics{CasaDoma: "zeh/casa_doma", Prototype: "zeh/prototype"}, svcs.Readings.Topics())
}

func TestIngestAlertsAboveThreshold(t *testing.T) {
	notifier := &fakeNotifier{}
	svcs := NewWithStore(&fakeStore{}, Options{Notifier: notifier, AlertThresholdWs: 20000})
	ctx := context.Background()

	require.NoError(t, svcs.Readings.IngestCasaDoma(ctx, &domain.CasaDoma{Focos: true}))
	assert.Empty(t, notifier.alerts)

	require.NoError(t, svcs.Readings.IngestCasaDoma(ctx, &domain.CasaDoma{Ducha: true, Focos: true}))
	assert.Equal(t, []float64{22750}, notifier.alerts)

	notifier.err = errors.New("sns down")
	assert.NoError(t, svcs.Readings.IngestCasaDoma(ctx, &domain.CasaDoma{Ducha: true}))
}

func TestIngestStoreError(t *testing.T) {
	svcs := NewWithStore(&fakeStore{insertErr: errors.New("dup")}, Options{})
	assert.Error(t, svcs.Readings.IngestCasaDoma(context.Background(), &domain.CasaDoma{}))
	assert.Error(t, svcs.Readings.IngestMeasurement(context.Background(), &domain.Measurement{}))
}

func TestAnalysisWithoutClient(t *testing.T) {
	svcs := NewWithStore(&fakeStore{}, Options{})
	_, err := svcs.Analysis.MonteCarlo(context.Background(), analysis.SimulationInput{})
	assert.ErrorIs(t, err, ErrAnalysisUnavailable)

	_, err = svcs.Analysis.Runs(context.Background(), KindMonteCarlo)
	assert.ErrorIs(t, err, ErrCloudDisabled)
}

func TestAnalysisArchivesRuns(t *testing.T) {
	tr := &cannedTransport{replies: map[string]string{
		analysis.OpOptimizeNonLinear: `[{"Hora":12,"Energía Generada (kWh)":0.3}]`,
		analysis.OpForecast:          `{"status":"success","results":{"historico":[],"prediccion":{"consumo_predicho":4.2}}}`,
	}}
	runs := &fakeRuns{}
	svcs := NewWithStore(&fakeStore{}, Options{Analysis: analysis.NewClient(tr), Runs: runs})
	ctx := context.Background()

	hours, err := svcs.Analysis.OptimizeNonLinear(ctx, analysis.SolarPanelConfig{Area: 1.6, Efficiency: 0.18, AvgRadiation: 4.5, SunHours: 6})
	require.NoError(t, err)
	require.Len(t, hours, 1)
	assert.InDelta(t, 0.3, hours[0].EnergyKWh, 1e-9)

	fc, err := svcs.Analysis.Forecast(ctx, analysis.ForecastConfig{HistoricalDays: 30, ARIMAOrder: [3]int{1, 1, 1}, ConfidenceLevel: 0.95})
	require.NoError(t, err)
	assert.InDelta(t, 4.2, fc.Results.Prediction.PredictedConsumption, 1e-9)

	var sent analysis.ForecastConfig
	require.NoError(t, json.Unmarshal(tr.inputs[analysis.OpForecast], &sent))
	assert.Equal(t, 4500.0, sent.Appliances["ducha"])
	assert.Len(t, sent.Appliances, 9)

	all, err := svcs.Analysis.Runs(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, KindOptimizeNonLinear, all[0].Kind)
	assert.NotEmpty(t, all[0].RunID)
	assert.Contains(t, string(all[0].Output), "Energía Generada (kWh)")

	forecasts, err := svcs.Analysis.Runs(ctx, KindForecast)
	require.NoError(t, err)
	assert.Len(t, forecasts, 1)
}

func TestAnalysisArchiveFailureIsNotReturned(t *testing.T) {
	tr := &cannedTransport{replies: map[string]string{analysis.OpMonteCarlo: `{"region":"Costa"}`}}
	svcs := NewWithStore(&fakeStore{}, Options{Analysis: analysis.NewClient(tr), Runs: &fakeRuns{putErr: errors.New("throttled")}})

	res, err := svcs.Analysis.MonteCarlo(context.Background(), analysis.SimulationInput{
		NumSimulations: 10, Region: "Costa", HouseArea: 80,
	})
	require.NoError(t, err)
	assert.Equal(t, "Costa", res.Region)
}

func TestIsRunKind(t *testing.T) {
	assert.True(t, IsRunKind(KindForecast))
	assert.False(t, IsRunKind("arima"))
}

func TestExportSnapshot(t *testing.T) {
	store := &fakeStore{casaDoma: []domain.CasaDoma{{ID: 1, FechaHora: t0, Ducha: true}}}
	snaps := &fakeSnapshots{}
	svcs := NewWithStore(store, Options{Snapshots: snaps})
	svcs.Export.now = func() time.Time { return t0 }
	ctx := context.Background()

	snap, err := svcs.Export.Snapshot(ctx, PageElectricalConsumption)
	require.NoError(t, err)
	assert.Equal(t, "snapshots/electrical-consumption/2024-06-01T10:00:00Z.json", snap.Key)
	assert.Equal(t, 1, snap.Rows)
	assert.True(t, strings.HasSuffix(snap.URL, snap.Key))

	var body ElectricalConsumptionData
	require.NoError(t, json.Unmarshal(snaps.uploads[snap.Key], &body))
	require.Len(t, body.CasaDoma, 1)
	assert.True(t, body.CasaDoma[0].Ducha)

	keys, err := svcs.Export.List(ctx, PageElectricalConsumption)
	require.NoError(t, err)
	assert.Equal(t, []string{snap.Key}, keys)

	b, err := svcs.Export.Get(ctx, PageElectricalConsumption, "2024-06-01T10:00:00Z.json")
	require.NoError(t, err)
	assert.Equal(t, snaps.uploads[snap.Key], b)

	_, err = svcs.Export.Get(ctx, PageElectricalConsumption, "../prototype/x.json")
	assert.ErrorIs(t, err, ErrUnknownSnapshot)

	_, err = svcs.Export.Get(ctx, PageElectricalConsumption, "2023-01-01T00:00:00Z.json")
	assert.ErrorIs(t, err, ErrUnknownSnapshot)

	keys, err = svcs.Export.List(ctx, PagePrototype)
	require.NoError(t, err)
	assert.NotNil(t, keys)
	assert.Empty(t, keys)
}

func TestExportErrors(t *testing.T) {
	svcs := NewWithStore(&fakeStore{}, Options{})
	_, err := svcs.Export.Snapshot(context.Background(), PagePrototype)
	assert.ErrorIs(t, err, ErrCloudDisabled)

	svcs = NewWithStore(&fakeStore{}, Options{Snapshots: &fakeSnapshots{}})
	_, err = svcs.Export.Snapshot(context.Background(), "pricing")
	assert.ErrorIs(t, err, ErrUnknownPage)
	_, err = svcs.Export.List(context.Background(), "pricing")
	assert.ErrorIs(t, err, ErrUnknownPage)
}
