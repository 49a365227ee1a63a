package service

import (
	"sort"
	"time"

	"github.com/ANIKETSHETTY47/energy-grid-analytics-go/aggregator"
	"github.com/ANIKETSHETTY47/energy-grid-analytics-go/anomaly"
	"github.com/ANIKETSHETTY47/energy-grid-analytics-go/converter"

	"github.com/ANIKETSHETTY47/zero-energy-home/internal/domain"
)

const wsPerKWh = 3.6e6

type ConsumptionService struct {
	devices  []domain.Device
	tariff   Tariff
	detector *anomaly.AnomalyDetector
}

func NewConsumptionService(devices []domain.Device, tariff Tariff, spikes SpikeDetection) *ConsumptionService {
	if tariff.Period == "" {
		tariff.Period = "peak"
	}
	if tariff.Window <= 0 {
		tariff.Window = 12
	}
	if spikes.Threshold <= 0 {
		spikes.Threshold = 2
	}
	if spikes.Window <= 1 {
		spikes.Window = 6
	}
	return &ConsumptionService{
		devices:  devices,
		tariff:   tariff,
		detector: &anomaly.AnomalyDetector{Threshold: spikes.Threshold, WindowSize: spikes.Window},
	}
}

// ActiveWs is the draw of one household sample over its interval.
func (s *ConsumptionService) ActiveWs(sample domain.CasaDoma) float64 {
	return sample.ActiveConsumption(s.devices)
}

type SamplePoint struct {
	ID        int64     `json:"id"`
	FechaHora time.Time `json:"fecha_hora"`
	ActiveWs  float64   `json:"active_ws"`
	ActiveKWh float64   `json:"active_kwh"`
}

type DeviceUsage struct {
	DeviceID  string  `json:"device_id"`
	Name      string  `json:"name"`
	Icon      string  `json:"icon"`
	OnCount   int     `json:"on_count"`
	DutyCycle float64 `json:"duty_cycle"`
	EnergyWs  float64 `json:"energy_ws"`
	EnergyKWh float64 `json:"energy_kwh"`
}

type Summary struct {
	Samples          int           `json:"samples"`
	Series           []SamplePoint `json:"series"`
	TotalWs          float64       `json:"total_ws"`
	TotalKWh         float64       `json:"total_kwh"`
	TotalMWh         float64       `json:"total_mwh"`
	AverageKWh       float64       `json:"average_kwh"`
	PeakWs           float64       `json:"peak_ws"`
	MovingAverageKWh []float64     `json:"moving_average_kwh"`
	EstimatedCost    float64       `json:"estimated_cost"`
	TariffPeriod     string        `json:"tariff_period"`
	Devices          []DeviceUsage `json:"devices"`
	Spikes           []SamplePoint `json:"spikes"`
	Outliers         []SamplePoint `json:"outliers"`
}

// Summarize aggregates household samples in chronological order.
func (s *ConsumptionService) Summarize(samples []domain.CasaDoma) Summary {
	sum := Summary{
		Samples:          len(samples),
		Series:           []SamplePoint{},
		MovingAverageKWh: []float64{},
		TariffPeriod:     s.tariff.Period,
		Devices:          make([]DeviceUsage, len(s.devices)),
		Spikes:           []SamplePoint{},
		Outliers:         []SamplePoint{},
	}
	for i, d := range s.devices {
		sum.Devices[i] = DeviceUsage{DeviceID: d.ID, Name: d.Name, Icon: d.Icon}
	}
	if len(samples) == 0 {
		return sum
	}

	ordered := make([]domain.CasaDoma, len(samples))
	copy(ordered, samples)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].FechaHora.Before(ordered[j].FechaHora)
	})

	points := make([]aggregator.Point, 0, len(ordered))
	for _, c := range ordered {
		ws := s.ActiveWs(c)
		kwh := ws / wsPerKWh
		sum.Series = append(sum.Series, SamplePoint{ID: c.ID, FechaHora: c.FechaHora, ActiveWs: ws, ActiveKWh: kwh})
		points = append(points, aggregator.Point{Value: kwh, Timestamp: c.FechaHora})
		sum.TotalWs += ws
		if ws > sum.PeakWs {
			sum.PeakWs = ws
		}
		for i, d := range s.devices {
			if on, err := c.State(d.Field); err == nil && on {
				sum.Devices[i].OnCount++
				sum.Devices[i].EnergyWs += d.Consumption
			}
		}
	}

	sum.TotalKWh = aggregator.Sum(points)
	sum.AverageKWh = aggregator.Average(points)
	if len(points) >= s.tariff.Window {
		if ma := aggregator.MovingAverage(points, s.tariff.Window); ma != nil {
			sum.MovingAverageKWh = ma
		}
	}

	conv := &converter.EnergyConverter{}
	sum.TotalMWh = conv.KWhToMWh(sum.TotalKWh)
	sum.EstimatedCost = conv.CalculateCost(sum.TotalKWh, s.tariff.Rate, s.tariff.Period)

	for i := range sum.Devices {
		sum.Devices[i].DutyCycle = float64(sum.Devices[i].OnCount) / float64(len(ordered))
		sum.Devices[i].EnergyKWh = sum.Devices[i].EnergyWs / wsPerKWh
	}

	readings := make([]anomaly.Reading, len(sum.Series))
	for i, p := range sum.Series {
		readings[i] = anomaly.Reading{Consumption: p.ActiveWs, Timestamp: p.FechaHora.UnixMilli()}
	}
	sum.Spikes = matchSeries(sum.Series, s.detector.DetectSpikes(readings))
	sum.Outliers = matchSeries(sum.Series, s.detector.DetectOutliers(readings))
	return sum
}

// matchSeries maps detector readings back onto the samples they came from.
// Readings come back in series order, so a forward scan is enough.
func matchSeries(series []SamplePoint, found []anomaly.Reading) []SamplePoint {
	out := make([]SamplePoint, 0, len(found))
	j := 0
	for _, r := range found {
		for j < len(series) {
			p := series[j]
			j++
			if p.FechaHora.UnixMilli() == r.Timestamp && p.ActiveWs == r.Consumption {
				out = append(out, p)
				break
			}
		}
	}
	return out
}
