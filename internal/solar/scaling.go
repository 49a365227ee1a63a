package solar

import (
	"errors"
	"time"

	"github.com/ANIKETSHETTY47/zero-energy-home/internal/domain"
)

var ErrZeroFactor = errors.New("scale factor must be non-zero")

// PanelFactors relate the prototype panel to a full-size 400 W, 48 V panel.
type PanelFactors struct {
	AreaRatio    float64 `json:"AREA_RATIO"`
	PowerRatio   float64 `json:"POWER_RATIO"`
	VoltageRatio float64 `json:"VOLTAGE_RATIO"`
}

// BatteryFactors relate the prototype cell to a 5 kWh, 48 V battery bank.
type BatteryFactors struct {
	CapacityRatio float64 `json:"CAPACITY_RATIO"`
	VoltageRatio  float64 `json:"VOLTAGE_RATIO"`
}

type ScalingFactors struct {
	Panel   PanelFactors   `json:"PANEL"`
	Battery BatteryFactors `json:"BATTERY"`
}

// Factors holds the prototype-to-installation ratios.
var Factors = ScalingFactors{
	Panel: PanelFactors{
		AreaRatio:    (1.1 * 1.35) / 10000, // prototype area in m²
		PowerRatio:   2.4 / 400,
		VoltageRatio: 13.5 / 48,
	},
	Battery: BatteryFactors{
		CapacityRatio: 25.16 / 5000,
		VoltageRatio:  3.7 / 48,
	},
}

// ScaleValue projects a prototype value to full size.
func ScaleValue(value, factor float64) (float64, error) {
	if factor == 0 {
		return 0, ErrZeroFactor
	}
	return value / factor, nil
}

// Projection is a prototype measurement expressed at installation scale.
type Projection struct {
	MeasurementID   int64   `json:"measurement_id"`
	CreatedAt       string  `json:"created_at"`
	PanelPowerW     float64 `json:"panel_power_w"`
	PanelVoltageV   float64 `json:"panel_voltage_v"`
	PowerDensityWm2 float64 `json:"power_density_w_m2"`
	BatteryVoltageV float64 `json:"battery_voltage_v"`
	BatteryEnergyWh float64 `json:"battery_energy_wh"`
}

func (f ScalingFactors) Project(m domain.Measurement) Projection {
	return Projection{
		MeasurementID:   m.ID,
		CreatedAt:       m.CreatedAt.UTC().Format(time.RFC3339),
		PanelPowerW:     m.PanelPower / f.Panel.PowerRatio,
		PanelVoltageV:   m.PanelVoltage / f.Panel.VoltageRatio,
		PowerDensityWm2: m.PanelPower / f.Panel.AreaRatio,
		BatteryVoltageV: m.BatteryVoltage / f.Battery.VoltageRatio,
		BatteryEnergyWh: m.BatteryEnergyWh / f.Battery.CapacityRatio,
	}
}

func (f ScalingFactors) ProjectAll(ms []domain.Measurement) []Projection {
	out := make([]Projection, 0, len(ms))
	for _, m := range ms {
		out = append(out, f.Project(m))
	}
	return out
}

func Project(m domain.Measurement) Projection         { return Factors.Project(m) }
func ProjectAll(ms []domain.Measurement) []Projection { return Factors.ProjectAll(ms) }
