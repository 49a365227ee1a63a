package solar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ANIKETSHETTY47/zero-energy-home/internal/domain"
)

func TestScaleValue(t *testing.T) {
	v, err := ScaleValue(2.4, Factors.Panel.PowerRatio)
	require.NoError(t, err)
	assert.InDelta(t, 400.0, v, 1e-9)

	v, err = ScaleValue(25.16, Factors.Battery.CapacityRatio)
	require.NoError(t, err)
	assert.InDelta(t, 5000.0, v, 1e-9)

	_, err = ScaleValue(1, 0)
	assert.ErrorIs(t, err, ErrZeroFactor)
}

func TestProjectFullPrototypeOutput(t *testing.T) {
	m := domain.Measurement{
		ID:              7,
		CreatedAt:       time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		PanelVoltage:    13.5,
		PanelPower:      2.4,
		BatteryVoltage:  3.7,
		BatteryEnergyWh: 12.58,
	}

	p := Project(m)
	assert.Equal(t, int64(7), p.MeasurementID)
	assert.Equal(t, "2024-05-01T12:00:00Z", p.CreatedAt)
	assert.InDelta(t, 400.0, p.PanelPowerW, 1e-9)
	assert.InDelta(t, 48.0, p.PanelVoltageV, 1e-9)
	assert.InDelta(t, 48.0, p.BatteryVoltageV, 1e-9)
	assert.InDelta(t, 2500.0, p.BatteryEnergyWh, 1e-6)
	assert.InDelta(t, 2.4/0.0001485, p.PowerDensityWm2, 1e-6)
}

func TestProjectAllNeverNil(t *testing.T) {
	out := ProjectAll(nil)
	require.NotNil(t, out)
	assert.Empty(t, out)

	out = ProjectAll([]domain.Measurement{{ID: 1}, {ID: 2}})
	assert.Len(t, out, 2)
}
