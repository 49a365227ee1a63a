package domain

import (
	"errors"
	"fmt"
)

var ErrUnknownDevice = errors.New("unknown device")

// IntervalSeconds is the sampling interval of the household simulation.
const IntervalSeconds = 5

// Device is a household appliance and its draw over one sampling interval.
type Device struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Consumption   float64 `json:"consumption"`   // Ws per interval
	ConsumptionWh float64 `json:"consumptionWh"` // reference value
	Field         string  `json:"field"`         // casa_doma column
	Icon          string  `json:"icon"`
}

// WhToWs converts a Wh rating into Ws drawn over one sampling interval:
// (wh * 3600) * (IntervalSeconds / 3600).
func WhToWs(wh float64) float64 {
	return wh * IntervalSeconds
}

func newDevice(id, name string, wh float64, field, icon string) Device {
	return Device{
		ID:            id,
		Name:          name,
		Consumption:   WhToWs(wh),
		ConsumptionWh: wh,
		Field:         field,
		Icon:          icon,
	}
}

var catalog = []Device{
	newDevice("washer", "Lavadora", 500, "lavadora", "🧺"),
	newDevice("dryer", "Secadora", 3000, "secadora", "👕"),
	newDevice("fridge", "Refrigerador", 150, "refrigerador", "❄️"),
	newDevice("microwave", "Microondas", 1000, "microondas", "🔥"),
	newDevice("tv1", "TV Principal", 100, "television_1", "📺"),
	newDevice("tv2", "TV Secundaria", 80, "television_2", "📺"),
	newDevice("sound", "Equipo de Sonido", 200, "equipo_de_sonido", "🎵"),
	newDevice("shower", "Ducha Eléctrica", 4500, "ducha", "🚿"),
	newDevice("lights", "Sistema de Iluminación", 50, "focos", "💡"),
}

// Devices returns a copy of the appliance catalogue.
func Devices() []Device {
	out := make([]Device, len(catalog))
	copy(out, catalog)
	return out
}

// DeviceByID looks up a catalogue device by id.
func DeviceByID(id string) (Device, error) {
	for _, d := range catalog {
		if d.ID == id {
			return d, nil
		}
	}
	return Device{}, fmt.Errorf("%w: %q", ErrUnknownDevice, id)
}

// ValidateCatalog checks that ids are unique and that every device is bound
// to an appliance column of casa_doma.
func ValidateCatalog(devices []Device) error {
	seen := make(map[string]bool, len(devices))
	for _, d := range devices {
		if seen[d.ID] {
			return fmt.Errorf("duplicate device id %q", d.ID)
		}
		seen[d.ID] = true
		if !IsApplianceField(d.Field) {
			return fmt.Errorf("device %q: %w: %q", d.ID, ErrUnknownField, d.Field)
		}
	}
	return nil
}
