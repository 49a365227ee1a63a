package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

var ErrUnknownField = errors.New("unknown appliance field")

// CasaDoma is one sampled state of the simulated household.
type CasaDoma struct {
	ID             int64     `db:"id" json:"id"`
	FechaHora      time.Time `db:"fecha_hora" json:"fecha_hora"`
	Lavadora       bool      `db:"lavadora" json:"lavadora"`
	Secadora       bool      `db:"secadora" json:"secadora"`
	Refrigerador   bool      `db:"refrigerador" json:"refrigerador"`
	Microondas     bool      `db:"microondas" json:"microondas"`
	Television1    bool      `db:"television_1" json:"television_1"`
	Television2    bool      `db:"television_2" json:"television_2"`
	EquipoDeSonido bool      `db:"equipo_de_sonido" json:"equipo_de_sonido"`
	Ducha          bool      `db:"ducha" json:"ducha"`
	Focos          bool      `db:"focos" json:"focos"`
}

// ApplianceFields lists the boolean columns of casa_doma in table order.
var ApplianceFields = []string{
	"lavadora",
	"secadora",
	"refrigerador",
	"microondas",
	"television_1",
	"television_2",
	"equipo_de_sonido",
	"ducha",
	"focos",
}

func (c *CasaDoma) flag(field string) *bool {
	switch field {
	case "lavadora":
		return &c.Lavadora
	case "secadora":
		return &c.Secadora
	case "refrigerador":
		return &c.Refrigerador
	case "microondas":
		return &c.Microondas
	case "television_1":
		return &c.Television1
	case "television_2":
		return &c.Television2
	case "equipo_de_sonido":
		return &c.EquipoDeSonido
	case "ducha":
		return &c.Ducha
	case "focos":
		return &c.Focos
	}
	return nil
}

// IsApplianceField reports whether field names a boolean column of casa_doma.
func IsApplianceField(field string) bool {
	return (&CasaDoma{}).flag(field) != nil
}

// State returns whether the appliance stored in field was on in this sample.
func (c CasaDoma) State(field string) (bool, error) {
	p := c.flag(field)
	if p == nil {
		return false, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return *p, nil
}

// Set switches the appliance stored in field on or off.
func (c *CasaDoma) Set(field string, on bool) error {
	p := c.flag(field)
	if p == nil {
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	*p = on
	return nil
}

// ActiveConsumption sums the per-interval consumption (Ws) of every device
// that is on in this sample. Devices bound to unknown fields are skipped.
func (c CasaDoma) ActiveConsumption(devices []Device) float64 {
	total := 0.0
	for _, d := range devices {
		if on, err := c.State(d.Field); err == nil && on {
			total += d.Consumption
		}
	}
	return total
}

// Measurement is one sample of the photovoltaic prototype (privietfotonv).
type Measurement struct {
	ID              int64     `db:"id" json:"id"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	PanelVoltage    float64   `db:"voltaje_panel" json:"voltaje_panel"`
	PanelCurrent    float64   `db:"corriente_panel" json:"corriente_panel"`
	PanelPower      float64   `db:"potencia_panel" json:"potencia_panel"`
	BatteryVoltage  float64   `db:"voltaje_bateria" json:"voltaje_bateria"`
	BatteryEnergyWh float64   `db:"energia_bateria" json:"energia_bateria"`
}

// AnalysisRun is an archived exchange with the computation service.
type AnalysisRun struct {
	RunID     string          `json:"run_id"`
	Kind      string          `json:"kind"`
	CreatedAt time.Time       `json:"created_at"`
	Input     json.RawMessage `json:"input"`
	Output    json.RawMessage `json:"output"`
}
