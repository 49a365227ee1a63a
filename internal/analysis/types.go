package analysis

import (
	"encoding/json"
	"fmt"
)

// Monte Carlo financial simulation.

type SimulationInput struct {
	NumSimulations         int        `json:"num_simulaciones"`
	EnergyPriceRange       [2]float64 `json:"precio_energia_range"`
	SolarProductionRange   [2]float64 `json:"produccion_solar_range"`
	EnergyConsumptionRange [2]float64 `json:"consumo_energia_range"`
	MonthlyTax             float64    `json:"impuesto_mensual"`
	Region                 string     `json:"region"`
	HouseArea              float64    `json:"area_vivienda"`
	MonthlyConsumption     float64    `json:"consumo_mensual"`
}

type SimulationResults struct {
	HouseArea               float64 `json:"area_vivienda"`
	MonthlyConsumption      float64 `json:"consumo_mensual"`
	AverageInvestment       float64 `json:"inversion_promedio"`
	AveragePaybackPeriod    float64 `json:"periodo_recuperacion_promedio"`
	PositiveNPVProbability  float64 `json:"probabilidad_vpn_positivo"`
	AverageAnnualProduction float64 `json:"produccion_anual_promedio"`
	Region                  string  `json:"region"`
	AverageROI              float64 `json:"roi_promedio"`
	AverageNPV              float64 `json:"vpn_promedio"`
}

// Linear programming sizing of panel area and battery capacity.

type SolarSystemConfig struct {
	K                 float64   `json:"K"`
	C1                float64   `json:"c1"`
	C2                float64   `json:"c2"`
	C3                float64   `json:"c3"`
	C4                float64   `json:"c4"`
	Gamma             float64   `json:"gamma"`
	R                 float64   `json:"r"`
	XMax              float64   `json:"X_max"`
	SolarGeneration   []float64 `json:"generacion_solar"`
	EnergyConsumption []float64 `json:"consumo_energia"`
}

type SizingResult struct {
	PanelAreaM2          float64   `json:"Area_Panel_m2"`
	BatteryCapacityKWh   float64   `json:"Capacidad_Bateria_kWh"`
	StateOfChargeKWh     []float64 `json:"Estado_Carga_kWh"`
	EnergyConsumptionKWh []float64 `json:"Consumo_Energetico_kWh"`
	SolarGenerationKWhM2 []float64 `json:"Generacion_Solar_kWh_m2"`
}

type OptimizationResults struct {
	Results SizingResult `json:"results"`
}

// Non-linear programming of panel tilt and orientation.

type SolarPanelConfig struct {
	Area         float64 `json:"area"`
	Efficiency   float64 `json:"efficiency"`
	AvgRadiation float64 `json:"avgRadiation"`
	SunHours     float64 `json:"sunHours"`
}

const (
	keyHour        = "Hora"
	keyRadiation   = "Radiación Solar (kWh/m²)"
	keyTilt        = "Inclinación (θ)"
	keyOrientation = "Orientación (φ)"
	keyEnergy      = "Energía Generada (kWh)"
)

// OptimizationResult is one hour of the tilt/orientation optimisation. Its
// wire keys are not valid struct tags, so it carries its own codec.
type OptimizationResult struct {
	Hour           float64
	RadiationKWhM2 float64
	Tilt           float64
	Orientation    float64
	EnergyKWh      float64
}

func (r OptimizationResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]float64{
		keyHour:        r.Hour,
		keyRadiation:   r.RadiationKWhM2,
		keyTilt:        r.Tilt,
		keyOrientation: r.Orientation,
		keyEnergy:      r.EnergyKWh,
	})
}

func (r *OptimizationResult) UnmarshalJSON(b []byte) error {
	var m map[string]float64
	if err := json.Unmarshal(b, &m); err != nil {
		return fmt.Errorf("optimization result: %w", err)
	}
	*r = OptimizationResult{
		Hour:           m[keyHour],
		RadiationKWhM2: m[keyRadiation],
		Tilt:           m[keyTilt],
		Orientation:    m[keyOrientation],
		EnergyKWh:      m[keyEnergy],
	}
	return nil
}

// ARIMA consumption forecasting.

type Appliance struct {
	Name        string  `json:"nombre"`
	Consumption float64 `json:"consumo"`
}

type ForecastConfig struct {
	Appliances      map[string]float64 `json:"electrodomesticos"`
	HistoricalDays  int                `json:"dias_historicos"`
	ARIMAOrder      [3]int             `json:"orden_arima"`
	ConfidenceLevel float64            `json:"intervalo_confianza"`
}

// HistoricalRecord is one day of history: a date plus one column per
// appliance (and totals) as produced by the forecasting service. Numeric
// columns land in Values, textual ones in Labels.
type HistoricalRecord struct {
	Date   string
	Values map[string]float64
	Labels map[string]string
}

const keyDate = "Fecha"

func (h HistoricalRecord) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(h.Values)+len(h.Labels)+1)
	for k, v := range h.Labels {
		m[k] = v
	}
	for k, v := range h.Values {
		m[k] = v
	}
	m[keyDate] = h.Date
	return json.Marshal(m)
}

func (h *HistoricalRecord) UnmarshalJSON(b []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("historical record: %w", err)
	}
	out := HistoricalRecord{Values: map[string]float64{}, Labels: map[string]string{}}
	for k, v := range raw {
		if k == keyDate {
			date, ok := v.(string)
			if !ok {
				return fmt.Errorf("historical record %s: expected string, got %T", keyDate, v)
			}
			out.Date = date
			continue
		}
		switch v := v.(type) {
		case float64:
			out.Values[k] = v
		case string:
			out.Labels[k] = v
		default:
			return fmt.Errorf("historical record %s: expected number or string, got %T", k, v)
		}
	}
	*h = out
	return nil
}

type ConfidenceInterval struct {
	Lower float64 `json:"inferior"`
	Upper float64 `json:"superior"`
}

type Prediction struct {
	Date                 string             `json:"fecha_prediccion"`
	PredictedConsumption float64            `json:"consumo_predicho"`
	ConfidenceInterval   ConfidenceInterval `json:"intervalo_confianza"`
}

type ForecastResults struct {
	History    []HistoricalRecord `json:"historico"`
	Prediction Prediction         `json:"prediccion"`
}

type ForecastResult struct {
	Status  string          `json:"status"`
	Results ForecastResults `json:"results"`
}
