package analysis

import "fmt"

// ValidationError reports an input rejected before it reaches the
// computation service.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

func checkRange(field string, r [2]float64) error {
	if r[0] > r[1] {
		return invalid(field, "lower bound exceeds upper bound")
	}
	return nil
}

func (in SimulationInput) Validate() error {
	if in.NumSimulations <= 0 {
		return invalid("num_simulaciones", "must be positive")
	}
	if err := checkRange("precio_energia_range", in.EnergyPriceRange); err != nil {
		return err
	}
	if err := checkRange("produccion_solar_range", in.SolarProductionRange); err != nil {
		return err
	}
	if err := checkRange("consumo_energia_range", in.EnergyConsumptionRange); err != nil {
		return err
	}
	if in.MonthlyTax < 0 {
		return invalid("impuesto_mensual", "must not be negative")
	}
	if in.Region == "" {
		return invalid("region", "is required")
	}
	if in.HouseArea <= 0 {
		return invalid("area_vivienda", "must be positive")
	}
	if in.MonthlyConsumption < 0 {
		return invalid("consumo_mensual", "must not be negative")
	}
	return nil
}

func (c SolarSystemConfig) Validate() error {
	if len(c.SolarGeneration) == 0 {
		return invalid("generacion_solar", "is required")
	}
	if len(c.SolarGeneration) != len(c.EnergyConsumption) {
		return invalid("consumo_energia", fmt.Sprintf("has %d periods, generacion_solar has %d",
			len(c.EnergyConsumption), len(c.SolarGeneration)))
	}
	if c.XMax <= 0 {
		return invalid("X_max", "must be positive")
	}
	return nil
}

func (c SolarPanelConfig) Validate() error {
	switch {
	case c.Area <= 0:
		return invalid("area", "must be positive")
	case c.Efficiency <= 0 || c.Efficiency > 1:
		return invalid("efficiency", "must be in (0, 1]")
	case c.AvgRadiation < 0:
		return invalid("avgRadiation", "must not be negative")
	case c.SunHours <= 0 || c.SunHours > 24:
		return invalid("sunHours", "must be in (0, 24]")
	}
	return nil
}

func (c ForecastConfig) Validate() error {
	if len(c.Appliances) == 0 {
		return invalid("electrodomesticos", "is required")
	}
	for name, w := range c.Appliances {
		if w < 0 {
			return invalid("electrodomesticos", fmt.Sprintf("%s has negative consumption", name))
		}
	}
	if c.HistoricalDays <= 0 {
		return invalid("dias_historicos", "must be positive")
	}
	for _, o := range c.ARIMAOrder {
		if o < 0 {
			return invalid("orden_arima", "orders must not be negative")
		}
	}
	if c.ConfidenceLevel <= 0 || c.ConfidenceLevel >= 1 {
		return invalid("intervalo_confianza", "must be in (0, 1)")
	}
	return nil
}
