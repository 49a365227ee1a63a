package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/ANIKETSHETTY47/zero-energy-home/internal/domain"
)

// PageService backs the electrical-consumption and prototype pages. Loader
// failures are logged and surface to callers as empty data.
type PageService struct {
	store Store
	limit int
}

type ElectricalConsumptionData struct {
	CasaDoma []domain.CasaDoma `json:"casaDoma"`
}

type PrototypeData struct {
	Mediciones []domain.Measurement `json:"mediciones"`
}

// ElectricalConsumption loads the newest household samples. Whatever rows the
// store returned are kept even when it also reported an error.
func (p *PageService) ElectricalConsumption(ctx context.Context) ElectricalConsumptionData {
	rows, err := p.store.ListCasaDoma(ctx, p.limit)
	if err != nil {
		log.Error().Err(err).Str("table", "casa_doma").Msg("error loading data")
	}
	if rows == nil {
		rows = []domain.CasaDoma{}
	}
	return ElectricalConsumptionData{CasaDoma: rows}
}

// Prototype loads the newest prototype measurements.
func (p *PageService) Prototype(ctx context.Context) PrototypeData {
	rows, err := p.store.ListMeasurements(ctx, p.limit)
	if err != nil {
		log.Error().Err(err).Str("table", "privietfotonv").Msg("error loading data")
		return PrototypeData{Mediciones: []domain.Measurement{}}
	}
	if rows == nil {
		rows = []domain.Measurement{}
	}
	return PrototypeData{Mediciones: rows}
}
