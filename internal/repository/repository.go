package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/ANIKETSHETTY47/zero-energy-home/internal/domain"
)

type Repos struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Repos { return &Repos{db: db} }

const casaDomaColumns = `id, fecha_hora, lavadora, secadora, refrigerador, microondas,
	television_1, television_2, equipo_de_sonido, ducha, focos`

const measurementColumns = `id, created_at, voltaje_panel, corriente_panel, potencia_panel,
	voltaje_bateria, energia_bateria`

// ListCasaDoma returns the newest household samples first.
func (r *Repos) ListCasaDoma(ctx context.Context, limit int) ([]domain.CasaDoma, error) {
	var out []domain.CasaDoma
	err := r.db.SelectContext(ctx, &out,
		`SELECT `+casaDomaColumns+` FROM casa_doma ORDER BY fecha_hora DESC LIMIT $1`, limit)
	return out, err
}

// ListMeasurements returns the newest prototype measurements first.
func (r *Repos) ListMeasurements(ctx context.Context, limit int) ([]domain.Measurement, error) {
	var out []domain.Measurement
	err := r.db.SelectContext(ctx, &out,
		`SELECT `+measurementColumns+` FROM privietfotonv ORDER BY created_at DESC LIMIT $1`, limit)
	return out, err
}

func (r *Repos) InsertCasaDoma(ctx context.Context, c *domain.CasaDoma) error {
	rows, err := r.db.NamedQueryContext(ctx, `INSERT INTO casa_doma(fecha_hora, lavadora, secadora, refrigerador,
		microondas, television_1, television_2, equipo_de_sonido, ducha, focos)
		VALUES (:fecha_hora, :lavadora, :secadora, :refrigerador, :microondas, :television_1,
		:television_2, :equipo_de_sonido, :ducha, :focos) RETURNING id`, c)
	if err != nil {
		return err
	}
	defer rows.Close()
	if rows.Next() {
		return rows.Scan(&c.ID)
	}
	return rows.Err()
}

func (r *Repos) InsertMeasurement(ctx context.Context, m *domain.Measurement) error {
	rows, err := r.db.NamedQueryContext(ctx, `INSERT INTO privietfotonv(created_at, voltaje_panel, corriente_panel,
		potencia_panel, voltaje_bateria, energia_bateria)
		VALUES (:created_at, :voltaje_panel, :corriente_panel, :potencia_panel, :voltaje_bateria,
		:energia_bateria) RETURNING id`, m)
	if err != nil {
		return err
	}
	defer rows.Close()
	if rows.Next() {
		return rows.Scan(&m.ID)
	}
	return rows.Err()
}
