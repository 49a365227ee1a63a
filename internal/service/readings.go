package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ANIKETSHETTY47/zero-energy-home/internal/domain"
)

var ErrUnknownTopic = errors.New("unknown topic")

// Topics maps MQTT topics to the table their payloads land in.
type Topics struct {
	CasaDoma  string
	Prototype string
}

func (t Topics) withDefaults() Topics {
	if t.CasaDoma == "" {
		t.CasaDoma = "zeh/casa_doma"
	}
	if t.Prototype == "" {
		t.Prototype = "zeh/prototype"
	}
	return t
}

type ReadingService struct {
	store       Store
	consumption *ConsumptionService
	notifier    Notifier
	thresholdWs float64
	topics      Topics
}

// Topics returns the topics FromMQTT accepts.
func (s *ReadingService) Topics() Topics { return s.topics }

func (s *ReadingService) FromMQTT(ctx context.Context, topic string, payload []byte) error {
	switch topic {
	case s.topics.CasaDoma:
		var c domain.CasaDoma
		if err := json.Unmarshal(payload, &c); err != nil {
			return fmt.Errorf("decode casa_doma sample: %w", err)
		}
		return s.IngestCasaDoma(ctx, &c)
	case s.topics.Prototype:
		var m domain.Measurement
		if err := json.Unmarshal(payload, &m); err != nil {
			return fmt.Errorf("decode prototype measurement: %w", err)
		}
		return s.IngestMeasurement(ctx, &m)
	}
	return fmt.Errorf("%w: %s", ErrUnknownTopic, topic)
}

// IngestCasaDoma stores a household sample and raises a consumption alert
// when its draw reaches the configured threshold.
func (s *ReadingService) IngestCasaDoma(ctx context.Context, c *domain.CasaDoma) error {
	if c.FechaHora.IsZero() {
		c.FechaHora = time.Now()
	}
	if err := s.store.InsertCasaDoma(ctx, c); err != nil {
		return fmt.Errorf("insert casa_doma: %w", err)
	}

	if s.notifier == nil || s.thresholdWs <= 0 {
		return nil
	}
	ws := s.consumption.ActiveWs(*c)
	if ws < s.thresholdWs {
		return nil
	}
	if err := s.notifier.SendConsumptionAlert(ctx, *c, ws); err != nil {
		log.Error().Err(err).Int64("id", c.ID).Msg("consumption alert failed")
	}
	return nil
}

func (s *ReadingService) IngestMeasurement(ctx context.Context, m *domain.Measurement) error {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	if err := s.store.InsertMeasurement(ctx, m); err != nil {
		return fmt.Errorf("insert privietfotonv: %w", err)
	}
	return nil
}
