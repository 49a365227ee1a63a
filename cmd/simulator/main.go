package main

import (
	"encoding/json"
	"math/rand"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"

	"github.com/ANIKETSHETTY47/zero-energy-home/internal/config"
	"github.com/ANIKETSHETTY47/zero-energy-home/internal/domain"
)

// chance an appliance is on in any interval; the rest default to 0.2
var onChance = map[string]float64{
	"refrigerador": 0.9,
	"focos":        0.5,
	"ducha":        0.05,
	"secadora":     0.1,
}

func householdSample(rng *rand.Rand, at time.Time) domain.CasaDoma {
	c := domain.CasaDoma{FechaHora: at}
	for _, field := range domain.ApplianceFields {
		p, ok := onChance[field]
		if !ok {
			p = 0.2
		}
		_ = c.Set(field, rng.Float64() < p)
	}
	return c
}

func prototypeSample(rng *rand.Rand, at time.Time) domain.Measurement {
	v := 12 + rng.Float64()*1.5
	i := rng.Float64() * 0.18
	return domain.Measurement{
		CreatedAt:       at,
		PanelVoltage:    v,
		PanelCurrent:    i,
		PanelPower:      v * i,
		BatteryVoltage:  3.3 + rng.Float64()*0.9,
		BatteryEnergyWh: rng.Float64() * 25.16,
	}
}

func main() {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	if err := config.Load(); err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}
	opts := mqtt.NewClientOptions().AddBroker(config.MQTTBroker()).SetClientID("zeh-simulator")
	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		log.Fatal().Err(token.Error()).Msg("mqtt connect")
	}
	defer client.Disconnect(250)

	publish := func(topic string, v any) {
		payload, err := json.Marshal(v)
		if err != nil {
			log.Error().Err(err).Msg("marshal sample")
			return
		}
		token := client.Publish(topic, 0, false, payload)
		if token.Wait() && token.Error() != nil {
			log.Error().Err(token.Error()).Str("topic", topic).Msg("publish failed")
		}
	}

	for i := 0; i < 100; i++ {
		now := time.Now().UTC()
		publish(config.MQTTTopicCasaDoma(), householdSample(rng, now))
		publish(config.MQTTTopicPrototype(), prototypeSample(rng, now))
		time.Sleep(500 * time.Millisecond)
	}
	log.Info().Msg("simulation done")
}
