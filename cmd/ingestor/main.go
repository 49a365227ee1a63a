package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"

	"github.com/ANIKETSHETTY47/zero-energy-home/internal/cloud"
	"github.com/ANIKETSHETTY47/zero-energy-home/internal/config"
	"github.com/ANIKETSHETTY47/zero-energy-home/internal/database"
	"github.com/ANIKETSHETTY47/zero-energy-home/internal/service"
)

// newHandler persists each message under its own deadline, so messages still
// draining after shutdown begins are not cancelled.
func newHandler(readings *service.ReadingService, timeout time.Duration) mqtt.MessageHandler {
	return func(_ mqtt.Client, msg mqtt.Message) {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := readings.FromMQTT(ctx, msg.Topic(), msg.Payload()); err != nil {
			log.Error().Err(err).Str("topic", msg.Topic()).Msg("ingest failed")
		}
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := config.Load(); err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}

	db, err := database.Connect()
	if err != nil {
		log.Fatal().Err(err).Msg("db connect failed")
	}
	defer db.Close()

	if config.DBMigrate() {
		if err := database.Migrate(ctx, db); err != nil {
			log.Fatal().Err(err).Msg("db migrate failed")
		}
	}

	opts := service.Options{
		Tariff:           service.Tariff{Rate: config.EnergyRate(), Period: config.TariffPeriod()},
		AlertThresholdWs: config.ConsumptionAlertWs(),
		Topics: service.Topics{
			CasaDoma:  config.MQTTTopicCasaDoma(),
			Prototype: config.MQTTTopicPrototype(),
		},
	}
	if config.UseCloudServices() && config.SNSTopicArn() != "" {
		snsc, err := cloud.NewSNSClient(ctx, config.AWSRegion(), config.SNSTopicArn())
		if err != nil {
			log.Error().Err(err).Msg("sns client init failed; alerts disabled")
		} else {
			opts.Notifier = snsc
		}
	}
	svcs := service.New(db, opts)

	clientOpts := mqtt.NewClientOptions().AddBroker(config.MQTTBroker()).SetClientID("zeh-ingestor")
	client := mqtt.NewClient(clientOpts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		log.Fatal().Err(token.Error()).Msg("mqtt connect")
	}
	defer client.Disconnect(250)

	handler := newHandler(svcs.Readings, 10*time.Second)

	topics := svcs.Readings.Topics()
	subscribed := []string{topics.CasaDoma, topics.Prototype}
	for _, topic := range subscribed {
		if token := client.Subscribe(topic, 0, handler); token.Wait() && token.Error() != nil {
			log.Fatal().Err(token.Error()).Str("topic", topic).Msg("subscribe failed")
		}
	}

	log.Info().Str("casa_doma", topics.CasaDoma).Str("prototype", topics.Prototype).Msg("ingestor running; Ctrl+C to stop")
	<-ctx.Done()
	log.Info().Msg("ingestor stopping")
	if token := client.Unsubscribe(subscribed...); token.WaitTimeout(5*time.Second) && token.Error() != nil {
		log.Error().Err(token.Error()).Msg("unsubscribe failed")
	}
}
