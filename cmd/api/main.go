package main

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ANIKETSHETTY47/zero-energy-home/internal/analysis"
	"github.com/ANIKETSHETTY47/zero-energy-home/internal/cloud"
	"github.com/ANIKETSHETTY47/zero-energy-home/internal/config"
	"github.com/ANIKETSHETTY47/zero-energy-home/internal/database"
	"github.com/ANIKETSHETTY47/zero-energy-home/internal/domain"
	httpHandlers "github.com/ANIKETSHETTY47/zero-energy-home/internal/http"
	"github.com/ANIKETSHETTY47/zero-energy-home/internal/service"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	ctx := context.Background()

	if err := config.Load(); err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}
	if err := domain.ValidateCatalog(domain.Devices()); err != nil {
		log.Fatal().Err(err).Msg("device catalogue invalid")
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

	svcs := service.New(db, options(ctx))
	app := fiber.New()

	httpHandlers.Register(app, svcs)

	addr := config.APIAddr()
	log.Info().Str("addr", addr).Msg("api listening")
	log.Fatal().Err(app.Listen(addr)).Msg("server exit")
}

func options(ctx context.Context) service.Options {
	opts := service.Options{
		LoaderLimit: config.LoaderLimit(),
		Tariff: service.Tariff{
			Rate:   config.EnergyRate(),
			Period: config.TariffPeriod(),
			Window: config.ConsumptionWindow(),
		},
		Spikes: service.SpikeDetection{
			Threshold: config.SpikeThreshold(),
			Window:    config.SpikeWindow(),
		},
		AlertThresholdWs: config.ConsumptionAlertWs(),
		Topics: service.Topics{
			CasaDoma:  config.MQTTTopicCasaDoma(),
			Prototype: config.MQTTTopicPrototype(),
		},
	}

	switch backend := config.AnalysisBackend(); backend {
	case "lambda":
		lc, err := cloud.NewLambdaClient(ctx, config.AWSRegion(), "zeh-")
		if err != nil {
			log.Error().Err(err).Msg("lambda client init failed; analysis disabled")
			break
		}
		opts.Analysis = analysis.NewClient(lc)
	case "http":
		if config.AnalysisURL() != "" {
			opts.Analysis = analysis.NewClient(analysis.NewHTTPTransport(config.AnalysisURL()))
		}
	default:
		log.Warn().Str("backend", backend).Msg("unknown analysis backend; analysis disabled")
	}

	if !config.UseCloudServices() {
		return opts
	}

	region := config.AWSRegion()
	if bucket := config.S3Bucket(); bucket != "" {
		s3c, err := cloud.NewS3Client(ctx, region, bucket)
		if err != nil {
			log.Error().Err(err).Msg("s3 client init failed; exports disabled")
		} else {
			opts.Snapshots = s3c
		}
	}
	if arn := config.SNSTopicArn(); arn != "" {
		snsc, err := cloud.NewSNSClient(ctx, region, arn)
		if err != nil {
			log.Error().Err(err).Msg("sns client init failed; alerts disabled")
		} else {
			opts.Notifier = snsc
		}
	}
	ddb, err := cloud.NewDynamoDBClient(ctx, region, config.DynamoDBRunsTable())
	if err != nil {
		log.Error().Err(err).Msg("dynamodb client init failed; run archive disabled")
	} else {
		opts.Runs = ddb
	}

	log.Info().Str("region", region).Msg("cloud services enabled")
	return opts
}
