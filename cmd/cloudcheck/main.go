package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/ANIKETSHETTY47/zero-energy-home/internal/cloud"
	"github.com/ANIKETSHETTY47/zero-energy-home/internal/config"
	"github.com/ANIKETSHETTY47/zero-energy-home/internal/domain"
)

// cloudcheck round-trips the configured bucket and run table, and
// optionally publishes a test alert.
func main() {
	alert := flag.Bool("alert", false, "publish a test consumption alert")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := config.Load(); err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}
	region := config.AWSRegion()

	s3c, err := cloud.NewS3Client(ctx, region, config.S3Bucket())
	if err != nil {
		log.Fatal().Err(err).Msg("s3 client")
	}
	key := fmt.Sprintf("snapshots/cloudcheck/%s.json", time.Now().UTC().Format(time.RFC3339))
	body := []byte(`{"check":true}`)
	url, err := s3c.UploadSnapshot(ctx, key, body)
	if err != nil {
		log.Fatal().Err(err).Msg("s3 upload")
	}
	got, err := s3c.DownloadSnapshot(ctx, key)
	if err != nil {
		log.Fatal().Err(err).Msg("s3 download")
	}
	if !bytes.Equal(got, body) {
		log.Fatal().Str("key", key).Msg("s3 round trip mismatch")
	}
	log.Info().Str("key", key).Str("url", url).Msg("s3 ok")

	ddb, err := cloud.NewDynamoDBClient(ctx, region, config.DynamoDBRunsTable())
	if err != nil {
		log.Fatal().Err(err).Msg("dynamodb client")
	}
	run := domain.AnalysisRun{
		RunID:     uuid.NewString(),
		Kind:      "cloudcheck",
		CreatedAt: time.Now().UTC(),
		Input:     []byte(`{}`),
		Output:    []byte(`{}`),
	}
	if err := ddb.PutRun(ctx, run); err != nil {
		log.Fatal().Err(err).Msg("dynamodb put")
	}
	runs, err := ddb.ListRuns(ctx, run.Kind)
	if err != nil {
		log.Fatal().Err(err).Msg("dynamodb query")
	}
	log.Info().Int("runs", len(runs)).Str("table", config.DynamoDBRunsTable()).Msg("dynamodb ok")

	if *alert {
		snsc, err := cloud.NewSNSClient(ctx, region, config.SNSTopicArn())
		if err != nil {
			log.Fatal().Err(err).Msg("sns client")
		}
		if err := snsc.SendAlert(ctx, "Zero Energy Home: cloudcheck", "test alert from cloudcheck"); err != nil {
			log.Fatal().Err(err).Msg("sns publish")
		}
		log.Info().Msg("sns ok")
	}
}
