package cloud

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/rs/zerolog/log"

	"github.com/ANIKETSHETTY47/zero-energy-home/internal/domain"
)

type snsAPI interface {
	Publish(ctx context.Context, in *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// SNSClient publishes household alerts to a topic.
type SNSClient struct {
	svc      snsAPI
	topicArn string
}

// NewSNSClient creates a new SNS client instance
func NewSNSClient(ctx context.Context, region, topicArn string) (*SNSClient, error) {
	cfg, err := loadConfig(ctx, region)
	if err != nil {
		return nil, err
	}
	return &SNSClient{svc: sns.NewFromConfig(cfg), topicArn: topicArn}, nil
}

// SendAlert sends an alert notification via SNS
func (c *SNSClient) SendAlert(ctx context.Context, subject, message string) error {
	input := &sns.PublishInput{
		TopicArn: aws.String(c.topicArn),
		Subject:  aws.String(subject),
		Message:  aws.String(message),
	}

	result, err := c.svc.Publish(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to publish to SNS: %w", err)
	}
	log.Debug().Str("message_id", aws.ToString(result.MessageId)).Msg("alert sent")
	return nil
}

// SendConsumptionAlert reports a household sample whose draw crossed the
// alert threshold, listing the appliances that were on.
func (c *SNSClient) SendConsumptionAlert(ctx context.Context, sample domain.CasaDoma, activeWs float64) error {
	var on []string
	for _, d := range domain.Devices() {
		if state, err := sample.State(d.Field); err == nil && state {
			on = append(on, fmt.Sprintf("%s %s (%.0f Ws)", d.Icon, d.Name, d.Consumption))
		}
	}

	subject := "Zero Energy Home: High Consumption"
	message := fmt.Sprintf(
		"High Household Consumption\n\n"+
			"Sample: %d\n"+
			"Time: %s\n"+
			"Consumption: %.0f Ws per %d s interval\n"+
			"Appliances on:\n  %s\n",
		sample.ID,
		sample.FechaHora.Format(time.RFC3339),
		activeWs,
		domain.IntervalSeconds,
		strings.Join(on, "\n  "),
	)
	return c.SendAlert(ctx, subject, message)
}
