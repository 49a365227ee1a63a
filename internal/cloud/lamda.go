package cloud

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/lambda/types"
)

type lambdaAPI interface {
	Invoke(ctx context.Context, in *lambda.InvokeInput, optFns ...func(*lambda.Options)) (*lambda.InvokeOutput, error)
}

// LambdaClient runs analyses as Lambda functions named
// <prefix><operation>, with "/" in the operation replaced by "-".
type LambdaClient struct {
	svc    lambdaAPI
	prefix string
}

// NewLambdaClient creates a new Lambda client instance
func NewLambdaClient(ctx context.Context, region, prefix string) (*LambdaClient, error) {
	cfg, err := loadConfig(ctx, region)
	if err != nil {
		return nil, err
	}
	return &LambdaClient{svc: lambda.NewFromConfig(cfg), prefix: prefix}, nil
}

// FunctionName returns the Lambda function that serves op
func (c *LambdaClient) FunctionName(op string) string {
	return c.prefix + strings.ReplaceAll(op, "/", "-")
}

// Call invokes the function synchronously and decodes its payload into out.
func (c *LambdaClient) Call(ctx context.Context, op string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	result, err := c.svc.Invoke(ctx, &lambda.InvokeInput{
		FunctionName:   aws.String(c.FunctionName(op)),
		Payload:        payload,
		InvocationType: types.InvocationTypeRequestResponse,
	})
	if err != nil {
		return fmt.Errorf("failed to invoke Lambda: %w", err)
	}
	if result.FunctionError != nil {
		return fmt.Errorf("Lambda function error: %s: %s", aws.ToString(result.FunctionError), result.Payload)
	}

	if err := json.Unmarshal(result.Payload, out); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return nil
}
