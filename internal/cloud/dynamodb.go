package cloud

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/ANIKETSHETTY47/zero-energy-home/internal/domain"
)

type dynamoAPI interface {
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, in *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	Scan(ctx context.Context, in *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// DynamoDBClient archives analysis runs. The table is keyed by kind
// (partition) and createdAt in unix milliseconds (sort).
type DynamoDBClient struct {
	svc   dynamoAPI
	table string
}

// NewDynamoDBClient creates a new DynamoDB client for the run archive table
func NewDynamoDBClient(ctx context.Context, region, table string) (*DynamoDBClient, error) {
	cfg, err := loadConfig(ctx, region)
	if err != nil {
		return nil, err
	}
	return &DynamoDBClient{svc: dynamodb.NewFromConfig(cfg), table: table}, nil
}

// Run is the stored shape of an analysis run.
type Run struct {
	Kind      string `dynamodbav:"kind"`
	CreatedAt int64  `dynamodbav:"createdAt"`
	RunID     string `dynamodbav:"runId"`
	Input     string `dynamodbav:"input"`
	Output    string `dynamodbav:"output"`
}

func toRun(r domain.AnalysisRun) Run {
	return Run{
		Kind:      r.Kind,
		CreatedAt: r.CreatedAt.UnixMilli(),
		RunID:     r.RunID,
		Input:     string(r.Input),
		Output:    string(r.Output),
	}
}

func (r Run) toDomain() domain.AnalysisRun {
	return domain.AnalysisRun{
		RunID:     r.RunID,
		Kind:      r.Kind,
		CreatedAt: time.UnixMilli(r.CreatedAt).UTC(),
		Input:     []byte(r.Input),
		Output:    []byte(r.Output),
	}
}

// PutRun stores an analysis run in DynamoDB
func (c *DynamoDBClient) PutRun(ctx context.Context, run domain.AnalysisRun) error {
	item, err := attributevalue.MarshalMap(toRun(run))
	if err != nil {
		return fmt.Errorf("failed to marshal run: %w", err)
	}

	_, err = c.svc.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(c.table),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("failed to put item in DynamoDB: %w", err)
	}
	return nil
}

// ListRuns returns runs of one kind, newest first. An empty kind scans the
// whole archive.
func (c *DynamoDBClient) ListRuns(ctx context.Context, kind string) ([]domain.AnalysisRun, error) {
	var items []map[string]types.AttributeValue
	if kind == "" {
		result, err := c.svc.Scan(ctx, &dynamodb.ScanInput{TableName: aws.String(c.table)})
		if err != nil {
			return nil, fmt.Errorf("failed to scan runs: %w", err)
		}
		items = result.Items
	} else {
		result, err := c.svc.Query(ctx, &dynamodb.QueryInput{
			TableName:              aws.String(c.table),
			KeyConditionExpression: aws.String("#k = :kind"),
			ExpressionAttributeNames: map[string]string{
				"#k": "kind",
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":kind": &types.AttributeValueMemberS{Value: kind},
			},
			ScanIndexForward: aws.Bool(false), // Sort descending (newest first)
		})
		if err != nil {
			return nil, fmt.Errorf("failed to query runs: %w", err)
		}
		items = result.Items
	}

	var stored []Run
	if err := attributevalue.UnmarshalListOfMaps(items, &stored); err != nil {
		return nil, fmt.Errorf("failed to unmarshal runs: %w", err)
	}
	sort.SliceStable(stored, func(i, j int) bool { return stored[i].CreatedAt > stored[j].CreatedAt })

	runs := make([]domain.AnalysisRun, len(stored))
	for i, r := range stored {
		runs[i] = r.toDomain()
	}
	return runs, nil
}
