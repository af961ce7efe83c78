package storage

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/cloudgov/console/pkg/cloud"
	"github.com/pkg/errors"
)

// DynamoDBResourceStorage reads the resource inventory from a DynamoDB
// table maintained outside the console.
type DynamoDBResourceStorage struct {
	client    *dynamodb.Client
	tableName string
}

func NewDynamoDBResourceStorage(ctx context.Context, tableName string) (*DynamoDBResourceStorage, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, err
	}

	client := dynamodb.NewFromConfig(cfg)
	return &DynamoDBResourceStorage{client, tableName}, nil
}

func (s *DynamoDBResourceStorage) List() ([]cloud.AWSResource, error) {
	response, err := s.client.Scan(context.TODO(), &dynamodb.ScanInput{
		TableName: &s.tableName,
	})
	if err != nil {
		return nil, err
	}

	resources := []cloud.AWSResource{}
	if err := attributevalue.UnmarshalListOfMaps(response.Items, &resources); err != nil {
		return nil, errors.Wrap(err, "unmarshalling items")
	}

	return resources, nil
}

func (s *DynamoDBResourceStorage) Get(id string) (*cloud.AWSResource, error) {
	response, err := s.client.GetItem(context.TODO(), &dynamodb.GetItemInput{
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		TableName: &s.tableName,
	})
	if err != nil {
		return nil, err
	}

	if response.Item == nil {
		return nil, nil
	}

	var r cloud.AWSResource
	if err := attributevalue.UnmarshalMap(response.Item, &r); err != nil {
		return nil, errors.Wrap(err, "unmarshalling item")
	}

	return &r, nil
}
