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

// DynamoDBFindingStorage is a finding storage backend which uses DynamoDB.
type DynamoDBFindingStorage struct {
	client    *dynamodb.Client
	tableName string
}

// NewDynamoDBFindingStorage initialises the AWS DynamoDB client and
// returns a new DynamoDBFindingStorage.
func NewDynamoDBFindingStorage(ctx context.Context, tableName string) (*DynamoDBFindingStorage, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, err
	}

	client := dynamodb.NewFromConfig(cfg)
	return &DynamoDBFindingStorage{client, tableName}, nil
}

// List all findings.
// TODO: this uses a DynamoDB Scan; paginate with Query before pointing
// this at tables beyond dashboard scale.
func (s *DynamoDBFindingStorage) List() ([]cloud.SecurityFinding, error) {
	response, err := s.client.Scan(context.TODO(), &dynamodb.ScanInput{
		TableName: &s.tableName,
	})
	if err != nil {
		return nil, err
	}

	findings := []cloud.SecurityFinding{}
	if err := attributevalue.UnmarshalListOfMaps(response.Items, &findings); err != nil {
		return nil, errors.Wrap(err, "unmarshalling items")
	}

	return findings, nil
}

func (s *DynamoDBFindingStorage) ListForStatus(status cloud.FindingStatus) ([]cloud.SecurityFinding, error) {
	all, err := s.List()
	if err != nil {
		return nil, err
	}

	findings := []cloud.SecurityFinding{}
	for _, f := range all {
		if f.Status == status {
			findings = append(findings, f)
		}
	}
	return findings, nil
}

func (s *DynamoDBFindingStorage) Get(id string) (*cloud.SecurityFinding, error) {
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

	var f cloud.SecurityFinding
	if err := attributevalue.UnmarshalMap(response.Item, &f); err != nil {
		return nil, errors.Wrap(err, "unmarshalling item")
	}

	return &f, nil
}

func (s *DynamoDBFindingStorage) CreateOrUpdate(f cloud.SecurityFinding) error {
	item, err := attributevalue.MarshalMap(f)
	if err != nil {
		return errors.Wrap(err, "marshalling item")
	}

	_, err = s.client.PutItem(context.TODO(), &dynamodb.PutItemInput{
		TableName: &s.tableName,
		Item:      item,
	})
	return errors.Wrap(err, "putting item")
}

func (s *DynamoDBFindingStorage) SetStatus(id string, status cloud.FindingStatus) error {
	f, err := s.Get(id)
	if err != nil {
		return err
	}
	if f == nil {
		return ErrFindingNotFound
	}
	f.Status = status
	return s.CreateOrUpdate(*f)
}
