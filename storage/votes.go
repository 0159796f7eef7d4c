package storage

import (
	"context"
	"errors"

	"github.com/Ham3798/solana-voting-sample/address"
	"github.com/Ham3798/solana-voting-sample/logging"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type VoteRecordStorage interface {
	Get(ctx context.Context, addr address.Address) (*VoteRecord, error)
	GetAll(ctx context.Context) ([]*VoteRecord, error)
	Create(ctx context.Context, record *VoteRecord) error
	DeleteAll(ctx context.Context) error
}

type DynamoVoteRecordStorage struct {
	Client    *dynamodb.Client
	TableName string
}

func (s *DynamoVoteRecordStorage) Get(ctx context.Context, addr address.Address) (*VoteRecord, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"PK": string(addr)})
	if err != nil {
		logging.Log.Errorf("VOTE: failed to marshal key %s: %v", addr, err)
		return nil, err
	}

	out, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &s.TableName,
		Key:       key,
	})
	if err != nil {
		logging.Log.Errorf("VOTE: GetItem for %s failed: %v", addr, err)
		return nil, err
	}
	if out.Item == nil {
		return nil, ErrRecordNotFound
	}

	var record VoteRecord
	if err := attributevalue.UnmarshalMap(out.Item, &record); err != nil {
		logging.Log.Errorf("VOTE: failed to unmarshal vote record: %v", err)
		return nil, err
	}
	return &record, nil
}

func (s *DynamoVoteRecordStorage) GetAll(ctx context.Context) ([]*VoteRecord, error) {
	out, err := s.Client.Scan(ctx, &dynamodb.ScanInput{
		TableName: &s.TableName,
	})
	if err != nil {
		logging.Log.Errorf("VOTE: scan failed: %v", err)
		return nil, err
	}

	var records []*VoteRecord
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &records); err != nil {
		logging.Log.Errorf("VOTE: failed to unmarshal vote record list: %v", err)
		return nil, err
	}
	return records, nil
}

func (s *DynamoVoteRecordStorage) Create(ctx context.Context, record *VoteRecord) error {
	item, err := attributevalue.MarshalMap(record)
	if err != nil {
		logging.Log.Errorf("VOTE: failed to marshal vote record: %v", err)
		return err
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           &s.TableName,
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(PK)"),
	})
	if err != nil {
		var cce *types.ConditionalCheckFailedException
		if errors.As(err, &cce) {
			logging.Log.Warnf("VOTE: record already exists at %s", record.Address)
			return ErrRecordAlreadyExists
		}
		logging.Log.Errorf("VOTE: failed to create vote record: %v", err)
		return err
	}
	return nil
}

func (s *DynamoVoteRecordStorage) DeleteAll(ctx context.Context) error {
	deleted, err := deleteAllItems(ctx, s.Client, s.TableName)
	if err != nil {
		logging.Log.Errorf("VOTE: failed to clear table: %v", err)
		return err
	}
	logging.Log.Infof("VOTE: cleared %d records", deleted)
	return nil
}
