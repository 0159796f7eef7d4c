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

type PollStorage interface {
	Get(ctx context.Context, addr address.Address) (*Poll, error)
	GetAll(ctx context.Context) ([]*Poll, error)
	// Create writes the poll only when its address is unoccupied.
	Create(ctx context.Context, poll *Poll) error
	// Put writes the poll unconditionally, overwriting any existing record.
	Put(ctx context.Context, poll *Poll) error
	DeleteAll(ctx context.Context) error
}

type DynamoPollStorage struct {
	Client    *dynamodb.Client
	TableName string
}

func (s *DynamoPollStorage) Get(ctx context.Context, addr address.Address) (*Poll, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"PK": string(addr)})
	if err != nil {
		logging.Log.Errorf("POLL: failed to marshal key %s: %v", addr, err)
		return nil, err
	}

	out, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &s.TableName,
		Key:       key,
	})
	if err != nil {
		logging.Log.Errorf("POLL: GetItem for %s failed: %v", addr, err)
		return nil, err
	}
	if out.Item == nil {
		return nil, ErrRecordNotFound
	}

	var poll Poll
	if err := attributevalue.UnmarshalMap(out.Item, &poll); err != nil {
		logging.Log.Errorf("POLL: failed to unmarshal poll: %v", err)
		return nil, err
	}
	return &poll, nil
}

func (s *DynamoPollStorage) GetAll(ctx context.Context) ([]*Poll, error) {
	out, err := s.Client.Scan(ctx, &dynamodb.ScanInput{
		TableName: &s.TableName,
	})
	if err != nil {
		logging.Log.Errorf("POLL: scan failed: %v", err)
		return nil, err
	}

	var polls []*Poll
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &polls); err != nil {
		logging.Log.Errorf("POLL: failed to unmarshal poll list: %v", err)
		return nil, err
	}
	return polls, nil
}

func (s *DynamoPollStorage) Create(ctx context.Context, poll *Poll) error {
	item, err := attributevalue.MarshalMap(poll)
	if err != nil {
		logging.Log.Errorf("POLL: failed to marshal poll: %v", err)
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
			logging.Log.Warnf("POLL: record already exists at %s", poll.Address)
			return ErrRecordAlreadyExists
		}
		logging.Log.Errorf("POLL: failed to create poll: %v", err)
		return err
	}
	return nil
}

func (s *DynamoPollStorage) Put(ctx context.Context, poll *Poll) error {
	item, err := attributevalue.MarshalMap(poll)
	if err != nil {
		logging.Log.Errorf("POLL: failed to marshal poll: %v", err)
		return err
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: &s.TableName,
		Item:      item,
	})
	if err != nil {
		logging.Log.Errorf("POLL: failed to put poll: %v", err)
		return err
	}
	return nil
}

func (s *DynamoPollStorage) DeleteAll(ctx context.Context) error {
	deleted, err := deleteAllItems(ctx, s.Client, s.TableName)
	if err != nil {
		logging.Log.Errorf("POLL: failed to clear table: %v", err)
		return err
	}
	logging.Log.Infof("POLL: cleared %d records", deleted)
	return nil
}
