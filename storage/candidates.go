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

type CandidateStorage interface {
	Get(ctx context.Context, addr address.Address) (*Candidate, error)
	GetAll(ctx context.Context) ([]*Candidate, error)
	Create(ctx context.Context, candidate *Candidate) error
	DeleteAll(ctx context.Context) error
}

type DynamoCandidateStorage struct {
	Client    *dynamodb.Client
	TableName string
}

func (s *DynamoCandidateStorage) Get(ctx context.Context, addr address.Address) (*Candidate, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"PK": string(addr)})
	if err != nil {
		logging.Log.Errorf("CANDIDATE: failed to marshal key %s: %v", addr, err)
		return nil, err
	}

	out, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &s.TableName,
		Key:       key,
	})
	if err != nil {
		logging.Log.Errorf("CANDIDATE: GetItem for %s failed: %v", addr, err)
		return nil, err
	}
	if out.Item == nil {
		return nil, ErrRecordNotFound
	}

	var candidate Candidate
	if err := attributevalue.UnmarshalMap(out.Item, &candidate); err != nil {
		logging.Log.Errorf("CANDIDATE: failed to unmarshal candidate: %v", err)
		return nil, err
	}
	return &candidate, nil
}

func (s *DynamoCandidateStorage) GetAll(ctx context.Context) ([]*Candidate, error) {
	out, err := s.Client.Scan(ctx, &dynamodb.ScanInput{
		TableName: &s.TableName,
	})
	if err != nil {
		logging.Log.Errorf("CANDIDATE: scan failed: %v", err)
		return nil, err
	}

	var candidates []*Candidate
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &candidates); err != nil {
		logging.Log.Errorf("CANDIDATE: failed to unmarshal candidate list: %v", err)
		return nil, err
	}
	return candidates, nil
}

func (s *DynamoCandidateStorage) Create(ctx context.Context, candidate *Candidate) error {
	item, err := attributevalue.MarshalMap(candidate)
	if err != nil {
		logging.Log.Errorf("CANDIDATE: failed to marshal candidate: %v", err)
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
			logging.Log.Warnf("CANDIDATE: record already exists at %s", candidate.Address)
			return ErrRecordAlreadyExists
		}
		logging.Log.Errorf("CANDIDATE: failed to create candidate: %v", err)
		return err
	}
	return nil
}

func (s *DynamoCandidateStorage) DeleteAll(ctx context.Context) error {
	deleted, err := deleteAllItems(ctx, s.Client, s.TableName)
	if err != nil {
		logging.Log.Errorf("CANDIDATE: failed to clear table: %v", err)
		return err
	}
	logging.Log.Infof("CANDIDATE: cleared %d records", deleted)
	return nil
}
