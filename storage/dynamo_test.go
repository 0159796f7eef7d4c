package storage

import (
	"context"
	"os"
	"testing"

	"github.com/Ham3798/solana-voting-sample/address"
	"github.com/Ham3798/solana-voting-sample/logging"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Integration tests run against a localstack DynamoDB with the registry
// tables already created (PK string hash key).
//
//nolint:staticcheck
func setupDynamoClient(t *testing.T) *dynamodb.Client {
	t.Helper()
	if os.Getenv("VOTING_LOCALSTACK_TEST") == "" {
		t.Skip("set VOTING_LOCALSTACK_TEST=1 to run against localstack")
	}
	logging.Log = logrus.New()

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion("us-east-1"),
		config.WithEndpointResolverWithOptions(
			aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
				return aws.Endpoint{URL: "http://localhost:4566", HostnameImmutable: true}, nil
			}),
		),
	)
	if err != nil {
		t.Fatalf("failed to load AWS config: %v", err)
	}
	return dynamodb.NewFromConfig(cfg)
}

func TestDynamoPollStorage(t *testing.T) {
	client := setupDynamoClient(t)
	s := &DynamoPollStorage{Client: client, TableName: "Polls"}
	ctx := context.Background()

	t.Cleanup(func() {
		if err := s.DeleteAll(context.Background()); err != nil {
			t.Fatalf("cleanup failed: %v", err)
		}
	})

	addr, err := address.ForPoll(1)
	require.NoError(t, err)
	poll := &Poll{
		Address:        addr,
		PollID:         1,
		Description:    "Best Language",
		CandidateCount: 2,
		StartTime:      1000,
		EndTime:        2000,
	}

	t.Run("Happy path - create, get, overwrite", func(t *testing.T) {
		require.NoError(t, s.Create(ctx, poll))

		stored, err := s.Get(ctx, addr)
		require.NoError(t, err)
		assert.Equal(t, poll, stored)

		replacement := *poll
		replacement.Description = "Best Framework"
		require.NoError(t, s.Put(ctx, &replacement))

		stored, err = s.Get(ctx, addr)
		require.NoError(t, err)
		assert.Equal(t, "Best Framework", stored.Description)
	})

	t.Run("Unhappy path - conditional create on occupied address", func(t *testing.T) {
		err := s.Create(ctx, poll)
		assert.ErrorIs(t, err, ErrRecordAlreadyExists)
	})

	t.Run("Unhappy path - missing record", func(t *testing.T) {
		missing, err := address.ForPoll(424242)
		require.NoError(t, err)

		_, err = s.Get(ctx, missing)
		assert.ErrorIs(t, err, ErrRecordNotFound)
	})
}

func TestDynamoVoteRecordStorage(t *testing.T) {
	client := setupDynamoClient(t)
	s := &DynamoVoteRecordStorage{Client: client, TableName: "VoteRecords"}
	ctx := context.Background()

	t.Cleanup(func() {
		if err := s.DeleteAll(context.Background()); err != nil {
			t.Fatalf("cleanup failed: %v", err)
		}
	})

	addr, err := address.ForVote(1, "voter-1")
	require.NoError(t, err)
	record := &VoteRecord{
		Address:   addr,
		PollID:    1,
		Voter:     "voter-1",
		Candidate: "cand-rust",
	}

	t.Run("Happy path - single vote per voter", func(t *testing.T) {
		require.NoError(t, s.Create(ctx, record))

		stored, err := s.Get(ctx, addr)
		require.NoError(t, err)
		assert.Equal(t, record, stored)
	})

	t.Run("Unhappy path - revote rejected", func(t *testing.T) {
		again := *record
		again.Candidate = "cand-go"
		assert.ErrorIs(t, s.Create(ctx, &again), ErrRecordAlreadyExists)
	})
}
