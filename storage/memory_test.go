package storage

import (
	"context"
	"testing"

	"github.com/Ham3798/solana-voting-sample/address"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pollFixture(t *testing.T, pollID uint64) *Poll {
	t.Helper()
	addr, err := address.ForPoll(pollID)
	require.NoError(t, err)
	return &Poll{
		Address:        addr,
		PollID:         pollID,
		Description:    "Best Language",
		CandidateCount: 2,
		StartTime:      1000,
		EndTime:        2000,
	}
}

func TestMemoryPollStorage(t *testing.T) {
	ctx := context.Background()

	t.Run("Happy path - create and get", func(t *testing.T) {
		s := NewMemoryPollStorage()
		poll := pollFixture(t, 1)

		require.NoError(t, s.Create(ctx, poll))

		stored, err := s.Get(ctx, poll.Address)
		require.NoError(t, err)
		assert.Equal(t, poll, stored)
	})

	t.Run("Unhappy path - create on occupied address", func(t *testing.T) {
		s := NewMemoryPollStorage()
		poll := pollFixture(t, 1)

		require.NoError(t, s.Create(ctx, poll))
		err := s.Create(ctx, poll)
		assert.ErrorIs(t, err, ErrRecordAlreadyExists)
	})

	t.Run("Put overwrites an existing record", func(t *testing.T) {
		s := NewMemoryPollStorage()
		poll := pollFixture(t, 1)
		require.NoError(t, s.Create(ctx, poll))

		replacement := *poll
		replacement.Description = "Best Framework"
		require.NoError(t, s.Put(ctx, &replacement))

		stored, err := s.Get(ctx, poll.Address)
		require.NoError(t, err)
		assert.Equal(t, "Best Framework", stored.Description)
	})

	t.Run("Unhappy path - get missing record", func(t *testing.T) {
		s := NewMemoryPollStorage()
		addr, err := address.ForPoll(99)
		require.NoError(t, err)

		_, err = s.Get(ctx, addr)
		assert.ErrorIs(t, err, ErrRecordNotFound)
	})

	t.Run("GetAll returns records ordered by poll id", func(t *testing.T) {
		s := NewMemoryPollStorage()
		require.NoError(t, s.Create(ctx, pollFixture(t, 7)))
		require.NoError(t, s.Create(ctx, pollFixture(t, 2)))
		require.NoError(t, s.Create(ctx, pollFixture(t, 5)))

		polls, err := s.GetAll(ctx)
		require.NoError(t, err)
		require.Len(t, polls, 3)
		assert.Equal(t, uint64(2), polls[0].PollID)
		assert.Equal(t, uint64(5), polls[1].PollID)
		assert.Equal(t, uint64(7), polls[2].PollID)
	})

	t.Run("DeleteAll empties the registry", func(t *testing.T) {
		s := NewMemoryPollStorage()
		require.NoError(t, s.Create(ctx, pollFixture(t, 1)))
		require.NoError(t, s.DeleteAll(ctx))

		polls, err := s.GetAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, polls)
	})
}

func TestMemoryCandidateStorage(t *testing.T) {
	ctx := context.Background()

	newCandidate := func(t *testing.T, pollID uint64, identity address.Identity) *Candidate {
		t.Helper()
		addr, err := address.ForCandidate(pollID, identity)
		require.NoError(t, err)
		return &Candidate{
			Address:     addr,
			PollID:      pollID,
			CandidateID: identity,
			Name:        "Rust",
			Description: "A systems language",
		}
	}

	t.Run("Happy path - create and get", func(t *testing.T) {
		s := NewMemoryCandidateStorage()
		candidate := newCandidate(t, 1, "cand-rust")

		require.NoError(t, s.Create(ctx, candidate))

		stored, err := s.Get(ctx, candidate.Address)
		require.NoError(t, err)
		assert.Equal(t, candidate, stored)
	})

	t.Run("Unhappy path - duplicate registration", func(t *testing.T) {
		s := NewMemoryCandidateStorage()
		candidate := newCandidate(t, 1, "cand-rust")

		require.NoError(t, s.Create(ctx, candidate))
		assert.ErrorIs(t, s.Create(ctx, candidate), ErrRecordAlreadyExists)
	})

	t.Run("Same identity in another poll is a distinct record", func(t *testing.T) {
		s := NewMemoryCandidateStorage()
		require.NoError(t, s.Create(ctx, newCandidate(t, 1, "cand-rust")))
		require.NoError(t, s.Create(ctx, newCandidate(t, 2, "cand-rust")))

		candidates, err := s.GetAll(ctx)
		require.NoError(t, err)
		assert.Len(t, candidates, 2)
	})
}

func TestMemoryVoteRecordStorage(t *testing.T) {
	ctx := context.Background()

	newRecord := func(t *testing.T, pollID uint64, voter address.Identity) *VoteRecord {
		t.Helper()
		addr, err := address.ForVote(pollID, voter)
		require.NoError(t, err)
		return &VoteRecord{
			Address:   addr,
			PollID:    pollID,
			Voter:     voter,
			Candidate: "cand-rust",
		}
	}

	t.Run("Happy path - create and get", func(t *testing.T) {
		s := NewMemoryVoteRecordStorage()
		record := newRecord(t, 1, "voter-1")

		require.NoError(t, s.Create(ctx, record))

		stored, err := s.Get(ctx, record.Address)
		require.NoError(t, err)
		assert.Equal(t, record, stored)
	})

	t.Run("Unhappy path - voter cannot create twice", func(t *testing.T) {
		s := NewMemoryVoteRecordStorage()
		record := newRecord(t, 1, "voter-1")

		require.NoError(t, s.Create(ctx, record))

		again := *record
		again.Candidate = "cand-go"
		assert.ErrorIs(t, s.Create(ctx, &again), ErrRecordAlreadyExists)

		stored, err := s.Get(ctx, record.Address)
		require.NoError(t, err)
		assert.Equal(t, address.Identity("cand-rust"), stored.Candidate, "First record should be unchanged")
	})

	t.Run("Distinct voters produce distinct records", func(t *testing.T) {
		s := NewMemoryVoteRecordStorage()
		require.NoError(t, s.Create(ctx, newRecord(t, 1, "voter-1")))
		require.NoError(t, s.Create(ctx, newRecord(t, 1, "voter-2")))

		records, err := s.GetAll(ctx)
		require.NoError(t, err)
		assert.Len(t, records, 2)
	})
}
