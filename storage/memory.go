package storage

import (
	"context"
	"sort"
	"sync"

	"github.com/Ham3798/solana-voting-sample/address"
)

// The memory storages back unit tests and storage.driver=memory local runs.
// Records are stored by value so callers never alias the registry state.

type MemoryPollStorage struct {
	mu    sync.RWMutex
	items map[address.Address]Poll
}

func NewMemoryPollStorage() *MemoryPollStorage {
	return &MemoryPollStorage{items: make(map[address.Address]Poll)}
}

func (s *MemoryPollStorage) Get(_ context.Context, addr address.Address) (*Poll, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	poll, ok := s.items[addr]
	if !ok {
		return nil, ErrRecordNotFound
	}
	return &poll, nil
}

func (s *MemoryPollStorage) GetAll(_ context.Context) ([]*Poll, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	polls := make([]*Poll, 0, len(s.items))
	for _, poll := range s.items {
		poll := poll
		polls = append(polls, &poll)
	}
	sort.Slice(polls, func(i, j int) bool { return polls[i].PollID < polls[j].PollID })
	return polls, nil
}

func (s *MemoryPollStorage) Create(_ context.Context, poll *Poll) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.items[poll.Address]; exists {
		return ErrRecordAlreadyExists
	}
	s.items[poll.Address] = *poll
	return nil
}

func (s *MemoryPollStorage) Put(_ context.Context, poll *Poll) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[poll.Address] = *poll
	return nil
}

func (s *MemoryPollStorage) DeleteAll(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = make(map[address.Address]Poll)
	return nil
}

type MemoryCandidateStorage struct {
	mu    sync.RWMutex
	items map[address.Address]Candidate
}

func NewMemoryCandidateStorage() *MemoryCandidateStorage {
	return &MemoryCandidateStorage{items: make(map[address.Address]Candidate)}
}

func (s *MemoryCandidateStorage) Get(_ context.Context, addr address.Address) (*Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	candidate, ok := s.items[addr]
	if !ok {
		return nil, ErrRecordNotFound
	}
	return &candidate, nil
}

func (s *MemoryCandidateStorage) GetAll(_ context.Context) ([]*Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	candidates := make([]*Candidate, 0, len(s.items))
	for _, candidate := range s.items {
		candidate := candidate
		candidates = append(candidates, &candidate)
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].PollID != candidates[j].PollID {
			return candidates[i].PollID < candidates[j].PollID
		}
		return candidates[i].CandidateID < candidates[j].CandidateID
	})
	return candidates, nil
}

func (s *MemoryCandidateStorage) Create(_ context.Context, candidate *Candidate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.items[candidate.Address]; exists {
		return ErrRecordAlreadyExists
	}
	s.items[candidate.Address] = *candidate
	return nil
}

func (s *MemoryCandidateStorage) DeleteAll(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = make(map[address.Address]Candidate)
	return nil
}

type MemoryVoteRecordStorage struct {
	mu    sync.RWMutex
	items map[address.Address]VoteRecord
}

func NewMemoryVoteRecordStorage() *MemoryVoteRecordStorage {
	return &MemoryVoteRecordStorage{items: make(map[address.Address]VoteRecord)}
}

func (s *MemoryVoteRecordStorage) Get(_ context.Context, addr address.Address) (*VoteRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.items[addr]
	if !ok {
		return nil, ErrRecordNotFound
	}
	return &record, nil
}

func (s *MemoryVoteRecordStorage) GetAll(_ context.Context) ([]*VoteRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	records := make([]*VoteRecord, 0, len(s.items))
	for _, record := range s.items {
		record := record
		records = append(records, &record)
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].PollID != records[j].PollID {
			return records[i].PollID < records[j].PollID
		}
		return records[i].Voter < records[j].Voter
	})
	return records, nil
}

func (s *MemoryVoteRecordStorage) Create(_ context.Context, record *VoteRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.items[record.Address]; exists {
		return ErrRecordAlreadyExists
	}
	s.items[record.Address] = *record
	return nil
}

func (s *MemoryVoteRecordStorage) DeleteAll(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = make(map[address.Address]VoteRecord)
	return nil
}

var _ PollStorage = (*MemoryPollStorage)(nil)
var _ CandidateStorage = (*MemoryCandidateStorage)(nil)
var _ VoteRecordStorage = (*MemoryVoteRecordStorage)(nil)
