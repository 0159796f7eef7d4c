package voting

import (
	"context"
	"errors"
	"fmt"

	"github.com/Ham3798/solana-voting-sample/address"
	"github.com/Ham3798/solana-voting-sample/storage"
)

// MaxTextLength bounds every free-text record field, counted in bytes.
const MaxTextLength = 280

// Config holds the two compatibility relaxations of the ledger. The zero
// value is the strict mode: polls are create-only and a vote must reference
// a registered candidate.
type Config struct {
	// AllowPollOverwrite makes CreatePoll overwrite an occupied address
	// instead of failing, matching the legacy create-or-update behavior.
	AllowPollOverwrite bool
	// AcceptUnknownCandidate skips the candidate existence check on
	// CastVote, recording the reference exactly as supplied.
	AcceptUnknownCandidate bool
}

// Ledger applies the append-only state transitions of the three record
// registries. Every operation performs its validations first and then at
// most one storage write; the signer is threaded in explicitly and never
// read from ambient state.
type Ledger struct {
	polls      storage.PollStorage
	candidates storage.CandidateStorage
	votes      storage.VoteRecordStorage
	config     Config
}

func NewLedger(polls storage.PollStorage, candidates storage.CandidateStorage, votes storage.VoteRecordStorage, config Config) *Ledger {
	return &Ledger{
		polls:      polls,
		candidates: candidates,
		votes:      votes,
		config:     config,
	}
}

type CreatePollInput struct {
	PollID         uint64
	Description    string
	CandidateCount uint64
	StartTime      uint64
	EndTime        uint64
}

type RegisterCandidateInput struct {
	PollID      uint64
	Name        string
	Description string
}

type CastVoteInput struct {
	PollID    uint64
	Candidate address.Identity
}

// CreatePoll writes the poll record at the address derived from its poll id.
// Times and the candidate count are stored verbatim without range checks.
func (l *Ledger) CreatePoll(ctx context.Context, signer address.Identity, in CreatePollInput) (*storage.Poll, error) {
	if signer == "" {
		return nil, ErrMissingSigner
	}
	if err := checkTextLength("description", in.Description); err != nil {
		return nil, err
	}

	addr, err := address.ForPoll(in.PollID)
	if err != nil {
		return nil, err
	}

	poll := &storage.Poll{
		Address:        addr,
		PollID:         in.PollID,
		Description:    in.Description,
		CandidateCount: in.CandidateCount,
		StartTime:      in.StartTime,
		EndTime:        in.EndTime,
	}

	if l.config.AllowPollOverwrite {
		err = l.polls.Put(ctx, poll)
	} else {
		err = l.polls.Create(ctx, poll)
	}
	if err != nil {
		return nil, err
	}

	logPollInitialized(poll)
	return poll, nil
}

// RegisterCandidate creates the candidacy of the signer for a poll. The
// poll id shapes the candidate address only; the poll record itself is
// never read here.
func (l *Ledger) RegisterCandidate(ctx context.Context, signer address.Identity, in RegisterCandidateInput) (*storage.Candidate, error) {
	if signer == "" {
		return nil, ErrMissingSigner
	}
	if err := checkTextLength("name", in.Name); err != nil {
		return nil, err
	}
	if err := checkTextLength("description", in.Description); err != nil {
		return nil, err
	}

	addr, err := address.ForCandidate(in.PollID, signer)
	if err != nil {
		return nil, err
	}

	candidate := &storage.Candidate{
		Address:     addr,
		PollID:      in.PollID,
		CandidateID: signer,
		Name:        in.Name,
		Description: in.Description,
	}
	if err := l.candidates.Create(ctx, candidate); err != nil {
		return nil, err
	}

	logCandidateRegistered(candidate)
	return candidate, nil
}

// CastVote records the signer's vote for a poll. The poll must exist; its
// content is never branched on. The candidate reference must resolve to a
// registered candidate unless AcceptUnknownCandidate is set.
func (l *Ledger) CastVote(ctx context.Context, signer address.Identity, in CastVoteInput) (*storage.VoteRecord, error) {
	if signer == "" {
		return nil, ErrMissingSigner
	}

	pollAddr, err := address.ForPoll(in.PollID)
	if err != nil {
		return nil, err
	}
	if _, err := l.polls.Get(ctx, pollAddr); err != nil {
		if errors.Is(err, storage.ErrRecordNotFound) {
			return nil, fmt.Errorf("poll %d: %w", in.PollID, storage.ErrRecordNotFound)
		}
		return nil, err
	}

	candidateAddr, err := address.ForCandidate(in.PollID, in.Candidate)
	if err != nil {
		return nil, err
	}
	if !l.config.AcceptUnknownCandidate {
		if _, err := l.candidates.Get(ctx, candidateAddr); err != nil {
			if errors.Is(err, storage.ErrRecordNotFound) {
				return nil, fmt.Errorf("candidate %s in poll %d: %w", in.Candidate, in.PollID, storage.ErrRecordNotFound)
			}
			return nil, err
		}
	}

	voteAddr, err := address.ForVote(in.PollID, signer)
	if err != nil {
		return nil, err
	}

	record := &storage.VoteRecord{
		Address:   voteAddr,
		PollID:    in.PollID,
		Voter:     signer,
		Candidate: in.Candidate,
	}
	if err := l.votes.Create(ctx, record); err != nil {
		return nil, err
	}

	logVoteRecorded(record)
	return record, nil
}

// GetPoll looks up the poll record stored for a poll id.
func (l *Ledger) GetPoll(ctx context.Context, pollID uint64) (*storage.Poll, error) {
	addr, err := address.ForPoll(pollID)
	if err != nil {
		return nil, err
	}
	return l.polls.Get(ctx, addr)
}

// GetCandidate looks up the candidacy of an identity in a poll.
func (l *Ledger) GetCandidate(ctx context.Context, pollID uint64, candidate address.Identity) (*storage.Candidate, error) {
	addr, err := address.ForCandidate(pollID, candidate)
	if err != nil {
		return nil, err
	}
	return l.candidates.Get(ctx, addr)
}

// GetVote looks up the vote a voter cast in a poll.
func (l *Ledger) GetVote(ctx context.Context, pollID uint64, voter address.Identity) (*storage.VoteRecord, error) {
	addr, err := address.ForVote(pollID, voter)
	if err != nil {
		return nil, err
	}
	return l.votes.Get(ctx, addr)
}

// ListPolls returns every poll on the ledger.
func (l *Ledger) ListPolls(ctx context.Context) ([]*storage.Poll, error) {
	return l.polls.GetAll(ctx)
}

// ListCandidates returns the candidates registered in one poll.
func (l *Ledger) ListCandidates(ctx context.Context, pollID uint64) ([]*storage.Candidate, error) {
	all, err := l.candidates.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	filtered := make([]*storage.Candidate, 0)
	for _, candidate := range all {
		if candidate.PollID == pollID {
			filtered = append(filtered, candidate)
		}
	}
	return filtered, nil
}

// ListVotes returns the votes recorded in one poll.
func (l *Ledger) ListVotes(ctx context.Context, pollID uint64) ([]*storage.VoteRecord, error) {
	all, err := l.votes.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	filtered := make([]*storage.VoteRecord, 0)
	for _, record := range all {
		if record.PollID == pollID {
			filtered = append(filtered, record)
		}
	}
	return filtered, nil
}

func checkTextLength(field, value string) error {
	if len(value) > MaxTextLength {
		return fmt.Errorf("%w: %s is %d bytes, limit %d", ErrTextTooLong, field, len(value), MaxTextLength)
	}
	return nil
}
