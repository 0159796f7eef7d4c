package storage

import "github.com/Ham3798/solana-voting-sample/address"

// Poll is the registry record for a poll, keyed by the address derived from
// its poll id. Times are stored verbatim and never read back for gating.
type Poll struct {
	Address        address.Address `dynamodbav:"PK" json:"address"`
	PollID         uint64          `dynamodbav:"PollID" json:"pollId"`
	Description    string          `dynamodbav:"Description" json:"description"`
	CandidateCount uint64          `dynamodbav:"CandidateCount" json:"candidateCount"`
	StartTime      uint64          `dynamodbav:"StartTime" json:"startTime"`
	EndTime        uint64          `dynamodbav:"EndTime" json:"endTime"`
}

// Candidate is keyed by the address derived from (poll id, registrant).
// CandidateID is always the identity that registered the candidacy.
type Candidate struct {
	Address     address.Address  `dynamodbav:"PK" json:"address"`
	PollID      uint64           `dynamodbav:"PollID" json:"pollId"`
	CandidateID address.Identity `dynamodbav:"CandidateID" json:"candidateId"`
	Name        string           `dynamodbav:"Name" json:"name"`
	Description string           `dynamodbav:"Description" json:"description"`
}

// VoteRecord is keyed by the address derived from (poll id, voter), which is
// what limits each voter to a single vote per poll.
type VoteRecord struct {
	Address   address.Address  `dynamodbav:"PK" json:"address"`
	PollID    uint64           `dynamodbav:"PollID" json:"pollId"`
	Voter     address.Identity `dynamodbav:"Voter" json:"voter"`
	Candidate address.Identity `dynamodbav:"Candidate" json:"candidate"`
}
