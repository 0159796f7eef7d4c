package models

import "github.com/Ham3798/solana-voting-sample/storage"

type CastVoteRequest struct {
	Candidate string `json:"candidate"`
}

type VoteRecordResponse struct {
	Address   string `json:"address"`
	PollID    uint64 `json:"pollId"`
	Voter     string `json:"voter"`
	Candidate string `json:"candidate"`
}

func TransformVoteRecordFromStorage(v *storage.VoteRecord) VoteRecordResponse {
	return VoteRecordResponse{
		Address:   string(v.Address),
		PollID:    v.PollID,
		Voter:     string(v.Voter),
		Candidate: string(v.Candidate),
	}
}
