package models

import "github.com/Ham3798/solana-voting-sample/storage"

type CreatePollRequest struct {
	PollID         uint64 `json:"pollId"`
	Description    string `json:"description"`
	CandidateCount uint64 `json:"candidateCount"`
	StartTime      uint64 `json:"startTime"`
	EndTime        uint64 `json:"endTime"`
}

type PollResponse struct {
	Address        string `json:"address"`
	PollID         uint64 `json:"pollId"`
	Description    string `json:"description"`
	CandidateCount uint64 `json:"candidateCount"`
	StartTime      uint64 `json:"startTime"`
	EndTime        uint64 `json:"endTime"`
}

func TransformPollFromStorage(p *storage.Poll) PollResponse {
	return PollResponse{
		Address:        string(p.Address),
		PollID:         p.PollID,
		Description:    p.Description,
		CandidateCount: p.CandidateCount,
		StartTime:      p.StartTime,
		EndTime:        p.EndTime,
	}
}
