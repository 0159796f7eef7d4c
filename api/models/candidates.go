package models

import "github.com/Ham3798/solana-voting-sample/storage"

type RegisterCandidateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type CandidateResponse struct {
	Address     string `json:"address"`
	PollID      uint64 `json:"pollId"`
	CandidateID string `json:"candidateId"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func TransformCandidateFromStorage(c *storage.Candidate) CandidateResponse {
	return CandidateResponse{
		Address:     string(c.Address),
		PollID:      c.PollID,
		CandidateID: string(c.CandidateID),
		Name:        c.Name,
		Description: c.Description,
	}
}
