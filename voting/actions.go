package voting

import (
	"github.com/Ham3798/solana-voting-sample/logging"
	"github.com/Ham3798/solana-voting-sample/storage"
	"github.com/google/uuid"
)

// Each successful operation emits an informational action trace: an event id
// and one log line per field written. The trace is observability only and is
// never read back by the ledger.

func logPollInitialized(poll *storage.Poll) {
	logging.Log.Infof("POLL: initialized poll at %s (event %s)", poll.Address, uuid.NewString())
	logging.Log.Infof("POLL: poll id: %d", poll.PollID)
	logging.Log.Infof("POLL: description: %s", poll.Description)
	logging.Log.Infof("POLL: candidates: %d", poll.CandidateCount)
	logging.Log.Infof("POLL: start time: %d", poll.StartTime)
	logging.Log.Infof("POLL: end time: %d", poll.EndTime)
}

func logCandidateRegistered(candidate *storage.Candidate) {
	logging.Log.Infof("CANDIDATE: registered candidate at %s (event %s)", candidate.Address, uuid.NewString())
	logging.Log.Infof("CANDIDATE: candidate id: %s", candidate.CandidateID)
	logging.Log.Infof("CANDIDATE: name: %s", candidate.Name)
	logging.Log.Infof("CANDIDATE: description: %s", candidate.Description)
}

func logVoteRecorded(record *storage.VoteRecord) {
	logging.Log.Infof("VOTE: recorded vote at %s (event %s)", record.Address, uuid.NewString())
	logging.Log.Infof("VOTE: voter: %s", record.Voter)
	logging.Log.Infof("VOTE: poll id: %d", record.PollID)
	logging.Log.Infof("VOTE: candidate: %s", record.Candidate)
}
