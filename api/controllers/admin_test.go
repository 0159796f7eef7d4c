package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	testutils "github.com/Ham3798/solana-voting-sample/api/controllers/testing"
	"github.com/Ham3798/solana-voting-sample/logging"
	"github.com/Ham3798/solana-voting-sample/storage"
	"github.com/Ham3798/solana-voting-sample/voting"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAdminRouter(t *testing.T, allowReset bool) (*gin.Engine, *voting.Ledger) {
	t.Helper()
	logging.Log = logrus.New()
	t.Setenv("ADMIN_TOKEN", "secret")

	polls := storage.NewMemoryPollStorage()
	candidates := storage.NewMemoryCandidateStorage()
	votes := storage.NewMemoryVoteRecordStorage()
	ledger := voting.NewLedger(polls, candidates, votes, voting.Config{})

	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewAdminController(polls, candidates, votes, allowReset).RegisterRoutes(r)
	return r, ledger
}

func seedLedger(t *testing.T, ledger *voting.Ledger) {
	t.Helper()
	ctx := context.Background()

	for pollID := uint64(1); pollID <= 2; pollID++ {
		_, err := ledger.CreatePoll(ctx, "poll-owner", voting.CreatePollInput{
			PollID:      pollID,
			Description: "Best Language",
		})
		require.NoError(t, err, "failed to seed poll %d", pollID)

		_, err = ledger.RegisterCandidate(ctx, "cand-rust", voting.RegisterCandidateInput{
			PollID: pollID,
			Name:   "Rust",
		})
		require.NoError(t, err, "failed to seed candidate in poll %d", pollID)

		_, err = ledger.CastVote(ctx, "voter-1", voting.CastVoteInput{
			PollID:    pollID,
			Candidate: "cand-rust",
		})
		require.NoError(t, err, "failed to seed vote in poll %d", pollID)
	}
}

func TestAdminListings(t *testing.T) {
	router, ledger := setupAdminRouter(t, false)
	seedLedger(t, ledger)

	t.Run("Happy path - list polls", func(t *testing.T) {
		res := testutils.PerformRequest(router, http.MethodGet, "/api/admin/polls", nil, map[string]string{
			"x-admin-token": "secret",
		})
		require.Equal(t, http.StatusOK, res.Code, "expected 200 OK")

		var polls []*storage.Poll
		err := json.Unmarshal(res.Body.Bytes(), &polls)
		require.NoError(t, err, "failed to unmarshal response")
		assert.Len(t, polls, 2)
	})

	t.Run("Happy path - list candidates filtered by poll", func(t *testing.T) {
		res := testutils.PerformRequest(router, http.MethodGet, "/api/admin/candidates?pollId=1", nil, map[string]string{
			"x-admin-token": "secret",
		})
		require.Equal(t, http.StatusOK, res.Code, "expected 200 OK")

		var candidates []*storage.Candidate
		err := json.Unmarshal(res.Body.Bytes(), &candidates)
		require.NoError(t, err, "failed to unmarshal response")
		require.Len(t, candidates, 1)
		assert.Equal(t, uint64(1), candidates[0].PollID)
	})

	t.Run("Happy path - list all votes", func(t *testing.T) {
		res := testutils.PerformRequest(router, http.MethodGet, "/api/admin/votes", nil, map[string]string{
			"x-admin-token": "secret",
		})
		require.Equal(t, http.StatusOK, res.Code, "expected 200 OK")

		var records []*storage.VoteRecord
		err := json.Unmarshal(res.Body.Bytes(), &records)
		require.NoError(t, err, "failed to unmarshal response")
		assert.Len(t, records, 2)
	})

	t.Run("Unhappy path - invalid pollId query", func(t *testing.T) {
		res := testutils.PerformRequest(router, http.MethodGet, "/api/admin/votes?pollId=notanumber", nil, map[string]string{
			"x-admin-token": "secret",
		})
		require.Equal(t, http.StatusBadRequest, res.Code, "expected 400 for invalid pollId")
	})

	t.Run("Unhappy path - missing admin token", func(t *testing.T) {
		res := testutils.PerformRequest(router, http.MethodGet, "/api/admin/polls", nil, nil)
		require.Equal(t, http.StatusUnauthorized, res.Code, "expected 401 without x-admin-token")
	})

	t.Run("Unhappy path - wrong admin token", func(t *testing.T) {
		res := testutils.PerformRequest(router, http.MethodGet, "/api/admin/polls", nil, map[string]string{
			"x-admin-token": "wrong",
		})
		require.Equal(t, http.StatusUnauthorized, res.Code, "expected 401 for a bad token")
	})
}

func TestAdminReset(t *testing.T) {
	t.Run("Unhappy path - reset disabled by configuration", func(t *testing.T) {
		router, ledger := setupAdminRouter(t, false)
		seedLedger(t, ledger)

		res := testutils.PerformRequest(router, http.MethodPost, "/api/admin/reset", nil, map[string]string{
			"x-admin-token": "secret",
		})
		require.Equal(t, http.StatusForbidden, res.Code, "expected 403 when reset is disabled")
	})

	t.Run("Happy path - reset clears all registries", func(t *testing.T) {
		router, ledger := setupAdminRouter(t, true)
		seedLedger(t, ledger)

		res := testutils.PerformRequest(router, http.MethodPost, "/api/admin/reset", nil, map[string]string{
			"x-admin-token": "secret",
		})
		require.Equal(t, http.StatusOK, res.Code, "expected 200 OK")

		listRes := testutils.PerformRequest(router, http.MethodGet, "/api/admin/polls", nil, map[string]string{
			"x-admin-token": "secret",
		})
		require.Equal(t, http.StatusOK, listRes.Code)

		var polls []*storage.Poll
		err := json.Unmarshal(listRes.Body.Bytes(), &polls)
		require.NoError(t, err, "failed to unmarshal response")
		assert.Empty(t, polls, "polls should be gone after reset")
	})
}
