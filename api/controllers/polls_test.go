package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"testing"

	testutils "github.com/Ham3798/solana-voting-sample/api/controllers/testing"
	"github.com/Ham3798/solana-voting-sample/api/models"
	"github.com/Ham3798/solana-voting-sample/logging"
	"github.com/Ham3798/solana-voting-sample/storage"
	"github.com/Ham3798/solana-voting-sample/voting"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupPollsRouter(t *testing.T, config voting.Config) *gin.Engine {
	t.Helper()
	logging.Log = logrus.New()

	ledger := voting.NewLedger(
		storage.NewMemoryPollStorage(),
		storage.NewMemoryCandidateStorage(),
		storage.NewMemoryVoteRecordStorage(),
		config,
	)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewPollsController(ledger).RegisterRoutes(r)
	return r
}

func TestCreatePollEndpoint(t *testing.T) {
	router := setupPollsRouter(t, voting.Config{})

	t.Run("Happy path - create poll returns the derived address", func(t *testing.T) {
		reqBody := models.CreatePollRequest{
			PollID:         1,
			Description:    "Best Language",
			CandidateCount: 2,
			StartTime:      1000,
			EndTime:        2000,
		}
		res := testutils.PerformSignedRequest(router, http.MethodPost, "/api/polls", reqBody, "poll-owner")
		require.Equal(t, http.StatusOK, res.Code, "expected 200 OK")

		var poll models.PollResponse
		err := json.Unmarshal(res.Body.Bytes(), &poll)
		require.NoError(t, err, "failed to unmarshal response")
		assert.Len(t, poll.Address, 64, "address should be a sha256 hex digest")
		assert.Equal(t, uint64(1), poll.PollID)
		assert.Equal(t, "Best Language", poll.Description)
		assert.Equal(t, uint64(2), poll.CandidateCount)
	})

	t.Run("Unhappy path - missing signer header", func(t *testing.T) {
		reqBody := models.CreatePollRequest{PollID: 2, Description: "No signer"}
		res := testutils.PerformRequest(router, http.MethodPost, "/api/polls", reqBody, nil)
		require.Equal(t, http.StatusUnauthorized, res.Code, "expected 401 without x-signer-key")
	})

	t.Run("Unhappy path - duplicate poll id", func(t *testing.T) {
		reqBody := models.CreatePollRequest{PollID: 3, Description: "First"}
		res := testutils.PerformSignedRequest(router, http.MethodPost, "/api/polls", reqBody, "poll-owner")
		require.Equal(t, http.StatusOK, res.Code, "setup POST failed")

		reqBody.Description = "Second"
		res = testutils.PerformSignedRequest(router, http.MethodPost, "/api/polls", reqBody, "poll-owner")
		require.Equal(t, http.StatusConflict, res.Code, "expected 409 Conflict for duplicate poll")
	})

	t.Run("Unhappy path - description over the limit", func(t *testing.T) {
		reqBody := models.CreatePollRequest{
			PollID:      4,
			Description: strings.Repeat("d", voting.MaxTextLength+1),
		}
		res := testutils.PerformSignedRequest(router, http.MethodPost, "/api/polls", reqBody, "poll-owner")
		require.Equal(t, http.StatusBadRequest, res.Code, "expected 400 for oversize description")
	})

	t.Run("Unhappy path - malformed body", func(t *testing.T) {
		res := testutils.PerformSignedRequest(router, http.MethodPost, "/api/polls", "not a poll", "poll-owner")
		require.Equal(t, http.StatusBadRequest, res.Code, "expected 400 for malformed body")
	})
}

func TestCreatePollEndpointOverwriteMode(t *testing.T) {
	router := setupPollsRouter(t, voting.Config{AllowPollOverwrite: true})

	reqBody := models.CreatePollRequest{PollID: 1, Description: "First"}
	res := testutils.PerformSignedRequest(router, http.MethodPost, "/api/polls", reqBody, "poll-owner")
	require.Equal(t, http.StatusOK, res.Code, "setup POST failed")

	reqBody.Description = "Second"
	res = testutils.PerformSignedRequest(router, http.MethodPost, "/api/polls", reqBody, "poll-owner")
	require.Equal(t, http.StatusOK, res.Code, "expected 200 when overwrite is enabled")

	getRes := testutils.PerformRequest(router, http.MethodGet, "/api/polls/1", nil, nil)
	require.Equal(t, http.StatusOK, getRes.Code)

	var poll models.PollResponse
	err := json.Unmarshal(getRes.Body.Bytes(), &poll)
	require.NoError(t, err, "failed to unmarshal response")
	assert.Equal(t, "Second", poll.Description)
}

func TestGetPollEndpoint(t *testing.T) {
	router := setupPollsRouter(t, voting.Config{})

	t.Run("Happy path - get poll by id", func(t *testing.T) {
		reqBody := models.CreatePollRequest{
			PollID:         10,
			Description:    "Readable",
			CandidateCount: 3,
			StartTime:      1,
			EndTime:        2,
		}
		res := testutils.PerformSignedRequest(router, http.MethodPost, "/api/polls", reqBody, "poll-owner")
		require.Equal(t, http.StatusOK, res.Code, "setup POST failed")

		getRes := testutils.PerformRequest(router, http.MethodGet, "/api/polls/10", nil, nil)
		require.Equal(t, http.StatusOK, getRes.Code, "expected 200 OK")

		var poll models.PollResponse
		err := json.Unmarshal(getRes.Body.Bytes(), &poll)
		require.NoError(t, err, "failed to unmarshal response")
		assert.Equal(t, uint64(10), poll.PollID)
		assert.Equal(t, "Readable", poll.Description)
		assert.Equal(t, uint64(3), poll.CandidateCount)
	})

	t.Run("Unhappy path - invalid id format", func(t *testing.T) {
		res := testutils.PerformRequest(router, http.MethodGet, "/api/polls/notanumber", nil, nil)
		require.Equal(t, http.StatusBadRequest, res.Code, "expected 400 for invalid ID")
	})

	t.Run("Unhappy path - non-existing poll", func(t *testing.T) {
		res := testutils.PerformRequest(router, http.MethodGet, "/api/polls/999", nil, nil)
		require.Equal(t, http.StatusNotFound, res.Code, "expected 404 for missing poll")
	})
}

func TestListPollsEndpoint(t *testing.T) {
	router := setupPollsRouter(t, voting.Config{})

	// Arrange: Create 3 polls
	for i := 101; i <= 103; i++ {
		reqBody := models.CreatePollRequest{
			PollID:      uint64(i),
			Description: "Poll " + strconv.Itoa(i),
		}
		res := testutils.PerformSignedRequest(router, http.MethodPost, "/api/polls", reqBody, "poll-owner")
		require.Equal(t, http.StatusOK, res.Code, "failed to create poll %d", i)
	}

	// Act: List polls
	getRes := testutils.PerformRequest(router, http.MethodGet, "/api/polls", nil, nil)
	require.Equal(t, http.StatusOK, getRes.Code, "expected 200 OK")

	var polls []models.PollResponse
	err := json.Unmarshal(getRes.Body.Bytes(), &polls)
	require.NoError(t, err, "failed to unmarshal response")
	require.Len(t, polls, 3)

	for i, poll := range polls {
		assert.Equal(t, uint64(101+i), poll.PollID, "polls should be sorted by id")
	}
}
