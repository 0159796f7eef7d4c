package controllers

import (
	"net/http"
	"sort"

	"github.com/Ham3798/solana-voting-sample/address"
	"github.com/Ham3798/solana-voting-sample/api/models"
	"github.com/Ham3798/solana-voting-sample/api/transport"
	"github.com/Ham3798/solana-voting-sample/logging"
	"github.com/Ham3798/solana-voting-sample/voting"
	"github.com/gin-gonic/gin"
)

type VotesController struct {
	ledger *voting.Ledger
}

func NewVotesController(l *voting.Ledger) *VotesController {
	return &VotesController{ledger: l}
}

func (c *VotesController) RegisterRoutes(engine *gin.Engine) {
	group := engine.Group("/api/polls/:pollId/votes")

	group.GET("", c.getAll)
	group.GET("/:voter", c.get)
	group.POST("", transport.SignerAuthMiddleware(), c.cast)
}

// @Summary List the votes recorded in a poll
// @Tags Votes
// @Produce json
// @Param pollId path int true "Poll ID"
// @Success 200 {array} models.VoteRecordResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/polls/{pollId}/votes [get]
func (c *VotesController) getAll(g *gin.Context) {
	pollID, ok := parsePollID(g)
	if !ok {
		return
	}

	records, err := c.ledger.ListVotes(g.Request.Context(), pollID)
	if err != nil {
		logging.Log.Errorf("VOTE: failed to list votes: %v", err)
		g.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
		return
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Voter < records[j].Voter
	})

	responses := make([]models.VoteRecordResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, models.TransformVoteRecordFromStorage(record))
	}
	g.JSON(http.StatusOK, responses)
}

// @Summary Get the vote a voter cast in a poll
// @Tags Votes
// @Produce json
// @Param pollId path int true "Poll ID"
// @Param voter path string true "Voter identity"
// @Success 200 {object} models.VoteRecordResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/polls/{pollId}/votes/{voter} [get]
func (c *VotesController) get(g *gin.Context) {
	pollID, ok := parsePollID(g)
	if !ok {
		return
	}
	voter, err := address.ParseIdentity(g.Param("voter"))
	if err != nil {
		g.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid voter identity"})
		return
	}

	record, err := c.ledger.GetVote(g.Request.Context(), pollID, voter)
	if err != nil {
		respondLedgerError(g, "VOTE", err)
		return
	}
	g.JSON(http.StatusOK, models.TransformVoteRecordFromStorage(record))
}

// @Security SignerKey
// @Summary Cast the signer's vote in a poll
// @Tags Votes
// @Accept json
// @Produce json
// @Param pollId path int true "Poll ID"
// @Param vote body models.CastVoteRequest true "Vote object"
// @Success 200 {object} models.VoteRecordResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/polls/{pollId}/votes [post]
func (c *VotesController) cast(g *gin.Context) {
	pollID, ok := parsePollID(g)
	if !ok {
		return
	}

	var req models.CastVoteRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		logging.Log.Errorf("VOTE: invalid cast vote request: %v", err)
		g.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request"})
		return
	}

	candidate, err := address.ParseIdentity(req.Candidate)
	if err != nil {
		logging.Log.Errorf("VOTE: invalid candidate identity in request: %v", err)
		g.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid candidate identity"})
		return
	}

	record, err := c.ledger.CastVote(g.Request.Context(), transport.SignerFromContext(g), voting.CastVoteInput{
		PollID:    pollID,
		Candidate: candidate,
	})
	if err != nil {
		respondLedgerError(g, "VOTE", err)
		return
	}
	g.JSON(http.StatusOK, models.TransformVoteRecordFromStorage(record))
}
