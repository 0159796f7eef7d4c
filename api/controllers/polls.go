package controllers

import (
	"net/http"
	"sort"

	"github.com/Ham3798/solana-voting-sample/api/models"
	"github.com/Ham3798/solana-voting-sample/api/transport"
	"github.com/Ham3798/solana-voting-sample/logging"
	"github.com/Ham3798/solana-voting-sample/voting"
	"github.com/gin-gonic/gin"
)

type PollsController struct {
	ledger *voting.Ledger
}

func NewPollsController(l *voting.Ledger) *PollsController {
	return &PollsController{ledger: l}
}

func (c *PollsController) RegisterRoutes(engine *gin.Engine) {
	group := engine.Group("/api/polls")

	group.GET("", c.getAll)
	group.GET("/:pollId", c.get)
	group.POST("", transport.SignerAuthMiddleware(), c.create)
}

// @Summary List all polls
// @Tags Polls
// @Produce json
// @Success 200 {array} models.PollResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/polls [get]
func (c *PollsController) getAll(g *gin.Context) {
	polls, err := c.ledger.ListPolls(g.Request.Context())
	if err != nil {
		logging.Log.Errorf("POLL: failed to list polls: %v", err)
		g.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
		return
	}

	// Sort this so it shows the same for everyone
	sort.SliceStable(polls, func(i, j int) bool {
		return polls[i].PollID < polls[j].PollID
	})

	responses := make([]models.PollResponse, 0, len(polls))
	for _, poll := range polls {
		responses = append(responses, models.TransformPollFromStorage(poll))
	}
	g.JSON(http.StatusOK, responses)
}

// @Summary Get a poll by its numeric id
// @Tags Polls
// @Produce json
// @Param pollId path int true "Poll ID"
// @Success 200 {object} models.PollResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/polls/{pollId} [get]
func (c *PollsController) get(g *gin.Context) {
	pollID, ok := parsePollID(g)
	if !ok {
		return
	}

	poll, err := c.ledger.GetPoll(g.Request.Context(), pollID)
	if err != nil {
		respondLedgerError(g, "POLL", err)
		return
	}
	g.JSON(http.StatusOK, models.TransformPollFromStorage(poll))
}

// @Security SignerKey
// @Summary Create a poll at its derived address
// @Tags Polls
// @Accept json
// @Produce json
// @Param poll body models.CreatePollRequest true "Poll object"
// @Success 200 {object} models.PollResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/polls [post]
func (c *PollsController) create(g *gin.Context) {
	var req models.CreatePollRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		logging.Log.Errorf("POLL: invalid create poll request: %v", err)
		g.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request"})
		return
	}

	poll, err := c.ledger.CreatePoll(g.Request.Context(), transport.SignerFromContext(g), voting.CreatePollInput{
		PollID:         req.PollID,
		Description:    req.Description,
		CandidateCount: req.CandidateCount,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
	})
	if err != nil {
		respondLedgerError(g, "POLL", err)
		return
	}
	g.JSON(http.StatusOK, models.TransformPollFromStorage(poll))
}
