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

type CandidatesController struct {
	ledger *voting.Ledger
}

func NewCandidatesController(l *voting.Ledger) *CandidatesController {
	return &CandidatesController{ledger: l}
}

func (c *CandidatesController) RegisterRoutes(engine *gin.Engine) {
	group := engine.Group("/api/polls/:pollId/candidates")

	group.GET("", c.getAll)
	group.GET("/:candidateId", c.get)
	group.POST("", transport.SignerAuthMiddleware(), c.register)
}

// @Summary List the candidates registered in a poll
// @Tags Candidates
// @Produce json
// @Param pollId path int true "Poll ID"
// @Success 200 {array} models.CandidateResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/polls/{pollId}/candidates [get]
func (c *CandidatesController) getAll(g *gin.Context) {
	pollID, ok := parsePollID(g)
	if !ok {
		return
	}

	candidates, err := c.ledger.ListCandidates(g.Request.Context(), pollID)
	if err != nil {
		logging.Log.Errorf("CANDIDATE: failed to list candidates: %v", err)
		g.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
		return
	}

	// Sort this so it shows the same for everyone
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].CandidateID < candidates[j].CandidateID
	})

	responses := make([]models.CandidateResponse, 0, len(candidates))
	for _, candidate := range candidates {
		responses = append(responses, models.TransformCandidateFromStorage(candidate))
	}
	g.JSON(http.StatusOK, responses)
}

// @Summary Get a candidate by identity
// @Tags Candidates
// @Produce json
// @Param pollId path int true "Poll ID"
// @Param candidateId path string true "Candidate identity"
// @Success 200 {object} models.CandidateResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/polls/{pollId}/candidates/{candidateId} [get]
func (c *CandidatesController) get(g *gin.Context) {
	pollID, ok := parsePollID(g)
	if !ok {
		return
	}
	candidateID, err := address.ParseIdentity(g.Param("candidateId"))
	if err != nil {
		g.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid candidate identity"})
		return
	}

	candidate, err := c.ledger.GetCandidate(g.Request.Context(), pollID, candidateID)
	if err != nil {
		respondLedgerError(g, "CANDIDATE", err)
		return
	}
	g.JSON(http.StatusOK, models.TransformCandidateFromStorage(candidate))
}

// @Security SignerKey
// @Summary Register the signer as a candidate in a poll
// @Tags Candidates
// @Accept json
// @Produce json
// @Param pollId path int true "Poll ID"
// @Param candidate body models.RegisterCandidateRequest true "Candidate object"
// @Success 200 {object} models.CandidateResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/polls/{pollId}/candidates [post]
func (c *CandidatesController) register(g *gin.Context) {
	pollID, ok := parsePollID(g)
	if !ok {
		return
	}

	var req models.RegisterCandidateRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		logging.Log.Errorf("CANDIDATE: invalid register candidate request: %v", err)
		g.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request"})
		return
	}

	candidate, err := c.ledger.RegisterCandidate(g.Request.Context(), transport.SignerFromContext(g), voting.RegisterCandidateInput{
		PollID:      pollID,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondLedgerError(g, "CANDIDATE", err)
		return
	}
	g.JSON(http.StatusOK, models.TransformCandidateFromStorage(candidate))
}
