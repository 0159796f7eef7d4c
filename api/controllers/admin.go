package controllers

import (
	"net/http"
	"sort"
	"strconv"

	"github.com/Ham3798/solana-voting-sample/api/transport"
	"github.com/Ham3798/solana-voting-sample/logging"
	"github.com/Ham3798/solana-voting-sample/storage"
	"github.com/gin-gonic/gin"
)

type AdminController struct {
	pollsStorage      storage.PollStorage
	candidatesStorage storage.CandidateStorage
	votesStorage      storage.VoteRecordStorage
	allowReset        bool
}

func NewAdminController(polls storage.PollStorage, candidates storage.CandidateStorage, votes storage.VoteRecordStorage, allowReset bool) *AdminController {
	return &AdminController{
		pollsStorage:      polls,
		candidatesStorage: candidates,
		votesStorage:      votes,
		allowReset:        allowReset,
	}
}

func (c *AdminController) RegisterRoutes(engine *gin.Engine) {
	group := engine.Group("/api/admin", transport.AdminAuthMiddleware())

	group.GET("/polls", c.listPolls)
	group.GET("/candidates", c.listCandidates)
	group.GET("/votes", c.listVotes)
	group.POST("/reset", c.reset)
}

// @Security AdminToken
// listPolls godoc
// @Summary List all poll records
// @Tags admin
// @Produce json
// @Success 200 {array} storage.Poll
// @Failure 500 {object} models.ErrorResponse
// @Router /api/admin/polls [get]
func (c *AdminController) listPolls(g *gin.Context) {
	polls, err := c.pollsStorage.GetAll(g.Request.Context())
	if err != nil {
		logging.Log.Errorf("ADMIN: failed to list polls: %v", err)
		g.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	sort.SliceStable(polls, func(i, j int) bool {
		return polls[i].PollID < polls[j].PollID
	})

	logging.Log.Infof("ADMIN: listed %d polls", len(polls))
	g.JSON(http.StatusOK, polls)
}

// @Security AdminToken
// listCandidates godoc
// @Summary List candidate records, optionally for a single poll
// @Tags admin
// @Produce json
// @Param pollId query int false "Poll ID"
// @Success 200 {array} storage.Candidate
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/admin/candidates [get]
func (c *AdminController) listCandidates(g *gin.Context) {
	pollID, filter, ok := pollFilterFromQuery(g)
	if !ok {
		return
	}

	all, err := c.candidatesStorage.GetAll(g.Request.Context())
	if err != nil {
		logging.Log.Errorf("ADMIN: failed to list candidates: %v", err)
		g.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	filtered := make([]*storage.Candidate, 0, len(all))
	for _, candidate := range all {
		if !filter || candidate.PollID == pollID {
			filtered = append(filtered, candidate)
		}
	}

	logging.Log.Infof("ADMIN: listed %d candidates", len(filtered))
	g.JSON(http.StatusOK, filtered)
}

// @Security AdminToken
// listVotes godoc
// @Summary List vote records, optionally for a single poll
// @Tags admin
// @Produce json
// @Param pollId query int false "Poll ID"
// @Success 200 {array} storage.VoteRecord
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/admin/votes [get]
func (c *AdminController) listVotes(g *gin.Context) {
	pollID, filter, ok := pollFilterFromQuery(g)
	if !ok {
		return
	}

	all, err := c.votesStorage.GetAll(g.Request.Context())
	if err != nil {
		logging.Log.Errorf("ADMIN: failed to list votes: %v", err)
		g.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	filtered := make([]*storage.VoteRecord, 0, len(all))
	for _, record := range all {
		if !filter || record.PollID == pollID {
			filtered = append(filtered, record)
		}
	}

	logging.Log.Infof("ADMIN: listed %d votes", len(filtered))
	g.JSON(http.StatusOK, filtered)
}

// @Security AdminToken
// reset godoc
// @Summary Delete every record from all three registries
// @Description Destroys the whole ledger. Disabled unless server.allowReset is set.
// @Tags admin
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 403 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/admin/reset [post]
func (c *AdminController) reset(g *gin.Context) {
	if !c.allowReset {
		logging.Log.Warnf("ADMIN: reset requested but disabled by configuration")
		g.JSON(http.StatusForbidden, gin.H{"error": "reset is disabled"})
		return
	}

	ctx := g.Request.Context()
	if err := c.votesStorage.DeleteAll(ctx); err != nil {
		logging.Log.Errorf("ADMIN: failed to reset votes: %v", err)
		g.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if err := c.candidatesStorage.DeleteAll(ctx); err != nil {
		logging.Log.Errorf("ADMIN: failed to reset candidates: %v", err)
		g.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if err := c.pollsStorage.DeleteAll(ctx); err != nil {
		logging.Log.Errorf("ADMIN: failed to reset polls: %v", err)
		g.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	logging.Log.Info("ADMIN: reset all registries")
	g.JSON(http.StatusOK, gin.H{"message": "All registries reset"})
}

func pollFilterFromQuery(g *gin.Context) (uint64, bool, bool) {
	raw := g.Query("pollId")
	if raw == "" {
		return 0, false, true
	}
	pollID, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		logging.Log.Warnf("ADMIN: invalid pollId query: %s", raw)
		g.JSON(http.StatusBadRequest, gin.H{"error": "invalid pollId query parameter"})
		return 0, false, false
	}
	return pollID, true, true
}
