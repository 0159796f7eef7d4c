package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Ham3798/solana-voting-sample/address"
	"github.com/Ham3798/solana-voting-sample/api/models"
	"github.com/Ham3798/solana-voting-sample/logging"
	"github.com/Ham3798/solana-voting-sample/storage"
	"github.com/Ham3798/solana-voting-sample/voting"
	"github.com/gin-gonic/gin"
)

// respondLedgerError translates ledger errors into HTTP responses.
// Every write endpoint funnels its failures through here so the
// status codes stay consistent across record kinds.
func respondLedgerError(g *gin.Context, prefix string, err error) {
	switch {
	case errors.Is(err, voting.ErrTextTooLong):
		logging.Log.Warnf("%s: rejected request: %v", prefix, err)
		g.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
	case errors.Is(err, voting.ErrMissingSigner):
		logging.Log.Warnf("%s: request without signer", prefix)
		g.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: err.Error()})
	case errors.Is(err, storage.ErrRecordNotFound):
		g.JSON(http.StatusNotFound, models.ErrorResponse{Error: err.Error()})
	case errors.Is(err, storage.ErrRecordAlreadyExists):
		logging.Log.Warnf("%s: rejected request: %v", prefix, err)
		g.JSON(http.StatusConflict, models.ErrorResponse{Error: err.Error()})
	case errors.Is(err, address.ErrSeedTooLong),
		errors.Is(err, address.ErrTooManySeeds),
		errors.Is(err, address.ErrEmptyNamespace):
		logging.Log.Warnf("%s: address derivation failed: %v", prefix, err)
		g.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{Error: err.Error()})
	default:
		logging.Log.Errorf("%s: request failed: %v", prefix, err)
		g.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
	}
}

// parsePollID reads the :pollId path parameter. A non numeric value
// gets a 400 and the handler should return immediately.
func parsePollID(g *gin.Context) (uint64, bool) {
	pollID, err := strconv.ParseUint(g.Param("pollId"), 10, 64)
	if err != nil {
		g.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid poll id"})
		return 0, false
	}
	return pollID, true
}
