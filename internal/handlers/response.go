package handlers

import (
	"errors"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"bookkeeping-backend/internal/repository"
	"bookkeeping-backend/internal/services/ledger"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

// Every response uses the {code, data?, message} envelope on success and
// {code, error, message?} on failure.

func respondData(c *gin.Context, status int, data any, message string) {
	c.JSON(status, gin.H{"code": status, "data": data, "message": message})
}

func respondList(c *gin.Context, data any, total int, message string) {
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "data": data, "message": message, "total": total})
}

func respondMessage(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"code": status, "message": message})
}

func respondErrorMessage(c *gin.Context, status int, err, message string) {
	body := gin.H{"code": status, "error": err}
	if message != "" {
		body["message"] = message
	}
	c.JSON(status, body)
}

// respondError maps business-rule errors to their envelope. Anything
// unrecognized is logged and returned as a generic 500; internal error text
// never reaches the caller.
func respondError(c *gin.Context, err error) {
	var le *ledger.Error
	if errors.As(err, &le) {
		respondErrorMessage(c, le.Status, le.Err, le.Message)
		return
	}
	if errors.Is(err, repository.ErrNotFound) {
		respondErrorMessage(c, http.StatusNotFound, "Not found", "")
		return
	}
	logger.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
	respondErrorMessage(c, http.StatusInternalServerError, "Internal server error", "")
}
