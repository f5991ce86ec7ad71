package api

import (
	"context"
	"net/http"
	"signup-wizard/internal/models"
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	defaultSubmissionLimit = 100
	maxSubmissionLimit     = 500
)

// SubmissionLister reads the audit log.
type SubmissionLister interface {
	Recent(ctx context.Context, limit int) ([]models.SubmissionLog, error)
}

type SubmissionHandler struct {
	Store SubmissionLister
}

func NewSubmissionHandler(store SubmissionLister) *SubmissionHandler {
	return &SubmissionHandler{Store: store}
}

// GetSubmissions returns recent audit entries, newest first.
func (h *SubmissionHandler) GetSubmissions(c *gin.Context) {
	limit := defaultSubmissionLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = min(n, maxSubmissionLimit)
	}

	logs, err := h.Store.Recent(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, logs)
}
