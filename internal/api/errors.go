package api

import (
	"errors"
	"log"
	"net/http"
	"signup-wizard/internal/backend"
	"signup-wizard/internal/wizard"

	"github.com/gin-gonic/gin"
)

const msgInternal = "Internal server error"

// writeWizardError maps session errors to statuses. The snapshot, when known,
// is returned alongside so the page can re-render the step.
func writeWizardError(c *gin.Context, err error, snap wizard.Snapshot) {
	status := http.StatusInternalServerError
	body := gin.H{"error": err.Error()}

	var (
		verr *wizard.ValidationError
		serr *wizard.SubmitError
	)
	switch {
	case errors.As(err, &verr):
		status = http.StatusBadRequest
		body["step"] = verr.Step
	case errors.As(err, &serr):
		status = serr.Status
		if status == 0 {
			status = http.StatusBadGateway
		}
	case errors.Is(err, wizard.ErrSessionNotFound), errors.Is(err, wizard.ErrUnknownMarket):
		status = http.StatusNotFound
	case errors.Is(err, wizard.ErrSessionClosed):
		status = http.StatusGone
	case errors.Is(err, wizard.ErrUnknownChannel):
		status = http.StatusBadRequest
	case errors.Is(err, wizard.ErrInvalidTransition),
		errors.Is(err, wizard.ErrWrongStep),
		errors.Is(err, wizard.ErrReadOnly),
		errors.Is(err, wizard.ErrSubmitPending),
		errors.Is(err, wizard.ErrLookupPending):
		status = http.StatusConflict
	default:
		log.Printf("Unexpected wizard error: %v", err)
		body["error"] = msgInternal
	}

	if snap.ID != "" {
		body["session"] = snap
	}
	c.JSON(status, body)
}

// writeProxyError surfaces a backend rejection with its own status and
// message, and hides transport details behind a 500.
func writeProxyError(c *gin.Context, err error, fallback string) {
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		c.JSON(apiErr.Status, gin.H{"error": backend.RejectionMessage(err, fallback)})
		return
	}
	log.Printf("Backend call failed: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": msgInternal})
}
