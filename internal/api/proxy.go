package api

import (
	"context"
	"errors"
	"net/http"
	"signup-wizard/internal/wizard"
	"signup-wizard/pkg/models"

	"github.com/gin-gonic/gin"
)

// Backend is the subset of the subscription backend the proxy routes use.
type Backend interface {
	FetchGroupedInterestsRaw(ctx context.Context) ([]byte, error)
	LookupUserByPhone(ctx context.Context, phone string) (*models.UserLookupResponse, error)
	UpdateSignup(ctx context.Context, req models.UpdateSignupRequest) (*models.MessageResponse, error)
}

// ProxyHandler exposes thin validate-and-forward routes to the backend.
type ProxyHandler struct {
	Backend Backend
	Gateway *wizard.Gateway
}

func NewProxyHandler(b Backend, gw *wizard.Gateway) *ProxyHandler {
	return &ProxyHandler{Backend: b, Gateway: gw}
}

func (h *ProxyHandler) GetInterests(c *gin.Context) {
	raw, err := h.Backend.FetchGroupedInterestsRaw(c.Request.Context())
	if err != nil {
		writeProxyError(c, err, "Failed to fetch interests")
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", raw)
}

func (h *ProxyHandler) CheckUser(c *gin.Context) {
	phone := c.Query("phoneNumber")
	if phone == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Phone number is required"})
		return
	}
	resp, err := h.Backend.LookupUserByPhone(c.Request.Context(), phone)
	if err != nil {
		writeProxyError(c, err, "Failed to check user")
		return
	}
	c.JSON(http.StatusOK, resp)
}

type SignupRequest struct {
	FullName            string   `json:"fullName"`
	Email               string   `json:"email"`
	PhoneNumber         string   `json:"phoneNumber"`
	SubscriptionPrefs   []string `json:"subscriptionPrefs"`
	SelectedInterestIDs []string `json:"selectedInterestIds"`
}

func (h *ProxyHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var channels wizard.ChannelSet
	for _, p := range req.SubscriptionPrefs {
		ch, err := wizard.ParseChannel(p)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if !channels.Has(ch) {
			channels.Toggle(ch)
		}
	}

	msg, err := h.Gateway.Submit(c.Request.Context(), wizard.Submission{
		Mode: wizard.ModeCreate,
		Contact: wizard.ContactInfo{
			FullName:    req.FullName,
			Email:       req.Email,
			PhoneNumber: req.PhoneNumber,
		},
		Channels:  channels,
		Interests: req.SelectedInterestIDs,
	})
	if err != nil {
		var (
			verr *wizard.ValidationError
			serr *wizard.SubmitError
		)
		switch {
		case errors.As(err, &verr):
			c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message})
		case errors.As(err, &serr) && serr.Status > 0:
			c.JSON(serr.Status, gin.H{"error": serr.Message})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": msg, "success": true})
}

func (h *ProxyHandler) UpdateUser(c *gin.Context) {
	var req models.UpdateSignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Email == "" && req.PhoneNumber == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Either email or phoneNumber is required"})
		return
	}

	resp, err := h.Backend.UpdateSignup(c.Request.Context(), req)
	if err != nil {
		writeProxyError(c, err, "Failed to update user")
		return
	}
	c.JSON(http.StatusOK, resp)
}
