package api

import (
	"net/http"
	"signup-wizard/internal/wizard"
	"signup-wizard/internal/ws"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	sessionCookie = "wizard_session"
	sessionHeader = "X-Wizard-Session"
)

type WizardHandler struct {
	Store *wizard.Store
	Hub   *ws.Hub
	TTL   time.Duration
}

func NewWizardHandler(store *wizard.Store, hub *ws.Hub, ttl time.Duration) *WizardHandler {
	return &WizardHandler{Store: store, Hub: hub, TTL: ttl}
}

// session resolves the caller's session from the cookie or header. It writes
// the error response itself when the session is missing.
func (h *WizardHandler) session(c *gin.Context) (*wizard.Session, bool) {
	id := c.GetHeader(sessionHeader)
	if id == "" {
		id, _ = c.Cookie(sessionCookie)
	}
	s, err := h.Store.Get(id)
	if err != nil {
		writeWizardError(c, err, wizard.Snapshot{})
		return nil, false
	}
	return s, true
}

func (h *WizardHandler) respond(c *gin.Context, snap wizard.Snapshot, err error) {
	if err != nil {
		writeWizardError(c, err, snap)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// CreateSession starts a wizard run and loads the interest catalog for it.
func (h *WizardHandler) CreateSession(c *gin.Context) {
	s := h.Store.Create(c.Request.Context())
	snap, err := s.Snapshot()
	if err != nil {
		writeWizardError(c, err, wizard.Snapshot{})
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, s.ID, int(h.TTL.Seconds()), "/", "", false, true)
	c.Header(sessionHeader, s.ID)
	c.JSON(http.StatusCreated, snap)
}

func (h *WizardHandler) GetSession(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	snap, err := s.Snapshot()
	h.respond(c, snap, err)
}

func (h *WizardHandler) DeleteSession(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	h.Store.Delete(s.ID)
	c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
	c.Status(http.StatusNoContent)
}

func (h *WizardHandler) GetMarkets(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	cat := s.Catalog()
	c.JSON(http.StatusOK, gin.H{
		"markets":  cat.Markets,
		"waitlist": cat.Waitlist,
		"degraded": cat.Degraded,
	})
}

func (h *WizardHandler) ToggleMarket(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	snap, err := s.ToggleMarket(c.Param("id"))
	h.respond(c, snap, err)
}

func (h *WizardHandler) ToggleChannel(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	ch, err := wizard.ParseChannel(c.Param("channel"))
	if err != nil {
		writeWizardError(c, err, wizard.Snapshot{})
		return
	}
	snap, err := s.ToggleChannel(ch)
	h.respond(c, snap, err)
}

func (h *WizardHandler) Next(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	snap, err := s.Next()
	h.respond(c, snap, err)
}

func (h *WizardHandler) Back(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	snap, err := s.Back()
	h.respond(c, snap, err)
}

func (h *WizardHandler) Restart(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	snap, err := s.Restart()
	h.respond(c, snap, err)
}

type ContactRequest struct {
	FullName    *string `json:"fullName"`
	Email       *string `json:"email"`
	PhoneNumber *string `json:"phoneNumber"`
}

func (h *WizardHandler) UpdateContact(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	snap, err := s.UpdateContact(c.Request.Context(), wizard.ContactUpdate{
		FullName:    req.FullName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
	})
	h.respond(c, snap, err)
}

func (h *WizardHandler) BlurContact(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	snap, err := s.Blur(c.Request.Context())
	h.respond(c, snap, err)
}

func (h *WizardHandler) Submit(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	snap, err := s.Submit(c.Request.Context())
	h.respond(c, snap, err)
}

// Events upgrades to a websocket that receives this session's snapshots.
func (h *WizardHandler) Events(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	h.Hub.ServeWs(c.Writer, c.Request, s.ID)
}
