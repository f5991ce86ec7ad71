package api

import (
	"net/http"
	"signup-wizard/internal/theme"

	"github.com/gin-gonic/gin"
)

type ThemeHandler struct {
	Preference *theme.Preference
}

func NewThemeHandler(p *theme.Preference) *ThemeHandler {
	return &ThemeHandler{Preference: p}
}

func (h *ThemeHandler) GetTheme(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"theme": h.Preference.Get()})
}

type SetThemeRequest struct {
	Theme string `json:"theme" binding:"required,oneof=light dark"`
}

func (h *ThemeHandler) SetTheme(c *gin.Context) {
	var req SetThemeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	t, err := theme.Parse(req.Theme)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.Preference.Set(t)
	c.JSON(http.StatusOK, gin.H{"theme": t})
}

func (h *ThemeHandler) ToggleTheme(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"theme": h.Preference.Toggle()})
}
