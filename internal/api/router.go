package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Wizard      *WizardHandler
	Proxy       *ProxyHandler
	Theme       *ThemeHandler
	Submissions *SubmissionHandler
}

func corsMiddleware(origin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With, "+sessionHeader)
		c.Writer.Header().Set("Access-Control-Expose-Headers", sessionHeader)
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

func NewRouter(corsOrigin string, h Handlers) *gin.Engine {
	r := gin.Default()
	r.Use(corsMiddleware(corsOrigin))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiGroup := r.Group("/api")
	{
		// Wizard Routes
		wizardGroup := apiGroup.Group("/wizard")
		{
			wizardGroup.POST("", h.Wizard.CreateSession)
			wizardGroup.GET("", h.Wizard.GetSession)
			wizardGroup.DELETE("", h.Wizard.DeleteSession)
			wizardGroup.GET("/markets", h.Wizard.GetMarkets)
			wizardGroup.POST("/markets/:id/toggle", h.Wizard.ToggleMarket)
			wizardGroup.POST("/channels/:channel/toggle", h.Wizard.ToggleChannel)
			wizardGroup.POST("/next", h.Wizard.Next)
			wizardGroup.POST("/back", h.Wizard.Back)
			wizardGroup.POST("/restart", h.Wizard.Restart)
			wizardGroup.PUT("/contact", h.Wizard.UpdateContact)
			wizardGroup.POST("/contact/blur", h.Wizard.BlurContact)
			wizardGroup.POST("/submit", h.Wizard.Submit)
			wizardGroup.GET("/events", h.Wizard.Events)
		}

		// Backend Proxy Routes
		apiGroup.GET("/interests", h.Proxy.GetInterests)
		apiGroup.GET("/check-user", h.Proxy.CheckUser)
		apiGroup.POST("/signup", h.Proxy.Signup)
		apiGroup.POST("/update-user", h.Proxy.UpdateUser)

		// Theme Routes
		apiGroup.GET("/theme", h.Theme.GetTheme)
		apiGroup.PUT("/theme", h.Theme.SetTheme)
		apiGroup.POST("/theme/toggle", h.Theme.ToggleTheme)

		// Audit Routes
		if h.Submissions != nil {
			apiGroup.GET("/submissions", h.Submissions.GetSubmissions)
		}
	}

	return r
}
