package handler

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed web
var assets embed.FS

// NewRouter builds the gin engine serving the form page and its API.
func NewRouter(h *FormHandler) (*gin.Engine, error) {
	r := gin.New()
	r.Use(RequestID(), RequestLogger(), gin.Recovery(), SecurityHeaders())

	tmpl, err := template.ParseFS(assets, "web/templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("error parsing templates: %w", err)
	}
	r.SetHTMLTemplate(tmpl)

	static, err := fs.Sub(assets, "web/static")
	if err != nil {
		return nil, fmt.Errorf("error loading static assets: %w", err)
	}
	r.StaticFS("/static", http.FS(static))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "sessions": h.sessions.Len()})
	})

	withSession := WithSession(h.sessions)

	r.GET("/", withSession, h.Index)

	api := r.Group("/api/form", withSession)
	{
		api.GET("", h.State)
		api.DELETE("", h.Reset)
		api.POST("/image", h.UploadImage)
		api.PUT("/prompt", h.SetPrompt)
		api.PUT("/webhook", h.SetWebhook)
		api.POST("/submit", h.Submit)
	}

	return r, nil
}
