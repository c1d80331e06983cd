package handler

import (
	"context"
	"errors"
	"imghook/internal/adapters/file"
	"imghook/internal/adapters/notifier"
	"imghook/internal/core/domain"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// FormHandler exposes form sessions to the browser page.
type FormHandler struct {
	sessions  *Sessions
	maxUpload int64
}

func NewFormHandler(sessions *Sessions, maxUpload int64) *FormHandler {
	return &FormHandler{sessions: sessions, maxUpload: maxUpload}
}

type formResponse struct {
	Form          domain.Snapshot  `json:"form"`
	Notifications []notifier.Toast `json:"notifications"`
}

type promptRequest struct {
	Prompt string `json:"prompt"`
}

type webhookRequest struct {
	WebhookURL string `json:"webhook_url"`
}

// Index renders the form page.
func (h *FormHandler) Index(c *gin.Context) {
	s := sessionFrom(c)

	c.Header("Cache-Control", "no-store")
	c.HTML(http.StatusOK, "index.tmpl", gin.H{
		"Form": s.Controller.Form().Snapshot(),
	})
}

// State returns the form and any pending notifications.
func (h *FormHandler) State(c *gin.Context) {
	h.respond(c, http.StatusOK, sessionFrom(c))
}

// UploadImage selects the uploaded file and waits for its preview.
func (h *FormHandler) UploadImage(c *gin.Context) {
	s := sessionFrom(c)

	if c.Request.ContentLength > h.maxUpload {
		jsonError(c, "Image is too large", http.StatusRequestEntityTooLarge)
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUpload)

	header, err := c.FormFile(domain.FieldImage)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			jsonError(c, "Image is too large", http.StatusRequestEntityTooLarge)
			return
		}
		jsonError(c, "No image uploaded", http.StatusBadRequest)
		return
	}

	f, err := header.Open()
	if err != nil {
		jsonError(c, "Failed to read image", http.StatusBadRequest)
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		jsonError(c, "Failed to read image", http.StatusBadRequest)
		return
	}

	if !file.IsImage(data) {
		log.Warn().Str("session", s.ID).Str("filename", header.Filename).Msg("uploaded file does not look like an image")
	}

	image := file.NewImage(header.Filename, header.Header.Get("Content-Type"), data)
	done := s.Controller.Form().SetImage(context.WithoutCancel(c.Request.Context()), image)

	select {
	case <-done:
	case <-c.Request.Context().Done():
		return
	}

	h.respond(c, http.StatusOK, s)
}

func (h *FormHandler) SetPrompt(c *gin.Context) {
	s := sessionFrom(c)

	var req promptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		jsonError(c, "Invalid request format", http.StatusBadRequest)
		return
	}

	s.Controller.Form().SetPrompt(req.Prompt)
	h.respond(c, http.StatusOK, s)
}

func (h *FormHandler) SetWebhook(c *gin.Context) {
	s := sessionFrom(c)

	var req webhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		jsonError(c, "Invalid request format", http.StatusBadRequest)
		return
	}

	s.Controller.Form().SetWebhookURL(req.WebhookURL)
	h.respond(c, http.StatusOK, s)
}

// Submit runs a submission to completion. The webhook call is not tied to the browser request, so a
// closed tab does not cancel it.
func (h *FormHandler) Submit(c *gin.Context) {
	s := sessionFrom(c)

	err := s.Controller.Submit(context.WithoutCancel(c.Request.Context()))

	h.respond(c, submitStatus(err), s)
}

// Reset clears the form and ends the session.
func (h *FormHandler) Reset(c *gin.Context) {
	s := sessionFrom(c)

	s.Controller.Form().Reset()
	h.sessions.Delete(s.ID)

	c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
	c.Status(http.StatusNoContent)
}

func (h *FormHandler) respond(c *gin.Context, status int, s *Session) {
	c.Header("Cache-Control", "no-store")
	c.JSON(status, formResponse{
		Form:          s.Controller.Form().Snapshot(),
		Notifications: s.Toasts.Drain(),
	})
}

func submitStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, domain.ErrMissingInput):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrSubmissionInProgress):
		return http.StatusConflict
	default:
		return http.StatusBadGateway
	}
}

func jsonError(c *gin.Context, msg string, code int) {
	c.JSON(code, gin.H{"error": msg})
}
