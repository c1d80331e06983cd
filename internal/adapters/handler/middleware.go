package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid/v5"
	"github.com/rs/zerolog/log"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
	sessionKey      = "session"
	sessionCookie   = "imghook_session"
)

// RequestID ensures every request has a request ID in its context and response headers.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(requestIDHeader)
		if rid == "" {
			if id, err := uuid.NewV4(); err == nil {
				rid = id.String()
			}
		}
		c.Set(requestIDKey, rid)
		c.Header(requestIDHeader, rid)
		c.Next()
	}
}

// RequestLogger logs every finished request.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := c.Writer.Status()

		event := log.Info()
		switch {
		case status >= 500:
			event = log.Error()
		case status >= 400:
			event = log.Warn()
		}

		event.
			Str("requestId", c.GetString(requestIDKey)).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Int64("durationMs", time.Since(start).Milliseconds()).
			Str("clientIp", c.ClientIP()).
			Msg("http request")
	}
}

// SecurityHeaders sets common security headers. Result images are served from arbitrary hosts, so images
// may be loaded from anywhere.
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "no-referrer")
		c.Header("Content-Security-Policy",
			"default-src 'self'; script-src 'self'; style-src 'self'; img-src * data:; "+
				"object-src 'none'; frame-ancestors 'none'")
		c.Next()
	}
}

// WithSession attaches the caller's form session to the context, creating one if the cookie is missing or
// refers to an expired session.
func WithSession(sessions *Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		if id, err := c.Cookie(sessionCookie); err == nil {
			if session, ok := sessions.Get(id); ok {
				c.Set(sessionKey, session)
				c.Next()
				return
			}
		}

		session, err := sessions.Create()
		if err != nil {
			log.Error().Err(err).Msg("could not create form session")
			jsonError(c, "could not create session", http.StatusInternalServerError)
			c.Abort()
			return
		}

		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(sessionCookie, session.ID, 0, "/", "", false, true)
		c.Set(sessionKey, session)
		c.Next()
	}
}

func sessionFrom(c *gin.Context) *Session {
	return c.MustGet(sessionKey).(*Session)
}
