package http

import (
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"authd/internal/apperr"
)

// ContextUserIDKey holds the authenticated user id for downstream handlers.
const ContextUserIDKey = "auth.userID"

// requireSession rejects requests whose session carries no authenticated
// identity. It reads session state but never writes it.
func (h *Handler) requireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessions.Default(c)
		userID, ok := sess.Get(sessionKeyUserID).(int64)
		if !ok || userID == 0 {
			h.respondError(c, apperr.New(apperr.KindAuth, "Unauthorized"))
			return
		}

		c.Set(ContextUserIDKey, userID)
		c.Next()
	}
}

// RequestLogger tags each request with an id and logs its outcome.
func RequestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := uuid.NewString()
		c.Writer.Header().Set("X-Request-ID", requestID)

		c.Next()

		logger.WithFields(logrus.Fields{
			"request_id": requestID,
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"duration":   time.Since(start),
		}).Info("request")
	}
}
