package http

import (
	"net/http"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"authd/internal/apperr"
	"authd/internal/domain"
	"authd/internal/service"
)

// sessionKeyUserID is the authenticated-identity marker stored on the session.
const sessionKeyUserID = "userId"

// Handler wires HTTP routes to the authentication workflow.
type Handler struct {
	auth   service.AuthService
	logger *logrus.Logger
}

func NewHandler(auth service.AuthService, logger *logrus.Logger) *Handler {
	return &Handler{
		auth:   auth,
		logger: logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "authd"})
	})

	api := router.Group("/api/auth")
	{
		api.POST("/register", h.register)
		api.POST("/login", h.login)
		api.GET("/me", h.requireSession(), h.me)
		// Logout is deliberately ungated so it stays idempotent: with no
		// active session it still answers with the success payload.
		api.POST("/logout", h.logout)
	}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisteredUser struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}

type LoggedInUser struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

type Profile struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func (h *Handler) register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, apperr.Wrap(apperr.KindValidation, "Invalid request body", err))
		return
	}

	user, err := h.auth.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}

	// Auto-login after register.
	if err := h.saveSessionUser(c, user.ID); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Registered successfully",
		"user": RegisteredUser{
			ID:        user.ID,
			Email:     user.Email,
			CreatedAt: user.CreatedAt.Format(time.RFC3339),
		},
	})
}

func (h *Handler) login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, apperr.Wrap(apperr.KindValidation, "Invalid request body", err))
		return
	}

	user, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if err := h.saveSessionUser(c, user.ID); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged in",
		"user": LoggedInUser{
			ID:    user.ID,
			Email: user.Email,
		},
	})
}

func (h *Handler) me(c *gin.Context) {
	userID := c.GetInt64(ContextUserIDKey)

	user, err := h.auth.GetProfile(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": profileResponse(user)})
}

func (h *Handler) logout(c *gin.Context) {
	sess := sessions.Default(c)
	sess.Clear()
	sess.Options(sessions.Options{Path: "/", MaxAge: -1}) // expire the cookie client-side
	if err := sess.Save(); err != nil {
		h.respondError(c, apperr.Internal(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// saveSessionUser stores the authenticated identity on the session.
func (h *Handler) saveSessionUser(c *gin.Context, userID int64) error {
	sess := sessions.Default(c)
	sess.Set(sessionKeyUserID, userID)
	if err := sess.Save(); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

func profileResponse(user *domain.User) Profile {
	return Profile{
		ID:        user.ID,
		Email:     user.Email,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
		UpdatedAt: user.UpdatedAt.Format(time.RFC3339),
	}
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Message string `json:"message"`
}

// respondError is the single error-formatting point. Unclassified errors are
// treated as internal, whose details are logged but never echoed to clients.
func (h *Handler) respondError(c *gin.Context, err error) {
	kind := apperr.KindOf(err)
	if kind == apperr.KindInternal && h.logger != nil {
		h.logger.WithError(err).Error("internal error")
	}
	c.AbortWithStatusJSON(apperr.Status(kind), errorResponse{
		Error: errorBody{Message: apperr.Message(err)},
	})
}
