package events

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vowbook/backend/internal/middleware"
	"github.com/vowbook/backend/internal/models"
	"github.com/vowbook/backend/pkg/response"
)

// UpdateRequest is the body for PATCH /dashboard/event (the settings form).
type UpdateRequest struct {
	Title              string               `json:"title" binding:"required"`
	Slug               string               `json:"slug" binding:"required"`
	Settings           models.EventSettings `json:"settings"`
	BackgroundImageURL string               `json:"background_image_url"`
}

// Handler handles event HTTP endpoints.
type Handler struct {
	repo     *Repository
	resolver *Resolver
	logger   *zap.Logger
}

// NewHandler creates an events handler.
func NewHandler(repo *Repository, resolver *Resolver, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{repo: repo, resolver: resolver, logger: logger}
}

// GetBySlug handles GET /events/:slug (public entry page).
func (h *Handler) GetBySlug(c *gin.Context) {
	event, err := h.repo.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.NotFound(c, "event not found")
		return
	}
	response.OK(c, event.ToPublic())
}

// GetMine handles GET /dashboard/event.
func (h *Handler) GetMine(c *gin.Context) {
	event, ok := h.resolveOrFail(c)
	if !ok {
		return
	}
	response.OK(c, event)
}

// Update handles PATCH /dashboard/event.
func (h *Handler) Update(c *gin.Context) {
	event, ok := h.resolveOrFail(c)
	if !ok {
		return
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	updated, err := h.repo.Update(c.Request.Context(), event.ID, req.Title, req.Slug, req.Settings, req.BackgroundImageURL)
	if err != nil {
		h.logger.Error("update event failed", zap.Error(err), zap.String("event_id", event.ID.String()))
		response.Internal(c, "failed to save settings")
		return
	}
	response.OK(c, updated)
}

// resolveOrFail resolves the caller's event, writing the chain-specific error
// response when a link is missing.
func (h *Handler) resolveOrFail(c *gin.Context) (*models.Event, bool) {
	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)
	event, err := h.resolver.Resolve(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNoAccount):
			response.Unauthorized(c, err.Error())
		case errors.Is(err, ErrNoCouple), errors.Is(err, ErrNoEvent):
			response.NotFound(c, err.Error())
		default:
			response.Internal(c, "failed to resolve event")
		}
		return nil, false
	}
	return event, true
}
