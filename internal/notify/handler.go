package notify

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vowbook/backend/internal/events"
	"github.com/vowbook/backend/internal/middleware"
	"github.com/vowbook/backend/pkg/response"
)

// Handler handles notification log HTTP endpoints.
type Handler struct {
	repo     *Repository
	resolver *events.Resolver
}

// NewHandler creates a notify handler.
func NewHandler(repo *Repository, resolver *events.Resolver) *Handler {
	return &Handler{repo: repo, resolver: resolver}
}

// List handles GET /dashboard/notifications.
func (h *Handler) List(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)
	event, err := h.resolver.Resolve(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, events.ErrNoAccount):
			response.Unauthorized(c, err.Error())
		case errors.Is(err, events.ErrNoCouple), errors.Is(err, events.ErrNoEvent):
			response.NotFound(c, err.Error())
		default:
			response.Internal(c, "failed to resolve event")
		}
		return
	}
	list, err := h.repo.ListByEvent(c.Request.Context(), event.ID)
	if err != nil {
		response.Internal(c, "failed to list notifications")
		return
	}
	response.OK(c, gin.H{"notifications": list})
}
