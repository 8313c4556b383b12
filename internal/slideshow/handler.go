package slideshow

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vowbook/backend/internal/events"
	"github.com/vowbook/backend/internal/middleware"
	"github.com/vowbook/backend/internal/submissions"
	"github.com/vowbook/backend/pkg/response"
)

// Handler serves the slideshow playlist for venue display. Each index change
// on the client requests a fresh signed URL via the submission media-url
// endpoint, so the playlist itself carries no URLs.
type Handler struct {
	repo         *submissions.Repository
	resolver     *events.Resolver
	imageDwellMs int
	logger       *zap.Logger
}

// NewHandler creates a slideshow handler.
func NewHandler(repo *submissions.Repository, resolver *events.Resolver, imageDwellMs int, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if imageDwellMs <= 0 {
		imageDwellMs = 7000
	}
	return &Handler{repo: repo, resolver: resolver, imageDwellMs: imageDwellMs, logger: logger}
}

// Get handles GET /dashboard/slideshow.
func (h *Handler) Get(c *gin.Context) {
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

	list, err := h.repo.ListSlideshow(c.Request.Context(), event.ID)
	if err != nil {
		h.logger.Error("list slideshow failed", zap.Error(err), zap.String("event_id", event.ID.String()))
		response.Internal(c, "failed to load slideshow")
		return
	}

	playlist := NewPlaylist(list)
	response.OK(c, gin.H{
		"items":          playlist.Items,
		"image_dwell_ms": h.imageDwellMs,
	})
}
