// Package admin provides provisioning endpoints: creating couples and their
// events before the couple's account is registered.
package admin

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vowbook/backend/internal/events"
	"github.com/vowbook/backend/internal/models"
	"github.com/vowbook/backend/pkg/response"
)

// CreateCoupleRequest is the body for POST /admin/couples.
type CreateCoupleRequest struct {
	DisplayName string `json:"display_name" binding:"required"`
}

// CreateEventRequest is the body for POST /admin/events.
type CreateEventRequest struct {
	CoupleID string               `json:"couple_id" binding:"required,uuid"`
	Slug     string               `json:"slug" binding:"required"`
	Title    string               `json:"title" binding:"required"`
	Settings models.EventSettings `json:"settings"`
}

// Handler handles admin provisioning endpoints.
type Handler struct {
	repo      *Repository
	eventRepo *events.Repository
	logger    *zap.Logger
}

// NewHandler creates an admin handler.
func NewHandler(repo *Repository, eventRepo *events.Repository, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{repo: repo, eventRepo: eventRepo, logger: logger}
}

// CreateCouple handles POST /admin/couples.
func (h *Handler) CreateCouple(c *gin.Context) {
	var req CreateCoupleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	couple, err := h.repo.CreateCouple(c.Request.Context(), req.DisplayName)
	if err != nil {
		h.logger.Error("create couple failed", zap.Error(err))
		response.Internal(c, "failed to create couple")
		return
	}
	response.Created(c, couple)
}

// ListCouples handles GET /admin/couples.
func (h *Handler) ListCouples(c *gin.Context) {
	list, err := h.repo.ListCouples(c.Request.Context())
	if err != nil {
		response.Internal(c, "failed to list couples")
		return
	}
	response.OK(c, gin.H{"couples": list})
}

// CreateEvent handles POST /admin/events. Each couple owns one event; a second
// create for the same couple fails on the unique constraint.
func (h *Handler) CreateEvent(c *gin.Context) {
	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	coupleID, err := uuid.Parse(req.CoupleID)
	if err != nil {
		response.BadRequest(c, "invalid couple id")
		return
	}
	event, err := h.eventRepo.Create(c.Request.Context(), coupleID, req.Slug, req.Title, req.Settings)
	if err != nil {
		h.logger.Error("create event failed", zap.Error(err), zap.String("couple_id", coupleID.String()))
		response.Conflict(c, "failed to create event (slug taken or couple already has one)")
		return
	}
	response.Created(c, event)
}
