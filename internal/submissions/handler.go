package submissions

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vowbook/backend/internal/events"
	"github.com/vowbook/backend/internal/middleware"
	"github.com/vowbook/backend/internal/models"
	"github.com/vowbook/backend/pkg/queue"
	"github.com/vowbook/backend/pkg/response"
	"github.com/vowbook/backend/pkg/storage"
)

// CreateRequest is the JSON body for POST /events/:slug/submissions. Text
// submissions carry content; media submissions uploaded client-side via a
// presigned URL carry storage_path and storage_meta instead.
type CreateRequest struct {
	SenderName    string             `json:"sender_name" binding:"required"`
	SenderContact string             `json:"sender_contact"`
	Type          string             `json:"type" binding:"required"`
	Content       string             `json:"content"`
	StoragePath   string             `json:"storage_path"`
	StorageMeta   models.StorageMeta `json:"storage_meta"`
}

// UploadURLRequest is the body for POST /events/:slug/submissions/upload-url.
type UploadURLRequest struct {
	Type        string `json:"type" binding:"required"`
	Filename    string `json:"filename" binding:"required"`
	ContentType string `json:"content_type"`
	FileSize    int64  `json:"file_size" binding:"required,gt=0"`
}

// Handler handles submission HTTP endpoints.
type Handler struct {
	repo      *Repository
	eventRepo *events.Repository
	resolver  *events.Resolver
	s3        *storage.S3
	jobs      *queue.Queue
	logger    *zap.Logger
}

// NewHandler creates a submissions handler. s3 may be nil when storage is not
// configured; media endpoints then return 503.
func NewHandler(repo *Repository, eventRepo *events.Repository, resolver *events.Resolver, s3 *storage.S3, jobs *queue.Queue, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{repo: repo, eventRepo: eventRepo, resolver: resolver, s3: s3, jobs: jobs, logger: logger}
}

// Create handles POST /events/:slug/submissions (public guest intake).
// Accepts multipart/form-data with a file for server-side upload, or JSON for
// text submissions and for media already uploaded via a presigned URL.
func (h *Handler) Create(c *gin.Context) {
	event, err := h.eventRepo.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.NotFound(c, "event not found")
		return
	}

	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		h.createMultipart(c, event)
		return
	}

	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	subType, err := ValidateIntake(IntakeInput{
		SenderName:  req.SenderName,
		Type:        req.Type,
		Content:     req.Content,
		Filename:    req.StorageMeta.Name,
		ContentType: req.StorageMeta.Mime,
		FileSize:    req.StorageMeta.Size,
	})
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if subType != models.SubmissionText && req.StoragePath == "" {
		response.BadRequest(c, ErrFileRequired.Error())
		return
	}

	sub := &models.Submission{
		EventID:       event.ID,
		SenderName:    strings.TrimSpace(req.SenderName),
		SenderContact: strings.TrimSpace(req.SenderContact),
		Type:          subType,
		StorageMeta:   req.StorageMeta,
	}
	if subType == models.SubmissionText {
		sub.Content = strings.TrimSpace(req.Content)
		sub.StorageMeta = models.StorageMeta{}
	} else {
		sub.StoragePath = req.StoragePath
	}

	if err := h.repo.Create(c.Request.Context(), sub); err != nil {
		h.logger.Error("create submission failed", zap.Error(err), zap.String("event_id", event.ID.String()))
		response.Internal(c, "failed to save submission")
		return
	}

	h.notify(c, event, sub)
	response.Created(c, sub)
}

// createMultipart performs validation, server-side S3 upload and row insert.
// If the insert fails after the upload, the blob is deleted so storage does
// not leak; if that delete also fails a cleanup job takes over.
func (h *Handler) createMultipart(c *gin.Context, event *models.Event) {
	file, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "missing file (form field: file)")
		return
	}

	in := IntakeInput{
		SenderName:    c.PostForm("sender_name"),
		SenderContact: c.PostForm("sender_contact"),
		Type:          c.PostForm("type"),
		Filename:      file.Filename,
		ContentType:   file.Header.Get("Content-Type"),
		FileSize:      file.Size,
	}
	subType, err := ValidateIntake(in)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if subType == models.SubmissionText {
		response.BadRequest(c, "text submissions take a JSON body, not a file")
		return
	}

	if h.s3 == nil {
		response.ServiceUnavailable(c, "media storage not configured")
		return
	}

	contentType := storage.ContentTypeForFilename(file.Filename)
	if ct := file.Header.Get("Content-Type"); ct != "" {
		if _, ok := storage.AllowedMediaTypes[strings.ToLower(ct)]; ok {
			contentType = ct
		}
	}

	rc, err := file.Open()
	if err != nil {
		h.logger.Error("open uploaded file failed", zap.Error(err))
		response.Internal(c, "failed to read file")
		return
	}
	defer rc.Close()

	key := storage.MediaKey(event.ID.String(), file.Filename)
	if err := h.s3.Upload(c.Request.Context(), key, contentType, rc, file.Size); err != nil {
		h.logger.Error("media upload failed", zap.Error(err), zap.String("event_id", event.ID.String()), zap.String("key", key))
		response.Internal(c, "failed to upload file to storage")
		return
	}

	sub := &models.Submission{
		EventID:       event.ID,
		SenderName:    strings.TrimSpace(in.SenderName),
		SenderContact: strings.TrimSpace(in.SenderContact),
		Type:          subType,
		StoragePath:   key,
		StorageMeta: models.StorageMeta{
			Size: file.Size,
			Mime: contentType,
			Name: file.Filename,
		},
	}
	if err := h.repo.Create(c.Request.Context(), sub); err != nil {
		h.logger.Error("create submission failed after upload", zap.Error(err), zap.String("key", key))
		if delErr := h.s3.DeleteObject(c.Request.Context(), key); delErr != nil {
			h.logger.Warn("compensating blob delete failed, enqueueing cleanup", zap.Error(delErr), zap.String("key", key))
			_ = h.jobs.EnqueueBlobCleanup(c.Request.Context(), queue.BlobCleanupPayload{StoragePath: key})
		}
		response.Internal(c, "failed to save submission")
		return
	}

	h.notify(c, event, sub)
	response.Created(c, sub)
}

// notify enqueues a notification email when the event opted in. Best effort:
// a queue failure never fails the guest's submission.
func (h *Handler) notify(c *gin.Context, event *models.Event, sub *models.Submission) {
	if h.jobs == nil || !event.Settings.EnableNotifications {
		return
	}
	err := h.jobs.EnqueueNotifyEmail(c.Request.Context(), queue.NotifyEmailPayload{
		EventID:      event.ID,
		SubmissionID: sub.ID,
		SenderName:   sub.SenderName,
		Type:         string(sub.Type),
	})
	if err != nil {
		h.logger.Warn("enqueue notification failed", zap.Error(err), zap.String("submission_id", sub.ID.String()))
	}
}

// GenerateUploadURL handles POST /events/:slug/submissions/upload-url. Returns
// a presigned PUT URL so the guest's browser uploads directly to storage.
func (h *Handler) GenerateUploadURL(c *gin.Context) {
	if h.s3 == nil {
		response.ServiceUnavailable(c, "media storage not configured")
		return
	}
	event, err := h.eventRepo.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.NotFound(c, "event not found")
		return
	}

	var req UploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if req.FileSize > storage.MaxFileSize(req.Type) {
		response.BadRequest(c, (&SizeExceededError{Limit: storage.MaxFileSize(req.Type)}).Error())
		return
	}
	if !storage.ValidateMediaType(req.ContentType, req.Filename) {
		response.BadRequest(c, ErrInvalidFileType.Error())
		return
	}

	contentType := storage.ContentTypeForFilename(req.Filename)
	if req.ContentType != "" {
		if _, ok := storage.AllowedMediaTypes[strings.ToLower(req.ContentType)]; ok {
			contentType = req.ContentType
		}
	}

	key := storage.MediaKey(event.ID.String(), req.Filename)
	expire := h.s3.PresignExpire()
	url, err := h.s3.PresignUploadURL(c.Request.Context(), key, contentType, expire)
	if err != nil {
		h.logger.Error("presign upload failed", zap.Error(err), zap.String("event_id", event.ID.String()))
		response.Internal(c, "failed to generate upload URL")
		return
	}
	response.OK(c, gin.H{
		"upload_url":   url,
		"storage_path": key,
		"content_type": contentType,
		"expires_in":   int(expire.Seconds()),
	})
}

// ListPublic handles GET /events/:slug/submissions (public display page).
// Only moderated submissions are returned, unless the event's settings opt
// into an unmoderated feed.
func (h *Handler) ListPublic(c *gin.Context) {
	event, err := h.eventRepo.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.NotFound(c, "event not found")
		return
	}
	list, err := h.repo.ListPublic(c.Request.Context(), event.ID, event.Settings.ShowAllSubmissions)
	if err != nil {
		h.logger.Error("list public submissions failed", zap.Error(err), zap.String("event_id", event.ID.String()))
		response.Internal(c, "failed to load submissions")
		return
	}
	response.OK(c, gin.H{"submissions": list})
}

// PublicMediaURL handles GET /events/:slug/submissions/:id/media-url. The
// public page uses it to render approved media.
func (h *Handler) PublicMediaURL(c *gin.Context) {
	event, err := h.eventRepo.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.NotFound(c, "event not found")
		return
	}
	sub, ok := h.submissionByParam(c)
	if !ok {
		return
	}
	if sub.EventID != event.ID || (!sub.Moderated && !event.Settings.ShowAllSubmissions) {
		response.NotFound(c, "submission not found")
		return
	}
	h.writeMediaURL(c, sub)
}

// ListDashboard handles GET /dashboard/submissions?search=q. Returns the full
// list, the sender partition, and the sender names matching the search query.
func (h *Handler) ListDashboard(c *gin.Context) {
	event, ok := h.resolveOrFail(c)
	if !ok {
		return
	}
	list, err := h.repo.ListByEvent(c.Request.Context(), event.ID)
	if err != nil {
		h.logger.Error("list submissions failed", zap.Error(err), zap.String("event_id", event.ID.String()))
		response.Internal(c, "failed to load submissions")
		return
	}
	grouped := GroupBySender(list)
	response.OK(c, gin.H{
		"submissions": list,
		"groups":      grouped,
		"senders":     FilterSenders(grouped, c.Query("search")),
	})
}

// Stats handles GET /dashboard/stats.
func (h *Handler) Stats(c *gin.Context) {
	event, ok := h.resolveOrFail(c)
	if !ok {
		return
	}
	stats, err := h.repo.CountByEvent(c.Request.Context(), event.ID)
	if err != nil {
		response.Internal(c, "failed to load stats")
		return
	}
	response.OK(c, stats)
}

// ToggleModerated handles PATCH /submissions/:id/moderate. Toggling twice
// returns the submission to its original state.
func (h *Handler) ToggleModerated(c *gin.Context) {
	sub, ok := h.ownedSubmission(c)
	if !ok {
		return
	}
	moderated, err := h.repo.ToggleModerated(c.Request.Context(), sub.ID)
	if err != nil {
		h.logger.Error("toggle moderated failed", zap.Error(err), zap.String("submission_id", sub.ID.String()))
		response.Internal(c, "failed to update submission")
		return
	}
	response.OK(c, gin.H{"id": sub.ID, "moderated": moderated})
}

// ToggleFavorite handles PATCH /submissions/:id/favorite.
func (h *Handler) ToggleFavorite(c *gin.Context) {
	sub, ok := h.ownedSubmission(c)
	if !ok {
		return
	}
	favorite, err := h.repo.ToggleFavorite(c.Request.Context(), sub.ID)
	if err != nil {
		h.logger.Error("toggle favorite failed", zap.Error(err), zap.String("submission_id", sub.ID.String()))
		response.Internal(c, "failed to update submission")
		return
	}
	response.OK(c, gin.H{"id": sub.ID, "is_favorite": favorite})
}

// Delete handles DELETE /submissions/:id. The blob goes first, then the row;
// a storage failure falls back to a cleanup job rather than keeping the row.
func (h *Handler) Delete(c *gin.Context) {
	sub, ok := h.ownedSubmission(c)
	if !ok {
		return
	}
	if sub.StoragePath != "" && h.s3 != nil {
		if err := h.s3.DeleteObject(c.Request.Context(), sub.StoragePath); err != nil {
			h.logger.Warn("blob delete failed, enqueueing cleanup", zap.Error(err), zap.String("key", sub.StoragePath))
			_ = h.jobs.EnqueueBlobCleanup(c.Request.Context(), queue.BlobCleanupPayload{StoragePath: sub.StoragePath})
		}
	}
	if err := h.repo.Delete(c.Request.Context(), sub.ID); err != nil {
		h.logger.Error("delete submission failed", zap.Error(err), zap.String("submission_id", sub.ID.String()))
		response.Internal(c, "failed to delete submission")
		return
	}
	response.NoContent(c)
}

// MediaURL handles GET /submissions/:id/media-url (dashboard and slideshow).
func (h *Handler) MediaURL(c *gin.Context) {
	sub, ok := h.ownedSubmission(c)
	if !ok {
		return
	}
	h.writeMediaURL(c, sub)
}

// DownloadURL handles GET /submissions/:id/download-url. The presigned URL
// forces a browser download named {sender}-{type}.{extension-from-mime}.
func (h *Handler) DownloadURL(c *gin.Context) {
	sub, ok := h.ownedSubmission(c)
	if !ok {
		return
	}
	if sub.StoragePath == "" {
		response.BadRequest(c, "submission has no stored media")
		return
	}
	if h.s3 == nil {
		response.ServiceUnavailable(c, "media storage not configured")
		return
	}
	expire := h.s3.PresignExpire()
	url, err := h.s3.PresignDownloadURL(c.Request.Context(), sub.StoragePath, DownloadFilename(sub), expire)
	if err != nil {
		h.logger.Error("presign download failed", zap.Error(err), zap.String("submission_id", sub.ID.String()))
		response.Internal(c, "failed to generate download URL")
		return
	}
	response.OK(c, gin.H{"download_url": url, "filename": DownloadFilename(sub), "expires_in": int(expire.Seconds())})
}

func (h *Handler) writeMediaURL(c *gin.Context, sub *models.Submission) {
	if sub.StoragePath == "" {
		response.BadRequest(c, "submission has no stored media")
		return
	}
	if h.s3 == nil {
		response.ServiceUnavailable(c, "media storage not configured")
		return
	}
	expire := h.s3.PresignExpire()
	url, err := h.s3.PresignMediaURL(c.Request.Context(), sub.StoragePath, expire)
	if err != nil {
		h.logger.Error("presign media failed", zap.Error(err), zap.String("submission_id", sub.ID.String()))
		response.Internal(c, "failed to load media")
		return
	}
	response.OK(c, gin.H{"url": url, "expires_in": int(expire.Seconds())})
}

func (h *Handler) submissionByParam(c *gin.Context) (*models.Submission, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid submission id")
		return nil, false
	}
	sub, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		response.NotFound(c, "submission not found")
		return nil, false
	}
	return sub, true
}

// ownedSubmission loads the :id submission and verifies it belongs to the
// caller's event. Admin accounts bypass the ownership check.
func (h *Handler) ownedSubmission(c *gin.Context) (*models.Submission, bool) {
	sub, ok := h.submissionByParam(c)
	if !ok {
		return nil, false
	}
	if role, _ := c.Get(middleware.ContextUserRole); role == string(models.RoleAdmin) {
		return sub, true
	}
	event, ok := h.resolveOrFail(c)
	if !ok {
		return nil, false
	}
	if sub.EventID != event.ID {
		response.Forbidden(c, "submission belongs to another event")
		return nil, false
	}
	return sub, true
}

func (h *Handler) resolveOrFail(c *gin.Context) (*models.Event, bool) {
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
		return nil, false
	}
	return event, true
}
