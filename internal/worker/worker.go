// Package worker runs background guestbook jobs: notification emails and
// orphaned blob cleanup.
package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/vowbook/backend/internal/events"
	"github.com/vowbook/backend/internal/notify"
	"github.com/vowbook/backend/pkg/queue"
	"github.com/vowbook/backend/pkg/storage"
)

// Processor consumes guestbook jobs from the queue.
type Processor struct {
	eventRepo  *events.Repository
	notifyRepo *notify.Repository
	mailer     *notify.Mailer
	s3         *storage.S3
	queue      *queue.Queue
	logger     *zap.Logger
}

// NewProcessor creates a job processor. mailer and s3 may be nil; jobs
// requiring a missing dependency fail and retry until the DLQ takes them.
func NewProcessor(eventRepo *events.Repository, notifyRepo *notify.Repository, mailer *notify.Mailer, s3 *storage.S3, q *queue.Queue, logger *zap.Logger) *Processor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Processor{eventRepo: eventRepo, notifyRepo: notifyRepo, mailer: mailer, s3: s3, queue: q, logger: logger}
}

// Process executes one job.
func (p *Processor) Process(ctx context.Context, job *queue.Job) error {
	switch job.Type {
	case queue.JobTypeNotifyEmail:
		return p.processNotifyEmail(ctx, job)
	case queue.JobTypeBlobCleanup:
		return p.processBlobCleanup(ctx, job)
	default:
		return fmt.Errorf("unknown job type: %s", job.Type)
	}
}

func (p *Processor) processNotifyEmail(ctx context.Context, job *queue.Job) error {
	if p.mailer == nil {
		return fmt.Errorf("mailer not configured")
	}
	var payload queue.NotifyEmailPayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	event, err := p.eventRepo.GetByID(ctx, payload.EventID)
	if err != nil {
		return fmt.Errorf("event not found: %s", payload.EventID)
	}
	recipients, err := p.notifyRepo.RecipientsForEvent(ctx, payload.EventID)
	if err != nil {
		return fmt.Errorf("lookup recipients: %w", err)
	}
	if len(recipients) == 0 {
		p.logger.Warn("no notification recipients", zap.String("event_id", payload.EventID.String()))
		return nil
	}

	subject := notify.Subject(payload.SenderName, payload.Type)
	var lastErr error
	for _, to := range recipients {
		logID, err := p.notifyRepo.CreatePending(ctx, payload.EventID, payload.SubmissionID, to, subject)
		if err != nil {
			p.logger.Error("create notification log failed", zap.Error(err))
		}
		if err := p.mailer.SendNewSubmission(to, event.Title, payload.SenderName, payload.Type); err != nil {
			lastErr = err
			_ = p.notifyRepo.MarkFailed(ctx, logID, err.Error())
			continue
		}
		_ = p.notifyRepo.MarkSent(ctx, logID)
	}
	if lastErr != nil {
		return fmt.Errorf("send notification: %w", lastErr)
	}
	p.logger.Info("notification sent", zap.String("submission_id", payload.SubmissionID.String()), zap.Int("recipients", len(recipients)))
	return nil
}

func (p *Processor) processBlobCleanup(ctx context.Context, job *queue.Job) error {
	if p.s3 == nil {
		return fmt.Errorf("s3 not configured")
	}
	var payload queue.BlobCleanupPayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}
	if err := p.s3.DeleteObject(ctx, payload.StoragePath); err != nil {
		return fmt.Errorf("delete blob: %w", err)
	}
	p.logger.Info("orphaned blob removed", zap.String("key", payload.StoragePath))
	return nil
}

// Run starts the worker loop: dequeue, process, retry on error.
func (p *Processor) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			p.logger.Info("worker stopping")
			return
		default:
		}

		job, err := p.queue.Dequeue(ctx)
		if err != nil {
			p.logger.Warn("dequeue error", zap.Error(err))
			time.Sleep(queue.RetryBackoff)
			continue
		}
		if job == nil {
			continue
		}

		p.logger.Debug("processing job", zap.String("job_id", job.ID), zap.String("type", string(job.Type)))
		if err := p.Process(ctx, job); err != nil {
			p.logger.Error("job failed", zap.String("job_id", job.ID), zap.Error(err))
			if reErr := p.queue.Retry(ctx, job); reErr != nil {
				p.logger.Error("retry enqueue failed", zap.Error(reErr))
			}
			time.Sleep(queue.RetryBackoff)
			continue
		}
	}
}
