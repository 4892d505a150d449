// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/MKhiriev/go-microblog/internal/adapter"
	"github.com/MKhiriev/go-microblog/internal/config"
	"github.com/MKhiriev/go-microblog/internal/logger"
	"github.com/MKhiriev/go-microblog/models"
	"github.com/sethvargo/go-retry"
)

// mailRetryBaseDelay is the first backoff step of a retried delivery.
const mailRetryBaseDelay = 200 * time.Millisecond

type mailJob struct {
	ctx   context.Context
	kind  string
	user  models.User
	token string
}

// MailWorker is an asynchronous [adapter.Mailer]. Messages are queued and
// delivered in the background through the wrapped mailer, so a slow relay
// never blocks signup or password reset requests.
//
// Relay outages (5xx, network errors) are retried with exponential backoff.
// Rejections (4xx) are logged and dropped.
type MailWorker struct {
	next adapter.Mailer
	jobs chan mailJob

	maxRetries uint64
	baseDelay  time.Duration

	wg     sync.WaitGroup
	logger *logger.Logger
}

func NewMailWorker(next adapter.Mailer, cfg config.Mail, log *logger.Logger) *MailWorker {
	queueSize := cfg.QueueSize
	if queueSize <= 0 {
		queueSize = config.DefaultMailQueueSize
	}

	return &MailWorker{
		next:       next,
		jobs:       make(chan mailJob, queueSize),
		maxRetries: cfg.MaxRetries,
		baseDelay:  mailRetryBaseDelay,
		logger:     log,
	}
}

// SendActivation implements [adapter.Mailer] by queueing the message.
func (w *MailWorker) SendActivation(ctx context.Context, user models.User, token string) error {
	return w.enqueue(ctx, models.MailKindActivation, user, token)
}

// SendPasswordReset implements [adapter.Mailer] by queueing the message.
func (w *MailWorker) SendPasswordReset(ctx context.Context, user models.User, token string) error {
	return w.enqueue(ctx, models.MailKindPasswordReset, user, token)
}

func (w *MailWorker) enqueue(ctx context.Context, kind string, user models.User, token string) error {
	// the request context is cancelled as soon as the response is written
	job := mailJob{ctx: context.WithoutCancel(ctx), kind: kind, user: user, token: token}

	select {
	case w.jobs <- job:
		return nil
	default:
		logger.FromContext(ctx).Warn().Str("func", "*MailWorker.enqueue").
			Int64("user_id", user.ID).Str("kind", kind).Msg("mail queue is full")
		return ErrMailQueueFull
	}
}

// Run starts the delivery loop. After ctx is cancelled the messages still
// queued are delivered before the loop exits; use Wait to block until then.
func (w *MailWorker) Run(ctx context.Context) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.logger.Info().Msg("mail worker started")

		for {
			select {
			case job := <-w.jobs:
				w.deliver(job)
			case <-ctx.Done():
				w.drain()
				w.logger.Info().Msg("mail worker stopped")
				return
			}
		}
	}()
}

// Wait blocks until the delivery loop has exited.
func (w *MailWorker) Wait() {
	w.wg.Wait()
}

func (w *MailWorker) drain() {
	for {
		select {
		case job := <-w.jobs:
			w.deliver(job)
		default:
			return
		}
	}
}

func (w *MailWorker) deliver(job mailJob) {
	log := logger.FromContext(job.ctx)

	backoff := retry.WithMaxRetries(w.maxRetries, retry.NewExponential(w.baseDelay))
	err := retry.Do(job.ctx, backoff, func(ctx context.Context) error {
		err := w.send(ctx, job)
		if err == nil || isPermanentMailError(err) {
			return err
		}
		log.Warn().Err(err).Str("func", "*MailWorker.deliver").Int64("user_id", job.user.ID).
			Str("kind", job.kind).Msg("mail delivery failed, retrying")
		return retry.RetryableError(err)
	})
	if err != nil {
		log.Err(err).Str("func", "*MailWorker.deliver").Int64("user_id", job.user.ID).
			Str("kind", job.kind).Msg("mail was not delivered")
		return
	}

	log.Debug().Int64("user_id", job.user.ID).Str("kind", job.kind).Msg("mail delivered")
}

func (w *MailWorker) send(ctx context.Context, job mailJob) error {
	if job.kind == models.MailKindPasswordReset {
		return w.next.SendPasswordReset(ctx, job.user, job.token)
	}
	return w.next.SendActivation(ctx, job.user, job.token)
}

func isPermanentMailError(err error) bool {
	for _, permanent := range []error{
		adapter.ErrBadRequest,
		adapter.ErrUnauthorized,
		adapter.ErrForbidden,
		adapter.ErrNotFound,
		adapter.ErrInvalidRelayURL,
	} {
		if errors.Is(err, permanent) {
			return true
		}
	}
	return false
}
