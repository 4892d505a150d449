package workers

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/MKhiriev/go-microblog/internal/adapter"
	"github.com/MKhiriev/go-microblog/internal/config"
	"github.com/MKhiriev/go-microblog/internal/logger"
	"github.com/MKhiriev/go-microblog/internal/mock"
	"github.com/MKhiriev/go-microblog/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestMailWorker(t *testing.T, queueSize int, maxRetries uint64) (*MailWorker, *mock.MockMailer) {
	t.Helper()
	ctrl := gomock.NewController(t)
	mailer := mock.NewMockMailer(ctrl)

	w := NewMailWorker(mailer, config.Mail{QueueSize: queueSize, MaxRetries: maxRetries}, logger.Nop())
	w.baseDelay = time.Millisecond
	return w, mailer
}

// runAndStop starts the worker and stops it once every queued job is delivered.
func runAndStop(w *MailWorker) {
	ctx, cancel := context.WithCancel(context.Background())
	w.Run(ctx)
	cancel()
	w.Wait()
}

var mailUser = models.User{ID: 7, Name: "Alice", Email: "alice@example.com"}

func TestMailWorker_DeliversQueuedMessages(t *testing.T) {
	w, mailer := newTestMailWorker(t, 4, 3)

	gomock.InOrder(
		mailer.EXPECT().SendActivation(gomock.Any(), mailUser, "act-token").Return(nil),
		mailer.EXPECT().SendPasswordReset(gomock.Any(), mailUser, "reset-token").Return(nil),
	)

	require.NoError(t, w.SendActivation(context.Background(), mailUser, "act-token"))
	require.NoError(t, w.SendPasswordReset(context.Background(), mailUser, "reset-token"))

	runAndStop(w)
}

func TestMailWorker_RetriesRelayOutage(t *testing.T) {
	w, mailer := newTestMailWorker(t, 1, 3)

	gomock.InOrder(
		mailer.EXPECT().SendActivation(gomock.Any(), mailUser, "tok").Return(fmt.Errorf("%w: status 502", adapter.ErrBadGateway)),
		mailer.EXPECT().SendActivation(gomock.Any(), mailUser, "tok").Return(adapter.ErrInternalServerError),
		mailer.EXPECT().SendActivation(gomock.Any(), mailUser, "tok").Return(nil),
	)

	require.NoError(t, w.SendActivation(context.Background(), mailUser, "tok"))
	runAndStop(w)
}

func TestMailWorker_GivesUpAfterMaxRetries(t *testing.T) {
	w, mailer := newTestMailWorker(t, 1, 2)

	// first attempt plus two retries
	mailer.EXPECT().SendPasswordReset(gomock.Any(), mailUser, "tok").Return(adapter.ErrBadGateway).Times(3)

	require.NoError(t, w.SendPasswordReset(context.Background(), mailUser, "tok"))
	runAndStop(w)
}

func TestMailWorker_DoesNotRetryRejection(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{name: "bad request", err: adapter.ErrBadRequest},
		{name: "unauthorized", err: adapter.ErrUnauthorized},
		{name: "forbidden", err: adapter.ErrForbidden},
		{name: "not found", err: adapter.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, mailer := newTestMailWorker(t, 1, 5)
			mailer.EXPECT().SendActivation(gomock.Any(), mailUser, "tok").Return(tt.err).Times(1)

			require.NoError(t, w.SendActivation(context.Background(), mailUser, "tok"))
			runAndStop(w)
		})
	}
}

func TestMailWorker_QueueFull(t *testing.T) {
	w, _ := newTestMailWorker(t, 1, 0)

	require.NoError(t, w.SendActivation(context.Background(), mailUser, "first"))
	err := w.SendActivation(context.Background(), mailUser, "second")

	assert.ErrorIs(t, err, ErrMailQueueFull)
}

func TestMailWorker_DeliveryOutlivesRequestContext(t *testing.T) {
	w, mailer := newTestMailWorker(t, 1, 0)

	mailer.EXPECT().SendActivation(gomock.Any(), mailUser, "tok").
		DoAndReturn(func(ctx context.Context, _ models.User, _ string) error {
			assert.NoError(t, ctx.Err())
			return nil
		})

	reqCtx, cancel := context.WithCancel(context.Background())
	require.NoError(t, w.SendActivation(reqCtx, mailUser, "tok"))
	cancel()

	runAndStop(w)
}

func TestMailWorker_DefaultQueueSize(t *testing.T) {
	w := NewMailWorker(nil, config.Mail{}, logger.Nop())

	assert.Equal(t, config.DefaultMailQueueSize, cap(w.jobs))
}

func TestMailWorker_ImplementsInterfaces(t *testing.T) {
	var _ adapter.Mailer = (*MailWorker)(nil)
	var _ Worker = (*MailWorker)(nil)
}
