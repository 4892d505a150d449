package store

import (
	"context"
	"database/sql/driver"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/go-microblog/internal/config"
	"github.com/MKhiriev/go-microblog/internal/logger"
	"github.com/MKhiriev/go-microblog/models"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// newMockDB returns a postgres-flavoured DB over sqlmock.
func newMockDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	db := newDB(conn, config.DriverPostgres, sq.Dollar, NewPostgresErrorClassifier(), 1, logger.Nop())
	db.clock = func() time.Time { return fixedNow }
	return db, mock
}

// newSQLiteStorages opens a migrated SQLite database in a temp dir.
func newSQLiteStorages(t *testing.T) *Storages {
	t.Helper()

	cfg := config.DB{
		Driver:     config.DriverSQLite,
		DSN:        "file:" + filepath.Join(t.TempDir(), "microblog.db"),
		MaxRetries: 3,
	}
	storages, err := NewStorages(context.Background(), cfg, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = storages.Close() })

	return storages
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

func ptr[T any](v T) *T { return &v }

var userRowColumns = []string{
	"id", "name", "email", "password_digest", "admin", "activated", "activated_at",
	"activation_digest", "activation_sent_at", "remember_digest", "reset_digest",
	"reset_sent_at", "created_at", "updated_at",
}

// nullable turns a nil pointer into SQL NULL the way a driver would.
func nullable[T any](p *T) driver.Value {
	if p == nil {
		return nil
	}
	return *p
}

func userRow(u models.User) *sqlmock.Rows {
	return sqlmock.NewRows(userRowColumns).AddRow(
		u.ID, u.Name, u.Email, u.PasswordDigest, u.Admin, u.Activated, nullable(u.ActivatedAt),
		nullable(u.ActivationDigest), nullable(u.ActivationSentAt), nullable(u.RememberDigest),
		nullable(u.ResetDigest), nullable(u.ResetSentAt), u.CreatedAt, u.UpdatedAt,
	)
}

// seedUser creates an account with a unique email derived from name.
func seedUser(t *testing.T, s *Storages, name string) models.User {
	t.Helper()

	user, err := s.UserRepository.CreateUser(context.Background(), models.User{
		Name:           name,
		Email:          name + "@example.com",
		PasswordDigest: "digest",
	})
	require.NoError(t, err)
	return user
}
