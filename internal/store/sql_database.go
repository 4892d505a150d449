// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/go-microblog/internal/logger"
	"github.com/MKhiriev/go-microblog/migrations"
	"github.com/sethvargo/go-retry"
)

// retryBaseDelay is the first backoff step of a retried transaction.
const retryBaseDelay = 50 * time.Millisecond

// DBTX is the subset of database/sql used by the repositories.
// Both *sql.DB and *sql.Tx satisfy this interface.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// DB is a database handle bound to one SQL dialect.
type DB struct {
	*sql.DB
	dialect            string
	builder            sq.StatementBuilderType
	errorClassificator ErrorClassificator
	logger             *logger.Logger
	maxRetries         uint64
	clock              func() time.Time
}

func newDB(conn *sql.DB, dialect string, placeholder sq.PlaceholderFormat, classifier ErrorClassificator, maxRetries uint64, log *logger.Logger) *DB {
	return &DB{
		DB:                 conn,
		dialect:            dialect,
		builder:            sq.StatementBuilder.PlaceholderFormat(placeholder),
		errorClassificator: classifier,
		logger:             log,
		maxRetries:         maxRetries,
		clock:              time.Now,
	}
}

// Dialect returns the SQL dialect name ("postgres" or "sqlite").
func (db *DB) Dialect() string {
	return db.dialect
}

// Migrate applies the embedded schema migrations of the dialect.
func (db *DB) Migrate(ctx context.Context) error {
	return migrations.Migrate(ctx, db.DB, db.dialect)
}

// now returns the current time in UTC truncated to microseconds, the
// precision every supported database keeps.
func (db *DB) now() time.Time {
	return db.clock().UTC().Truncate(time.Microsecond)
}

// WithTx runs fn inside a transaction and commits on success or rolls back
// on error or panic. Panics are rethrown. When the failure is classified as
// retryable the whole unit is retried with exponential backoff, up to the
// configured number of attempts.
//
// Typical use:
//
//	err := db.WithTx(ctx, func(ctx context.Context, tx DBTX) error {
//	    _, err := tx.ExecContext(ctx, "UPDATE ...")
//	    return err
//	})
func (db *DB) WithTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error {
	log := logger.FromContext(ctx)

	backoff := retry.WithMaxRetries(db.maxRetries, retry.NewExponential(retryBaseDelay))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := withTx(ctx, db.DB, nil, fn)
		if err != nil && db.errorClassificator != nil && db.errorClassificator.Classify(err) == Retryable {
			log.Warn().Err(err).Str("func", "*DB.WithTx").Msg("retryable storage error, retrying transaction")
			return retry.RetryableError(err)
		}
		return err
	})
}

func withTx(ctx context.Context, db *sql.DB, opts *sql.TxOptions, fn func(ctx context.Context, tx DBTX) error) (err error) {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		if err = tx.Commit(); err != nil {
			err = fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
		}
	}()

	err = fn(ctx, tx)
	return err
}

// translate maps constraint violations to domain sentinels and wraps
// everything else with fallback.
func (db *DB) translate(err error, fallback error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrUserNotFound) || errors.Is(err, ErrEmailAlreadyExists) || errors.Is(err, ErrDigestMismatch) {
		return err
	}
	if db.errorClassificator != nil {
		switch {
		case db.errorClassificator.IsUniqueViolation(err):
			return fmt.Errorf("%w: %w", ErrEmailAlreadyExists, err)
		case db.errorClassificator.IsForeignKeyViolation(err):
			return fmt.Errorf("%w: %w", ErrUserNotFound, err)
		}
	}
	return fmt.Errorf("%w: %w", fallback, err)
}
