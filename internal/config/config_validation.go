// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Supported values of [DB.Driver].
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Defaults applied by validate when a source leaves the field zero.
const (
	DefaultResetTokenTTL   = 2 * time.Hour
	DefaultTokenDuration   = time.Hour
	DefaultTokenIssuer     = "go-microblog"
	DefaultFeedPageSize    = 30
	DefaultMaxOpenConns    = 10
	DefaultMaxRetries      = 3
	DefaultRequestTimeout  = 30 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
	DefaultMailTimeout     = 5 * time.Second
	DefaultMailQueueSize   = 64
	DefaultMailMaxRetries  = 3
)

// validate fills defaults and checks that the final merged
// [StructuredConfig] satisfies all invariants before it is used at startup.
func (cfg *StructuredConfig) validate() error {
	cfg.applyDefaults()

	switch cfg.Storage.DB.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("%w: unknown driver %q", ErrInvalidStorageConfigs, cfg.Storage.DB.Driver)
	}
	if cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: empty DSN", ErrInvalidStorageConfigs)
	}

	if cfg.App.TokenDigestKey == "" || cfg.App.TokenSignKey == "" {
		return fmt.Errorf("%w: token keys are required", ErrInvalidAppConfigs)
	}
	if cfg.App.PasswordCost < bcrypt.MinCost || cfg.App.PasswordCost > bcrypt.MaxCost {
		return fmt.Errorf("%w: password cost %d out of range", ErrInvalidAppConfigs, cfg.App.PasswordCost)
	}

	if cfg.Server.HTTPAddress == "" {
		return ErrInvalidServerConfigs
	}

	return nil
}

func (cfg *StructuredConfig) applyDefaults() {
	if cfg.Storage.DB.Driver == "" {
		cfg.Storage.DB.Driver = DriverPostgres
	}
	if cfg.Storage.DB.MaxOpenConns == 0 {
		cfg.Storage.DB.MaxOpenConns = DefaultMaxOpenConns
	}
	if cfg.Storage.DB.MaxRetries == 0 {
		cfg.Storage.DB.MaxRetries = DefaultMaxRetries
	}

	if cfg.App.PasswordCost == 0 {
		cfg.App.PasswordCost = bcrypt.DefaultCost
	}
	if cfg.App.ResetTokenTTL == 0 {
		cfg.App.ResetTokenTTL = DefaultResetTokenTTL
	}
	if cfg.App.TokenDuration == 0 {
		cfg.App.TokenDuration = DefaultTokenDuration
	}
	if cfg.App.TokenIssuer == "" {
		cfg.App.TokenIssuer = DefaultTokenIssuer
	}
	if cfg.App.FeedPageSize == 0 {
		cfg.App.FeedPageSize = DefaultFeedPageSize
	}

	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultShutdownTimeout
	}

	if cfg.Adapter.Mail.RequestTimeout == 0 {
		cfg.Adapter.Mail.RequestTimeout = DefaultMailTimeout
	}
	if cfg.Adapter.Mail.QueueSize == 0 {
		cfg.Adapter.Mail.QueueSize = DefaultMailQueueSize
	}
	if cfg.Adapter.Mail.MaxRetries == 0 {
		cfg.Adapter.Mail.MaxRetries = DefaultMailMaxRetries
	}
}
