// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators provides input validation for account and post data.
//
// Validators return ValidationErrors, an ordered field to message list, so
// that callers can report every broken rule at once.
//
// Usage patterns:
//  1. Inject Validator implementations into services.
//  2. Call Validate with context, value, and optional field names to
//     restrict validation to those fields.
package validators

import "context"

//go:generate mockgen -source=interfaces.go -destination=../mock/validator_mock.go -package=mock

// Validator defines a generic validation interface for arbitrary input values.
type Validator interface {

	// Validate validates the provided input and optionally
	// restricts validation to specific named fields.
	Validate(context.Context, any, ...string) error
}
