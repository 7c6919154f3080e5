package org

import (
	"context"
	"fmt"

	"givelink/pkg/platform/sentinel"
)

// Field names a uniqueness constraint on the directory.
type Field string

const (
	FieldEmail     Field = "email"
	FieldEIN       Field = "ein"
	FieldShortCode Field = "short_code"
)

// DuplicateKeyError reports which unique field a create collided on. It wraps
// sentinel.ErrConflict so callers can match either the class or the detail.
type DuplicateKeyError struct {
	Field Field
}

func (e DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate %s", e.Field)
}

func (e DuplicateKeyError) Unwrap() error {
	return sentinel.ErrConflict
}

// Directory owns persistence of organization records. Create must be atomic
// with respect to the email, EIN, and short-code uniqueness constraints: when
// two creations race on the same value, exactly one succeeds and the other
// receives a DuplicateKeyError naming the collided field. The finders return
// sentinel.ErrNotFound for absent records; FindByShortCode is a pure read.
type Directory interface {
	FindByEmail(ctx context.Context, email string) (Organization, error)
	FindByEIN(ctx context.Context, ein string) (Organization, error)
	FindByShortCode(ctx context.Context, code string) (Organization, error)
	Create(ctx context.Context, o Organization) (Organization, error)
}
