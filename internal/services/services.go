// Package services holds the blogging operations: feeds, follows, comments,
// posts and administration of groups and users.
package services

import (
	"fmt"

	"github.com/anonto42/yatube/backend/internal/repositories"
	"github.com/anonto42/yatube/backend/pkg/apperrors"
)

// Validator checks request structs; *validators.CustomValidator satisfies it.
type Validator interface {
	Validate(i interface{}) error
}

// wrapLookup turns a missing record into a NotFoundError and annotates anything else.
func wrapLookup(err error, resource, key string) error {
	if repositories.IsNotFound(err) {
		return apperrors.NewNotFound(resource, key, err)
	}
	return fmt.Errorf("load %s %s: %w", resource, key, err)
}

// wrapWrite reports a write that references a row deleted in the meantime
// as NotFound.
func wrapWrite(err error, action, resource, key string) error {
	if repositories.IsForeignKeyViolation(err) {
		return apperrors.NewNotFound(resource, key, err)
	}
	return fmt.Errorf("%s: %w", action, err)
}
