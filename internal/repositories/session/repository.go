// Package session persists the single active-user record. The stored value
// is the sole source of truth for "who is logged in".
package session

import (
	"context"

	"github.com/dmitrijs2005/medialert/internal/models"
)

type Repository interface {
	// Get returns the active user, or nil when nobody is logged in.
	// Malformed stored data also yields nil; the read never fails on
	// content, only on storage errors.
	Get(ctx context.Context) (*models.User, error)

	// Set overwrites the active user.
	Set(ctx context.Context, user models.User) error

	// Clear logs the user out. Idempotent.
	Clear(ctx context.Context) error
}
