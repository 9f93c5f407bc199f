// Package users persists the directory of registered accounts as one JSON
// array under a fixed key.
package users

import (
	"context"

	"github.com/dmitrijs2005/medialert/internal/models"
)

type Repository interface {
	// All returns every registered account. An absent directory is an
	// empty slice, not an error.
	All(ctx context.Context) ([]models.User, error)

	// Save rewrites the whole directory.
	Save(ctx context.Context, users []models.User) error
}
