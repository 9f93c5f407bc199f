// Package medications persists each user's medication list as one JSON array
// under a key derived from the owner's email. Lists are never visible across
// accounts.
package medications

import (
	"context"

	"github.com/dmitrijs2005/medialert/internal/models"
)

type Repository interface {
	// ListByOwner returns the owner's medications in stored order. An
	// absent list is an empty slice. Entries the UI could not render
	// (missing id/name/time, non-string image) are dropped and logged,
	// never surfaced: callers rely on the result being well-formed.
	ListByOwner(ctx context.Context, ownerEmail string) ([]models.Medication, error)

	// SaveForOwner rewrites the owner's whole list.
	SaveForOwner(ctx context.Context, ownerEmail string, meds []models.Medication) error
}
