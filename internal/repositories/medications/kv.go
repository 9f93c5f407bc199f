package medications

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/medialert/internal/common"
	"github.com/dmitrijs2005/medialert/internal/kvstore"
	"github.com/dmitrijs2005/medialert/internal/logging"
	"github.com/dmitrijs2005/medialert/internal/models"
)

const keyPrefix = "medications_"

// StorageKey derives the per-user partition key from the owner's email.
func StorageKey(ownerEmail string) string {
	return keyPrefix + ownerEmail
}

type KVRepository struct {
	store kvstore.Store
	log   logging.Logger
}

func NewKVRepository(store kvstore.Store, log logging.Logger) *KVRepository {
	return &KVRepository{store: store, log: log}
}

func (r *KVRepository) ListByOwner(ctx context.Context, ownerEmail string) ([]models.Medication, error) {
	data, err := r.store.Get(ctx, StorageKey(ownerEmail))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return []models.Medication{}, nil
		}
		return nil, fmt.Errorf("load medications: %w", err)
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode medication list: %w", err)
	}

	meds := make([]models.Medication, 0, len(raw))
	for i, entry := range raw {
		m, err := models.DecodeMedication(entry)
		if err != nil {
			r.log.Warn(ctx, "dropping malformed medication entry",
				"owner", ownerEmail, "index", i, "error", err)
			continue
		}
		meds = append(meds, *m)
	}
	return meds, nil
}

func (r *KVRepository) SaveForOwner(ctx context.Context, ownerEmail string, meds []models.Medication) error {
	if meds == nil {
		meds = []models.Medication{}
	}
	data, err := json.Marshal(meds)
	if err != nil {
		return fmt.Errorf("encode medication list: %w", err)
	}
	if err := r.store.Set(ctx, StorageKey(ownerEmail), data); err != nil {
		return fmt.Errorf("save medications: %w", err)
	}
	return nil
}
