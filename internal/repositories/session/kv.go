package session

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

const storageKey = "active_user"

type KVRepository struct {
	store kvstore.Store
	log   logging.Logger
}

func NewKVRepository(store kvstore.Store, log logging.Logger) *KVRepository {
	return &KVRepository{store: store, log: log}
}

func (r *KVRepository) Get(ctx context.Context) (*models.User, error) {
	data, err := r.store.Get(ctx, storageKey)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load session: %w", err)
	}

	var user models.User
	if err := json.Unmarshal(data, &user); err != nil {
		// Unreadable session data is treated as "not logged in".
		r.log.Warn(ctx, "discarding malformed session record", "error", err)
		return nil, nil
	}
	return &user, nil
}

func (r *KVRepository) Set(ctx context.Context, user models.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := r.store.Set(ctx, storageKey, data); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (r *KVRepository) Clear(ctx context.Context) error {
	if err := r.store.Remove(ctx, storageKey); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
