package users

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/medialert/internal/common"
	"github.com/dmitrijs2005/medialert/internal/kvstore"
	"github.com/dmitrijs2005/medialert/internal/models"
)

const storageKey = "users"

type KVRepository struct {
	store kvstore.Store
}

func NewKVRepository(store kvstore.Store) *KVRepository {
	return &KVRepository{store: store}
}

func (r *KVRepository) All(ctx context.Context) ([]models.User, error) {
	data, err := r.store.Get(ctx, storageKey)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return []models.User{}, nil
		}
		return nil, fmt.Errorf("load user directory: %w", err)
	}

	var users []models.User
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("decode user directory: %w", err)
	}
	return users, nil
}

func (r *KVRepository) Save(ctx context.Context, users []models.User) error {
	data, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("encode user directory: %w", err)
	}
	if err := r.store.Set(ctx, storageKey, data); err != nil {
		return fmt.Errorf("save user directory: %w", err)
	}
	return nil
}
