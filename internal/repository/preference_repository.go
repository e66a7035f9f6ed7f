package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	customError "github.com/segyhp/zakat-engine/pkg/errors"
)

type preferenceRepository struct {
	redis *redis.Client
}

func NewPreferenceRepository(redis *redis.Client) PreferenceRepository {
	return &preferenceRepository{redis: redis}
}

func activeTabKey(deviceID string) string {
	return fmt.Sprintf("device:%s:active_tab", deviceID)
}

func (r *preferenceRepository) SetActiveTab(ctx context.Context, deviceID, tab string) error {
	// No TTL: the preference survives until overwritten, like local storage.
	if err := r.redis.Set(ctx, activeTabKey(deviceID), tab, 0).Err(); err != nil {
		return customError.WrapCacheError(err)
	}
	return nil
}

func (r *preferenceRepository) GetActiveTab(ctx context.Context, deviceID string) (string, error) {
	tab, err := r.redis.Get(ctx, activeTabKey(deviceID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", customError.ErrPreferenceNotFound
		}
		return "", customError.WrapCacheError(err)
	}
	return tab, nil
}
