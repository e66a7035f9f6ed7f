package rates

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/segyhp/zakat-engine/internal/domain"
	customError "github.com/segyhp/zakat-engine/pkg/errors"
)

// cacheTTL bounds how stale a warmed rate may get before it disappears.
const cacheTTL = 24 * time.Hour

// Cache stores the latest fetched per-gram rate per basis and currency so
// clients can read a recent figure without a provider round trip.
type Cache struct {
	redis *redis.Client
}

func NewCache(redis *redis.Client) *Cache {
	return &Cache{redis: redis}
}

func rateKey(basis domain.NisabBasis, currency string) string {
	return fmt.Sprintf("metal_rate:%s:%s", basis, currency)
}

// Store overwrites the cached rate for the basis and currency.
func (c *Cache) Store(ctx context.Context, rate *domain.MetalRate) error {
	payload, err := json.Marshal(rate)
	if err != nil {
		return customError.WrapCacheError(err)
	}

	if err := c.redis.Set(ctx, rateKey(rate.Basis, rate.Currency), payload, cacheTTL).Err(); err != nil {
		return customError.WrapCacheError(err)
	}
	return nil
}

// Latest returns the most recently stored rate, or ErrRateNotCached.
func (c *Cache) Latest(ctx context.Context, basis domain.NisabBasis, currency string) (*domain.MetalRate, error) {
	payload, err := c.redis.Get(ctx, rateKey(basis, currency)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, customError.WrapRateNotCached(string(basis), currency)
		}
		return nil, customError.WrapCacheError(err)
	}

	var rate domain.MetalRate
	if err := json.Unmarshal(payload, &rate); err != nil {
		return nil, customError.WrapCacheError(err)
	}

	return &rate, nil
}
