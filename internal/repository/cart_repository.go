package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"horizon_backend/internal/model"
	"horizon_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const cartKeyPrefix = "horizon_cart:"

// CartRepository persists per-user cart lines in Redis. A missing or
// corrupt value degrades to an empty cart rather than an error, matching
// how the storefront treats unreadable saved state.
type CartRepository struct {
	RDB *redis.Client
}

func NewCartRepository(rdb *redis.Client) *CartRepository {
	return &CartRepository{RDB: rdb}
}

func (r *CartRepository) key(userID string) string {
	return fmt.Sprintf("%s%s", cartKeyPrefix, userID)
}

func (r *CartRepository) Load(ctx context.Context, userID string) ([]model.CartLine, error) {
	data, err := r.RDB.Get(ctx, r.key(userID)).Bytes()
	if err == redis.Nil {
		return []model.CartLine{}, nil
	}
	if err != nil {
		return nil, err
	}

	var lines []model.CartLine
	if err := json.Unmarshal(data, &lines); err != nil {
		logger.Log.Warn("discarding corrupt cart payload",
			zap.String("userId", userID), zap.Error(err))
		return []model.CartLine{}, nil
	}
	return lines, nil
}

func (r *CartRepository) Save(ctx context.Context, userID string, lines []model.CartLine) error {
	data, err := json.Marshal(lines)
	if err != nil {
		return err
	}
	return r.RDB.Set(ctx, r.key(userID), data, 0).Err()
}

func (r *CartRepository) Clear(ctx context.Context, userID string) error {
	return r.RDB.Del(ctx, r.key(userID)).Err()
}
