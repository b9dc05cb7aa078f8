package caching

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"fleethvac/internal/models"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const keyPrefix = "fleethvac"

type CacheService interface {
	// Train read models, scoped per tenant. A miss returns nil, nil.
	// Writes carry the generation read before loading from the database and
	// are skipped when an invalidation happened in between.
	GetTrainList(ctx context.Context, tenantID string) ([]*models.TrainSummary, error)
	SetTrainList(ctx context.Context, tenantID string, generation int64, trains []*models.TrainSummary, ttl time.Duration) error
	GetTrainDetail(ctx context.Context, tenantID string, trainID int64) (*models.TrainDetail, error)
	SetTrainDetail(ctx context.Context, tenantID string, generation int64, detail *models.TrainDetail, ttl time.Duration) error
	Generation(ctx context.Context, tenantID string) (int64, error)

	// InvalidateTenantCache bumps the tenant generation and drops its cached entries
	InvalidateTenantCache(ctx context.Context, tenantID string) error

	// Rate limiting
	IsRateLimited(ctx context.Context, key string, limit int, window time.Duration) (bool, error)

	Ping(ctx context.Context) error
	Close() error
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int, logger *zap.Logger) CacheService {
	parsedAddr := strings.TrimPrefix(strings.TrimPrefix(addr, "redis://"), "rediss://")

	client := redis.NewClient(&redis.Options{
		Addr:     parsedAddr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Warn("Redis ping failed on initialization", zap.String("address", parsedAddr), zap.Error(err))
	} else {
		logger.Info("Redis connection established", zap.String("address", parsedAddr))
	}

	return &redisCacheService{client: client}
}

// NewCacheServiceFromClient wraps an existing client
func NewCacheServiceFromClient(client *redis.Client) CacheService {
	return &redisCacheService{client: client}
}

// setIfGeneration writes KEYS[2] only while KEYS[1] still holds ARGV[1]
var setIfGeneration = redis.NewScript(`
local current = redis.call('GET', KEYS[1]) or '0'
if current ~= ARGV[1] then
	return 0
end
if tonumber(ARGV[3]) > 0 then
	redis.call('SET', KEYS[2], ARGV[2], 'PX', ARGV[3])
else
	redis.call('SET', KEYS[2], ARGV[2])
end
return 1
`)

// generationKey lives outside the tenant key space so invalidation never deletes it
func generationKey(tenantID string) string {
	return fmt.Sprintf("%s-generation:%s", keyPrefix, tenantID)
}

func trainListKey(tenantID string) string {
	return fmt.Sprintf("%s:%s:trains", keyPrefix, tenantID)
}

func trainDetailKey(tenantID string, trainID int64) string {
	return fmt.Sprintf("%s:%s:train:%d", keyPrefix, tenantID, trainID)
}

func (r *redisCacheService) GetTrainList(ctx context.Context, tenantID string) ([]*models.TrainSummary, error) {
	var trains []*models.TrainSummary
	found, err := r.getJSON(ctx, trainListKey(tenantID), &trains)
	if err != nil || !found {
		return nil, err
	}
	return trains, nil
}

func (r *redisCacheService) SetTrainList(ctx context.Context, tenantID string, generation int64, trains []*models.TrainSummary, ttl time.Duration) error {
	return r.setJSON(ctx, tenantID, generation, trainListKey(tenantID), trains, ttl)
}

func (r *redisCacheService) GetTrainDetail(ctx context.Context, tenantID string, trainID int64) (*models.TrainDetail, error) {
	var detail models.TrainDetail
	found, err := r.getJSON(ctx, trainDetailKey(tenantID, trainID), &detail)
	if err != nil || !found {
		return nil, err
	}
	return &detail, nil
}

func (r *redisCacheService) SetTrainDetail(ctx context.Context, tenantID string, generation int64, detail *models.TrainDetail, ttl time.Duration) error {
	return r.setJSON(ctx, tenantID, generation, trainDetailKey(tenantID, detail.ID), detail, ttl)
}

func (r *redisCacheService) Generation(ctx context.Context, tenantID string) (int64, error) {
	gen, err := r.client.Get(ctx, generationKey(tenantID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func (r *redisCacheService) getJSON(ctx context.Context, key string, dest any) (bool, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (r *redisCacheService) setJSON(ctx context.Context, tenantID string, generation int64, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	keys := []string{generationKey(tenantID), key}
	return setIfGeneration.Run(ctx, r.client, keys, generation, data, ttl.Milliseconds()).Err()
}

// InvalidateTenantCache uses SCAN so large keyspaces never block the server.
// The generation bump comes first so reads that started earlier cannot repopulate.
func (r *redisCacheService) InvalidateTenantCache(ctx context.Context, tenantID string) error {
	if err := r.client.Incr(ctx, generationKey(tenantID)).Err(); err != nil {
		return err
	}
	pattern := fmt.Sprintf("%s:%s:*", keyPrefix, tenantID)
	iter := r.client.Scan(ctx, 0, pattern, 100).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) > 0 {
		return r.client.Del(ctx, keys...).Err()
	}
	return nil
}

func (r *redisCacheService) IsRateLimited(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	cacheKey := fmt.Sprintf("%s:ratelimit:%s", keyPrefix, key)
	count, err := r.client.Incr(ctx, cacheKey).Result()
	if err != nil {
		return false, err
	}

	// Set expiry on first request
	if count == 1 {
		if err := r.client.Expire(ctx, cacheKey, window).Err(); err != nil {
			return false, err
		}
	}
	return count > int64(limit), nil
}

func (r *redisCacheService) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *redisCacheService) Close() error {
	return r.client.Close()
}
