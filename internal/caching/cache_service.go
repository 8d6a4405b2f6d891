package caching

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"plastwarehouse/internal/models"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const materialsKey = "plastwarehouse:catalog:materials"

type CacheService interface {
	// GetMaterials returns nil, nil on a cache miss.
	GetMaterials(ctx context.Context) ([]*models.MaterialType, error)
	SetMaterials(ctx context.Context, materials []*models.MaterialType, ttl time.Duration) error
	InvalidateMaterials(ctx context.Context) error
	Ping(ctx context.Context) error
}

type redisCacheService struct {
	client redis.UniversalClient
}

// NewRedisCacheService connects to addr, which may carry a redis:// or rediss:// scheme.
// A failed ping is logged; the cache degrades to misses until Redis is reachable.
func NewRedisCacheService(addr, password string, db int, log *zap.Logger) CacheService {
	parsedAddr := strings.TrimPrefix(strings.TrimPrefix(addr, "redis://"), "rediss://")

	client := redis.NewClient(&redis.Options{
		Addr:     parsedAddr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Warn("redis ping failed on initialization", zap.String("addr", parsedAddr), zap.Error(err))
	} else {
		log.Debug("redis connection established", zap.String("addr", parsedAddr))
	}

	return NewCacheService(client)
}

// NewCacheService wraps an existing client.
func NewCacheService(client redis.UniversalClient) CacheService {
	return &redisCacheService{client: client}
}

func (r *redisCacheService) GetMaterials(ctx context.Context) ([]*models.MaterialType, error) {
	data, err := r.client.Get(ctx, materialsKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var materials []*models.MaterialType
	if err := json.Unmarshal(data, &materials); err != nil {
		return nil, err
	}
	return materials, nil
}

func (r *redisCacheService) SetMaterials(ctx context.Context, materials []*models.MaterialType, ttl time.Duration) error {
	data, err := json.Marshal(materials)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, materialsKey, data, ttl).Err()
}

func (r *redisCacheService) InvalidateMaterials(ctx context.Context) error {
	return r.client.Del(ctx, materialsKey).Err()
}

func (r *redisCacheService) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
