package services

import (
	"context"
	"time"

	"plastwarehouse/internal/caching"
	"plastwarehouse/internal/logger"
	"plastwarehouse/internal/metrics"
	"plastwarehouse/internal/models"
	"plastwarehouse/internal/repositories"

	"go.uber.org/zap"
)

type CatalogService interface {
	ListMaterials(ctx context.Context) ([]*models.MaterialType, error)
	// WarmCache reloads the catalog from the database into the cache.
	WarmCache(ctx context.Context) error
}

type catalogService struct {
	repo  repositories.CatalogRepository
	cache caching.CacheService
	ttl   time.Duration
}

// NewCatalogService returns a read-through cached catalog. cache may be nil.
func NewCatalogService(repo repositories.CatalogRepository, cache caching.CacheService, ttl time.Duration) CatalogService {
	return &catalogService{repo: repo, cache: cache, ttl: ttl}
}

func (s *catalogService) ListMaterials(ctx context.Context) ([]*models.MaterialType, error) {
	log := logger.FromContext(ctx)

	if s.cache != nil {
		materials, err := s.cache.GetMaterials(ctx)
		switch {
		case err != nil:
			log.Warn("catalog cache read failed", zap.Error(err))
		case materials != nil:
			metrics.CatalogCacheTotal.WithLabelValues("hit").Inc()
			return materials, nil
		}
		metrics.CatalogCacheTotal.WithLabelValues("miss").Inc()
	}

	materials, err := s.repo.ListMaterials(ctx)
	if err != nil {
		return nil, err
	}
	s.store(ctx, materials)
	return materials, nil
}

func (s *catalogService) WarmCache(ctx context.Context) error {
	if s.cache != nil {
		if err := s.cache.InvalidateMaterials(ctx); err != nil {
			logger.FromContext(ctx).Warn("catalog cache invalidation failed", zap.Error(err))
		}
	}

	materials, err := s.repo.ListMaterials(ctx)
	if err != nil {
		return err
	}
	s.store(ctx, materials)
	return nil
}

func (s *catalogService) store(ctx context.Context, materials []*models.MaterialType) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetMaterials(ctx, materials, s.ttl); err != nil {
		logger.FromContext(ctx).Warn("catalog cache write failed", zap.Error(err))
	}
}
