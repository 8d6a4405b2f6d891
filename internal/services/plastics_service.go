package services

import (
	"context"
	"fmt"
	"time"

	"plastwarehouse/internal/logger"
	"plastwarehouse/internal/metrics"
	"plastwarehouse/internal/models"
	"plastwarehouse/internal/normalize"
	"plastwarehouse/internal/query"
	"plastwarehouse/internal/repositories"

	"go.uber.org/zap"
)

// Surfaces label where a listing was requested from.
const (
	SurfaceAPI    = "api"
	SurfaceHTML   = "html"
	SurfaceCSV    = "csv"
	SurfacePDF    = "pdf"
	SurfaceBot    = "bot"
	SurfaceExport = "export"
)

type PlasticsService interface {
	// Search compiles the filter, fetches at most repositories.FetchLimit rows
	// and normalizes them in fetch order.
	Search(ctx context.Context, surface string, filter models.PlasticSearchFilter) ([]models.Plastic, error)
	// Add stores a new arrival. A zero ArrivalAt is set to the current time.
	Add(ctx context.Context, plastic *models.NewPlastic) (int64, error)
}

type plasticsService struct {
	repo       repositories.PlasticsRepository
	normalizer normalize.Normalizer
	now        func() time.Time
}

func NewPlasticsService(repo repositories.PlasticsRepository, normalizer normalize.Normalizer) PlasticsService {
	return &plasticsService{
		repo:       repo,
		normalizer: normalizer,
		now:        time.Now,
	}
}

func (s *plasticsService) Search(ctx context.Context, surface string, filter models.PlasticSearchFilter) ([]models.Plastic, error) {
	compiled := query.Compile(filter)

	start := time.Now()
	rows, err := s.repo.Fetch(ctx, compiled)
	metrics.FetchDuration.WithLabelValues(surface, fetchStatus(err)).Observe(time.Since(start).Seconds())
	if err != nil {
		logger.FromContext(ctx).Error("fetch plastics failed",
			zap.String("surface", surface),
			zap.Int("predicates", len(compiled.Predicates)),
			zap.Error(err),
		)
		return nil, err
	}
	metrics.FetchRows.WithLabelValues(surface).Observe(float64(len(rows)))

	return s.normalizer.Records(rows), nil
}

func fetchStatus(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func (s *plasticsService) Add(ctx context.Context, plastic *models.NewPlastic) (int64, error) {
	if plastic.ArrivalAt.IsZero() {
		plastic.ArrivalAt = s.now()
	}

	id, err := s.repo.Insert(ctx, plastic)
	if err != nil {
		return 0, fmt.Errorf("failed to add plastic %q: %w", plastic.Article, err)
	}

	logger.FromContext(ctx).Info("plastic added", zap.Int64("id", id), zap.String("article", plastic.Article))
	return id, nil
}
