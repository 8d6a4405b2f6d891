package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"plastwarehouse/internal/logger"
	"plastwarehouse/internal/metrics"
	"plastwarehouse/internal/models"
	"plastwarehouse/internal/render"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ExportURLExpiry is the lifetime of presigned download links.
const ExportURLExpiry = 24 * time.Hour

// Export triggers.
const (
	TriggerManual    = "manual"
	TriggerScheduled = "scheduled"
)

type ExportService interface {
	// Archive renders the filtered listing as a spreadsheet, stores it in the
	// export bucket and returns a presigned download link.
	Archive(ctx context.Context, trigger string, filter models.PlasticSearchFilter) (*models.ExportResult, error)
}

type exportService struct {
	plastics PlasticsService
	storage  MinioService
	bucket   string
	now      func() time.Time
}

func NewExportService(plastics PlasticsService, storage MinioService, bucket string) ExportService {
	return &exportService{
		plastics: plastics,
		storage:  storage,
		bucket:   bucket,
		now:      time.Now,
	}
}

func (s *exportService) Archive(ctx context.Context, trigger string, filter models.PlasticSearchFilter) (result *models.ExportResult, err error) {
	defer func() {
		status := "ok"
		if err != nil {
			status = "error"
		}
		metrics.ExportsTotal.WithLabelValues(trigger, status).Inc()
	}()

	records, err := s.plastics.Search(ctx, SurfaceExport, filter)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := render.WriteSpreadsheet(&buf, records); err != nil {
		return nil, err
	}

	created := s.now().UTC()
	object := fmt.Sprintf("plastics/%s/%s.csv", created.Format("2006/01/02"), uuid.NewString())
	size := int64(buf.Len())
	if err := s.storage.UploadObject(ctx, s.bucket, object, &buf, size, render.SpreadsheetContentType); err != nil {
		return nil, fmt.Errorf("failed to upload export: %w", err)
	}

	url, err := s.storage.GetPresignedURL(ctx, s.bucket, object, ExportURLExpiry)
	if err != nil {
		return nil, fmt.Errorf("failed to presign export: %w", err)
	}

	logger.FromContext(ctx).Info("export archived",
		zap.String("trigger", trigger),
		zap.String("object", object),
		zap.Int("rows", len(records)),
	)
	return &models.ExportResult{Object: object, URL: url, Rows: len(records), CreatedAt: created}, nil
}
