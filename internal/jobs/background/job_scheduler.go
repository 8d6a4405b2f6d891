package background

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"plastwarehouse/internal/logger"
	"plastwarehouse/internal/models"
	"plastwarehouse/internal/services"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"
)

// Job names.
const (
	JobExportSnapshot = "plastics-export-snapshot"
	JobCatalogWarmup  = "catalog-cache-warmup"
)

// ErrUnknownJob is returned by RunNow for a name that was never registered.
var ErrUnknownJob = errors.New("unknown job")

// jobTimeout bounds a single run of any job.
const jobTimeout = 5 * time.Minute

// Options configures job schedules.
type Options struct {
	ExportCron     string
	WarmupInterval time.Duration
	Location       *time.Location
}

// JobScheduler runs the nightly export snapshot and the catalog cache warmup
type JobScheduler struct {
	scheduler gocron.Scheduler
	exports   services.ExportService
	catalog   services.CatalogService
	log       *zap.Logger
	jobs      map[string]gocron.Job
	mu        sync.RWMutex
}

// NewJobScheduler creates the scheduler and registers every job. An invalid
// cron expression is an error.
func NewJobScheduler(opts Options, exports services.ExportService, catalog services.CatalogService, log *zap.Logger) (*JobScheduler, error) {
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	scheduler, err := gocron.NewScheduler(gocron.WithLocation(loc))
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	js := &JobScheduler{
		scheduler: scheduler,
		exports:   exports,
		catalog:   catalog,
		log:       log.Named("jobs"),
		jobs:      make(map[string]gocron.Job),
	}
	if err := js.registerJobs(opts); err != nil {
		_ = scheduler.Shutdown()
		return nil, err
	}
	return js, nil
}

// Start starts the job scheduler
func (js *JobScheduler) Start() {
	js.log.Info("starting background job scheduler", zap.Int("jobs", len(js.jobs)))
	js.scheduler.Start()
}

// Stop waits for running jobs and stops the scheduler
func (js *JobScheduler) Stop() error {
	js.log.Info("stopping background job scheduler")
	return js.scheduler.Shutdown()
}

func (js *JobScheduler) registerJobs(opts Options) error {
	exportJob, err := js.scheduler.NewJob(
		gocron.CronJob(opts.ExportCron, false),
		gocron.NewTask(js.archiveSnapshot, context.Background()),
		gocron.WithName(JobExportSnapshot),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("failed to create export job %q: %w", opts.ExportCron, err)
	}
	js.jobs[JobExportSnapshot] = exportJob

	if opts.WarmupInterval > 0 {
		warmupJob, err := js.scheduler.NewJob(
			gocron.DurationJob(opts.WarmupInterval),
			gocron.NewTask(js.warmCatalog, context.Background()),
			gocron.WithName(JobCatalogWarmup),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
			gocron.WithStartAt(gocron.WithStartImmediately()),
		)
		if err != nil {
			return fmt.Errorf("failed to create catalog warmup job: %w", err)
		}
		js.jobs[JobCatalogWarmup] = warmupJob
	}
	return nil
}

// archiveSnapshot stores an unfiltered spreadsheet of the newest arrivals.
func (js *JobScheduler) archiveSnapshot(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, jobTimeout)
	defer cancel()
	log := js.log.With(zap.String("job", JobExportSnapshot))
	ctx = logger.WithLogger(ctx, log)

	result, err := js.exports.Archive(ctx, services.TriggerScheduled, models.PlasticSearchFilter{})
	if err != nil {
		log.Error("export snapshot failed", zap.Error(err))
		return err
	}
	log.Info("export snapshot stored", zap.String("object", result.Object), zap.Int("rows", result.Rows))
	return nil
}

// warmCatalog reloads the material catalog into the cache.
func (js *JobScheduler) warmCatalog(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, jobTimeout)
	defer cancel()
	log := js.log.With(zap.String("job", JobCatalogWarmup))

	if err := js.catalog.WarmCache(logger.WithLogger(ctx, log)); err != nil {
		log.Warn("catalog warmup failed", zap.Error(err))
		return err
	}
	log.Debug("catalog cache warmed")
	return nil
}

// RunNow triggers a registered job outside its schedule.
func (js *JobScheduler) RunNow(name string) error {
	js.mu.RLock()
	job, ok := js.jobs[name]
	js.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownJob, name)
	}
	return job.RunNow()
}

// GetJobStatus returns the registered jobs with their next run time
func (js *JobScheduler) GetJobStatus() map[string]any {
	js.mu.RLock()
	defer js.mu.RUnlock()

	jobs := make(map[string]string, len(js.jobs))
	for name, job := range js.jobs {
		next, err := job.NextRun()
		if err != nil || next.IsZero() {
			jobs[name] = ""
			continue
		}
		jobs[name] = next.Format(time.RFC3339)
	}
	return map[string]any{
		"total_jobs": len(js.jobs),
		"jobs":       jobs,
	}
}
