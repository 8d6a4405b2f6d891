package handlers

import (
	"errors"
	"net/http"

	"plastwarehouse/internal/common"
	"plastwarehouse/internal/jobs/background"
	"plastwarehouse/internal/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// JobRunner is the part of the background scheduler exposed over HTTP.
type JobRunner interface {
	GetJobStatus() map[string]any
	RunNow(name string) error
}

// JobHandlers lists background jobs and triggers them on demand
type JobHandlers struct {
	runner JobRunner
}

func NewJobHandlers(runner JobRunner) *JobHandlers {
	return &JobHandlers{runner: runner}
}

// ListJobs returns registered jobs with their next run time
// @Summary List background jobs
// @Tags jobs
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/jobs [get]
func (h *JobHandlers) ListJobs(c echo.Context) error {
	return c.JSON(http.StatusOK, h.runner.GetJobStatus())
}

// RunJob queues a job run outside its schedule
// @Summary Run a background job now
// @Tags jobs
// @Produce json
// @Param name path string true "Job name"
// @Success 202 {object} map[string]string
// @Failure 404 {object} common.ErrorResponse
// @Router /api/jobs/{name}/run [post]
func (h *JobHandlers) RunJob(c echo.Context) error {
	name := c.Param("name")
	if err := h.runner.RunNow(name); err != nil {
		if errors.Is(err, background.ErrUnknownJob) {
			return c.JSON(http.StatusNotFound, common.CreateErrorResponse("NOT_FOUND", err.Error(), nil))
		}
		logger.FromContext(c.Request().Context()).Error("job trigger failed", zap.String("job", name), zap.Error(err))
		return common.SendServerError(c, "failed to start job")
	}
	return c.JSON(http.StatusAccepted, map[string]string{
		"job":    name,
		"status": "queued",
	})
}
