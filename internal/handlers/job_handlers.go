package handlers

import (
	"errors"
	"net/http"
	"time"

	"fleethvac/internal/common"
	"fleethvac/internal/jobs/background"

	"github.com/labstack/echo/v4"
)

const minJobInterval = time.Minute

// JobController is the part of the scheduler operators can drive at runtime
type JobController interface {
	JobStatusProvider
	Reschedule(name string, interval time.Duration) error
	RemoveJob(name string) error
}

// JobHandlers exposes background job control to super-admins
type JobHandlers struct {
	jobs JobController
}

func NewJobHandlers(jobs JobController) *JobHandlers {
	return &JobHandlers{jobs: jobs}
}

type RescheduleJobRequest struct {
	Interval string `json:"interval" validate:"required"`
}

// ListJobs godoc
// @Summary Background jobs and their schedule (super-admin)
// @Tags admin
// @Produce json
// @Success 200 {object} background.JobStatus
// @Security BearerAuth
// @Router /admin/jobs [get]
func (h *JobHandlers) ListJobs(c echo.Context) error {
	return c.JSON(http.StatusOK, h.jobs.Status())
}

// RescheduleJob godoc
// @Summary Change a job interval, resuming it when paused (super-admin)
// @Tags admin
// @Accept json
// @Produce json
// @Param name path string true "Job name"
// @Param request body RescheduleJobRequest true "Interval such as 15m"
// @Success 200 {object} background.JobStatus
// @Failure 400 {object} common.ErrorResponse
// @Failure 404 {object} common.ErrorResponse
// @Security BearerAuth
// @Router /admin/jobs/{name} [put]
func (h *JobHandlers) RescheduleJob(c echo.Context) error {
	var req RescheduleJobRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	interval, err := time.ParseDuration(req.Interval)
	if err != nil || interval < minJobInterval {
		return common.Validation("interval", "interval must be a duration of at least 1m")
	}
	if err := h.jobs.Reschedule(c.Param("name"), interval); err != nil {
		return jobError(err)
	}
	return c.JSON(http.StatusOK, h.jobs.Status())
}

// PauseJob godoc
// @Summary Pause a job until it is rescheduled (super-admin)
// @Tags admin
// @Produce json
// @Param name path string true "Job name"
// @Success 200 {object} background.JobStatus
// @Failure 404 {object} common.ErrorResponse
// @Security BearerAuth
// @Router /admin/jobs/{name} [delete]
func (h *JobHandlers) PauseJob(c echo.Context) error {
	if err := h.jobs.RemoveJob(c.Param("name")); err != nil {
		return jobError(err)
	}
	return c.JSON(http.StatusOK, h.jobs.Status())
}

func jobError(err error) error {
	if errors.Is(err, background.ErrUnknownJob) {
		return common.NotFound("job")
	}
	return common.Internal("failed to update job schedule", err)
}
