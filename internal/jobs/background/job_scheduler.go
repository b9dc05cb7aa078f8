package background

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"fleethvac/internal/config"
	"fleethvac/internal/jobs"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"
)

const maintenanceAlertsJob = "maintenance-alerts"

// ErrUnknownJob is returned for a name that was never registered
var ErrUnknownJob = errors.New("unknown job")

type task struct {
	fn     any
	params []any
}

// JobScheduler runs the periodic fleet jobs
type JobScheduler struct {
	scheduler gocron.Scheduler
	alerts    *jobs.MaintenanceAlertService
	logger    *zap.Logger
	jobs      map[string]gocron.Job
	tasks     map[string]task
	running   bool
	mu        sync.RWMutex
}

// JobStatus is the scheduler view exposed on the detailed health endpoint
type JobStatus struct {
	Running   bool        `json:"running"`
	TotalJobs int         `json:"total_jobs"`
	Jobs      []JobDetail `json:"jobs"`
}

type JobDetail struct {
	Name    string     `json:"name"`
	Paused  bool       `json:"paused,omitempty"`
	LastRun *time.Time `json:"last_run,omitempty"`
	NextRun *time.Time `json:"next_run,omitempty"`
}

// NewJobScheduler creates the scheduler and registers the maintenance alert sweep
func NewJobScheduler(alerts *jobs.MaintenanceAlertService, cfg config.JobsConfig, logger *zap.Logger) (*JobScheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	js := &JobScheduler{
		scheduler: scheduler,
		alerts:    alerts,
		logger:    logger,
		jobs:      make(map[string]gocron.Job),
		tasks:     make(map[string]task),
	}

	if alerts != nil {
		interval := cfg.AlertSweepInterval
		if interval <= 0 {
			interval = 30 * time.Minute
		}
		if err := js.AddJob(maintenanceAlertsJob, interval, js.alerts.Sweep, context.Background()); err != nil {
			return nil, fmt.Errorf("failed to create %s job: %w", maintenanceAlertsJob, err)
		}
	}

	logger.Info("registered background jobs", zap.Int("count", len(js.jobs)))
	return js, nil
}

func (js *JobScheduler) Start() {
	js.mu.Lock()
	defer js.mu.Unlock()
	js.logger.Info("starting background job scheduler")
	js.scheduler.Start()
	js.running = true
}

func (js *JobScheduler) Stop() error {
	js.mu.Lock()
	defer js.mu.Unlock()
	js.logger.Info("stopping background job scheduler")
	js.running = false
	return js.scheduler.Shutdown()
}

// AddJob adds a named job; an existing job with the same name is replaced
func (js *JobScheduler) AddJob(name string, interval time.Duration, taskFn any, params ...any) error {
	js.mu.Lock()
	defer js.mu.Unlock()
	return js.schedule(name, interval, task{fn: taskFn, params: params})
}

// Reschedule changes the interval of a registered job, resuming it if paused
func (js *JobScheduler) Reschedule(name string, interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("interval must be positive, got %s", interval)
	}
	js.mu.Lock()
	defer js.mu.Unlock()

	t, ok := js.tasks[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownJob, name)
	}
	return js.schedule(name, interval, t)
}

// RemoveJob stops a job; it stays registered and can be resumed with Reschedule
func (js *JobScheduler) RemoveJob(name string) error {
	js.mu.Lock()
	defer js.mu.Unlock()

	if _, ok := js.tasks[name]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownJob, name)
	}
	job, exists := js.jobs[name]
	if !exists {
		return nil
	}
	delete(js.jobs, name)
	if err := js.scheduler.RemoveJob(job.ID()); err != nil {
		return err
	}
	js.logger.Info("paused job", zap.String("name", name))
	return nil
}

// schedule must be called with mu held
func (js *JobScheduler) schedule(name string, interval time.Duration, t task) error {
	if existing, ok := js.jobs[name]; ok {
		if err := js.scheduler.RemoveJob(existing.ID()); err != nil {
			return err
		}
		delete(js.jobs, name)
	}

	job, err := js.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(t.fn, t.params...),
		gocron.WithName(name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return err
	}

	js.jobs[name] = job
	js.tasks[name] = t
	js.logger.Info("scheduled job", zap.String("name", name), zap.Duration("interval", interval))
	return nil
}

func (js *JobScheduler) Status() JobStatus {
	js.mu.RLock()
	defer js.mu.RUnlock()

	status := JobStatus{
		Running:   js.running,
		TotalJobs: len(js.jobs),
		Jobs:      make([]JobDetail, 0, len(js.jobs)),
	}
	for name, job := range js.jobs {
		detail := JobDetail{Name: name}
		if last, err := job.LastRun(); err == nil && !last.IsZero() {
			detail.LastRun = &last
		}
		if next, err := job.NextRun(); err == nil && !next.IsZero() {
			detail.NextRun = &next
		}
		status.Jobs = append(status.Jobs, detail)
	}
	for name := range js.tasks {
		if _, scheduled := js.jobs[name]; !scheduled {
			status.Jobs = append(status.Jobs, JobDetail{Name: name, Paused: true})
		}
	}
	sort.Slice(status.Jobs, func(i, j int) bool { return status.Jobs[i].Name < status.Jobs[j].Name })
	return status
}
