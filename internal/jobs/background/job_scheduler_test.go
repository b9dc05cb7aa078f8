package background

import (
	"context"
	"testing"
	"time"

	"fleethvac/internal/config"
	"fleethvac/internal/jobs"
	"fleethvac/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type emptyTenants struct{}

func (emptyTenants) List(context.Context) ([]*models.Tenant, error) { return nil, nil }

type noAggregates struct{}

func (noAggregates) ListMaintenanceDue(context.Context, string, time.Time, time.Time) ([]*models.Aggregate, error) {
	return nil, nil
}

func (noAggregates) ListFaulted(context.Context, string, time.Time) ([]string, error) {
	return nil, nil
}

func newAlerts() *jobs.MaintenanceAlertService {
	return jobs.NewMaintenanceAlertService(emptyTenants{}, noAggregates{}, noAggregates{}, nil, 0, 0, zap.NewNop())
}

func TestNewJobSchedulerRegistersMaintenanceAlerts(t *testing.T) {
	js, err := NewJobScheduler(newAlerts(), config.JobsConfig{AlertSweepInterval: time.Minute}, zap.NewNop())
	require.NoError(t, err)

	status := js.Status()
	assert.False(t, status.Running)
	assert.Equal(t, 1, status.TotalJobs)
	require.Len(t, status.Jobs, 1)
	assert.Equal(t, "maintenance-alerts", status.Jobs[0].Name)
}

func TestJobSchedulerWithoutAlerts(t *testing.T) {
	js, err := NewJobScheduler(nil, config.JobsConfig{}, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 0, js.Status().TotalJobs)
}

func TestJobSchedulerAddAndRemoveJob(t *testing.T) {
	js, err := NewJobScheduler(newAlerts(), config.JobsConfig{}, zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, js.AddJob("noop", time.Hour, func() {}))
	require.NoError(t, js.AddJob("noop", 2*time.Hour, func() {}))
	assert.Equal(t, 2, js.Status().TotalJobs)

	require.NoError(t, js.RemoveJob("noop"))
	assert.ErrorIs(t, js.RemoveJob("missing"), ErrUnknownJob)

	status := js.Status()
	assert.Equal(t, 1, status.TotalJobs)
	require.Len(t, status.Jobs, 2)
	assert.Equal(t, "maintenance-alerts", status.Jobs[0].Name)
	assert.False(t, status.Jobs[0].Paused)
	assert.Equal(t, "noop", status.Jobs[1].Name)
	assert.True(t, status.Jobs[1].Paused)
}

func TestJobSchedulerPauseAndResumeSweep(t *testing.T) {
	js, err := NewJobScheduler(newAlerts(), config.JobsConfig{AlertSweepInterval: time.Hour}, zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, js.RemoveJob("maintenance-alerts"))
	require.NoError(t, js.RemoveJob("maintenance-alerts"))
	assert.Equal(t, 0, js.Status().TotalJobs)

	require.NoError(t, js.Reschedule("maintenance-alerts", 5*time.Minute))
	status := js.Status()
	assert.Equal(t, 1, status.TotalJobs)
	require.Len(t, status.Jobs, 1)
	assert.False(t, status.Jobs[0].Paused)

	assert.ErrorIs(t, js.Reschedule("missing", time.Minute), ErrUnknownJob)
	assert.Error(t, js.Reschedule("maintenance-alerts", 0))
}

func TestJobSchedulerStartStop(t *testing.T) {
	js, err := NewJobScheduler(newAlerts(), config.JobsConfig{AlertSweepInterval: time.Hour}, zap.NewNop())
	require.NoError(t, err)

	js.Start()
	status := js.Status()
	assert.True(t, status.Running)
	require.Len(t, status.Jobs, 1)

	require.NoError(t, js.Stop())
	assert.False(t, js.Status().Running)
}
