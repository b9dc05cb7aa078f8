package jobs

import (
	"context"
	"time"

	"fleethvac/internal/models"

	"go.uber.org/zap"
)

// TenantLister enumerates tenants to sweep
type TenantLister interface {
	List(ctx context.Context) ([]*models.Tenant, error)
}

// MaintenanceFinder lists aggregates due for service
type MaintenanceFinder interface {
	ListMaintenanceDue(ctx context.Context, tenantID string, dueBy, lastServicedBefore time.Time) ([]*models.Aggregate, error)
}

// FaultFinder lists aggregate numbers with recent error readings
type FaultFinder interface {
	ListFaulted(ctx context.Context, tenantID string, since time.Time) ([]string, error)
}

// AlertPublisher delivers an alert to downstream consumers
type AlertPublisher interface {
	PublishMaintenanceAlert(ctx context.Context, alert models.MaintenanceAlert) error
}

type MaintenanceAlertService struct {
	tenants     TenantLister
	aggregates  MaintenanceFinder
	readings    FaultFinder
	publisher   AlertPublisher
	interval    time.Duration
	faultWindow time.Duration
	logger      *zap.Logger
	now         func() time.Time
}

// NewMaintenanceAlertService builds the sweep. interval is the service interval between maintenances,
// faultWindow how far back error readings are considered. publisher may be nil.
func NewMaintenanceAlertService(tenants TenantLister, aggregates MaintenanceFinder, readings FaultFinder,
	publisher AlertPublisher, interval, faultWindow time.Duration, logger *zap.Logger) *MaintenanceAlertService {
	if interval <= 0 {
		interval = 90 * 24 * time.Hour
	}
	if faultWindow <= 0 {
		faultWindow = 30 * time.Minute
	}
	return &MaintenanceAlertService{
		tenants:     tenants,
		aggregates:  aggregates,
		readings:    readings,
		publisher:   publisher,
		interval:    interval,
		faultWindow: faultWindow,
		logger:      logger,
		now:         time.Now,
	}
}

// CheckTenant returns the alert for one tenant, or nil when nothing needs attention
func (a *MaintenanceAlertService) CheckTenant(ctx context.Context, tenantID string) (*models.MaintenanceAlert, error) {
	now := a.now().UTC()

	due, err := a.aggregates.ListMaintenanceDue(ctx, tenantID, now, now.Add(-a.interval))
	if err != nil {
		return nil, err
	}
	faulted, err := a.readings.ListFaulted(ctx, tenantID, now.Add(-a.faultWindow))
	if err != nil {
		return nil, err
	}
	if len(due) == 0 && len(faulted) == 0 {
		return nil, nil
	}

	seen := make(map[string]struct{}, len(due)+len(faulted))
	numbers := make([]string, 0, len(due)+len(faulted))
	add := func(n string) {
		if _, ok := seen[n]; ok {
			return
		}
		seen[n] = struct{}{}
		numbers = append(numbers, n)
	}
	for _, agg := range due {
		add(agg.AggregateNumber)
	}
	for _, n := range faulted {
		add(n)
	}

	return &models.MaintenanceAlert{
		TenantID:         tenantID,
		OverdueCount:     len(due),
		FaultCount:       len(faulted),
		AggregateNumbers: numbers,
		GeneratedAt:      now,
	}, nil
}

// Sweep checks every tenant. A failing tenant is logged and skipped.
func (a *MaintenanceAlertService) Sweep(ctx context.Context) error {
	a.logger.Info("starting maintenance alert sweep")

	tenants, err := a.tenants.List(ctx)
	if err != nil {
		a.logger.Error("failed to list tenants for maintenance alerts", zap.Error(err))
		return err
	}

	alerted := 0
	for _, tenant := range tenants {
		alert, err := a.CheckTenant(ctx, tenant.ID)
		if err != nil {
			a.logger.Error("maintenance check failed", zap.String("tenant_id", tenant.ID), zap.Error(err))
			continue
		}
		if alert == nil {
			continue
		}
		alerted++

		a.logger.Warn("aggregates need attention",
			zap.String("tenant_id", tenant.ID),
			zap.Int("overdue", alert.OverdueCount),
			zap.Int("faulted", alert.FaultCount),
			zap.Strings("aggregates", alert.AggregateNumbers))

		if a.publisher == nil {
			continue
		}
		if err := a.publisher.PublishMaintenanceAlert(ctx, *alert); err != nil {
			a.logger.Warn("failed to publish maintenance alert", zap.String("tenant_id", tenant.ID), zap.Error(err))
		}
	}

	a.logger.Info("completed maintenance alert sweep",
		zap.Int("tenants", len(tenants)),
		zap.Int("alerted", alerted))
	return nil
}
