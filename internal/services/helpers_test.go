package services

import (
	"context"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/mock"
)

func int64Ptr(v int64) *int64       { return &v }
func float64Ptr(v float64) *float64 { return &v }

var aggregateCols = []string{"id", "tenant_id", "aggregate_number", "type", "status", "current_wagon_id", "is_spare",
	"temperature_setpoint", "pressure_setpoint", "current_temperature", "current_pressure",
	"last_reading_at", "last_maintenance_at", "next_maintenance_at", "created_at", "updated_at"}

func aggregateRows(rows ...[]any) *pgxmock.Rows {
	r := pgxmock.NewRows(aggregateCols)
	for _, row := range rows {
		r.AddRow(row...)
	}
	return r
}

// aggregateRow builds one aggregates row; wagon nil means detached
func aggregateRow(now time.Time, id int64, tenant, number string, wagon *int64, status string) []any {
	return []any{id, tenant, number, "cooling", status, wagon, wagon == nil,
		float64Ptr(21.5), nil, nil, nil, nil, nil, nil, now, now}
}

var wagonCols = []string{"id", "train_id", "position", "wagon_type", "status", "created_at", "updated_at"}

// auditInsertArgs matches an audit_logs insert for the given tenant, action, entity and id
func auditInsertArgs(tenant, email, name, action, entityType, entityID string) []any {
	return []any{pgxmock.AnyArg(), tenant, email, name, action, entityType, entityID,
		pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()}
}

type mockCacheInvalidator struct {
	mock.Mock
}

func (m *mockCacheInvalidator) InvalidateTenantCache(ctx context.Context, tenantID string) error {
	args := m.Called(ctx, tenantID)
	return args.Error(0)
}
