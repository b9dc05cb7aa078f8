package repositories

import (
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v3"
)

func int64Ptr(v int64) *int64       { return &v }
func stringPtr(v string) *string    { return &v }
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
