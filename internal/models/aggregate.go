package models

import "time"

// Aggregate statuses
const (
	AggregateStatusOperational = "operational"
	AggregateStatusMaintenance = "maintenance"
	AggregateStatusReserve     = "reserve"
)

// Aggregate unit categories
const (
	AggregateTypeCooling  = "cooling"
	AggregateTypeHeating  = "heating"
	AggregateTypeCombined = "combined"
)

// Aggregate is an HVAC unit. It is either attached to exactly one wagon (IsSpare false)
// or detached with no wagon (IsSpare true), never both.
type Aggregate struct {
	ID                  int64      `json:"id" db:"id"`
	TenantID            string     `json:"tenant_id" db:"tenant_id"`
	AggregateNumber     string     `json:"aggregate_number" db:"aggregate_number"`
	Type                string     `json:"type" db:"type"`
	Status              string     `json:"status" db:"status"`
	CurrentWagonID      *int64     `json:"current_wagon_id" db:"current_wagon_id"`
	IsSpare             bool       `json:"is_spare" db:"is_spare"`
	TemperatureSetpoint *float64   `json:"temperature_setpoint" db:"temperature_setpoint"`
	PressureSetpoint    *float64   `json:"pressure_setpoint" db:"pressure_setpoint"`
	CurrentTemperature  *float64   `json:"current_temperature" db:"current_temperature"`
	CurrentPressure     *float64   `json:"current_pressure" db:"current_pressure"`
	LastReadingAt       *time.Time `json:"last_reading_at" db:"last_reading_at"`
	LastMaintenanceAt   *time.Time `json:"last_maintenance_at" db:"last_maintenance_at"`
	NextMaintenanceAt   *time.Time `json:"next_maintenance_at" db:"next_maintenance_at"`
	CreatedAt           time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at" db:"updated_at"`
}

// Attached reports whether the aggregate is mounted on a wagon
func (a *Aggregate) Attached() bool {
	return a.CurrentWagonID != nil
}

// Consistent reports whether the attachment invariant holds
func (a *Aggregate) Consistent() bool {
	return (a.CurrentWagonID != nil) != a.IsSpare
}

// Snapshot returns the fields recorded in audit before/after values
func (a *Aggregate) Snapshot() JSONB {
	snap := JSONB{
		"id":               a.ID,
		"aggregate_number": a.AggregateNumber,
		"type":             a.Type,
		"status":           a.Status,
		"is_spare":         a.IsSpare,
		"current_wagon_id": nil,
	}
	if a.CurrentWagonID != nil {
		snap["current_wagon_id"] = *a.CurrentWagonID
	}
	return snap
}

// AggregateSummary is the compact form shown on train detail
type AggregateSummary struct {
	ID              int64  `json:"id"`
	AggregateNumber string `json:"aggregate_number"`
	Type            string `json:"type"`
	Status          string `json:"status"`
}

// AggregateFilter narrows aggregate listings
type AggregateFilter struct {
	Status *string
	Type   *string
	Limit  int
	Offset int
}

// AggregateUpdate carries optional aggregate field changes
type AggregateUpdate struct {
	Type                *string
	Status              *string
	TemperatureSetpoint *float64
	PressureSetpoint    *float64
	LastMaintenanceAt   *time.Time
	NextMaintenanceAt   *time.Time
}

// AggregateLog is an append-only lifecycle transition record
type AggregateLog struct {
	ID          int64     `json:"id" db:"id"`
	TenantID    string    `json:"tenant_id" db:"tenant_id"`
	AggregateID int64     `json:"aggregate_id" db:"aggregate_id"`
	Action      string    `json:"action" db:"action"`
	OldWagonID  *int64    `json:"old_wagon_id" db:"old_wagon_id"`
	NewWagonID  *int64    `json:"new_wagon_id" db:"new_wagon_id"`
	Actor       string    `json:"actor" db:"actor"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// Detachment is one aggregate taken off a wagon in bulk
type Detachment struct {
	AggregateID int64
	WagonID     int64
}

// AggregateReplacement records one old-for-new exchange on a wagon
type AggregateReplacement struct {
	ID             int64     `json:"id" db:"id"`
	TenantID       string    `json:"tenant_id" db:"tenant_id"`
	OldAggregateID int64     `json:"old_aggregate_id" db:"old_aggregate_id"`
	NewAggregateID int64     `json:"new_aggregate_id" db:"new_aggregate_id"`
	WagonID        int64     `json:"wagon_id" db:"wagon_id"`
	Reason         string    `json:"reason" db:"reason"`
	Actor          string    `json:"actor" db:"actor"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

// AggregateHistory is the lifecycle trail of one aggregate, newest first
type AggregateHistory struct {
	AggregateID  int64                   `json:"aggregate_id"`
	Logs         []*AggregateLog         `json:"logs"`
	Replacements []*AggregateReplacement `json:"replacements"`
}
