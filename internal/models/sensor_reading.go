package models

import "time"

// SensorReading is an immutable measurement taken from an aggregate
type SensorReading struct {
	ID          int64     `json:"id" db:"id"`
	TenantID    string    `json:"tenant_id" db:"tenant_id"`
	AggregateID int64     `json:"aggregate_id" db:"aggregate_id"`
	RecordedAt  time.Time `json:"recorded_at" db:"recorded_at"`
	Temperature *float64  `json:"temperature" db:"temperature"`
	Pressure    *float64  `json:"pressure" db:"pressure"`
	Humidity    *float64  `json:"humidity" db:"humidity"`
	PowerKW     *float64  `json:"power_kw" db:"power_kw"`
	ErrorCode   *string   `json:"error_code" db:"error_code"`
}

// MaintenanceAlert summarises aggregates needing attention for one tenant
type MaintenanceAlert struct {
	TenantID         string    `json:"tenant_id"`
	OverdueCount     int       `json:"overdue_count"`
	FaultCount       int       `json:"fault_count"`
	AggregateNumbers []string  `json:"aggregate_numbers"`
	GeneratedAt      time.Time `json:"generated_at"`
}
