package repositories

import (
	"context"
	"time"

	"fleethvac/internal/models"
)

type SensorReadingRepository interface {
	WithTx(tx DBTX) SensorReadingRepository
	Create(ctx context.Context, reading *models.SensorReading) error
	ListByAggregate(ctx context.Context, tenantID string, aggregateID int64, limit int) ([]*models.SensorReading, error)

	// ListFaulted returns the aggregate numbers whose readings since the given time carry an error code
	ListFaulted(ctx context.Context, tenantID string, since time.Time) ([]string, error)
}

type sensorReadingRepo struct {
	db DBTX
}

func NewSensorReadingRepo(db DBTX) SensorReadingRepository {
	return &sensorReadingRepo{db: db}
}

func (r *sensorReadingRepo) WithTx(tx DBTX) SensorReadingRepository {
	return &sensorReadingRepo{db: tx}
}

func (r *sensorReadingRepo) Create(ctx context.Context, s *models.SensorReading) error {
	query := `
		INSERT INTO sensor_readings (tenant_id, aggregate_id, recorded_at, temperature, pressure, humidity, power_kw, error_code)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	return r.db.QueryRow(ctx, query, s.TenantID, s.AggregateID, s.RecordedAt, s.Temperature, s.Pressure, s.Humidity, s.PowerKW, s.ErrorCode).
		Scan(&s.ID)
}

func (r *sensorReadingRepo) ListByAggregate(ctx context.Context, tenantID string, aggregateID int64, limit int) ([]*models.SensorReading, error) {
	query := `
		SELECT id, tenant_id, aggregate_id, recorded_at, temperature, pressure, humidity, power_kw, error_code
		FROM sensor_readings
		WHERE tenant_id = $1 AND aggregate_id = $2
		ORDER BY recorded_at DESC, id DESC
		LIMIT $3
	`
	rows, err := r.db.Query(ctx, query, tenantID, aggregateID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	readings := []*models.SensorReading{}
	for rows.Next() {
		s := &models.SensorReading{}
		if err := rows.Scan(&s.ID, &s.TenantID, &s.AggregateID, &s.RecordedAt, &s.Temperature, &s.Pressure, &s.Humidity, &s.PowerKW, &s.ErrorCode); err != nil {
			return nil, err
		}
		readings = append(readings, s)
	}
	return readings, rows.Err()
}

func (r *sensorReadingRepo) ListFaulted(ctx context.Context, tenantID string, since time.Time) ([]string, error) {
	query := `
		SELECT DISTINCT a.aggregate_number
		FROM sensor_readings s
		JOIN aggregates a ON a.id = s.aggregate_id
		WHERE s.tenant_id = $1 AND s.recorded_at >= $2 AND s.error_code IS NOT NULL AND s.error_code <> ''
		ORDER BY a.aggregate_number
	`
	rows, err := r.db.Query(ctx, query, tenantID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var numbers []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		numbers = append(numbers, n)
	}
	return numbers, rows.Err()
}
