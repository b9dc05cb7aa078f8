package repositories

import (
	"context"
	"fmt"
	"time"

	"fleethvac/internal/models"
)

type AggregateRepository interface {
	WithTx(tx DBTX) AggregateRepository
	Create(ctx context.Context, aggregate *models.Aggregate) error
	GetByID(ctx context.Context, tenantID string, id int64) (*models.Aggregate, error)

	// LockByIDs reads the named aggregates with FOR UPDATE in id order. Must run inside a transaction.
	// Missing ids are absent from the result map.
	LockByIDs(ctx context.Context, tenantID string, ids ...int64) (map[int64]*models.Aggregate, error)

	List(ctx context.Context, tenantID string, filter models.AggregateFilter) ([]*models.Aggregate, error)
	ListSpare(ctx context.Context, tenantID string) ([]*models.Aggregate, error)
	ListByTrain(ctx context.Context, tenantID string, trainID int64) ([]*models.Aggregate, error)

	// ListMaintenanceDue returns aggregates scheduled before dueBy, or last serviced before lastServicedBefore
	ListMaintenanceDue(ctx context.Context, tenantID string, dueBy, lastServicedBefore time.Time) ([]*models.Aggregate, error)

	Update(ctx context.Context, aggregate *models.Aggregate) error

	// SetAttachment writes wagon, spare flag and status together
	SetAttachment(ctx context.Context, tenantID string, id int64, wagonID *int64, isSpare bool, status string) error

	// UpdateLiveReading sets the current values; it returns a not-found error when no row matches
	UpdateLiveReading(ctx context.Context, tenantID string, id int64, temperature, pressure *float64, at time.Time) error

	// DetachByTrain moves every aggregate mounted on the train to the spare pool
	DetachByTrain(ctx context.Context, tenantID string, trainID int64) ([]models.Detachment, error)
}

type aggregateRepo struct {
	db DBTX
}

func NewAggregateRepo(db DBTX) AggregateRepository {
	return &aggregateRepo{db: db}
}

func (r *aggregateRepo) WithTx(tx DBTX) AggregateRepository {
	return &aggregateRepo{db: tx}
}

const aggregateColumns = `id, tenant_id, aggregate_number, type, status, current_wagon_id, is_spare,
	temperature_setpoint, pressure_setpoint, current_temperature, current_pressure,
	last_reading_at, last_maintenance_at, next_maintenance_at, created_at, updated_at`

func (r *aggregateRepo) Create(ctx context.Context, a *models.Aggregate) error {
	query := `
		INSERT INTO aggregates (tenant_id, aggregate_number, type, status, current_wagon_id, is_spare,
			temperature_setpoint, pressure_setpoint, last_maintenance_at, next_maintenance_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRow(ctx, query,
		a.TenantID, a.AggregateNumber, a.Type, a.Status, a.CurrentWagonID, a.IsSpare,
		a.TemperatureSetpoint, a.PressureSetpoint, a.LastMaintenanceAt, a.NextMaintenanceAt,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
}

func (r *aggregateRepo) GetByID(ctx context.Context, tenantID string, id int64) (*models.Aggregate, error) {
	query := `SELECT ` + aggregateColumns + ` FROM aggregates WHERE tenant_id = $1 AND id = $2`
	return scanAggregate(r.db.QueryRow(ctx, query, tenantID, id))
}

func (r *aggregateRepo) LockByIDs(ctx context.Context, tenantID string, ids ...int64) (map[int64]*models.Aggregate, error) {
	query := `SELECT ` + aggregateColumns + ` FROM aggregates WHERE tenant_id = $1 AND id = ANY($2) ORDER BY id FOR UPDATE`
	list, err := r.queryAggregates(ctx, query, tenantID, ids)
	if err != nil {
		return nil, err
	}
	locked := make(map[int64]*models.Aggregate, len(list))
	for _, a := range list {
		locked[a.ID] = a
	}
	return locked, nil
}

func (r *aggregateRepo) List(ctx context.Context, tenantID string, filter models.AggregateFilter) ([]*models.Aggregate, error) {
	query := `SELECT ` + aggregateColumns + ` FROM aggregates WHERE tenant_id = $1`
	args := []any{tenantID}

	if filter.Status != nil {
		args = append(args, *filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.Type != nil {
		args = append(args, *filter.Type)
		query += fmt.Sprintf(" AND type = $%d", len(args))
	}
	query += " ORDER BY aggregate_number"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
		if filter.Offset > 0 {
			args = append(args, filter.Offset)
			query += fmt.Sprintf(" OFFSET $%d", len(args))
		}
	}
	return r.queryAggregates(ctx, query, args...)
}

func (r *aggregateRepo) ListSpare(ctx context.Context, tenantID string) ([]*models.Aggregate, error) {
	query := `SELECT ` + aggregateColumns + ` FROM aggregates WHERE tenant_id = $1 AND current_wagon_id IS NULL ORDER BY aggregate_number`
	return r.queryAggregates(ctx, query, tenantID)
}

func (r *aggregateRepo) ListByTrain(ctx context.Context, tenantID string, trainID int64) ([]*models.Aggregate, error) {
	query := `
		SELECT ` + prefixed("a", aggregateColumns) + `
		FROM aggregates a
		JOIN wagons w ON w.id = a.current_wagon_id
		WHERE a.tenant_id = $1 AND w.train_id = $2
		ORDER BY w.position, a.aggregate_number
	`
	return r.queryAggregates(ctx, query, tenantID, trainID)
}

func (r *aggregateRepo) ListMaintenanceDue(ctx context.Context, tenantID string, dueBy, lastServicedBefore time.Time) ([]*models.Aggregate, error) {
	query := `
		SELECT ` + aggregateColumns + `
		FROM aggregates
		WHERE tenant_id = $1
			AND (next_maintenance_at <= $2 OR (next_maintenance_at IS NULL AND last_maintenance_at <= $3))
		ORDER BY next_maintenance_at NULLS LAST, aggregate_number
	`
	return r.queryAggregates(ctx, query, tenantID, dueBy, lastServicedBefore)
}

func (r *aggregateRepo) Update(ctx context.Context, a *models.Aggregate) error {
	query := `
		UPDATE aggregates
		SET type = $3, status = $4, temperature_setpoint = $5, pressure_setpoint = $6,
			last_maintenance_at = $7, next_maintenance_at = $8, updated_at = NOW()
		WHERE tenant_id = $1 AND id = $2
		RETURNING updated_at
	`
	return r.db.QueryRow(ctx, query, a.TenantID, a.ID, a.Type, a.Status, a.TemperatureSetpoint, a.PressureSetpoint,
		a.LastMaintenanceAt, a.NextMaintenanceAt).Scan(&a.UpdatedAt)
}

func (r *aggregateRepo) SetAttachment(ctx context.Context, tenantID string, id int64, wagonID *int64, isSpare bool, status string) error {
	query := `
		UPDATE aggregates
		SET current_wagon_id = $3, is_spare = $4, status = $5, updated_at = NOW()
		WHERE tenant_id = $1 AND id = $2
	`
	tag, err := r.db.Exec(ctx, query, tenantID, id, wagonID, isSpare, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errNoRowsAffected
	}
	return nil
}

// UpdateLiveReading moves the live values forward; a reading older than the
// last one only confirms the aggregate exists
func (r *aggregateRepo) UpdateLiveReading(ctx context.Context, tenantID string, id int64, temperature, pressure *float64, at time.Time) error {
	query := `
		UPDATE aggregates
		SET current_temperature = CASE WHEN last_reading_at IS NULL OR last_reading_at <= $5
				THEN COALESCE($3, current_temperature) ELSE current_temperature END,
			current_pressure = CASE WHEN last_reading_at IS NULL OR last_reading_at <= $5
				THEN COALESCE($4, current_pressure) ELSE current_pressure END,
			last_reading_at = GREATEST(last_reading_at, $5), updated_at = NOW()
		WHERE tenant_id = $1 AND id = $2
		RETURNING id
	`
	var updated int64
	return r.db.QueryRow(ctx, query, tenantID, id, temperature, pressure, at).Scan(&updated)
}

func (r *aggregateRepo) DetachByTrain(ctx context.Context, tenantID string, trainID int64) ([]models.Detachment, error) {
	query := `
		UPDATE aggregates a
		SET current_wagon_id = NULL, is_spare = TRUE,
			status = CASE WHEN a.status = 'maintenance' THEN 'maintenance' ELSE 'reserve' END,
			updated_at = NOW()
		FROM wagons w
		WHERE w.id = a.current_wagon_id AND a.tenant_id = $1 AND w.train_id = $2
		RETURNING a.id, w.id
	`
	rows, err := r.db.Query(ctx, query, tenantID, trainID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var detached []models.Detachment
	for rows.Next() {
		var d models.Detachment
		if err := rows.Scan(&d.AggregateID, &d.WagonID); err != nil {
			return nil, err
		}
		detached = append(detached, d)
	}
	return detached, rows.Err()
}

func (r *aggregateRepo) queryAggregates(ctx context.Context, query string, args ...any) ([]*models.Aggregate, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	aggregates := []*models.Aggregate{}
	for rows.Next() {
		a, err := scanAggregate(rows)
		if err != nil {
			return nil, err
		}
		aggregates = append(aggregates, a)
	}
	return aggregates, rows.Err()
}

func scanAggregate(row rowScanner) (*models.Aggregate, error) {
	a := &models.Aggregate{}
	err := row.Scan(
		&a.ID,
		&a.TenantID,
		&a.AggregateNumber,
		&a.Type,
		&a.Status,
		&a.CurrentWagonID,
		&a.IsSpare,
		&a.TemperatureSetpoint,
		&a.PressureSetpoint,
		&a.CurrentTemperature,
		&a.CurrentPressure,
		&a.LastReadingAt,
		&a.LastMaintenanceAt,
		&a.NextMaintenanceAt,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return a, nil
}
