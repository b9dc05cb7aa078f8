package repositories

import (
	"context"

	"fleethvac/internal/models"
)

type TrainRepository interface {
	WithTx(tx DBTX) TrainRepository
	Create(ctx context.Context, train *models.Train) error
	GetByID(ctx context.Context, tenantID string, id int64) (*models.Train, error)
	List(ctx context.Context, tenantID string) ([]*models.TrainSummary, error)
	Update(ctx context.Context, train *models.Train) error
	Delete(ctx context.Context, tenantID string, id int64) error
}

type trainRepo struct {
	db DBTX
}

func NewTrainRepo(db DBTX) TrainRepository {
	return &trainRepo{db: db}
}

func (r *trainRepo) WithTx(tx DBTX) TrainRepository {
	return &trainRepo{db: tx}
}

const trainColumns = `id, tenant_id, train_number, name, operator, status, created_at, updated_at`

func (r *trainRepo) Create(ctx context.Context, train *models.Train) error {
	if train.Status == "" {
		train.Status = models.TrainStatusActive
	}
	query := `
		INSERT INTO trains (tenant_id, train_number, name, operator, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRow(ctx, query, train.TenantID, train.TrainNumber, train.Name, train.Operator, train.Status).
		Scan(&train.ID, &train.CreatedAt, &train.UpdatedAt)
}

func (r *trainRepo) GetByID(ctx context.Context, tenantID string, id int64) (*models.Train, error) {
	train := &models.Train{}
	query := `SELECT ` + trainColumns + ` FROM trains WHERE tenant_id = $1 AND id = $2`
	err := r.db.QueryRow(ctx, query, tenantID, id).Scan(
		&train.ID, &train.TenantID, &train.TrainNumber, &train.Name, &train.Operator, &train.Status,
		&train.CreatedAt, &train.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return train, nil
}

func (r *trainRepo) List(ctx context.Context, tenantID string) ([]*models.TrainSummary, error) {
	query := `
		SELECT t.id, t.tenant_id, t.train_number, t.name, t.operator, t.status, t.created_at, t.updated_at,
			(SELECT COUNT(*) FROM wagons w WHERE w.train_id = t.id) AS wagon_count,
			(SELECT COUNT(*) FROM aggregates a JOIN wagons w ON w.id = a.current_wagon_id
				WHERE w.train_id = t.id AND a.tenant_id = t.tenant_id) AS aggregate_count
		FROM trains t
		WHERE t.tenant_id = $1
		ORDER BY t.train_number
	`
	rows, err := r.db.Query(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	trains := []*models.TrainSummary{}
	for rows.Next() {
		t := &models.TrainSummary{}
		if err := rows.Scan(
			&t.ID, &t.TenantID, &t.TrainNumber, &t.Name, &t.Operator, &t.Status, &t.CreatedAt, &t.UpdatedAt,
			&t.WagonCount, &t.AggregateCount,
		); err != nil {
			return nil, err
		}
		trains = append(trains, t)
	}
	return trains, rows.Err()
}

func (r *trainRepo) Update(ctx context.Context, train *models.Train) error {
	query := `
		UPDATE trains
		SET name = $3, operator = $4, status = $5, updated_at = NOW()
		WHERE tenant_id = $1 AND id = $2
		RETURNING updated_at
	`
	return r.db.QueryRow(ctx, query, train.TenantID, train.ID, train.Name, train.Operator, train.Status).
		Scan(&train.UpdatedAt)
}

// Delete removes the train; wagons cascade
func (r *trainRepo) Delete(ctx context.Context, tenantID string, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM trains WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errNoRowsAffected
	}
	return nil
}
