package repositories

import (
	"context"

	"fleethvac/internal/models"
)

// WagonRepository scopes wagons to a tenant through their parent train
type WagonRepository interface {
	WithTx(tx DBTX) WagonRepository
	CreateForTrain(ctx context.Context, trainID int64, wagonTypes []string) ([]models.Wagon, error)
	GetByID(ctx context.Context, tenantID string, id int64) (*models.Wagon, error)
	ListByTrain(ctx context.Context, tenantID string, trainID int64) ([]models.Wagon, error)
	Update(ctx context.Context, tenantID string, wagon *models.Wagon) error
}

type wagonRepo struct {
	db DBTX
}

func NewWagonRepo(db DBTX) WagonRepository {
	return &wagonRepo{db: db}
}

func (r *wagonRepo) WithTx(tx DBTX) WagonRepository {
	return &wagonRepo{db: tx}
}

const wagonStatusActive = "active"

// CreateForTrain inserts one wagon per type at positions 1..n
func (r *wagonRepo) CreateForTrain(ctx context.Context, trainID int64, wagonTypes []string) ([]models.Wagon, error) {
	query := `
		INSERT INTO wagons (train_id, position, wagon_type, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	wagons := make([]models.Wagon, 0, len(wagonTypes))
	for i, wagonType := range wagonTypes {
		w := models.Wagon{TrainID: trainID, Position: i + 1, WagonType: wagonType, Status: wagonStatusActive}
		if err := r.db.QueryRow(ctx, query, trainID, w.Position, wagonType, w.Status).
			Scan(&w.ID, &w.CreatedAt, &w.UpdatedAt); err != nil {
			return nil, err
		}
		wagons = append(wagons, w)
	}
	return wagons, nil
}

func (r *wagonRepo) GetByID(ctx context.Context, tenantID string, id int64) (*models.Wagon, error) {
	w := &models.Wagon{}
	query := `
		SELECT w.id, w.train_id, w.position, w.wagon_type, w.status, w.created_at, w.updated_at
		FROM wagons w
		JOIN trains t ON t.id = w.train_id
		WHERE t.tenant_id = $1 AND w.id = $2
	`
	err := r.db.QueryRow(ctx, query, tenantID, id).Scan(
		&w.ID, &w.TrainID, &w.Position, &w.WagonType, &w.Status, &w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return w, nil
}

func (r *wagonRepo) ListByTrain(ctx context.Context, tenantID string, trainID int64) ([]models.Wagon, error) {
	query := `
		SELECT w.id, w.train_id, w.position, w.wagon_type, w.status, w.created_at, w.updated_at
		FROM wagons w
		JOIN trains t ON t.id = w.train_id
		WHERE t.tenant_id = $1 AND w.train_id = $2
		ORDER BY w.position
	`
	rows, err := r.db.Query(ctx, query, tenantID, trainID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	wagons := []models.Wagon{}
	for rows.Next() {
		var w models.Wagon
		if err := rows.Scan(&w.ID, &w.TrainID, &w.Position, &w.WagonType, &w.Status, &w.CreatedAt, &w.UpdatedAt); err != nil {
			return nil, err
		}
		wagons = append(wagons, w)
	}
	return wagons, rows.Err()
}

func (r *wagonRepo) Update(ctx context.Context, tenantID string, wagon *models.Wagon) error {
	query := `
		UPDATE wagons w
		SET wagon_type = $3, status = $4, updated_at = NOW()
		FROM trains t
		WHERE t.id = w.train_id AND t.tenant_id = $1 AND w.id = $2
		RETURNING w.updated_at
	`
	return r.db.QueryRow(ctx, query, tenantID, wagon.ID, wagon.WagonType, wagon.Status).Scan(&wagon.UpdatedAt)
}
