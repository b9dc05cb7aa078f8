package repositories

import (
	"context"

	"fleethvac/internal/models"
)

// AggregateHistoryRepository appends and reads aggregate_logs and aggregate_replacements
type AggregateHistoryRepository interface {
	WithTx(tx DBTX) AggregateHistoryRepository
	CreateLog(ctx context.Context, log *models.AggregateLog) error
	CreateReplacement(ctx context.Context, replacement *models.AggregateReplacement) error
	ListLogs(ctx context.Context, tenantID string, aggregateID int64) ([]*models.AggregateLog, error)
	ListReplacements(ctx context.Context, tenantID string, aggregateID int64) ([]*models.AggregateReplacement, error)
}

type aggregateHistoryRepo struct {
	db DBTX
}

func NewAggregateHistoryRepo(db DBTX) AggregateHistoryRepository {
	return &aggregateHistoryRepo{db: db}
}

func (r *aggregateHistoryRepo) WithTx(tx DBTX) AggregateHistoryRepository {
	return &aggregateHistoryRepo{db: tx}
}

func (r *aggregateHistoryRepo) CreateLog(ctx context.Context, l *models.AggregateLog) error {
	query := `
		INSERT INTO aggregate_logs (tenant_id, aggregate_id, action, old_wagon_id, new_wagon_id, actor, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id, created_at
	`
	return r.db.QueryRow(ctx, query, l.TenantID, l.AggregateID, l.Action, l.OldWagonID, l.NewWagonID, l.Actor).
		Scan(&l.ID, &l.CreatedAt)
}

func (r *aggregateHistoryRepo) CreateReplacement(ctx context.Context, rep *models.AggregateReplacement) error {
	query := `
		INSERT INTO aggregate_replacements (tenant_id, old_aggregate_id, new_aggregate_id, wagon_id, reason, actor, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id, created_at
	`
	return r.db.QueryRow(ctx, query, rep.TenantID, rep.OldAggregateID, rep.NewAggregateID, rep.WagonID, rep.Reason, rep.Actor).
		Scan(&rep.ID, &rep.CreatedAt)
}

func (r *aggregateHistoryRepo) ListLogs(ctx context.Context, tenantID string, aggregateID int64) ([]*models.AggregateLog, error) {
	query := `
		SELECT id, tenant_id, aggregate_id, action, old_wagon_id, new_wagon_id, actor, created_at
		FROM aggregate_logs
		WHERE tenant_id = $1 AND aggregate_id = $2
		ORDER BY created_at DESC, id DESC
	`
	rows, err := r.db.Query(ctx, query, tenantID, aggregateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := []*models.AggregateLog{}
	for rows.Next() {
		l := &models.AggregateLog{}
		if err := rows.Scan(&l.ID, &l.TenantID, &l.AggregateID, &l.Action, &l.OldWagonID, &l.NewWagonID, &l.Actor, &l.CreatedAt); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

// ListReplacements returns replacements where the aggregate was either side of the exchange
func (r *aggregateHistoryRepo) ListReplacements(ctx context.Context, tenantID string, aggregateID int64) ([]*models.AggregateReplacement, error) {
	query := `
		SELECT id, tenant_id, old_aggregate_id, new_aggregate_id, wagon_id, reason, actor, created_at
		FROM aggregate_replacements
		WHERE tenant_id = $1 AND (old_aggregate_id = $2 OR new_aggregate_id = $2)
		ORDER BY created_at DESC, id DESC
	`
	rows, err := r.db.Query(ctx, query, tenantID, aggregateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	replacements := []*models.AggregateReplacement{}
	for rows.Next() {
		rep := &models.AggregateReplacement{}
		if err := rows.Scan(&rep.ID, &rep.TenantID, &rep.OldAggregateID, &rep.NewAggregateID, &rep.WagonID, &rep.Reason, &rep.Actor, &rep.CreatedAt); err != nil {
			return nil, err
		}
		replacements = append(replacements, rep)
	}
	return replacements, rows.Err()
}
