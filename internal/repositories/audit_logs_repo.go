package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"fleethvac/internal/models"

	"github.com/google/uuid"
)

type AuditLogsRepository interface {
	// WithTx binds the repository to an open transaction
	WithTx(tx DBTX) AuditLogsRepository

	// Create appends an audit log entry. There is no update or delete.
	Create(ctx context.Context, auditLog *models.AuditLog) error

	// GetByID returns one entry scoped to the tenant
	GetByID(ctx context.Context, tenantID string, id uuid.UUID) (*models.AuditLog, error)

	// List returns entries newest first
	List(ctx context.Context, tenantID string, filters *models.AuditLogFilters) ([]*models.AuditLog, error)

	// Count returns how many entries match the filters, ignoring pagination
	Count(ctx context.Context, tenantID string, filters *models.AuditLogFilters) (int, error)

	// GetSummary returns breakdowns for a period
	GetSummary(ctx context.Context, tenantID string, startDate, endDate time.Time) (*models.AuditLogSummary, error)
}

type auditLogsRepo struct {
	db DBTX
}

func NewAuditLogsRepo(db DBTX) AuditLogsRepository {
	return &auditLogsRepo{db: db}
}

func (r *auditLogsRepo) WithTx(tx DBTX) AuditLogsRepository {
	return &auditLogsRepo{db: tx}
}

const auditLogColumns = `id, tenant_id, actor_email, actor_name, action, entity_type, entity_id, old_values, new_values, description, created_at`

func (r *auditLogsRepo) Create(ctx context.Context, auditLog *models.AuditLog) error {
	if auditLog.ID == uuid.Nil {
		auditLog.ID = uuid.New()
	}

	oldValuesBytes, err := marshalJSONB(auditLog.OldValues)
	if err != nil {
		return fmt.Errorf("failed to marshal old_values: %w", err)
	}
	newValuesBytes, err := marshalJSONB(auditLog.NewValues)
	if err != nil {
		return fmt.Errorf("failed to marshal new_values: %w", err)
	}

	query := `
		INSERT INTO audit_logs (id, tenant_id, actor_email, actor_name, action, entity_type, entity_id, old_values, new_values, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW())
		RETURNING created_at
	`
	return r.db.QueryRow(ctx, query,
		auditLog.ID,
		auditLog.TenantID,
		auditLog.ActorEmail,
		auditLog.ActorName,
		auditLog.Action,
		auditLog.EntityType,
		auditLog.EntityID,
		oldValuesBytes,
		newValuesBytes,
		auditLog.Description,
	).Scan(&auditLog.CreatedAt)
}

func (r *auditLogsRepo) GetByID(ctx context.Context, tenantID string, id uuid.UUID) (*models.AuditLog, error) {
	query := `SELECT ` + auditLogColumns + ` FROM audit_logs WHERE tenant_id = $1 AND id = $2`
	return scanAuditLog(r.db.QueryRow(ctx, query, tenantID, id))
}

func (r *auditLogsRepo) List(ctx context.Context, tenantID string, filters *models.AuditLogFilters) ([]*models.AuditLog, error) {
	if filters == nil {
		filters = &models.AuditLogFilters{}
	}

	where, args := auditLogWhere(tenantID, filters)
	query := `SELECT ` + auditLogColumns + ` FROM audit_logs` + where + ` ORDER BY created_at DESC, id`

	if filters.Limit > 0 {
		args = append(args, filters.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
		if filters.Offset > 0 {
			args = append(args, filters.Offset)
			query += fmt.Sprintf(" OFFSET $%d", len(args))
		}
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	auditLogs := []*models.AuditLog{}
	for rows.Next() {
		auditLog, err := scanAuditLog(rows)
		if err != nil {
			return nil, err
		}
		auditLogs = append(auditLogs, auditLog)
	}
	return auditLogs, rows.Err()
}

func (r *auditLogsRepo) Count(ctx context.Context, tenantID string, filters *models.AuditLogFilters) (int, error) {
	if filters == nil {
		filters = &models.AuditLogFilters{}
	}
	where, args := auditLogWhere(tenantID, filters)

	var total int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM audit_logs`+where, args...).Scan(&total)
	return total, err
}

func auditLogWhere(tenantID string, filters *models.AuditLogFilters) (string, []any) {
	where := " WHERE tenant_id = $1"
	args := []any{tenantID}

	add := func(clause string, value any) {
		args = append(args, value)
		where += fmt.Sprintf(" AND "+clause, len(args))
	}
	if filters.EntityType != nil {
		add("entity_type = $%d", *filters.EntityType)
	}
	if filters.EntityID != nil {
		add("entity_id = $%d", *filters.EntityID)
	}
	if filters.Action != nil {
		add("action = $%d", *filters.Action)
	}
	if filters.ActorEmail != nil {
		add("actor_email = $%d", *filters.ActorEmail)
	}
	if filters.StartDate != nil {
		add("created_at >= $%d", *filters.StartDate)
	}
	if filters.EndDate != nil {
		add("created_at <= $%d", *filters.EndDate)
	}
	return where, args
}

func (r *auditLogsRepo) GetSummary(ctx context.Context, tenantID string, startDate, endDate time.Time) (*models.AuditLogSummary, error) {
	summary := &models.AuditLogSummary{
		TenantID:        tenantID,
		EntityBreakdown: make(map[string]int),
		ActionBreakdown: make(map[string]int),
		ActorActivity:   make(map[string]int),
		PeriodStart:     startDate,
		PeriodEnd:       endDate,
	}

	query := `SELECT COUNT(*) FROM audit_logs WHERE tenant_id = $1 AND created_at BETWEEN $2 AND $3`
	if err := r.db.QueryRow(ctx, query, tenantID, startDate, endDate).Scan(&summary.TotalLogs); err != nil {
		return nil, err
	}

	breakdowns := []struct {
		column string
		target map[string]int
	}{
		{"entity_type", summary.EntityBreakdown},
		{"action", summary.ActionBreakdown},
		{"COALESCE(NULLIF(actor_email, ''), 'system')", summary.ActorActivity},
	}
	for _, b := range breakdowns {
		if err := r.groupCount(ctx, b.column, tenantID, startDate, endDate, b.target); err != nil {
			return nil, err
		}
	}
	return summary, nil
}

func (r *auditLogsRepo) groupCount(ctx context.Context, column, tenantID string, startDate, endDate time.Time, into map[string]int) error {
	query := fmt.Sprintf(`
		SELECT %s, COUNT(*)
		FROM audit_logs
		WHERE tenant_id = $1 AND created_at BETWEEN $2 AND $3
		GROUP BY 1
	`, column)
	rows, err := r.db.Query(ctx, query, tenantID, startDate, endDate)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var key string
		var count int
		if err := rows.Scan(&key, &count); err != nil {
			return err
		}
		into[key] = count
	}
	return rows.Err()
}

func scanAuditLog(row rowScanner) (*models.AuditLog, error) {
	auditLog := &models.AuditLog{}
	var oldValuesBytes, newValuesBytes []byte

	err := row.Scan(
		&auditLog.ID,
		&auditLog.TenantID,
		&auditLog.ActorEmail,
		&auditLog.ActorName,
		&auditLog.Action,
		&auditLog.EntityType,
		&auditLog.EntityID,
		&oldValuesBytes,
		&newValuesBytes,
		&auditLog.Description,
		&auditLog.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(oldValuesBytes) > 0 {
		if err := json.Unmarshal(oldValuesBytes, &auditLog.OldValues); err != nil {
			return nil, fmt.Errorf("failed to unmarshal old_values: %w", err)
		}
	}
	if len(newValuesBytes) > 0 {
		if err := json.Unmarshal(newValuesBytes, &auditLog.NewValues); err != nil {
			return nil, fmt.Errorf("failed to unmarshal new_values: %w", err)
		}
	}
	return auditLog, nil
}
