package services

import (
	"context"
	"fmt"
	"time"

	"fleethvac/internal/common"
	"fleethvac/internal/models"
	"fleethvac/internal/repositories"

	"github.com/google/uuid"
)

// AuditRecorder appends audit rows through whichever executor it is handed,
// so lifecycle operations write them inside their own transaction.
type AuditRecorder interface {
	Record(ctx context.Context, db repositories.DBTX, entry models.AuditEntry) error
}

type AuditLogsService interface {
	AuditRecorder

	GetAuditLog(ctx context.Context, tenantID string, id uuid.UUID) (*models.AuditLog, error)
	ListAuditLogs(ctx context.Context, tenantID string, filters *models.AuditLogFilters) ([]*models.AuditLog, int, error)
	GetAuditSummary(ctx context.Context, tenantID string, startDate, endDate time.Time) (*models.AuditLogSummary, error)

	// ExportAuditLogs renders the filtered trail as an XLSX workbook
	ExportAuditLogs(ctx context.Context, tenantID string, filters *models.AuditLogFilters) ([]byte, error)
}

type auditLogsService struct {
	auditLogsRepo repositories.AuditLogsRepository
}

func NewAuditLogsService(auditLogsRepo repositories.AuditLogsRepository) AuditLogsService {
	return &auditLogsService{auditLogsRepo: auditLogsRepo}
}

const maxExportRows = 10000

func (s *auditLogsService) Record(ctx context.Context, db repositories.DBTX, entry models.AuditEntry) error {
	if entry.TenantID == "" {
		return fmt.Errorf("audit entry: tenant_id is required")
	}
	if entry.Action == "" || entry.EntityType == "" {
		return fmt.Errorf("audit entry: action and entity_type are required")
	}

	repo := s.auditLogsRepo
	if db != nil {
		repo = repo.WithTx(db)
	}

	auditLog := &models.AuditLog{
		ID:          uuid.New(),
		TenantID:    entry.TenantID,
		ActorEmail:  entry.Actor.Email,
		ActorName:   entry.Actor.Name,
		Action:      entry.Action,
		EntityType:  entry.EntityType,
		EntityID:    entry.EntityID,
		OldValues:   entry.OldValues,
		NewValues:   entry.NewValues,
		Description: entry.Description,
	}
	if err := repo.Create(ctx, auditLog); err != nil {
		return fmt.Errorf("failed to record audit log: %w", err)
	}
	return nil
}

func (s *auditLogsService) GetAuditLog(ctx context.Context, tenantID string, id uuid.UUID) (*models.AuditLog, error) {
	auditLog, err := s.auditLogsRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, common.FromDBError(err, "audit log")
	}
	return auditLog, nil
}

// ListAuditLogs returns one page newest first together with the unpaginated total
func (s *auditLogsService) ListAuditLogs(ctx context.Context, tenantID string, filters *models.AuditLogFilters) ([]*models.AuditLog, int, error) {
	if filters == nil {
		filters = &models.AuditLogFilters{}
	}
	limit, offset, err := common.ValidatePaginationParams(filters.Limit, filters.Offset)
	if err != nil {
		return nil, 0, common.Validation("offset", err.Error())
	}
	filters.Limit, filters.Offset = limit, offset

	if filters.StartDate != nil && filters.EndDate != nil {
		if err := common.ValidateDateRange(*filters.StartDate, *filters.EndDate); err != nil {
			return nil, 0, common.Validation("end_date", err.Error())
		}
	}

	logs, err := s.auditLogsRepo.List(ctx, tenantID, filters)
	if err != nil {
		return nil, 0, common.Internal("failed to list audit logs", err)
	}
	total, err := s.auditLogsRepo.Count(ctx, tenantID, filters)
	if err != nil {
		return nil, 0, common.Internal("failed to count audit logs", err)
	}
	return logs, total, nil
}

func (s *auditLogsService) GetAuditSummary(ctx context.Context, tenantID string, startDate, endDate time.Time) (*models.AuditLogSummary, error) {
	if startDate.After(endDate) {
		return nil, common.Validation("start_date", "start_date cannot be after end_date")
	}
	if endDate.Sub(startDate) > 365*24*time.Hour {
		return nil, common.Validation("end_date", "date range cannot exceed 1 year for summary queries")
	}

	summary, err := s.auditLogsRepo.GetSummary(ctx, tenantID, startDate, endDate)
	if err != nil {
		return nil, common.Internal("failed to summarise audit logs", err)
	}
	return summary, nil
}

func (s *auditLogsService) ExportAuditLogs(ctx context.Context, tenantID string, filters *models.AuditLogFilters) ([]byte, error) {
	if filters == nil {
		filters = &models.AuditLogFilters{}
	}
	export := *filters
	export.Limit = maxExportRows
	export.Offset = 0

	logs, err := s.auditLogsRepo.List(ctx, tenantID, &export)
	if err != nil {
		return nil, common.Internal("failed to list audit logs", err)
	}
	return renderAuditWorkbook(logs)
}
