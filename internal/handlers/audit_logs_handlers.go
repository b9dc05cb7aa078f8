package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"fleethvac/internal/common"
	"fleethvac/internal/models"
	"fleethvac/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// AuditLogsHandlers handles audit logs related HTTP requests
type AuditLogsHandlers struct {
	auditLogsService services.AuditLogsService
}

func NewAuditLogsHandlers(auditLogsService services.AuditLogsService) *AuditLogsHandlers {
	return &AuditLogsHandlers{auditLogsService: auditLogsService}
}

// AuditLogPage is one page of the audit trail
type AuditLogPage struct {
	Data   []*models.AuditLog `json:"data"`
	Total  int                `json:"total"`
	Limit  int                `json:"limit"`
	Offset int                `json:"offset"`
}

// ListAuditLogs godoc
// @Summary Tenant audit trail, newest first
// @Tags audit-logs
// @Produce json
// @Param limit query int false "Page size (default 50)"
// @Param offset query int false "Page offset"
// @Param entity_type query string false "Entity type"
// @Param entity_id query string false "Entity ID"
// @Param action query string false "Action"
// @Param actor_email query string false "Actor email"
// @Param start_date query string false "RFC3339 lower bound"
// @Param end_date query string false "RFC3339 upper bound"
// @Success 200 {object} AuditLogPage
// @Security BearerAuth
// @Router /audit-logs [get]
func (h *AuditLogsHandlers) ListAuditLogs(c echo.Context) error {
	tenantID, _, err := identity(c)
	if err != nil {
		return err
	}
	filters, err := parseAuditFilters(c)
	if err != nil {
		return err
	}

	logs, total, err := h.auditLogsService.ListAuditLogs(c.Request().Context(), tenantID, filters)
	if err != nil {
		return err
	}
	if logs == nil {
		logs = []*models.AuditLog{}
	}
	return c.JSON(http.StatusOK, AuditLogPage{Data: logs, Total: total, Limit: filters.Limit, Offset: filters.Offset})
}

// GetAuditLog godoc
// @Summary One audit entry
// @Tags audit-logs
// @Produce json
// @Param id path string true "Audit log ID"
// @Success 200 {object} models.AuditLog
// @Failure 404 {object} common.ErrorResponse
// @Security BearerAuth
// @Router /audit-logs/{id} [get]
func (h *AuditLogsHandlers) GetAuditLog(c echo.Context) error {
	tenantID, _, err := identity(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		return common.Validation("id", "id must be a UUID")
	}

	log, err := h.auditLogsService.GetAuditLog(c.Request().Context(), tenantID, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, log)
}

// GetAuditSummary godoc
// @Summary Counts by entity, action and actor
// @Tags audit-logs
// @Produce json
// @Param start_date query string false "RFC3339, defaults to 30 days ago"
// @Param end_date query string false "RFC3339, defaults to now"
// @Success 200 {object} models.AuditLogSummary
// @Security BearerAuth
// @Router /audit-logs/summary [get]
func (h *AuditLogsHandlers) GetAuditSummary(c echo.Context) error {
	tenantID, _, err := identity(c)
	if err != nil {
		return err
	}

	end := time.Now().UTC()
	start := end.AddDate(0, 0, -30)
	if t, err := parseTimeParam(c, "start_date"); err != nil {
		return err
	} else if t != nil {
		start = *t
	}
	if t, err := parseTimeParam(c, "end_date"); err != nil {
		return err
	} else if t != nil {
		end = *t
	}

	summary, err := h.auditLogsService.GetAuditSummary(c.Request().Context(), tenantID, start, end)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, summary)
}

// ExportAuditLogs godoc
// @Summary Download the filtered audit trail as an XLSX workbook
// @Tags audit-logs
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file
// @Security BearerAuth
// @Router /audit-logs/export [get]
func (h *AuditLogsHandlers) ExportAuditLogs(c echo.Context) error {
	tenantID, _, err := identity(c)
	if err != nil {
		return err
	}
	filters, err := parseAuditFilters(c)
	if err != nil {
		return err
	}

	content, err := h.auditLogsService.ExportAuditLogs(c.Request().Context(), tenantID, filters)
	if err != nil {
		return err
	}

	filename := fmt.Sprintf("audit-logs-%s-%s.xlsx", tenantID, time.Now().UTC().Format("20060102"))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Blob(http.StatusOK, xlsxContentType, content)
}

func parseAuditFilters(c echo.Context) (*models.AuditLogFilters, error) {
	filters := &models.AuditLogFilters{
		EntityType: optionalQuery(c, "entity_type"),
		EntityID:   optionalQuery(c, "entity_id"),
		Action:     optionalQuery(c, "action"),
		ActorEmail: optionalQuery(c, "actor_email"),
	}

	var err error
	if filters.Limit, err = queryInt(c, "limit", 0); err != nil {
		return nil, err
	}
	if filters.Offset, err = queryInt(c, "offset", 0); err != nil {
		return nil, err
	}
	if filters.StartDate, err = parseTimeParam(c, "start_date"); err != nil {
		return nil, err
	}
	if filters.EndDate, err = parseTimeParam(c, "end_date"); err != nil {
		return nil, err
	}
	return filters, nil
}

func parseTimeParam(c echo.Context, name string) (*time.Time, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, common.Validation(name, name+" must be an RFC3339 timestamp")
	}
	t = t.UTC()
	return &t, nil
}
