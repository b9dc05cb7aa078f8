package common

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"fleethvac/internal/models"
)

type contextKey string

const (
	TenantIDKey   contextKey = "tenant_id"
	ActorKey      contextKey = "actor"
	SuperAdminKey contextKey = "super_admin"
)

// WithIdentity stores the resolved tenant, actor and super-admin flag on ctx
func WithIdentity(ctx context.Context, tenantID string, actor models.Actor, superAdmin bool) context.Context {
	ctx = context.WithValue(ctx, TenantIDKey, tenantID)
	ctx = context.WithValue(ctx, ActorKey, actor)
	return context.WithValue(ctx, SuperAdminKey, superAdmin)
}

// GetTenantIDFromContext extracts the tenant ID from the request context
func GetTenantIDFromContext(ctx context.Context) (string, bool) {
	tenantID, ok := ctx.Value(TenantIDKey).(string)
	return tenantID, ok && tenantID != ""
}

// GetActorFromContext extracts the authenticated actor from the request context
func GetActorFromContext(ctx context.Context) (models.Actor, bool) {
	actor, ok := ctx.Value(ActorKey).(models.Actor)
	return actor, ok
}

// IsSuperAdmin reports whether the request was made by a super-admin
func IsSuperAdmin(ctx context.Context) bool {
	v, _ := ctx.Value(SuperAdminKey).(bool)
	return v
}

// ParseID parses a positive int64 path or body identifier
func ParseID(idStr, fieldName string) (int64, error) {
	idStr = strings.TrimSpace(idStr)
	if idStr == "" {
		return 0, Validation(fieldName, fieldName+" is required")
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return 0, Validation(fieldName, fieldName+" must be a positive integer")
	}
	return id, nil
}

// SafeString safely handles string pointer operations
func SafeString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// ValidatePaginationParams clamps limit and offset
func ValidatePaginationParams(limit, offset int) (int, int, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 1000 {
		limit = 1000
	}
	if offset < 0 {
		offset = 0
	}
	if offset > 1000000 {
		return 0, 0, fmt.Errorf("offset cannot exceed 1,000,000")
	}
	return limit, offset, nil
}

// ValidateDateRange validates date ranges to prevent abuse
func ValidateDateRange(startDate, endDate time.Time) error {
	if endDate.Before(startDate) {
		return fmt.Errorf("end date cannot be before start date")
	}
	if endDate.Sub(startDate) > time.Hour*24*365*10 {
		return fmt.Errorf("date range cannot exceed 10 years")
	}
	return nil
}
