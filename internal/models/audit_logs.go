package models

import (
	"time"

	"github.com/google/uuid"
)

// AuditLog is an immutable record of a state-changing operation
type AuditLog struct {
	ID          uuid.UUID `json:"id" db:"id"`
	TenantID    string    `json:"tenant_id" db:"tenant_id"`
	ActorEmail  string    `json:"actor_email" db:"actor_email"`
	ActorName   string    `json:"actor_name" db:"actor_name"`
	Action      string    `json:"action" db:"action"`
	EntityType  string    `json:"entity_type" db:"entity_type"`
	EntityID    string    `json:"entity_id" db:"entity_id"`
	OldValues   JSONB     `json:"old_values" db:"old_values"`
	NewValues   JSONB     `json:"new_values" db:"new_values"`
	Description string    `json:"description" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// Action constants for audit logs
const (
	ActionCreate    = "CREATE"
	ActionUpdate    = "UPDATE"
	ActionDelete    = "DELETE"
	ActionAssign    = "ASSIGN"
	ActionUnassign  = "UNASSIGN"
	ActionReplace   = "REPLACE"
	ActionSwap      = "SWAP"
	ActionConfigure = "CONFIGURE"
)

// Entity types recorded in audit logs
const (
	EntityTrain         = "train"
	EntityWagon         = "wagon"
	EntityAggregate     = "aggregate"
	EntityConfiguration = "train_configuration"
	EntityTenant        = "tenant"
	EntityTenantMapping = "tenant_mapping"
)

// AuditEntry is the input to the recorder; tenant and actor come from the request
type AuditEntry struct {
	TenantID    string
	Actor       Actor
	Action      string
	EntityType  string
	EntityID    string
	OldValues   JSONB
	NewValues   JSONB
	Description string
}

// AuditLogFilters represents filters for querying audit logs
type AuditLogFilters struct {
	EntityType *string    `json:"entity_type"`
	EntityID   *string    `json:"entity_id"`
	Action     *string    `json:"action"`
	ActorEmail *string    `json:"actor_email"`
	StartDate  *time.Time `json:"start_date"`
	EndDate    *time.Time `json:"end_date"`
	Limit      int        `json:"limit"`
	Offset     int        `json:"offset"`
}

// AuditLogSummary represents summary statistics for audit logs
type AuditLogSummary struct {
	TenantID        string         `json:"tenant_id"`
	TotalLogs       int            `json:"total_logs"`
	EntityBreakdown map[string]int `json:"entity_breakdown"`
	ActionBreakdown map[string]int `json:"action_breakdown"`
	ActorActivity   map[string]int `json:"actor_activity"`
	PeriodStart     time.Time      `json:"period_start"`
	PeriodEnd       time.Time      `json:"period_end"`
}
