package services

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"

	"fleethvac/internal/models"

	"go.uber.org/zap"
)

// Resolution is the outcome of mapping an identity to an internal tenant
type Resolution struct {
	TenantID   string
	SuperAdmin bool
	Fallback   bool
}

// TenantResolver maps identity-provider tenant ids to internal tenant keys.
// Readers load an immutable snapshot; writers copy, modify and swap under mu.
type TenantResolver struct {
	defaultTenantID string
	superAdmins     map[string]struct{}
	snapshot        atomic.Pointer[[]models.TenantMapping]
	mu              sync.Mutex
	logger          *zap.Logger
}

// DefaultTenantMapping is the built-in seed entry used when no override is configured
var DefaultTenantMapping = models.TenantMapping{
	ExternalID: "00000000-0000-0000-0000-000000000000",
	InternalID: models.DefaultTenantID,
	Name:       "Default Operator",
}

// NewTenantResolver builds a resolver. A non-empty overrides list replaces the built-in seed wholesale.
func NewTenantResolver(defaultTenantID string, superAdminEmails []string, overrides []models.TenantMapping, logger *zap.Logger) *TenantResolver {
	if defaultTenantID == "" {
		defaultTenantID = models.DefaultTenantID
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	r := &TenantResolver{
		defaultTenantID: defaultTenantID,
		superAdmins:     make(map[string]struct{}, len(superAdminEmails)),
		logger:          logger,
	}
	for _, email := range superAdminEmails {
		if e := normalizeEmail(email); e != "" {
			r.superAdmins[e] = struct{}{}
		}
	}

	seed := []models.TenantMapping{DefaultTenantMapping}
	if len(overrides) > 0 {
		seed = append([]models.TenantMapping(nil), overrides...)
	}
	r.snapshot.Store(&seed)
	return r
}

// Resolve never fails: unknown tenants fall back to the default key with a warning
func (r *TenantResolver) Resolve(externalTenantID, actorEmail, requestedTenantID string) Resolution {
	if r.IsSuperAdmin(actorEmail) {
		tenantID := strings.TrimSpace(requestedTenantID)
		if tenantID == "" {
			tenantID = r.defaultTenantID
		}
		return Resolution{TenantID: tenantID, SuperAdmin: true}
	}

	for _, m := range *r.snapshot.Load() {
		if m.ExternalID == externalTenantID {
			return Resolution{TenantID: m.InternalID}
		}
	}

	r.logger.Warn("no tenant mapping for external tenant, using default",
		zap.String("external_tenant_id", externalTenantID),
		zap.String("actor", actorEmail),
		zap.String("default_tenant_id", r.defaultTenantID))
	return Resolution{TenantID: r.defaultTenantID, Fallback: true}
}

// IsSuperAdmin compares against the allow-list case-insensitively
func (r *TenantResolver) IsSuperAdmin(email string) bool {
	e := normalizeEmail(email)
	if e == "" {
		return false
	}
	_, ok := r.superAdmins[e]
	return ok
}

// AddOrUpdate upserts a mapping by external id
func (r *TenantResolver) AddOrUpdate(mapping models.TenantMapping) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current := *r.snapshot.Load()
	next := make([]models.TenantMapping, 0, len(current)+1)
	replaced := false
	for _, m := range current {
		if m.ExternalID == mapping.ExternalID {
			next = append(next, mapping)
			replaced = true
			continue
		}
		next = append(next, m)
	}
	if !replaced {
		next = append(next, mapping)
	}
	r.snapshot.Store(&next)

	r.logger.Info("tenant mapping updated",
		zap.String("external_tenant_id", mapping.ExternalID),
		zap.String("internal_tenant_id", mapping.InternalID),
		zap.Bool("replaced", replaced))
}

// Mappings returns a copy of the current table
func (r *TenantResolver) Mappings() []models.TenantMapping {
	current := *r.snapshot.Load()
	return append([]models.TenantMapping(nil), current...)
}

// DefaultTenantID returns the fallback tenant key
func (r *TenantResolver) DefaultTenantID() string {
	return r.defaultTenantID
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ProvisionTenants makes sure the fallback tenant and every mapped tenant has a row.
// Failures are logged and counted so startup can continue with the rest.
func ProvisionTenants(ctx context.Context, tenants TenantService, r *TenantResolver) int {
	failed := 0
	seen := map[string]struct{}{}
	ensure := func(id, name string) {
		if _, dup := seen[id]; dup {
			return
		}
		seen[id] = struct{}{}
		if _, err := tenants.EnsureTenant(ctx, id, name); err != nil {
			failed++
			r.logger.Warn("failed to provision tenant", zap.String("tenant_id", id), zap.Error(err))
		}
	}

	ensure(r.DefaultTenantID(), "")
	for _, m := range r.Mappings() {
		ensure(m.InternalID, m.Name)
	}
	return failed
}
