package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"fleethvac/internal/models"
)

type TenantRepository interface {
	WithTx(tx DBTX) TenantRepository
	Create(ctx context.Context, tenant *models.Tenant) error
	GetByID(ctx context.Context, id string) (*models.Tenant, error)
	List(ctx context.Context) ([]*models.Tenant, error)
	UpdateBranding(ctx context.Context, tenant *models.Tenant) error
	SetLogoObjectKey(ctx context.Context, id, objectKey string) error

	GetConfiguration(ctx context.Context, tenantID string) (*models.TrainConfiguration, error)
	UpsertConfiguration(ctx context.Context, cfg *models.TrainConfiguration) error
}

type tenantRepo struct {
	db DBTX
}

func NewTenantRepo(db DBTX) TenantRepository {
	return &tenantRepo{db: db}
}

func (r *tenantRepo) WithTx(tx DBTX) TenantRepository {
	return &tenantRepo{db: tx}
}

const tenantColumns = `id, name, primary_color, language, logo_object_key, created_at, updated_at`

func (r *tenantRepo) Create(ctx context.Context, tenant *models.Tenant) error {
	query := `
		INSERT INTO tenants (id, name, primary_color, language, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING created_at, updated_at
	`
	return r.db.QueryRow(ctx, query, tenant.ID, tenant.Name, tenant.PrimaryColor, tenant.Language).
		Scan(&tenant.CreatedAt, &tenant.UpdatedAt)
}

func (r *tenantRepo) GetByID(ctx context.Context, id string) (*models.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE id = $1`
	return scanTenant(r.db.QueryRow(ctx, query, id))
}

func (r *tenantRepo) List(ctx context.Context) ([]*models.Tenant, error) {
	rows, err := r.db.Query(ctx, `SELECT `+tenantColumns+` FROM tenants ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tenants := []*models.Tenant{}
	for rows.Next() {
		tenant, err := scanTenant(rows)
		if err != nil {
			return nil, err
		}
		tenants = append(tenants, tenant)
	}
	return tenants, rows.Err()
}

func (r *tenantRepo) UpdateBranding(ctx context.Context, tenant *models.Tenant) error {
	query := `
		UPDATE tenants
		SET name = $2, primary_color = $3, language = $4, updated_at = NOW()
		WHERE id = $1
	`
	tag, err := r.db.Exec(ctx, query, tenant.ID, tenant.Name, tenant.PrimaryColor, tenant.Language)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errNoRowsAffected
	}
	return nil
}

func (r *tenantRepo) SetLogoObjectKey(ctx context.Context, id, objectKey string) error {
	tag, err := r.db.Exec(ctx, `UPDATE tenants SET logo_object_key = $2, updated_at = NOW() WHERE id = $1`, id, objectKey)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errNoRowsAffected
	}
	return nil
}

func (r *tenantRepo) GetConfiguration(ctx context.Context, tenantID string) (*models.TrainConfiguration, error) {
	cfg := &models.TrainConfiguration{}
	var labels []byte

	query := `SELECT tenant_id, wagon_types, custom_labels, updated_at FROM train_configurations WHERE tenant_id = $1`
	if err := r.db.QueryRow(ctx, query, tenantID).Scan(&cfg.TenantID, &cfg.WagonTypes, &labels, &cfg.UpdatedAt); err != nil {
		return nil, err
	}
	if len(labels) > 0 {
		if err := json.Unmarshal(labels, &cfg.CustomLabels); err != nil {
			return nil, fmt.Errorf("failed to unmarshal custom_labels: %w", err)
		}
	}
	return cfg, nil
}

// UpsertConfiguration keeps exactly one configuration row per tenant
func (r *tenantRepo) UpsertConfiguration(ctx context.Context, cfg *models.TrainConfiguration) error {
	labels, err := marshalJSONB(cfg.CustomLabels)
	if err != nil {
		return fmt.Errorf("failed to marshal custom_labels: %w", err)
	}

	query := `
		INSERT INTO train_configurations (tenant_id, wagon_types, custom_labels, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (tenant_id) DO UPDATE
		SET wagon_types = EXCLUDED.wagon_types, custom_labels = EXCLUDED.custom_labels, updated_at = NOW()
		RETURNING updated_at
	`
	return r.db.QueryRow(ctx, query, cfg.TenantID, cfg.WagonTypes, labels).Scan(&cfg.UpdatedAt)
}

func scanTenant(row rowScanner) (*models.Tenant, error) {
	tenant := &models.Tenant{}
	err := row.Scan(
		&tenant.ID,
		&tenant.Name,
		&tenant.PrimaryColor,
		&tenant.Language,
		&tenant.LogoObjectKey,
		&tenant.CreatedAt,
		&tenant.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return tenant, nil
}
