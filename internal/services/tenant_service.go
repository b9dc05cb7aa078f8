package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"fleethvac/internal/common"
	"fleethvac/internal/models"
	"fleethvac/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const maxLogoSize = 2 << 20

var logoExtensions = map[string]string{
	"image/png":     ".png",
	"image/jpeg":    ".jpg",
	"image/svg+xml": ".svg",
	"image/webp":    ".webp",
}

type TenantService interface {
	GetByID(ctx context.Context, id string) (*models.Tenant, error)
	List(ctx context.Context) ([]*models.Tenant, error)
	// EnsureTenant creates the tenant row on first use; an existing tenant is returned unchanged
	EnsureTenant(ctx context.Context, id, name string) (*models.Tenant, error)
	GetConfiguration(ctx context.Context, tenantID string) (*models.TenantConfiguration, error)
	UpdateConfiguration(ctx context.Context, tenantID string, actor models.Actor, req *UpdateConfigurationRequest) (*models.TenantConfiguration, error)
	UploadLogo(ctx context.Context, tenantID string, actor models.Actor, logo LogoUpload) (*models.Tenant, error)
}

type UpdateConfigurationRequest struct {
	Name         *string           `json:"name" validate:"omitempty,min=1,max=200"`
	PrimaryColor *string           `json:"primary_color" validate:"omitempty,hexcolor"`
	Language     *string           `json:"language" validate:"omitempty,min=2,max=5"`
	WagonTypes   []string          `json:"wagon_types" validate:"omitempty,dive,required"`
	CustomLabels map[string]string `json:"custom_labels"`
}

// LogoUpload is an image file destined for the branding bucket
type LogoUpload struct {
	Reader      io.Reader
	Size        int64
	ContentType string
}

type tenantService struct {
	gateway    *repositories.Gateway
	tenantRepo repositories.TenantRepository
	audit      AuditRecorder
	storage    MinioService
	urlExpiry  time.Duration
	logger     *zap.Logger
}

// NewTenantService builds the tenant service; storage may be nil when object storage is not configured
func NewTenantService(gateway *repositories.Gateway, tenantRepo repositories.TenantRepository, audit AuditRecorder,
	storage MinioService, urlExpiry time.Duration, logger *zap.Logger) TenantService {
	if urlExpiry <= 0 {
		urlExpiry = time.Hour
	}
	return &tenantService{
		gateway:    gateway,
		tenantRepo: tenantRepo,
		audit:      audit,
		storage:    storage,
		urlExpiry:  urlExpiry,
		logger:     logger,
	}
}

func (s *tenantService) GetByID(ctx context.Context, id string) (*models.Tenant, error) {
	tenant, err := s.tenantRepo.GetByID(ctx, id)
	if err != nil {
		return nil, common.FromDBError(err, "tenant")
	}
	s.attachLogoURL(ctx, tenant)
	return tenant, nil
}

func (s *tenantService) List(ctx context.Context) ([]*models.Tenant, error) {
	tenants, err := s.tenantRepo.List(ctx)
	if err != nil {
		return nil, common.Internal("failed to list tenants", err)
	}
	return tenants, nil
}

func (s *tenantService) EnsureTenant(ctx context.Context, id, name string) (*models.Tenant, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, common.Validation("id", "tenant id is required")
	}
	tenant, err := s.tenantRepo.GetByID(ctx, id)
	if err == nil {
		return tenant, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, common.Internal("failed to load tenant", err)
	}

	if strings.TrimSpace(name) == "" {
		name = id
	}
	tenant = &models.Tenant{ID: id, Name: name, Language: models.DefaultLanguage}
	if err := s.tenantRepo.Create(ctx, tenant); err != nil {
		// a concurrent request may have created it first
		if existing, getErr := s.tenantRepo.GetByID(ctx, id); getErr == nil {
			return existing, nil
		}
		return nil, common.FromDBError(err, "tenant "+id)
	}
	s.logger.Info("tenant created", zap.String("tenant_id", id))
	return tenant, nil
}

func (s *tenantService) GetConfiguration(ctx context.Context, tenantID string) (*models.TenantConfiguration, error) {
	tenant, err := s.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	cfg, err := s.tenantRepo.GetConfiguration(ctx, tenantID)
	if errors.Is(err, pgx.ErrNoRows) {
		cfg = &models.TrainConfiguration{TenantID: tenantID, WagonTypes: []string{}}
	} else if err != nil {
		return nil, common.Internal("failed to load train configuration", err)
	}
	return &models.TenantConfiguration{Tenant: tenant, Configuration: cfg}, nil
}

// UpdateConfiguration changes branding and the wagon layout in one transaction
func (s *tenantService) UpdateConfiguration(ctx context.Context, tenantID string, actor models.Actor, req *UpdateConfigurationRequest) (*models.TenantConfiguration, error) {
	if req == nil {
		return nil, common.Validation("body", "request body is required")
	}
	for i, t := range req.WagonTypes {
		req.WagonTypes[i] = strings.TrimSpace(t)
		if req.WagonTypes[i] == "" {
			return nil, common.Validation("wagon_types", fmt.Sprintf("wagon type at position %d is empty", i+1))
		}
	}

	var result *models.TenantConfiguration
	err := s.gateway.WithTransaction(ctx, func(tx pgx.Tx) error {
		repo := s.tenantRepo.WithTx(tx)

		tenant, err := repo.GetByID(ctx, tenantID)
		if err != nil {
			return common.FromDBError(err, "tenant")
		}
		cfg, err := repo.GetConfiguration(ctx, tenantID)
		if errors.Is(err, pgx.ErrNoRows) {
			cfg = &models.TrainConfiguration{TenantID: tenantID, WagonTypes: []string{}}
		} else if err != nil {
			return err
		}
		before := configurationSnapshot(tenant, cfg)

		if req.Name != nil || req.PrimaryColor != nil || req.Language != nil {
			if req.Name != nil {
				tenant.Name = strings.TrimSpace(*req.Name)
			}
			if req.PrimaryColor != nil {
				tenant.PrimaryColor = req.PrimaryColor
			}
			if req.Language != nil {
				tenant.Language = *req.Language
			}
			if err := repo.UpdateBranding(ctx, tenant); err != nil {
				return err
			}
		}

		if req.WagonTypes != nil {
			cfg.WagonTypes = req.WagonTypes
		}
		if req.CustomLabels != nil {
			cfg.CustomLabels = req.CustomLabels
		}
		if err := repo.UpsertConfiguration(ctx, cfg); err != nil {
			return err
		}

		result = &models.TenantConfiguration{Tenant: tenant, Configuration: cfg}
		return s.audit.Record(ctx, tx, models.AuditEntry{
			TenantID:    tenantID,
			Actor:       actor,
			Action:      models.ActionConfigure,
			EntityType:  models.EntityConfiguration,
			EntityID:    tenantID,
			OldValues:   before,
			NewValues:   configurationSnapshot(tenant, cfg),
			Description: fmt.Sprintf("Configuration of tenant %s updated", tenantID),
		})
	})
	if err != nil {
		var appErr *common.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		if notFound := common.UnknownTenant(err); notFound != nil {
			return nil, notFound
		}
		s.logger.Error("tenant configuration update rolled back", zap.String("tenant_id", tenantID), zap.Error(err))
		return nil, common.TransactionFailure(err)
	}

	s.attachLogoURL(ctx, result.Tenant)
	return result, nil
}

// UploadLogo stores the image first and only then records its key, removing the previous object afterwards
func (s *tenantService) UploadLogo(ctx context.Context, tenantID string, actor models.Actor, logo LogoUpload) (*models.Tenant, error) {
	if s.storage == nil {
		return nil, common.Upstream("object storage", errors.New("not configured"))
	}
	ext, ok := logoExtensions[logo.ContentType]
	if !ok {
		return nil, common.Validation("logo", "logo must be a PNG, JPEG, SVG or WebP image")
	}
	if logo.Size <= 0 || logo.Size > maxLogoSize {
		return nil, common.Validation("logo", "logo must be between 1 byte and 2 MiB")
	}

	tenant, err := s.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		return nil, common.FromDBError(err, "tenant")
	}
	previous := tenant.LogoObjectKey

	objectKey := path.Join(tenantID, "logo-"+uuid.NewString()+ext)
	if err := s.storage.UploadObject(ctx, objectKey, logo.Reader, logo.Size, logo.ContentType); err != nil {
		return nil, common.Upstream("object storage", err)
	}

	err = s.gateway.WithTransaction(ctx, func(tx pgx.Tx) error {
		if err := s.tenantRepo.WithTx(tx).SetLogoObjectKey(ctx, tenantID, objectKey); err != nil {
			return err
		}
		return s.audit.Record(ctx, tx, models.AuditEntry{
			TenantID:    tenantID,
			Actor:       actor,
			Action:      models.ActionUpdate,
			EntityType:  models.EntityTenant,
			EntityID:    tenantID,
			OldValues:   models.JSONB{"logo_object_key": common.SafeString(previous)},
			NewValues:   models.JSONB{"logo_object_key": objectKey},
			Description: "Tenant logo replaced",
		})
	})
	if err != nil {
		if delErr := s.storage.DeleteObject(ctx, objectKey); delErr != nil {
			s.logger.Warn("failed to remove orphaned logo", zap.String("object", objectKey), zap.Error(delErr))
		}
		return nil, common.FromDBError(err, "tenant")
	}

	if previous != nil && *previous != "" {
		if err := s.storage.DeleteObject(ctx, *previous); err != nil {
			s.logger.Warn("failed to remove previous logo", zap.String("object", *previous), zap.Error(err))
		}
	}

	tenant.LogoObjectKey = &objectKey
	s.attachLogoURL(ctx, tenant)
	return tenant, nil
}

func (s *tenantService) attachLogoURL(ctx context.Context, tenant *models.Tenant) {
	if s.storage == nil || tenant.LogoObjectKey == nil || *tenant.LogoObjectKey == "" {
		return
	}
	url, err := s.storage.GetPresignedURL(ctx, *tenant.LogoObjectKey, s.urlExpiry)
	if err != nil {
		s.logger.Warn("failed to presign logo url", zap.String("tenant_id", tenant.ID), zap.Error(err))
		return
	}
	tenant.LogoURL = url
}

func configurationSnapshot(tenant *models.Tenant, cfg *models.TrainConfiguration) models.JSONB {
	return models.JSONB{
		"name":          tenant.Name,
		"primary_color": common.SafeString(tenant.PrimaryColor),
		"language":      tenant.Language,
		"wagon_types":   cfg.WagonTypes,
		"custom_labels": cfg.CustomLabels,
	}
}
