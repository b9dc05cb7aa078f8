package handlers

import (
	"net/http"
	"strings"

	"fleethvac/internal/common"
	"fleethvac/internal/models"
	"fleethvac/internal/services"

	"github.com/labstack/echo/v4"
)

// TenantHandlers handles tenant-related HTTP requests
type TenantHandlers struct {
	tenantService services.TenantService
	resolver      *services.TenantResolver
}

func NewTenantHandlers(tenantService services.TenantService, resolver *services.TenantResolver) *TenantHandlers {
	return &TenantHandlers{tenantService: tenantService, resolver: resolver}
}

type TenantMappingRequest struct {
	ExternalID string `json:"externalId" validate:"required,max=100"`
	InternalID string `json:"internalId" validate:"required,max=100"`
	Name       string `json:"name" validate:"max=200"`
}

// ListTenants godoc
// @Summary All tenants (super-admin)
// @Tags tenants
// @Produce json
// @Success 200 {array} models.Tenant
// @Failure 403 {object} common.ErrorResponse
// @Security BearerAuth
// @Router /tenants [get]
func (h *TenantHandlers) ListTenants(c echo.Context) error {
	tenants, err := h.tenantService.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tenants)
}

// GetConfiguration godoc
// @Summary Tenant branding and wagon layout
// @Tags tenants
// @Produce json
// @Param id path string true "Tenant key"
// @Success 200 {object} models.TenantConfiguration
// @Failure 403 {object} common.ErrorResponse
// @Security BearerAuth
// @Router /tenants/{id}/configuration [get]
func (h *TenantHandlers) GetConfiguration(c echo.Context) error {
	tenantID, _, err := h.targetTenant(c)
	if err != nil {
		return err
	}
	cfg, err := h.tenantService.GetConfiguration(c.Request().Context(), tenantID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cfg)
}

// UpdateConfiguration godoc
// @Summary Update tenant branding and wagon layout
// @Tags tenants
// @Accept json
// @Produce json
// @Param id path string true "Tenant key"
// @Param request body services.UpdateConfigurationRequest true "Changes"
// @Success 200 {object} models.TenantConfiguration
// @Security BearerAuth
// @Router /tenants/{id}/configuration [put]
func (h *TenantHandlers) UpdateConfiguration(c echo.Context) error {
	tenantID, actor, err := h.targetTenant(c)
	if err != nil {
		return err
	}
	var req services.UpdateConfigurationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	cfg, err := h.tenantService.UpdateConfiguration(c.Request().Context(), tenantID, actor, &req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cfg)
}

// UploadLogo godoc
// @Summary Upload the tenant logo
// @Tags tenants
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Tenant key"
// @Param logo formData file true "PNG, JPEG, SVG or WebP up to 2 MiB"
// @Success 200 {object} models.Tenant
// @Security BearerAuth
// @Router /tenants/{id}/logo [post]
func (h *TenantHandlers) UploadLogo(c echo.Context) error {
	tenantID, actor, err := h.targetTenant(c)
	if err != nil {
		return err
	}

	header, err := c.FormFile("logo")
	if err != nil {
		return common.Validation("logo", "logo file is required")
	}
	file, err := header.Open()
	if err != nil {
		return common.Validation("logo", "logo file could not be read")
	}
	defer file.Close()

	tenant, err := h.tenantService.UploadLogo(c.Request().Context(), tenantID, actor, services.LogoUpload{
		Reader:      file,
		Size:        header.Size,
		ContentType: header.Header.Get(echo.HeaderContentType),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tenant)
}

// ListMappings godoc
// @Summary Identity-provider tenant mappings (super-admin)
// @Tags admin
// @Produce json
// @Success 200 {array} models.TenantMapping
// @Security BearerAuth
// @Router /admin/tenant-mappings [get]
func (h *TenantHandlers) ListMappings(c echo.Context) error {
	return c.JSON(http.StatusOK, h.resolver.Mappings())
}

// PutMapping godoc
// @Summary Add or update a tenant mapping (super-admin)
// @Tags admin
// @Accept json
// @Produce json
// @Param request body TenantMappingRequest true "Mapping"
// @Success 200 {array} models.TenantMapping
// @Security BearerAuth
// @Router /admin/tenant-mappings [put]
func (h *TenantHandlers) PutMapping(c echo.Context) error {
	var req TenantMappingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	mapping := models.TenantMapping{
		ExternalID: strings.TrimSpace(req.ExternalID),
		InternalID: strings.TrimSpace(req.InternalID),
		Name:       req.Name,
	}
	if _, err := h.tenantService.EnsureTenant(c.Request().Context(), mapping.InternalID, mapping.Name); err != nil {
		return err
	}
	h.resolver.AddOrUpdate(mapping)
	return c.JSON(http.StatusOK, h.resolver.Mappings())
}

// targetTenant allows the caller's own tenant, or any tenant for super-admins
func (h *TenantHandlers) targetTenant(c echo.Context) (string, models.Actor, error) {
	own, actor, err := identity(c)
	if err != nil {
		return "", models.Actor{}, err
	}
	target := strings.TrimSpace(c.Param("id"))
	if target == "" {
		return "", models.Actor{}, common.Validation("id", "tenant id is required")
	}
	if target != own && !common.IsSuperAdmin(c.Request().Context()) {
		return "", models.Actor{}, common.Forbidden("cannot access another tenant")
	}
	return target, actor, nil
}
