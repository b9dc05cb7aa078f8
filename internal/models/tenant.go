package models

import (
	"time"
)

// DefaultTenantID is the well-known internal tenant key used when no mapping matches
const DefaultTenantID = "default"

// DefaultLanguage is the UI language assigned to tenants created on first use
const DefaultLanguage = "sv"

// Tenant is an isolated operator whose fleet data is invisible to other tenants
type Tenant struct {
	ID            string    `json:"id" db:"id"`
	Name          string    `json:"name" db:"name"`
	PrimaryColor  *string   `json:"primary_color,omitempty" db:"primary_color"`
	Language      string    `json:"language" db:"language"`
	LogoObjectKey *string   `json:"-" db:"logo_object_key"`
	LogoURL       string    `json:"logo_url,omitempty" db:"-"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// TrainConfiguration is the per-tenant wagon layout. At most one row exists per tenant.
type TrainConfiguration struct {
	TenantID     string            `json:"tenant_id" db:"tenant_id"`
	WagonTypes   []string          `json:"wagon_types" db:"wagon_types"`
	CustomLabels map[string]string `json:"custom_labels,omitempty" db:"custom_labels"`
	UpdatedAt    time.Time         `json:"updated_at" db:"updated_at"`
}

// TenantConfiguration is the read model behind GET /tenants/:id/configuration
type TenantConfiguration struct {
	Tenant        *Tenant             `json:"tenant"`
	Configuration *TrainConfiguration `json:"configuration"`
}

// TenantMapping maps an identity-provider tenant id to an internal tenant key
type TenantMapping struct {
	ExternalID string `json:"externalId"`
	InternalID string `json:"internalId"`
	Name       string `json:"name"`
}

// Actor identifies who performed a request, taken from verified token claims
type Actor struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Subject string `json:"subject"`
}
