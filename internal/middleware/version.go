package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
)

// APIVersion describes one published version of the API
type APIVersion struct {
	Version    string     `json:"version"`
	Status     string     `json:"status"` // active, deprecated
	SunsetDate *time.Time `json:"sunset_date,omitempty"`
	Message    string     `json:"message,omitempty"`
}

type VersionMiddleware struct {
	versions map[string]APIVersion
}

// NewVersionMiddleware registers appVersion as the active version
func NewVersionMiddleware(appVersion string) *VersionMiddleware {
	return &VersionMiddleware{
		versions: map[string]APIVersion{
			appVersion: {Version: appVersion, Status: "active", Message: "Current stable API version"},
		},
	}
}

// Deprecate marks a version as deprecated with an optional sunset date
func (vm *VersionMiddleware) Deprecate(version, message string, sunset *time.Time) {
	vm.versions[version] = APIVersion{Version: version, Status: "deprecated", SunsetDate: sunset, Message: message}
}

// VersionHeader adds version information to response headers
func (vm *VersionMiddleware) VersionHeader(version string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Response().Header()
			h.Set("X-API-Version", version)

			if ver, ok := vm.versions[version]; ok {
				if ver.Status == "deprecated" {
					h.Set("X-API-Deprecated", "true")
					if ver.SunsetDate != nil {
						h.Set("X-API-Sunset", ver.SunsetDate.Format(time.RFC3339))
					}
				}
				if ver.Message != "" {
					h.Set("X-API-Message", ver.Message)
				}
			}
			return next(c)
		}
	}
}
