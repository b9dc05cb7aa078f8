package middleware

import (
	"fleethvac/internal/common"

	"github.com/labstack/echo/v4"
)

// RequireSuperAdmin guards cross-tenant administration routes
func RequireSuperAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			if _, ok := common.GetActorFromContext(ctx); !ok {
				return common.Unauthorized("user not authenticated")
			}
			if !common.IsSuperAdmin(ctx) {
				return common.Forbidden("super-admin access required")
			}
			return next(c)
		}
	}
}
