package handlers

import (
	"strconv"

	"fleethvac/internal/common"
	"fleethvac/internal/models"

	"github.com/labstack/echo/v4"
)

// identity returns the tenant and actor placed on the request by the JWT middleware
func identity(c echo.Context) (string, models.Actor, error) {
	ctx := c.Request().Context()
	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return "", models.Actor{}, common.Unauthorized("tenant not resolved")
	}
	actor, ok := common.GetActorFromContext(ctx)
	if !ok {
		return "", models.Actor{}, common.Unauthorized("user not authenticated")
	}
	return tenantID, actor, nil
}

func pathID(c echo.Context, name string) (int64, error) {
	return common.ParseID(c.Param(name), name)
}

func queryInt(c echo.Context, name string, fallback int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, common.Validation(name, name+" must be an integer")
	}
	return v, nil
}

func optionalQuery(c echo.Context, name string) *string {
	if v := c.QueryParam(name); v != "" {
		return &v
	}
	return nil
}
