package handlers

import (
	"fmt"
	"net/http"
	"time"

	"fleethvac/internal/common"
	"fleethvac/internal/models"
	"fleethvac/internal/services"

	"github.com/labstack/echo/v4"
)

// AggregateHandlers serves HVAC aggregates and their lifecycle commands
type AggregateHandlers struct {
	fleet     services.FleetService
	lifecycle services.AggregateService
}

func NewAggregateHandlers(fleet services.FleetService, lifecycle services.AggregateService) *AggregateHandlers {
	return &AggregateHandlers{fleet: fleet, lifecycle: lifecycle}
}

type CreateAggregateRequest struct {
	AggregateNumber     string     `json:"aggregate_number" validate:"required,max=50" example:"AG-1001"`
	Type                string     `json:"type" validate:"omitempty,oneof=cooling heating combined"`
	TemperatureSetpoint *float64   `json:"temperature_setpoint"`
	PressureSetpoint    *float64   `json:"pressure_setpoint"`
	LastMaintenanceAt   *time.Time `json:"last_maintenance_at"`
	NextMaintenanceAt   *time.Time `json:"next_maintenance_at"`
}

type UpdateAggregateRequest struct {
	Type                *string    `json:"type" validate:"omitempty,oneof=cooling heating combined"`
	Status              *string    `json:"status" validate:"omitempty,oneof=operational maintenance reserve"`
	TemperatureSetpoint *float64   `json:"temperature_setpoint"`
	PressureSetpoint    *float64   `json:"pressure_setpoint"`
	LastMaintenanceAt   *time.Time `json:"last_maintenance_at"`
	NextMaintenanceAt   *time.Time `json:"next_maintenance_at"`
}

type AssignRequest struct {
	WagonID int64 `json:"wagon_id" validate:"required,gt=0"`
}

type SwapRequest struct {
	TargetAggregateID int64 `json:"target_aggregate_id" validate:"required,gt=0"`
}

type RecordReadingRequest struct {
	RecordedAt  *time.Time `json:"recorded_at"`
	Temperature *float64   `json:"temperature"`
	Pressure    *float64   `json:"pressure"`
	Humidity    *float64   `json:"humidity"`
	PowerKW     *float64   `json:"power_kw"`
	ErrorCode   *string    `json:"error_code" validate:"omitempty,max=50"`
}

// ListAggregates godoc
// @Summary List aggregates
// @Tags aggregates
// @Produce json
// @Param status query string false "operational, maintenance or reserve"
// @Param type query string false "cooling, heating or combined"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {array} models.Aggregate
// @Security BearerAuth
// @Router /aggregates [get]
func (h *AggregateHandlers) ListAggregates(c echo.Context) error {
	tenantID, _, err := identity(c)
	if err != nil {
		return err
	}
	limit, err := queryInt(c, "limit", 0)
	if err != nil {
		return err
	}
	offset, err := queryInt(c, "offset", 0)
	if err != nil {
		return err
	}
	if limit > 0 || offset > 0 {
		if limit, offset, err = common.ValidatePaginationParams(limit, offset); err != nil {
			return common.Validation("offset", err.Error())
		}
	}

	list, err := h.fleet.ListAggregates(c.Request().Context(), tenantID, models.AggregateFilter{
		Status: optionalQuery(c, "status"),
		Type:   optionalQuery(c, "type"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

// GetAggregate godoc
// @Summary Get one aggregate
// @Tags aggregates
// @Produce json
// @Param id path int true "Aggregate ID"
// @Success 200 {object} models.Aggregate
// @Failure 404 {object} common.ErrorResponse
// @Security BearerAuth
// @Router /aggregates/{id} [get]
func (h *AggregateHandlers) GetAggregate(c echo.Context) error {
	tenantID, _, err := identity(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	agg, err := h.fleet.GetAggregate(c.Request().Context(), tenantID, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, agg)
}

// CreateAggregate godoc
// @Summary Register an aggregate in the spare pool
// @Tags aggregates
// @Accept json
// @Produce json
// @Param request body CreateAggregateRequest true "Aggregate"
// @Success 201 {object} models.Aggregate
// @Failure 409 {object} common.ErrorResponse
// @Security BearerAuth
// @Router /aggregates [post]
func (h *AggregateHandlers) CreateAggregate(c echo.Context) error {
	tenantID, actor, err := identity(c)
	if err != nil {
		return err
	}
	var req CreateAggregateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	agg, err := h.fleet.CreateAggregate(c.Request().Context(), tenantID, actor, &models.Aggregate{
		AggregateNumber:     req.AggregateNumber,
		Type:                req.Type,
		TemperatureSetpoint: req.TemperatureSetpoint,
		PressureSetpoint:    req.PressureSetpoint,
		LastMaintenanceAt:   req.LastMaintenanceAt,
		NextMaintenanceAt:   req.NextMaintenanceAt,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, agg)
}

// UpdateAggregate godoc
// @Summary Update aggregate settings and maintenance dates
// @Tags aggregates
// @Accept json
// @Produce json
// @Param id path int true "Aggregate ID"
// @Param request body UpdateAggregateRequest true "Fields to change"
// @Success 200 {object} models.Aggregate
// @Failure 409 {object} common.ErrorResponse
// @Security BearerAuth
// @Router /aggregates/{id} [put]
func (h *AggregateHandlers) UpdateAggregate(c echo.Context) error {
	tenantID, actor, err := identity(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req UpdateAggregateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	agg, err := h.fleet.UpdateAggregate(c.Request().Context(), tenantID, actor, id, models.AggregateUpdate{
		Type:                req.Type,
		Status:              req.Status,
		TemperatureSetpoint: req.TemperatureSetpoint,
		PressureSetpoint:    req.PressureSetpoint,
		LastMaintenanceAt:   req.LastMaintenanceAt,
		NextMaintenanceAt:   req.NextMaintenanceAt,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, agg)
}

// ListSpare godoc
// @Summary Aggregates not mounted on any wagon
// @Tags aggregates
// @Produce json
// @Success 200 {array} models.Aggregate
// @Security BearerAuth
// @Router /aggregates/spare [get]
func (h *AggregateHandlers) ListSpare(c echo.Context) error {
	tenantID, _, err := identity(c)
	if err != nil {
		return err
	}
	list, err := h.fleet.ListSpare(c.Request().Context(), tenantID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

// MaintenanceDue godoc
// @Summary Aggregates due for maintenance
// @Tags aggregates
// @Produce json
// @Param before query string false "RFC3339 cut-off, defaults to now"
// @Success 200 {array} models.Aggregate
// @Security BearerAuth
// @Router /aggregates/maintenance-due [get]
func (h *AggregateHandlers) MaintenanceDue(c echo.Context) error {
	tenantID, _, err := identity(c)
	if err != nil {
		return err
	}
	dueBy := time.Now().UTC()
	if raw := c.QueryParam("before"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return common.Validation("before", "before must be an RFC3339 timestamp")
		}
		dueBy = t.UTC()
	}

	list, err := h.fleet.MaintenanceDue(c.Request().Context(), tenantID, dueBy)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

// Assign godoc
// @Summary Mount a spare aggregate on a wagon
// @Tags aggregates
// @Accept json
// @Produce json
// @Param id path int true "Aggregate ID"
// @Param request body AssignRequest true "Target wagon"
// @Success 200 {object} models.Aggregate
// @Failure 409 {object} common.ErrorResponse
// @Security BearerAuth
// @Router /aggregates/{id}/assign [post]
func (h *AggregateHandlers) Assign(c echo.Context) error {
	tenantID, actor, err := identity(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req AssignRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	agg, err := h.lifecycle.Assign(c.Request().Context(), tenantID, actor, id, req.WagonID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, agg)
}

// Unassign godoc
// @Summary Return an aggregate to the spare pool
// @Tags aggregates
// @Produce json
// @Param id path int true "Aggregate ID"
// @Success 200 {object} models.Aggregate
// @Security BearerAuth
// @Router /aggregates/{id}/unassign [post]
func (h *AggregateHandlers) Unassign(c echo.Context) error {
	tenantID, actor, err := identity(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	agg, err := h.lifecycle.Unassign(c.Request().Context(), tenantID, actor, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, agg)
}

// Replace godoc
// @Summary Replace a mounted aggregate with a spare one
// @Tags aggregates
// @Accept json
// @Produce json
// @Param request body services.ReplaceRequest true "Old and new aggregate"
// @Success 200 {object} common.MessageResponse
// @Failure 404 {object} common.ErrorResponse
// @Failure 409 {object} common.ErrorResponse
// @Security BearerAuth
// @Router /aggregates/replace [post]
func (h *AggregateHandlers) Replace(c echo.Context) error {
	tenantID, actor, err := identity(c)
	if err != nil {
		return err
	}
	var req services.ReplaceRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := h.lifecycle.Replace(c.Request().Context(), tenantID, actor, req)
	if err != nil {
		return err
	}
	return common.SendSuccess(c, fmt.Sprintf("Aggregate %s replaced by %s on wagon %d",
		result.Old.AggregateNumber, result.New.AggregateNumber, result.Replacement.WagonID))
}

// Swap godoc
// @Summary Exchange the positions of two aggregates
// @Tags aggregates
// @Accept json
// @Produce json
// @Param id path int true "Aggregate ID"
// @Param request body SwapRequest true "Other aggregate"
// @Success 200 {object} services.SwapResult
// @Security BearerAuth
// @Router /aggregates/{id}/swap [post]
func (h *AggregateHandlers) Swap(c echo.Context) error {
	tenantID, actor, err := identity(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req SwapRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := h.lifecycle.Swap(c.Request().Context(), tenantID, actor, id, req.TargetAggregateID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// ListReadings godoc
// @Summary Recent sensor readings, newest first
// @Tags aggregates
// @Produce json
// @Param id path int true "Aggregate ID"
// @Param limit query int false "Max readings (default 100, max 1000)"
// @Success 200 {array} models.SensorReading
// @Security BearerAuth
// @Router /aggregates/{id}/readings [get]
func (h *AggregateHandlers) ListReadings(c echo.Context) error {
	tenantID, _, err := identity(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	limit, err := queryInt(c, "limit", 0)
	if err != nil {
		return err
	}
	readings, err := h.fleet.ListReadings(c.Request().Context(), tenantID, id, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, readings)
}

// RecordReading godoc
// @Summary Store a sensor reading and update live values
// @Tags aggregates
// @Accept json
// @Produce json
// @Param id path int true "Aggregate ID"
// @Param request body RecordReadingRequest true "Measurement"
// @Success 201 {object} models.SensorReading
// @Security BearerAuth
// @Router /aggregates/{id}/readings [post]
func (h *AggregateHandlers) RecordReading(c echo.Context) error {
	tenantID, _, err := identity(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req RecordReadingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	reading := &models.SensorReading{
		AggregateID: id,
		Temperature: req.Temperature,
		Pressure:    req.Pressure,
		Humidity:    req.Humidity,
		PowerKW:     req.PowerKW,
		ErrorCode:   req.ErrorCode,
	}
	if req.RecordedAt != nil {
		reading.RecordedAt = req.RecordedAt.UTC()
	}
	if err := h.lifecycle.RecordReading(c.Request().Context(), tenantID, reading); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, reading)
}

// History godoc
// @Summary Lifecycle log and replacements of an aggregate
// @Tags aggregates
// @Produce json
// @Param id path int true "Aggregate ID"
// @Success 200 {object} models.AggregateHistory
// @Security BearerAuth
// @Router /aggregates/{id}/history [get]
func (h *AggregateHandlers) History(c echo.Context) error {
	tenantID, _, err := identity(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	history, err := h.fleet.History(c.Request().Context(), tenantID, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, history)
}
