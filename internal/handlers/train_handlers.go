package handlers

import (
	"net/http"

	"fleethvac/internal/models"
	"fleethvac/internal/services"

	"github.com/labstack/echo/v4"
)

// TrainHandlers serves trains and their wagons
type TrainHandlers struct {
	fleet services.FleetService
}

func NewTrainHandlers(fleet services.FleetService) *TrainHandlers {
	return &TrainHandlers{fleet: fleet}
}

type ConfigureTrainRequest struct {
	TrainNumber string   `json:"train_number" validate:"required,max=50" example:"X31-2001"`
	Name        string   `json:"name" validate:"max=200"`
	Operator    string   `json:"operator" validate:"max=200"`
	WagonTypes  []string `json:"wagon_types" validate:"omitempty,max=64,dive,required,max=100"`
}

type UpdateTrainRequest struct {
	Name     *string `json:"name" validate:"omitempty,max=200"`
	Operator *string `json:"operator" validate:"omitempty,max=200"`
	Status   *string `json:"status" validate:"omitempty,oneof=active maintenance retired"`
}

type UpdateWagonRequest struct {
	WagonType *string `json:"wagon_type" validate:"omitempty,min=1,max=100"`
	Status    *string `json:"status" validate:"omitempty,max=50"`
}

// ListTrains godoc
// @Summary List trains with wagon and aggregate counts
// @Tags trains
// @Produce json
// @Success 200 {array} models.TrainSummary
// @Security BearerAuth
// @Router /trains [get]
func (h *TrainHandlers) ListTrains(c echo.Context) error {
	tenantID, _, err := identity(c)
	if err != nil {
		return err
	}
	trains, err := h.fleet.ListTrains(c.Request().Context(), tenantID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, trains)
}

// GetTrain godoc
// @Summary Train with ordered wagons and mounted aggregates
// @Tags trains
// @Produce json
// @Param id path int true "Train ID"
// @Success 200 {object} models.TrainDetail
// @Failure 404 {object} common.ErrorResponse
// @Security BearerAuth
// @Router /trains/{id} [get]
func (h *TrainHandlers) GetTrain(c echo.Context) error {
	tenantID, _, err := identity(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	train, err := h.fleet.GetTrain(c.Request().Context(), tenantID, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, train)
}

// ConfigureTrain godoc
// @Summary Create a train and its wagons in one transaction
// @Tags trains
// @Accept json
// @Produce json
// @Param request body ConfigureTrainRequest true "Train and wagon layout"
// @Success 201 {object} models.TrainDetail
// @Failure 400 {object} common.ErrorResponse
// @Failure 409 {object} common.ErrorResponse
// @Security BearerAuth
// @Router /trains/configure [post]
func (h *TrainHandlers) ConfigureTrain(c echo.Context) error {
	tenantID, actor, err := identity(c)
	if err != nil {
		return err
	}
	var req ConfigureTrainRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	train, err := h.fleet.ConfigureTrain(c.Request().Context(), tenantID, actor, models.ConfigureTrainInput{
		TrainNumber: req.TrainNumber,
		Name:        req.Name,
		Operator:    req.Operator,
		WagonTypes:  req.WagonTypes,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, train)
}

// UpdateTrain godoc
// @Summary Update train fields
// @Tags trains
// @Accept json
// @Produce json
// @Param id path int true "Train ID"
// @Param request body UpdateTrainRequest true "Fields to change"
// @Success 200 {object} models.Train
// @Security BearerAuth
// @Router /trains/{id} [put]
func (h *TrainHandlers) UpdateTrain(c echo.Context) error {
	tenantID, actor, err := identity(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req UpdateTrainRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	train, err := h.fleet.UpdateTrain(c.Request().Context(), tenantID, actor, id, models.TrainUpdate{
		Name:     req.Name,
		Operator: req.Operator,
		Status:   req.Status,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, train)
}

// DeleteTrain godoc
// @Summary Delete a train; mounted aggregates return to the spare pool
// @Tags trains
// @Param id path int true "Train ID"
// @Success 204
// @Security BearerAuth
// @Router /trains/{id} [delete]
func (h *TrainHandlers) DeleteTrain(c echo.Context) error {
	tenantID, actor, err := identity(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.fleet.DeleteTrain(c.Request().Context(), tenantID, actor, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ListWagons godoc
// @Summary Wagons of a train ordered by position
// @Tags trains
// @Produce json
// @Param id path int true "Train ID"
// @Success 200 {array} models.Wagon
// @Security BearerAuth
// @Router /trains/{id}/wagons [get]
func (h *TrainHandlers) ListWagons(c echo.Context) error {
	tenantID, _, err := identity(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	wagons, err := h.fleet.ListWagons(c.Request().Context(), tenantID, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, wagons)
}

// UpdateWagon godoc
// @Summary Update wagon type label or status
// @Tags trains
// @Accept json
// @Produce json
// @Param id path int true "Wagon ID"
// @Param request body UpdateWagonRequest true "Fields to change"
// @Success 200 {object} models.Wagon
// @Security BearerAuth
// @Router /wagons/{id} [put]
func (h *TrainHandlers) UpdateWagon(c echo.Context) error {
	tenantID, actor, err := identity(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req UpdateWagonRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	wagon, err := h.fleet.UpdateWagon(c.Request().Context(), tenantID, actor, id, models.WagonUpdate{
		WagonType: req.WagonType,
		Status:    req.Status,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, wagon)
}
