package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"fleethvac/internal/common"
	"fleethvac/internal/models"
	"fleethvac/internal/repositories"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// TenantCacheInvalidator drops cached fleet read models after a mutation
type TenantCacheInvalidator interface {
	InvalidateTenantCache(ctx context.Context, tenantID string) error
}

// AggregateService runs aggregate lifecycle transitions. Each operation is one
// transaction that re-reads the aggregates under FOR UPDATE before writing.
type AggregateService interface {
	Assign(ctx context.Context, tenantID string, actor models.Actor, aggregateID, wagonID int64) (*models.Aggregate, error)
	Unassign(ctx context.Context, tenantID string, actor models.Actor, aggregateID int64) (*models.Aggregate, error)
	Replace(ctx context.Context, tenantID string, actor models.Actor, req ReplaceRequest) (*ReplaceResult, error)
	Swap(ctx context.Context, tenantID string, actor models.Actor, aggregateID, targetID int64) (*SwapResult, error)
	RecordReading(ctx context.Context, tenantID string, reading *models.SensorReading) error
}

type ReplaceRequest struct {
	OldAggregateID int64  `json:"old_aggregate_id" validate:"required,gt=0"`
	NewAggregateID int64  `json:"new_aggregate_id" validate:"required,gt=0"`
	Reason         string `json:"reason" validate:"max=500"`
}

type ReplaceResult struct {
	Old         *models.Aggregate            `json:"old_aggregate"`
	New         *models.Aggregate            `json:"new_aggregate"`
	Replacement *models.AggregateReplacement `json:"replacement"`
}

type SwapResult struct {
	Aggregate *models.Aggregate `json:"aggregate"`
	Target    *models.Aggregate `json:"target"`
}

type aggregateService struct {
	gateway    *repositories.Gateway
	aggregates repositories.AggregateRepository
	wagons     repositories.WagonRepository
	history    repositories.AggregateHistoryRepository
	readings   repositories.SensorReadingRepository
	audit      AuditRecorder
	cache      TenantCacheInvalidator
	logger     *zap.Logger
}

func NewAggregateService(
	gateway *repositories.Gateway,
	aggregates repositories.AggregateRepository,
	wagons repositories.WagonRepository,
	history repositories.AggregateHistoryRepository,
	readings repositories.SensorReadingRepository,
	audit AuditRecorder,
	cache TenantCacheInvalidator,
	logger *zap.Logger,
) AggregateService {
	return &aggregateService{
		gateway:    gateway,
		aggregates: aggregates,
		wagons:     wagons,
		history:    history,
		readings:   readings,
		audit:      audit,
		cache:      cache,
		logger:     logger,
	}
}

func (s *aggregateService) Assign(ctx context.Context, tenantID string, actor models.Actor, aggregateID, wagonID int64) (*models.Aggregate, error) {
	if wagonID <= 0 {
		return nil, common.Validation("wagon_id", "wagon_id must be a positive integer")
	}

	var result *models.Aggregate
	err := s.gateway.WithTransaction(ctx, func(tx pgx.Tx) error {
		aggregates := s.aggregates.WithTx(tx)

		locked, err := aggregates.LockByIDs(ctx, tenantID, aggregateID)
		if err != nil {
			return err
		}
		a, ok := locked[aggregateID]
		if !ok {
			return aggregateNotFound(aggregateID)
		}
		if a.Attached() {
			return common.Conflict(fmt.Sprintf("aggregate %d is already attached to wagon %d", a.ID, *a.CurrentWagonID))
		}
		if _, err := s.wagons.WithTx(tx).GetByID(ctx, tenantID, wagonID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return common.NotFound(fmt.Sprintf("wagon %d", wagonID))
			}
			return err
		}

		before := a.Snapshot()
		if err := aggregates.SetAttachment(ctx, tenantID, a.ID, &wagonID, false, models.AggregateStatusOperational); err != nil {
			return err
		}
		a.CurrentWagonID = &wagonID
		a.IsSpare = false
		a.Status = models.AggregateStatusOperational

		if err := s.history.WithTx(tx).CreateLog(ctx, &models.AggregateLog{
			TenantID:    tenantID,
			AggregateID: a.ID,
			Action:      models.ActionAssign,
			NewWagonID:  &wagonID,
			Actor:       actor.Email,
		}); err != nil {
			return err
		}

		if err := s.audit.Record(ctx, tx, models.AuditEntry{
			TenantID:    tenantID,
			Actor:       actor,
			Action:      models.ActionAssign,
			EntityType:  models.EntityAggregate,
			EntityID:    strconv.FormatInt(a.ID, 10),
			OldValues:   before,
			NewValues:   a.Snapshot(),
			Description: fmt.Sprintf("Aggregate %s assigned to wagon %d", a.AggregateNumber, wagonID),
		}); err != nil {
			return err
		}

		result = a
		return nil
	})
	if err != nil {
		return nil, s.fail(ctx, "assign", err)
	}

	s.invalidate(ctx, tenantID)
	return result, nil
}

// Unassign is a no-op returning the current row when the aggregate is already detached
func (s *aggregateService) Unassign(ctx context.Context, tenantID string, actor models.Actor, aggregateID int64) (*models.Aggregate, error) {
	var result *models.Aggregate
	changed := false

	err := s.gateway.WithTransaction(ctx, func(tx pgx.Tx) error {
		aggregates := s.aggregates.WithTx(tx)

		locked, err := aggregates.LockByIDs(ctx, tenantID, aggregateID)
		if err != nil {
			return err
		}
		a, ok := locked[aggregateID]
		if !ok {
			return aggregateNotFound(aggregateID)
		}
		result = a
		if !a.Attached() {
			return nil
		}

		before := a.Snapshot()
		oldWagonID := *a.CurrentWagonID
		if err := aggregates.SetAttachment(ctx, tenantID, a.ID, nil, true, models.AggregateStatusReserve); err != nil {
			return err
		}
		a.CurrentWagonID = nil
		a.IsSpare = true
		a.Status = models.AggregateStatusReserve

		if err := s.history.WithTx(tx).CreateLog(ctx, &models.AggregateLog{
			TenantID:    tenantID,
			AggregateID: a.ID,
			Action:      models.ActionUnassign,
			OldWagonID:  &oldWagonID,
			Actor:       actor.Email,
		}); err != nil {
			return err
		}

		if err := s.audit.Record(ctx, tx, models.AuditEntry{
			TenantID:    tenantID,
			Actor:       actor,
			Action:      models.ActionUnassign,
			EntityType:  models.EntityAggregate,
			EntityID:    strconv.FormatInt(a.ID, 10),
			OldValues:   before,
			NewValues:   a.Snapshot(),
			Description: fmt.Sprintf("Aggregate %s removed from wagon %d", a.AggregateNumber, oldWagonID),
		}); err != nil {
			return err
		}

		changed = true
		return nil
	})
	if err != nil {
		return nil, s.fail(ctx, "unassign", err)
	}

	if changed {
		s.invalidate(ctx, tenantID)
	}
	return result, nil
}

// Replace moves the wagon of the old aggregate to the new one. The old aggregate goes to the
// spare pool in maintenance. A caller racing another Replace on the same old aggregate
// finds it detached after acquiring the lock and gets a conflict.
func (s *aggregateService) Replace(ctx context.Context, tenantID string, actor models.Actor, req ReplaceRequest) (*ReplaceResult, error) {
	if req.OldAggregateID <= 0 || req.NewAggregateID <= 0 {
		return nil, common.Validation("old_aggregate_id", "old_aggregate_id and new_aggregate_id are required")
	}
	if req.OldAggregateID == req.NewAggregateID {
		return nil, common.Validation("new_aggregate_id", "new_aggregate_id must differ from old_aggregate_id")
	}

	var result *ReplaceResult
	err := s.gateway.WithTransaction(ctx, func(tx pgx.Tx) error {
		aggregates := s.aggregates.WithTx(tx)

		locked, err := aggregates.LockByIDs(ctx, tenantID, req.OldAggregateID, req.NewAggregateID)
		if err != nil {
			return err
		}
		oldAgg, ok := locked[req.OldAggregateID]
		if !ok {
			return aggregateNotFound(req.OldAggregateID)
		}
		newAgg, ok := locked[req.NewAggregateID]
		if !ok {
			return aggregateNotFound(req.NewAggregateID)
		}
		if !oldAgg.Attached() {
			return common.Conflict(fmt.Sprintf("aggregate %d is not attached to a wagon", oldAgg.ID))
		}
		if newAgg.Attached() {
			return common.Conflict(fmt.Sprintf("aggregate %d is already attached to wagon %d", newAgg.ID, *newAgg.CurrentWagonID))
		}

		wagonID := *oldAgg.CurrentWagonID
		before := models.JSONB{"old_aggregate": oldAgg.Snapshot(), "new_aggregate": newAgg.Snapshot()}

		if err := aggregates.SetAttachment(ctx, tenantID, oldAgg.ID, nil, true, models.AggregateStatusMaintenance); err != nil {
			return err
		}
		oldAgg.CurrentWagonID = nil
		oldAgg.IsSpare = true
		oldAgg.Status = models.AggregateStatusMaintenance

		if err := aggregates.SetAttachment(ctx, tenantID, newAgg.ID, &wagonID, false, models.AggregateStatusOperational); err != nil {
			return err
		}
		newAgg.CurrentWagonID = &wagonID
		newAgg.IsSpare = false
		newAgg.Status = models.AggregateStatusOperational

		replacement := &models.AggregateReplacement{
			TenantID:       tenantID,
			OldAggregateID: oldAgg.ID,
			NewAggregateID: newAgg.ID,
			WagonID:        wagonID,
			Reason:         req.Reason,
			Actor:          actor.Email,
		}
		if err := s.history.WithTx(tx).CreateReplacement(ctx, replacement); err != nil {
			return err
		}

		if err := s.audit.Record(ctx, tx, models.AuditEntry{
			TenantID:    tenantID,
			Actor:       actor,
			Action:      models.ActionReplace,
			EntityType:  models.EntityAggregate,
			EntityID:    strconv.FormatInt(oldAgg.ID, 10),
			OldValues:   before,
			NewValues:   models.JSONB{"old_aggregate": oldAgg.Snapshot(), "new_aggregate": newAgg.Snapshot()},
			Description: fmt.Sprintf("Aggregate %s replaced by %s on wagon %d: %s", oldAgg.AggregateNumber, newAgg.AggregateNumber, wagonID, req.Reason),
		}); err != nil {
			return err
		}

		result = &ReplaceResult{Old: oldAgg, New: newAgg, Replacement: replacement}
		return nil
	})
	if err != nil {
		return nil, s.fail(ctx, "replace", err)
	}

	s.invalidate(ctx, tenantID)
	return result, nil
}

// Swap exchanges the wagon references of two aggregates. Spare flag and status change only
// for an aggregate whose attachment changes, so swapping twice restores the original state.
func (s *aggregateService) Swap(ctx context.Context, tenantID string, actor models.Actor, aggregateID, targetID int64) (*SwapResult, error) {
	if targetID <= 0 {
		return nil, common.Validation("target_aggregate_id", "target_aggregate_id must be a positive integer")
	}
	if aggregateID == targetID {
		return nil, common.Validation("target_aggregate_id", "cannot swap an aggregate with itself")
	}

	var result *SwapResult
	changed := false

	err := s.gateway.WithTransaction(ctx, func(tx pgx.Tx) error {
		aggregates := s.aggregates.WithTx(tx)

		locked, err := aggregates.LockByIDs(ctx, tenantID, aggregateID, targetID)
		if err != nil {
			return err
		}
		a, ok := locked[aggregateID]
		if !ok {
			return aggregateNotFound(aggregateID)
		}
		b, ok := locked[targetID]
		if !ok {
			return aggregateNotFound(targetID)
		}
		result = &SwapResult{Aggregate: a, Target: b}

		if sameWagon(a.CurrentWagonID, b.CurrentWagonID) {
			return nil
		}

		before := models.JSONB{"aggregate": a.Snapshot(), "target": b.Snapshot()}
		wagonA, wagonB := a.CurrentWagonID, b.CurrentWagonID

		history := s.history.WithTx(tx)
		for _, move := range []struct {
			agg      *models.Aggregate
			from, to *int64
		}{
			{a, wagonA, wagonB},
			{b, wagonB, wagonA},
		} {
			status := statusAfterMove(move.agg.Status, move.from, move.to)
			if err := aggregates.SetAttachment(ctx, tenantID, move.agg.ID, move.to, move.to == nil, status); err != nil {
				return err
			}
			move.agg.CurrentWagonID = move.to
			move.agg.IsSpare = move.to == nil
			move.agg.Status = status

			if err := history.CreateLog(ctx, &models.AggregateLog{
				TenantID:    tenantID,
				AggregateID: move.agg.ID,
				Action:      models.ActionSwap,
				OldWagonID:  move.from,
				NewWagonID:  move.to,
				Actor:       actor.Email,
			}); err != nil {
				return err
			}
		}

		if err := s.audit.Record(ctx, tx, models.AuditEntry{
			TenantID:    tenantID,
			Actor:       actor,
			Action:      models.ActionSwap,
			EntityType:  models.EntityAggregate,
			EntityID:    strconv.FormatInt(a.ID, 10),
			OldValues:   before,
			NewValues:   models.JSONB{"aggregate": a.Snapshot(), "target": b.Snapshot()},
			Description: fmt.Sprintf("Aggregates %s and %s swapped", a.AggregateNumber, b.AggregateNumber),
		}); err != nil {
			return err
		}

		changed = true
		return nil
	})
	if err != nil {
		return nil, s.fail(ctx, "swap", err)
	}

	if changed {
		s.invalidate(ctx, tenantID)
	}
	return result, nil
}

// RecordReading updates the live values and appends the reading in one transaction
func (s *aggregateService) RecordReading(ctx context.Context, tenantID string, reading *models.SensorReading) error {
	if reading == nil {
		return common.Validation("reading", "reading is required")
	}
	if reading.Temperature == nil && reading.Pressure == nil && reading.Humidity == nil &&
		reading.PowerKW == nil && reading.ErrorCode == nil {
		return common.Validation("reading", "at least one measurement or error_code is required")
	}
	if reading.RecordedAt.IsZero() {
		reading.RecordedAt = time.Now().UTC()
	}
	reading.TenantID = tenantID

	err := s.gateway.WithTransaction(ctx, func(tx pgx.Tx) error {
		err := s.aggregates.WithTx(tx).UpdateLiveReading(ctx, tenantID, reading.AggregateID,
			reading.Temperature, reading.Pressure, reading.RecordedAt)
		if errors.Is(err, pgx.ErrNoRows) {
			return aggregateNotFound(reading.AggregateID)
		}
		if err != nil {
			return err
		}
		return s.readings.WithTx(tx).Create(ctx, reading)
	})
	if err != nil {
		return s.fail(ctx, "record reading", err)
	}
	return nil
}

// statusAfterMove keeps the status when the aggregate stays attached or stays detached
func statusAfterMove(current string, from, to *int64) string {
	switch {
	case to == nil && from != nil:
		if current == models.AggregateStatusMaintenance {
			return current
		}
		return models.AggregateStatusReserve
	case to != nil && from == nil:
		return models.AggregateStatusOperational
	default:
		return current
	}
}

func sameWagon(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func aggregateNotFound(id int64) error {
	return common.NotFound(fmt.Sprintf("aggregate %d", id))
}

// fail passes classified errors through and turns everything else into a transaction failure
func (s *aggregateService) fail(ctx context.Context, op string, err error) error {
	var appErr *common.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	if notFound := common.UnknownTenant(err); notFound != nil {
		return notFound
	}
	s.logger.Error("aggregate lifecycle transaction rolled back",
		zap.String("operation", op),
		zap.Error(err))
	return common.TransactionFailure(err)
}

func (s *aggregateService) invalidate(ctx context.Context, tenantID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateTenantCache(ctx, tenantID); err != nil {
		s.logger.Warn("failed to invalidate fleet cache", zap.String("tenant_id", tenantID), zap.Error(err))
	}
}
