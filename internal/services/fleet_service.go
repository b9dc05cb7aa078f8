package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"fleethvac/internal/caching"
	"fleethvac/internal/common"
	"fleethvac/internal/models"
	"fleethvac/internal/repositories"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const (
	defaultReadingsLimit = 100
	maxReadingsLimit     = 1000
)

type FleetService interface {
	ListTrains(ctx context.Context, tenantID string) ([]*models.TrainSummary, error)
	GetTrain(ctx context.Context, tenantID string, trainID int64) (*models.TrainDetail, error)
	ConfigureTrain(ctx context.Context, tenantID string, actor models.Actor, input models.ConfigureTrainInput) (*models.TrainDetail, error)
	UpdateTrain(ctx context.Context, tenantID string, actor models.Actor, trainID int64, update models.TrainUpdate) (*models.Train, error)
	DeleteTrain(ctx context.Context, tenantID string, actor models.Actor, trainID int64) error

	ListWagons(ctx context.Context, tenantID string, trainID int64) ([]models.Wagon, error)
	UpdateWagon(ctx context.Context, tenantID string, actor models.Actor, wagonID int64, update models.WagonUpdate) (*models.Wagon, error)

	ListAggregates(ctx context.Context, tenantID string, filter models.AggregateFilter) ([]*models.Aggregate, error)
	GetAggregate(ctx context.Context, tenantID string, aggregateID int64) (*models.Aggregate, error)
	CreateAggregate(ctx context.Context, tenantID string, actor models.Actor, aggregate *models.Aggregate) (*models.Aggregate, error)
	UpdateAggregate(ctx context.Context, tenantID string, actor models.Actor, aggregateID int64, update models.AggregateUpdate) (*models.Aggregate, error)
	ListSpare(ctx context.Context, tenantID string) ([]*models.Aggregate, error)
	ListReadings(ctx context.Context, tenantID string, aggregateID int64, limit int) ([]*models.SensorReading, error)
	History(ctx context.Context, tenantID string, aggregateID int64) (*models.AggregateHistory, error)

	// MaintenanceDue lists aggregates scheduled before dueBy or not serviced within the maintenance interval
	MaintenanceDue(ctx context.Context, tenantID string, dueBy time.Time) ([]*models.Aggregate, error)
}

// FleetOptions tunes read caching and the maintenance window
type FleetOptions struct {
	CacheTTL            time.Duration
	MaintenanceInterval time.Duration
}

type fleetService struct {
	gateway    *repositories.Gateway
	trains     repositories.TrainRepository
	wagons     repositories.WagonRepository
	aggregates repositories.AggregateRepository
	history    repositories.AggregateHistoryRepository
	readings   repositories.SensorReadingRepository
	tenants    repositories.TenantRepository
	audit      AuditRecorder
	cache      caching.CacheService
	opts       FleetOptions
	logger     *zap.Logger
}

func NewFleetService(
	gateway *repositories.Gateway,
	trains repositories.TrainRepository,
	wagons repositories.WagonRepository,
	aggregates repositories.AggregateRepository,
	history repositories.AggregateHistoryRepository,
	readings repositories.SensorReadingRepository,
	tenants repositories.TenantRepository,
	audit AuditRecorder,
	cache caching.CacheService,
	opts FleetOptions,
	logger *zap.Logger,
) FleetService {
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 5 * time.Minute
	}
	if opts.MaintenanceInterval <= 0 {
		opts.MaintenanceInterval = 180 * 24 * time.Hour
	}
	return &fleetService{
		gateway:    gateway,
		trains:     trains,
		wagons:     wagons,
		aggregates: aggregates,
		history:    history,
		readings:   readings,
		tenants:    tenants,
		audit:      audit,
		cache:      cache,
		opts:       opts,
		logger:     logger,
	}
}

func (s *fleetService) ListTrains(ctx context.Context, tenantID string) ([]*models.TrainSummary, error) {
	if s.cache != nil {
		cached, err := s.cache.GetTrainList(ctx, tenantID)
		if err != nil {
			s.logger.Warn("train list cache read failed", zap.String("tenant_id", tenantID), zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}
	generation, cacheable := s.cacheGeneration(ctx, tenantID)

	trains, err := s.trains.List(ctx, tenantID)
	if err != nil {
		return nil, common.Internal("failed to list trains", err)
	}

	if cacheable {
		if err := s.cache.SetTrainList(ctx, tenantID, generation, trains, s.opts.CacheTTL); err != nil {
			s.logger.Warn("train list cache write failed", zap.String("tenant_id", tenantID), zap.Error(err))
		}
	}
	return trains, nil
}

func (s *fleetService) GetTrain(ctx context.Context, tenantID string, trainID int64) (*models.TrainDetail, error) {
	if s.cache != nil {
		cached, err := s.cache.GetTrainDetail(ctx, tenantID, trainID)
		if err != nil {
			s.logger.Warn("train detail cache read failed", zap.Int64("train_id", trainID), zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}
	generation, cacheable := s.cacheGeneration(ctx, tenantID)

	train, err := s.trains.GetByID(ctx, tenantID, trainID)
	if err != nil {
		return nil, common.FromDBError(err, "train")
	}
	detail, err := s.buildTrainDetail(ctx, s.gateway.DB(), tenantID, train)
	if err != nil {
		return nil, common.Internal("failed to load train detail", err)
	}

	if cacheable {
		if err := s.cache.SetTrainDetail(ctx, tenantID, generation, detail, s.opts.CacheTTL); err != nil {
			s.logger.Warn("train detail cache write failed", zap.Int64("train_id", trainID), zap.Error(err))
		}
	}
	return detail, nil
}

func (s *fleetService) buildTrainDetail(ctx context.Context, db repositories.DBTX, tenantID string, train *models.Train) (*models.TrainDetail, error) {
	wagons, err := s.wagons.WithTx(db).ListByTrain(ctx, tenantID, train.ID)
	if err != nil {
		return nil, err
	}
	mounted, err := s.aggregates.WithTx(db).ListByTrain(ctx, tenantID, train.ID)
	if err != nil {
		return nil, err
	}

	byWagon := make(map[int64][]models.AggregateSummary, len(wagons))
	for _, a := range mounted {
		if a.CurrentWagonID == nil {
			continue
		}
		byWagon[*a.CurrentWagonID] = append(byWagon[*a.CurrentWagonID], models.AggregateSummary{
			ID:              a.ID,
			AggregateNumber: a.AggregateNumber,
			Type:            a.Type,
			Status:          a.Status,
		})
	}

	detail := &models.TrainDetail{Train: *train, Wagons: make([]models.WagonDetail, 0, len(wagons))}
	for _, w := range wagons {
		summaries := byWagon[w.ID]
		if summaries == nil {
			summaries = []models.AggregateSummary{}
		}
		detail.Wagons = append(detail.Wagons, models.WagonDetail{Wagon: w, Aggregates: summaries})
	}
	return detail, nil
}

// ConfigureTrain creates the train and its wagons in one transaction. Without explicit wagon types
// the tenant's configured default set is used.
func (s *fleetService) ConfigureTrain(ctx context.Context, tenantID string, actor models.Actor, input models.ConfigureTrainInput) (*models.TrainDetail, error) {
	input.TrainNumber = strings.TrimSpace(input.TrainNumber)
	if input.TrainNumber == "" {
		return nil, common.Validation("train_number", "train_number is required")
	}

	wagonTypes := input.WagonTypes
	if len(wagonTypes) == 0 {
		cfg, err := s.tenants.GetConfiguration(ctx, tenantID)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return nil, common.Internal("failed to load train configuration", err)
		}
		if cfg != nil {
			wagonTypes = cfg.WagonTypes
		}
	}
	wagonTypes, err := normalizeWagonTypes(wagonTypes)
	if err != nil {
		return nil, err
	}

	var detail *models.TrainDetail
	err = s.gateway.WithTransaction(ctx, func(tx pgx.Tx) error {
		train := &models.Train{
			TenantID:    tenantID,
			TrainNumber: input.TrainNumber,
			Name:        strings.TrimSpace(input.Name),
			Operator:    strings.TrimSpace(input.Operator),
			Status:      models.TrainStatusActive,
		}
		if err := s.trains.WithTx(tx).Create(ctx, train); err != nil {
			return common.FromDBError(err, "train "+input.TrainNumber)
		}

		wagons, err := s.wagons.WithTx(tx).CreateForTrain(ctx, train.ID, wagonTypes)
		if err != nil {
			return err
		}

		detail = &models.TrainDetail{Train: *train, Wagons: make([]models.WagonDetail, 0, len(wagons))}
		for _, w := range wagons {
			detail.Wagons = append(detail.Wagons, models.WagonDetail{Wagon: w, Aggregates: []models.AggregateSummary{}})
		}

		return s.audit.Record(ctx, tx, models.AuditEntry{
			TenantID:   tenantID,
			Actor:      actor,
			Action:     models.ActionConfigure,
			EntityType: models.EntityTrain,
			EntityID:   strconv.FormatInt(train.ID, 10),
			NewValues: models.JSONB{
				"train_number": train.TrainNumber,
				"name":         train.Name,
				"operator":     train.Operator,
				"wagon_types":  wagonTypes,
			},
			Description: fmt.Sprintf("Train %s configured with %d wagons", train.TrainNumber, len(wagons)),
		})
	})
	if err != nil {
		return nil, s.fail("configure train", err)
	}

	s.invalidate(ctx, tenantID)
	return detail, nil
}

func (s *fleetService) UpdateTrain(ctx context.Context, tenantID string, actor models.Actor, trainID int64, update models.TrainUpdate) (*models.Train, error) {
	if update.Status != nil && !validTrainStatus(*update.Status) {
		return nil, common.Validation("status", "status must be one of active, maintenance, retired")
	}

	var train *models.Train
	err := s.gateway.WithTransaction(ctx, func(tx pgx.Tx) error {
		trains := s.trains.WithTx(tx)
		current, err := trains.GetByID(ctx, tenantID, trainID)
		if err != nil {
			return common.FromDBError(err, "train")
		}
		before := trainSnapshot(current)

		if update.Name != nil {
			current.Name = strings.TrimSpace(*update.Name)
		}
		if update.Operator != nil {
			current.Operator = strings.TrimSpace(*update.Operator)
		}
		if update.Status != nil {
			current.Status = *update.Status
		}
		if err := trains.Update(ctx, current); err != nil {
			return common.FromDBError(err, "train")
		}

		train = current
		return s.audit.Record(ctx, tx, models.AuditEntry{
			TenantID:    tenantID,
			Actor:       actor,
			Action:      models.ActionUpdate,
			EntityType:  models.EntityTrain,
			EntityID:    strconv.FormatInt(current.ID, 10),
			OldValues:   before,
			NewValues:   trainSnapshot(current),
			Description: fmt.Sprintf("Train %s updated", current.TrainNumber),
		})
	})
	if err != nil {
		return nil, s.fail("update train", err)
	}

	s.invalidate(ctx, tenantID)
	return train, nil
}

// DeleteTrain returns mounted aggregates to the spare pool before removing the train and its wagons
func (s *fleetService) DeleteTrain(ctx context.Context, tenantID string, actor models.Actor, trainID int64) error {
	err := s.gateway.WithTransaction(ctx, func(tx pgx.Tx) error {
		trains := s.trains.WithTx(tx)
		train, err := trains.GetByID(ctx, tenantID, trainID)
		if err != nil {
			return common.FromDBError(err, "train")
		}

		detached, err := s.aggregates.WithTx(tx).DetachByTrain(ctx, tenantID, trainID)
		if err != nil {
			return err
		}
		detachedIDs := make([]int64, 0, len(detached))
		history := s.history.WithTx(tx)
		for _, d := range detached {
			wagonID := d.WagonID
			if err := history.CreateLog(ctx, &models.AggregateLog{
				TenantID:    tenantID,
				AggregateID: d.AggregateID,
				Action:      models.ActionUnassign,
				OldWagonID:  &wagonID,
				Actor:       actor.Email,
			}); err != nil {
				return err
			}
			detachedIDs = append(detachedIDs, d.AggregateID)
		}
		if err := trains.Delete(ctx, tenantID, trainID); err != nil {
			return common.FromDBError(err, "train")
		}

		return s.audit.Record(ctx, tx, models.AuditEntry{
			TenantID:    tenantID,
			Actor:       actor,
			Action:      models.ActionDelete,
			EntityType:  models.EntityTrain,
			EntityID:    strconv.FormatInt(trainID, 10),
			OldValues:   trainSnapshot(train),
			NewValues:   models.JSONB{"detached_aggregates": detachedIDs},
			Description: fmt.Sprintf("Train %s deleted, %d aggregates returned to spare pool", train.TrainNumber, len(detached)),
		})
	})
	if err != nil {
		return s.fail("delete train", err)
	}

	s.invalidate(ctx, tenantID)
	return nil
}

func (s *fleetService) ListWagons(ctx context.Context, tenantID string, trainID int64) ([]models.Wagon, error) {
	if _, err := s.trains.GetByID(ctx, tenantID, trainID); err != nil {
		return nil, common.FromDBError(err, "train")
	}
	wagons, err := s.wagons.ListByTrain(ctx, tenantID, trainID)
	if err != nil {
		return nil, common.Internal("failed to list wagons", err)
	}
	return wagons, nil
}

func (s *fleetService) UpdateWagon(ctx context.Context, tenantID string, actor models.Actor, wagonID int64, update models.WagonUpdate) (*models.Wagon, error) {
	if update.WagonType != nil && strings.TrimSpace(*update.WagonType) == "" {
		return nil, common.Validation("wagon_type", "wagon_type cannot be empty")
	}
	if update.Status != nil && !validTrainStatus(*update.Status) {
		return nil, common.Validation("status", "status must be one of active, maintenance, retired")
	}

	var wagon *models.Wagon
	err := s.gateway.WithTransaction(ctx, func(tx pgx.Tx) error {
		wagons := s.wagons.WithTx(tx)
		current, err := wagons.GetByID(ctx, tenantID, wagonID)
		if err != nil {
			return common.FromDBError(err, "wagon")
		}
		before := models.JSONB{"wagon_type": current.WagonType, "status": current.Status}

		if update.WagonType != nil {
			current.WagonType = strings.TrimSpace(*update.WagonType)
		}
		if update.Status != nil {
			current.Status = *update.Status
		}
		if err := wagons.Update(ctx, tenantID, current); err != nil {
			return common.FromDBError(err, "wagon")
		}

		wagon = current
		return s.audit.Record(ctx, tx, models.AuditEntry{
			TenantID:    tenantID,
			Actor:       actor,
			Action:      models.ActionUpdate,
			EntityType:  models.EntityWagon,
			EntityID:    strconv.FormatInt(current.ID, 10),
			OldValues:   before,
			NewValues:   models.JSONB{"wagon_type": current.WagonType, "status": current.Status},
			Description: fmt.Sprintf("Wagon %d at position %d updated", current.ID, current.Position),
		})
	})
	if err != nil {
		return nil, s.fail("update wagon", err)
	}

	s.invalidate(ctx, tenantID)
	return wagon, nil
}

func (s *fleetService) ListAggregates(ctx context.Context, tenantID string, filter models.AggregateFilter) ([]*models.Aggregate, error) {
	if filter.Status != nil && !validAggregateStatus(*filter.Status) {
		return nil, common.Validation("status", "status must be one of operational, maintenance, reserve")
	}
	if filter.Limit > 0 || filter.Offset > 0 {
		limit, offset, err := common.ValidatePaginationParams(filter.Limit, filter.Offset)
		if err != nil {
			return nil, common.Validation("offset", err.Error())
		}
		filter.Limit, filter.Offset = limit, offset
	}

	aggregates, err := s.aggregates.List(ctx, tenantID, filter)
	if err != nil {
		return nil, common.Internal("failed to list aggregates", err)
	}
	return aggregates, nil
}

func (s *fleetService) GetAggregate(ctx context.Context, tenantID string, aggregateID int64) (*models.Aggregate, error) {
	a, err := s.aggregates.GetByID(ctx, tenantID, aggregateID)
	if err != nil {
		return nil, common.FromDBError(err, "aggregate")
	}
	return a, nil
}

// CreateAggregate always registers the unit in the spare pool; mounting goes through Assign
func (s *fleetService) CreateAggregate(ctx context.Context, tenantID string, actor models.Actor, aggregate *models.Aggregate) (*models.Aggregate, error) {
	aggregate.AggregateNumber = strings.TrimSpace(aggregate.AggregateNumber)
	if aggregate.AggregateNumber == "" {
		return nil, common.Validation("aggregate_number", "aggregate_number is required")
	}
	if aggregate.Type == "" {
		aggregate.Type = models.AggregateTypeCombined
	}
	if !validAggregateType(aggregate.Type) {
		return nil, common.Validation("type", "type must be one of cooling, heating, combined")
	}

	aggregate.TenantID = tenantID
	aggregate.CurrentWagonID = nil
	aggregate.IsSpare = true
	aggregate.Status = models.AggregateStatusReserve

	err := s.gateway.WithTransaction(ctx, func(tx pgx.Tx) error {
		if err := s.aggregates.WithTx(tx).Create(ctx, aggregate); err != nil {
			return common.FromDBError(err, "aggregate "+aggregate.AggregateNumber)
		}
		return s.audit.Record(ctx, tx, models.AuditEntry{
			TenantID:    tenantID,
			Actor:       actor,
			Action:      models.ActionCreate,
			EntityType:  models.EntityAggregate,
			EntityID:    strconv.FormatInt(aggregate.ID, 10),
			NewValues:   aggregate.Snapshot(),
			Description: fmt.Sprintf("Aggregate %s registered", aggregate.AggregateNumber),
		})
	})
	if err != nil {
		return nil, s.fail("create aggregate", err)
	}
	return aggregate, nil
}

func (s *fleetService) UpdateAggregate(ctx context.Context, tenantID string, actor models.Actor, aggregateID int64, update models.AggregateUpdate) (*models.Aggregate, error) {
	if update.Type != nil && !validAggregateType(*update.Type) {
		return nil, common.Validation("type", "type must be one of cooling, heating, combined")
	}
	if update.Status != nil && !validAggregateStatus(*update.Status) {
		return nil, common.Validation("status", "status must be one of operational, maintenance, reserve")
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
		before := a.Snapshot()

		if update.Status != nil {
			if *update.Status == models.AggregateStatusReserve && a.Attached() {
				return common.Conflict("an attached aggregate cannot be put in reserve; unassign it first")
			}
			if *update.Status == models.AggregateStatusOperational && !a.Attached() {
				return common.Conflict("a spare aggregate becomes operational by assigning it to a wagon")
			}
			a.Status = *update.Status
		}
		if update.Type != nil {
			a.Type = *update.Type
		}
		if update.TemperatureSetpoint != nil {
			a.TemperatureSetpoint = update.TemperatureSetpoint
		}
		if update.PressureSetpoint != nil {
			a.PressureSetpoint = update.PressureSetpoint
		}
		if update.LastMaintenanceAt != nil {
			a.LastMaintenanceAt = update.LastMaintenanceAt
		}
		if update.NextMaintenanceAt != nil {
			a.NextMaintenanceAt = update.NextMaintenanceAt
		}
		if err := aggregates.Update(ctx, a); err != nil {
			return err
		}

		after := a.Snapshot()
		after["temperature_setpoint"] = a.TemperatureSetpoint
		after["pressure_setpoint"] = a.PressureSetpoint

		result = a
		return s.audit.Record(ctx, tx, models.AuditEntry{
			TenantID:    tenantID,
			Actor:       actor,
			Action:      models.ActionUpdate,
			EntityType:  models.EntityAggregate,
			EntityID:    strconv.FormatInt(a.ID, 10),
			OldValues:   before,
			NewValues:   after,
			Description: fmt.Sprintf("Aggregate %s updated", a.AggregateNumber),
		})
	})
	if err != nil {
		return nil, s.fail("update aggregate", err)
	}

	s.invalidate(ctx, tenantID)
	return result, nil
}

func (s *fleetService) ListSpare(ctx context.Context, tenantID string) ([]*models.Aggregate, error) {
	spares, err := s.aggregates.ListSpare(ctx, tenantID)
	if err != nil {
		return nil, common.Internal("failed to list spare aggregates", err)
	}
	return spares, nil
}

func (s *fleetService) ListReadings(ctx context.Context, tenantID string, aggregateID int64, limit int) ([]*models.SensorReading, error) {
	switch {
	case limit <= 0:
		limit = defaultReadingsLimit
	case limit > maxReadingsLimit:
		limit = maxReadingsLimit
	}
	if _, err := s.aggregates.GetByID(ctx, tenantID, aggregateID); err != nil {
		return nil, common.FromDBError(err, "aggregate")
	}
	readings, err := s.readings.ListByAggregate(ctx, tenantID, aggregateID, limit)
	if err != nil {
		return nil, common.Internal("failed to list sensor readings", err)
	}
	return readings, nil
}

func (s *fleetService) History(ctx context.Context, tenantID string, aggregateID int64) (*models.AggregateHistory, error) {
	if _, err := s.aggregates.GetByID(ctx, tenantID, aggregateID); err != nil {
		return nil, common.FromDBError(err, "aggregate")
	}
	logs, err := s.history.ListLogs(ctx, tenantID, aggregateID)
	if err != nil {
		return nil, common.Internal("failed to load aggregate logs", err)
	}
	replacements, err := s.history.ListReplacements(ctx, tenantID, aggregateID)
	if err != nil {
		return nil, common.Internal("failed to load aggregate replacements", err)
	}
	return &models.AggregateHistory{AggregateID: aggregateID, Logs: logs, Replacements: replacements}, nil
}

func (s *fleetService) MaintenanceDue(ctx context.Context, tenantID string, dueBy time.Time) ([]*models.Aggregate, error) {
	if dueBy.IsZero() {
		dueBy = time.Now().UTC()
	}
	due, err := s.aggregates.ListMaintenanceDue(ctx, tenantID, dueBy, dueBy.Add(-s.opts.MaintenanceInterval))
	if err != nil {
		return nil, common.Internal("failed to list aggregates due for maintenance", err)
	}
	return due, nil
}

func (s *fleetService) fail(op string, err error) error {
	var appErr *common.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	if notFound := common.UnknownTenant(err); notFound != nil {
		return notFound
	}
	s.logger.Error("fleet transaction rolled back", zap.String("operation", op), zap.Error(err))
	return common.TransactionFailure(err)
}

// cacheGeneration must be read before the database so a concurrent invalidation voids the write
func (s *fleetService) cacheGeneration(ctx context.Context, tenantID string) (int64, bool) {
	if s.cache == nil {
		return 0, false
	}
	generation, err := s.cache.Generation(ctx, tenantID)
	if err != nil {
		s.logger.Warn("fleet cache generation read failed", zap.String("tenant_id", tenantID), zap.Error(err))
		return 0, false
	}
	return generation, true
}

func (s *fleetService) invalidate(ctx context.Context, tenantID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateTenantCache(ctx, tenantID); err != nil {
		s.logger.Warn("failed to invalidate fleet cache", zap.String("tenant_id", tenantID), zap.Error(err))
	}
}

func normalizeWagonTypes(types []string) ([]string, error) {
	if len(types) == 0 {
		return nil, common.Validation("wagon_types", "at least one wagon type is required")
	}
	out := make([]string, 0, len(types))
	for i, t := range types {
		t = strings.TrimSpace(t)
		if t == "" {
			return nil, common.Validation("wagon_types", fmt.Sprintf("wagon type at position %d is empty", i+1))
		}
		out = append(out, t)
	}
	return out, nil
}

func trainSnapshot(t *models.Train) models.JSONB {
	return models.JSONB{
		"train_number": t.TrainNumber,
		"name":         t.Name,
		"operator":     t.Operator,
		"status":       t.Status,
	}
}

func validTrainStatus(status string) bool {
	switch status {
	case models.TrainStatusActive, models.TrainStatusMaintenance, models.TrainStatusRetired:
		return true
	}
	return false
}

func validAggregateStatus(status string) bool {
	switch status {
	case models.AggregateStatusOperational, models.AggregateStatusMaintenance, models.AggregateStatusReserve:
		return true
	}
	return false
}

func validAggregateType(t string) bool {
	switch t {
	case models.AggregateTypeCooling, models.AggregateTypeHeating, models.AggregateTypeCombined:
		return true
	}
	return false
}
