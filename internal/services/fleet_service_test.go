package services

import (
	"context"
	"regexp"
	"testing"
	"time"

	"fleethvac/internal/caching"
	"fleethvac/internal/common"
	"fleethvac/internal/models"
	"fleethvac/internal/repositories"

	"github.com/alicebob/miniredis/v2"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

var (
	getTrainSQL        = regexp.QuoteMeta("FROM trains WHERE tenant_id = $1 AND id = $2")
	listTrainsSQL      = regexp.QuoteMeta("FROM trains t WHERE t.tenant_id = $1 ORDER BY t.train_number")
	listWagonsSQL      = regexp.QuoteMeta("WHERE t.tenant_id = $1 AND w.train_id = $2 ORDER BY w.position")
	aggregatesByTrain  = regexp.QuoteMeta("WHERE a.tenant_id = $1 AND w.train_id = $2")
	getConfigSQL       = regexp.QuoteMeta("FROM train_configurations WHERE tenant_id = $1")
	insertTrainSQL     = regexp.QuoteMeta("INSERT INTO trains")
	insertWagonSQL     = regexp.QuoteMeta("INSERT INTO wagons")
	detachByTrainSQL   = regexp.QuoteMeta("SET current_wagon_id = NULL, is_spare = TRUE")
	deleteTrainSQL     = regexp.QuoteMeta("DELETE FROM trains WHERE tenant_id = $1 AND id = $2")
	insertAggregateSQL = regexp.QuoteMeta("INSERT INTO aggregates")
	maintenanceDueSQL  = regexp.QuoteMeta("next_maintenance_at <= $2")
)

var trainCols = []string{"id", "tenant_id", "train_number", "name", "operator", "status", "created_at", "updated_at"}

type FleetServiceTestSuite struct {
	suite.Suite
	mock    pgxmock.PgxPoolIface
	redis   *miniredis.Miniredis
	cache   caching.CacheService
	service FleetService
	tenant  string
	actor   models.Actor
	now     time.Time
	ctx     context.Context
}

func (suite *FleetServiceTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	require.NoError(suite.T(), err)
	suite.mock = mock
	suite.redis = miniredis.RunT(suite.T())
	suite.cache = caching.NewCacheServiceFromClient(redis.NewClient(&redis.Options{Addr: suite.redis.Addr()}))
	suite.tenant = "sj"
	suite.actor = models.Actor{Email: "planner@sj.se", Name: "Planner"}
	suite.now = time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	suite.ctx = context.Background()

	suite.service = NewFleetService(
		repositories.NewGateway(mock),
		repositories.NewTrainRepo(mock),
		repositories.NewWagonRepo(mock),
		repositories.NewAggregateRepo(mock),
		repositories.NewAggregateHistoryRepo(mock),
		repositories.NewSensorReadingRepo(mock),
		repositories.NewTenantRepo(mock),
		NewAuditLogsService(repositories.NewAuditLogsRepo(mock)),
		suite.cache,
		FleetOptions{CacheTTL: time.Minute, MaintenanceInterval: 24 * time.Hour},
		zap.NewNop(),
	)
}

func (suite *FleetServiceTestSuite) TearDownTest() {
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
	suite.mock.Close()
}

func TestFleetServiceTestSuite(t *testing.T) {
	suite.Run(t, new(FleetServiceTestSuite))
}

func (suite *FleetServiceTestSuite) expectAudit(action, entityType, entityID string) {
	suite.mock.ExpectQuery(insertAuditSQL).
		WithArgs(auditInsertArgs(suite.tenant, suite.actor.Email, suite.actor.Name, action, entityType, entityID)...).
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(suite.now))
}

func (suite *FleetServiceTestSuite) trainRow(id int64, number string) *pgxmock.Rows {
	return pgxmock.NewRows(trainCols).AddRow(id, suite.tenant, number, "Regina", "SJ", models.TrainStatusActive, suite.now, suite.now)
}

func (suite *FleetServiceTestSuite) TestListTrains_SecondCallServedFromCache() {
	suite.mock.ExpectQuery(listTrainsSQL).
		WithArgs(suite.tenant).
		WillReturnRows(pgxmock.NewRows(append(append([]string{}, trainCols...), "wagon_count", "aggregate_count")).
			AddRow(int64(1), suite.tenant, "X31-2001", "Regina", "SJ", "active", suite.now, suite.now, 3, 2))

	first, err := suite.service.ListTrains(suite.ctx, suite.tenant)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), first, 1)

	second, err := suite.service.ListTrains(suite.ctx, suite.tenant)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), second, 1)
	assert.Equal(suite.T(), "X31-2001", second[0].TrainNumber)
	assert.Equal(suite.T(), 2, second[0].AggregateCount)
}

func (suite *FleetServiceTestSuite) TestListTrains_CacheDownFallsBackToStore() {
	suite.redis.Close()
	suite.mock.ExpectQuery(listTrainsSQL).
		WithArgs(suite.tenant).
		WillReturnRows(pgxmock.NewRows(append(append([]string{}, trainCols...), "wagon_count", "aggregate_count")))

	trains, err := suite.service.ListTrains(suite.ctx, suite.tenant)
	require.NoError(suite.T(), err)
	assert.Empty(suite.T(), trains)
}

func (suite *FleetServiceTestSuite) TestGetTrain_GroupsAggregatesByWagon() {
	suite.mock.ExpectQuery(getTrainSQL).WithArgs(suite.tenant, int64(1)).WillReturnRows(suite.trainRow(1, "X31-2001"))
	suite.mock.ExpectQuery(listWagonsSQL).WithArgs(suite.tenant, int64(1)).
		WillReturnRows(pgxmock.NewRows(wagonCols).
			AddRow(int64(7), int64(1), 1, "M43 Hytt", "active", suite.now, suite.now).
			AddRow(int64(8), int64(1), 2, "M43 Salong", "active", suite.now, suite.now))
	suite.mock.ExpectQuery(aggregatesByTrain).WithArgs(suite.tenant, int64(1)).
		WillReturnRows(aggregateRows(
			aggregateRow(suite.now, 10, suite.tenant, "AG-10", int64Ptr(7), models.AggregateStatusOperational),
			aggregateRow(suite.now, 11, suite.tenant, "AG-11", int64Ptr(7), models.AggregateStatusMaintenance)))

	detail, err := suite.service.GetTrain(suite.ctx, suite.tenant, 1)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), detail.Wagons, 2)
	assert.Equal(suite.T(), 1, detail.Wagons[0].Position)
	assert.Len(suite.T(), detail.Wagons[0].Aggregates, 2)
	assert.NotNil(suite.T(), detail.Wagons[1].Aggregates)
	assert.Empty(suite.T(), detail.Wagons[1].Aggregates)

	cached, err := suite.cache.GetTrainDetail(suite.ctx, suite.tenant, 1)
	require.NoError(suite.T(), err)
	require.NotNil(suite.T(), cached)
	assert.Equal(suite.T(), "X31-2001", cached.TrainNumber)
}

func (suite *FleetServiceTestSuite) TestGetTrain_OtherTenantIsNotFound() {
	suite.mock.ExpectQuery(getTrainSQL).WithArgs("other", int64(1)).WillReturnRows(pgxmock.NewRows(trainCols))

	_, err := suite.service.GetTrain(suite.ctx, "other", 1)
	require.Error(suite.T(), err)
	assert.Equal(suite.T(), common.KindNotFound, common.KindOf(err))
}

func (suite *FleetServiceTestSuite) TestConfigureTrain_UsesTenantWagonTypes() {
	require.NoError(suite.T(), suite.cache.SetTrainList(suite.ctx, suite.tenant, 0, []*models.TrainSummary{}, time.Minute))

	suite.mock.ExpectQuery(getConfigSQL).WithArgs(suite.tenant).
		WillReturnRows(pgxmock.NewRows([]string{"tenant_id", "wagon_types", "custom_labels", "updated_at"}).
			AddRow(suite.tenant, []string{"M43 Hytt", "M45 Hytt"}, []byte(nil), suite.now))
	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(insertTrainSQL).
		WithArgs(suite.tenant, "X31-2002", "Regina", "SJ", models.TrainStatusActive).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(2), suite.now, suite.now))
	for i, wt := range []string{"M43 Hytt", "M45 Hytt"} {
		suite.mock.ExpectQuery(insertWagonSQL).
			WithArgs(int64(2), i+1, wt, "active").
			WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(20+i), suite.now, suite.now))
	}
	suite.expectAudit(models.ActionConfigure, models.EntityTrain, "2")
	suite.mock.ExpectCommit()

	detail, err := suite.service.ConfigureTrain(suite.ctx, suite.tenant, suite.actor, models.ConfigureTrainInput{
		TrainNumber: " X31-2002 ", Name: "Regina", Operator: "SJ",
	})
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(2), detail.ID)
	require.Len(suite.T(), detail.Wagons, 2)
	assert.Equal(suite.T(), 2, detail.Wagons[1].Position)
	assert.Equal(suite.T(), "M45 Hytt", detail.Wagons[1].WagonType)

	cached, err := suite.cache.GetTrainList(suite.ctx, suite.tenant)
	require.NoError(suite.T(), err)
	assert.Nil(suite.T(), cached)
}

func (suite *FleetServiceTestSuite) TestConfigureTrain_DuplicateNumberConflicts() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(insertTrainSQL).
		WithArgs(suite.tenant, "X31-2001", "", "", models.TrainStatusActive).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "trains_tenant_number_key"})
	suite.mock.ExpectRollback()

	_, err := suite.service.ConfigureTrain(suite.ctx, suite.tenant, suite.actor, models.ConfigureTrainInput{
		TrainNumber: "X31-2001", WagonTypes: []string{"M43 Hytt"},
	})
	require.Error(suite.T(), err)
	assert.Equal(suite.T(), common.KindConflict, common.KindOf(err))
}

func (suite *FleetServiceTestSuite) TestConfigureTrain_UnknownTenantNotFound() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(insertTrainSQL).
		WithArgs("ghost", "X31-2001", "", "", models.TrainStatusActive).
		WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "trains_tenant_id_fkey"})
	suite.mock.ExpectRollback()

	_, err := suite.service.ConfigureTrain(suite.ctx, "ghost", suite.actor, models.ConfigureTrainInput{
		TrainNumber: "X31-2001", WagonTypes: []string{"M43 Hytt"},
	})
	require.Error(suite.T(), err)
	assert.Equal(suite.T(), common.KindNotFound, common.KindOf(err))
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *FleetServiceTestSuite) TestConfigureTrain_Validation() {
	_, err := suite.service.ConfigureTrain(suite.ctx, suite.tenant, suite.actor, models.ConfigureTrainInput{WagonTypes: []string{"A"}})
	assert.Equal(suite.T(), common.KindValidation, common.KindOf(err))

	_, err = suite.service.ConfigureTrain(suite.ctx, suite.tenant, suite.actor, models.ConfigureTrainInput{
		TrainNumber: "X1", WagonTypes: []string{"A", "  "},
	})
	assert.Equal(suite.T(), common.KindValidation, common.KindOf(err))
}

func (suite *FleetServiceTestSuite) TestDeleteTrain_DetachesAggregatesFirst() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(getTrainSQL).WithArgs(suite.tenant, int64(1)).WillReturnRows(suite.trainRow(1, "X31-2001"))
	suite.mock.ExpectQuery(detachByTrainSQL).WithArgs(suite.tenant, int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "id"}).AddRow(int64(10), int64(7)).AddRow(int64(11), int64(8)))
	for _, d := range []struct{ aggregate, wagon int64 }{{10, 7}, {11, 8}} {
		suite.mock.ExpectQuery(insertLogSQL).
			WithArgs(suite.tenant, d.aggregate, models.ActionUnassign, int64Ptr(d.wagon), (*int64)(nil), suite.actor.Email).
			WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(d.aggregate+100, suite.now))
	}
	suite.mock.ExpectExec(deleteTrainSQL).WithArgs(suite.tenant, int64(1)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	suite.expectAudit(models.ActionDelete, models.EntityTrain, "1")
	suite.mock.ExpectCommit()

	require.NoError(suite.T(), suite.service.DeleteTrain(suite.ctx, suite.tenant, suite.actor, 1))
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *FleetServiceTestSuite) TestCreateAggregate_AlwaysSpare() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(insertAggregateSQL).
		WithArgs(suite.tenant, "AG-30", models.AggregateTypeCooling, models.AggregateStatusReserve, (*int64)(nil), true,
			(*float64)(nil), (*float64)(nil), (*time.Time)(nil), (*time.Time)(nil)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(30), suite.now, suite.now))
	suite.expectAudit(models.ActionCreate, models.EntityAggregate, "30")
	suite.mock.ExpectCommit()

	a, err := suite.service.CreateAggregate(suite.ctx, suite.tenant, suite.actor, &models.Aggregate{
		AggregateNumber: "AG-30", Type: models.AggregateTypeCooling, CurrentWagonID: int64Ptr(7),
		Status: models.AggregateStatusOperational,
	})
	require.NoError(suite.T(), err)
	assert.True(suite.T(), a.IsSpare)
	assert.Nil(suite.T(), a.CurrentWagonID)
	assert.Equal(suite.T(), models.AggregateStatusReserve, a.Status)
}

func (suite *FleetServiceTestSuite) TestUpdateAggregate_ReserveWhileAttachedConflicts() {
	reserve := models.AggregateStatusReserve
	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(lockAggregatesSQL).WithArgs(suite.tenant, []int64{10}).
		WillReturnRows(aggregateRows(aggregateRow(suite.now, 10, suite.tenant, "AG-10", int64Ptr(7), models.AggregateStatusOperational)))
	suite.mock.ExpectRollback()

	_, err := suite.service.UpdateAggregate(suite.ctx, suite.tenant, suite.actor, 10, models.AggregateUpdate{Status: &reserve})
	require.Error(suite.T(), err)
	assert.Equal(suite.T(), common.KindConflict, common.KindOf(err))
}

func (suite *FleetServiceTestSuite) TestUpdateAggregate_OperationalWhileSpareConflicts() {
	operational := models.AggregateStatusOperational
	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(lockAggregatesSQL).WithArgs(suite.tenant, []int64{10}).
		WillReturnRows(aggregateRows(aggregateRow(suite.now, 10, suite.tenant, "AG-10", nil, models.AggregateStatusReserve)))
	suite.mock.ExpectRollback()

	_, err := suite.service.UpdateAggregate(suite.ctx, suite.tenant, suite.actor, 10, models.AggregateUpdate{Status: &operational})
	require.Error(suite.T(), err)
	assert.Equal(suite.T(), common.KindConflict, common.KindOf(err))
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *FleetServiceTestSuite) TestMaintenanceDue_UsesInterval() {
	dueBy := suite.now
	suite.mock.ExpectQuery(maintenanceDueSQL).
		WithArgs(suite.tenant, dueBy, dueBy.Add(-24*time.Hour)).
		WillReturnRows(aggregateRows(aggregateRow(suite.now, 10, suite.tenant, "AG-10", nil, models.AggregateStatusMaintenance)))

	due, err := suite.service.MaintenanceDue(suite.ctx, suite.tenant, dueBy)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), due, 1)
	assert.Equal(suite.T(), "AG-10", due[0].AggregateNumber)
}

func (suite *FleetServiceTestSuite) TestHistory_UnknownAggregate() {
	suite.mock.ExpectQuery(regexp.QuoteMeta("FROM aggregates WHERE tenant_id = $1 AND id = $2")).
		WithArgs(suite.tenant, int64(404)).
		WillReturnRows(pgxmock.NewRows(aggregateCols))

	_, err := suite.service.History(suite.ctx, suite.tenant, 404)
	assert.Equal(suite.T(), common.KindNotFound, common.KindOf(err))
}
