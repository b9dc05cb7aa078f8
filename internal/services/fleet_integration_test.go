//go:build integration

package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"fleethvac/internal/caching"
	"fleethvac/internal/common"
	"fleethvac/internal/models"
	"fleethvac/internal/repositories"
	"fleethvac/internal/services"
	"fleethvac/testhelpers"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

type FleetIntegrationSuite struct {
	suite.Suite
	db        *testhelpers.TestDB
	fleet     services.FleetService
	lifecycle services.AggregateService
	audit     services.AuditLogsService
	actor     models.Actor
	ctx       context.Context
}

func (suite *FleetIntegrationSuite) SetupTest() {
	suite.db = testhelpers.NewTestDB(suite.T())
	suite.db.SeedTenant(suite.T(), "sj", "SJ")
	suite.db.SeedTenant(suite.T(), "mtr", "MTR")

	mr := miniredis.RunT(suite.T())
	cache := caching.NewCacheServiceFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))

	pool := suite.db.Pool
	gateway := repositories.NewGateway(pool)
	aggregates := repositories.NewAggregateRepo(pool)
	wagons := repositories.NewWagonRepo(pool)
	history := repositories.NewAggregateHistoryRepo(pool)
	readings := repositories.NewSensorReadingRepo(pool)

	suite.audit = services.NewAuditLogsService(repositories.NewAuditLogsRepo(pool))
	suite.fleet = services.NewFleetService(gateway, repositories.NewTrainRepo(pool), wagons, aggregates, history,
		readings, repositories.NewTenantRepo(pool), suite.audit, cache, services.FleetOptions{}, zap.NewNop())
	suite.lifecycle = services.NewAggregateService(gateway, aggregates, wagons, history, readings, suite.audit, cache, zap.NewNop())
	suite.actor = models.Actor{Email: "tech@sj.se", Name: "Technician"}
	suite.ctx = context.Background()
}

func TestFleetIntegrationSuite(t *testing.T) {
	suite.Run(t, new(FleetIntegrationSuite))
}

func (suite *FleetIntegrationSuite) configureX31() *models.TrainDetail {
	detail, err := suite.fleet.ConfigureTrain(suite.ctx, "sj", suite.actor, models.ConfigureTrainInput{
		TrainNumber: "X31-2001",
		Name:        "Öresundståg",
		WagonTypes:  []string{"M43 Hytt", "M43 Salong", "T47 Salong", "M45 Salong", "M45 Hytt"},
	})
	require.NoError(suite.T(), err)
	return detail
}

func (suite *FleetIntegrationSuite) TestConfigureTrain_WagonsOrderedByPosition() {
	created := suite.configureX31()

	detail, err := suite.fleet.GetTrain(suite.ctx, "sj", created.ID)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), detail.Wagons, 5)
	for i, w := range detail.Wagons {
		assert.Equal(suite.T(), i+1, w.Position)
		assert.Empty(suite.T(), w.Aggregates)
	}
	assert.Equal(suite.T(), "M43 Hytt", detail.Wagons[0].WagonType)
	assert.Equal(suite.T(), "M45 Hytt", detail.Wagons[4].WagonType)

	_, err = suite.fleet.ConfigureTrain(suite.ctx, "sj", suite.actor, models.ConfigureTrainInput{
		TrainNumber: "X31-2001",
		WagonTypes:  []string{"A"},
	})
	assert.Equal(suite.T(), common.KindConflict, common.KindOf(err))
}

func (suite *FleetIntegrationSuite) TestTrainsInvisibleToOtherTenants() {
	created := suite.configureX31()

	_, err := suite.fleet.GetTrain(suite.ctx, "mtr", created.ID)
	assert.Equal(suite.T(), common.KindNotFound, common.KindOf(err))

	trains, err := suite.fleet.ListTrains(suite.ctx, "mtr")
	require.NoError(suite.T(), err)
	assert.Empty(suite.T(), trains)
}

func (suite *FleetIntegrationSuite) TestReplace_SwapsMountAndSparePool() {
	train := suite.configureX31()
	wagonID := train.Wagons[0].ID

	oldAgg, err := suite.fleet.CreateAggregate(suite.ctx, "sj", suite.actor, &models.Aggregate{AggregateNumber: "AGG-10"})
	require.NoError(suite.T(), err)
	newAgg, err := suite.fleet.CreateAggregate(suite.ctx, "sj", suite.actor, &models.Aggregate{AggregateNumber: "AGG-20"})
	require.NoError(suite.T(), err)

	_, err = suite.lifecycle.Assign(suite.ctx, "sj", suite.actor, oldAgg.ID, wagonID)
	require.NoError(suite.T(), err)

	// warm the cache so the replacement has to invalidate it
	_, err = suite.fleet.GetTrain(suite.ctx, "sj", train.ID)
	require.NoError(suite.T(), err)

	result, err := suite.lifecycle.Replace(suite.ctx, "sj", suite.actor, services.ReplaceRequest{
		OldAggregateID: oldAgg.ID,
		NewAggregateID: newAgg.ID,
		Reason:         "compressor failure",
	})
	require.NoError(suite.T(), err)
	assert.True(suite.T(), result.Old.IsSpare)
	assert.Nil(suite.T(), result.Old.CurrentWagonID)
	require.NotNil(suite.T(), result.New.CurrentWagonID)
	assert.Equal(suite.T(), wagonID, *result.New.CurrentWagonID)

	spares, err := suite.fleet.ListSpare(suite.ctx, "sj")
	require.NoError(suite.T(), err)
	require.Len(suite.T(), spares, 1)
	assert.Equal(suite.T(), "AGG-10", spares[0].AggregateNumber)

	detail, err := suite.fleet.GetTrain(suite.ctx, "sj", train.ID)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), detail.Wagons[0].Aggregates, 1)
	assert.Equal(suite.T(), "AGG-20", detail.Wagons[0].Aggregates[0].AggregateNumber)

	history, err := suite.fleet.History(suite.ctx, "sj", newAgg.ID)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), history.Replacements, 1)
	assert.Equal(suite.T(), "compressor failure", history.Replacements[0].Reason)

	logs, total, err := suite.audit.ListAuditLogs(suite.ctx, "sj", nil)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), len(logs), total)
	assert.GreaterOrEqual(suite.T(), total, 5)
}

func (suite *FleetIntegrationSuite) TestReplace_RejectsMountedReplacement() {
	train := suite.configureX31()

	first, err := suite.fleet.CreateAggregate(suite.ctx, "sj", suite.actor, &models.Aggregate{AggregateNumber: "AGG-1"})
	require.NoError(suite.T(), err)
	second, err := suite.fleet.CreateAggregate(suite.ctx, "sj", suite.actor, &models.Aggregate{AggregateNumber: "AGG-2"})
	require.NoError(suite.T(), err)
	_, err = suite.lifecycle.Assign(suite.ctx, "sj", suite.actor, first.ID, train.Wagons[0].ID)
	require.NoError(suite.T(), err)
	_, err = suite.lifecycle.Assign(suite.ctx, "sj", suite.actor, second.ID, train.Wagons[1].ID)
	require.NoError(suite.T(), err)

	_, err = suite.lifecycle.Replace(suite.ctx, "sj", suite.actor, services.ReplaceRequest{
		OldAggregateID: first.ID,
		NewAggregateID: second.ID,
	})
	require.Error(suite.T(), err)

	spares, err := suite.fleet.ListSpare(suite.ctx, "sj")
	require.NoError(suite.T(), err)
	assert.Empty(suite.T(), spares)
}

func (suite *FleetIntegrationSuite) mountPair(train *models.TrainDetail) (*models.Aggregate, *models.Aggregate) {
	a, err := suite.fleet.CreateAggregate(suite.ctx, "sj", suite.actor, &models.Aggregate{AggregateNumber: "AGG-A"})
	require.NoError(suite.T(), err)
	b, err := suite.fleet.CreateAggregate(suite.ctx, "sj", suite.actor, &models.Aggregate{AggregateNumber: "AGG-B"})
	require.NoError(suite.T(), err)
	_, err = suite.lifecycle.Assign(suite.ctx, "sj", suite.actor, a.ID, train.Wagons[0].ID)
	require.NoError(suite.T(), err)
	_, err = suite.lifecycle.Assign(suite.ctx, "sj", suite.actor, b.ID, train.Wagons[1].ID)
	require.NoError(suite.T(), err)
	return a, b
}

func (suite *FleetIntegrationSuite) TestSwap_TwiceRestoresPositions() {
	train := suite.configureX31()
	a, b := suite.mountPair(train)
	w1, w2 := train.Wagons[0].ID, train.Wagons[1].ID

	result, err := suite.lifecycle.Swap(suite.ctx, "sj", suite.actor, a.ID, b.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), w2, *result.Aggregate.CurrentWagonID)
	assert.Equal(suite.T(), w1, *result.Target.CurrentWagonID)

	result, err = suite.lifecycle.Swap(suite.ctx, "sj", suite.actor, a.ID, b.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), w1, *result.Aggregate.CurrentWagonID)
	assert.Equal(suite.T(), w2, *result.Target.CurrentWagonID)
}

func (suite *FleetIntegrationSuite) TestReplace_ConcurrentCallsSucceedOnce() {
	train := suite.configureX31()
	old, err := suite.fleet.CreateAggregate(suite.ctx, "sj", suite.actor, &models.Aggregate{AggregateNumber: "AGG-OLD"})
	require.NoError(suite.T(), err)
	_, err = suite.lifecycle.Assign(suite.ctx, "sj", suite.actor, old.ID, train.Wagons[2].ID)
	require.NoError(suite.T(), err)

	candidates := make([]int64, 4)
	for i := range candidates {
		agg, err := suite.fleet.CreateAggregate(suite.ctx, "sj", suite.actor, &models.Aggregate{
			AggregateNumber: "AGG-NEW-" + string(rune('A'+i)),
		})
		require.NoError(suite.T(), err)
		candidates[i] = agg.ID
	}

	var wg sync.WaitGroup
	errs := make([]error, len(candidates))
	for i, id := range candidates {
		wg.Add(1)
		go func(i int, id int64) {
			defer wg.Done()
			_, errs[i] = suite.lifecycle.Replace(suite.ctx, "sj", suite.actor, services.ReplaceRequest{
				OldAggregateID: old.ID,
				NewAggregateID: id,
				Reason:         "fault",
			})
		}(i, id)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		}
	}
	assert.Equal(suite.T(), 1, succeeded)

	history, err := suite.fleet.History(suite.ctx, "sj", old.ID)
	require.NoError(suite.T(), err)
	assert.Len(suite.T(), history.Replacements, 1)

	mounted, err := suite.fleet.ListAggregates(suite.ctx, "sj", models.AggregateFilter{})
	require.NoError(suite.T(), err)
	onWagon := 0
	for _, agg := range mounted {
		assert.Equal(suite.T(), agg.CurrentWagonID == nil, agg.IsSpare)
		if agg.CurrentWagonID != nil && *agg.CurrentWagonID == train.Wagons[2].ID {
			onWagon++
		}
	}
	assert.Equal(suite.T(), 1, onWagon)
}

func (suite *FleetIntegrationSuite) TestRecordReading_OlderReadingKeepsLiveValues() {
	agg, err := suite.fleet.CreateAggregate(suite.ctx, "sj", suite.actor, &models.Aggregate{AggregateNumber: "AGG-LIVE"})
	require.NoError(suite.T(), err)
	newer := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	newTemp, oldTemp := 22.5, 17.0

	require.NoError(suite.T(), suite.lifecycle.RecordReading(suite.ctx, "sj", &models.SensorReading{
		AggregateID: agg.ID, RecordedAt: newer, Temperature: &newTemp,
	}))
	require.NoError(suite.T(), suite.lifecycle.RecordReading(suite.ctx, "sj", &models.SensorReading{
		AggregateID: agg.ID, RecordedAt: newer.Add(-10 * time.Minute), Temperature: &oldTemp,
	}))

	got, err := suite.fleet.GetAggregate(suite.ctx, "sj", agg.ID)
	require.NoError(suite.T(), err)
	require.NotNil(suite.T(), got.CurrentTemperature)
	assert.Equal(suite.T(), newTemp, *got.CurrentTemperature)
	assert.True(suite.T(), newer.Equal(*got.LastReadingAt))

	readings, err := suite.fleet.ListReadings(suite.ctx, "sj", agg.ID, 10)
	require.NoError(suite.T(), err)
	assert.Len(suite.T(), readings, 2)
}

func (suite *FleetIntegrationSuite) TestDeleteTrain_LogsEveryDetachedAggregate() {
	train := suite.configureX31()
	a, b := suite.mountPair(train)

	require.NoError(suite.T(), suite.fleet.DeleteTrain(suite.ctx, "sj", suite.actor, train.ID))

	for _, agg := range []*models.Aggregate{a, b} {
		history, err := suite.fleet.History(suite.ctx, "sj", agg.ID)
		require.NoError(suite.T(), err)
		require.NotEmpty(suite.T(), history.Logs)
		latest := history.Logs[0]
		assert.Equal(suite.T(), models.ActionUnassign, latest.Action)
		require.NotNil(suite.T(), latest.OldWagonID)
		assert.Nil(suite.T(), latest.NewWagonID)
	}

	spares, err := suite.fleet.ListSpare(suite.ctx, "sj")
	require.NoError(suite.T(), err)
	assert.Len(suite.T(), spares, 2)
}
