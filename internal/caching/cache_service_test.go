package caching

import (
	"context"
	"testing"
	"time"

	"fleethvac/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (CacheService, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCacheServiceFromClient(client), mr
}

func TestTrainDetailRoundTripAndMiss(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	miss, err := cache.GetTrainDetail(ctx, "sj", 1)
	require.NoError(t, err)
	assert.Nil(t, miss)

	detail := &models.TrainDetail{
		Train:  models.Train{ID: 1, TenantID: "sj", TrainNumber: "X31-2001"},
		Wagons: []models.WagonDetail{{Wagon: models.Wagon{ID: 7, Position: 1, WagonType: "M43 Hytt"}}},
	}
	require.NoError(t, cache.SetTrainDetail(ctx, "sj", 0, detail, time.Minute))

	got, err := cache.GetTrainDetail(ctx, "sj", 1)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "X31-2001", got.TrainNumber)
	assert.Equal(t, "M43 Hytt", got.Wagons[0].WagonType)

	other, err := cache.GetTrainDetail(ctx, "mtr", 1)
	require.NoError(t, err)
	assert.Nil(t, other)
}

func TestTrainListExpires(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.SetTrainList(ctx, "sj", 0, []*models.TrainSummary{{WagonCount: 5}}, time.Minute))
	list, err := cache.GetTrainList(ctx, "sj")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	mr.FastForward(2 * time.Minute)
	list, err = cache.GetTrainList(ctx, "sj")
	require.NoError(t, err)
	assert.Nil(t, list)
}

func TestInvalidateTenantCacheOnlyTouchesTenant(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.SetTrainList(ctx, "sj", 0, []*models.TrainSummary{}, time.Minute))
	require.NoError(t, cache.SetTrainDetail(ctx, "sj", 0, &models.TrainDetail{Train: models.Train{ID: 2}}, time.Minute))
	require.NoError(t, cache.SetTrainList(ctx, "mtr", 0, []*models.TrainSummary{}, time.Minute))

	require.NoError(t, cache.InvalidateTenantCache(ctx, "sj"))

	assert.False(t, mr.Exists("fleethvac:sj:trains"))
	assert.False(t, mr.Exists("fleethvac:sj:train:2"))
	assert.True(t, mr.Exists("fleethvac:mtr:trains"))
}

func TestWriteAfterInvalidationIsDropped(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	generation, err := cache.Generation(ctx, "sj")
	require.NoError(t, err)
	assert.Equal(t, int64(0), generation)

	// a mutation commits between the read and the cache write
	require.NoError(t, cache.InvalidateTenantCache(ctx, "sj"))
	require.NoError(t, cache.SetTrainDetail(ctx, "sj", generation, &models.TrainDetail{Train: models.Train{ID: 3}}, time.Minute))
	assert.False(t, mr.Exists("fleethvac:sj:train:3"))

	generation, err = cache.Generation(ctx, "sj")
	require.NoError(t, err)
	assert.Equal(t, int64(1), generation)
	require.NoError(t, cache.SetTrainDetail(ctx, "sj", generation, &models.TrainDetail{Train: models.Train{ID: 3}}, time.Minute))
	got, err := cache.GetTrainDetail(ctx, "sj", 3)
	require.NoError(t, err)
	require.NotNil(t, got)

	require.NoError(t, cache.InvalidateTenantCache(ctx, "sj"))
	assert.False(t, mr.Exists("fleethvac:sj:train:3"))
	other, err := cache.Generation(ctx, "mtr")
	require.NoError(t, err)
	assert.Equal(t, int64(0), other)
}

func TestSetWithoutTTLPersists(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.SetTrainList(ctx, "sj", 0, []*models.TrainSummary{}, 0))
	assert.True(t, mr.Exists("fleethvac:sj:trains"))
	assert.Equal(t, time.Duration(0), mr.TTL("fleethvac:sj:trains"))
}

func TestIsRateLimited(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		limited, err := cache.IsRateLimited(ctx, "chat:a@b.se", 3, time.Minute)
		require.NoError(t, err)
		assert.False(t, limited)
	}
	limited, err := cache.IsRateLimited(ctx, "chat:a@b.se", 3, time.Minute)
	require.NoError(t, err)
	assert.True(t, limited)

	mr.FastForward(time.Minute + time.Second)
	limited, err = cache.IsRateLimited(ctx, "chat:a@b.se", 3, time.Minute)
	require.NoError(t, err)
	assert.False(t, limited)
}

func TestPingFailsWhenServerDown(t *testing.T) {
	cache, mr := newTestCache(t)
	require.NoError(t, cache.Ping(context.Background()))
	mr.Close()
	assert.Error(t, cache.Ping(context.Background()))
}
