package repositories

import (
	"context"
	"regexp"
	"testing"
	"time"

	"fleethvac/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrainRepo_ListWithCounts(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("FROM trains t WHERE t.tenant_id = $1 ORDER BY t.train_number")).
		WithArgs("sj").
		WillReturnRows(pgxmock.NewRows([]string{"id", "tenant_id", "train_number", "name", "operator", "status",
			"created_at", "updated_at", "wagon_count", "aggregate_count"}).
			AddRow(int64(1), "sj", "X31-2001", "Öresundståg", "SJ", "active", now, now, 5, 4))

	trains, err := NewTrainRepo(mock).List(context.Background(), "sj")
	require.NoError(t, err)
	require.Len(t, trains, 1)
	assert.Equal(t, "X31-2001", trains[0].TrainNumber)
	assert.Equal(t, 5, trains[0].WagonCount)
	assert.Equal(t, 4, trains[0].AggregateCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTrainRepo_CreateDuplicateNumber(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	dup := &pgconn.PgError{Code: "23505", ConstraintName: "trains_tenant_number_key"}
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO trains")).
		WithArgs("sj", "X31-2001", "", "", models.TrainStatusActive).
		WillReturnError(dup)

	err = NewTrainRepo(mock).Create(context.Background(), &models.Train{TenantID: "sj", TrainNumber: "X31-2001"})
	assert.ErrorAs(t, err, &dup)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTrainRepo_DeleteMissing(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM trains WHERE tenant_id = $1 AND id = $2")).
		WithArgs("sj", int64(9)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err = NewTrainRepo(mock).Delete(context.Background(), "sj", 9)
	assert.ErrorIs(t, err, errNoRowsAffected)
}

func TestWagonRepo_CreateForTrainAssignsPositions(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()
	now := time.Now().UTC()

	types := []string{"M43 Hytt", "M43 Salong", "T47 Salong"}
	for i, wt := range types {
		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO wagons")).
			WithArgs(int64(1), i+1, wt, "active").
			WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(100+i), now, now))
	}

	wagons, err := NewWagonRepo(mock).CreateForTrain(context.Background(), 1, types)
	require.NoError(t, err)
	require.Len(t, wagons, 3)
	for i, w := range wagons {
		assert.Equal(t, i+1, w.Position)
		assert.Equal(t, types[i], w.WagonType)
		assert.Equal(t, int64(100+i), w.ID)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWagonRepo_GetByIDScopesThroughTrain(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(regexp.QuoteMeta("JOIN trains t ON t.id = w.train_id WHERE t.tenant_id = $1 AND w.id = $2")).
		WithArgs("other", int64(7)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "train_id", "position", "wagon_type", "status", "created_at", "updated_at"}))

	_, err = NewWagonRepo(mock).GetByID(context.Background(), "other", 7)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTenantRepo_UpsertConfiguration(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()
	now := time.Now().UTC()

	cfg := &models.TrainConfiguration{TenantID: "sj", WagonTypes: []string{"M43 Hytt", "M45 Hytt"}}
	mock.ExpectQuery(regexp.QuoteMeta("ON CONFLICT (tenant_id) DO UPDATE")).
		WithArgs("sj", []string{"M43 Hytt", "M45 Hytt"}, []byte(nil)).
		WillReturnRows(pgxmock.NewRows([]string{"updated_at"}).AddRow(now))

	require.NoError(t, NewTenantRepo(mock).UpsertConfiguration(context.Background(), cfg))
	assert.Equal(t, now, cfg.UpdatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}
