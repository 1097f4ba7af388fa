package window

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2026, 10, 1, 18, 0, 0, 0, time.UTC)

func TestMemory_CountsOnlyInsideWindow(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	w := NewMemory(time.Hour)

	require.NoError(t, w.Add(ctx, "gate-1", "t1", base))
	require.NoError(t, w.Add(ctx, "gate-1", "t2", base.Add(30*time.Minute)))
	require.NoError(t, w.Add(ctx, "gate-1", "t3", base.Add(70*time.Minute)))
	require.NoError(t, w.Add(ctx, "gate-2", "t4", base.Add(70*time.Minute)))

	now := base.Add(75 * time.Minute)

	n, err := w.Count(ctx, "gate-1", now.Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	n, err = w.Count(ctx, "gate-2", now.Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = w.Count(ctx, "gate-3", now.Add(-time.Hour))
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestMemory_OutOfOrderAndPruning(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	w := NewMemory(time.Hour)

	require.NoError(t, w.Add(ctx, "gate-1", "t1", base.Add(10*time.Minute)))
	require.NoError(t, w.Add(ctx, "gate-1", "t2", base))
	require.NoError(t, w.Add(ctx, "gate-1", "t3", base.Add(5*time.Minute)))

	n, err := w.Count(ctx, "gate-1", base.Add(5*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	require.NoError(t, w.Add(ctx, "gate-1", "t4", base.Add(2*time.Hour)))

	n, err = w.Count(ctx, "gate-1", time.Time{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n, "entries older than the retention are dropped")
}

func TestRedis_Add(t *testing.T) {
	t.Parallel()

	db, mock := redismock.NewClientMock()
	defer mock.ClearExpect()

	w := NewRedis(db, time.Hour)
	key := "event_gate:gate:gate-1:checkins"

	mock.ExpectZAdd(key, redis.Z{Score: float64(base.UnixMilli()), Member: "ticket-1"}).SetVal(1)
	mock.ExpectZRemRangeByScore(key, "-inf", "("+strconv.FormatInt(base.Add(-time.Hour).UnixMilli(), 10)).SetVal(0)
	mock.ExpectExpire(key, 2*time.Hour).SetVal(true)

	err := w.Add(context.Background(), "gate-1", "ticket-1", base)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedis_AddError(t *testing.T) {
	t.Parallel()

	db, mock := redismock.NewClientMock()
	defer mock.ClearExpect()

	w := NewRedis(db, time.Hour)

	mock.ExpectZAdd("event_gate:gate:gate-1:checkins", redis.Z{Score: float64(base.UnixMilli()), Member: "ticket-1"}).
		SetErr(errors.New("connection refused"))

	err := w.Add(context.Background(), "gate-1", "ticket-1", base)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedis_Count(t *testing.T) {
	t.Parallel()

	db, mock := redismock.NewClientMock()
	defer mock.ClearExpect()

	w := NewRedis(db, time.Hour)
	since := base.Add(-time.Hour)

	mock.ExpectZCount("event_gate:gate:gate-1:checkins", strconv.FormatInt(since.UnixMilli(), 10), "+inf").SetVal(42)

	n, err := w.Count(context.Background(), "gate-1", since)
	require.NoError(t, err)
	assert.Equal(t, int64(42), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
