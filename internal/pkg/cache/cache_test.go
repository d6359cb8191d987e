package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/learnhub/internal/app/models"
)

func TestReportKey(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	open := ReportKey("courses", 10, models.ReportWindow{From: from})
	bounded := ReportKey("courses", 10, models.ReportWindow{From: from, To: &to})
	other := ReportKey("sub-categories", 10, models.ReportWindow{From: from})

	assert.NotEqual(t, open, bounded)
	assert.NotEqual(t, open, other)
	assert.Equal(t, open, ReportKey("courses", 10, models.ReportWindow{From: from.In(time.FixedZone("x", 3600))}))
}

func TestNoop(t *testing.T) {
	var c ReportCache = Noop{}
	require.NoError(t, c.Set(context.Background(), "k", 1))

	var v int
	hit, err := c.Get(context.Background(), "k", &v)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestRedisRoundTrip(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}

	ctx := context.Background()
	r, err := NewRedis(ctx, RedisOptions{Addr: addr, TTL: time.Minute})
	require.NoError(t, err)
	defer r.Close()

	key := "learnhub:test:" + time.Now().Format(time.RFC3339Nano)
	require.NoError(t, r.Set(ctx, key, []string{"a", "b"}))

	var got []string
	hit, err := r.Get(ctx, key, &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, []string{"a", "b"}, got)

	hit, err = r.Get(ctx, key+":missing", &got)
	require.NoError(t, err)
	assert.False(t, hit)
}
