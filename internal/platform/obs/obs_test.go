package obs

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestFromFallsBackToRoot(t *testing.T) {
	assert.Same(t, rootLogger, From(context.Background()))

	l := zap.NewExample()
	ctx := WithLogger(context.Background(), l)
	assert.Same(t, l, From(ctx))
}

func TestSubFromNamesLogger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	ctx := WithLogger(context.Background(), zap.New(core))

	l, sub := SubFrom(ctx, "points")
	l.Info("hello")
	From(sub).Info("again")

	require.Equal(t, 2, logs.Len())
	for _, e := range logs.All() {
		assert.Equal(t, "points", e.LoggerName)
	}
}

func TestTime(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	ctx := WithLogger(context.Background(), zap.New(core).With(zap.String("req_id", "r-1")))

	func() (err error) {
		defer Time(ctx, "ok.op")(&err)
		return nil
	}()
	func() (err error) {
		defer Time(ctx, "bad.op")(&err)
		return errors.New("boom")
	}()

	entries := logs.All()
	require.Len(t, entries, 2)

	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, "ok.op", entries[0].ContextMap()["op"])
	assert.Equal(t, "r-1", entries[0].ContextMap()["req_id"])
	for _, e := range entries {
		assert.Equal(t, 1, countField(e.Context, "req_id"), "req_id must appear once")
	}

	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, "boom", entries[1].ContextMap()["error"])
}

func TestNewLoggerRejectsBadLevel(t *testing.T) {
	_, err := NewLogger("loud", false)
	assert.Error(t, err)
}

func TestNewMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.PointFetches.WithLabelValues("ok").Inc()
	m.Points.Set(4)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.PointFetches.WithLabelValues("ok")))
	n, err := testutil.GatherAndCount(reg, "cybermap_points", "cybermap_point_fetches_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	assert.NotPanics(t, func() { NewMetrics(nil) })
}

func countField(fields []zapcore.Field, key string) int {
	n := 0
	for _, f := range fields {
		if f.Key == key {
			n++
		}
	}
	return n
}
