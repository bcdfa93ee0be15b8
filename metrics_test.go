package csp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func newTestMeters(t *testing.T) (*sdkmetric.MeterProvider, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })
	return mp, reader
}

// sumOf adds every data point of the named int64 sum whose attributes
// contain key=value. An empty key matches every point.
func sumOf(t *testing.T, reader *sdkmetric.ManualReader, name string, key attribute.Key, value string) int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	var total int64
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			data, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok, "%s is not an int64 sum", name)
			for _, dp := range data.DataPoints {
				if key != "" {
					v, ok := dp.Attributes.Value(key)
					if !ok || v.AsString() != value {
						continue
					}
				}
				total += dp.Value
			}
		}
	}
	return total
}

func TestChannelMetrics(t *testing.T) {
	mp, reader := newTestMeters(t)

	ch := New[int](WithName("jobs"), WithMeterProvider(mp))
	for i := range 3 {
		require.NoError(t, ch.Send(i))
	}
	_, ok := ch.Recv()
	require.True(t, ok)
	_, ok = ch.TryRecv()
	require.True(t, ok)
	ch.Close()
	assert.ErrorIs(t, ch.Send(9), ErrClosed)
	assert.ErrorIs(t, ch.TrySend(9), ErrClosed)

	assert.Equal(t, int64(3), sumOf(t, reader, "csp.channel.sent", "channel", "jobs"))
	assert.Equal(t, int64(2), sumOf(t, reader, "csp.channel.received", "channel", "jobs"))
	assert.Equal(t, int64(2), sumOf(t, reader, "csp.channel.rejected", "channel", "jobs"))
	assert.Equal(t, int64(1), sumOf(t, reader, "csp.channel.depth", "channel", "jobs"))
}

func TestSelectMetrics(t *testing.T) {
	mp, reader := newTestMeters(t)

	ch := New[int]()
	require.NoError(t, ch.Send(1))
	require.NoError(t, ch.Send(2))

	defaults := 0
	err := Select(context.Background(), []Case{
		On(ch.Receiver, func(int) bool { return true }),
	}, WithSelectMeterProvider(mp), WithDefault(func() bool {
		defaults++
		return defaults < 2
	}))
	require.NoError(t, err)

	assert.Equal(t, int64(2), sumOf(t, reader, "csp.select.rounds", "outcome", "received"))
	assert.Equal(t, int64(2), sumOf(t, reader, "csp.select.rounds", "outcome", "empty"))
	assert.Equal(t, int64(2), sumOf(t, reader, "csp.select.default", "", ""))
}
