package csp

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

const instrumentationName = "github.com/baxromumarov/csp"

type channelInstruments struct {
	sent     metric.Int64Counter
	received metric.Int64Counter
	rejected metric.Int64Counter
	depth    metric.Int64UpDownCounter
	attrs    metric.MeasurementOption
}

func newChannelInstruments(mp metric.MeterProvider, name string) (*channelInstruments, error) {
	m := mp.Meter(instrumentationName)
	ci := &channelInstruments{
		attrs: metric.WithAttributeSet(attribute.NewSet(attribute.String("channel", name))),
	}

	var err error
	ci.sent, err = m.Int64Counter(
		"csp.channel.sent",
		metric.WithDescription("Values accepted into the channel queue"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating sent counter: %w", err)
	}

	ci.received, err = m.Int64Counter(
		"csp.channel.received",
		metric.WithDescription("Values delivered to receivers"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating received counter: %w", err)
	}

	ci.rejected, err = m.Int64Counter(
		"csp.channel.rejected",
		metric.WithDescription("Sends that failed because the channel was closed"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating rejected counter: %w", err)
	}

	ci.depth, err = m.Int64UpDownCounter(
		"csp.channel.depth",
		metric.WithDescription("Values currently queued"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating depth counter: %w", err)
	}

	return ci, nil
}

func (ci *channelInstruments) onSend() {
	ctx := context.Background()
	ci.sent.Add(ctx, 1, ci.attrs)
	ci.depth.Add(ctx, 1, ci.attrs)
}

func (ci *channelInstruments) onRecv() {
	ctx := context.Background()
	ci.received.Add(ctx, 1, ci.attrs)
	ci.depth.Add(ctx, -1, ci.attrs)
}

func (ci *channelInstruments) onReject() {
	ci.rejected.Add(context.Background(), 1, ci.attrs)
}

var (
	outcomeReceived = metric.WithAttributeSet(attribute.NewSet(attribute.String("outcome", "received")))
	outcomeEmpty    = metric.WithAttributeSet(attribute.NewSet(attribute.String("outcome", "empty")))
)

type selectInstruments struct {
	rounds   metric.Int64Counter
	defaults metric.Int64Counter
}

func newSelectInstruments(mp metric.MeterProvider) (*selectInstruments, error) {
	m := mp.Meter(instrumentationName)
	si := &selectInstruments{}

	var err error
	si.rounds, err = m.Int64Counter(
		"csp.select.rounds",
		metric.WithDescription("Completed select rounds by outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating rounds counter: %w", err)
	}

	si.defaults, err = m.Int64Counter(
		"csp.select.default",
		metric.WithDescription("Default handler invocations"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating default counter: %w", err)
	}

	return si, nil
}

// noopMeters backs instruments whose creation failed on the configured
// provider.
var noopMeters metric.MeterProvider = noop.NewMeterProvider()
