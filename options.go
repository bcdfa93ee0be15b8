package csp

import (
	"math/rand/v2"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// Unbounded is the capacity reported by [Channel.Cap] for a channel
// created without [WithCapacity].
const Unbounded = 0

type config struct {
	capacity int
	name     string
	logger   zerolog.Logger
	meters   metric.MeterProvider
	clock    clockwork.Clock
}

// Option configures a channel created by [New], [Timer] or [Ticker].
type Option func(*config)

func defaultConfig() config {
	return config{
		capacity: Unbounded,
		logger:   zerolog.Nop(),
		meters:   otel.GetMeterProvider(),
		clock:    clockwork.NewRealClock(),
	}
}

func newConfig(opts []Option) config {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithCapacity bounds the channel to n queued elements. Senders block while
// the queue holds n elements and the channel is open.
// WithCapacity panics if n is not positive.
func WithCapacity(n int) Option {
	if n <= 0 {
		panic("csp: WithCapacity requires n > 0")
	}
	return func(c *config) {
		c.capacity = n
	}
}

// WithName labels the channel in log records and metric attributes.
func WithName(name string) Option {
	return func(c *config) {
		c.name = name
	}
}

// WithLogger sets the logger used for lifecycle debug records.
// The default logger discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithMeterProvider sets the provider the channel's instruments are created
// from. The default is the global otel provider.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(c *config) {
		if mp != nil {
			c.meters = mp
		}
	}
}

// WithClock sets the clock used by [Timer] and [Ticker]. Plain channels
// ignore it.
func WithClock(clk clockwork.Clock) Option {
	return func(c *config) {
		if clk != nil {
			c.clock = clk
		}
	}
}

type selectConfig struct {
	def      func() bool
	nullable bool
	intn     func(int) int
	logger   zerolog.Logger
	meters   metric.MeterProvider
}

// SelectOption configures [Select] and [Each].
type SelectOption func(*selectConfig)

func newSelectConfig(opts []SelectOption) selectConfig {
	cfg := selectConfig{
		intn:   rand.IntN,
		logger: zerolog.Nop(),
		meters: otel.GetMeterProvider(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithDefault registers fn to run once for every round in which no channel
// had a value ready. Returning false stops the select.
func WithDefault(fn func() bool) SelectOption {
	return func(c *selectConfig) {
		c.def = fn
	}
}

// Nullable keeps closed channels in the select instead of retiring them.
// A nullable select ends only when a handler or the default returns false,
// or when its context ends.
func Nullable() SelectOption {
	return func(c *selectConfig) {
		c.nullable = true
	}
}

// WithRand makes channel picking draw from r instead of the global source.
// r is used from the selecting goroutine only.
func WithRand(r *rand.Rand) SelectOption {
	return func(c *selectConfig) {
		if r != nil {
			c.intn = r.IntN
		}
	}
}

// WithSelectLogger sets the logger used for select debug records.
func WithSelectLogger(l zerolog.Logger) SelectOption {
	return func(c *selectConfig) {
		c.logger = l
	}
}

// WithSelectMeterProvider sets the provider for select instruments.
func WithSelectMeterProvider(mp metric.MeterProvider) SelectOption {
	return func(c *selectConfig) {
		if mp != nil {
			c.meters = mp
		}
	}
}
