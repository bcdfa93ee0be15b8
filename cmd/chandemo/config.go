package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type config struct {
	Workers  int
	Capacity int
	Timer    time.Duration
	Tick     time.Duration
	Delay    time.Duration
	LogLevel string
}

// loadConfig resolves settings from defaults, an optional config file,
// CHANDEMO_* environment variables and command-line flags, in increasing
// order of precedence.
func loadConfig(args []string) (config, error) {
	v := viper.New()
	v.SetDefault("workers", 16)
	v.SetDefault("capacity", 4)
	v.SetDefault("timer", 4*time.Second)
	v.SetDefault("tick", time.Second)
	v.SetDefault("delay", 400*time.Millisecond)
	v.SetDefault("log-level", "info")

	fs := pflag.NewFlagSet("chandemo", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.String("config", "", "optional config file (json, yaml or toml)")
	fs.Int("workers", 16, "number of worker goroutines")
	fs.Int("capacity", 4, "capacity of the work channel")
	fs.Duration("timer", 4*time.Second, "one-shot timer delay")
	fs.Duration("tick", time.Second, "ticker interval")
	fs.Duration("delay", 400*time.Millisecond, "processing time per work item")
	fs.String("log-level", "info", "log level (debug, info, warn, error)")
	if err := fs.Parse(args); err != nil {
		return config{}, fmt.Errorf("parse flags: %w", err)
	}

	// only flags set explicitly override the lower layers
	fs.VisitAll(func(f *pflag.Flag) {
		if f.Changed {
			_ = v.BindPFlag(f.Name, f)
		}
	})

	v.SetEnvPrefix("CHANDEMO")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path, _ := fs.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := config{
		Workers:  v.GetInt("workers"),
		Capacity: v.GetInt("capacity"),
		Timer:    v.GetDuration("timer"),
		Tick:     v.GetDuration("tick"),
		Delay:    v.GetDuration("delay"),
		LogLevel: v.GetString("log-level"),
	}
	return cfg, cfg.validate()
}

func (c config) validate() error {
	switch {
	case c.Workers <= 0:
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	case c.Capacity <= 0:
		return fmt.Errorf("capacity must be positive, got %d", c.Capacity)
	case c.Tick <= 0:
		return fmt.Errorf("tick must be positive, got %v", c.Tick)
	case c.Delay < 0:
		return fmt.Errorf("delay must not be negative, got %v", c.Delay)
	}
	return nil
}

func newLogger(w io.Writer, level string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", level, err)
	}
	if w == nil {
		w = os.Stderr
	}
	out := zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger(), nil
}
