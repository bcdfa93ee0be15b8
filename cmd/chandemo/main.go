// Command chandemo runs a pool of workers that talk to main over csp
// channels: each worker hands over its id, waits for a quit token and
// reports its exit, while main also prints a one-shot timer and a ticker
// from the same select loop.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func main() {
	cfg, err := loadConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, "chandemo:", err)
		os.Exit(2)
	}

	log, err := newLogger(os.Stderr, cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "chandemo:", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	rep, err := run(ctx, cfg, os.Stdout, log)
	if err != nil {
		log.Error().Err(err).Msg("demo failed")
		stop()
		os.Exit(1)
	}

	log.Info().
		Int("received", rep.Received).
		Int("exited", rep.Exited).
		Int("ticks", rep.Ticks).
		Dur("elapsed", time.Since(start)).
		Msg("demo finished")
}
