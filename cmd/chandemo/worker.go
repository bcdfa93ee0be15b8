package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/baxromumarov/csp"
)

// worker hands its id to main, waits for one quit token and reports its
// exit. Channels closed by main mean shutdown, not failure.
func worker(ctx context.Context, n int, work csp.Sender[int], logs csp.Sender[string], quit csp.Receiver[bool], exit csp.Sender[int]) error {
	if err := work.SendContext(ctx, n); err != nil {
		return shutdown(err)
	}
	if err := logs.SendContext(ctx, fmt.Sprintf("send %d", n)); err != nil {
		return shutdown(err)
	}

	_, ok, err := quit.RecvContext(ctx)
	if err != nil || !ok {
		return err
	}

	// logged before the exit report: main closes the logger after the last one
	if err := logs.SendContext(ctx, fmt.Sprintf("worker %d exit", n)); err != nil {
		return shutdown(err)
	}
	return shutdown(exit.SendContext(ctx, n))
}

func shutdown(err error) error {
	if errors.Is(err, csp.ErrClosed) {
		return nil
	}
	return err
}
