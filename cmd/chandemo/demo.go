package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/baxromumarov/csp"
	"github.com/baxromumarov/csp/internal/workgroup"
)

// startWorker is the body run for every worker task.
var startWorker = worker

type report struct {
	Received int
	Exited   int
	Ticks    int
	TimerHit bool
}

// run starts the workers and services the work, logger, exit, timer and
// ticker channels from a single select loop until all of them are closed.
func run(ctx context.Context, cfg config, out io.Writer, log zerolog.Logger) (report, error) {
	var rep report

	work := csp.New[int](csp.WithCapacity(cfg.Capacity), csp.WithName("work"), csp.WithLogger(log))
	logs := csp.New[string](csp.WithName("logger"), csp.WithLogger(log))
	quit := csp.New[bool](csp.WithName("quit"), csp.WithLogger(log))
	exit := csp.New[int](csp.WithName("exit"), csp.WithLogger(log))
	tmr := csp.Timer(cfg.Timer, csp.WithName("timer"), csp.WithLogger(log))
	tick := csp.Ticker(cfg.Tick, csp.WithName("ticker"), csp.WithLogger(log))

	closeAll := func() {
		work.Close()
		logs.Close()
		quit.Close()
		exit.Close()
		tmr.Close()
		tick.Close()
	}

	g, gctx := workgroup.New(ctx, workgroup.WithLogger(log), workgroup.WithPanicAsError())
	for n := range cfg.Workers {
		g.Go(fmt.Sprintf("worker-%d", n), func(ctx context.Context) error {
			return startWorker(ctx, n, work.Sender, logs.Sender, quit.Receiver, exit.Sender)
		})
	}

	received := make([]bool, cfg.Workers)
	exited := make([]bool, cfg.Workers)

	nSlot := csp.Recv(work.Receiver)
	msgSlot := csp.Recv(logs.Receiver)
	exitSlot := csp.Recv(exit.Receiver)
	tpSlot := csp.Recv(tmr.Receiver)
	tkSlot := csp.Recv(tick.Receiver)
	cases := []csp.Case{nSlot, msgSlot, exitSlot, tpSlot, tkSlot}

	var loopErr error
loop:
	for i, err := range csp.Each(gctx, cases, csp.WithSelectLogger(log)) {
		if err != nil {
			log.Debug().Err(err).Msg("select loop cancelled")
			break
		}
		switch i {
		case 0:
			n, _ := nSlot.Value()
			if received[n] {
				loopErr = fmt.Errorf("worker %d sent twice", n)
				break loop
			}
			if err := pause(gctx, cfg.Delay); err != nil {
				break loop
			}
			received[n] = true
			rep.Received++
			sendOrLog(log, logs.Sender, fmt.Sprintf("receive %d", n), n, "receive not logged")
			sendOrLog(log, quit.Sender, true, n, "quit token not sent")

		case 1:
			msg, _ := msgSlot.Value()
			fmt.Fprintln(out, msg)

		case 2:
			n, _ := exitSlot.Value()
			if exited[n] {
				loopErr = fmt.Errorf("worker %d exited twice", n)
				break loop
			}
			exited[n] = true
			rep.Exited++
			if rep.Exited == cfg.Workers {
				log.Debug().Int("workers", cfg.Workers).Msg("all workers exited")
				work.Close()
				exit.Close()
				logs.Close()
				tick.Close()
			}

		case 3:
			tp, _ := tpSlot.Value()
			rep.TimerHit = true
			fmt.Fprintf(out, "current time: %s\n", tp.Format(time.ANSIC))

		case 4:
			rep.Ticks++
			fmt.Fprintf(out, "%v passed\n", cfg.Tick)
		}
	}

	closeAll()
	waitErr := g.Wait()
	for _, te := range workgroup.AllTaskErrors(waitErr) {
		log.Error().Str("task", te.Task).Err(te.Err).Msg("worker failed")
	}

	switch {
	case loopErr != nil:
		return rep, loopErr
	case waitErr != nil && ctx.Err() == nil:
		return rep, fmt.Errorf("workers: %w", waitErr)
	case ctx.Err() != nil:
		return rep, ctx.Err()
	}
	return rep, nil
}

// sendOrLog sends v and records a failed send at debug level.
func sendOrLog[T any](log zerolog.Logger, s csp.Sender[T], v T, worker int, msg string) {
	if err := s.Send(v); err != nil {
		log.Debug().Err(err).Str("channel", s.Name()).Int("worker", worker).Msg(msg)
	}
}

func pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
