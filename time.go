package csp

import (
	"time"
)

// Source is a channel of timestamps fed by a background goroutine.
// Closing it ends the goroutine; [Source.Stopped] reports when it has
// exited.
type Source struct {
	Receiver[time.Time]
	stopped chan struct{}
}

// Stopped returns a channel closed once the background goroutine returns.
func (s *Source) Stopped() <-chan struct{} { return s.stopped }

// Timer returns a Source that delivers the clock's time once, after d, and
// then closes. A non-positive d fires immediately. Closing the Source
// before it fires cancels it.
func Timer(d time.Duration, opts ...Option) *Source {
	cfg := newConfig(opts)
	ch := newChannel[time.Time](cfg)
	log := ch.Sender.c.log
	src := &Source{Receiver: ch.Receiver, stopped: make(chan struct{})}

	go func() {
		defer close(src.stopped)

		if d > 0 {
			t := cfg.clock.NewTimer(d)
			defer t.Stop()
			select {
			case <-t.Chan():
			case <-ch.Done():
				log.Debug().Msg("timer cancelled")
				return
			}
		}
		// A consumer that closed the channel after the timer fired is not
		// an error.
		_ = ch.Send(cfg.clock.Now())
		ch.Close()
	}()
	return src
}

// Ticker returns a Source that delivers the clock's time every d until the
// consumer closes it. Ticks queue like any other value; bound the queue with
// [WithCapacity] to apply backpressure to the ticker instead.
//
// Ticker panics if d is not positive.
func Ticker(d time.Duration, opts ...Option) *Source {
	if d <= 0 {
		panic("csp: Ticker requires d > 0")
	}

	cfg := newConfig(opts)
	ch := newChannel[time.Time](cfg)
	log := ch.Sender.c.log
	src := &Source{Receiver: ch.Receiver, stopped: make(chan struct{})}

	go func() {
		defer close(src.stopped)

		tk := cfg.clock.NewTicker(d)
		defer tk.Stop()
		for {
			select {
			case <-tk.Chan():
				// Send fails only once the consumer closed the channel; that
				// is the ticker's stop signal.
				if err := ch.Send(cfg.clock.Now()); err != nil {
					log.Debug().Err(err).Msg("ticker stopped")
					return
				}
			case <-ch.Done():
				log.Debug().Msg("ticker stopped")
				return
			}
		}
	}()
	return src
}
