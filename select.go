package csp

import (
	"context"
	"iter"
)

// Case is one receiver registered with [Select] or [Each]. Build cases with
// [On] or [Recv]; the interface cannot be implemented outside this package.
type Case interface {
	// poll stages the front value, if any, and reports whether it did.
	poll() bool
	// dispatch runs the handler on the staged value.
	dispatch() bool
	handled() bool
	clear()
	open() bool
	ready(closedCounts bool) bool
	watch(w chan struct{})
	unwatch(w chan struct{})
}

// Slot is a [Case] over a Receiver[T]. It keeps the value received in the
// most recent round in which this slot was probed.
type Slot[T any] struct {
	r   Receiver[T]
	fn  func(T) bool
	val T
	ok  bool
}

// On registers r with a handler. The handler runs on the selecting
// goroutine for every value received from r; returning false stops the
// select. A nil handler leaves the value staged in the slot.
// On panics if r was not created by [New], [Timer] or [Ticker].
func On[T any](r Receiver[T], fn func(T) bool) *Slot[T] {
	if r.c == nil {
		panic("csp: On requires an initialized Receiver")
	}
	return &Slot[T]{r: r, fn: fn}
}

// Recv registers r without a handler. Use it with [Each] and read the
// staged value with [Slot.Value].
func Recv[T any](r Receiver[T]) *Slot[T] {
	return On(r, nil)
}

// Value returns the value staged in the current round. ok is false when
// another case received this round.
func (s *Slot[T]) Value() (v T, ok bool) {
	return s.val, s.ok
}

func (s *Slot[T]) poll() bool {
	s.val, s.ok = s.r.TryRecv()
	return s.ok
}

func (s *Slot[T]) dispatch() bool {
	if s.fn == nil {
		return true
	}
	return s.fn(s.val)
}

func (s *Slot[T]) handled() bool { return s.fn != nil }

func (s *Slot[T]) clear() {
	var zero T
	s.val, s.ok = zero, false
}

func (s *Slot[T]) open() bool                   { return s.r.IsOpen() }
func (s *Slot[T]) ready(closedCounts bool) bool { return s.r.c.ready(closedCounts) }
func (s *Slot[T]) watch(w chan struct{})        { s.r.c.watch(w) }
func (s *Slot[T]) unwatch(w chan struct{})      { s.r.c.unwatch(w) }

// Select services cases until every channel is closed and drained, a
// handler or the default returns false, or ctx ends.
//
// Each round probes the not-yet-retired cases in uniformly random order
// without blocking and dispatches the first one holding a value. A round
// that finds nothing runs the default, if any; otherwise Select sleeps
// until one of the channels receives a value or closes. A channel found
// closed and drained is retired unless [Nullable] is set.
//
// Select returns ctx.Err() if ctx ended and nil otherwise.
//
// Every case must carry a handler; Select panics on a case built with
// [Recv], whose values only [Each] can hand over.
func Select(ctx context.Context, cases []Case, opts ...SelectOption) error {
	for _, c := range cases {
		if !c.handled() {
			panic("csp: Select requires a handler for every case; use Each for Recv cases")
		}
	}
	cfg := newSelectConfig(opts)
	return newSelector(cases, cfg).run(ctx, func(i int) bool {
		return cases[i].dispatch()
	})
}

// Each is the iterator form of [Select]. It runs the same rounds and yields
// the index of the case that received, with a nil error; the value is in
// that case's [Slot]. Handlers registered with [On] still run before the
// yield. Breaking out of the loop stops the select.
//
// If ctx ends, Each yields a final pair of -1 and ctx.Err().
func Each(ctx context.Context, cases []Case, opts ...SelectOption) iter.Seq2[int, error] {
	cfg := newSelectConfig(opts)
	return func(yield func(int, error) bool) {
		stopped := false
		err := newSelector(cases, cfg).run(ctx, func(i int) bool {
			if !cases[i].dispatch() {
				return false
			}
			if !yield(i, nil) {
				stopped = true
				return false
			}
			return true
		})
		if err != nil && !stopped {
			yield(-1, err)
		}
	}
}

type selector struct {
	cases   []Case
	cfg     selectConfig
	retired []bool
	live    int
	untried []int
	inst    *selectInstruments
}

func newSelector(cases []Case, cfg selectConfig) *selector {
	inst, err := newSelectInstruments(cfg.meters)
	if err != nil {
		cfg.logger.Warn().Err(err).Msg("select metrics disabled")
		inst, _ = newSelectInstruments(noopMeters)
	}
	return &selector{
		cases:   cases,
		cfg:     cfg,
		retired: make([]bool, len(cases)),
		live:    len(cases),
		untried: make([]int, 0, len(cases)),
		inst:    inst,
	}
}

func (s *selector) run(ctx context.Context, deliver func(int) bool) error {
	defer s.clearSlots()

	for rounds := 0; ; rounds++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if s.live == 0 {
			s.cfg.logger.Debug().Int("rounds", rounds).Msg("select finished: all channels closed")
			return nil
		}

		i := s.round()
		if i >= 0 {
			s.inst.rounds.Add(ctx, 1, outcomeReceived)
			if !deliver(i) {
				s.cfg.logger.Debug().Int("rounds", rounds+1).Msg("select stopped by handler")
				return nil
			}
			continue
		}
		s.inst.rounds.Add(ctx, 1, outcomeEmpty)

		if s.live == 0 {
			continue
		}
		if s.cfg.def != nil {
			s.inst.defaults.Add(ctx, 1)
			if !s.cfg.def() {
				s.cfg.logger.Debug().Int("rounds", rounds+1).Msg("select stopped by default")
				return nil
			}
			continue
		}
		if err := s.wait(ctx); err != nil {
			return err
		}
	}
}

// round probes every live case at most once, in random order. It returns
// the index of the case that staged a value, or -1.
func (s *selector) round() int {
	s.clearSlots()
	s.untried = s.untried[:0]
	for i := range s.cases {
		if !s.retired[i] {
			s.untried = append(s.untried, i)
		}
	}

	for len(s.untried) > 0 {
		j := s.cfg.intn(len(s.untried))
		i := s.untried[j]
		last := len(s.untried) - 1
		s.untried[j] = s.untried[last]
		s.untried = s.untried[:last]

		c := s.cases[i]
		if c.poll() {
			return i
		}
		if s.cfg.nullable || c.open() {
			continue
		}
		// Closed channels accept no more values, so this probe is final.
		if c.poll() {
			return i
		}
		s.retired[i] = true
		s.live--
	}
	return -1
}

// wait blocks until a live case becomes ready or ctx ends.
func (s *selector) wait(ctx context.Context) error {
	w := make(chan struct{}, 1)
	closedCounts := !s.cfg.nullable

	for i, c := range s.cases {
		if !s.retired[i] {
			c.watch(w)
		}
	}
	defer func() {
		for i, c := range s.cases {
			if !s.retired[i] {
				c.unwatch(w)
			}
		}
	}()

	// A value sent between the empty round and watch would not notify w.
	for i, c := range s.cases {
		if !s.retired[i] && c.ready(closedCounts) {
			return nil
		}
	}

	select {
	case <-w:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *selector) clearSlots() {
	for _, c := range s.cases {
		c.clear()
	}
}
