package csp

import (
	"context"
	"iter"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"
)

// core is the state shared by every handle of one channel.
//
// mu guards queue, the closed transition and watchers. closed is also
// readable without mu so IsOpen never blocks.
type core[T any] struct {
	mu       sync.Mutex
	notFull  sync.Cond // space available, or closed
	notEmpty sync.Cond // item available, or closed
	queue    ring[T]
	capacity int
	closed   atomic.Bool
	done     chan struct{}

	// watchers are one-slot wake channels registered by blocked selects.
	watchers map[chan struct{}]struct{}

	name string
	log  zerolog.Logger
	inst *channelInstruments
}

func newCore[T any](cfg config) *core[T] {
	c := &core[T]{
		capacity: cfg.capacity,
		done:     make(chan struct{}),
		name:     cfg.name,
		log:      cfg.logger.With().Str("channel", cfg.name).Logger(),
	}
	c.notFull.L = &c.mu
	c.notEmpty.L = &c.mu

	inst, err := newChannelInstruments(cfg.meters, cfg.name)
	if err != nil {
		c.log.Warn().Err(err).Msg("channel metrics disabled")
		inst, _ = newChannelInstruments(noopMeters, cfg.name)
	}
	c.inst = inst
	return c
}

func (c *core[T]) full() bool {
	return c.capacity != Unbounded && c.queue.len() >= c.capacity
}

// push appends v and wakes one receiver plus every watching select.
// Must hold mu.
func (c *core[T]) push(v T) {
	c.queue.push(v)
	c.notEmpty.Signal()
	c.notifyWatchers()
}

// pop removes the front value and wakes one blocked sender. Must hold mu.
func (c *core[T]) pop() T {
	v := c.queue.pop()
	c.notFull.Signal()
	return v
}

// Must hold mu.
func (c *core[T]) notifyWatchers() {
	for w := range c.watchers {
		select {
		case w <- struct{}{}:
		default:
		}
	}
}

// wakeOn broadcasts cond when ctx ends, so waiters re-check ctx.Err().
// The returned func detaches the hook.
func (c *core[T]) wakeOn(ctx context.Context, cond *sync.Cond) func() bool {
	return context.AfterFunc(ctx, func() {
		c.mu.Lock()
		cond.Broadcast()
		c.mu.Unlock()
	})
}

func (c *core[T]) send(ctx context.Context, v T) error {
	c.mu.Lock()
	if c.closed.Load() {
		c.mu.Unlock()
		c.inst.onReject()
		return ErrClosed
	}

	if c.full() && ctx.Done() != nil {
		stop := c.wakeOn(ctx, &c.notFull)
		defer stop()
	}
	// A waiter leaves on ctx error only while the queue is still full, so a
	// signal it consumed was not needed by anyone else.
	for c.full() && !c.closed.Load() && ctx.Err() == nil {
		c.notFull.Wait()
	}

	if c.closed.Load() {
		c.mu.Unlock()
		c.inst.onReject()
		return ErrClosed
	}
	if c.full() {
		c.mu.Unlock()
		return ctx.Err()
	}

	c.push(v)
	c.mu.Unlock()
	c.inst.onSend()
	return nil
}

func (c *core[T]) trySend(v T) error {
	c.mu.Lock()
	if c.closed.Load() {
		c.mu.Unlock()
		c.inst.onReject()
		return ErrClosed
	}
	if c.full() {
		c.mu.Unlock()
		return ErrFull
	}
	c.push(v)
	c.mu.Unlock()
	c.inst.onSend()
	return nil
}

func (c *core[T]) recv(ctx context.Context) (T, bool, error) {
	var zero T

	c.mu.Lock()
	if c.queue.len() == 0 && !c.closed.Load() && ctx.Done() != nil {
		stop := c.wakeOn(ctx, &c.notEmpty)
		defer stop()
	}
	for c.queue.len() == 0 && !c.closed.Load() && ctx.Err() == nil {
		c.notEmpty.Wait()
	}

	if c.queue.len() > 0 {
		v := c.pop()
		c.mu.Unlock()
		c.inst.onRecv()
		return v, true, nil
	}
	if c.closed.Load() {
		c.mu.Unlock()
		return zero, false, nil
	}
	c.mu.Unlock()
	return zero, false, ctx.Err()
}

func (c *core[T]) tryRecv() (T, bool) {
	c.mu.Lock()
	if c.queue.len() == 0 {
		c.mu.Unlock()
		var zero T
		return zero, false
	}
	v := c.pop()
	c.mu.Unlock()
	c.inst.onRecv()
	return v, true
}

func (c *core[T]) close() {
	c.mu.Lock()
	if c.closed.Load() {
		c.mu.Unlock()
		return
	}
	c.closed.Store(true)
	close(c.done)
	c.notEmpty.Broadcast()
	c.notFull.Broadcast()
	c.notifyWatchers()
	queued := c.queue.len()
	c.mu.Unlock()

	c.log.Debug().Int("queued", queued).Msg("channel closed")
}

func (c *core[T]) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.queue.len()
}

// ready reports whether a probe would make progress: a value is queued, or
// the channel is closed and closed channels count.
func (c *core[T]) ready(closedCounts bool) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.queue.len() > 0 || (closedCounts && c.closed.Load())
}

func (c *core[T]) watch(w chan struct{}) {
	c.mu.Lock()
	if c.watchers == nil {
		c.watchers = make(map[chan struct{}]struct{})
	}
	c.watchers[w] = struct{}{}
	c.mu.Unlock()
}

func (c *core[T]) unwatch(w chan struct{}) {
	c.mu.Lock()
	delete(c.watchers, w)
	c.mu.Unlock()
}

// handle holds the operations every capability view shares.
type handle[T any] struct {
	c *core[T]
}

// Close marks the channel closed. Further sends fail with [ErrClosed];
// values already queued stay receivable. Blocked senders and receivers are
// woken. Close is idempotent.
func (h handle[T]) Close() { h.c.close() }

// IsOpen reports whether the channel was open at the time of the call.
// The answer is advisory: another goroutine may close it right after.
func (h handle[T]) IsOpen() bool { return !h.c.closed.Load() }

// Done returns a channel that is closed when the channel is closed, for use
// in native select statements.
func (h handle[T]) Done() <-chan struct{} { return h.c.done }

// Len returns the number of queued values.
func (h handle[T]) Len() int { return h.c.len() }

// Cap returns the capacity, or [Unbounded].
func (h handle[T]) Cap() int { return h.c.capacity }

// Name returns the name given with [WithName].
func (h handle[T]) Name() string { return h.c.name }

// Sender is the send-only view of a channel. Copies share the channel.
type Sender[T any] struct {
	handle[T]
}

// Send queues v, blocking while a bounded channel is full. It returns
// [ErrClosed] if the channel is closed on entry or closes while Send waits.
func (s Sender[T]) Send(v T) error {
	return s.c.send(context.Background(), v)
}

// SendContext is like Send but gives up when ctx ends, returning ctx.Err().
func (s Sender[T]) SendContext(ctx context.Context, v T) error {
	return s.c.send(ctx, v)
}

// TrySend queues v without blocking. It returns [ErrFull] when a bounded
// channel has no room and [ErrClosed] when the channel is closed.
func (s Sender[T]) TrySend(v T) error {
	return s.c.trySend(v)
}

// Receiver is the receive-only view of a channel. Copies share the channel
// and compete for values; every value is delivered to one receive only.
type Receiver[T any] struct {
	handle[T]
}

// Recv blocks until a value is available or the channel is closed and
// drained. ok is false only in the latter case.
func (r Receiver[T]) Recv() (v T, ok bool) {
	v, ok, _ = r.c.recv(context.Background())
	return v, ok
}

// RecvContext is like Recv but gives up when ctx ends. A queued value is
// preferred over a cancelled ctx.
func (r Receiver[T]) RecvContext(ctx context.Context) (T, bool, error) {
	return r.c.recv(ctx)
}

// TryRecv returns the front value if one is queued. It never blocks and
// does not distinguish an empty open channel from a drained closed one.
func (r Receiver[T]) TryRecv() (T, bool) {
	return r.c.tryRecv()
}

// Next blocks like Recv and returns [ErrEmptyClosed] once the channel is
// closed and drained.
func (r Receiver[T]) Next() (T, error) {
	v, ok := r.Recv()
	if !ok {
		return v, ErrEmptyClosed
	}
	return v, nil
}

// All returns a sequence that receives until the channel is closed and
// drained. Each iteration continues from the shared queue's current front;
// concurrent iterations compete for values.
func (r Receiver[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			v, ok := r.Recv()
			if !ok || !yield(v) {
				return
			}
		}
	}
}

// Channel carries both capability views of one channel. Pass ch.Sender or
// ch.Receiver to code that should only hold one of them.
type Channel[T any] struct {
	Sender[T]
	Receiver[T]
}

// New creates an open channel. It is unbounded unless [WithCapacity] is
// given.
func New[T any](opts ...Option) Channel[T] {
	return newChannel[T](newConfig(opts))
}

func newChannel[T any](cfg config) Channel[T] {
	h := handle[T]{c: newCore[T](cfg)}
	return Channel[T]{
		Sender:   Sender[T]{h},
		Receiver: Receiver[T]{h},
	}
}

// Close closes the channel. See [Sender.Close].
func (ch Channel[T]) Close() { ch.Sender.Close() }

// IsOpen reports whether the channel is open. See [Sender.IsOpen].
func (ch Channel[T]) IsOpen() bool { return ch.Sender.IsOpen() }

// Done returns a channel closed on Close.
func (ch Channel[T]) Done() <-chan struct{} { return ch.Sender.Done() }

// Len returns the number of queued values.
func (ch Channel[T]) Len() int { return ch.Sender.Len() }

// Cap returns the capacity, or [Unbounded].
func (ch Channel[T]) Cap() int { return ch.Sender.Cap() }

// Name returns the channel name.
func (ch Channel[T]) Name() string { return ch.Sender.Name() }
