package workgroup

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

type config struct {
	panicAsErr bool
	log        zerolog.Logger
}

// Option configures a [Group].
type Option func(*config)

// WithPanicAsError makes task panics ordinary task errors instead of being
// re-raised by [Group.Wait].
func WithPanicAsError() Option {
	return func(c *config) { c.panicAsErr = true }
}

// WithLogger sets the logger used for task lifecycle events.
func WithLogger(l zerolog.Logger) Option {
	return func(c *config) { c.log = l }
}

// Group is a set of named tasks sharing one context.
// A Group must be created with [New] and finished with [Group.Wait].
type Group struct {
	parent context.Context
	ctx    context.Context
	cancel context.CancelCauseFunc
	cfg    config

	wg sync.WaitGroup

	mu     sync.Mutex
	errs   []error
	panics []*PanicError

	waitOnce sync.Once
	err      error
	panicked *PanicError
}

// New returns a Group and the context its tasks run under. The context is
// cancelled by the first task failure, or when the group finishes.
func New(parent context.Context, opts ...Option) (*Group, context.Context) {
	cfg := config{log: zerolog.Nop()}
	for _, opt := range opts {
		opt(&cfg)
	}

	ctx, cancel := context.WithCancelCause(parent)
	return &Group{parent: parent, ctx: ctx, cancel: cancel, cfg: cfg}, ctx
}

// Go starts fn as a task called name.
func (g *Group) Go(name string, fn func(ctx context.Context) error) {
	g.wg.Add(1)
	go func() {
		defer g.wg.Done()

		start := time.Now()
		err := g.exec(fn)
		g.cfg.log.Debug().
			Str("task", name).
			Dur("took", time.Since(start)).
			Err(err).
			Msg("task finished")

		if err != nil {
			g.record(&TaskError{Task: name, Err: err})
		}
	}()
}

// Wait blocks until every task has returned. It returns every task failure
// joined with [errors.Join], each wrapped in a [*TaskError]. A context
// error returned after the group was cancelled, by a failure or by the
// parent, is not counted as a failure. If a task panicked and panics are
// not errors, Wait re-panics with the first [*PanicError].
//
// If no task failed but the parent context ended, Wait returns its error.
func (g *Group) Wait() error {
	g.waitOnce.Do(func() {
		g.wg.Wait()
		parentErr := g.parent.Err()
		g.cancel(nil)

		g.mu.Lock()
		defer g.mu.Unlock()

		if !g.cfg.panicAsErr && len(g.panics) > 0 {
			g.panicked = g.panics[0]
		}
		g.err = errors.Join(g.errs...)
		if g.err == nil && g.panicked == nil {
			g.err = parentErr
		}
	})

	if g.panicked != nil {
		panic(g.panicked)
	}
	return g.err
}

func (g *Group) exec(fn func(ctx context.Context) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			pe := newPanicError(r)
			if g.cfg.panicAsErr {
				err = pe
				return
			}
			g.mu.Lock()
			g.panics = append(g.panics, pe)
			g.mu.Unlock()
			g.cancel(pe)
		}
	}()
	return fn(g.ctx)
}

func (g *Group) record(te *TaskError) {
	g.mu.Lock()
	defer g.mu.Unlock()

	// tasks that only report the group's cancellation did not fail
	if g.ctx.Err() != nil && (errors.Is(te.Err, context.Canceled) || errors.Is(te.Err, context.DeadlineExceeded)) {
		return
	}
	g.errs = append(g.errs, te)
	g.cancel(te)
}
