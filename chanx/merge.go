package chanx

import (
	"context"

	"github.com/baxromumarov/csp"
)

// Merge combines several receivers into one (fan-in). Values are taken
// from whichever input is ready, chosen fairly by [csp.Select]; order
// within one input is preserved. The output is closed once every input is
// closed and drained, or ctx is cancelled. Closing the output stops the
// merge even while every input is idle.
func Merge[T any](ctx context.Context, ins ...csp.Receiver[T]) csp.Receiver[T] {
	out := csp.New[T]()
	mctx, cancel := context.WithCancel(ctx)

	cases := make([]csp.Case, len(ins))
	for i, in := range ins {
		cases[i] = csp.On(in, func(v T) bool {
			return out.SendContext(mctx, v) == nil
		})
	}

	go func() {
		defer cancel()
		defer out.Close()
		_ = csp.Select(mctx, cases)
	}()
	go cancelOnClose(mctx, cancel, out.Done())
	return out.Receiver
}

// cancelOnClose cancels once every done channel is closed, or returns when
// ctx ends first.
func cancelOnClose(ctx context.Context, cancel context.CancelFunc, dones ...<-chan struct{}) {
	for _, done := range dones {
		select {
		case <-done:
		case <-ctx.Done():
			return
		}
	}
	cancel()
}
