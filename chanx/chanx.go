package chanx

import (
	"context"

	"github.com/baxromumarov/csp"
)

// FromChan copies values from in into a new csp channel until in is closed
// or ctx is cancelled, then closes the csp channel. Closing the returned
// receiver stops the copy.
//
// If in is nil, the returned receiver is already closed.
func FromChan[T any](ctx context.Context, in <-chan T, opts ...csp.Option) csp.Receiver[T] {
	out := csp.New[T](opts...)
	if in == nil {
		out.Close()
		return out.Receiver
	}

	go func() {
		defer out.Close()
		for {
			select {
			case v, ok := <-in:
				if !ok {
					return
				}
				if err := out.SendContext(ctx, v); err != nil {
					return
				}
			case <-ctx.Done():
				return
			case <-out.Done():
				return
			}
		}
	}()
	return out.Receiver
}

// ToChan exposes r as a native receive-only channel. The returned channel is
// closed once r is closed and drained or ctx is cancelled. A value already
// taken from r when ctx is cancelled is dropped.
func ToChan[T any](ctx context.Context, r csp.Receiver[T]) <-chan T {
	out := make(chan T)
	go func() {
		defer close(out)
		for {
			v, ok, err := r.RecvContext(ctx)
			if err != nil || !ok {
				return
			}
			select {
			case out <- v:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}
