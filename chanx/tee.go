package chanx

import (
	"context"
	"errors"

	"github.com/baxromumarov/csp"
)

// Tee copies every value from in to n new channels, in the same order.
// The outputs are closed once in is closed and drained or ctx is
// cancelled. With bounded outputs a slow consumer holds back the others;
// the outputs are unbounded unless opts say otherwise.
//
// Closing one output drops it from the broadcast; the others keep
// receiving. Once every output is closed Tee stops reading from in.
// Tee panics if n is not positive.
func Tee[T any](ctx context.Context, in csp.Receiver[T], n int, opts ...csp.Option) []csp.Receiver[T] {
	if n <= 0 {
		panic("chanx: Tee requires n > 0")
	}

	outs := make([]csp.Channel[T], n)
	result := make([]csp.Receiver[T], n)
	dones := make([]<-chan struct{}, n)
	for i := range outs {
		outs[i] = csp.New[T](opts...)
		result[i] = outs[i].Receiver
		dones[i] = outs[i].Done()
	}

	tctx, cancel := context.WithCancel(ctx)
	go cancelOnClose(tctx, cancel, dones...)

	go func() {
		defer cancel()
		defer func() {
			for _, out := range outs {
				out.Close()
			}
		}()
		for {
			v, ok, err := in.RecvContext(tctx)
			if err != nil || !ok {
				return
			}
			delivered := 0
			for _, out := range outs {
				err := out.SendContext(tctx, v)
				switch {
				case err == nil:
					delivered++
				case !errors.Is(err, csp.ErrClosed):
					return
				}
			}
			if delivered == 0 {
				return
			}
		}
	}()
	return result
}
