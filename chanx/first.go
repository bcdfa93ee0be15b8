package chanx

import (
	"context"

	"github.com/baxromumarov/csp"
)

// First waits for the first value from any of ins and returns it with the
// index of the receiver it came from. Only that one value is consumed.
//
// First returns [csp.ErrEmptyClosed] if every input is closed and drained
// first, and ctx.Err() if ctx ends first.
func First[T any](ctx context.Context, ins ...csp.Receiver[T]) (T, int, error) {
	var (
		got T
		idx = -1
	)

	cases := make([]csp.Case, len(ins))
	for i, in := range ins {
		cases[i] = csp.On(in, func(v T) bool {
			got, idx = v, i
			return false
		})
	}

	if err := csp.Select(ctx, cases); err != nil {
		var zero T
		return zero, -1, err
	}
	if idx < 0 {
		var zero T
		return zero, -1, csp.ErrEmptyClosed
	}
	return got, idx, nil
}
