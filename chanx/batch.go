package chanx

import (
	"context"

	"github.com/baxromumarov/csp"
)

// SendBatch sends each value in values to s in order. It stops at the
// first failure and returns how many values were sent together with
// [csp.ErrClosed] or the context error.
func SendBatch[T any](ctx context.Context, s csp.Sender[T], values []T) (int, error) {
	for i, v := range values {
		if err := s.SendContext(ctx, v); err != nil {
			return i, err
		}
	}
	return len(values), nil
}

// RecvBatch receives up to n values from r. If r is closed and drained
// before n values arrive, it returns what it has with a nil error. If ctx
// is cancelled, it returns what it has and the context error.
//
// RecvBatch panics if n is not positive.
func RecvBatch[T any](ctx context.Context, r csp.Receiver[T], n int) ([]T, error) {
	if n <= 0 {
		panic("chanx: RecvBatch requires n > 0")
	}
	result := make([]T, 0, n)
	for range n {
		v, ok, err := r.RecvContext(ctx)
		if err != nil {
			return result, err
		}
		if !ok {
			return result, nil
		}
		result = append(result, v)
	}
	return result, nil
}
