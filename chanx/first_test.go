package chanx

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baxromumarov/csp"
)

func TestFirst(t *testing.T) {
	a := csp.New[int]()
	b := csp.New[int]()
	c := csp.New[int]()
	require.NoError(t, b.Send(42))
	require.NoError(t, b.Send(43))

	v, idx, err := First(context.Background(), a.Receiver, b.Receiver, c.Receiver)
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.Equal(t, 1, idx)
	assert.Equal(t, 1, b.Len(), "only one value is consumed")
}

func TestFirst_WaitsForValue(t *testing.T) {
	a := csp.New[string]()
	go func() {
		time.Sleep(20 * time.Millisecond)
		_ = a.Send("late")
	}()

	v, idx, err := First(context.Background(), a.Receiver)
	require.NoError(t, err)
	assert.Equal(t, "late", v)
	assert.Zero(t, idx)
}

func TestFirst_AllClosed(t *testing.T) {
	_, idx, err := First(context.Background(), fill[int](t), fill[int](t))
	assert.ErrorIs(t, err, csp.ErrEmptyClosed)
	assert.Equal(t, -1, idx)
}

func TestFirst_NoInputs(t *testing.T) {
	_, _, err := First[int](context.Background())
	assert.ErrorIs(t, err, csp.ErrEmptyClosed)
}

func TestFirst_ContextCancel(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	a := csp.New[int]()
	_, _, err := First(ctx, a.Receiver)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
