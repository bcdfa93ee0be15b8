package chanx

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baxromumarov/csp"
)

func TestSendBatch(t *testing.T) {
	ch := csp.New[int]()
	n, err := SendBatch(context.Background(), ch.Sender, []int{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, 3, ch.Len())
}

func TestSendBatch_Closed(t *testing.T) {
	ch := csp.New[int]()
	ch.Close()
	n, err := SendBatch(context.Background(), ch.Sender, []int{1, 2})
	assert.ErrorIs(t, err, csp.ErrClosed)
	assert.Zero(t, n)
}

func TestSendBatch_ContextCancel(t *testing.T) {
	ch := csp.New[int](csp.WithCapacity(2))
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	n, err := SendBatch(ctx, ch.Sender, []int{1, 2, 3, 4})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 2, n)
}

func TestRecvBatch(t *testing.T) {
	r := fill(t, 1, 2, 3, 4, 5)

	got, err := RecvBatch(context.Background(), r, 3)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, got)

	got, err = RecvBatch(context.Background(), r, 3)
	require.NoError(t, err)
	assert.Equal(t, []int{4, 5}, got, "a closed channel ends the batch early")
}

func TestRecvBatch_ContextCancel(t *testing.T) {
	ch := csp.New[int]()
	require.NoError(t, ch.Send(1))
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	got, err := RecvBatch(ctx, ch.Receiver, 2)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, []int{1}, got)
}

func TestRecvBatch_PanicsOnNonPositive(t *testing.T) {
	assert.Panics(t, func() {
		_, _ = RecvBatch(context.Background(), csp.New[int]().Receiver, 0)
	})
}
