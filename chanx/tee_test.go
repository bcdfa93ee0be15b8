package chanx

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/baxromumarov/csp"
)

func TestTee(t *testing.T) {
	outs := Tee(context.Background(), fill(t, 1, 2, 3), 2)
	require.Len(t, outs, 2)

	var wg sync.WaitGroup
	results := make([][]int, len(outs))
	for i, out := range outs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = collect(out)
		}()
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, []int{1, 2, 3}, got)
	}
}

func TestTee_PanicsOnNonPositive(t *testing.T) {
	in := csp.New[int]().Receiver
	assert.Panics(t, func() { Tee(context.Background(), in, 0) })
	assert.Panics(t, func() { Tee(context.Background(), in, -1) })
}

func TestTee_ClosedOutputIsSkipped(t *testing.T) {
	in := csp.New[int]()
	outs := Tee(context.Background(), in.Receiver, 2)
	outs[0].Close()

	require.NoError(t, in.Send(7))
	v, ok := outs[1].Recv()
	require.True(t, ok)
	assert.Equal(t, 7, v)
	in.Close()
}

func TestTee_StopsWhenEveryOutputClosed(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	in := csp.New[int]()
	outs := Tee(context.Background(), in.Receiver, 2)
	for _, out := range outs {
		out.Close()
	}

	// in stays open and idle; the copier must still exit
	assert.True(t, in.IsOpen())
}
