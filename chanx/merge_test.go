package chanx

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/baxromumarov/csp"
)

func TestMerge(t *testing.T) {
	out := Merge(context.Background(), fill(t, 1, 2, 3), fill(t, 4, 5), fill[int](t))

	got := collect(out)
	sort.Ints(got)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, got)
}

func TestMerge_PreservesPerInputOrder(t *testing.T) {
	a := csp.New[int]()
	b := csp.New[int]()
	go func() {
		for i := range 100 {
			_ = a.Send(i)
		}
		a.Close()
	}()
	go func() {
		for i := range 100 {
			_ = b.Send(1000 + i)
		}
		b.Close()
	}()

	var fromA, fromB []int
	for v := range Merge(context.Background(), a.Receiver, b.Receiver).All() {
		if v < 1000 {
			fromA = append(fromA, v)
		} else {
			fromB = append(fromB, v)
		}
	}
	require.Len(t, fromA, 100)
	require.Len(t, fromB, 100)
	assert.True(t, sort.IntsAreSorted(fromA))
	assert.True(t, sort.IntsAreSorted(fromB))
}

func TestMerge_NoInputs(t *testing.T) {
	out := Merge[int](context.Background())
	_, ok := out.Recv()
	assert.False(t, ok)
}

func TestMerge_ContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	a := csp.New[int]()
	out := Merge(ctx, a.Receiver)

	cancel()
	select {
	case <-out.Done():
	case <-time.After(time.Second):
		t.Fatal("merge did not stop on cancel")
	}
}

func TestMerge_OutputCloseWhileInputsIdle(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	a := csp.New[int]()
	b := csp.New[int]()
	out := Merge(context.Background(), a.Receiver, b.Receiver)

	out.Close()

	// inputs are never closed; the merge must not wait for them
	assert.True(t, a.IsOpen())
	assert.True(t, b.IsOpen())
}
