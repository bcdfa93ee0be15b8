package csp_test

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/baxromumarov/csp"
)

func ExampleNew() {
	ch := csp.New[string](csp.WithCapacity(2))

	go func() {
		for _, w := range []string{"hello", "world"} {
			if err := ch.Send(w); err != nil {
				return
			}
		}
		ch.Close()
	}()

	for v := range ch.Receiver.All() {
		fmt.Println(v)
	}
	// Output:
	// hello
	// world
}

func ExampleSender_Send_closed() {
	ch := csp.New[int]()
	ch.Close()

	err := ch.Send(1)
	fmt.Println(errors.Is(err, csp.ErrClosed))
	// Output: true
}

func ExampleSelect() {
	nums := csp.New[int]()
	words := csp.New[string]()
	_ = nums.Send(1)
	_ = words.Send("one")
	nums.Close()
	words.Close()

	sum, count := 0, 0
	err := csp.Select(context.Background(), []csp.Case{
		csp.On(nums.Receiver, func(v int) bool { sum += v; return true }),
		csp.On(words.Receiver, func(string) bool { count++; return true }),
	})
	fmt.Println(sum, count, err)
	// Output: 1 1 <nil>
}

func ExampleSelect_timeout() {
	work := csp.New[int]()
	deadline := csp.Timer(10 * time.Millisecond)

	_ = csp.Select(context.Background(), []csp.Case{
		csp.On(work.Receiver, func(v int) bool { fmt.Println("got", v); return false }),
		csp.On(deadline.Receiver, func(time.Time) bool { fmt.Println("timed out"); return false }),
	})
	// Output: timed out
}

func ExampleEach() {
	nums := csp.New[int]()
	_ = nums.Send(3)
	nums.Close()

	n := csp.Recv(nums.Receiver)
	for range csp.Each(context.Background(), []csp.Case{n}) {
		v, _ := n.Value()
		fmt.Println(v)
	}
	// Output: 3
}

func ExampleTicker() {
	tick := csp.Ticker(5 * time.Millisecond)
	for range 2 {
		if _, ok := tick.Recv(); ok {
			fmt.Println("tick")
		}
	}
	tick.Close()
	<-tick.Stopped()
	// Output:
	// tick
	// tick
}
