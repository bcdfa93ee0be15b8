// Package csp provides CSP-style channels: typed, goroutine-safe FIFO
// queues with an explicit closed state, and a fair select over channels of
// different element types.
//
// Go's built-in channels panic on send after close, cannot be probed for
// emptiness without racing, and select over a dynamic set of differently
// typed channels needs reflection. csp channels turn those edges into plain
// return values.
//
// # Channels
//
// [New] creates a [Channel]. Channels are unbounded unless [WithCapacity]
// is given. A Channel carries two capability views, [Sender] and
// [Receiver], which can be handed to code that should only produce or only
// consume:
//
//	jobs := csp.New[int](csp.WithCapacity(4))
//	go produce(jobs.Sender)
//	for v := range jobs.Receiver.All() {
//	    handle(v)
//	}
//
// Handles are small values; copies share the channel and may be used from
// any goroutine.
//
//   - [Sender.Send] blocks while a bounded channel is full and returns
//     [ErrClosed] once the channel is closed. [Sender.SendContext] adds a
//     deadline and [Sender.TrySend] never blocks.
//   - [Receiver.Recv] blocks until a value arrives or the channel is closed
//     and drained. [Receiver.TryRecv] never blocks. [Receiver.Next] reports
//     the end as [ErrEmptyClosed] and [Receiver.All] ranges over values.
//
// # Close
//
// Close ends production, not delivery: values queued before Close are still
// received, in order, before receivers see the end. Close wakes every
// blocked sender (which then fails with [ErrClosed]) and every blocked
// receiver. Close is idempotent and may be called through any handle.
//
// # Select
//
// [Select] services several receivers at once. Each case is built with
// [On] (value plus handler) or, for [Each] only, [Recv] (value staged for
// the caller):
//
//	err := csp.Select(ctx, []csp.Case{
//	    csp.On(jobs.Receiver, func(v int) bool { handle(v); return true }),
//	    csp.On(quit.Receiver, func(struct{}) bool { return false }),
//	}, csp.WithDefault(idle))
//
// Every round probes the live channels in uniformly random order and
// dispatches the first one holding a value, so no channel is favoured.
// Channels found closed and drained are retired; Select returns once none
// remain, once a handler or the default returns false, or when ctx ends.
// [Nullable] keeps closed channels in rotation. Without a default, an empty
// round sleeps until one of the channels receives a value or closes.
//
// [Each] runs the same rounds as an iterator yielding the index of the case
// that received. If ctx ends, its last pair carries ctx.Err():
//
//	for i, err := range csp.Each(ctx, cases) {
//	    if err != nil {
//	        return err
//	    }
//	    // cases[i] holds this round's value
//	}
//
// # Time Sources
//
// [Timer] delivers one timestamp after a delay and closes. [Ticker]
// delivers a timestamp every interval until the consumer closes it; closing
// is the only way to stop it and ends its goroutine promptly.
// [Source.Stopped] reports when that goroutine has exited. Racing a receive
// against a Timer inside Select gives a receive with a deadline.
//
// # Observability
//
// Channels and selects record otel metrics through the global meter
// provider, or the one given with [WithMeterProvider] and
// [WithSelectMeterProvider]. Lifecycle events are logged at debug level to
// the zerolog logger given with [WithLogger] and [WithSelectLogger].
//
// # Channel Utilities
//
// The [github.com/baxromumarov/csp/chanx] subpackage bridges csp channels
// and native Go channels (FromChan, ToChan) and provides fan-in (Merge),
// fan-out (Tee), First, Drain and batch send/receive.
package csp
