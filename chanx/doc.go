// Package chanx provides helpers built on [csp] channels.
//
//   - [FromChan] and [ToChan]: bridge between csp channels and native Go
//     channels, so csp channels can feed range loops and select statements
//     and native producers can feed csp consumers.
//   - [Merge]: fan-in of several receivers into one, driven by [csp.Select].
//   - [First]: the first value from any of several receivers.
//   - [Tee]: copies every value to several independent receivers.
//   - [Drain]: discards remaining values.
//   - [SendBatch] and [RecvBatch]: send or receive several values in one
//     call, stopping early on cancellation or close.
//
// Every function that starts a goroutine ties it to a [context.Context] and
// to the lifetime of the channels involved, so it ends once the context is
// cancelled or the output is closed by its consumer.
package chanx
