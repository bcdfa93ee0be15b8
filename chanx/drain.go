package chanx

import "github.com/baxromumarov/csp"

// Drain receives and discards values until r is closed and drained, and
// returns how many it discarded. Use it to release producers blocked on a
// bounded channel during shutdown.
func Drain[T any](r csp.Receiver[T]) int {
	n := 0
	for range r.All() {
		n++
	}
	return n
}
