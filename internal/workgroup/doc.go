// Package workgroup runs named goroutines as one unit: every task shares a
// context, Wait joins them all, and failures come back attributed to the
// task that produced them.
//
//	g, ctx := workgroup.New(context.Background())
//	g.Go("fetch", func(ctx context.Context) error { return fetch(ctx) })
//	err := g.Wait()
//
// The first failure cancels the shared context. Wait returns every failure
// joined, each as a [*TaskError]; [AllTaskErrors] takes them apart again.
//
// A panicking task is recovered into a [*PanicError]. By default Wait
// re-raises it once every task has returned; with [WithPanicAsError] it is
// treated as an ordinary task error.
package workgroup
