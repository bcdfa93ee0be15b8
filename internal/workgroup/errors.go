package workgroup

import (
	"errors"
	"fmt"
	"runtime"
)

// TaskError ties an error to the name of the task that returned it.
type TaskError struct {
	Task string
	Err  error
}

func (e *TaskError) Error() string {
	return fmt.Sprintf("task %q failed: %v", e.Task, e.Err)
}

func (e *TaskError) Unwrap() error {
	return e.Err
}

// AllTaskErrors returns every [*TaskError] in err, including those joined
// by [Group.Wait], in order. It returns nil if there are none.
func AllTaskErrors(err error) []*TaskError {
	var out []*TaskError
	var walk func(error)
	walk = func(err error) {
		if te, ok := err.(*TaskError); ok {
			out = append(out, te)
			return
		}
		if joined, ok := err.(interface{ Unwrap() []error }); ok {
			for _, e := range joined.Unwrap() {
				walk(e)
			}
			return
		}
		if inner := errors.Unwrap(err); inner != nil {
			walk(inner)
		}
	}
	if err != nil {
		walk(err)
	}
	return out
}

// PanicError is a recovered panic value with the stack of the goroutine
// that panicked.
type PanicError struct {
	Value any
	Stack string
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v\n\n%s", e.Value, e.Stack)
}

func newPanicError(v any) *PanicError {
	buf := make([]byte, 8192)
	n := runtime.Stack(buf, false)
	return &PanicError{Value: v, Stack: string(buf[:n])}
}
