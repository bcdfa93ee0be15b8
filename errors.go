package csp

import (
	"errors"
	"fmt"
	"io"
)

var (
	// ErrClosed is returned by send operations on a closed channel, including
	// a send that was blocked on capacity when the channel closed.
	ErrClosed = errors.New("csp: send on closed channel")

	// ErrFull is returned by [Sender.TrySend] when a bounded channel has no
	// room.
	ErrFull = errors.New("csp: channel is full")

	// ErrEmptyClosed is returned by [Receiver.Next] once the channel is closed
	// and drained. It wraps [io.EOF].
	ErrEmptyClosed = fmt.Errorf("csp: receive on empty closed channel: %w", io.EOF)
)
