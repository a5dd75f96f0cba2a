// Package process provides interfaces and types for reading and writing
// the memory of a separate, already-running target process.
package process

import "errors"

var (
	// ErrProcessNotFound is returned when no running process matches the
	// requested image name.
	ErrProcessNotFound = errors.New("process not found")

	// ErrModuleNotFound is returned when the target's loaded-module list
	// contains no module with the requested name.
	ErrModuleNotFound = errors.New("module not found")

	// ErrAccessDenied is returned when a memory transfer fails or moves
	// fewer bytes than requested. A partial transfer is always total
	// failure, never a truncated success.
	ErrAccessDenied = errors.New("memory access denied")

	// ErrHandleClosed is returned when an operation is attempted on an
	// accessor whose handle has been closed or whose target has exited.
	ErrHandleClosed = errors.New("process handle closed")
)
