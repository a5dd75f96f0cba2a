//go:build !windows

package input

import "errors"

// stubBackend stands in on platforms without a system-wide input hook
// facility. Registration always fails, so EnableHook surfaces
// ErrHookRegistrationFailed before any event processing begins.
type stubBackend struct{}

func newPlatformBackend() hookBackend {
	return stubBackend{}
}

func (stubBackend) install(func(RawEvent)) error {
	return errors.New("low-level input hooks not supported on this platform")
}

func (stubBackend) uninstall() {}

func (stubBackend) lockKeyStates() map[KeyCode]bool { return nil }
