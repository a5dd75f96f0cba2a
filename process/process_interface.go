package process

// Process is the interface for validated memory transfers against a
// foreign process. Implementations own exactly one OS handle; once Close
// is called, or the target is observed to have exited, every operation
// fails with ErrHandleClosed without touching the OS.
type Process interface {
	// Open attaches to the process with the given PID
	Open(pid ProcessID) error

	// Close releases the OS handle. Idempotent.
	Close() error

	// Pid returns the attached process ID, zero when not attached
	Pid() ProcessID

	// Modules enumerates the target's currently loaded modules
	Modules() ([]ModuleInfo, error)

	// ModuleBase resolves the base address of a named module.
	// The match is exact, case-sensitive, extension included.
	ModuleBase(name string) (ProcessMemoryAddress, error)

	// ReadMemory transfers exactly size bytes starting at addr.
	// A short read is reported as ErrAccessDenied, never as a
	// truncated buffer.
	ReadMemory(addr ProcessMemoryAddress, size ProcessMemorySize) ([]byte, error)

	// WriteMemory transfers all of data to addr with the same
	// all-or-nothing contract as ReadMemory.
	WriteMemory(addr ProcessMemoryAddress, data []byte) error
}
