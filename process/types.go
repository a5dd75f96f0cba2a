package process

import "fmt"

// ProcessID represents a unique identifier for a process
type ProcessID int

// ProcessMemoryAddress represents a memory address within a process
type ProcessMemoryAddress uint64

func (pma ProcessMemoryAddress) String() string {
	return fmt.Sprintf("0x%X", uint64(pma))
}

// ProcessMemorySize represents a size of a memory transfer
type ProcessMemorySize uint

// Access is a bit mask of the rights a process handle is opened with.
// The values mirror the OS access masks on Windows; on Linux the mask is
// recorded but enforcement is left to ptrace permission checks.
type Access uint32

const (
	AccessQueryInformation Access = 0x0400
	AccessVMRead           Access = 0x0010
	AccessVMWrite          Access = 0x0020 | 0x0008 // VM_WRITE requires VM_OPERATION
)

// DefaultAccess is used when a caller does not request explicit rights.
const DefaultAccess = AccessQueryInformation | AccessVMRead | AccessVMWrite

// ModuleInfo describes one module loaded into the target's address space.
// Base addresses are re-resolved on demand, never cached across calls,
// because module layout changes across target restarts.
type ModuleInfo struct {
	Name string
	Base ProcessMemoryAddress
	Size uint64
}

// FindModuleBase searches a loaded-module list for an exact name match,
// case-sensitive and including the extension. An empty list is a normal
// miss, not an error in itself.
func FindModuleBase(modules []ModuleInfo, name string) (ProcessMemoryAddress, error) {
	for _, m := range modules {
		if m.Name == name {
			return m.Base, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrModuleNotFound, name)
}
