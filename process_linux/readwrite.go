//go:build linux

package process_linux

import (
	"fmt"
	"unsafe"

	"github.com/Aryetis/CatalystAPI/process"

	"golang.org/x/sys/unix"
)

// processVMReadv uses the process_vm_readv syscall to read memory from
// another process in a single transfer.
func processVMReadv(pid process.ProcessID, remoteAddr process.ProcessMemoryAddress, size process.ProcessMemorySize) ([]byte, error) {
	buf := make([]byte, size)

	localIov := unix.Iovec{
		Base: &buf[0],
		Len:  uint64(size),
	}
	remoteIov := unix.RemoteIovec{
		Base: uintptr(remoteAddr),
		Len:  int(size),
	}

	n, _, errno := unix.Syscall6(
		unix.SYS_PROCESS_VM_READV,
		uintptr(pid),
		uintptr(unsafe.Pointer(&localIov)),
		uintptr(1),
		uintptr(unsafe.Pointer(&remoteIov)),
		uintptr(1),
		uintptr(0), // flags, reserved
	)

	if errno != 0 {
		return nil, fmt.Errorf("process_vm_readv: %s (errno %d)", errno.Error(), errno)
	}
	if int(n) != int(size) {
		return nil, fmt.Errorf("partial read: %d of %d bytes", n, size)
	}

	return buf, nil
}

// processVMWritev uses the process_vm_writev syscall to write memory to
// another process in a single transfer.
func processVMWritev(pid process.ProcessID, remoteAddr process.ProcessMemoryAddress, data []byte) (int, error) {
	localIov := unix.Iovec{
		Base: &data[0],
		Len:  uint64(len(data)),
	}
	remoteIov := unix.RemoteIovec{
		Base: uintptr(remoteAddr),
		Len:  len(data),
	}

	n, _, errno := unix.Syscall6(
		unix.SYS_PROCESS_VM_WRITEV,
		uintptr(pid),
		uintptr(unsafe.Pointer(&localIov)),
		uintptr(1),
		uintptr(unsafe.Pointer(&remoteIov)),
		uintptr(1),
		uintptr(0), // flags, reserved
	)

	if errno != 0 {
		return 0, fmt.Errorf("process_vm_writev: %s (errno %d)", errno.Error(), errno)
	}

	return int(n), nil
}

// ReadMemory transfers exactly size bytes from the target at addr.
// One syscall, no cache, no retry; a short read is total failure.
func (p *LinuxProcess) ReadMemory(addr process.ProcessMemoryAddress, size process.ProcessMemorySize) ([]byte, error) {
	if size == 0 {
		return []byte{}, nil
	}

	pid, err := p.checkedPid()
	if err != nil {
		return nil, err
	}

	data, err := processVMReadv(pid, addr, size)
	if err != nil {
		return nil, fmt.Errorf("%w: read at %s: %v", process.ErrAccessDenied, addr, err)
	}

	return data, nil
}

// WriteMemory transfers all of data to the target at addr with the same
// all-or-nothing contract as ReadMemory.
func (p *LinuxProcess) WriteMemory(addr process.ProcessMemoryAddress, data []byte) error {
	if len(data) == 0 {
		return nil
	}

	pid, err := p.checkedPid()
	if err != nil {
		return err
	}

	// Copy so the caller's buffer cannot change mid-syscall.
	local := make([]byte, len(data))
	copy(local, data)

	written, err := processVMWritev(pid, addr, local)
	if err != nil {
		return fmt.Errorf("%w: write at %s: %v", process.ErrAccessDenied, addr, err)
	}
	if written != len(data) {
		return fmt.Errorf("%w: short write at %s: %d of %d bytes", process.ErrAccessDenied, addr, written, len(data))
	}

	return nil
}
