//go:build windows

package process_windows

import (
	"fmt"
	"strings"
	"sync"
	"unsafe"

	"github.com/Aryetis/CatalystAPI/process"

	"github.com/Moonlight-Companies/gologger/coloransi"
	"github.com/Moonlight-Companies/gologger/logger"

	"golang.org/x/sys/windows"
)

// GetExitCodeProcess reports this while the target is still running.
const stillActive = 259

// WindowsProcess implements the process.Process interface for Windows systems
type WindowsProcess struct {
	pid    process.ProcessID
	handle windows.Handle
	access process.Access
	log    *logger.Logger
	mu     sync.Mutex
}

// New creates a new WindowsProcess instance. When no access mask is given
// the handle is opened with query-information + VM read + VM write.
func New(access ...process.Access) process.Process {
	a := process.DefaultAccess
	if len(access) > 0 {
		a = access[0]
	}
	return &WindowsProcess{
		access: a,
		log:    logger.NewLogger(coloransi.Color(coloransi.Red, coloransi.ColorOrange, "process-not-open")),
	}
}

// NewWithPid creates a new WindowsProcess instance and opens it with the given PID
func NewWithPid(pid process.ProcessID, access ...process.Access) (process.Process, error) {
	p := New(access...)
	if err := p.Open(pid); err != nil {
		return nil, err
	}
	return p, nil
}

// NewWithName opens the first running process whose image name matches
// name, case-insensitively. When several processes share an image name
// the first one the snapshot yields wins; disambiguating further needs
// a PID from the caller.
func NewWithName(name string, access ...process.Access) (process.Process, error) {
	pid, err := FindPidByName(name)
	if err != nil {
		return nil, err
	}
	return NewWithPid(pid, access...)
}

// FindPidByName walks a Toolhelp32 process snapshot looking for an image
// name match. Returns process.ErrProcessNotFound when nothing matches.
func FindPidByName(name string) (process.ProcessID, error) {
	snapshot, err := windows.CreateToolhelp32Snapshot(windows.TH32CS_SNAPPROCESS, 0)
	if err != nil {
		return 0, fmt.Errorf("CreateToolhelp32Snapshot: %w", err)
	}
	defer windows.CloseHandle(snapshot)

	var entry windows.ProcessEntry32
	entry.Size = uint32(unsafe.Sizeof(entry))
	if err := windows.Process32First(snapshot, &entry); err != nil {
		return 0, fmt.Errorf("Process32First: %w", err)
	}
	for {
		if strings.EqualFold(windows.UTF16ToString(entry.ExeFile[:]), name) {
			return process.ProcessID(entry.ProcessID), nil
		}
		if err := windows.Process32Next(snapshot, &entry); err != nil {
			break
		}
	}
	return 0, fmt.Errorf("%w: %q", process.ErrProcessNotFound, name)
}

func (p *WindowsProcess) Open(pid process.ProcessID) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	handle, err := windows.OpenProcess(uint32(p.access), false, uint32(pid))
	if err != nil {
		return fmt.Errorf("OpenProcess(%d): %w", pid, err)
	}

	p.pid = pid
	p.handle = handle
	p.log = logger.NewLogger(coloransi.Color(coloransi.ColorPurple, coloransi.ColorOrange, fmt.Sprintf("process-%d", pid)))
	p.log.Infoln("Process opened")

	return nil
}

func (p *WindowsProcess) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closeInternal()
}

func (p *WindowsProcess) closeInternal() error {
	if p.handle != 0 {
		if err := windows.CloseHandle(p.handle); err != nil {
			return fmt.Errorf("CloseHandle: %w", err)
		}
		p.handle = 0
	}

	p.pid = 0
	p.log = logger.NewLogger(coloransi.Color(coloransi.Red, coloransi.ColorOrange, "process-not-open"))
	p.log.Infoln("Process closed")

	return nil
}

func (p *WindowsProcess) Pid() process.ProcessID {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pid
}

// checkedHandle returns the open handle, or ErrHandleClosed once the
// accessor is closed or has observed the target exit. The exit check
// invalidates the handle so no later transfer reaches the syscall.
func (p *WindowsProcess) checkedHandle() (windows.Handle, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.handle == 0 {
		return 0, process.ErrHandleClosed
	}

	var code uint32
	if err := windows.GetExitCodeProcess(p.handle, &code); err == nil && code != stillActive {
		p.log.Warn("Target process exited with code ", code)
		p.closeInternal()
		return 0, process.ErrHandleClosed
	}

	return p.handle, nil
}

// ReadMemory transfers exactly size bytes from the target at addr.
// One syscall, no cache, no retry; a short read is total failure.
func (p *WindowsProcess) ReadMemory(addr process.ProcessMemoryAddress, size process.ProcessMemorySize) ([]byte, error) {
	if size == 0 {
		return []byte{}, nil
	}

	handle, err := p.checkedHandle()
	if err != nil {
		return nil, err
	}

	buf := make([]byte, size)
	var bytesRead uintptr
	err = windows.ReadProcessMemory(handle, uintptr(addr), &buf[0], uintptr(size), &bytesRead)
	if err != nil {
		return nil, fmt.Errorf("%w: ReadProcessMemory at %s: %v", process.ErrAccessDenied, addr, err)
	}
	if bytesRead != uintptr(size) {
		return nil, fmt.Errorf("%w: short read at %s: %d of %d bytes", process.ErrAccessDenied, addr, bytesRead, size)
	}

	return buf, nil
}

// WriteMemory transfers all of data to the target at addr with the same
// all-or-nothing contract as ReadMemory.
func (p *WindowsProcess) WriteMemory(addr process.ProcessMemoryAddress, data []byte) error {
	if len(data) == 0 {
		return nil
	}

	handle, err := p.checkedHandle()
	if err != nil {
		return err
	}

	var bytesWritten uintptr
	err = windows.WriteProcessMemory(handle, uintptr(addr), &data[0], uintptr(len(data)), &bytesWritten)
	if err != nil {
		return fmt.Errorf("%w: WriteProcessMemory at %s: %v", process.ErrAccessDenied, addr, err)
	}
	if bytesWritten != uintptr(len(data)) {
		return fmt.Errorf("%w: short write at %s: %d of %d bytes", process.ErrAccessDenied, addr, bytesWritten, len(data))
	}

	return nil
}
