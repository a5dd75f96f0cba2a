//go:build windows

package scope

import (
	"errors"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32                       = syscall.NewLazyDLL("user32.dll")
	procGetForegroundWindow      = user32.NewProc("GetForegroundWindow")
	procGetWindowThreadProcessId = user32.NewProc("GetWindowThreadProcessId")
)

// SystemQuery resolves the foreground window's owning process name via
// user32/psapi.
type SystemQuery struct{}

// NewSystemQuery creates the platform foreground query.
func NewSystemQuery() *SystemQuery {
	return &SystemQuery{}
}

// ForegroundProcessName resolves the image base name of the process that
// owns the current foreground window. A desktop with no foreground
// window, or an owner this process lacks rights to open, is an error.
func (q *SystemQuery) ForegroundProcessName() (string, error) {
	hwnd, _, _ := procGetForegroundWindow.Call()
	if hwnd == 0 {
		return "", errors.New("no foreground window")
	}

	var pid uint32
	procGetWindowThreadProcessId.Call(hwnd, uintptr(unsafe.Pointer(&pid)))
	if pid == 0 {
		return "", errors.New("foreground window has no owning process")
	}

	handle, err := windows.OpenProcess(windows.PROCESS_QUERY_INFORMATION|windows.PROCESS_VM_READ, false, pid)
	if err != nil {
		return "", err
	}
	defer windows.CloseHandle(handle)

	var name [windows.MAX_PATH]uint16
	if err := windows.GetModuleBaseName(handle, 0, &name[0], windows.MAX_PATH); err != nil {
		return "", err
	}
	return windows.UTF16ToString(name[:]), nil
}
