//go:build windows

package process_windows

import (
	"fmt"
	"unsafe"

	"github.com/Aryetis/CatalystAPI/process"

	"golang.org/x/sys/windows"
)

// Modules enumerates the target's currently loaded modules. The list is
// rebuilt on every call; bases are never cached because module layout
// changes across target restarts.
func (p *WindowsProcess) Modules() ([]process.ModuleInfo, error) {
	handle, err := p.checkedHandle()
	if err != nil {
		return nil, err
	}

	var handles [1024]windows.Handle
	var needed uint32
	if err := windows.EnumProcessModules(handle, &handles[0], uint32(unsafe.Sizeof(handles[0]))*1024, &needed); err != nil {
		return nil, fmt.Errorf("EnumProcessModules: %w", err)
	}
	count := needed / uint32(unsafe.Sizeof(handles[0]))

	var modules []process.ModuleInfo
	for i := uint32(0); i < count; i++ {
		var mi windows.ModuleInfo
		if err := windows.GetModuleInformation(handle, handles[i], &mi, uint32(unsafe.Sizeof(mi))); err != nil {
			continue
		}

		var name [windows.MAX_PATH]uint16
		if err := windows.GetModuleBaseName(handle, handles[i], &name[0], windows.MAX_PATH); err != nil {
			continue
		}

		modules = append(modules, process.ModuleInfo{
			Name: windows.UTF16ToString(name[:]),
			Base: process.ProcessMemoryAddress(mi.BaseOfDll),
			Size: uint64(mi.SizeOfImage),
		})
	}

	return modules, nil
}

// ModuleBase resolves the base address of a named module. The match is
// exact, case-sensitive, extension included. An unenumerable or empty
// module list resolves to ErrModuleNotFound, not a crash.
func (p *WindowsProcess) ModuleBase(name string) (process.ProcessMemoryAddress, error) {
	modules, err := p.Modules()
	if err != nil {
		return 0, err
	}
	return process.FindModuleBase(modules, name)
}
