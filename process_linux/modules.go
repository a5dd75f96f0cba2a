//go:build linux

package process_linux

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Aryetis/CatalystAPI/process"
)

// Modules enumerates the target's loaded modules by walking
// /proc/<pid>/maps. A module's base is the lowest mapping address of its
// backing file; the list is rebuilt on every call.
func (p *LinuxProcess) Modules() ([]process.ModuleInfo, error) {
	pid, err := p.checkedPid()
	if err != nil {
		return nil, err
	}

	file, err := os.Open(fmt.Sprintf("/proc/%d/maps", pid))
	if err != nil {
		return nil, fmt.Errorf("open maps: %w", err)
	}
	defer file.Close()

	return parseMaps(file)
}

// parseMaps groups file-backed mappings by basename: lowest start is the
// module base, highest end bounds its size. First-seen order is kept.
func parseMaps(r io.Reader) ([]process.ModuleInfo, error) {
	type span struct {
		base process.ProcessMemoryAddress
		end  uint64
	}
	spans := make(map[string]*span)
	var order []string

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		// addr-range perms offset dev inode pathname
		if len(fields) < 6 || !strings.HasPrefix(fields[5], "/") {
			continue
		}

		addrRange := strings.Split(fields[0], "-")
		if len(addrRange) != 2 {
			continue
		}
		start, err := strconv.ParseUint(addrRange[0], 16, 64)
		if err != nil {
			continue
		}
		end, err := strconv.ParseUint(addrRange[1], 16, 64)
		if err != nil {
			continue
		}

		name := filepath.Base(fields[5])
		s, ok := spans[name]
		if !ok {
			spans[name] = &span{base: process.ProcessMemoryAddress(start), end: end}
			order = append(order, name)
			continue
		}
		if process.ProcessMemoryAddress(start) < s.base {
			s.base = process.ProcessMemoryAddress(start)
		}
		if end > s.end {
			s.end = end
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan maps: %w", err)
	}

	modules := make([]process.ModuleInfo, 0, len(order))
	for _, name := range order {
		s := spans[name]
		modules = append(modules, process.ModuleInfo{
			Name: name,
			Base: s.base,
			Size: s.end - uint64(s.base),
		})
	}
	return modules, nil
}

// ModuleBase resolves the base address of a named module. The match is
// exact, case-sensitive, extension included.
func (p *LinuxProcess) ModuleBase(name string) (process.ProcessMemoryAddress, error) {
	modules, err := p.Modules()
	if err != nil {
		return 0, err
	}
	return process.FindModuleBase(modules, name)
}
