//go:build linux

package process_linux

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/Aryetis/CatalystAPI/process"
)

// ListPidsByName returns all processes whose comm or exe basename equals
// name. The match is case-sensitive, like pidof.
func ListPidsByName(name string) ([]process.ProcessID, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: empty name", process.ErrProcessNotFound)
	}

	entries, err := os.ReadDir("/proc")
	if err != nil {
		return nil, fmt.Errorf("read /proc: %w", err)
	}

	selfPid := os.Getpid()
	var out []process.ProcessID

	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		pid, err := strconv.Atoi(e.Name())
		if err != nil || pid <= 0 {
			continue // not a PID dir
		}
		if pid == selfPid {
			continue
		}

		comm, _ := os.ReadFile(filepath.Join("/proc", e.Name(), "comm"))
		if string(trimSpaceRight(comm)) == name {
			out = append(out, process.ProcessID(pid))
			continue
		}

		// Resolve /proc/<pid>/exe; may fail if zombie or permission
		exe, _ := os.Readlink(filepath.Join("/proc", e.Name(), "exe"))
		if exe != "" && filepath.Base(exe) == name {
			out = append(out, process.ProcessID(pid))
		}
	}

	return out, nil
}

// FindPidByName returns the lowest matching PID for determinism, or
// process.ErrProcessNotFound when nothing matches.
func FindPidByName(name string) (process.ProcessID, error) {
	pids, err := ListPidsByName(name)
	if err != nil {
		return 0, err
	}
	if len(pids) == 0 {
		return 0, fmt.Errorf("%w: %q", process.ErrProcessNotFound, name)
	}
	min := pids[0]
	for _, pid := range pids[1:] {
		if pid < min {
			min = pid
		}
	}
	return min, nil
}

func trimSpaceRight(b []byte) []byte {
	for len(b) > 0 {
		switch b[len(b)-1] {
		case '\n', '\r', ' ', '\t':
			b = b[:len(b)-1]
		default:
			return b
		}
	}
	return b
}
