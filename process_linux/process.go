//go:build linux

package process_linux

import (
	"fmt"
	"os"
	"sync"

	"github.com/Aryetis/CatalystAPI/process"

	"github.com/Moonlight-Companies/gologger/coloransi"
	"github.com/Moonlight-Companies/gologger/logger"
)

// LinuxProcess implements the process.Process interface for Linux
// systems. There is no kernel handle object to hold; attachment is the
// recorded PID plus the access mask the caller asked for, and liveness
// is re-checked against /proc before every transfer.
type LinuxProcess struct {
	pid    process.ProcessID
	access process.Access
	log    *logger.Logger
	mu     sync.Mutex
}

// New creates a new LinuxProcess instance
func New(access ...process.Access) process.Process {
	a := process.DefaultAccess
	if len(access) > 0 {
		a = access[0]
	}
	return &LinuxProcess{
		access: a,
		log:    logger.NewLogger(coloransi.Color(coloransi.Red, coloransi.ColorOrange, "process-not-open")),
	}
}

// NewWithPid creates a new LinuxProcess instance and opens it with the given PID
func NewWithPid(pid process.ProcessID, access ...process.Access) (process.Process, error) {
	p := New(access...)
	if err := p.Open(pid); err != nil {
		return nil, err
	}
	return p, nil
}

// NewWithName opens the first running process whose comm or exe basename
// equals name. First match wins when several processes share a name.
func NewWithName(name string, access ...process.Access) (process.Process, error) {
	pid, err := FindPidByName(name)
	if err != nil {
		return nil, err
	}
	return NewWithPid(pid, access...)
}

func (p *LinuxProcess) Open(pid process.ProcessID) error {
	if !procExists(pid) {
		return fmt.Errorf("%w: pid %d", process.ErrProcessNotFound, pid)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.pid = pid
	p.log = logger.NewLogger(coloransi.Color(coloransi.ColorPurple, coloransi.ColorOrange, fmt.Sprintf("process-%d", pid)))
	p.log.Infoln("Process opened")

	return nil
}

func (p *LinuxProcess) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closeInternal()
	return nil
}

func (p *LinuxProcess) closeInternal() {
	p.pid = 0
	p.log = logger.NewLogger(coloransi.Color(coloransi.Red, coloransi.ColorOrange, "process-not-open"))
	p.log.Infoln("Process closed")
}

func (p *LinuxProcess) Pid() process.ProcessID {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pid
}

// checkedPid returns the attached PID, or ErrHandleClosed once the
// accessor is closed or has observed the target exit. The exit check
// detaches so no later transfer reaches the syscall.
func (p *LinuxProcess) checkedPid() (process.ProcessID, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.pid == 0 {
		return 0, process.ErrHandleClosed
	}
	if !procExists(p.pid) {
		p.log.Warn("Target process exited")
		p.closeInternal()
		return 0, process.ErrHandleClosed
	}
	return p.pid, nil
}

func procExists(pid process.ProcessID) bool {
	_, err := os.Stat(fmt.Sprintf("/proc/%d", pid))
	return err == nil
}
