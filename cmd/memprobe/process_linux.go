//go:build linux

package main

import (
	"github.com/Aryetis/CatalystAPI/process"
	"github.com/Aryetis/CatalystAPI/process_linux"
)

func getProcess(name string, pid int) (process.Process, error) {
	if name != "" {
		return process_linux.NewWithName(name)
	}
	return process_linux.NewWithPid(process.ProcessID(pid))
}
