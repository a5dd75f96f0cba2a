//go:build windows

package main

import (
	"github.com/Aryetis/CatalystAPI/process"
	"github.com/Aryetis/CatalystAPI/process_windows"
)

func getProcess(name string, pid int) (process.Process, error) {
	if name != "" {
		return process_windows.NewWithName(name)
	}
	return process_windows.NewWithPid(process.ProcessID(pid))
}
