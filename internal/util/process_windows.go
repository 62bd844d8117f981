//go:build windows

package util

import "os"

// processAlive relies on FindProcess opening a handle, which fails for exited pids.
func processAlive(pid int) bool {
	p, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	p.Release()
	return true
}
