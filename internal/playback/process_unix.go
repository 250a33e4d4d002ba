//go:build !windows

package playback

import (
	"os"
	"syscall"
)

// isProcessAlive checks if a process with the given PID is still running.
// Signal 0 is a no-op that tests process existence.
func isProcessAlive(pid int) bool {
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	err = process.Signal(syscall.Signal(0))
	if err == nil {
		return true
	}
	// EPERM means the process exists but we cannot signal it
	return err == syscall.EPERM
}
