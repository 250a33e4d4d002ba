//go:build windows

package playback

import (
	"golang.org/x/sys/windows"
)

// isProcessAlive checks if a process with the given PID is still running by
// opening it with the minimum query access right.
func isProcessAlive(pid int) bool {
	const PROCESS_QUERY_LIMITED_INFORMATION = 0x1000

	handle, err := windows.OpenProcess(PROCESS_QUERY_LIMITED_INFORMATION, false, uint32(pid))
	if err != nil {
		return false
	}
	windows.CloseHandle(handle)
	return true
}
