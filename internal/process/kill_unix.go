//go:build !windows

package process

import "syscall"

// KillTree force-kills a launched browser together with its renderer and GPU
// children by signalling the process group. PIDs below 2 are ignored so a zero
// value from an unstarted launcher never targets our own group or init.
func KillTree(pid int) {
	if pid < 2 {
		return
	}
	// Best-effort: the launcher's own Kill runs afterwards.
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
