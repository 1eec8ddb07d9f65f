//go:build windows

package process

import (
	"os/exec"
	"strconv"
)

// KillTree force-kills a launched browser and its child processes with taskkill
// (/T walks the tree). PIDs below 2 are ignored.
func KillTree(pid int) {
	if pid < 2 {
		return
	}
	_ = exec.Command("taskkill", "/F", "/T", "/PID", strconv.Itoa(pid)).Run() // #nosec G204 -- pid is an int
}
