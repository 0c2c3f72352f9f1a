//go:build windows

// Package process terminates the Chrome process tree left behind by the
// PDF renderer.
package process

import (
	"os/exec"
	"strconv"
)

// KillProcessGroup force-kills pid and its children with taskkill /T.
func KillProcessGroup(pid int) {
	// Errors ignored: the launcher's own Kill runs afterwards.
	_ = exec.Command("taskkill", "/F", "/T", "/PID", strconv.Itoa(pid)).Run()
}
