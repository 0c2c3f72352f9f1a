//go:build !windows

// Package process terminates the Chrome process tree left behind by the
// PDF renderer.
package process

import "syscall"

// KillProcessGroup sends SIGKILL to the process group led by pid, taking
// renderer and GPU helpers down with the browser.
func KillProcessGroup(pid int) {
	// Errors ignored: the launcher's own Kill runs afterwards.
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
