//go:build unix

package tunnel

import "syscall"

// detachedProcAttr starts the child in its own session so it survives the
// parent and never receives the parent's terminal signals.
func detachedProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setsid: true}
}
