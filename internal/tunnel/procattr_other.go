//go:build !unix

package tunnel

import "syscall"

func detachedProcAttr() *syscall.SysProcAttr {
	return nil
}
