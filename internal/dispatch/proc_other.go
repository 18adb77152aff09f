//go:build !linux && !windows

package dispatch

import (
	"os"
	"syscall"
)

func sysProcAttr() *syscall.SysProcAttr {
	return nil
}

func bindChild(*os.Process) (func(), error) {
	return nil, nil
}
