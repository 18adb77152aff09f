//go:build linux

package dispatch

import (
	"os"
	"syscall"

	"golang.org/x/sys/unix"
)

// 父进程被 SIGKILL 等无法捕获的信号杀死时，内核随之杀死子进程
func sysProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Pdeathsig: unix.SIGKILL}
}

func bindChild(*os.Process) (func(), error) {
	return nil, nil
}
