//go:build !windows

package dispatch

import (
	"os"
	"syscall"

	"golang.org/x/sys/unix"
)

var forwardedSignals = []os.Signal{unix.SIGINT, unix.SIGTERM, unix.SIGHUP, unix.SIGQUIT}

// relay 把信号转交给子进程，返回是否真的发送了信号
func relay(p *os.Process, sig os.Signal) (bool, error) {
	s, ok := sig.(syscall.Signal)
	if !ok {
		return false, nil
	}

	childGroup, err := unix.Getpgid(p.Pid)
	if err != nil {
		// 子进程已退出
		return false, nil
	}
	if !shouldRelay(s, childGroup, unix.Getpgrp()) {
		return false, nil
	}
	return true, unix.Kill(p.Pid, s)
}

// shouldRelay: 终端产生的 SIGINT/SIGQUIT 已经投递给整个前台进程组，
// 子进程与 lockrun 同组时再转发一次会让它收到两次
func shouldRelay(sig syscall.Signal, childGroup, ownGroup int) bool {
	switch sig {
	case unix.SIGINT, unix.SIGQUIT:
		return childGroup != ownGroup
	}
	return true
}
