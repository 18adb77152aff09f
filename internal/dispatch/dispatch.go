// Package dispatch 在 PATH 上定位包管理器，以继承的标准流启动它并转发其退出码。
package dispatch

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"

	"go.uber.org/zap"
)

// Dispatcher 启动并等待一个包管理器子进程
type Dispatcher struct {
	// LookPath 解析可执行文件，默认 exec.LookPath
	LookPath func(file string) (string, error)

	// 子进程的标准流，默认继承当前进程的 os.Stdin/os.Stdout/os.Stderr
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	log *zap.SugaredLogger
}

// New 创建使用当前进程标准流的 Dispatcher
func New(log *zap.SugaredLogger) *Dispatcher {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Dispatcher{
		LookPath: exec.LookPath,
		Stdin:    os.Stdin,
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		log:      log,
	}
}

// Resolve 按 shell 的方式在 PATH 上查找 name
func (d *Dispatcher) Resolve(name string) (string, error) {
	lookPath := d.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	path, err := lookPath(name)
	if err != nil {
		return "", &NotFoundError{Name: name, Err: err}
	}
	return path, nil
}

// Run 以 args 原样启动 name，工作目录为 dir，阻塞直到子进程退出并返回其退出码。
// 找不到可执行文件时返回 *NotFoundError 且不启动进程；
// 子进程被信号终止时返回 *SignaledError。
func (d *Dispatcher) Run(name string, args []string, dir string) (int, error) {
	path, err := d.Resolve(name)
	if err != nil {
		return 0, err
	}

	cmd := exec.Command(path, args...)
	cmd.Dir = dir
	cmd.Stdin = d.Stdin
	cmd.Stdout = d.Stdout
	cmd.Stderr = d.Stderr
	cmd.SysProcAttr = sysProcAttr()

	// Linux 的 parent-death 信号绑定在启动子进程的线程上
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	d.log.Debugw("启动包管理器", "path", path, "args", args, "dir", dir)

	if err := cmd.Start(); err != nil {
		return 0, fmt.Errorf("start %s: %w", name, err)
	}

	release, err := bindChild(cmd.Process)
	if err != nil {
		d.log.Warnw("无法绑定子进程生命周期", "pid", cmd.Process.Pid, "error", err)
	}
	stop := forwardSignals(cmd.Process, d.log)

	err = cmd.Wait()
	stop()
	if release != nil {
		release()
	}

	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return 0, fmt.Errorf("wait for %s: %w", name, err)
	}
	code := exitErr.ExitCode()
	if code < 0 {
		return 0, &SignaledError{Name: name, State: exitErr.ProcessState.String()}
	}
	d.log.Debugw("包管理器已退出", "name", name, "code", code)
	return code, nil
}
