package core

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/25smoking/lockrun/internal/dispatch"
	"github.com/25smoking/lockrun/internal/sys/pkg_mgr"
	"go.uber.org/zap"
)

// 退出码
const (
	// ExitFailure 用于两种预期失败：无法识别包管理器、PATH 上找不到包管理器
	ExitFailure = 1
	// ExitAbort 用于意外错误：读目录失败、无法启动或等待子进程、子进程没有退出码
	ExitAbort = 2
)

const (
	msgNoManager = "Couldn't detect package manager. Exiting."
	msgNotFound  = "Couldn't find %s on the path. Exiting."
)

// Options 描述一次 lockrun 调用
type Options struct {
	Dir    string   // 为空时使用当前工作目录
	Args   []string // 原样转发给包管理器
	Stderr io.Writer

	Logger     *zap.SugaredLogger
	Dispatcher *dispatch.Dispatcher
}

// Run 检测 Dir 中的 lockfile，调用对应的包管理器并返回应使用的退出码。
// 两种预期失败只在 Stderr 写一行诊断并返回 ExitFailure；
// 其余错误原样返回，由调用方中止进程。
func Run(opts Options) (int, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}
	d := opts.Dispatcher
	if d == nil {
		d = dispatch.New(log)
	}

	dir := opts.Dir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return ExitAbort, fmt.Errorf("get working directory: %w", err)
		}
		dir = wd
	}

	kind, err := pkg_mgr.Detect(dir)
	if err != nil {
		return ExitAbort, err
	}
	if kind == pkg_mgr.Unknown {
		fmt.Fprintln(stderr, msgNoManager)
		return ExitFailure, nil
	}
	log.Debugw("检测到包管理器", "manager", kind.Name(), "lockfile", kind.Lockfile(), "dir", dir)

	code, err := d.Run(kind.Name(), opts.Args, dir)
	if err != nil {
		var nf *dispatch.NotFoundError
		if errors.As(err, &nf) {
			fmt.Fprintf(stderr, msgNotFound+"\n", nf.Name)
			return ExitFailure, nil
		}
		return ExitAbort, err
	}
	return code, nil
}
