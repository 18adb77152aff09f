package dispatch

import "fmt"

// NotFoundError 表示包管理器不在 PATH 上，此时不会启动任何子进程
type NotFoundError struct {
	Name string
	Err  error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("couldn't find %s on the path: %v", e.Name, e.Err)
}

func (e *NotFoundError) Unwrap() error { return e.Err }

// SignaledError 表示子进程被信号终止，没有可转发的退出码
type SignaledError struct {
	Name  string
	State string
}

func (e *SignaledError) Error() string {
	return fmt.Sprintf("%s exited without an exit code (%s)", e.Name, e.State)
}
