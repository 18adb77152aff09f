package core

import (
	"fmt"
	"runtime/debug"

	"go.uber.org/zap"
)

// SafeRun 安全执行 Run，捕获 panic 并转换为错误
func SafeRun(opts Options) (code int, err error) {
	defer func() {
		if r := recover(); r != nil {
			stack := string(debug.Stack())
			err = fmt.Errorf("lockrun panic: %v", r)
			code = ExitAbort

			if opts.Logger != nil {
				opts.Logger.Desugar().Error("执行 panic",
					zap.Any("panic", r),
					zap.String("stack", stack),
				)
			}
		}
	}()

	return Run(opts)
}
