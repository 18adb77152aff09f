package main

import (
	"io"
	"os"
	"strings"

	"github.com/25smoking/lockrun/internal/config"
	"github.com/25smoking/lockrun/internal/core"
	"github.com/25smoking/lockrun/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var log *zap.SugaredLogger

func newRootCmd(exitCode *int) *cobra.Command {
	return &cobra.Command{
		Use:   "lockrun [args...]",
		Short: "Run npm, yarn or pnpm depending on the lockfile in the current directory",
		Long: `lockrun looks for yarn.lock, pnpm-lock.yaml or package-lock.json in the
current directory and runs the matching package manager with the same
arguments, exiting with its exit code.`,
		Args: cobra.ArbitraryArgs,
		// 所有参数 (包括 --help) 原样转发给包管理器
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := forward(args, cmd.ErrOrStderr())
			*exitCode = code
			return err
		},
	}
}

func forward(args []string, stderr io.Writer) (int, error) {
	return core.SafeRun(core.Options{
		Args:   args,
		Stderr: stderr,
		Logger: log,
	})
}

// isCompletionRequest 判断 args 是否会被 cobra 当作隐藏的 shell 补全命令处理
func isCompletionRequest(args []string) bool {
	return len(args) > 0 && strings.HasPrefix(args[0], cobra.ShellCompRequestCmd)
}

func newLogger() *zap.Logger {
	cfg, err := config.Load("")
	if err != nil {
		logger := logging.New(config.LogConfig{}, os.Stderr)
		logger.Warn("配置加载失败，使用默认日志设置", zap.Error(err))
		return logger
	}
	return logging.New(cfg.Log, os.Stderr)
}

func run(args []string) (code int) {
	logger := newLogger()
	log = logger.Sugar()

	defer func() {
		if r := recover(); r != nil {
			log.Errorf("程序发生 panic: %v", r)
			code = core.ExitAbort
		}
		logging.Sync(logger)
	}()

	// cobra 在 args 为 nil 时会改读 os.Args
	if args == nil {
		args = []string{}
	}
	var err error
	if isCompletionRequest(args) {
		// __complete / __completeNoDesc 属于包管理器，不交给 cobra
		code, err = forward(args, os.Stderr)
	} else {
		rootCmd := newRootCmd(&code)
		rootCmd.SetArgs(args)
		err = rootCmd.Execute()
	}
	if err != nil {
		log.Errorw("lockrun 中止", "error", err)
		if code == 0 {
			code = core.ExitAbort
		}
	}
	return code
}

func main() {
	os.Exit(run(os.Args[1:]))
}
