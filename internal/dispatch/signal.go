package dispatch

import (
	"os"
	"os/signal"
	"sync"

	"go.uber.org/zap"
)

// forwardSignals 在子进程运行期间接管终止类信号，需要时转交给子进程，
// 而不是让 lockrun 先退出留下孤儿进程。返回的 stop 会等待转发协程退出。
func forwardSignals(p *os.Process, log *zap.SugaredLogger) (stop func()) {
	sigCh := make(chan os.Signal, len(forwardedSignals))
	signal.Notify(sigCh, forwardedSignals...)

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case sig := <-sigCh:
				sent, err := relay(p, sig)
				switch {
				case err != nil:
					log.Debugw("转发信号失败", "signal", sig.String(), "error", err)
				case sent:
					log.Debugw("转发信号", "signal", sig.String(), "pid", p.Pid)
				default:
					log.Debugw("子进程已通过进程组收到信号", "signal", sig.String(), "pid", p.Pid)
				}
			case <-done:
				return
			}
		}
	}()

	return func() {
		signal.Stop(sigCh)
		close(done)
		wg.Wait()
	}
}
