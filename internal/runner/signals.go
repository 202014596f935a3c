package runner

import (
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
)

var relayedSignals = []os.Signal{os.Interrupt, syscall.SIGTERM, syscall.SIGHUP}

func notifySignals() chan os.Signal {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, relayedSignals...)
	return ch
}

// relaySignals keeps the launcher alive while its child runs so the exit
// status can be taken from the child. Interrupts are not forwarded: the
// terminal already delivers them to the whole foreground process group.
// Other signals are passed on to the child. The returned func stops the
// relay and must be called once the child has exited.
func relaySignals(proc *os.Process, sigCh chan os.Signal, logger *zap.Logger) (stop func()) {
	done := make(chan struct{})
	finished := make(chan struct{})

	go func() {
		defer close(finished)
		for {
			select {
			case <-done:
				return
			case sig := <-sigCh:
				if sig == os.Interrupt {
					logger.Debug("interrupt received, waiting for child", zap.Int("pid", proc.Pid))
					continue
				}
				logger.Info("forwarding signal", zap.Stringer("signal", sig), zap.Int("pid", proc.Pid))
				if err := proc.Signal(sig); err != nil {
					logger.Warn("signal failed (process may have exited)", zap.Error(err))
				}
			}
		}
	}()

	return func() {
		signal.Stop(sigCh)
		close(done)
		<-finished
	}
}
