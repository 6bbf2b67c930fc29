// Package watchdog keeps the watcher process alive: launch it, wait for
// it to exit by any cause, log the outcome, and relaunch after a fixed
// delay, forever.
package watchdog

import (
	"context"
	"io"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Supervisor relaunches the watcher on every exit. The watcher is
// designed to run indefinitely, so a clean zero exit is treated exactly
// like a crash: logged, counted, restarted.
type Supervisor struct {
	Command      string
	Args         []string
	RestartDelay time.Duration
	Log          *logrus.Entry
	Stdout       io.Writer
	Stderr       io.Writer

	mu    sync.Mutex
	exits int
}

// New creates a supervisor for the given watcher command. The child's
// output passes through to this process's stdout/stderr; the watcher
// writes its own log file.
func New(command string, args []string, delay time.Duration, log *logrus.Entry) *Supervisor {
	return &Supervisor{
		Command:      command,
		Args:         args,
		RestartDelay: delay,
		Log:          log,
		Stdout:       os.Stdout,
		Stderr:       os.Stderr,
	}
}

// Run supervises until ctx is cancelled. It never returns on its own:
// exits, crashes, and even launch failures all lead to another attempt
// after the restart delay.
func (s *Supervisor) Run(ctx context.Context) error {
	for {
		code, err := s.runOnce()
		count := s.recordExit()

		switch {
		case err != nil:
			s.Log.Errorf("failed to launch watcher: %v (exit #%d)", err, count)
		case code == 0:
			s.Log.Warnf("watcher exited with code 0; restarting anyway (exit #%d)", count)
		default:
			s.Log.Warnf("watcher exited with code %d (exit #%d)", code, count)
		}

		s.Log.Infof("restarting in %s", s.RestartDelay)
		if err := sleepCtx(ctx, s.RestartDelay); err != nil {
			return err
		}
	}
}

// runOnce launches the watcher and blocks until it exits, returning its
// exit code. A non-nil error means the process could not be started at
// all.
func (s *Supervisor) runOnce() (int, error) {
	cmd := exec.Command(s.Command, s.Args...)
	cmd.Stdout = s.Stdout
	cmd.Stderr = s.Stderr

	if err := cmd.Start(); err != nil {
		return -1, err
	}
	s.Log.Infof("watcher started (pid %d)", cmd.Process.Pid)

	err := cmd.Wait()
	if exitErr, ok := err.(*exec.ExitError); ok {
		return exitErr.ExitCode(), nil
	}
	if err != nil {
		return -1, err
	}
	return 0, nil
}

func (s *Supervisor) recordExit() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.exits++
	return s.exits
}

// Exits returns how many times the watcher has exited since the
// supervisor started. The counter is never reset.
func (s *Supervisor) Exits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.exits
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
