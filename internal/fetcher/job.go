package fetcher

import (
	"bufio"
	"fmt"
	"io"
	"os/exec"
	"sync"

	"github.com/hochfrequenz/streamwatch/internal/domain"
)

// Job is one running capture subprocess. Output is buffered internally
// and drained incrementally by the watch loop so long downloads are
// relayed to the log as they progress rather than only at the end.
type Job struct {
	kind domain.CaptureKind
	cmd  *exec.Cmd

	mu       sync.Mutex
	pending  []string
	finished bool
	exitCode int
}

// start launches the subprocess and begins streaming its output.
// The command is deliberately not bound to a context: on watcher
// shutdown the tool must be left to handle its own signals and finalize
// the partial file as a playable download. Killing it here would
// truncate output mid-write.
func (c *Client) start(kind domain.CaptureKind, args []string) (*Job, error) {
	cmd := exec.Command(c.bin, args...)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, err
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("starting %s %s capture: %w", c.bin, kind, err)
	}

	j := &Job{kind: kind, cmd: cmd}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		j.collect(stdout)
	}()
	go func() {
		defer wg.Done()
		j.collect(stderr)
	}()

	go func() {
		wg.Wait()
		err := cmd.Wait()

		code := 0
		if exitErr, ok := err.(*exec.ExitError); ok {
			code = exitErr.ExitCode()
		} else if err != nil {
			code = -1
			j.append(fmt.Sprintf("wait failed: %v", err))
		}

		j.mu.Lock()
		j.exitCode = code
		j.finished = true
		j.mu.Unlock()
	}()

	return j, nil
}

func (j *Job) collect(r io.Reader) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		j.append(scanner.Text())
	}
}

func (j *Job) append(line string) {
	j.mu.Lock()
	j.pending = append(j.pending, line)
	j.mu.Unlock()
}

// Kind returns which payload this job captures.
func (j *Job) Kind() domain.CaptureKind { return j.kind }

// PID returns the subprocess ID.
func (j *Job) PID() int { return j.cmd.Process.Pid }

// Drain returns and clears the output lines buffered since the last call.
func (j *Job) Drain() []string {
	j.mu.Lock()
	defer j.mu.Unlock()
	lines := j.pending
	j.pending = nil
	return lines
}

// Finished reports whether the subprocess has reached a terminal state.
func (j *Job) Finished() bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.finished
}

// ExitCode returns the terminal exit status. Only meaningful once
// Finished reports true.
func (j *Job) ExitCode() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.exitCode
}
