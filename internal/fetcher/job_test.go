package fetcher

import (
	"testing"
	"time"

	"github.com/hochfrequenz/streamwatch/internal/domain"
)

func waitFinished(t *testing.T, j *Job) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !j.Finished() {
		if time.Now().After(deadline) {
			t.Fatal("job did not finish in time")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestJob_StreamsOutput(t *testing.T) {
	c := &Client{bin: "sh"}

	j, err := c.start(domain.CaptureVideo, []string{"-c", "echo first; echo second"})
	if err != nil {
		t.Fatal(err)
	}
	waitFinished(t, j)

	if j.ExitCode() != 0 {
		t.Errorf("ExitCode = %d, want 0", j.ExitCode())
	}

	lines := j.Drain()
	if len(lines) != 2 || lines[0] != "first" || lines[1] != "second" {
		t.Errorf("Drain = %v, want [first second]", lines)
	}
	if got := j.Drain(); len(got) != 0 {
		t.Errorf("second Drain should be empty, got %v", got)
	}
}

func TestJob_NonZeroExit(t *testing.T) {
	c := &Client{bin: "sh"}

	j, err := c.start(domain.CaptureChat, []string{"-c", "echo failing >&2; exit 3"})
	if err != nil {
		t.Fatal(err)
	}
	waitFinished(t, j)

	if j.ExitCode() != 3 {
		t.Errorf("ExitCode = %d, want 3", j.ExitCode())
	}
	lines := j.Drain()
	if len(lines) != 1 || lines[0] != "failing" {
		t.Errorf("stderr should be captured, got %v", lines)
	}
	if j.Kind() != domain.CaptureChat {
		t.Errorf("Kind = %s, want chat", j.Kind())
	}
}

func TestStart_MissingBinary(t *testing.T) {
	c := &Client{bin: "definitely-not-a-real-binary"}

	if _, err := c.start(domain.CaptureVideo, nil); err == nil {
		t.Error("expected error starting a missing binary")
	}
}
