// Package fetcher wraps invocation of the external media-fetching tool
// (yt-dlp) for liveness probes, capture jobs, and self-updates.
package fetcher

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/hochfrequenz/streamwatch/internal/domain"
)

const probeTimeout = 2 * time.Minute

// Client invokes the external fetch tool. The merge tool is never run
// directly but must be present for the fetcher's container merging.
type Client struct {
	bin      string
	mergeBin string
}

// NewClient creates a client using the default tool names on PATH.
func NewClient() *Client {
	return &Client{bin: "yt-dlp", mergeBin: "ffmpeg"}
}

// CheckTools verifies the fetch and merge tools are resolvable on PATH.
// Their absence is startup-fatal; discovering it mid-run, hours into a
// stream, would be far worse.
func (c *Client) CheckTools() error {
	for _, bin := range []string{c.bin, c.mergeBin} {
		if _, err := exec.LookPath(bin); err != nil {
			return fmt.Errorf("required tool %q not found on PATH: %w", bin, err)
		}
	}
	return nil
}

// ProbeLive checks whether liveURL currently resolves to a playable
// stream. It returns the resolved URL when live and "" when not. The
// tool exiting non-zero means "not live", not an error: probes are a
// liveness oracle with possible false negatives, and the caller simply
// retries on its next poll.
func (c *Client) ProbeLive(ctx context.Context, liveURL string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, c.bin, ProbeArgs(liveURL)...)

	var out bytes.Buffer
	cmd.Stdout = &out

	if err := cmd.Run(); err != nil {
		if _, ok := err.(*exec.ExitError); ok {
			return "", nil
		}
		return "", fmt.Errorf("probing %s: %w", liveURL, err)
	}

	resolved := strings.TrimSpace(out.String())
	if resolved == "" {
		return "", nil
	}
	// The tool may print separate video and audio URLs; the first line
	// is enough to know the stream is live.
	if i := strings.IndexByte(resolved, '\n'); i >= 0 {
		resolved = resolved[:i]
	}
	return resolved, nil
}

// SelfUpdate runs the fetch tool's own update check. An out-of-date
// tool is a degraded-but-running condition; callers log the error and
// carry on.
func (c *Client) SelfUpdate(ctx context.Context) error {
	cmd := exec.CommandContext(ctx, c.bin, "-U")
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("self-update: %s: %w", strings.TrimSpace(string(out)), err)
	}
	return nil
}

// StartCapture launches one capture subprocess for the given channel.
func (c *Client) StartCapture(ctx context.Context, kind domain.CaptureKind, ch domain.Channel, saveMetadata bool) (*Job, error) {
	var args []string
	switch kind {
	case domain.CaptureChat:
		args = ChatArgs(ch)
	default:
		args = VideoArgs(ch, saveMetadata)
	}
	return c.start(kind, args)
}
