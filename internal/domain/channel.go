// Package domain holds the core types shared across the watcher.
package domain

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

// CaptureKind identifies which payload a capture job fetches.
type CaptureKind string

const (
	CaptureVideo CaptureKind = "video"
	CaptureChat  CaptureKind = "chat"
)

// Channel is one watched live channel. Built once at startup and
// immutable for the process lifetime; each watch loop owns exactly one.
type Channel struct {
	URL       string // the channel page URL as configured
	Name      string // derived from the first URL path segment
	LiveURL   string // URL + "/live", the liveness probe target
	OutputDir string // per-channel subdirectory under the output root
}

// NewChannel builds a Channel from a configured URL and the output root.
func NewChannel(rawURL, outputRoot string) (Channel, error) {
	name, err := DeriveName(rawURL)
	if err != nil {
		return Channel{}, err
	}
	return Channel{
		URL:       rawURL,
		Name:      name,
		LiveURL:   strings.TrimRight(rawURL, "/") + "/live",
		OutputDir: filepath.Join(outputRoot, name),
	}, nil
}

// DeriveName extracts the channel name from a channel URL.
// The first path segment is the name; a leading "@" handle marker is
// stripped. For example "https://example.com/@Name/extra" yields "Name".
func DeriveName(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parsing channel URL %q: %w", rawURL, err)
	}
	for _, seg := range strings.Split(u.Path, "/") {
		if seg == "" {
			continue
		}
		return strings.TrimPrefix(seg, "@"), nil
	}
	return "", fmt.Errorf("channel URL %q has no path segment to derive a name from", rawURL)
}
