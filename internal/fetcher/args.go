package fetcher

import (
	"path/filepath"

	"github.com/hochfrequenz/streamwatch/internal/domain"
)

// OutputTemplate names saved files "{uploadDate}_{title}.{ext}" inside
// the channel directory.
const OutputTemplate = "%(upload_date)s_%(title)s.%(ext)s"

// ProbeArgs builds the argument list for a liveness probe: quiet, no
// warnings, resolve the playable URL only.
func ProbeArgs(liveURL string) []string {
	return []string{
		"--quiet",
		"--no-warnings",
		"-g",
		liveURL,
	}
}

// VideoArgs builds the argument list for a video capture: one merged
// container, captured from the stream start even when detected
// mid-stream, no partial-file suffix markers, and a fixed retry policy.
// The tool's own update check is skipped; that already happened once at
// watcher startup. With saveMetadata, thumbnail, description, and full
// metadata sidecar files are requested as well.
func VideoArgs(ch domain.Channel, saveMetadata bool) []string {
	args := []string{
		"-o", filepath.Join(ch.OutputDir, OutputTemplate),
		"--merge-output-format", "mp4",
		"--live-from-start",
		"--no-part",
		"--retries", "10",
		"--fragment-retries", "10",
		"--retry-sleep", "5",
		"--no-update",
	}
	if saveMetadata {
		args = append(args,
			"--write-thumbnail",
			"--write-description",
			"--write-info-json",
		)
	}
	return append(args, ch.LiveURL)
}

// ChatArgs builds the argument list for a chat capture: skip the video
// payload entirely and write only the live-chat subtitle track, from
// the stream start.
func ChatArgs(ch domain.Channel) []string {
	return []string{
		"-o", filepath.Join(ch.OutputDir, OutputTemplate),
		"--skip-download",
		"--write-subs",
		"--sub-langs", "live_chat",
		"--live-from-start",
		"--no-update",
		ch.LiveURL,
	}
}
