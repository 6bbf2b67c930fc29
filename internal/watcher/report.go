package watcher

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
)

var videoExtensions = map[string]bool{
	".mp4":  true,
	".mkv":  true,
	".webm": true,
	".ts":   true,
}

// newestVideo returns the name and size of the most recently modified
// video file in dir.
func newestVideo(dir string) (string, int64, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", 0, err
	}

	var (
		newest    string
		size      int64
		newestMod time.Time
	)
	for _, entry := range entries {
		if entry.IsDir() || !videoExtensions[filepath.Ext(entry.Name())] {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if newest == "" || info.ModTime().After(newestMod) {
			newest = entry.Name()
			size = info.Size()
			newestMod = info.ModTime()
		}
	}
	if newest == "" {
		return "", 0, fmt.Errorf("no video files in %s", dir)
	}
	return newest, size, nil
}

// humanSize renders a size in GB when at least a gigabyte, MB otherwise.
func humanSize(bytes int64) string {
	if bytes >= humanize.GByte {
		return fmt.Sprintf("%.2f GB", float64(bytes)/humanize.GByte)
	}
	return fmt.Sprintf("%.1f MB", float64(bytes)/humanize.MByte)
}
