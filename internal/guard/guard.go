// Package guard implements the preconditions checked between detecting
// a live stream and launching capture jobs: no capture already in flight
// for the channel, and enough free disk space on the output volume.
package guard

import (
	"os"
	"strings"

	"github.com/shirou/gopsutil/v4/disk"
)

// inFlightSuffixes are the partial-download markers the external fetch
// tool leaves next to an in-progress capture.
var inFlightSuffixes = []string{".part", ".ytdl", ".temp", ".download"}

// HasInFlightArtifacts reports whether the channel directory contains
// partial-download artifacts from a capture that is still running.
// The filesystem is the only source of truth here, which keeps the
// check correct across watcher restarts. A missing directory means no
// capture has ever run, so it reports false.
func HasInFlightArtifacts(dir string) (bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		for _, suffix := range inFlightSuffixes {
			if strings.HasSuffix(name, suffix) {
				return true, nil
			}
		}
	}
	return false, nil
}

// DiskGuard checks free space on the output volume against a minimum.
type DiskGuard struct {
	MinFreeGB float64

	usage func(path string) (*disk.UsageStat, error)
}

// NewDiskGuard creates a guard requiring minFreeGB gigabytes free.
func NewDiskGuard(minFreeGB float64) *DiskGuard {
	return &DiskGuard{MinFreeGB: minFreeGB, usage: disk.Usage}
}

// Check reports whether path's volume has enough free space. When free
// space cannot be determined it fails open: ok is true and the error is
// returned for the caller to log, since blocking downloads on a
// diagnostic failure would be worse than risking a full disk.
func (g *DiskGuard) Check(path string) (ok bool, freeGB float64, err error) {
	stat, err := g.usage(path)
	if err != nil {
		return true, 0, err
	}
	freeGB = float64(stat.Free) / (1 << 30)
	return freeGB >= g.MinFreeGB, freeGB, nil
}
