// Package watcher implements the per-channel watch loop and the
// scheduler that fans one loop out per configured channel.
package watcher

import (
	"context"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/hochfrequenz/streamwatch/internal/config"
	"github.com/hochfrequenz/streamwatch/internal/domain"
	"github.com/hochfrequenz/streamwatch/internal/guard"
	"github.com/hochfrequenz/streamwatch/internal/logging"
	"github.com/hochfrequenz/streamwatch/internal/notify"
)

const (
	// diskBackoff is the wait after a low-disk skip. A full disk does
	// not resolve on the normal poll cadence.
	diskBackoff = 5 * time.Minute
	// relayInterval is how often buffered capture output is forwarded
	// to the log while jobs run.
	relayInterval = 5 * time.Second
	// cooldown is the wait after a finished capture, so the tail of the
	// same stream is not re-detected before its metadata settles.
	cooldown = 30 * time.Second
)

// CaptureJob is one running capture subprocess as the loop sees it.
type CaptureJob interface {
	Kind() domain.CaptureKind
	Drain() []string
	Finished() bool
	ExitCode() int
}

// Fetcher is the loop's view of the external fetch tool.
type Fetcher interface {
	ProbeLive(ctx context.Context, liveURL string) (string, error)
	StartCapture(ctx context.Context, kind domain.CaptureKind, ch domain.Channel, saveMetadata bool) (CaptureJob, error)
}

// DiskChecker reports whether a path's volume has enough free space.
type DiskChecker interface {
	Check(path string) (ok bool, freeGB float64, err error)
}

// Loop watches a single channel: poll, detect, guard, capture, report,
// cool down, repeat. Errors inside one iteration are absorbed and the
// loop retries on its next poll; only process death stops it.
type Loop struct {
	channel      domain.Channel
	fetcher      Fetcher
	disk         DiskChecker
	notifier     notify.Notifier
	log          *logrus.Entry
	saveMetadata bool
	minFreeGB    float64

	pollInterval  time.Duration
	diskBackoff   time.Duration
	relayInterval time.Duration
	cooldown      time.Duration
}

// NewLoop creates the watch loop for one channel.
func NewLoop(ch domain.Channel, cfg config.WatcherConfig, f Fetcher, d DiskChecker, n notify.Notifier, logger *logrus.Logger) *Loop {
	return &Loop{
		channel:       ch,
		fetcher:       f,
		disk:          d,
		notifier:      n,
		log:           logging.WithTag(logger, ch.Name),
		saveMetadata:  cfg.SaveMetadata,
		minFreeGB:     cfg.MinFreeDiskGB,
		pollInterval:  cfg.CheckInterval(),
		diskBackoff:   diskBackoff,
		relayInterval: relayInterval,
		cooldown:      cooldown,
	}
}

// Run polls the channel until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	l.log.Infof("watching %s (poll interval %s)", l.channel.URL, l.pollInterval)
	for {
		delay := l.iterate(ctx)
		if err := sleepCtx(ctx, delay); err != nil {
			return err
		}
	}
}

// iterate performs one pass of the state machine and returns how long
// to sleep before the next one.
func (l *Loop) iterate(ctx context.Context) time.Duration {
	resolved, err := l.fetcher.ProbeLive(ctx, l.channel.LiveURL)
	if err != nil {
		l.log.Warnf("live check failed: %v", err)
		return l.pollInterval
	}
	if resolved == "" {
		l.log.Info("not live")
		return l.pollInterval
	}

	l.log.Infof("live stream detected: %s", resolved)

	if err := os.MkdirAll(l.channel.OutputDir, 0755); err != nil {
		l.log.Errorf("creating output directory: %v", err)
		return l.pollInterval
	}

	inFlight, err := guard.HasInFlightArtifacts(l.channel.OutputDir)
	if err != nil {
		l.log.Warnf("checking for in-flight artifacts: %v", err)
	}
	if inFlight {
		l.log.Info("capture already in progress, skipping")
		return l.pollInterval
	}

	ok, freeGB, err := l.disk.Check(l.channel.OutputDir)
	if err != nil {
		l.log.Warnf("free space could not be determined, proceeding: %v", err)
	}
	if !ok {
		l.log.Warnf("insufficient disk space: %.1f GB free, %.1f GB required", freeGB, l.minFreeGB)
		l.send(notify.LowDiskSpace(l.channel.Name, freeGB, l.minFreeGB))
		return l.diskBackoff
	}

	l.capture(ctx)
	return l.cooldown
}

// capture launches the video and chat jobs for one detection and blocks
// until both reach a terminal state, relaying their output as it comes.
func (l *Loop) capture(ctx context.Context) {
	event := uuid.NewString()[:8]
	l.log.Infof("starting capture %s", event)
	l.send(notify.Detected(l.channel.Name))

	jobs := make([]CaptureJob, 0, 2)
	for _, kind := range []domain.CaptureKind{domain.CaptureVideo, domain.CaptureChat} {
		job, err := l.fetcher.StartCapture(ctx, kind, l.channel, l.saveMetadata)
		if err != nil {
			l.log.Errorf("starting %s capture: %v", kind, err)
			continue
		}
		jobs = append(jobs, job)
	}
	if len(jobs) == 0 {
		return
	}

	l.await(ctx, jobs)

	// A failed capture is not retried here; if the stream is still
	// live the next poll re-triggers it.
	for _, job := range jobs {
		l.relay(job)
		if code := job.ExitCode(); code != 0 {
			l.log.Warnf("%s capture exited with code %d", job.Kind(), code)
		} else {
			l.log.Infof("%s capture finished", job.Kind())
		}
	}

	l.report(event)
}

// await polls the jobs on the relay cadence until all have finished.
// On shutdown the subprocesses are left to finish on their own; the
// external tool finalizes partial files itself.
func (l *Loop) await(ctx context.Context, jobs []CaptureJob) {
	for {
		done := true
		for _, job := range jobs {
			l.relay(job)
			if !job.Finished() {
				done = false
			}
		}
		if done {
			return
		}
		if err := sleepCtx(ctx, l.relayInterval); err != nil {
			return
		}
	}
}

// relay forwards a job's buffered output lines to the log.
func (l *Loop) relay(job CaptureJob) {
	for _, line := range job.Drain() {
		l.log.Infof("[%s] %s", job.Kind(), line)
	}
}

// report logs the size of the freshest saved video after a capture.
func (l *Loop) report(event string) {
	name, size, err := newestVideo(l.channel.OutputDir)
	if err != nil {
		l.log.Warnf("capture %s produced no video file: %v", event, err)
		return
	}
	human := humanSize(size)
	l.log.Infof("stream saved: %s (%s)", name, human)
	l.send(notify.Saved(l.channel.Name, human))
}

func (l *Loop) send(n notify.Notification) {
	if err := l.notifier.Send(n); err != nil {
		l.log.Warnf("sending notification: %v", err)
	}
}

// sleepCtx sleeps for d or until ctx is cancelled.
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
