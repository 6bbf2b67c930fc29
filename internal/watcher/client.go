package watcher

import (
	"context"

	"github.com/hochfrequenz/streamwatch/internal/domain"
	"github.com/hochfrequenz/streamwatch/internal/fetcher"
)

// clientFetcher adapts *fetcher.Client to the loop's Fetcher interface.
type clientFetcher struct {
	c *fetcher.Client
}

// NewFetcher wraps the real fetch tool client for use by watch loops.
func NewFetcher(c *fetcher.Client) Fetcher {
	return clientFetcher{c: c}
}

func (f clientFetcher) ProbeLive(ctx context.Context, liveURL string) (string, error) {
	return f.c.ProbeLive(ctx, liveURL)
}

func (f clientFetcher) StartCapture(ctx context.Context, kind domain.CaptureKind, ch domain.Channel, saveMetadata bool) (CaptureJob, error) {
	job, err := f.c.StartCapture(ctx, kind, ch, saveMetadata)
	if err != nil {
		return nil, err
	}
	return job, nil
}
