package notify

import "fmt"

// Kind represents the type of notification
type Kind int

const (
	StreamDetected Kind = iota
	StreamSaved
	LowDisk
)

// Notification represents a notification to be sent
type Notification struct {
	Title   string
	Message string
	Kind    Kind
	Channel string // Optional channel name reference
}

// Notifier is the interface for sending notifications
type Notifier interface {
	Send(n Notification) error
}

// MultiNotifier sends to multiple notifiers
type MultiNotifier struct {
	notifiers []Notifier
}

// NewMultiNotifier creates a notifier that sends to all provided notifiers
func NewMultiNotifier(notifiers ...Notifier) *MultiNotifier {
	return &MultiNotifier{notifiers: notifiers}
}

// Send sends the notification to all notifiers
func (m *MultiNotifier) Send(n Notification) error {
	var lastErr error
	for _, notifier := range m.notifiers {
		if err := notifier.Send(n); err != nil {
			lastErr = err
		}
	}
	return lastErr
}

// NoopNotifier does nothing (for testing or disabled notifications)
type NoopNotifier struct{}

func (NoopNotifier) Send(n Notification) error { return nil }

// Detected builds the notification for a newly detected live stream.
func Detected(channel string) Notification {
	return Notification{
		Title:   "Stream detected",
		Message: fmt.Sprintf("%s is live, capture started", channel),
		Kind:    StreamDetected,
		Channel: channel,
	}
}

// Saved builds the notification for a completed capture.
func Saved(channel, size string) Notification {
	return Notification{
		Title:   "Stream saved",
		Message: fmt.Sprintf("%s stream saved (%s)", channel, size),
		Kind:    StreamSaved,
		Channel: channel,
	}
}

// LowDiskSpace builds the warning notification for insufficient free space.
func LowDiskSpace(channel string, freeGB, minGB float64) Notification {
	return Notification{
		Title:   "Low disk space",
		Message: fmt.Sprintf("%.1f GB free, %.1f GB required; skipping capture of %s", freeGB, minGB, channel),
		Kind:    LowDisk,
		Channel: channel,
	}
}
