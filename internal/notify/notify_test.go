package notify

import (
	"strings"
	"testing"
)

func TestMultiNotifier(t *testing.T) {
	var called []string

	mock1 := &mockNotifier{name: "mock1", calls: &called}
	mock2 := &mockNotifier{name: "mock2", calls: &called}

	multi := NewMultiNotifier(mock1, mock2)
	multi.Send(Notification{Title: "Test"})

	if len(called) != 2 {
		t.Errorf("Expected 2 calls, got %d", len(called))
	}
}

func TestDisabledDesktopNotifier(t *testing.T) {
	n := NewDesktopNotifier(false)
	if err := n.Send(Detected("SomeChannel")); err != nil {
		t.Errorf("disabled notifier should be a no-op, got %v", err)
	}
}

func TestNotificationBuilders(t *testing.T) {
	d := Detected("SomeChannel")
	if d.Kind != StreamDetected || d.Channel != "SomeChannel" {
		t.Errorf("Detected built %+v", d)
	}

	s := Saved("SomeChannel", "1.4 GB")
	if s.Kind != StreamSaved || !strings.Contains(s.Message, "1.4 GB") {
		t.Errorf("Saved built %+v", s)
	}

	l := LowDiskSpace("SomeChannel", 3.2, 10)
	if l.Kind != LowDisk {
		t.Errorf("LowDiskSpace kind = %v", l.Kind)
	}
	if !strings.Contains(l.Message, "3.2 GB free") {
		t.Errorf("LowDiskSpace message = %q", l.Message)
	}
}

func TestIconForKind(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{StreamSaved, "dialog-positive"},
		{LowDisk, "dialog-warning"},
		{StreamDetected, "dialog-information"},
	}

	for _, tt := range tests {
		if got := IconForKind(tt.kind); got != tt.want {
			t.Errorf("IconForKind(%v) = %s, want %s", tt.kind, got, tt.want)
		}
	}
}

type mockNotifier struct {
	name  string
	calls *[]string
}

func (m *mockNotifier) Send(n Notification) error {
	*m.calls = append(*m.calls, m.name)
	return nil
}
