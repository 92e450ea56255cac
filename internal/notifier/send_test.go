package notifier

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/julianstephens/nahar/internal/logger"
)

type stubSender struct {
	err  error
	sent []string
}

func (s *stubSender) Notify(ctx context.Context, text string) error {
	s.sent = append(s.sent, text)
	return s.err
}

func TestSend_LogsFailures(t *testing.T) {
	tests := []struct {
		name      string
		sender    *stubSender
		text      string
		delivered bool
		wantLog   string
	}{
		{name: "delivered", sender: &stubSender{}, text: "Archived 1 overdue task: a", delivered: true},
		{name: "empty text", sender: &stubSender{}, text: ""},
		{name: "tray missing", sender: &stubSender{err: fmt.Errorf("lookup: %w", ErrTrayNotRunning)}, text: "x", wantLog: "Notification skipped"},
		{name: "delivery failure", sender: &stubSender{err: errors.New("connection refused")}, text: "x", wantLog: "Failed to send notification"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			if err := logger.Init(logger.Config{Debug: true, ConfigDir: t.TempDir(), Console: true, Stderr: &out}); err != nil {
				t.Fatal(err)
			}
			t.Cleanup(func() { _ = logger.Close() })

			if got := Send(context.Background(), tt.sender, tt.text); got != tt.delivered {
				t.Errorf("Send() = %v, want %v", got, tt.delivered)
			}
			if tt.text == "" && len(tt.sender.sent) != 0 {
				t.Error("empty text should not reach the sender")
			}
			if tt.wantLog != "" && !strings.Contains(out.String(), tt.wantLog) {
				t.Errorf("log = %q, want %q", out.String(), tt.wantLog)
			}
		})
	}
}

func TestSend_NilSender(t *testing.T) {
	if Send(context.Background(), nil, "x") {
		t.Error("Send() with a nil sender should report not delivered")
	}
}
