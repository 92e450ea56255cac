// Package notifier sends desktop notifications through a running nahar-tray
// companion app.
package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/nahar/internal/constants"
	"github.com/julianstephens/nahar/internal/logger"
)

var (
	userConfigDirFunc = os.UserConfigDir
	findProcessFunc   = ps.FindProcess
)

// ErrTrayNotRunning is returned when no companion process could be found.
var ErrTrayNotRunning = errors.New(constants.TrayExecutablePrefix + " is not running")

// Sender delivers a notification text.
type Sender interface {
	Notify(ctx context.Context, text string) error
}

// Send delivers text through s and logs any failure. A nil sender or empty
// text is a no-op. It reports whether the text was delivered.
func Send(ctx context.Context, s Sender, text string) bool {
	if s == nil || text == "" {
		return false
	}
	if err := s.Notify(ctx, text); err != nil {
		if errors.Is(err, ErrTrayNotRunning) {
			logger.Debug("Notification skipped", "error", err)
		} else {
			logger.Warn("Failed to send notification", "error", err)
		}
		return false
	}
	return true
}

type Notifier struct {
	client     *http.Client
	retries    int
	retryDelay time.Duration
}

type WebhookPayload struct {
	Text       string `json:"text"`
	DurationMs uint32 `json:"duration_ms"`
}

// endpoint is the parsed tray lockfile: "port|pid|secret".
type endpoint struct {
	port   int
	pid    int
	secret string
}

func New() *Notifier {
	return &Notifier{
		client:     &http.Client{Timeout: 5 * time.Second},
		retries:    constants.NotifyMaxRetries,
		retryDelay: constants.NotifyRetryDelay,
	}
}

// Notify posts text to the tray app. Delivery failures after the tray was
// found are retried a few times; a missing tray is reported immediately.
func (n *Notifier) Notify(ctx context.Context, text string) error {
	dir, err := GetTrayAppConfigDir()
	if err != nil {
		return err
	}

	ep, err := findAndValidateTrayProcess(filepath.Join(dir, constants.NotifierLockfileName))
	if err != nil {
		return err
	}

	payload := WebhookPayload{Text: text, DurationMs: constants.NotificationDurationMs}

	var lastErr error
	for attempt := 0; attempt < n.retries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(n.retryDelay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		if lastErr = n.send(ctx, ep, payload); lastErr == nil {
			return nil
		}
		logger.Debug("Notification attempt failed", "attempt", attempt+1, "error", lastErr)
	}
	return fmt.Errorf("notification not delivered after %d attempts: %w", n.retries, lastErr)
}

// GetTrayAppConfigDir returns the directory holding the tray lockfile. The tray
// may point it elsewhere through lockfile_dir in its settings.json.
func GetTrayAppConfigDir() (string, error) {
	configDir, err := userConfigDirFunc()
	if err != nil {
		return "", fmt.Errorf("failed to get user config dir: %w", err)
	}

	trayConfigDir := filepath.Join(configDir, constants.TrayAppIdentifier)

	data, err := os.ReadFile(filepath.Join(trayConfigDir, "settings.json"))
	if err != nil {
		return trayConfigDir, nil
	}
	var store struct {
		Settings struct {
			LockfileDir *string `json:"lockfile_dir"`
		} `json:"settings"`
	}
	if err := json.Unmarshal(data, &store); err != nil {
		logger.Warn("Ignoring unreadable tray settings", "error", err)
		return trayConfigDir, nil
	}
	if dir := store.Settings.LockfileDir; dir != nil && *dir != "" {
		return *dir, nil
	}
	return trayConfigDir, nil
}

func parseLockfile(content string) (endpoint, error) {
	parts := strings.Split(strings.TrimSpace(content), "|")
	if len(parts) != 3 {
		return endpoint{}, errors.New("lockfile is malformed")
	}

	if strings.TrimSpace(parts[0]) == "" {
		return endpoint{}, errors.New("port in lockfile is empty")
	}
	port, err := strconv.Atoi(parts[0])
	if err != nil {
		return endpoint{}, errors.New("invalid port number in lockfile")
	}
	if port < 1 || port > 65535 {
		return endpoint{}, fmt.Errorf("port number %d is outside valid range (1-65535)", port)
	}

	pid, err := strconv.Atoi(parts[1])
	if err != nil {
		return endpoint{}, errors.New("invalid process ID in lockfile")
	}

	secret := parts[2]
	if strings.TrimSpace(secret) == "" {
		return endpoint{}, errors.New("secret in lockfile is empty")
	}
	return endpoint{port: port, pid: pid, secret: secret}, nil
}

func findAndValidateTrayProcess(lockfilePath string) (endpoint, error) {
	content, err := os.ReadFile(lockfilePath)
	if err != nil {
		return endpoint{}, ErrTrayNotRunning
	}

	ep, err := parseLockfile(string(content))
	if err != nil {
		return endpoint{}, err
	}

	process, err := findProcessFunc(ep.pid)
	if err != nil || process == nil {
		return endpoint{}, fmt.Errorf("%w: no process with PID %d", ErrTrayNotRunning, ep.pid)
	}
	if !strings.HasPrefix(process.Executable(), constants.TrayExecutablePrefix) {
		return endpoint{}, fmt.Errorf("process with PID %d is not %s (is %s)", ep.pid, constants.TrayExecutablePrefix, process.Executable())
	}
	return ep, nil
}

func (n *Notifier) send(ctx context.Context, ep endpoint, payload WebhookPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("http://127.0.0.1:%d", ep.port)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Nahar-Secret", ep.secret)

	res, err := n.client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusOK {
		return nil
	}
	msg, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
	return fmt.Errorf("notification failed with status %d: %s", res.StatusCode, string(msg))
}
