package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"dummy-data/internal/config"
)

type telegramRequest struct {
	ChatId string `json:"chat_id"`
	Text   string `json:"text"`
}

const (
	iconError   = "❌"
	iconWarning = "⚠️"
	iconSuccess = "✅"
)

const (
	telegramTimeout   = 5 * time.Second
	telegramQueueSize = 64
)

// Telegram mirrors log lines into a chat. A nil *Telegram is a valid no-op sink.
// Queued lines are delivered in order by a single worker started on first use.
type Telegram struct {
	creds      config.TelegramBotConfig
	httpClient *http.Client
	queueSize  int
	onError    func(error)

	mu      sync.Mutex
	queue   chan string
	done    chan struct{}
	started bool
	closed  bool
}

func NewTelegram(cfg config.TelegramBotConfig, httpClient *http.Client) *Telegram {
	if cfg.ChatId == "" || cfg.Token == "" {
		return nil
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: telegramTimeout}
	}
	if strings.TrimSpace(cfg.BaseUrl) == "" {
		cfg.BaseUrl = "https://api.telegram.org"
	}
	return &Telegram{creds: cfg, httpClient: httpClient, queueSize: telegramQueueSize}
}

// Enqueue hands value to the worker without blocking. It reports false when
// the queue is full or the sink is closed.
func (t *Telegram) Enqueue(value string) bool {
	if t == nil {
		return true
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return false
	}
	if !t.started {
		t.started = true
		t.queue = make(chan string, max(t.queueSize, 1))
		t.done = make(chan struct{})
		go t.run(t.queue, t.done)
	}
	select {
	case t.queue <- value:
		return true
	default:
		return false
	}
}

func (t *Telegram) run(queue <-chan string, done chan<- struct{}) {
	defer close(done)
	for value := range queue {
		ctx, cancel := context.WithTimeout(context.Background(), telegramTimeout)
		err := t.Send(ctx, value)
		cancel()
		if err != nil && t.onError != nil {
			t.onError(err)
		}
	}
}

// Close stops accepting lines and waits until the queued ones are delivered
// or ctx is done.
func (t *Telegram) Close(ctx context.Context) error {
	if t == nil {
		return nil
	}
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return nil
	}
	t.closed = true
	if !t.started {
		t.mu.Unlock()
		return nil
	}
	close(t.queue)
	done := t.done
	t.mu.Unlock()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("telegram flush: %w", ctx.Err())
	}
}

func formatMessage(icon, level, value string) string {
	v := strings.TrimSpace(value)
	if v == "" {
		v = "-"
	}
	return fmt.Sprintf("%s %s: %s", icon, level, v)
}

func (t *Telegram) Send(ctx context.Context, value string) error {
	if t == nil {
		return nil
	}
	url := fmt.Sprintf("%s/bot%s/sendMessage", strings.TrimRight(t.creds.BaseUrl, "/"), t.creds.Token)

	bodyBytes, err := json.Marshal(telegramRequest{
		ChatId: t.creds.ChatId,
		Text:   value,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("telegram send failed: %s: %s", resp.Status, strings.TrimSpace(string(respBody)))
	}
	return nil
}
