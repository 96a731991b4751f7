package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"captioner/internal/config"
)

const userAgent = "Captioner-Go/0.1.0"

// Service defines the notification surface exposed to render components.
type Service interface {
	NotifyRenderStarted(ctx context.Context, input string, languages []string) error
	NotifyRenderCompleted(ctx context.Context, output string, elapsed time.Duration) error
	NotifyRenderFailed(ctx context.Context, input string, cause error) error
	TestNotification(ctx context.Context) error
}

// NewService builds a notification service backed by ntfy when configured.
// When no ntfy topic is configured, a noop implementation is returned.
func NewService(cfg *config.Config) Service {
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	client := &http.Client{Timeout: timeout}
	return &ntfyService{
		endpoint: topic,
		client:   client,
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint string
	client   *http.Client
}

func (n *ntfyService) NotifyRenderStarted(ctx context.Context, input string, languages []string) error {
	input = strings.TrimSpace(input)
	message := fmt.Sprintf("Burning captions into: %s", input)
	if len(languages) > 0 {
		message = fmt.Sprintf("Burning %s captions into: %s", strings.Join(languages, ", "), input)
	}
	data := payload{
		title:   "Captioner - Render Started",
		message: message,
		tags:    []string{"captioner", "render", "started"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyRenderCompleted(ctx context.Context, output string, elapsed time.Duration) error {
	output = strings.TrimSpace(output)
	elapsed = elapsed.Round(time.Second)
	if elapsed < 0 {
		elapsed = 0
	}
	elapsedText := elapsed.String()
	if elapsed == 0 {
		elapsedText = "0s"
	}
	data := payload{
		title:    "Captioner - Render Complete",
		message:  fmt.Sprintf("✅ Captions burned in: %s\nTook %s", output, elapsedText),
		tags:     []string{"captioner", "render", "completed"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyRenderFailed(ctx context.Context, input string, cause error) error {
	var builder strings.Builder
	builder.WriteString("❌ Render failed")
	if input = strings.TrimSpace(input); input != "" {
		builder.WriteString(" for ")
		builder.WriteString(input)
	}
	builder.WriteString(": ")
	if cause != nil {
		builder.WriteString(strings.TrimSpace(cause.Error()))
	} else {
		builder.WriteString("unknown")
	}

	data := payload{
		title:    "Captioner - Render Failed",
		message:  builder.String(),
		tags:     []string{"captioner", "render", "error"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	data := payload{
		title:    "Captioner - Test",
		message:  "🧪 Notification system test",
		tags:     []string{"captioner", "test"},
		priority: "low",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) send(ctx context.Context, data payload) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" && data.priority != "default" {
		req.Header.Set("Priority", data.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopService struct{}

func (noopService) NotifyRenderStarted(context.Context, string, []string) error        { return nil }
func (noopService) NotifyRenderCompleted(context.Context, string, time.Duration) error { return nil }
func (noopService) NotifyRenderFailed(context.Context, string, error) error            { return nil }
func (noopService) TestNotification(context.Context) error                             { return nil }
