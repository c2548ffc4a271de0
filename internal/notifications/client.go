// Package notifications pushes short ntfy messages when the board's
// leader changes between refreshes. Failures here never affect the
// refresh pipeline.
package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"codename_board/internal/board"
	"codename_board/internal/retry"

	"github.com/rs/zerolog/log"
)

// defaultRetry bounds notification delivery. The refresh pipeline has
// no retry of its own; this applies to the side channel only.
var defaultRetry = retry.Config{
	Attempts:  3,
	BaseDelay: time.Second,
	MaxDelay:  15 * time.Second,
	Timeout:   10 * time.Second,
}

// Client posts messages to an ntfy topic.
type Client struct {
	httpClient *http.Client
	baseURL    string
	topic      string
	enabled    bool
	retry      retry.Config
}

// NewClient creates a notification client. A disabled client accepts
// every call and sends nothing.
func NewClient(baseURL, topic string, enabled bool) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: strings.TrimSuffix(baseURL, "/"),
		topic:   topic,
		enabled: enabled,
		retry:   defaultRetry,
	}
}

// Send posts one message to the topic, retrying transient failures.
func (c *Client) Send(ctx context.Context, title, message string) error {
	if !c.enabled {
		log.Debug().Str("title", title).Msg("Notifications disabled, skipping send")
		return nil
	}

	_, err := retry.Do(ctx, c.retry, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, c.post(ctx, title, message)
	})
	if err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}

	log.Info().Str("title", title).Msg("Notification sent")
	return nil
}

func (c *Client) post(ctx context.Context, title, message string) error {
	url := fmt.Sprintf("%s/%s", c.baseURL, c.topic)
	req, err := http.NewRequestWithContext(ctx, "POST", url, strings.NewReader(message))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Title", title)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("notification request failed with status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

// LeaderWatch tracks the rank-1 codename across snapshots and notifies
// when it changes. The first observed leader establishes a baseline
// without a notification.
type LeaderWatch struct {
	client     *Client
	lastLeader string
}

// NewLeaderWatch creates a watch bound to the given client.
func NewLeaderWatch(client *Client) *LeaderWatch {
	return &LeaderWatch{client: client}
}

// Observe inspects a freshly installed snapshot. Empty snapshots keep
// the previous baseline; refresh ordering is sequential so no locking
// is needed here.
func (w *LeaderWatch) Observe(ctx context.Context, contestants []board.Contestant) {
	if len(contestants) == 0 {
		return
	}

	leader := contestants[0].Codename
	previous := w.lastLeader
	w.lastLeader = leader

	if previous == "" || previous == leader {
		return
	}

	log.Info().
		Str("previous", previous).
		Str("leader", leader).
		Msg("Leader changed")

	message := fmt.Sprintf("%s takes the lead from %s", leader, previous)
	if err := w.client.Send(ctx, "Leaderboard update", message); err != nil {
		log.Warn().Err(err).Msg("Failed to send leader change notification")
	}
}
