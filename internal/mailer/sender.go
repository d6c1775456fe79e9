package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/zoobutik/zoobutik.bg/pkg/httpclient"
)

// Message is an outbound email.
type Message struct {
	To      string `json:"to"`
	From    string `json:"from"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Sender delivers an email message.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// LogSender writes messages to the structured log instead of delivering them.
// Used in development and in tests.
type LogSender struct {
	logger *slog.Logger
}

// NewLogSender creates a sender that only logs messages.
func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

// Send logs the message at info level.
func (s *LogSender) Send(ctx context.Context, msg Message) error {
	s.logger.InfoContext(ctx, "email (log mode)",
		slog.String("to", msg.To),
		slog.String("subject", msg.Subject),
		slog.String("body", msg.Body),
	)
	return nil
}

// HTTPSender delivers messages by posting them to an external mail gateway.
// Calls go through a circuit breaker so a dead gateway does not pile up
// retries inside the consumer.
type HTTPSender struct {
	client   *httpclient.CircuitBreakerClient
	endpoint string
	logger   *slog.Logger
}

// NewHTTPSender creates a sender that posts messages to the given endpoint.
func NewHTTPSender(endpoint string, logger *slog.Logger) *HTTPSender {
	client := httpclient.New(httpclient.DefaultConfig())
	cb := httpclient.NewCircuitBreakerClient(client, httpclient.DefaultCircuitBreakerConfig("mail-gateway"), logger)

	return &HTTPSender{
		client:   cb,
		endpoint: endpoint,
		logger:   logger,
	}
}

// Send posts the message as JSON to the mail gateway.
func (s *HTTPSender) Send(ctx context.Context, msg Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal mail message: %w", err)
	}

	resp, err := s.client.Post(ctx, s.endpoint, "application/json", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("post to mail gateway: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("mail gateway returned status %d", resp.StatusCode)
	}

	s.logger.DebugContext(ctx, "email delivered",
		slog.String("to", msg.To),
		slog.String("subject", msg.Subject),
	)

	return nil
}
