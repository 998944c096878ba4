package llm

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net"
	"strings"
	"time"
)

const retryBaseDelay = 300 * time.Millisecond

type retryingClient struct {
	base      Client
	requestID string
}

// WithRetry wraps a client so transient failures get one retried attempt.
func WithRetry(base Client, requestID string) Client {
	if base == nil {
		return nil
	}
	return retryingClient{base: base, requestID: requestID}
}

func (r retryingClient) Name() string             { return r.base.Name() }
func (r retryingClient) SupportsFileUpload() bool { return r.base.SupportsFileUpload() }
func (r retryingClient) Available() bool          { return r.base.Available() }

func (r retryingClient) ExtractResume(ctx context.Context, input ExtractInput) (json.RawMessage, error) {
	resp, err := r.base.ExtractResume(ctx, input)
	if err == nil || !shouldRetry(err) {
		return resp, err
	}

	log.Printf("llm retry attempt=1 provider=%s request_id=%s error=%s", r.base.Name(), r.requestID, sanitizeError(err))
	select {
	case <-time.After(retryBaseDelay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	return r.base.ExtractResume(ctx, input)
}

func shouldRetry(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrNotAvailable) || errors.Is(err, ErrFileNotSupported) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "http status 5") || strings.Contains(msg, "status code: 5") || strings.Contains(msg, "server_error") {
		return true
	}
	if strings.Contains(msg, "rate limit") || strings.Contains(msg, "status code: 429") {
		return true
	}
	if strings.Contains(msg, "timeout") || strings.Contains(msg, "client.timeout") {
		return true
	}
	if strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "connection closed") ||
		strings.Contains(msg, "broken pipe") ||
		strings.Contains(msg, "tls handshake timeout") ||
		strings.Contains(msg, "eof") {
		return true
	}

	return false
}

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	if len(msg) > 200 {
		msg = msg[:200]
	}
	return strings.ReplaceAll(msg, "\n", " ")
}
