package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
)

type flakyClient struct {
	fakeClient
	failFirst error
}

func (f *flakyClient) ExtractResume(ctx context.Context, input ExtractInput) (json.RawMessage, error) {
	f.calls++
	if f.calls == 1 && f.failFirst != nil {
		return nil, f.failFirst
	}
	return f.raw, nil
}

func TestWithRetryRetriesTransientError(t *testing.T) {
	base := &flakyClient{
		fakeClient: fakeClient{name: ProviderOpenAI, available: true, raw: json.RawMessage(`{}`)},
		failFirst:  errors.New("connection reset by peer"),
	}
	client := WithRetry(base, "req-1")

	if _, err := client.ExtractResume(context.Background(), ExtractInput{Text: "x"}); err != nil {
		t.Fatalf("expected retry to succeed: %v", err)
	}
	if base.calls != 2 {
		t.Fatalf("expected 2 calls, got %d", base.calls)
	}
}

func TestWithRetryDoesNotRetryPermanentError(t *testing.T) {
	base := &fakeClient{name: ProviderOpenAI, available: true, err: errors.New("invalid request: model not found")}
	client := WithRetry(base, "req-1")

	if _, err := client.ExtractResume(context.Background(), ExtractInput{Text: "x"}); err == nil {
		t.Fatal("expected error")
	}
	if base.calls != 1 {
		t.Fatalf("expected single call, got %d", base.calls)
	}
}

func TestShouldRetryClassification(t *testing.T) {
	cases := []struct {
		err  error
		want bool
	}{
		{errors.New("status code: 429 rate limit"), true},
		{errors.New("http status 503"), true},
		{errors.New("Client.Timeout exceeded"), true},
		{ErrNotAvailable, false},
		{ErrFileNotSupported, false},
		{errors.New("invalid api key"), false},
		{nil, false},
	}
	for _, tc := range cases {
		if got := shouldRetry(tc.err); got != tc.want {
			t.Fatalf("shouldRetry(%v) = %v, want %v", tc.err, got, tc.want)
		}
	}
}
