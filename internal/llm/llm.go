package llm

import (
	"context"
	"encoding/json"
	"errors"
)

// Provider names accepted in priority lists and session overrides.
const (
	ProviderOpenAI    = "openai"
	ProviderGroq      = "groq"
	ProviderAnthropic = "anthropic"
)

// Client abstracts an LLM provider used for resume extraction.
type Client interface {
	Name() string
	// SupportsFileUpload reports whether the provider can consume the raw
	// file directly instead of pre-extracted text.
	SupportsFileUpload() bool
	// Available reports whether the provider is configured with credentials.
	Available() bool
	ExtractResume(ctx context.Context, input ExtractInput) (json.RawMessage, error)
}

// ExtractInput carries either pre-extracted text (hybrid mode) or the raw
// file payload (complete LLM mode).
type ExtractInput struct {
	Text           string
	FileData       []byte
	FileName       string
	MimeType       string
	JobDescription string
}

// WantsFile reports whether the input asks the provider to process the raw file.
func (in ExtractInput) WantsFile() bool {
	return len(in.FileData) > 0
}

// ErrNotAvailable is returned when a provider has no credentials configured.
var ErrNotAvailable = errors.New("llm provider not available")

// ErrFileNotSupported is returned when raw file input is sent to a text-only provider.
var ErrFileNotSupported = errors.New("llm provider does not support file upload")
