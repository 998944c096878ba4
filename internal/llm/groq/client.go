package groq

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	goopenai "github.com/sashabaranov/go-openai"

	"ats-checker/internal/llm"
)

const baseURL = "https://api.groq.com/openai/v1"

// Client implements llm.Client against Groq's OpenAI-compatible API.
// Groq has a free tier and is preferred by cost optimization, but it
// cannot consume raw files, only extracted text.
type Client struct {
	apiKey string
	model  string
	client *goopenai.Client
}

// NewClient constructs a new Groq client. An empty API key yields a
// client that reports itself unavailable.
func NewClient(apiKey, model string) *Client {
	if strings.TrimSpace(model) == "" {
		model = "llama-3.3-70b-versatile"
	}
	cfg := goopenai.DefaultConfig(apiKey)
	cfg.BaseURL = baseURL
	cfg.HTTPClient = &http.Client{Timeout: 120 * time.Second}
	return &Client{
		apiKey: strings.TrimSpace(apiKey),
		model:  model,
		client: goopenai.NewClientWithConfig(cfg),
	}
}

func (c *Client) Name() string             { return llm.ProviderGroq }
func (c *Client) SupportsFileUpload() bool { return false }
func (c *Client) Available() bool          { return c.apiKey != "" }

func (c *Client) ExtractResume(ctx context.Context, input llm.ExtractInput) (json.RawMessage, error) {
	if !c.Available() {
		return nil, fmt.Errorf("groq: %w", llm.ErrNotAvailable)
	}
	if input.WantsFile() {
		return nil, fmt.Errorf("groq: %w", llm.ErrFileNotSupported)
	}

	resp, err := c.client.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model: c.model,
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleSystem, Content: llm.SystemPrompt},
			{Role: goopenai.ChatMessageRoleUser, Content: llm.BuildUserPrompt(input.Text, input.JobDescription)},
		},
		Temperature: 0,
		ResponseFormat: &goopenai.ChatCompletionResponseFormat{
			Type: goopenai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("groq chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("groq response missing choices")
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return nil, fmt.Errorf("groq response empty content")
	}
	return json.RawMessage(content), nil
}

var _ llm.Client = (*Client)(nil)
