package openai

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	goopenai "github.com/sashabaranov/go-openai"

	"ats-checker/internal/llm"
)

// Client implements llm.Client using OpenAI Chat Completions.
type Client struct {
	apiKey string
	model  string
	client *goopenai.Client
}

// NewClient constructs a new OpenAI client. An empty API key yields a
// client that reports itself unavailable.
func NewClient(apiKey, model string) *Client {
	if strings.TrimSpace(model) == "" {
		model = "gpt-4o-mini"
	}
	cfg := goopenai.DefaultConfig(apiKey)
	cfg.HTTPClient = &http.Client{Timeout: requestTimeout()}
	return &Client{
		apiKey: strings.TrimSpace(apiKey),
		model:  model,
		client: goopenai.NewClientWithConfig(cfg),
	}
}

func (c *Client) Name() string             { return llm.ProviderOpenAI }
func (c *Client) SupportsFileUpload() bool { return true }
func (c *Client) Available() bool          { return c.apiKey != "" }

func (c *Client) ExtractResume(ctx context.Context, input llm.ExtractInput) (json.RawMessage, error) {
	if !c.Available() {
		return nil, fmt.Errorf("openai: %w", llm.ErrNotAvailable)
	}

	messages := []goopenai.ChatCompletionMessage{
		{Role: goopenai.ChatMessageRoleSystem, Content: llm.SystemPrompt},
	}

	if input.WantsFile() {
		dataURL := fmt.Sprintf("data:%s;base64,%s", input.MimeType, base64.StdEncoding.EncodeToString(input.FileData))
		messages = append(messages, goopenai.ChatCompletionMessage{
			Role: goopenai.ChatMessageRoleUser,
			MultiContent: []goopenai.ChatMessagePart{
				{Type: goopenai.ChatMessagePartTypeText, Text: llm.BuildFilePrompt(input.FileName, input.JobDescription)},
				{Type: goopenai.ChatMessagePartTypeImageURL, ImageURL: &goopenai.ChatMessageImageURL{URL: dataURL}},
			},
		})
	} else {
		messages = append(messages, goopenai.ChatCompletionMessage{
			Role:    goopenai.ChatMessageRoleUser,
			Content: llm.BuildUserPrompt(input.Text, input.JobDescription),
		})
	}

	resp, err := c.client.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: 0,
		ResponseFormat: &goopenai.ChatCompletionResponseFormat{
			Type: goopenai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("openai response missing choices")
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return nil, fmt.Errorf("openai response empty content")
	}
	return json.RawMessage(content), nil
}

func requestTimeout() time.Duration {
	timeout := 120 * time.Second
	if raw := strings.TrimSpace(os.Getenv("OPENAI_TIMEOUT_SECONDS")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			timeout = time.Duration(parsed) * time.Second
		}
	}
	return timeout
}

var _ llm.Client = (*Client)(nil)
