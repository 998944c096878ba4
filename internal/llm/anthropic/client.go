package anthropic

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"ats-checker/internal/llm"
)

const (
	apiEndpoint      = "https://api.anthropic.com/v1/messages"
	anthropicVersion = "2023-06-01"
	defaultMaxTokens = 4096
)

// Client implements llm.Client using the Anthropic Messages API.
type Client struct {
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewClient constructs a new Anthropic client. An empty API key yields a
// client that reports itself unavailable.
func NewClient(apiKey, model string) *Client {
	if strings.TrimSpace(model) == "" {
		model = "claude-3-5-haiku-20241022"
	}
	return &Client{
		apiKey: strings.TrimSpace(apiKey),
		model:  model,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

func (c *Client) Name() string             { return llm.ProviderAnthropic }
func (c *Client) SupportsFileUpload() bool { return true }
func (c *Client) Available() bool          { return c.apiKey != "" }

type message struct {
	Role    string         `json:"role"`
	Content []contentBlock `json:"content"`
}

type contentBlock struct {
	Type   string      `json:"type"`
	Text   string      `json:"text,omitempty"`
	Source *blockSource `json:"source,omitempty"`
}

type blockSource struct {
	Type      string `json:"type"`
	MediaType string `json:"media_type"`
	Data      string `json:"data"`
}

type chatRequest struct {
	Model     string    `json:"model"`
	System    string    `json:"system,omitempty"`
	Messages  []message `json:"messages"`
	MaxTokens int       `json:"max_tokens"`
}

type chatResponse struct {
	Content []contentBlock `json:"content"`
	Error   *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (c *Client) ExtractResume(ctx context.Context, input llm.ExtractInput) (json.RawMessage, error) {
	if !c.Available() {
		return nil, fmt.Errorf("anthropic: %w", llm.ErrNotAvailable)
	}

	var blocks []contentBlock
	if input.WantsFile() {
		blocks = append(blocks, contentBlock{
			Type: "document",
			Source: &blockSource{
				Type:      "base64",
				MediaType: input.MimeType,
				Data:      base64.StdEncoding.EncodeToString(input.FileData),
			},
		})
		blocks = append(blocks, contentBlock{Type: "text", Text: llm.BuildFilePrompt(input.FileName, input.JobDescription)})
	} else {
		blocks = append(blocks, contentBlock{Type: "text", Text: llm.BuildUserPrompt(input.Text, input.JobDescription)})
	}

	reqBody := chatRequest{
		Model:     c.model,
		System:    llm.SystemPrompt,
		Messages:  []message{{Role: "user", Content: blocks}},
		MaxTokens: defaultMaxTokens,
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("anthropic marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiEndpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("anthropic build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("anthropic request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("anthropic read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("anthropic unexpected status code: %d, body: %s", resp.StatusCode, truncate(string(body), 300))
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("anthropic decode response: %w", err)
	}
	if parsed.Error != nil {
		return nil, fmt.Errorf("anthropic error: %s (%s)", parsed.Error.Message, parsed.Error.Type)
	}
	if len(parsed.Content) == 0 {
		return nil, fmt.Errorf("anthropic empty response content")
	}

	text := strings.TrimSpace(parsed.Content[0].Text)
	if text == "" {
		return nil, fmt.Errorf("anthropic empty text block")
	}
	return json.RawMessage(text), nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

var _ llm.Client = (*Client)(nil)
