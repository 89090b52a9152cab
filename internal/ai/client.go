// FilePath: internal/ai/client.go

// Package ai wraps the hosted multimodal model behind a small messages API
// client. The model is an opaque collaborator: one request, one response,
// no retries.
package ai

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/urbansense/wastehub/internal/config"
	"github.com/urbansense/wastehub/internal/errors"
)

// Invoker is the model call surface the service layer depends on.
type Invoker interface {
	CreateMessage(ctx context.Context, req MessageRequest) (*MessageResponse, error)
}

// ContentBlock is one element of a message: text, an inline image, a tool
// invocation requested by the model, or a tool result returned to it.
type ContentBlock struct {
	Type      string          `json:"type"`
	Text      string          `json:"text,omitempty"`
	Source    *ImageSource    `json:"source,omitempty"`
	ID        string          `json:"id,omitempty"`
	Name      string          `json:"name,omitempty"`
	Input     json.RawMessage `json:"input,omitempty"`
	ToolUseID string          `json:"tool_use_id,omitempty"`
	Content   string          `json:"content,omitempty"`
}

const (
	BlockText       = "text"
	BlockImage      = "image"
	BlockToolUse    = "tool_use"
	BlockToolResult = "tool_result"
)

// ImageSource carries a base64-encoded inline image.
type ImageSource struct {
	Type      string `json:"type"`
	MediaType string `json:"media_type"`
	Data      string `json:"data"`
}

type Message struct {
	Role    string         `json:"role"`
	Content []ContentBlock `json:"content"`
}

// Tool describes one callable tool schema advertised to the model.
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"input_schema"`
}

type MessageRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	System    string    `json:"system,omitempty"`
	Messages  []Message `json:"messages"`
	Tools     []Tool    `json:"tools,omitempty"`
}

type MessageResponse struct {
	Content    []ContentBlock `json:"content"`
	StopReason string         `json:"stop_reason"`
}

// FirstText returns the first text block of the response, or "".
func (r *MessageResponse) FirstText() string {
	for _, block := range r.Content {
		if block.Type == BlockText {
			return block.Text
		}
	}
	return ""
}

// ToolUse returns the first tool invocation in the response, or nil.
func (r *MessageResponse) ToolUse() *ContentBlock {
	for i := range r.Content {
		if r.Content[i].Type == BlockToolUse {
			return &r.Content[i]
		}
	}
	return nil
}

// TextMessage builds a plain single-text message.
func TextMessage(role, text string) Message {
	return Message{Role: role, Content: []ContentBlock{{Type: BlockText, Text: text}}}
}

// Client talks to the model endpoint over HTTP.
type Client struct {
	http *resty.Client
	cfg  config.ModelConfig
}

// NewClient creates a model client from configuration.
func NewClient(cfg config.ModelConfig) *Client {
	httpClient := resty.New().
		SetBaseURL(cfg.Endpoint).
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("x-api-key", cfg.APIKey)

	return &Client{http: httpClient, cfg: cfg}
}

// CreateMessage sends one model turn and decodes the response.
func (c *Client) CreateMessage(ctx context.Context, req MessageRequest) (*MessageResponse, error) {
	if req.MaxTokens == 0 {
		req.MaxTokens = c.cfg.MaxTokens
	}

	result := &MessageResponse{}
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(result).
		Post("/v1/messages")
	if err != nil {
		return nil, errors.NewUpstreamError("model request failed", err)
	}
	if resp.IsError() {
		return nil, errors.NewUpstreamError(
			fmt.Sprintf("model returned status %d", resp.StatusCode()), nil)
	}
	return result, nil
}
