package ai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const openAIBase = "https://api.openai.com"

type openAI struct {
	endpoint    string
	key         string
	model       string
	visionModel string
	httpc       *http.Client
}

func NewOpenAI(key, model, visionModel string) Client {
	return &openAI{
		endpoint:    openAIBase,
		key:         key,
		model:       model,
		visionModel: visionModel,
		httpc:       &http.Client{Timeout: 30 * time.Second},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	Temperature    float64       `json:"temperature"`
	MaxTokens      int           `json:"max_tokens,omitempty"`
	ResponseFormat *struct {
		Type string `json:"type"`
	} `json:"response_format,omitempty"`
}

func jsonFormat() *struct {
	Type string `json:"type"`
} {
	return &struct {
		Type string `json:"type"`
	}{Type: "json_object"}
}

func (c *openAI) GenerateJSON(ctx context.Context, system, user string) (string, error) {
	req := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature:    0.2,
		MaxTokens:      300,
		ResponseFormat: jsonFormat(),
	}
	return c.complete(ctx, req)
}

func (c *openAI) GenerateText(ctx context.Context, system, user string) (string, error) {
	req := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: 0.2,
		MaxTokens:   300,
	}
	return c.complete(ctx, req)
}

func (c *openAI) AnalyzeImage(ctx context.Context, prompt string, image []byte, mimeType string) (string, error) {
	dataURL := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(image))
	req := chatRequest{
		Model: c.visionModel,
		Messages: []chatMessage{
			{
				Role: "user",
				Content: []map[string]any{
					{"type": "text", "text": prompt},
					{"type": "image_url", "image_url": map[string]string{"url": dataURL}},
				},
			},
		},
		Temperature:    0.2,
		MaxTokens:      500,
		ResponseFormat: jsonFormat(),
	}
	return c.complete(ctx, req)
}

func (c *openAI) complete(ctx context.Context, body chatRequest) (string, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		strings.TrimRight(c.endpoint, "/")+"/v1/chat/completions", bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.key)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("openai: status %d", resp.StatusCode)
	}

	var out struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("openai: decode: %w", err)
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("openai: no choices")
	}
	return strings.TrimSpace(out.Choices[0].Message.Content), nil
}
