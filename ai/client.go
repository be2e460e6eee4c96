package ai

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

// ErrGenerationDisabled is returned when no API key was configured.
// The process still boots; only generation requests fail.
var ErrGenerationDisabled = errors.New("generation API key is not configured")

// DefaultModels is the fixed fallback preference order used when the
// provider's model listing cannot be reached.
var DefaultModels = []string{"deepseek-chat", "deepseek-reasoner"}

// Client talks to an OpenAI-compatible chat-completions provider. One
// instance is created at startup and shared; the candidate model list is
// the only mutable state and is guarded for concurrent use.
type Client struct {
	http      *resty.Client
	baseURL   string
	apiKey    string
	maxTokens int

	mu     sync.RWMutex
	models []string
}

func NewClient(baseURL, apiKey string, maxTokens int) *Client {
	return &Client{
		http:      resty.New(),
		baseURL:   strings.TrimRight(baseURL, "/"),
		apiKey:    apiKey,
		maxTokens: maxTokens,
		models:    append([]string(nil), DefaultModels...),
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string            `json:"model"`
	Messages       []chatMessage     `json:"messages"`
	Temperature    float64           `json:"temperature"`
	MaxTokens      int               `json:"max_tokens,omitempty"`
	ResponseFormat map[string]string `json:"response_format,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// GenerateText runs one completion against the given model. When
// structured output is requested and the provider rejects it, the same
// model is retried once in plain-text mode before giving up.
func (c *Client) GenerateText(prompt, model string, structured bool) (string, error) {
	if c.apiKey == "" {
		return "", ErrGenerationDisabled
	}

	reqID := uuid.NewString()
	text, err := c.complete(reqID, prompt, model, structured)
	if err != nil && structured {
		log.Printf("[ai %s] structured output failed for %s, retrying plain: %v", reqID, model, err)
		text, err = c.complete(reqID, prompt, model, false)
	}
	return text, err
}

func (c *Client) complete(reqID, prompt, model string, structured bool) (string, error) {
	body := chatRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		Temperature: 0.7,
		MaxTokens:   c.maxTokens,
	}
	if structured {
		body.ResponseFormat = map[string]string{"type": "json_object"}
	}

	resp, err := c.http.R().
		SetHeader("Content-Type", "application/json").
		SetHeader("Authorization", "Bearer "+c.apiKey).
		SetBody(body).
		Post(c.baseURL + "/chat/completions")
	if err != nil {
		return "", fmt.Errorf("request to %s failed: %w", model, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("API error %d from %s: %s", resp.StatusCode(), model, preview(resp.String()))
	}

	var out chatResponse
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return "", fmt.Errorf("failed to decode completion response: %w", err)
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("no choices returned by %s", model)
	}

	log.Printf("[ai %s] %s returned %d bytes", reqID, model, len(out.Choices[0].Message.Content))
	return out.Choices[0].Message.Content, nil
}

type modelList struct {
	Data []struct {
		ID string `json:"id"`
	} `json:"data"`
}

// RefreshModels queries the provider's read-only model listing and narrows
// the candidate list to identifiers that are actually available, keeping
// the DefaultModels preference order. The previous list stays in place
// when the listing is unreachable or has no overlap.
func (c *Client) RefreshModels() {
	if c.apiKey == "" {
		return
	}

	resp, err := c.http.R().
		SetHeader("Authorization", "Bearer "+c.apiKey).
		Get(c.baseURL + "/models")
	if err != nil {
		log.Printf("[ai] model discovery failed, keeping current list: %v", err)
		return
	}
	if resp.StatusCode() != http.StatusOK {
		log.Printf("[ai] model discovery returned %d, keeping current list", resp.StatusCode())
		return
	}

	var list modelList
	if err := json.Unmarshal(resp.Body(), &list); err != nil {
		log.Printf("[ai] failed to decode model listing: %v", err)
		return
	}

	available := make(map[string]bool, len(list.Data))
	for _, m := range list.Data {
		available[m.ID] = true
	}

	var models []string
	for _, id := range DefaultModels {
		if available[id] {
			models = append(models, id)
		}
	}
	if len(models) == 0 {
		models = append([]string(nil), DefaultModels...)
	}

	c.mu.Lock()
	c.models = models
	c.mu.Unlock()
	log.Printf("[ai] candidate models refreshed: %s", strings.Join(models, ", "))
}

// Models returns the current candidate list in preference order.
func (c *Client) Models() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]string(nil), c.models...)
}
