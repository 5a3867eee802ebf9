package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
)

const (
	DefaultBaseURL = "https://api.groq.com/openai/v1/chat/completions"

	DefaultModel  = "llama-3.3-70b-versatile"
	FallbackModel = "llama4-scout-17b-16e-instruct"

	defaultMaxTokens = 4096
)

// Client is a minimal chat-completions client. Any OpenAI-compatible
// endpoint works; the base URL and model pair come from configuration.
type Client struct {
	baseURL       string
	apiKey        string
	model         string
	fallbackModel string
	httpClient    *http.Client
}

type NewClientParams struct {
	BaseURL       string
	APIKey        string
	Model         string
	FallbackModel string
	// HTTPClient overrides the default one, e.g. with an otelhttp transport
	HTTPClient *http.Client
}

func NewClient(params NewClientParams) *Client {
	c := &Client{
		baseURL:       params.BaseURL,
		apiKey:        params.APIKey,
		model:         params.Model,
		fallbackModel: params.FallbackModel,
		httpClient:    params.HTTPClient,
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.model == "" {
		c.model = DefaultModel
	}
	if c.fallbackModel == "" {
		c.fallbackModel = FallbackModel
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{
			Timeout: 60 * time.Second,
		}
	}
	return c
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature,omitempty"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	ID      string `json:"id"`
	Choices []struct {
		Message      Message `json:"message"`
		FinishReason string  `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// Chat sends the messages to the configured model and falls back to the
// secondary model on any failure.
func (c *Client) Chat(ctx context.Context, messages []Message, temperature float64) (string, error) {
	models := []string{c.model}
	if c.model != c.fallbackModel && c.fallbackModel != "" {
		models = append(models, c.fallbackModel)
	}

	var lastErr error
	for _, model := range models {
		result, err := c.chatWithModel(ctx, messages, temperature, model)
		if err == nil {
			return result, nil
		}
		log.Warnf("chat completion with model [%s] failed: %s", model, err)
		lastErr = err
	}
	return "", lastErr
}

func (c *Client) chatWithModel(ctx context.Context, messages []Message, temperature float64, model string) (string, error) {
	reqJson, err := json.Marshal(chatRequest{
		Model:       model,
		Messages:    messages,
		Temperature: temperature,
		MaxTokens:   defaultMaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("marshal chat request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(reqJson))
	if err != nil {
		return "", fmt.Errorf("create chat request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("execute chat request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read chat response: %w", err)
	}

	var chatResp chatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", fmt.Errorf("unmarshal chat response: %w", err)
	}

	if chatResp.Error != nil {
		return "", fmt.Errorf("chat api error: %s", chatResp.Error.Message)
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("chat api returned no choices")
	}

	return chatResp.Choices[0].Message.Content, nil
}

// SimpleChat is a one-shot system+user prompt exchange.
func (c *Client) SimpleChat(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	return c.Chat(ctx, []Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: userMessage},
	}, 0.2)
}
