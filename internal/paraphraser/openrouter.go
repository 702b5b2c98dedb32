package paraphraser

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/valpere/humanizer/internal/postprocess"
)

const (
	defaultOpenRouterURL   = "https://openrouter.ai/api/v1"
	defaultOpenRouterModel = "meta-llama/llama-3.1-8b-instruct:free"
)

// OpenRouterService paraphrases through the OpenRouter chat completions API.
type OpenRouterService struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

type openRouterMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openRouterRequest struct {
	Model     string              `json:"model"`
	Messages  []openRouterMessage `json:"messages"`
	MaxTokens int                 `json:"max_tokens"`
}

type openRouterResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func NewOpenRouterService(cfg Config) *OpenRouterService {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultOpenRouterURL
	}
	model := cfg.Model
	if model == "" {
		model = defaultOpenRouterModel
	}
	return &OpenRouterService{
		apiKey:  cfg.APIKey,
		baseURL: baseURL,
		model:   model,
		client:  &http.Client{Timeout: timeoutOr(cfg.Timeout, 120*time.Second)},
	}
}

func (s *OpenRouterService) Name() string {
	return "openrouter"
}

func (s *OpenRouterService) Paraphrase(ctx context.Context, prompt string) (string, error) {
	if s.apiKey == "" {
		return "", fmt.Errorf("OpenRouter API key required")
	}

	jsonData, err := json.Marshal(openRouterRequest{
		Model: s.model,
		Messages: []openRouterMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		MaxTokens: 2048,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, fmt.Sprintf("%s/chat/completions", s.baseURL), bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", fmt.Sprintf("Bearer %s", s.apiKey))
	httpReq.Header.Set("X-Title", "Humanizer")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("openrouter request failed: %w", err)
	}
	defer resp.Body.Close()

	var orResp openRouterResponse
	decodeErr := json.NewDecoder(resp.Body).Decode(&orResp)

	if resp.StatusCode != http.StatusOK {
		if decodeErr == nil && orResp.Error != nil {
			return "", fmt.Errorf("openrouter returned status %d: %s", resp.StatusCode, orResp.Error.Message)
		}
		return "", fmt.Errorf("openrouter returned status %d", resp.StatusCode)
	}
	if decodeErr != nil {
		return "", fmt.Errorf("failed to decode response: %w", decodeErr)
	}

	if len(orResp.Choices) == 0 {
		return "", fmt.Errorf("empty response from openrouter")
	}

	text := postprocess.Clean(orResp.Choices[0].Message.Content)
	if text == "" {
		return "", fmt.Errorf("openrouter returned an empty paraphrase")
	}
	return text, nil
}

func (s *OpenRouterService) IsAvailable(ctx context.Context) error {
	if s.apiKey == "" {
		return fmt.Errorf("OpenRouter API key not configured")
	}
	return nil
}
