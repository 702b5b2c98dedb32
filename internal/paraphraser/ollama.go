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
	defaultOllamaURL   = "http://localhost:11434"
	defaultOllamaModel = "llama3.2"
)

// systemPrompt tells a general chat model how to read the task prefix. It is
// shared by the chat-style backends.
const systemPrompt = `You rewrite text. The user message starts with "paraphrase:" followed by the text.
Reword that text so it keeps its meaning but uses different sentence structure and wording.
Only respond with the rewritten text, nothing else. No explanations, no quotes.`

// OllamaService paraphrases with a model served by a local Ollama instance.
type OllamaService struct {
	baseURL string
	model   string
	client  *http.Client
}

type ollamaRequest struct {
	Model  string `json:"model"`
	System string `json:"system,omitempty"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type ollamaResponse struct {
	Response string `json:"response"`
}

func NewOllamaService(cfg Config) *OllamaService {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultOllamaURL
	}
	model := cfg.Model
	if model == "" {
		model = defaultOllamaModel
	}
	return &OllamaService{
		baseURL: baseURL,
		model:   model,
		client:  &http.Client{Timeout: timeoutOr(cfg.Timeout, 120*time.Second)},
	}
}

func (s *OllamaService) Name() string {
	return "ollama"
}

func (s *OllamaService) Paraphrase(ctx context.Context, prompt string) (string, error) {
	jsonData, err := json.Marshal(ollamaRequest{
		Model:  s.model,
		System: systemPrompt,
		Prompt: prompt,
		Stream: false,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, fmt.Sprintf("%s/api/generate", s.baseURL), bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("ollama request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ollama returned status %d", resp.StatusCode)
	}

	var ollamaResp ollamaResponse
	if err := json.NewDecoder(resp.Body).Decode(&ollamaResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	text := postprocess.Clean(ollamaResp.Response)
	if text == "" {
		return "", fmt.Errorf("ollama returned an empty paraphrase")
	}
	return text, nil
}

func (s *OllamaService) IsAvailable(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/api/tags", s.baseURL), nil)
	if err != nil {
		return err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("ollama not available: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ollama returned status %d", resp.StatusCode)
	}
	return nil
}

// Model returns the model name sent with each request.
func (s *OllamaService) Model() string {
	return s.model
}
