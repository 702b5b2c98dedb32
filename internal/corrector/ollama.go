package corrector

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/valpere/humanizer/internal/postprocess"
)

// OllamaCorrector uses a local Ollama model as a proofreader.
type OllamaCorrector struct {
	model   string
	baseURL string
	client  *http.Client
}

type ollamaRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type ollamaResponse struct {
	Response string `json:"response"`
}

// NewOllamaCorrector creates a corrector backed by a local Ollama model.
func NewOllamaCorrector(cfg Config) *OllamaCorrector {
	model := cfg.Model
	if model == "" {
		model = "llama3.2"
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &OllamaCorrector{
		model:   model,
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

func (c *OllamaCorrector) Name() string {
	return "ollama"
}

// Correct asks the model for a spelling and grammar pass. An empty answer
// means the model found nothing to change, so the input comes back as is.
func (c *OllamaCorrector) Correct(ctx context.Context, text string) (string, error) {
	jsonData, err := json.Marshal(ollamaRequest{
		Model:  c.model,
		Prompt: buildProofreadPrompt(text),
		Stream: false,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal correction request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fmt.Sprintf("%s/api/generate", c.baseURL), bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create correction request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("correction request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("corrector returned status %d", resp.StatusCode)
	}

	var ollamaResp ollamaResponse
	if err := json.NewDecoder(resp.Body).Decode(&ollamaResp); err != nil {
		return "", fmt.Errorf("failed to decode correction response: %w", err)
	}

	corrected := postprocess.Clean(ollamaResp.Response)
	if corrected == "" {
		return text, nil
	}
	return corrected, nil
}

func buildProofreadPrompt(text string) string {
	return fmt.Sprintf(`You are a careful English proofreader.

Fix spelling mistakes and grammatical errors in the text below.

**Rules:**
- Change as little as possible
- Keep contractions and conversational openers such as "Well," or "Honestly,"
- Keep the tone informal
- Do not add or remove sentences

TEXT:
%s

If the text is already correct, return it unchanged.
Output ONLY the corrected text. Do not include any explanation.`, text)
}
