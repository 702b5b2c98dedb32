package paraphraser

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const (
	defaultHuggingFaceURL   = "https://api-inference.huggingface.co"
	defaultHuggingFaceModel = "Vamsi/T5_Paraphrase_Paws"

	// T5 expects an explicit end-of-sequence marker after the input.
	t5EndOfSequence = " </s>"
	t5MaxLength     = 512
)

// HuggingFaceService runs a text2text paraphrase model on the Hugging Face
// Inference API. The default model is a T5 fine-tuned on PAWS.
type HuggingFaceService struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

type hfParameters struct {
	MaxLength          int `json:"max_length"`
	NumReturnSequences int `json:"num_return_sequences"`
}

type hfRequest struct {
	Inputs     string       `json:"inputs"`
	Parameters hfParameters `json:"parameters"`
}

type hfGenerated struct {
	GeneratedText string `json:"generated_text"`
}

type hfError struct {
	Error         string  `json:"error"`
	EstimatedTime float64 `json:"estimated_time,omitempty"`
}

func NewHuggingFaceService(cfg Config) *HuggingFaceService {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultHuggingFaceURL
	}
	model := cfg.Model
	if model == "" {
		model = defaultHuggingFaceModel
	}
	return &HuggingFaceService{
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		client:  &http.Client{Timeout: timeoutOr(cfg.Timeout, 120*time.Second)},
	}
}

func (s *HuggingFaceService) Name() string {
	return "huggingface"
}

func (s *HuggingFaceService) Paraphrase(ctx context.Context, prompt string) (string, error) {
	jsonData, err := json.Marshal(hfRequest{
		Inputs: prompt + t5EndOfSequence,
		Parameters: hfParameters{
			MaxLength:          t5MaxLength,
			NumReturnSequences: 1,
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, fmt.Sprintf("%s/models/%s", s.baseURL, s.model), bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		httpReq.Header.Set("Authorization", fmt.Sprintf("Bearer %s", s.apiKey))
	}

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("huggingface request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr hfError
		if json.NewDecoder(resp.Body).Decode(&apiErr) == nil && apiErr.Error != "" {
			if apiErr.EstimatedTime > 0 {
				return "", fmt.Errorf("huggingface returned status %d: %s (ready in ~%.0fs)", resp.StatusCode, apiErr.Error, apiErr.EstimatedTime)
			}
			return "", fmt.Errorf("huggingface returned status %d: %s", resp.StatusCode, apiErr.Error)
		}
		return "", fmt.Errorf("huggingface returned status %d", resp.StatusCode)
	}

	var generated []hfGenerated
	if err := json.NewDecoder(resp.Body).Decode(&generated); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(generated) == 0 {
		return "", fmt.Errorf("no paraphrase returned")
	}

	text := strings.TrimSpace(generated[0].GeneratedText)
	if text == "" {
		return "", fmt.Errorf("huggingface returned an empty paraphrase")
	}
	return text, nil
}

func (s *HuggingFaceService) IsAvailable(ctx context.Context) error {
	return nil
}
