package paraphraser

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/valpere/humanizer/internal/postprocess"
)

const defaultGeminiModel = "gemini-2.0-flash"

// GeminiService paraphrases with Google's Gemini API.
type GeminiService struct {
	client *genai.Client
	model  string
}

// NewGeminiService creates the genai client. The API key is required.
func NewGeminiService(ctx context.Context, cfg Config) (*GeminiService, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}

	model := cfg.Model
	if model == "" {
		model = defaultGeminiModel
	}

	clientCfg := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiService{client: client, model: model}, nil
}

func (s *GeminiService) Name() string {
	return "gemini"
}

func (s *GeminiService) Paraphrase(ctx context.Context, prompt string) (string, error) {
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
	}

	result, err := s.client.Models.GenerateContent(ctx, s.model, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("Gemini generate failed: %w", err)
	}

	text := postprocess.Clean(result.Text())
	if text == "" {
		return "", fmt.Errorf("Gemini returned an empty paraphrase")
	}
	return text, nil
}

func (s *GeminiService) IsAvailable(ctx context.Context) error {
	return nil
}
