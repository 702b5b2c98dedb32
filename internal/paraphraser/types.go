// Package paraphraser provides the model backends that reword raw input
// before the humanizing rules run.
package paraphraser

import (
	"context"
	"fmt"
	"time"
)

// PromptPrefix is the task prefix the paraphrase models are trained on.
const PromptPrefix = "paraphrase: "

// Prompt wraps user text in the paraphrase task prefix.
func Prompt(text string) string {
	return PromptPrefix + text
}

// Config carries backend settings. Zero values select per-backend defaults.
type Config struct {
	BaseURL string        `mapstructure:"base_url" json:"base_url"`
	APIKey  string        `mapstructure:"api_key" json:"api_key"`
	Model   string        `mapstructure:"model" json:"model"`
	Timeout time.Duration `mapstructure:"timeout" json:"timeout"`
}

// Service turns a paraphrase prompt into a reworded variant. A call is a
// single request: no streaming, no retries.
type Service interface {
	Name() string
	Paraphrase(ctx context.Context, prompt string) (string, error)
	IsAvailable(ctx context.Context) error
}

// Names lists the backends New understands.
var Names = []string{"ollama", "openrouter", "huggingface", "gemini"}

// New builds the backend registered under name.
func New(name string, cfg Config) (Service, error) {
	switch name {
	case "ollama":
		return NewOllamaService(cfg), nil
	case "openrouter":
		return NewOpenRouterService(cfg), nil
	case "huggingface", "hf":
		return NewHuggingFaceService(cfg), nil
	case "gemini":
		return NewGeminiService(context.Background(), cfg)
	default:
		return nil, fmt.Errorf("unknown paraphraser: %s", name)
	}
}

func timeoutOr(d, def time.Duration) time.Duration {
	if d > 0 {
		return d
	}
	return def
}
