// Package corrector implements the optional grammar pass that runs after the
// humanizing rules.
package corrector

import (
	"context"
	"fmt"
	"time"
)

// Corrector returns a grammar-corrected copy of text.
type Corrector interface {
	Name() string
	Correct(ctx context.Context, text string) (string, error)
}

// Config carries backend settings. Zero values select per-backend defaults.
type Config struct {
	BaseURL  string        `mapstructure:"base_url" json:"base_url"`
	APIKey   string        `mapstructure:"api_key" json:"api_key"`
	Username string        `mapstructure:"username" json:"username"`
	Model    string        `mapstructure:"model" json:"model"`
	Language string        `mapstructure:"language" json:"language"`
	Timeout  time.Duration `mapstructure:"timeout" json:"timeout"`
}

// Names lists the backends New understands.
var Names = []string{"languagetool", "ollama"}

// New builds the backend registered under name.
func New(name string, cfg Config) (Corrector, error) {
	switch name {
	case "languagetool", "lt":
		return NewLanguageTool(cfg), nil
	case "ollama":
		return NewOllamaCorrector(cfg), nil
	default:
		return nil, fmt.Errorf("unknown grammar corrector: %s", name)
	}
}
