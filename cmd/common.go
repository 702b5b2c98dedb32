/*
Copyright © 2025 Valentyn Solomko <valentyn.solomko@gmail.com>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/valpere/humanizer/internal/corrector"
	"github.com/valpere/humanizer/internal/paraphraser"
	"github.com/valpere/humanizer/internal/rules"
	"github.com/valpere/humanizer/internal/store"
)

// buildParaphraser constructs the named paraphrase backend from the bound
// flags, config file and environment.
func buildParaphraser(name string) (paraphraser.Service, error) {
	cfg := paraphraser.Config{Timeout: viper.GetDuration("timeout")}

	switch name {
	case "ollama":
		cfg.BaseURL = viper.GetString("ollama-url")
		cfg.Model = viper.GetString("ollama-model")
	case "openrouter":
		cfg.APIKey = viper.GetString("openrouter-key")
		cfg.Model = viper.GetString("openrouter-model")
	case "huggingface", "hf":
		cfg.APIKey = viper.GetString("hf-key")
		cfg.Model = viper.GetString("hf-model")
	case "gemini":
		cfg.APIKey = viper.GetString("gemini-key")
		cfg.Model = viper.GetString("gemini-model")
	}

	svc, err := paraphraser.New(name, cfg)
	if err != nil {
		return nil, fmt.Errorf("%w (available: %v)", err, paraphraser.Names)
	}
	return svc, nil
}

// buildCorrector constructs the named grammar backend.
func buildCorrector(name string) (corrector.Corrector, error) {
	cfg := corrector.Config{Timeout: viper.GetDuration("timeout")}

	switch name {
	case "languagetool", "lt":
		cfg.BaseURL = viper.GetString("lt-url")
		cfg.Username = viper.GetString("lt-username")
		cfg.APIKey = viper.GetString("lt-key")
		cfg.Language = viper.GetString("lt-language")
	case "ollama":
		cfg.BaseURL = viper.GetString("ollama-url")
		cfg.Model = viper.GetString("grammar-model")
	}

	c, err := corrector.New(name, cfg)
	if err != nil {
		return nil, fmt.Errorf("%w (available: %v)", err, corrector.Names)
	}
	return c, nil
}

// loadTable returns the rule file named by the "rules" key, or the built-in
// table when none is set.
func loadTable() (*rules.Table, error) {
	path := viper.GetString("rules")
	if path == "" {
		return rules.DefaultTable(), nil
	}
	return rules.LoadTable(path)
}

func openStore() (*store.Store, error) {
	dbPath := viper.GetString("db")
	if dbPath == "" {
		return nil, fmt.Errorf("no database path configured")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}
	db, err := store.New(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}
