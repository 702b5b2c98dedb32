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
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"

	"github.com/valpere/humanizer/internal/corrector"
	"github.com/valpere/humanizer/internal/detector"
	"github.com/valpere/humanizer/internal/markdown"
	"github.com/valpere/humanizer/internal/orchestrator"
	"github.com/valpere/humanizer/internal/rules"
	"github.com/valpere/humanizer/internal/segment"
)

var (
	inputFile  string
	outputFile string
	seed       uint64

	byParagraph  bool
	maxChars     int
	fromMarkdown bool
	langCheck    bool
)

var humanizeCmd = &cobra.Command{
	Use:   "humanize [text...]",
	Short: "Paraphrase text and apply the humanizing rules",
	Long: `Rewrite text in three stages:
  1. paraphrase with a language model
  2. rule-based rewrites: simpler words, contractions, sometimes an opener
  3. optional grammar correction (--grammar)

Input is taken from the arguments, from --input, or from stdin.

Available paraphrasers:
  - ollama       Ollama LLM (self-hosted, default)
  - openrouter   OpenRouter LLM (requires API key)
  - huggingface  Hugging Face Inference API, T5 paraphrase model (requires API key)
  - gemini       Google Gemini (requires API key)

Available grammar correctors:
  - languagetool LanguageTool HTTP API (default)
  - ollama       Ollama LLM proofreader`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		text, err := readInput(cmd, args)
		if err != nil {
			return err
		}
		if fromMarkdown {
			text = markdown.ToPlainText([]byte(text))
		}
		text = norm.NFC.String(text)

		if langCheck {
			if iso, ok := detector.New().IsEnglish(text); !ok {
				fmt.Fprintf(cmd.ErrOrStderr(), "Warning: input looks like %s; the rewrite rules only cover English\n", iso)
			}
		}

		table, err := loadTable()
		if err != nil {
			return err
		}

		svc, err := buildParaphraser(viper.GetString("paraphraser"))
		if err != nil {
			return err
		}

		if viper.GetBool("check-backend") {
			if err := svc.IsAvailable(ctx); err != nil {
				return fmt.Errorf("paraphraser %s is not available: %w", svc.Name(), err)
			}
		}

		correctGrammar := viper.GetBool("grammar")
		var corr corrector.Corrector
		if correctGrammar {
			corr, err = buildCorrector(viper.GetString("corrector"))
			if err != nil {
				return err
			}
		}

		config := orchestrator.Config{Logger: logger}
		if cmd.Flags().Changed("seed") {
			config.Rand = rules.NewRand(seed)
		}
		if !viper.GetBool("no-history") {
			db, err := openStore()
			if err != nil {
				logger.Warn("run log disabled", zap.Error(err))
			} else {
				defer db.Close()
				config.Recorder = db
			}
		}

		orch := orchestrator.New(svc, rules.NewEngine(table), corr, config)

		pieces := []string{text}
		if byParagraph {
			if p := segment.Paragraphs(text, maxChars); len(p) > 0 {
				pieces = p
			}
		}

		results := make([]string, 0, len(pieces))
		for i, piece := range pieces {
			if len(pieces) > 1 {
				fmt.Fprintf(cmd.ErrOrStderr(), "Humanizing paragraph %d/%d...\n", i+1, len(pieces))
			}
			task, err := orch.Run(ctx, orchestrator.Request{Text: piece, CorrectGrammar: correctGrammar})
			if err != nil {
				return err
			}
			res := task.Wait()
			if res.Failed() {
				return res.Err
			}
			results = append(results, res.Text)
		}

		return writeOutput(cmd, segment.Join(results))
	},
}

// readInput picks the text source: --input, then arguments, then stdin.
func readInput(cmd *cobra.Command, args []string) (string, error) {
	switch {
	case inputFile != "":
		if inputFile == outputFile {
			return "", fmt.Errorf("input file and output file cannot be the same")
		}
		data, err := os.ReadFile(inputFile)
		if err != nil {
			return "", fmt.Errorf("failed to read input file: %w", err)
		}
		return string(data), nil
	case len(args) > 0:
		return strings.Join(args, " "), nil
	default:
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
}

func writeOutput(cmd *cobra.Command, text string) error {
	if outputFile == "" {
		fmt.Fprintln(cmd.OutOrStdout(), text)
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(outputFile), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(outputFile, []byte(text+"\n"), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Successfully wrote %s\n", outputFile)
	return nil
}

func init() {
	rootCmd.AddCommand(humanizeCmd)

	humanizeCmd.Flags().StringVarP(&inputFile, "input", "i", "", "Input file (default: arguments or stdin)")
	humanizeCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")
	humanizeCmd.Flags().Uint64Var(&seed, "seed", 0, "Seed for the opener choice (random if unset)")

	humanizeCmd.Flags().BoolVar(&byParagraph, "paragraphs", false, "Humanize each paragraph as a separate request")
	humanizeCmd.Flags().IntVar(&maxChars, "max-chars", 0, "With --paragraphs, split paragraphs longer than this many characters (0 = no limit)")
	humanizeCmd.Flags().BoolVar(&fromMarkdown, "markdown", false, "Treat input as markdown and humanize its plain text")
	humanizeCmd.Flags().BoolVar(&langCheck, "lang-check", false, "Warn when the input does not look like English")

	humanizeCmd.Flags().BoolP("grammar", "g", false, "Run a grammar correction pass after the rules")
	humanizeCmd.Flags().StringP("paraphraser", "p", "ollama", "Paraphrase backend")
	humanizeCmd.Flags().StringP("corrector", "c", "languagetool", "Grammar correction backend")
	humanizeCmd.Flags().Bool("check-backend", false, "Check that the paraphraser is reachable before sending text")
	humanizeCmd.Flags().Bool("no-history", false, "Do not record this run in the run log")
	humanizeCmd.Flags().Duration("timeout", 0, "Per-request backend timeout (0 = backend default)")

	humanizeCmd.Flags().String("ollama-url", "http://localhost:11434", "Ollama base URL")
	humanizeCmd.Flags().String("ollama-model", "", "Ollama paraphrase model")
	humanizeCmd.Flags().String("grammar-model", "", "Ollama proofreading model")
	humanizeCmd.Flags().String("openrouter-key", "", "OpenRouter API key")
	humanizeCmd.Flags().String("openrouter-model", "", "OpenRouter model")
	humanizeCmd.Flags().String("hf-key", "", "Hugging Face API token")
	humanizeCmd.Flags().String("hf-model", "", "Hugging Face paraphrase model")
	humanizeCmd.Flags().String("gemini-key", "", "Gemini API key")
	humanizeCmd.Flags().String("gemini-model", "", "Gemini model")
	humanizeCmd.Flags().String("lt-url", "", "LanguageTool base URL")
	humanizeCmd.Flags().String("lt-username", "", "LanguageTool Premium username")
	humanizeCmd.Flags().String("lt-key", "", "LanguageTool Premium API key")
	humanizeCmd.Flags().String("lt-language", "en-US", "LanguageTool language code")

	viper.BindPFlags(humanizeCmd.Flags())
}
