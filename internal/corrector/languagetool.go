package corrector

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"
	"unicode/utf16"
)

const (
	defaultLanguageToolURL = "https://api.languagetool.org"
	defaultLanguage        = "en-US"
)

// LanguageTool corrects text with the LanguageTool /v2/check API, taking the
// first suggestion of every match.
type LanguageTool struct {
	baseURL  string
	language string
	username string
	apiKey   string
	client   *http.Client
}

type ltReplacement struct {
	Value string `json:"value"`
}

type ltMatch struct {
	Message      string          `json:"message"`
	Offset       int             `json:"offset"`
	Length       int             `json:"length"`
	Replacements []ltReplacement `json:"replacements"`
}

type ltResponse struct {
	Matches []ltMatch `json:"matches"`
}

func NewLanguageTool(cfg Config) *LanguageTool {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultLanguageToolURL
	}
	language := cfg.Language
	if language == "" {
		language = defaultLanguage
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &LanguageTool{
		baseURL:  strings.TrimRight(baseURL, "/"),
		language: language,
		username: cfg.Username,
		apiKey:   cfg.APIKey,
		client:   &http.Client{Timeout: timeout},
	}
}

func (c *LanguageTool) Name() string {
	return "languagetool"
}

func (c *LanguageTool) Correct(ctx context.Context, text string) (string, error) {
	form := url.Values{}
	form.Set("text", text)
	form.Set("language", c.language)
	if c.username != "" && c.apiKey != "" {
		form.Set("username", c.username)
		form.Set("apiKey", c.apiKey)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, fmt.Sprintf("%s/v2/check", c.baseURL), strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("languagetool request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("languagetool returned status %d", resp.StatusCode)
	}

	var ltResp ltResponse
	if err := json.NewDecoder(resp.Body).Decode(&ltResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	return applyMatches(text, ltResp.Matches), nil
}

// applyMatches substitutes the first replacement of each match. Offsets are
// UTF-16 code units, as LanguageTool reports them. Matches are applied right
// to left so earlier offsets stay valid; a match overlapping one already
// applied is skipped.
func applyMatches(text string, matches []ltMatch) string {
	if len(matches) == 0 {
		return text
	}

	sorted := append([]ltMatch(nil), matches...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Offset > sorted[j].Offset
	})

	units := utf16.Encode([]rune(text))
	limit := len(units)

	for _, m := range sorted {
		if len(m.Replacements) == 0 {
			continue
		}
		start, end := m.Offset, m.Offset+m.Length
		if start < 0 || m.Length < 0 || end > limit {
			continue
		}

		repl := utf16.Encode([]rune(m.Replacements[0].Value))
		next := make([]uint16, 0, len(units)-m.Length+len(repl))
		next = append(next, units[:start]...)
		next = append(next, repl...)
		next = append(next, units[end:]...)
		units = next
		limit = start
	}

	return string(utf16.Decode(units))
}
