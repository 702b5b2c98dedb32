package segment_test

import (
	"reflect"
	"strings"
	"testing"

	"github.com/valpere/humanizer/internal/segment"
)

func TestParagraphs(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		maxRunes int
		want     []string
	}{
		{
			name:     "single paragraph",
			text:     "  Just one paragraph.  ",
			maxRunes: 0,
			want:     []string{"Just one paragraph."},
		},
		{
			name:     "blank line separated",
			text:     "One.\n\nTwo.\n \n\nThree.",
			maxRunes: 0,
			want:     []string{"One.", "Two.", "Three."},
		},
		{
			name:     "crlf blank lines",
			text:     "First.\r\n\r\nSecond.",
			maxRunes: 0,
			want:     []string{"First.", "Second."},
		},
		{
			name:     "single newline stays inside paragraph",
			text:     "line one\nline two",
			maxRunes: 0,
			want:     []string{"line one\nline two"},
		},
		{
			name:     "sentence boundary",
			text:     "First sentence ends here. Second one follows.",
			maxRunes: 30,
			want:     []string{"First sentence ends here.", "Second one follows."},
		},
		{
			name:     "word boundary",
			text:     "one two three four five six",
			maxRunes: 10,
			want:     []string{"one two", "three four", "five six"},
		},
		{
			name:     "hard cut",
			text:     "abcdefghij",
			maxRunes: 4,
			want:     []string{"abcd", "efgh", "ij"},
		},
		{
			name:     "counts runes not bytes",
			text:     "привіт світ",
			maxRunes: 6,
			want:     []string{"привіт", "світ"},
		},
		{
			name:     "length split disabled",
			text:     strings.Repeat("word ", 100),
			maxRunes: 0,
			want:     []string{strings.TrimSpace(strings.Repeat("word ", 100))},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := segment.Paragraphs(tt.text, tt.maxRunes)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Paragraphs() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParagraphs_Empty(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\n\n"} {
		if got := segment.Paragraphs(text, 10); len(got) != 0 {
			t.Errorf("Paragraphs(%q) = %q, want none", text, got)
		}
	}
}

func TestParagraphs_PiecesRespectLimit(t *testing.T) {
	text := "The quick brown fox jumps over the lazy dog. " +
		"Pack my box with five dozen liquor jugs. " +
		"How vexingly quick daft zebras jump!"

	pieces := segment.Paragraphs(text, 50)
	if len(pieces) < 2 {
		t.Fatalf("expected ≥2 pieces, got %d", len(pieces))
	}
	for i, p := range pieces {
		if n := len([]rune(p)); n > 50 {
			t.Errorf("piece %d has %d runes", i, n)
		}
		if p != strings.TrimSpace(p) {
			t.Errorf("piece %d has leading/trailing whitespace: %q", i, p)
		}
	}

	if got := strings.Fields(strings.Join(pieces, " ")); !reflect.DeepEqual(got, strings.Fields(text)) {
		t.Errorf("words lost after split: %q", got)
	}
}

func TestJoin(t *testing.T) {
	got := segment.Join([]string{"One.", "Two."})
	if got != "One.\n\nTwo." {
		t.Errorf("Join() = %q", got)
	}
	if segment.Join(nil) != "" {
		t.Error("expected empty join for no paragraphs")
	}
}
