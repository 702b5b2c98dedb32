// Package detector identifies the language of input text. The rewrite rules
// are English-only, so the CLI uses it to warn about other languages.
package detector

import (
	"strings"

	lingua "github.com/pemistahl/lingua-go"
)

// minDetectionLength is the shortest text, in runes, worth classifying.
const minDetectionLength = 20

// Detector wraps a lingua detector. Building one is expensive; reuse it.
type Detector struct {
	detector lingua.LanguageDetector
}

func New() *Detector {
	detector := lingua.NewLanguageDetectorBuilder().
		FromAllLanguages().
		Build()

	return &Detector{detector: detector}
}

func (d *Detector) Detect(text string) (lingua.Language, bool) {
	if text == "" {
		return lingua.Unknown, false
	}
	return d.detector.DetectLanguageOf(text)
}

func (d *Detector) DetectISO(text string) (string, bool) {
	lang, ok := d.Detect(text)
	if !ok {
		return "", false
	}
	return lang.IsoCode639_1().String(), true
}

// IsEnglish reports whether text looks English. Texts shorter than
// minDetectionLength runes, or whose language is ambiguous, pass with an empty
// code. Otherwise iso is the detected ISO 639-1 code.
func (d *Detector) IsEnglish(text string) (iso string, ok bool) {
	text = strings.TrimSpace(text)
	if len([]rune(text)) < minDetectionLength {
		return "", true
	}

	iso, detected := d.DetectISO(text)
	if !detected {
		return "", true
	}
	return iso, iso == lingua.EN.String()
}
