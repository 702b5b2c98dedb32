package internal

import "time"

// RunRecord describes the outcome of one humanize invocation. It carries
// sizes and timings only, never the text itself.
type RunRecord struct {
	ID             string        `json:"id"`
	StartedAt      time.Time     `json:"started_at"`
	Duration       time.Duration `json:"duration"`
	Paraphraser    string        `json:"paraphraser"`
	Corrector      string        `json:"corrector,omitempty"`
	CorrectGrammar bool          `json:"correct_grammar"`
	ErrorKind      string        `json:"error_kind,omitempty"`
	InputChars     int           `json:"input_chars"`
	OutputChars    int           `json:"output_chars"`
}

// Succeeded reports whether the run produced text.
func (r RunRecord) Succeeded() bool {
	return r.ErrorKind == ""
}
