// Package postprocess strips chat-model artifacts from generated text.
//
// Every LLM-backed paraphraser and grammar corrector runs its raw output
// through Clean before handing it back, so the rule engine only ever sees the
// rewritten prose itself.
package postprocess

import (
	"regexp"
	"strings"
)

// Clean removes model artifacts in three passes and returns the trimmed
// result:
//  1. reasoning blocks (<think>, <thinking>, <reasoning>, <reflection>)
//  2. echoed lead-ins such as "Here is the paraphrased text:"
//  3. quotes wrapping the whole answer
func Clean(text string) string {
	text = removeThinkingBlocks(text)
	text = removeInstructionEchoes(text)
	text = removeQuoteWrapping(text)
	return strings.TrimSpace(text)
}

// RE2 has no backreferences, so each tag pair is spelled out.
var thinkingBlockRe = regexp.MustCompile(
	`(?is)<thinking>.*?</thinking>|<think>.*?</think>|<reasoning>.*?</reasoning>|<reflection>.*?</reflection>`,
)

// An opening tag with no closing tag means the model was cut off mid-thought;
// everything after it is dropped.
var truncatedThinkingRe = regexp.MustCompile(
	`(?is)(?:<thinking>|<think>|<reasoning>|<reflection>).*$`,
)

func removeThinkingBlocks(text string) string {
	text = thinkingBlockRe.ReplaceAllString(text, "")
	text = truncatedThinkingRe.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

const (
	echoAdjective = `(?:paraphrased |rewritten |reworded |corrected |revised |proofread |humanized )?`
	echoNoun      = `(?:version|text|paraphrase|sentence|passage)`
)

// echoPatterns are anchored at the start and require a trailing colon so that
// ordinary sentences beginning with "Here is" survive.
var echoPatterns = []*regexp.Regexp{
	// "Sure, here's the rewritten text:"
	regexp.MustCompile(`(?i)^(?:certainly|sure|of course|okay|ok)[,.!]? here(?:'s| is)(?: the| a| your)? ` + echoAdjective + echoNoun + `\s*:`),
	// "Here is the paraphrased version:"
	regexp.MustCompile(`(?i)^here(?:'s| is)(?: the| a| your)? ` + echoAdjective + echoNoun + `\s*:`),
	// "Corrected text:" / "Rewritten:"
	regexp.MustCompile(`(?i)^(?:the )?(?:paraphrased|rewritten|reworded|corrected|revised|proofread)(?: ` + echoNoun + `)?\s*:`),
	// the prompt prefix itself, "paraphrase:"
	regexp.MustCompile(`(?i)^paraphrase\s*:`),
}

func removeInstructionEchoes(text string) string {
	for _, re := range echoPatterns {
		if loc := re.FindStringIndex(text); loc != nil && loc[0] == 0 {
			text = strings.TrimSpace(text[loc[1]:])
		}
	}
	return text
}

// removeQuoteWrapping strips one matching pair of outer quotes:
//
//	"…"  '…'  «…»  “…”  ‘…’
func removeQuoteWrapping(text string) string {
	runes := []rune(text)
	n := len(runes)
	if n < 2 {
		return text
	}
	first, last := runes[0], runes[n-1]
	if (first == '"' && last == '"') ||
		(first == '\'' && last == '\'') ||
		(first == '«' && last == '»') ||
		(first == '“' && last == '”') ||
		(first == '‘' && last == '’') {
		return strings.TrimSpace(string(runes[1 : n-1]))
	}
	return text
}
