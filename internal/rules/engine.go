package rules

import (
	"math/rand/v2"
	"strings"
	"unicode"
	"unicode/utf8"
)

// openerProbability is the chance that InsertOpener adds an opener.
const openerProbability = 0.5

// Random is the source of randomness for the opener stage.
// *math/rand/v2.Rand satisfies it. Implementations need not be safe for
// concurrent use.
type Random interface {
	// Float64 returns a uniform value in [0, 1).
	Float64() float64
	// IntN returns a uniform value in [0, n).
	IntN(n int) int
}

// NewRand returns a seeded PCG-backed Random.
func NewRand(seed uint64) Random {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Engine applies a Table to text. It holds no mutable state and may be
// shared between goroutines as long as each caller brings its own Random.
type Engine struct {
	table *Table
}

// NewEngine returns an Engine for table. A nil table selects DefaultTable.
func NewEngine(table *Table) *Engine {
	if table == nil {
		table = DefaultTable()
	}
	return &Engine{table: table}
}

// Table returns the rule set the engine applies.
func (e *Engine) Table() *Table {
	return e.table
}

// Apply runs the three stages in order: word simplification, contractions,
// opener insertion.
func (e *Engine) Apply(text string, rng Random) string {
	text = e.SimplifyWords(text)
	text = e.InsertContractions(text)
	return e.InsertOpener(text, rng)
}

// SimplifyWords replaces every literal occurrence of each pattern, in table
// order. Matching is case-sensitive and ignores word boundaries, so a pattern
// inside a longer word is rewritten too.
func (e *Engine) SimplifyWords(text string) string {
	for _, p := range e.table.words {
		text = strings.ReplaceAll(text, p.From, p.To)
	}
	return text
}

// InsertContractions rewrites space-bounded phrases, first in capitalized
// form then in the table's form. A phrase at the very start or end of the
// text, or touching punctuation, has no surrounding spaces and is left as is.
func (e *Engine) InsertContractions(text string) string {
	for _, p := range e.table.contractions {
		text = strings.ReplaceAll(text, " "+capitalize(p.From)+" ", " "+capitalize(p.To)+" ")
		text = strings.ReplaceAll(text, " "+p.From+" ", " "+p.To+" ")
	}
	return text
}

// InsertOpener prepends a random opener with probability one half, unless
// the text already begins with one of the pool's openers (ignoring case and
// leading whitespace). Both draws happen before that check.
func (e *Engine) InsertOpener(text string, rng Random) string {
	if rng.Float64() >= openerProbability {
		return text
	}
	opener := e.table.openers[rng.IntN(len(e.table.openers))]

	if e.startsWithOpener(text) {
		return text
	}
	return opener + text
}

func (e *Engine) startsWithOpener(text string) bool {
	head := strings.ToLower(strings.TrimLeftFunc(text, unicode.IsSpace))
	for _, o := range e.table.openers {
		if strings.HasPrefix(head, strings.ToLower(o)) {
			return true
		}
	}
	return false
}

// capitalize upper-cases the first rune and lower-cases the rest.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
