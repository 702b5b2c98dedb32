// Package rules holds the rewrite tables and the engine that applies them to
// paraphrased text: word simplification, contractions, and conversational
// openers.
package rules

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Pair is a single ordered rewrite: every occurrence of From becomes To.
type Pair struct {
	From string `yaml:"from" json:"from"`
	To   string `yaml:"to" json:"to"`
}

// Table is the immutable rule set used by Engine. Slices are ordered and the
// order is significant: later pairs operate on text already rewritten by
// earlier ones.
type Table struct {
	words        []Pair
	contractions []Pair
	openers      []string
}

var defaultWordReplacements = []Pair{
	{"utilize", "use"},
	{"facilitate", "help"},
	{"in order to", "to"},
	{"as a result of", "because of"},
	{"subsequently", "later"},
	{"furthermore", "also"},
	{"nevertheless", "but"},
	{"in conclusion", "so"},
	{"it is imperative", "we need to"},
	{"it is important to note", "remember"},
	{"one must consider", "think about"},
}

var defaultContractions = []Pair{
	{"is not", "isn't"}, {"are not", "aren't"}, {"cannot", "can't"}, {"could not", "couldn't"},
	{"did not", "didn't"}, {"does not", "doesn't"}, {"do not", "don't"}, {"had not", "hadn't"},
	{"has not", "hasn't"}, {"have not", "haven't"}, {"he is", "he's"}, {"he will", "he'll"},
	{"how is", "how's"}, {"i am", "I'm"}, {"i have", "I've"}, {"i will", "I'll"}, {"i would", "I'd"},
	{"it is", "it's"}, {"it will", "it'll"}, {"must not", "mustn't"}, {"she is", "she's"},
	{"she will", "she'll"}, {"should not", "shouldn't"}, {"that is", "that's"}, {"there is", "there's"},
	{"they are", "they're"}, {"they have", "they've"}, {"they will", "they'll"}, {"was not", "wasn't"},
	{"we are", "we're"}, {"we have", "we've"}, {"we will", "we'll"}, {"were not", "weren't"},
	{"what is", "what's"}, {"where is", "where's"}, {"who is", "who's"}, {"who will", "who'll"},
	{"will not", "won't"}, {"would not", "wouldn't"}, {"you are", "you're"}, {"you have", "you've"},
	{"you will", "you'll"}, {"you would", "you'd"},
}

var defaultOpeners = []string{
	"Honestly, ", "Well, ", "You see, ", "Basically, ", "Look, ",
	"The thing is, ", "Alright, so ", "To be fair, ",
}

// DefaultTable returns the built-in rule set.
func DefaultTable() *Table {
	t, err := NewTable(defaultWordReplacements, defaultContractions, defaultOpeners)
	if err != nil {
		panic(fmt.Sprintf("rules: invalid default table: %v", err))
	}
	return t
}

// NewTable validates the inputs and returns a Table holding private copies
// of them.
func NewTable(words, contractions []Pair, openers []string) (*Table, error) {
	for i, p := range words {
		if p.From == "" {
			return nil, fmt.Errorf("word replacement %d: empty pattern", i)
		}
	}
	for i, p := range contractions {
		if strings.TrimSpace(p.From) == "" {
			return nil, fmt.Errorf("contraction %d: empty phrase", i)
		}
	}
	if len(openers) == 0 {
		return nil, fmt.Errorf("opener pool is empty")
	}
	for i, o := range openers {
		if strings.TrimSpace(o) == "" {
			return nil, fmt.Errorf("opener %d: blank", i)
		}
	}

	return &Table{
		words:        append([]Pair(nil), words...),
		contractions: append([]Pair(nil), contractions...),
		openers:      append([]string(nil), openers...),
	}, nil
}

// WordReplacements returns a copy of the word simplification pairs in order.
func (t *Table) WordReplacements() []Pair {
	return append([]Pair(nil), t.words...)
}

// Contractions returns a copy of the contraction pairs in order.
func (t *Table) Contractions() []Pair {
	return append([]Pair(nil), t.contractions...)
}

// Openers returns a copy of the opener pool.
func (t *Table) Openers() []string {
	return append([]string(nil), t.openers...)
}

// fileTable is the on-disk layout of a rule file.
type fileTable struct {
	WordReplacements []Pair   `yaml:"word_replacements"`
	Contractions     []Pair   `yaml:"contractions"`
	Openers          []string `yaml:"openers"`
}

// LoadTable reads a YAML rule file. Sections left out of the file fall back
// to the built-in defaults; an explicitly empty list disables that stage
// (openers excepted, which must never be empty).
func LoadTable(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rule file: %w", err)
	}
	return ParseTable(data)
}

// ParseTable decodes a YAML rule document. See LoadTable.
func ParseTable(data []byte) (*Table, error) {
	var doc struct {
		WordReplacements *[]Pair   `yaml:"word_replacements"`
		Contractions     *[]Pair   `yaml:"contractions"`
		Openers          *[]string `yaml:"openers"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse rule file: %w", err)
	}

	ft := fileTable{
		WordReplacements: defaultWordReplacements,
		Contractions:     defaultContractions,
		Openers:          defaultOpeners,
	}
	if doc.WordReplacements != nil {
		ft.WordReplacements = *doc.WordReplacements
	}
	if doc.Contractions != nil {
		ft.Contractions = *doc.Contractions
	}
	if doc.Openers != nil {
		ft.Openers = *doc.Openers
	}

	t, err := NewTable(ft.WordReplacements, ft.Contractions, ft.Openers)
	if err != nil {
		return nil, fmt.Errorf("invalid rule file: %w", err)
	}
	return t, nil
}

// MarshalYAML renders the table in the rule file layout, so `humanizer rules
// --yaml` output can be edited and loaded back.
func (t *Table) MarshalYAML() (interface{}, error) {
	return fileTable{
		WordReplacements: t.words,
		Contractions:     t.contractions,
		Openers:          t.openers,
	}, nil
}
