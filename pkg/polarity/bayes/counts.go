package bayes

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cognicore/polarity/pkg/polarity/internalerr"
)

// CountMode controls how token occurrences within one document are counted.
type CountMode int

const (
	// CountMultiset counts every occurrence of a token in every document.
	CountMultiset CountMode = iota
	// CountSet counts a token at most once per document.
	CountSet
)

func (m CountMode) String() string {
	switch m {
	case CountMultiset:
		return "multiset"
	case CountSet:
		return "set"
	default:
		return fmt.Sprintf("CountMode(%d)", int(m))
	}
}

// ParseCountMode parses "multiset" or "set". The empty string yields the default.
func ParseCountMode(s string) (CountMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "multiset":
		return CountMultiset, nil
	case "set":
		return CountSet, nil
	}
	return 0, fmt.Errorf("count mode %q: %w", s, internalerr.ErrInvalidConfig)
}

// Vocabulary is the set of distinct tokens observed during training.
type Vocabulary struct {
	words map[string]struct{}
}

// NewVocabulary builds the union of distinct tokens across all given document collections
func NewVocabulary(collections ...[][]string) Vocabulary {
	words := make(map[string]struct{})
	for _, docs := range collections {
		for _, doc := range docs {
			for _, w := range doc {
				words[w] = struct{}{}
			}
		}
	}
	return Vocabulary{words: words}
}

// Len returns |V|
func (v Vocabulary) Len() int {
	return len(v.words)
}

// Contains reports whether w was seen in training
func (v Vocabulary) Contains(w string) bool {
	_, ok := v.words[w]
	return ok
}

// Sorted returns the tokens in lexicographic order
func (v Vocabulary) Sorted() []string {
	out := make([]string, 0, len(v.words))
	for w := range v.words {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

// ClassModel holds per-token counts for a single class.
// Invariant: Total == sum of Counts.
type ClassModel struct {
	Counts map[string]int
	Total  int
	Docs   int // number of training documents
}

// NewClassModel creates an empty class model
func NewClassModel() *ClassModel {
	return &ClassModel{Counts: make(map[string]int)}
}

// AddDocument updates counts for one training document
func (m *ClassModel) AddDocument(doc []string, mode CountMode) {
	m.Docs++

	if mode == CountSet {
		doc = distinct(doc)
	}
	for _, w := range doc {
		m.Counts[w]++
		m.Total++
	}
}

// Count returns the count for w (zero when absent)
func (m *ClassModel) Count(w string) int {
	return m.Counts[w]
}

// UniqueTokens returns the number of distinct tokens counted
func (m *ClassModel) UniqueTokens() int {
	return len(m.Counts)
}

// BuildCounts produces the vocabulary and one ClassModel per class.
// Empty collections are allowed and yield zero counts.
func BuildCounts(pos, neg [][]string, mode CountMode) (Vocabulary, *ClassModel, *ClassModel) {
	posModel := NewClassModel()
	for _, doc := range pos {
		posModel.AddDocument(doc, mode)
	}

	negModel := NewClassModel()
	for _, doc := range neg {
		negModel.AddDocument(doc, mode)
	}

	return NewVocabulary(pos, neg), posModel, negModel
}

// distinct returns the tokens of doc without repeats, in first-occurrence order.
func distinct(doc []string) []string {
	seen := make(map[string]struct{}, len(doc))
	out := make([]string, 0, len(doc))
	for _, w := range doc {
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}
