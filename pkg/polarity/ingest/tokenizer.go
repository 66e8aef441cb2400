package ingest

import (
	"strings"
	"unicode"

	"github.com/cognicore/polarity/pkg/polarity/stoplist"
)

// Stemmer reduces a word to its stem.
type Stemmer interface {
	Stem(word string) string
}

// Tokenizer handles text tokenization and normalization
type Tokenizer struct {
	stops   *stoplist.Manager
	stemmer Stemmer // Optional
}

// NewTokenizer creates a new tokenizer with the given stopword manager.
// A nil manager disables stopword filtering.
func NewTokenizer(stops *stoplist.Manager) *Tokenizer {
	if stops == nil {
		stops = stoplist.NewManager(nil)
	}
	return &Tokenizer{stops: stops}
}

// SetStemmer assigns a stemmer applied to every surviving token.
func (t *Tokenizer) SetStemmer(s Stemmer) {
	t.stemmer = s
}

// Tokenize splits text into normalized tokens:
//   - punctuation in dropRune is deleted without splitting ("don't" → "dont")
//   - hyphens, slashes and whitespace separate words
//   - digits are deleted
//   - everything is lowercased and stopwords are removed
func (t *Tokenizer) Tokenize(text string) []string {
	var tokens []string
	var current strings.Builder

	flush := func() {
		if current.Len() == 0 {
			return
		}
		if word := t.processToken(current.String()); word != "" {
			tokens = append(tokens, word)
		}
		current.Reset()
	}

	for _, r := range text {
		switch {
		case dropRune(r), unicode.IsDigit(r):
			continue
		case r == '-' || r == '/' || unicode.IsSpace(r):
			flush()
		default:
			current.WriteRune(unicode.ToLower(r))
		}
	}
	flush()

	return tokens
}

func (t *Tokenizer) processToken(word string) string {
	if t.stops.IsStop(word) {
		return ""
	}
	if t.stemmer != nil {
		word = t.stemmer.Stem(word)
	}
	return word
}

func dropRune(r rune) bool {
	switch r {
	case '.', '_', ';', ':', '!', '`', '¦', '\'', '?', ',', '"', '(', ')', '[', ']':
		return true
	}
	return false
}
