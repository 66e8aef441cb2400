package ingest

import (
	"fmt"

	"github.com/tebeka/snowball"
)

// SnowballStemmer wraps the Snowball English stemmer.
type SnowballStemmer struct {
	s *snowball.Stemmer
}

// NewSnowballStemmer creates a stemmer for the given language ("english").
// Callers must Close it when done.
func NewSnowballStemmer(lang string) (*SnowballStemmer, error) {
	s, err := snowball.New(lang)
	if err != nil {
		return nil, fmt.Errorf("snowball %s: %w", lang, err)
	}
	return &SnowballStemmer{s: s}, nil
}

// Stem returns the stem of word.
func (s *SnowballStemmer) Stem(word string) string {
	return s.s.Stem(word)
}

// Close releases the underlying stemmer.
func (s *SnowballStemmer) Close() {
	s.s.Close()
}
