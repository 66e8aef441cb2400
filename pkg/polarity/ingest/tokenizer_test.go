package ingest

import (
	"reflect"
	"strings"
	"testing"

	"github.com/cognicore/polarity/pkg/polarity/stoplist"
)

func TestTokenizerBasic(t *testing.T) {
	tokenizer := NewTokenizer(stoplist.NewManager([]string{"the", "a", "and", "of"}))

	tokens := tokenizer.Tokenize("The quick brown fox jumps over the lazy dog")

	expected := []string{"quick", "brown", "fox", "jumps", "over", "lazy", "dog"}
	if !reflect.DeepEqual(tokens, expected) {
		t.Errorf("Expected %v, got %v", expected, tokens)
	}
}

func TestTokenizerPunctuationDeleted(t *testing.T) {
	tokenizer := NewTokenizer(nil)

	tokens := tokenizer.Tokenize(`Wasn't it "great"? (Yes!) [really], done.`)

	expected := []string{"wasnt", "it", "great", "yes", "really", "done"}
	if !reflect.DeepEqual(tokens, expected) {
		t.Errorf("Expected %v, got %v", expected, tokens)
	}
}

func TestTokenizerHyphenAndSlashSplit(t *testing.T) {
	tokenizer := NewTokenizer(nil)

	tokens := tokenizer.Tokenize("well-made action/comedy")

	expected := []string{"well", "made", "action", "comedy"}
	if !reflect.DeepEqual(tokens, expected) {
		t.Errorf("Expected %v, got %v", expected, tokens)
	}
}

func TestTokenizerDigitsRemoved(t *testing.T) {
	tokenizer := NewTokenizer(nil)

	tokens := tokenizer.Tokenize("10 out of 10, a 1980s classic")

	expected := []string{"out", "of", "a", "s", "classic"}
	if !reflect.DeepEqual(tokens, expected) {
		t.Errorf("Expected %v, got %v", expected, tokens)
	}
}

func TestTokenizerCaseNormalization(t *testing.T) {
	tokenizer := NewTokenizer(nil)

	for _, tok := range tokenizer.Tokenize("BRILLIANT Acting, Terrible SCRIPT") {
		if tok != strings.ToLower(tok) {
			t.Errorf("Token %s should be lowercased", tok)
		}
	}
}

func TestTokenizerStopwordsAfterCleanup(t *testing.T) {
	tokenizer := NewTokenizer(stoplist.Default())

	tokens := tokenizer.Tokenize("This is NOT the film I wanted")

	expected := []string{"film", "wanted"}
	if !reflect.DeepEqual(tokens, expected) {
		t.Errorf("Expected %v, got %v", expected, tokens)
	}
}

func TestTokenizerEmpty(t *testing.T) {
	tokenizer := NewTokenizer(nil)

	if tokens := tokenizer.Tokenize(""); len(tokens) != 0 {
		t.Errorf("Expected no tokens, got %v", tokens)
	}
	if tokens := tokenizer.Tokenize("123 ... !!! 456"); len(tokens) != 0 {
		t.Errorf("Expected no tokens, got %v", tokens)
	}
}

type suffixStemmer struct{}

func (suffixStemmer) Stem(word string) string {
	return strings.TrimSuffix(word, "ing")
}

func TestTokenizerStemmer(t *testing.T) {
	tokenizer := NewTokenizer(stoplist.NewManager([]string{"boring"}))
	tokenizer.SetStemmer(suffixStemmer{})

	tokens := tokenizer.Tokenize("amazing boring acting")

	// stopwords are matched before stemming
	expected := []string{"amaz", "act"}
	if !reflect.DeepEqual(tokens, expected) {
		t.Errorf("Expected %v, got %v", expected, tokens)
	}
}
