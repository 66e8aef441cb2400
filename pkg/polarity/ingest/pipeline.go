package ingest

// Pipeline orchestrates preprocessing:
// raw text → markup stripping → tokenization (→ stemming)
type Pipeline struct {
	tokenizer *Tokenizer
}

// NewPipeline creates a preprocessing pipeline around the tokenizer
func NewPipeline(tokenizer *Tokenizer) *Pipeline {
	return &Pipeline{tokenizer: tokenizer}
}

// Process turns raw review text into a document of tokens
func (p *Pipeline) Process(text string) []string {
	return p.tokenizer.Tokenize(StripMarkup(text))
}
