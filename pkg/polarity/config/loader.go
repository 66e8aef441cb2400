package config

import (
	"fmt"

	"github.com/cognicore/polarity/pkg/polarity/ingest"
	"github.com/cognicore/polarity/pkg/polarity/stoplist"
)

// Loader loads auxiliary configuration files and constructs components
type Loader struct {
	StoplistPath string
	Stem         bool
}

// Components holds all loaded configuration components
type Components struct {
	Stoplist *stoplist.Manager
	Pipeline *ingest.Pipeline

	stemmer *ingest.SnowballStemmer
}

// Close releases the stemmer, if one was created
func (c *Components) Close() {
	if c.stemmer != nil {
		c.stemmer.Close()
	}
}

// Load reads all configuration files and returns initialized components.
// Without a stoplist file the default English list is used.
func (l *Loader) Load() (*Components, error) {
	comp := &Components{}

	if l.StoplistPath != "" {
		sl, err := LoadStoplist(l.StoplistPath)
		if err != nil {
			return nil, fmt.Errorf("load stoplist: %w", err)
		}
		comp.Stoplist = stoplist.NewManager(sl.Terms)
	} else {
		comp.Stoplist = stoplist.Default()
	}

	tokenizer := ingest.NewTokenizer(comp.Stoplist)
	if l.Stem {
		stemmer, err := ingest.NewSnowballStemmer("english")
		if err != nil {
			return nil, fmt.Errorf("load stemmer: %w", err)
		}
		comp.stemmer = stemmer
		tokenizer.SetStemmer(stemmer)
	}
	comp.Pipeline = ingest.NewPipeline(tokenizer)

	return comp, nil
}
