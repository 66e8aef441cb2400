package config

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/polarity/pkg/polarity/bayes"
	"github.com/cognicore/polarity/pkg/polarity/corpus"
	"github.com/cognicore/polarity/pkg/polarity/internalerr"
)

// RunParams are the hyperparameters of one train+evaluate pass
type RunParams struct {
	Alpha     float64 `yaml:"alpha"`
	UseLog    bool    `yaml:"use_log"`
	CountMode string  `yaml:"count_mode"` // multiset | set
	TieBreak  string  `yaml:"tie_break"`  // random | positive
	Unseen    string  `yaml:"unseen"`     // smooth | skip
	TrainPos  float64 `yaml:"train_pos"`
	TrainNeg  float64 `yaml:"train_neg"`
	TestPos   float64 `yaml:"test_pos"`
	TestNeg   float64 `yaml:"test_neg"`
}

// Experiment is the top-level YAML configuration
type Experiment struct {
	Corpus string `yaml:"corpus"`
	// TrainJSONL and TestJSONL replace the corpus directory when both are set.
	TrainJSONL string    `yaml:"train_jsonl"`
	TestJSONL  string    `yaml:"test_jsonl"`
	Stoplist   string    `yaml:"stoplist"`
	Stem       bool      `yaml:"stem"`
	Seed       int64     `yaml:"seed"`
	Workers    int       `yaml:"workers"`
	Defaults   RunParams `yaml:"defaults"`
}

// DefaultRunParams mirrors the classic experiment defaults: α=10, log
// space, 20% sampling of every partition.
func DefaultRunParams() RunParams {
	return RunParams{
		Alpha:     10,
		UseLog:    true,
		CountMode: "multiset",
		TieBreak:  "random",
		Unseen:    "smooth",
		TrainPos:  0.2,
		TrainNeg:  0.2,
		TestPos:   0.2,
		TestNeg:   0.2,
	}
}

// DefaultExperiment returns the configuration used when no file is given
func DefaultExperiment() Experiment {
	return Experiment{
		Corpus:   ".",
		Workers:  1,
		Defaults: DefaultRunParams(),
	}
}

// LoadExperiment loads an experiment from a YAML file. Keys absent from the
// file keep their default values. Relative paths are resolved against the
// directory holding the file.
func LoadExperiment(path string) (*Experiment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	exp := DefaultExperiment()
	if err := yaml.Unmarshal(data, &exp); err != nil {
		return nil, fmt.Errorf("parse %s: %w: %v", path, internalerr.ErrInvalidConfig, err)
	}
	dir := filepath.Dir(path)
	for _, p := range []*string{&exp.Corpus, &exp.TrainJSONL, &exp.TestJSONL, &exp.Stoplist} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(dir, *p)
		}
	}
	if err := exp.Validate(); err != nil {
		return nil, err
	}

	return &exp, nil
}

// Validate checks enum values and numeric ranges
func (e *Experiment) Validate() error {
	if e.Workers < 0 {
		return fmt.Errorf("workers %d: %w", e.Workers, internalerr.ErrInvalidConfig)
	}
	if (e.TrainJSONL == "") != (e.TestJSONL == "") {
		return fmt.Errorf("train_jsonl and test_jsonl must be set together: %w", internalerr.ErrInvalidConfig)
	}
	if _, err := e.Defaults.Options(nil); err != nil {
		return err
	}
	train, test := e.Defaults.Fractions()
	if err := train.Validate(); err != nil {
		return err
	}
	return test.Validate()
}

// UsesJSONL reports whether the dataset comes from JSONL files
func (e *Experiment) UsesJSONL() bool {
	return e.TrainJSONL != "" && e.TestJSONL != ""
}

// Rand returns the sampling source: seeded from Seed, or from the clock when
// Seed is zero.
func (e *Experiment) Rand() *rand.Rand {
	return NewRand(e.Seed)
}

// NewRand returns a source seeded with seed, or with the clock when seed is zero.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = rand.Int63()
	}
	return rand.New(rand.NewSource(seed))
}

// Options converts the parameters into engine options. rng drives the
// randomized tie-break; when nil a clock-seeded source is used.
func (p RunParams) Options(rng *rand.Rand) (bayes.Options, error) {
	mode, err := bayes.ParseCountMode(p.CountMode)
	if err != nil {
		return bayes.Options{}, err
	}
	unseen, err := bayes.ParseUnseenPolicy(p.Unseen)
	if err != nil {
		return bayes.Options{}, err
	}

	opts := bayes.Options{
		Alpha:     p.Alpha,
		UseLog:    p.UseLog,
		CountMode: mode,
		Unseen:    unseen,
	}

	switch p.TieBreak {
	case "", "random":
		if rng == nil {
			rng = NewRand(0)
		}
		opts.TieBreaker = bayes.NewRandom(rng)
	case "positive":
		opts.TieBreaker = bayes.Deterministic{}
	default:
		return bayes.Options{}, fmt.Errorf("tie break %q: %w", p.TieBreak, internalerr.ErrInvalidConfig)
	}

	if err := opts.Validate(); err != nil {
		return bayes.Options{}, err
	}
	return opts, nil
}

// Fractions returns the train and test sampling fractions
func (p RunParams) Fractions() (train, test corpus.Fractions) {
	return corpus.Fractions{Positive: p.TrainPos, Negative: p.TrainNeg},
		corpus.Fractions{Positive: p.TestPos, Negative: p.TestNeg}
}

// Stoplist represents the stopword list configuration
type Stoplist struct {
	Terms []string `yaml:"terms"`
}

// LoadStoplist loads stopwords from a YAML file
func LoadStoplist(path string) (*Stoplist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var sl Stoplist
	if err := yaml.Unmarshal(data, &sl); err != nil {
		return nil, err
	}

	return &sl, nil
}
