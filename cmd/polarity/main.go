package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strconv"

	"github.com/cognicore/polarity/pkg/polarity"
	"github.com/cognicore/polarity/pkg/polarity/config"
	"github.com/cognicore/polarity/pkg/polarity/corpus"
	"github.com/cognicore/polarity/pkg/polarity/experiment"
	"github.com/cognicore/polarity/pkg/polarity/report"
	"github.com/cognicore/polarity/pkg/polarity/store"
	"github.com/cognicore/polarity/pkg/polarity/store/memstore"
	"github.com/cognicore/polarity/pkg/polarity/store/sqlite"
)

type cliOptions struct {
	configPath string
	dbPath     string
	vocabPath  string
	sweepCSV   string
	list       bool
	history    int
	workers    int
	seed       int64
	questions  []int
}

var errNothingToDo = errors.New("no questions given (use -list to see them)")

func parseFlags(args []string) (cliOptions, error) {
	var opts cliOptions

	fs := flag.NewFlagSet("polarity", flag.ContinueOnError)
	fs.StringVar(&opts.configPath, "config", "", "Experiment YAML file (optional)")
	fs.StringVar(&opts.dbPath, "db", "", "SQLite run log (optional, in-memory when empty)")
	fs.StringVar(&opts.vocabPath, "vocab", "", "Write the training vocabulary of each run to this file")
	fs.StringVar(&opts.sweepCSV, "sweep-csv", "", "Write the alpha sweep of question 2 as CSV")
	fs.BoolVar(&opts.list, "list", false, "List the available questions and exit")
	fs.IntVar(&opts.history, "history", 0, "Print the last N recorded runs and exit (requires -db)")
	fs.IntVar(&opts.workers, "workers", 0, "Evaluation workers (overrides config)")
	fs.Int64Var(&opts.seed, "seed", 0, "Random seed (overrides config; 0 keeps config)")
	if err := fs.Parse(args); err != nil {
		return cliOptions{}, err
	}

	for _, arg := range fs.Args() {
		id, err := strconv.Atoi(arg)
		if err != nil {
			return cliOptions{}, fmt.Errorf("question id %q is not a number", arg)
		}
		opts.questions = append(opts.questions, id)
	}

	if opts.workers < 0 {
		return cliOptions{}, fmt.Errorf("-workers must be positive, got %d", opts.workers)
	}
	if opts.history < 0 {
		return cliOptions{}, fmt.Errorf("-history must be positive, got %d", opts.history)
	}
	if opts.history > 0 && opts.dbPath == "" {
		return cliOptions{}, errors.New("-history requires -db")
	}
	if !opts.list && opts.history == 0 && len(opts.questions) == 0 {
		return cliOptions{}, errNothingToDo
	}
	return opts, nil
}

// loadExperiment reads the config file, if any, and applies flag overrides
func loadExperiment(opts cliOptions) (*config.Experiment, error) {
	exp := config.DefaultExperiment()
	if opts.configPath != "" {
		loaded, err := config.LoadExperiment(opts.configPath)
		if err != nil {
			return nil, err
		}
		exp = *loaded
	}
	if opts.workers > 0 {
		exp.Workers = opts.workers
	}
	if opts.seed != 0 {
		exp.Seed = opts.seed
	}
	return &exp, nil
}

func openStore(ctx context.Context, dbPath string) (store.Store, error) {
	if dbPath == "" {
		return memstore.New(), nil
	}
	return sqlite.OpenSQLite(ctx, dbPath)
}

// buildEngine wires the corpus source and the run store into an Engine. The
// returned rand source drives tie-breaks and is independent of sampling.
func buildEngine(ctx context.Context, exp *config.Experiment, dbPath string) (*polarity.Engine, *rand.Rand, func(), error) {
	loader := config.Loader{StoplistPath: exp.Stoplist, Stem: exp.Stem}
	components, err := loader.Load()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load configuration: %w", err)
	}

	sampling := exp.Rand()
	tieBreak := rand.New(rand.NewSource(sampling.Int63()))

	var source polarity.Source
	if exp.UsesJSONL() {
		train, err := corpus.LoadJSONL(exp.TrainJSONL, components.Pipeline)
		if err != nil {
			components.Close()
			return nil, nil, nil, err
		}
		test, err := corpus.LoadJSONL(exp.TestJSONL, components.Pipeline)
		if err != nil {
			components.Close()
			return nil, nil, nil, err
		}
		log.Printf("Loaded %d training and %d test documents from JSONL", train.Len(), test.Len())
		source = corpus.NewMemory(train, test, sampling)
	} else {
		source = corpus.NewLoader(exp.Corpus, components.Pipeline, sampling)
	}

	st, err := openStore(ctx, dbPath)
	if err != nil {
		components.Close()
		return nil, nil, nil, fmt.Errorf("open store: %w", err)
	}

	engine := polarity.New(polarity.Options{
		Source:  source,
		Store:   st,
		Workers: exp.Workers,
	})

	cleanup := func() {
		if err := engine.Close(); err != nil {
			log.Printf("Failed to close store: %v", err)
		}
		components.Close()
	}
	return engine, tieBreak, cleanup, nil
}

func printHistory(ctx context.Context, dbPath string, limit int) error {
	st, err := sqlite.OpenSQLite(ctx, dbPath)
	if err != nil {
		return err
	}
	defer st.Close()

	runs, err := st.ListRuns(ctx, 0, 0)
	if err != nil {
		return err
	}
	if len(runs) > limit {
		runs = runs[len(runs)-limit:]
	}
	report.WriteRunsTable(os.Stdout, runs)
	return nil
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Fatal(err)
	}

	ctx := context.Background()

	if opts.list {
		registry := experiment.NewRegistry()
		if err := (&experiment.Driver{}).Register(registry); err != nil {
			log.Fatalf("Failed to register questions: %v", err)
		}
		for _, e := range registry.Entries() {
			fmt.Printf("%d\t%s\n", e.ID, e.Name)
		}
		return
	}

	if opts.history > 0 {
		if err := printHistory(ctx, opts.dbPath, opts.history); err != nil {
			log.Fatalf("Failed to read run history: %v", err)
		}
		return
	}

	exp, err := loadExperiment(opts)
	if err != nil {
		log.Fatalf("Failed to load experiment: %v", err)
	}

	engine, tieBreak, cleanup, err := buildEngine(ctx, exp, opts.dbPath)
	if err != nil {
		log.Fatalf("Failed to build engine: %v", err)
	}
	defer cleanup()

	driver := &experiment.Driver{
		Runner:    engine,
		Out:       os.Stdout,
		Defaults:  exp.Defaults,
		Rand:      tieBreak,
		SweepCSV:  opts.sweepCSV,
		VocabPath: opts.vocabPath,
	}
	registry := experiment.NewRegistry()
	if err := driver.Register(registry); err != nil {
		log.Fatalf("Failed to register questions: %v", err)
	}

	if err := registry.RunAll(ctx, opts.questions); err != nil {
		cleanup()
		log.Fatalf("Experiment failed: %v", err)
	}
}
