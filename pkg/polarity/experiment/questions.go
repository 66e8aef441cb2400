package experiment

import (
	"context"
	"fmt"
	"io"
	"log"
	"math"
	"math/rand"
	"os"

	"github.com/cognicore/polarity/pkg/polarity"
	"github.com/cognicore/polarity/pkg/polarity/config"
	"github.com/cognicore/polarity/pkg/polarity/report"
)

// Runner executes a single train+evaluate pass
type Runner interface {
	Run(ctx context.Context, p polarity.Params) (polarity.Result, error)
}

// Driver runs the numbered questions against a Runner and writes their
// console report to Out.
type Driver struct {
	Runner   Runner
	Out      io.Writer
	Defaults config.RunParams
	// Rand drives randomized tie-breaks. Nil means a clock-seeded source.
	Rand *rand.Rand
	// SweepCSV, when set, receives the alpha sweep of question 2.
	SweepCSV string
	// VocabPath, when set, receives the vocabulary of every reported run.
	VocabPath string
}

// SweepAlphas returns the smoothing strengths 0.0001, 0.001, ..., 1000.
func SweepAlphas() []float64 {
	var alphas []float64
	for exp := -4; exp <= 3; exp++ {
		alphas = append(alphas, math.Pow10(exp))
	}
	return alphas
}

// Register adds questions 1, 2, 3, 4 and 6 to reg.
func (d *Driver) Register(reg *Registry) error {
	questions := []struct {
		id   int
		name string
		proc Procedure
	}{
		{1, "unsmoothed linear vs log probabilities", d.question1},
		{2, "default run and alpha sweep", d.question2},
		{3, "full data, alpha=10", d.question3},
		{4, "half of the training data, alpha=10", d.question4},
		{6, "imbalanced training data", d.question6},
	}
	for _, q := range questions {
		if err := reg.Register(q.id, q.name, q.proc); err != nil {
			return err
		}
	}
	return nil
}

func (d *Driver) question1(ctx context.Context) error {
	if err := d.box("Question 1"); err != nil {
		return err
	}

	p := d.Defaults
	p.Alpha = 0
	p.UseLog = false
	if _, err := d.run(ctx, 1, p, true); err != nil {
		return err
	}

	p.UseLog = true
	_, err := d.run(ctx, 1, p, true)
	return err
}

func (d *Driver) question2(ctx context.Context) error {
	if err := d.box("Question 2"); err != nil {
		return err
	}
	if _, err := d.run(ctx, 2, d.Defaults, true); err != nil {
		return err
	}

	points, err := d.Sweep(ctx, 2, d.Defaults)
	if err != nil {
		return err
	}
	report.WriteSweepTable(d.Out, points)

	if d.SweepCSV == "" {
		return nil
	}
	f, err := os.Create(d.SweepCSV)
	if err != nil {
		return fmt.Errorf("create %s: %w", d.SweepCSV, err)
	}
	if err := report.WriteSweepCSV(f, points); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", d.SweepCSV, err)
	}
	log.Printf("Wrote alpha sweep to %s", d.SweepCSV)
	return f.Close()
}

func (d *Driver) question3(ctx context.Context) error {
	return d.fullRun(ctx, 3, 1, 1, 10)
}

func (d *Driver) question4(ctx context.Context) error {
	return d.fullRun(ctx, 4, 0.5, 0.5, 10)
}

func (d *Driver) question6(ctx context.Context) error {
	return d.fullRun(ctx, 6, 0.1, 0.5, d.Defaults.Alpha)
}

// fullRun reports one run on the whole test set with the given training
// fractions.
func (d *Driver) fullRun(ctx context.Context, question int, trainPos, trainNeg, alpha float64) error {
	if err := d.box(fmt.Sprintf("Question %d", question)); err != nil {
		return err
	}

	p := d.Defaults
	p.TrainPos, p.TrainNeg = trainPos, trainNeg
	p.TestPos, p.TestNeg = 1, 1
	p.Alpha = alpha
	_, err := d.run(ctx, question, p, true)
	return err
}

// Sweep runs base once per SweepAlphas value without printing run reports.
func (d *Driver) Sweep(ctx context.Context, question int, base config.RunParams) ([]report.SweepPoint, error) {
	var points []report.SweepPoint
	for _, alpha := range SweepAlphas() {
		log.Printf("Running alpha = %v", alpha)

		p := base
		p.Alpha = alpha
		res, err := d.run(ctx, question, p, false)
		if err != nil {
			return nil, fmt.Errorf("alpha %v: %w", alpha, err)
		}
		points = append(points, report.SweepPoint{
			Alpha:    alpha,
			Accuracy: res.Run.Confusion.Accuracy(),
		})
	}
	return points, nil
}

func (d *Driver) run(ctx context.Context, question int, p config.RunParams, output bool) (polarity.Result, error) {
	rng := d.Rand
	if rng == nil {
		rng = config.NewRand(0)
	}
	opts, err := p.Options(rng)
	if err != nil {
		return polarity.Result{}, err
	}
	train, test := p.Fractions()

	if output {
		if err := report.WriteHeader(d.Out, opts); err != nil {
			return polarity.Result{}, err
		}
	}

	res, err := d.Runner.Run(ctx, polarity.Params{
		Question: question,
		Options:  opts,
		Train:    train,
		Test:     test,
	})
	if err != nil {
		return polarity.Result{}, err
	}
	if !output {
		return res, nil
	}

	if d.VocabPath != "" && res.Classifier != nil {
		if err := report.DumpVocabulary(d.VocabPath, res.Classifier.Vocabulary()); err != nil {
			return polarity.Result{}, err
		}
	}
	if err := report.WriteRun(d.Out, res.Run); err != nil {
		return polarity.Result{}, err
	}
	return res, nil
}

func (d *Driver) box(title string) error {
	return report.BoxedPrint(d.Out, title, '*')
}
