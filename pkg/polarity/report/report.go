// Package report renders run results for the console and auxiliary files.
package report

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cognicore/polarity/pkg/polarity/bayes"
	"github.com/cognicore/polarity/pkg/polarity/store"
)

const rule = "------------------------------"

// BoxedPrint writes s surrounded by a box of boxChar:
//
//	**************
//	* Question 1 *
//	**************
func BoxedPrint(w io.Writer, s string, boxChar rune) error {
	edge := strings.Repeat(string(boxChar), len([]rune(s))+4)
	_, err := fmt.Fprintf(w, "%s\n%c %s %c\n%s\n", edge, boxChar, s, boxChar, edge)
	return err
}

// WriteHeader announces a run before it starts.
func WriteHeader(w io.Writer, opts bayes.Options) error {
	with := "out"
	if opts.UseLog {
		with = ""
	}
	_, err := fmt.Fprintf(w, "%s\nBeginning test.\nRunning with%s log probabilities\nalpha = %v\n",
		rule, with, opts.Alpha)
	return err
}

// WriteRun writes partition sizes, metrics and the confusion matrix. The
// matrix rows are actual positive (TP, FN) and actual negative (FP, TN).
func WriteRun(w io.Writer, r store.Run) error {
	m := r.Confusion
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "Number of positive training instances:", r.TrainPos)
	fmt.Fprintln(bw, "Number of negative training instances:", r.TrainNeg)
	fmt.Fprintln(bw, "Number of positive test instances:", r.TestPos)
	fmt.Fprintln(bw, "Number of negative test instances:", r.TestNeg)
	fmt.Fprintln(bw, "Vocabulary (training set):", r.VocabSize)
	fmt.Fprintln(bw, "Accuracy:", m.Accuracy())
	fmt.Fprintln(bw, "Precision:", m.Precision())
	fmt.Fprintln(bw, "Recall:", m.Recall())
	fmt.Fprintln(bw, "Confusion matrix:")
	fmt.Fprintf(bw, "%-12d%d\n%-12d%d\n", m.TruePositive, m.FalseNegative, m.FalsePositive, m.TrueNegative)
	fmt.Fprintln(bw, rule)

	return bw.Flush()
}

// WriteVocabulary writes one token per line in sorted order.
func WriteVocabulary(w io.Writer, vocab bayes.Vocabulary) error {
	bw := bufio.NewWriter(w)
	for _, tok := range vocab.Sorted() {
		if _, err := bw.WriteString(tok + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// DumpVocabulary writes the vocabulary to path, replacing any existing file.
func DumpVocabulary(path string, vocab bayes.Vocabulary) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteVocabulary(f, vocab); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
