package report

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/cognicore/polarity/pkg/polarity/bayes"
	"github.com/cognicore/polarity/pkg/polarity/store"
)

// SweepPoint is the accuracy measured at one smoothing strength
type SweepPoint struct {
	Alpha    float64
	Accuracy bayes.Metric
}

// WriteSweepTable renders an alpha sweep as a console table.
func WriteSweepTable(w io.Writer, points []SweepPoint) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Alpha", "Accuracy"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	for _, p := range points {
		table.Append([]string{formatFloat(p.Alpha), p.Accuracy.String()})
	}
	table.Render()
}

// WriteSweepCSV writes an alpha sweep as "alpha,accuracy" rows for plotting.
// Undefined accuracies are written as empty cells.
func WriteSweepCSV(w io.Writer, points []SweepPoint) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"alpha", "accuracy"}); err != nil {
		return err
	}
	for _, p := range points {
		acc := ""
		if p.Accuracy.Defined {
			acc = formatFloat(p.Accuracy.Value)
		}
		if err := cw.Write([]string{formatFloat(p.Alpha), acc}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteRunsTable renders stored runs, one row per run.
func WriteRunsTable(w io.Writer, runs []store.Run) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "Q", "Alpha", "Log", "Train +/-", "Test +/-", "Vocab", "Accuracy", "Precision", "Recall"})
	for _, r := range runs {
		table.Append([]string{
			r.ID,
			strconv.Itoa(r.Question),
			formatFloat(r.Alpha),
			strconv.FormatBool(r.UseLog),
			strconv.Itoa(r.TrainPos) + "/" + strconv.Itoa(r.TrainNeg),
			strconv.Itoa(r.TestPos) + "/" + strconv.Itoa(r.TestNeg),
			strconv.Itoa(r.VocabSize),
			r.Confusion.Accuracy().String(),
			r.Confusion.Precision().String(),
			r.Confusion.Recall().String(),
		})
	}
	table.Render()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
