package corpus

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/cognicore/polarity/pkg/polarity/ingest"
)

// Item is one labeled review in a JSONL dataset
type Item struct {
	Text  string `json:"text"`
	Label string `json:"label"`
}

// LoadJSONL reads a JSONL dataset and tokenizes it into a Split. Malformed
// lines and unknown labels are skipped with a warning.
func LoadJSONL(path string, pipeline *ingest.Pipeline) (Split, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Split{}, fmt.Errorf("read file %s: %w", path, err)
	}

	var split Split
	lines := strings.Split(string(data), "\n")

	for i, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		var item Item
		if err := json.Unmarshal([]byte(line), &item); err != nil {
			log.Printf("Warning: skipping malformed JSON at line %d in %s: %v", i+1, path, err)
			continue
		}

		switch strings.ToLower(strings.TrimSpace(item.Label)) {
		case "pos", "positive", "1":
			split.Positive = append(split.Positive, pipeline.Process(item.Text))
		case "neg", "negative", "0":
			split.Negative = append(split.Negative, pipeline.Process(item.Text))
		default:
			log.Printf("Warning: skipping unknown label %q at line %d in %s", item.Label, i+1, path)
		}
	}

	if split.Len() == 0 {
		return Split{}, fmt.Errorf("no valid items found in %s", path)
	}

	return split, nil
}
