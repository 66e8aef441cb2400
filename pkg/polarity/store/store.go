package store

import (
	"context"
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/cognicore/polarity/pkg/polarity/bayes"
)

// Store persists experiment run reports. It never stores the model itself.
type Store interface {
	Close() error

	// SaveRun stores r, assigning an ID and creation time when unset,
	// and returns the stored ID.
	SaveRun(ctx context.Context, r Run) (string, error)
	// GetRun returns internalerr.ErrNotFound for unknown IDs.
	GetRun(ctx context.Context, id string) (Run, error)
	// ListRuns returns runs in creation order. question <= 0 lists all
	// runs; limit <= 0 means no limit.
	ListRuns(ctx context.Context, question int, limit int) ([]Run, error)
}

// Run is the report of one train+evaluate pass
type Run struct {
	ID        string
	Question  int // experiment id, 0 for ad-hoc runs
	Alpha     float64
	UseLog    bool
	CountMode string
	TieBreak  string
	Unseen    string
	TrainPos  int
	TrainNeg  int
	TestPos   int
	TestNeg   int
	VocabSize int
	Confusion bayes.ConfusionMatrix
	CreatedAt time.Time
}

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.Reader, 0)
)

// NewID returns a ULID for t. IDs generated by one process sort in
// generation order.
func NewID(t time.Time) string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(t), entropy).String()
}

// Prepare fills in ID and CreatedAt when they are unset.
func Prepare(r Run) Run {
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	if r.ID == "" {
		r.ID = NewID(r.CreatedAt)
	}
	return r
}
