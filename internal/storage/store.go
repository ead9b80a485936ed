package storage

import (
	"context"

	"github.com/jkendall327/VoynichBruteForce/internal/model"
)

// Store persists evolution run records. Get reports absence with a false
// second return rather than an error.
type Store interface {
	Init(ctx context.Context) error
	SaveRun(ctx context.Context, record model.RunRecord) error
	GetRun(ctx context.Context, runID string) (model.RunRecord, bool, error)
	ListRuns(ctx context.Context) ([]model.RunRecord, error)
}
