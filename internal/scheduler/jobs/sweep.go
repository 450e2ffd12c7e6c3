package jobs

import (
	"context"

	"github.com/blacklandcg/scoutiq/internal/analysis"
	"github.com/blacklandcg/scoutiq/pkg/logger"
)

// ResultSweepJob drops expired query results from the in-memory store.
type ResultSweepJob struct {
	store    *analysis.ResultStore
	schedule string
	logger   *logger.Logger
}

// NewResultSweepJob creates a new result sweep job
func NewResultSweepJob(store *analysis.ResultStore, schedule string, log *logger.Logger) *ResultSweepJob {
	return &ResultSweepJob{
		store:    store,
		schedule: schedule,
		logger:   log,
	}
}

// Name returns the job name
func (j *ResultSweepJob) Name() string {
	return "query_result_sweep"
}

// Schedule returns the cron schedule expression
func (j *ResultSweepJob) Schedule() string {
	return j.schedule
}

// Run sweeps expired entries
func (j *ResultSweepJob) Run(ctx context.Context) error {
	j.logger.Debug("Starting scheduled result sweep")

	count := j.store.Sweep()
	if count > 0 {
		j.logger.WithField("removed", count).Info("Query result sweep completed")
	}

	return nil
}
