package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/blacklandcg/scoutiq/internal/audit"
	"github.com/blacklandcg/scoutiq/pkg/logger"
)

// LogRetentionJob purges AI interaction logs older than the retention window.
type LogRetentionJob struct {
	logs          *audit.Repository
	retentionDays int
	schedule      string
	logger        *logger.Logger
}

// NewLogRetentionJob creates a new log retention job
func NewLogRetentionJob(logs *audit.Repository, retentionDays int, schedule string, log *logger.Logger) *LogRetentionJob {
	return &LogRetentionJob{
		logs:          logs,
		retentionDays: retentionDays,
		schedule:      schedule,
		logger:        log,
	}
}

// Name returns the job name
func (j *LogRetentionJob) Name() string {
	return "ai_log_retention"
}

// Schedule returns the cron schedule expression
func (j *LogRetentionJob) Schedule() string {
	return j.schedule
}

// Run purges logs beyond the retention window
func (j *LogRetentionJob) Run(ctx context.Context) error {
	cutoff := time.Now().UTC().AddDate(0, 0, -j.retentionDays)

	removed, err := j.logs.PurgeOlderThan(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("failed to purge interaction logs: %w", err)
	}

	if removed > 0 {
		j.logger.WithFields(map[string]interface{}{
			"removed": removed,
			"cutoff":  cutoff.Format("2006-01-02"),
		}).Info("Interaction log retention completed")
	}

	return nil
}
