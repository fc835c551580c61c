package jobs

import (
	"fmt"
	"log/slog"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	statusReportJob *StatusReportJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	statusCounter StatusCounter,
	statusReportSchedule string,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		statusReportJob: NewStatusReportJob(statusCounter, statusReportSchedule, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.statusReportJob.Start(); err != nil {
		return fmt.Errorf("failed to start status report job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.statusReportJob.Stop()
}
