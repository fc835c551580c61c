package jobs

import (
	"context"
	"log/slog"

	"parceltrack/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// DefaultStatusReportSchedule runs the report every five minutes.
const DefaultStatusReportSchedule = "@every 5m"

// StatusCounter counts parcels per status.
type StatusCounter interface {
	Handle(ctx context.Context, query queries.CountParcelsByStatusQuery) ([]queries.StatusCount, error)
}

// StatusReportJob logs how many parcels are in each status.
type StatusReportJob struct {
	handler  StatusCounter
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewStatusReportJob creates the job. An empty schedule falls back to DefaultStatusReportSchedule.
func NewStatusReportJob(handler StatusCounter, schedule string, logger *slog.Logger) *StatusReportJob {
	if schedule == "" {
		schedule = DefaultStatusReportSchedule
	}
	return &StatusReportJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(),
		logger:   logger.With("component", "status_report_job"),
	}
}

// Start registers the report on its schedule and starts the scheduler.
func (j *StatusReportJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		j.Run(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Status report job started", "schedule", j.schedule)
	return nil
}

// Run produces one report.
func (j *StatusReportJob) Run(ctx context.Context) {
	counts, err := j.handler.Handle(ctx, queries.NewCountParcelsByStatusQuery())
	if err != nil {
		j.logger.ErrorContext(ctx, "Status report job failed", "error", err)
		return
	}

	var total int64
	attrs := make([]any, 0, 2*len(counts)+2)
	for _, c := range counts {
		total += c.Count
		attrs = append(attrs, c.Status.String(), c.Count)
	}
	attrs = append(attrs, "total", total)
	j.logger.InfoContext(ctx, "Parcel status report", attrs...)
}

// Stop stops the scheduler and waits for a running report to finish.
func (j *StatusReportJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Status report job stopped")
}
