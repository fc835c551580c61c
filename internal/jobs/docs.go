// Package jobs provides scheduled background tasks for parcel tracking.
//
// Jobs use github.com/robfig/cron/v3 with the standard five-field parser, so
// schedules accept cron expressions as well as descriptors such as "@every 5m".
//
// # Available Jobs
//
// 1. StatusReportJob - logs the number of parcels in each status, default every five minutes
//
// # Usage
//
//	jobManager := jobs.NewJobManager(countParcelsByStatusHandler, cfg.StatusReportSchedule, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatalf("failed to start jobs: %v", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - A failed report is logged and the next run proceeds normally
// - An invalid schedule makes StartAll fail before anything runs
package jobs
