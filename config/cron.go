package config

import (
	"brickyard.GO/cron/jobs"
)

// CronJob pairs a cron-spec schedule with the plant job it runs.
type CronJob struct {
	Schedule string
	Job      func(...string)
}

// CronJobs are the built-in scheduled jobs: the five-minute capacity snapshot
// (cache warm + low-stock warnings) and the nightly procurement reindex.
// Extension packages add more via cron.Register.
var CronJobs = map[string]CronJob{
	"capacitysnapshot": {Schedule: "@every 5m", Job: jobs.CapacitySnapshotJob},
	"procurementindex": {Schedule: "0 2 * * *", Job: jobs.ProcurementIndexJob},
}
