package cron

import (
	"log"

	"github.com/robfig/cron/v3"

	"brickyard.GO/config"
)

// StartCron schedules the built-in plant jobs from config.CronJobs plus any
// extension jobs added with Register, then starts the scheduler.
func StartCron() *cron.Cron {
	c := cron.New()
	add := func(name, schedule string, run func(...string)) {
		if _, err := c.AddFunc(schedule, func() { run() }); err != nil {
			log.Fatalf("Failed to register job %s: %v", name, err)
		}
	}
	for name, job := range config.CronJobs {
		add(name, job.Schedule, job.Job)
	}
	for name, job := range Jobs() {
		add(name, job.Schedule, job.Run)
	}
	c.Start()
	return c
}
