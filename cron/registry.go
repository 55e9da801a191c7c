package cron

import (
	"sync"

	"brickyard.GO/core/registry"
)

// Job is one scheduled task: a cron-spec schedule plus the function the
// scheduler invokes. Built-in plant jobs (capacity snapshot, search reindex)
// live in config.CronJobs; extension packages register extra jobs here.
type Job struct {
	Schedule string
	Run      func(...string)
}

var mu sync.Mutex

// Register adds a job under a unique name. Call from init(); panics once the
// registry is locked (after StartCron has read it) or on a duplicate name.
func Register(name string, schedule string, run func(...string)) {
	mu.Lock()
	defer mu.Unlock()
	if registry.GlobalRegistry.IsLocked(registry.KeyRegistryCron) {
		panic("cron/registry: locked (register only during init before StartCron)")
	}
	jobs := getJobs()
	if _, ok := jobs[name]; ok {
		panic("cron/registry: duplicate job " + name)
	}
	jobs[name] = Job{Schedule: schedule, Run: run}
	registry.GlobalRegistry.SetGlobal(registry.KeyRegistryCron, jobs)
}

// Unregister removes a job (for tests).
func Unregister(name string) {
	mu.Lock()
	defer mu.Unlock()
	registry.GlobalRegistry.UnlockForTesting(registry.KeyRegistryCron)
	jobs := getJobs()
	delete(jobs, name)
	registry.GlobalRegistry.SetGlobal(registry.KeyRegistryCron, jobs)
}

func getJobs() map[string]Job {
	if v, ok := registry.GlobalRegistry.GetGlobal(registry.KeyRegistryCron); ok && v != nil {
		return v.(map[string]Job)
	}
	return make(map[string]Job)
}

// Jobs returns a copy of the registered jobs for StartCron to merge with
// config.CronJobs. Locks the registry on first call; read-only afterwards.
func Jobs() map[string]Job {
	out := make(map[string]Job, len(getJobs()))
	for name, job := range getJobs() {
		out[name] = job
	}
	if !registry.GlobalRegistry.IsLocked(registry.KeyRegistryCron) {
		registry.GlobalRegistry.Lock(registry.KeyRegistryCron)
	}
	return out
}
