package cron

import (
	"testing"
)

func TestRegistry_Register_Jobs(t *testing.T) {
	ran := false
	Register("nightlyrollup", "@every 1h", func(args ...string) {
		ran = true
	})
	defer Unregister("nightlyrollup")

	jobs := Jobs()
	j, ok := jobs["nightlyrollup"]
	if !ok {
		t.Fatal("nightlyrollup missing from Jobs()")
	}
	if j.Schedule != "@every 1h" {
		t.Errorf("Schedule = %q, want @every 1h", j.Schedule)
	}
	j.Run()
	if !ran {
		t.Error("Run did not execute")
	}
}

func TestRegistry_Register_DuplicatePanics(t *testing.T) {
	Register("binsweep", "@hourly", func(...string) {})
	defer Unregister("binsweep")
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic on duplicate")
		}
	}()
	Register("binsweep", "@daily", func(...string) {})
}
