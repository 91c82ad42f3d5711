package scheduler

import (
	"os"
	"testing"

	"blogpost-generator/pkg/logger"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "scheduler-logs")
	if err == nil {
		_ = logger.Init(dir, false)
	}
	code := m.Run()
	os.RemoveAll(dir)
	os.Exit(code)
}

func TestValidateCronExpression(t *testing.T) {
	if err := ValidateCronExpression("*/5 * * * *"); err != nil {
		t.Errorf("valid expression rejected: %v", err)
	}
	if err := ValidateCronExpression("every tuesday"); err == nil {
		t.Error("invalid expression accepted")
	}
}

func TestAddAndRemoveJob(t *testing.T) {
	s := NewEventScheduler()

	if err := s.AddJob(JobSessionSweep, "*/5 * * * *", func() {}); err != nil {
		t.Fatalf("AddJob() error = %v", err)
	}
	if err := s.AddJob(JobSessionSweep, "*/5 * * * *", func() {}); err == nil {
		t.Error("duplicate job id should fail")
	}

	info, ok := s.GetJob(JobSessionSweep)
	if !ok || info.CronExpr != "*/5 * * * *" || info.Runs != 0 {
		t.Errorf("GetJob() = %+v, %v", info, ok)
	}
	if len(s.ListJobs()) != 1 {
		t.Errorf("ListJobs() = %v", s.ListJobs())
	}

	if err := s.RemoveJob(JobSessionSweep); err != nil {
		t.Fatalf("RemoveJob() error = %v", err)
	}
	if err := s.RemoveJob(JobSessionSweep); err == nil {
		t.Error("removing an unknown job should fail")
	}
}

func TestStartStop(t *testing.T) {
	s := NewEventScheduler()
	s.Start()
	if !s.IsRunning() {
		t.Fatal("scheduler should be running")
	}
	s.Stop()
	if s.IsRunning() {
		t.Error("scheduler should be stopped")
	}
}
