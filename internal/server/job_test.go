package server

import (
	"sync"
	"testing"
)

func TestJobManagerCreateAndGet(t *testing.T) {
	jm := NewJobManager()

	config := JobConfig{RefPath: "ref.png", CandPath: "cand.png", Engine: "both"}
	job := jm.CreateJob(config)

	if job.ID == "" {
		t.Error("job ID should not be empty")
	}
	if job.State != StatePending {
		t.Errorf("state = %s, want %s", job.State, StatePending)
	}
	if job.Config != config {
		t.Errorf("config = %+v, want %+v", job.Config, config)
	}
	if job.StartTime.IsZero() {
		t.Error("start time should be set")
	}

	got, exists := jm.GetJob(job.ID)
	if !exists {
		t.Fatal("job should exist")
	}
	if got.ID != job.ID {
		t.Errorf("got ID %s, want %s", got.ID, job.ID)
	}
}

func TestJobManagerGetMissing(t *testing.T) {
	jm := NewJobManager()

	if _, exists := jm.GetJob("no-such-id"); exists {
		t.Error("missing job should not exist")
	}
}

func TestJobManagerUniqueIDs(t *testing.T) {
	jm := NewJobManager()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		job := jm.CreateJob(JobConfig{RefPath: "a", CandPath: "b"})
		if seen[job.ID] {
			t.Fatalf("duplicate job ID: %s", job.ID)
		}
		seen[job.ID] = true
	}
}

func TestJobManagerListJobs(t *testing.T) {
	jm := NewJobManager()

	if got := jm.ListJobs(); len(got) != 0 {
		t.Errorf("expected empty list, got %d jobs", len(got))
	}

	for i := 0; i < 3; i++ {
		jm.CreateJob(JobConfig{RefPath: "a", CandPath: "b"})
	}

	if got := jm.ListJobs(); len(got) != 3 {
		t.Errorf("expected 3 jobs, got %d", len(got))
	}
}

func TestJobManagerUpdateJob(t *testing.T) {
	jm := NewJobManager()
	job := jm.CreateJob(JobConfig{RefPath: "a", CandPath: "b"})

	err := jm.UpdateJob(job.ID, func(j *Job) {
		j.State = StateRunning
	})
	if err != nil {
		t.Fatalf("UpdateJob failed: %v", err)
	}

	got, _ := jm.GetJob(job.ID)
	if got.State != StateRunning {
		t.Errorf("state = %s, want %s", got.State, StateRunning)
	}

	if err := jm.UpdateJob("no-such-id", func(j *Job) {}); err == nil {
		t.Error("expected error for missing job")
	}
}

func TestJobManagerConcurrentUpdates(t *testing.T) {
	jm := NewJobManager()
	job := jm.CreateJob(JobConfig{RefPath: "a", CandPath: "b"})

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				jm.UpdateJob(job.ID, func(jb *Job) {
					jb.Width++
				})
				jm.GetJob(job.ID)
				jm.ListJobs()
			}
		}()
	}
	wg.Wait()

	got, _ := jm.GetJob(job.ID)
	if got.Width != 1600 {
		t.Errorf("width = %d, want 1600 (lost updates)", got.Width)
	}
}
