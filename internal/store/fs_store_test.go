package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *FSStore {
	t.Helper()
	fs, err := NewFSStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFSStore failed: %v", err)
	}
	return fs
}

func testReport(jobID string) *Report {
	return &Report{
		JobID: jobID,
		Config: CompareConfig{
			RefPath:  "ref.png",
			CandPath: "cand.png",
			Engine:   "both",
		},
		Width:  128,
		Height: 128,
		Reference: &EngineScore{
			MSSIM:     0.982341,
			MapWidth:  118,
			MapHeight: 118,
			Elapsed:   0.041,
		},
		Fast: &EngineScore{
			MSSIM:     0.981907,
			MapWidth:  121,
			MapHeight: 121,
			Elapsed:   0.003,
		},
		Timestamp: time.Now().UTC().Truncate(time.Second),
	}
}

func TestFSStoreSaveLoadRoundTrip(t *testing.T) {
	fs := newTestStore(t)
	report := testReport("job-abc")

	if err := fs.SaveReport(report.JobID, report); err != nil {
		t.Fatalf("SaveReport failed: %v", err)
	}

	loaded, err := fs.LoadReport(report.JobID)
	if err != nil {
		t.Fatalf("LoadReport failed: %v", err)
	}

	if loaded.JobID != report.JobID {
		t.Errorf("JobID = %s, want %s", loaded.JobID, report.JobID)
	}
	if loaded.Config != report.Config {
		t.Errorf("Config = %+v, want %+v", loaded.Config, report.Config)
	}
	if loaded.Reference == nil || loaded.Reference.MSSIM != report.Reference.MSSIM {
		t.Errorf("Reference = %+v, want %+v", loaded.Reference, report.Reference)
	}
	if loaded.Fast == nil || loaded.Fast.MapWidth != report.Fast.MapWidth {
		t.Errorf("Fast = %+v, want %+v", loaded.Fast, report.Fast)
	}
	if !loaded.Timestamp.Equal(report.Timestamp) {
		t.Errorf("Timestamp = %v, want %v", loaded.Timestamp, report.Timestamp)
	}
}

func TestFSStoreLoadMissing(t *testing.T) {
	fs := newTestStore(t)

	_, err := fs.LoadReport("no-such-job")
	if err == nil {
		t.Fatal("expected error for missing report")
	}
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestFSStoreSaveRejectsInvalid(t *testing.T) {
	fs := newTestStore(t)

	if err := fs.SaveReport("", testReport("x")); err == nil {
		t.Error("expected error for empty jobID")
	}
	if err := fs.SaveReport("x", nil); err == nil {
		t.Error("expected error for nil report")
	}

	bad := testReport("x")
	bad.Reference = nil
	bad.Fast = nil
	if err := fs.SaveReport("x", bad); err == nil {
		t.Error("expected error for report without engine scores")
	}
}

func TestFSStoreOverwrite(t *testing.T) {
	fs := newTestStore(t)

	first := testReport("job-ow")
	if err := fs.SaveReport(first.JobID, first); err != nil {
		t.Fatalf("first SaveReport failed: %v", err)
	}

	second := testReport("job-ow")
	second.Reference.MSSIM = 0.5
	if err := fs.SaveReport(second.JobID, second); err != nil {
		t.Fatalf("second SaveReport failed: %v", err)
	}

	loaded, err := fs.LoadReport("job-ow")
	if err != nil {
		t.Fatalf("LoadReport failed: %v", err)
	}
	if loaded.Reference.MSSIM != 0.5 {
		t.Errorf("MSSIM = %f, want 0.5 (overwrite not applied)", loaded.Reference.MSSIM)
	}
}

func TestFSStoreListReports(t *testing.T) {
	fs := newTestStore(t)

	infos, err := fs.ListReports()
	if err != nil {
		t.Fatalf("ListReports failed: %v", err)
	}
	if len(infos) != 0 {
		t.Errorf("expected empty list, got %d entries", len(infos))
	}

	for _, id := range []string{"job-1", "job-2", "job-3"} {
		if err := fs.SaveReport(id, testReport(id)); err != nil {
			t.Fatalf("SaveReport(%s) failed: %v", id, err)
		}
	}

	infos, err = fs.ListReports()
	if err != nil {
		t.Fatalf("ListReports failed: %v", err)
	}
	if len(infos) != 3 {
		t.Fatalf("expected 3 reports, got %d", len(infos))
	}

	seen := make(map[string]bool)
	for _, info := range infos {
		seen[info.JobID] = true
		if info.RefPath != "ref.png" {
			t.Errorf("RefPath = %s, want ref.png", info.RefPath)
		}
	}
	for _, id := range []string{"job-1", "job-2", "job-3"} {
		if !seen[id] {
			t.Errorf("report %s missing from listing", id)
		}
	}
}

func TestFSStoreListSkipsCorrupt(t *testing.T) {
	fs := newTestStore(t)

	if err := fs.SaveReport("job-ok", testReport("job-ok")); err != nil {
		t.Fatalf("SaveReport failed: %v", err)
	}

	// A directory without a report.json must not break the listing.
	corruptDir := filepath.Join(fs.baseDir, "reports", "job-corrupt")
	if err := os.MkdirAll(corruptDir, 0755); err != nil {
		t.Fatalf("failed to create corrupt dir: %v", err)
	}

	infos, err := fs.ListReports()
	if err != nil {
		t.Fatalf("ListReports failed: %v", err)
	}
	if len(infos) != 1 {
		t.Fatalf("expected 1 report, got %d", len(infos))
	}
	if infos[0].JobID != "job-ok" {
		t.Errorf("JobID = %s, want job-ok", infos[0].JobID)
	}
}

func TestFSStoreDeleteReport(t *testing.T) {
	fs := newTestStore(t)

	if err := fs.SaveReport("job-del", testReport("job-del")); err != nil {
		t.Fatalf("SaveReport failed: %v", err)
	}

	if err := fs.DeleteReport("job-del"); err != nil {
		t.Fatalf("DeleteReport failed: %v", err)
	}

	if _, err := fs.LoadReport("job-del"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}

	if err := fs.DeleteReport("job-del"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for second delete, got %v", err)
	}
}
