package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/valpere/humanizer/internal"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleRun(id string, started time.Time, kind string) internal.RunRecord {
	return internal.RunRecord{
		ID:             id,
		StartedAt:      started,
		Duration:       1500 * time.Millisecond,
		Paraphraser:    "ollama",
		Corrector:      "languagetool",
		CorrectGrammar: true,
		ErrorKind:      kind,
		InputChars:     42,
		OutputChars:    40,
	}
}

func TestStore_New(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	s, err := New(dbPath)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	defer s.Close()

	if s == nil {
		t.Fatal("expected non-nil store")
	}
}

func TestStore_New_InvalidPath(t *testing.T) {
	_, err := New("/nonexistent/path/test.db")
	if err == nil {
		t.Error("expected error for invalid path")
	}
}

func TestStore_New_Reopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	s, err := New(dbPath)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	if err := s.SaveRun(context.Background(), sampleRun("run-1", time.Now(), "")); err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}
	s.Close()

	s, err = New(dbPath)
	if err != nil {
		t.Fatalf("failed to reopen store: %v", err)
	}
	defer s.Close()

	runs, err := s.ListRuns(context.Background(), 0)
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("expected run to survive reopen, got %d runs", len(runs))
	}
}

func TestStore_SaveRun_ListRuns(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	if err := s.SaveRun(ctx, sampleRun("older", base, "")); err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}
	if err := s.SaveRun(ctx, sampleRun("newer", base.Add(time.Minute), "service_error")); err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}

	runs, err := s.ListRuns(ctx, 0)
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}

	if runs[0].ID != "newer" || runs[1].ID != "older" {
		t.Errorf("expected newest first, got %s, %s", runs[0].ID, runs[1].ID)
	}

	got := runs[1]
	if !got.StartedAt.Equal(base) {
		t.Errorf("expected started_at %v, got %v", base, got.StartedAt)
	}
	if got.Duration != 1500*time.Millisecond {
		t.Errorf("expected 1.5s duration, got %v", got.Duration)
	}
	if got.Paraphraser != "ollama" || got.Corrector != "languagetool" {
		t.Errorf("unexpected backends %q / %q", got.Paraphraser, got.Corrector)
	}
	if !got.CorrectGrammar {
		t.Error("expected correct_grammar to round-trip")
	}
	if got.InputChars != 42 || got.OutputChars != 40 {
		t.Errorf("unexpected sizes %d / %d", got.InputChars, got.OutputChars)
	}
	if !got.Succeeded() {
		t.Error("expected older run to be a success")
	}
	if runs[0].ErrorKind != "service_error" {
		t.Errorf("expected service_error, got %q", runs[0].ErrorKind)
	}
}

func TestStore_SaveRun_DuplicateID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.SaveRun(ctx, sampleRun("dup", time.Now(), "")); err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}
	if err := s.SaveRun(ctx, sampleRun("dup", time.Now(), "")); err == nil {
		t.Error("expected error for duplicate run ID")
	}
}

func TestStore_ListRuns_Limit(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	base := time.Now()
	for i, id := range []string{"a", "b", "c", "d"} {
		if err := s.SaveRun(ctx, sampleRun(id, base.Add(time.Duration(i)*time.Second), "")); err != nil {
			t.Fatalf("SaveRun failed: %v", err)
		}
	}

	runs, err := s.ListRuns(ctx, 2)
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].ID != "d" || runs[1].ID != "c" {
		t.Errorf("expected d, c; got %s, %s", runs[0].ID, runs[1].ID)
	}
}

func TestStore_Stats_Empty(t *testing.T) {
	s := newTestStore(t)

	stats, err := s.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.TotalRuns != 0 || stats.SucceededRuns != 0 {
		t.Errorf("expected empty stats, got %+v", stats)
	}
	if stats.AverageDuration != 0 {
		t.Errorf("expected zero average, got %v", stats.AverageDuration)
	}
	if len(stats.FailuresByKind) != 0 {
		t.Errorf("expected no failures, got %v", stats.FailuresByKind)
	}
}

func TestStore_Stats(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	now := time.Now()
	records := []internal.RunRecord{
		sampleRun("1", now, ""),
		sampleRun("2", now, ""),
		sampleRun("3", now, "service_error"),
		sampleRun("4", now, "service_error"),
		sampleRun("5", now, "correction_error"),
	}
	records[0].Duration = 1 * time.Second
	records[1].Duration = 3 * time.Second

	for _, r := range records {
		if err := s.SaveRun(ctx, r); err != nil {
			t.Fatalf("SaveRun failed: %v", err)
		}
	}

	stats, err := s.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}

	if stats.TotalRuns != 5 {
		t.Errorf("expected 5 runs, got %d", stats.TotalRuns)
	}
	if stats.SucceededRuns != 2 {
		t.Errorf("expected 2 successes, got %d", stats.SucceededRuns)
	}
	if stats.FailuresByKind["service_error"] != 2 {
		t.Errorf("expected 2 service errors, got %d", stats.FailuresByKind["service_error"])
	}
	if stats.FailuresByKind["correction_error"] != 1 {
		t.Errorf("expected 1 correction error, got %d", stats.FailuresByKind["correction_error"])
	}
	// (1000 + 3000 + 1500*3) / 5 = 1700ms
	if stats.AverageDuration != 1700*time.Millisecond {
		t.Errorf("expected 1.7s average, got %v", stats.AverageDuration)
	}
}

func TestStore_ClearRuns(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"x", "y", "z"} {
		if err := s.SaveRun(ctx, sampleRun(id, time.Now(), "")); err != nil {
			t.Fatalf("SaveRun failed: %v", err)
		}
	}

	n, err := s.ClearRuns(ctx)
	if err != nil {
		t.Fatalf("ClearRuns failed: %v", err)
	}
	if n != 3 {
		t.Errorf("expected 3 rows removed, got %d", n)
	}

	runs, err := s.ListRuns(ctx, 0)
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected empty log, got %d runs", len(runs))
	}
}

func TestStore_CancelledContext(t *testing.T) {
	s := newTestStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := s.SaveRun(ctx, sampleRun("late", time.Now(), "")); err == nil {
		t.Error("expected error for cancelled context")
	}
}
