package store

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/shadesmith/shadesmith/internal/harness"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_RecordAndQueryDivergences(t *testing.T) {
	s := openTestStore(t)

	agree := harness.RunResult{
		ID:      "run-agree",
		Verdict: harness.Agree,
		Outcomes: []harness.Outcome{
			{Backend: "a", OK: true},
			{Backend: "b", OK: true},
		},
	}
	divergent := harness.RunResult{
		ID:      "run-divergent",
		Verdict: harness.Divergent,
		Outcomes: []harness.Outcome{
			{Backend: "a", OK: true},
			{Backend: "b", OK: false, Message: "type mismatch"},
		},
	}
	crashed := harness.RunResult{
		ID:      "run-crashed",
		Verdict: harness.Crashed,
		Outcomes: []harness.Outcome{
			{Backend: "a", OK: true},
			{Backend: "b", Err: errors.New("connection refused")},
		},
	}

	for i, run := range []harness.RunResult{agree, divergent, crashed} {
		if err := s.RecordRun(run, int64(i), "struct_count: 1", "fn main() -> i32 { return 0; }"); err != nil {
			t.Fatalf("RecordRun(%s): %v", run.ID, err)
		}
	}

	records, err := s.Divergences()
	if err != nil {
		t.Fatalf("Divergences: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d divergences, want 2", len(records))
	}
	for _, r := range records {
		if r.ID == "run-agree" {
			t.Error("agreeing run reported as divergence")
		}
		if r.Source == "" || r.Options == "" {
			t.Errorf("run %s persisted without source or options", r.ID)
		}
	}
}

func TestStore_RejectsDuplicateRunID(t *testing.T) {
	s := openTestStore(t)

	run := harness.RunResult{ID: "run-1", Verdict: harness.Agree}
	if err := s.RecordRun(run, 1, "", "src"); err != nil {
		t.Fatalf("first RecordRun: %v", err)
	}
	if err := s.RecordRun(run, 1, "", "src"); err == nil {
		t.Error("duplicate run id accepted")
	}
}
