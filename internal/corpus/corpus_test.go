package corpus

import (
	"strings"
	"testing"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()

	in := Entry{
		ID:      "run-42",
		Note:    "seed 42 verdict divergent",
		Source:  "fn main() -> i32 {\n    return 7;\n}\n",
		Options: "struct_count: 2\n",
	}
	path, err := Save(dir, in)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !strings.HasSuffix(path, "run-42.txtar") {
		t.Errorf("unexpected bundle path %q", path)
	}

	out, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if out.ID != in.ID {
		t.Errorf("ID = %q, want %q", out.ID, in.ID)
	}
	if out.Source != in.Source {
		t.Errorf("Source = %q, want %q", out.Source, in.Source)
	}
	if out.Options != in.Options {
		t.Errorf("Options = %q, want %q", out.Options, in.Options)
	}
	if !strings.Contains(out.Note, "divergent") {
		t.Errorf("Note = %q lost its content", out.Note)
	}
}

func TestSave_RequiresID(t *testing.T) {
	if _, err := Save(t.TempDir(), Entry{Source: "x"}); err == nil {
		t.Error("entry without id accepted")
	}
}

func TestLoad_RejectsBundleWithoutProgram(t *testing.T) {
	dir := t.TempDir()
	path, err := Save(dir, Entry{ID: "empty", Options: "a: 1\n"})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("bundle without a program section accepted")
	}
}
