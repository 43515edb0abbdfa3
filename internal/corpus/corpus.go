// Package corpus archives interesting generated programs as txtar bundles:
// one self-contained text file holding the program, the options it was
// generated under, and a comment describing why it was kept.
package corpus

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/tools/txtar"
)

const (
	programFile = "program.wgsl"
	optionsFile = "options.yaml"
)

// Entry is one archived program.
type Entry struct {
	// ID names the bundle file (typically the harness run id).
	ID string
	// Note explains why the program was archived.
	Note string
	// Source is the printed program text.
	Source string
	// Options is the YAML the program was generated under.
	Options string
}

// Save writes the entry as <dir>/<id>.txtar and returns the path.
func Save(dir string, e Entry) (string, error) {
	if e.ID == "" {
		return "", fmt.Errorf("corpus entry has no id")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating corpus dir %s: %w", dir, err)
	}

	archive := &txtar.Archive{
		Comment: []byte(e.Note + "\n"),
		Files: []txtar.File{
			{Name: programFile, Data: []byte(e.Source)},
			{Name: optionsFile, Data: []byte(e.Options)},
		},
	}

	path := filepath.Join(dir, e.ID+".txtar")
	if err := os.WriteFile(path, txtar.Format(archive), 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}

// Load reads one bundle back.
func Load(path string) (Entry, error) {
	archive, err := txtar.ParseFile(path)
	if err != nil {
		return Entry{}, fmt.Errorf("parsing %s: %w", path, err)
	}

	e := Entry{
		ID:   trimExt(filepath.Base(path)),
		Note: string(archive.Comment),
	}
	for _, f := range archive.Files {
		switch f.Name {
		case programFile:
			e.Source = string(f.Data)
		case optionsFile:
			e.Options = string(f.Data)
		}
	}
	if e.Source == "" {
		return Entry{}, fmt.Errorf("%s has no %s section", path, programFile)
	}
	return e, nil
}

func trimExt(name string) string {
	return name[:len(name)-len(filepath.Ext(name))]
}
