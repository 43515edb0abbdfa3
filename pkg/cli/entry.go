// Package cli implements the shadesmith command line: generate random
// shader programs, optionally feed them to remote validation backends, and
// record what the backends said.
package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"gopkg.in/yaml.v3"

	"github.com/shadesmith/shadesmith/internal/corpus"
	"github.com/shadesmith/shadesmith/internal/gen"
	"github.com/shadesmith/shadesmith/internal/harness"
	"github.com/shadesmith/shadesmith/internal/prettyprinter"
	"github.com/shadesmith/shadesmith/internal/store"
)

const (
	colorRed    = "\x1b[31m"
	colorYellow = "\x1b[33m"
	colorReset  = "\x1b[0m"
)

// Run is the CLI entry point. It returns the process exit code.
func Run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("shadesmith", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		seed        = fs.Int64("seed", time.Now().UnixNano(), "generation seed")
		optionsPath = fs.String("options", "", "options YAML file (defaults are used when empty)")
		outPath     = fs.String("o", "", "write the generated program here instead of stdout")
		count       = fs.Int("count", 1, "number of programs to generate (seed increments per program)")
		remoteAddr  = fs.String("remote", "", "address of a wire-protocol validation server")
		grpcTarget  = fs.String("grpc", "", "target of a gRPC validation service")
		protoPath   = fs.String("proto", "internal/harness/validator.proto", "service definition for -grpc")
		dbPath      = fs.String("db", "", "SQLite database to record runs in")
		corpusDir   = fs.String("corpus", "", "directory to archive divergent programs in")
		timeout     = fs.Duration("timeout", 10*time.Second, "per-backend validation timeout")
	)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	opts := gen.DefaultOptions()
	if *optionsPath != "" {
		var err error
		opts, err = gen.LoadOptions(*optionsPath)
		if err != nil {
			errorf(stderr, "%v", err)
			return 1
		}
	}

	backends, cleanup, err := buildBackends(*remoteAddr, *grpcTarget, *protoPath)
	if err != nil {
		errorf(stderr, "%v", err)
		return 1
	}
	defer cleanup()

	var db *store.Store
	if *dbPath != "" {
		db, err = store.Open(*dbPath)
		if err != nil {
			errorf(stderr, "%v", err)
			return 1
		}
		defer db.Close()
	}

	optionsText, err := yaml.Marshal(opts)
	if err != nil {
		errorf(stderr, "serializing options: %v", err)
		return 1
	}

	divergent := 0
	for i := 0; i < *count; i++ {
		programSeed := *seed + int64(i)
		program := gen.New(programSeed, opts).GenerateProgram()
		source := prettyprinter.NewCodePrinter().Print(program)

		if err := emit(source, *outPath, *count, i, stdout); err != nil {
			errorf(stderr, "%v", err)
			return 1
		}

		if len(backends) == 0 {
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), *timeout)
		result := harness.Run(ctx, backends, source)
		cancel()

		if result.Verdict != harness.Agree {
			divergent++
			warnf(stderr, "seed %d: %s", programSeed, describeRun(result))
			if *corpusDir != "" {
				entry := corpus.Entry{
					ID:      result.ID,
					Note:    fmt.Sprintf("seed %d verdict %s", programSeed, result.Verdict),
					Source:  source,
					Options: string(optionsText),
				}
				if _, err := corpus.Save(*corpusDir, entry); err != nil {
					errorf(stderr, "%v", err)
				}
			}
		}

		if db != nil {
			if err := db.RecordRun(result, programSeed, string(optionsText), source); err != nil {
				errorf(stderr, "%v", err)
				return 1
			}
		}
	}

	if divergent > 0 {
		return 1
	}
	return 0
}

func buildBackends(remoteAddr, grpcTarget, protoPath string) ([]harness.Backend, func(), error) {
	var backends []harness.Backend
	cleanup := func() {}

	if remoteAddr != "" {
		backends = append(backends, harness.Backend{
			Name:      "remote",
			Validator: harness.NewClient(remoteAddr),
		})
	}
	if grpcTarget != "" {
		v, err := harness.NewGrpcValidator(grpcTarget, protoPath)
		if err != nil {
			return nil, cleanup, err
		}
		cleanup = func() { v.Close() }
		backends = append(backends, harness.Backend{Name: "grpc", Validator: v})
	}
	return backends, cleanup, nil
}

func emit(source, outPath string, count, index int, stdout io.Writer) error {
	if outPath == "" {
		if index > 0 {
			fmt.Fprintln(stdout)
		}
		_, err := io.WriteString(stdout, source)
		return err
	}
	path := outPath
	if count > 1 {
		path = fmt.Sprintf("%s.%d", outPath, index)
	}
	if err := os.WriteFile(path, []byte(source), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func describeRun(result harness.RunResult) string {
	out := fmt.Sprintf("run %s is %s:", result.ID, result.Verdict)
	for _, o := range result.Outcomes {
		switch {
		case o.Err != nil:
			out += fmt.Sprintf(" %s=error(%v)", o.Backend, o.Err)
		case o.OK:
			out += fmt.Sprintf(" %s=ok", o.Backend)
		default:
			out += fmt.Sprintf(" %s=reject", o.Backend)
		}
	}
	return out
}

func errorf(w io.Writer, format string, args ...interface{}) {
	writeColored(w, colorRed, "error: "+fmt.Sprintf(format, args...))
}

func warnf(w io.Writer, format string, args ...interface{}) {
	writeColored(w, colorYellow, fmt.Sprintf(format, args...))
}

// writeColored colors the line only when writing to a real terminal.
func writeColored(w io.Writer, color, msg string) {
	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		fmt.Fprintf(w, "%s%s%s\n", color, msg, colorReset)
		return
	}
	fmt.Fprintln(w, msg)
}
