package harness

import (
	"context"

	"github.com/google/uuid"
)

// Verdict classifies one differential run.
type Verdict int

const (
	// Agree: every backend reached the same accept/reject verdict.
	Agree Verdict = iota
	// Divergent: backends disagreed. This is the interesting case.
	Divergent
	// Crashed: some backend failed to produce a verdict at all.
	Crashed
)

func (v Verdict) String() string {
	switch v {
	case Agree:
		return "agree"
	case Divergent:
		return "divergent"
	case Crashed:
		return "crashed"
	default:
		return "unknown"
	}
}

// Backend is one named compiler under test.
type Backend struct {
	Name      string
	Validator Validator
}

// Outcome is one backend's result within a run.
type Outcome struct {
	Backend string
	OK      bool
	Message string
	Err     error
}

// RunResult is the record of feeding one program to every backend.
type RunResult struct {
	ID       string
	Verdict  Verdict
	Outcomes []Outcome
}

// Run feeds source to each backend in order and classifies the results.
// Backends are independent implementations fed identical input; any
// disagreement is evidence of a bug in at least one of them.
func Run(ctx context.Context, backends []Backend, source string) RunResult {
	result := RunResult{ID: uuid.NewString()}

	for _, b := range backends {
		res, err := b.Validator.Validate(ctx, source)
		result.Outcomes = append(result.Outcomes, Outcome{
			Backend: b.Name,
			OK:      res.OK,
			Message: res.Message,
			Err:     err,
		})
	}

	result.Verdict = classify(result.Outcomes)
	return result
}

func classify(outcomes []Outcome) Verdict {
	if len(outcomes) == 0 {
		return Agree
	}
	for _, o := range outcomes {
		if o.Err != nil {
			return Crashed
		}
	}
	first := outcomes[0].OK
	for _, o := range outcomes[1:] {
		if o.OK != first {
			return Divergent
		}
	}
	return Agree
}
