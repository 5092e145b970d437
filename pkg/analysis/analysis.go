// Package analysis holds the records passed between the locator, the runner and the aggregator.
package analysis

// FileRecord is a source file found by the locator.
type FileRecord struct {
	Path string
	Ext  string
}

// Result is the outcome of running an external tool against one file.
// Success is false only when the tool couldn't be run at all.
// A tool that ran and exited with a non-zero status is still a success.
type Result struct {
	Path           string
	Success        bool
	HasIssues      bool
	ExitCode       int
	FilteredOutput string
	RawOutput      string
	Err            error
}

type Outcome int

const (
	OutcomeClean Outcome = iota
	OutcomeFlagged
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeFlagged:
		return "flagged"
	case OutcomeFailed:
		return "failed"
	default:
		return "clean"
	}
}

// Outcome classifies the result. Every result has exactly one outcome.
func (r *Result) Outcome() Outcome {
	if !r.Success {
		return OutcomeFailed
	}
	if r.HasIssues {
		return OutcomeFlagged
	}
	return OutcomeClean
}
