// Package aggregate classifies per-file results of an external tool and decides the verdict of a run.
package aggregate

import (
	"errors"
	"sort"

	"github.com/clangrun/clangrun/pkg/analysis"
)

// ErrIssuesFound is returned when at least one file is flagged or couldn't be analyzed.
// main maps it to the exit code 1 without logging it as a failure.
var ErrIssuesFound = errors.New("issues are found")

// Summary partitions results into three disjoint sets.
// Each set is sorted by path so that the report doesn't depend on the completion order.
type Summary struct {
	Clean   []*analysis.Result
	Flagged []*analysis.Result
	Failed  []*analysis.Result
}

func Aggregate(results []*analysis.Result) *Summary {
	s := &Summary{
		Clean:   []*analysis.Result{},
		Flagged: []*analysis.Result{},
		Failed:  []*analysis.Result{},
	}
	for _, r := range results {
		switch r.Outcome() {
		case analysis.OutcomeFailed:
			s.Failed = append(s.Failed, r)
		case analysis.OutcomeFlagged:
			s.Flagged = append(s.Flagged, r)
		default:
			s.Clean = append(s.Clean, r)
		}
	}
	for _, rs := range [][]*analysis.Result{s.Clean, s.Flagged, s.Failed} {
		sort.SliceStable(rs, func(i, j int) bool {
			return rs[i].Path < rs[j].Path
		})
	}
	return s
}

func (s *Summary) Total() int {
	return len(s.Clean) + len(s.Flagged) + len(s.Failed)
}

// ExitCode is 1 if any file is flagged or failed, otherwise 0.
// A file which couldn't be analyzed fails the run because its state is unknown.
func (s *Summary) ExitCode() int {
	if len(s.Flagged) > 0 || len(s.Failed) > 0 {
		return 1
	}
	return 0
}

// Err returns ErrIssuesFound if ExitCode isn't 0.
func (s *Summary) Err() error {
	if s.ExitCode() != 0 {
		return ErrIssuesFound
	}
	return nil
}
