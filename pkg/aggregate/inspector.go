package aggregate

import "strings"

// Inspector decides whether a tool run found issues.
type Inspector struct {
	filter            *Filter
	issueMarkers      []string
	cleanMarkers      []string
	flagOnNonZeroExit bool
}

type InspectorParam struct {
	ExternalPatterns []string
	IssueMarkers     []string
	CleanMarkers     []string
	// FlagOnNonZeroExit treats a non-zero exit status as an issue even if no marker is found.
	// clang-format reports unformatted files only through its exit status.
	FlagOnNonZeroExit bool
}

func NewInspector(param *InspectorParam) *Inspector {
	return &Inspector{
		filter:            NewFilter(param.ExternalPatterns),
		issueMarkers:      param.IssueMarkers,
		cleanMarkers:      param.CleanMarkers,
		flagOnNonZeroExit: param.FlagOnNonZeroExit,
	}
}

// Inspect returns the filtered output and whether it contains issues.
func (i *Inspector) Inspect(output string, exitCode int) (string, bool) {
	filtered := i.filter.Apply(output)
	if containsAny(filtered, i.issueMarkers) && !containsAny(filtered, i.cleanMarkers) {
		return filtered, true
	}
	return filtered, i.flagOnNonZeroExit && exitCode != 0
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
