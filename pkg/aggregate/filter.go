package aggregate

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// diagnosticPattern matches the first line of a clang diagnostic.
//
//	/src/foo.cpp:10:5: warning: use nullptr [modernize-use-nullptr]
var diagnosticPattern = regexp.MustCompile(`^(.+?):(\d+):(\d+): (warning|error|note|remark|fatal error): (.*)$`)

// Filter removes diagnostics located in external dependencies from tool output.
type Filter struct {
	patterns []string
}

func NewFilter(patterns []string) *Filter {
	return &Filter{patterns: patterns}
}

// Match reports whether a path matches one of the external dependency patterns.
func (f *Filter) Match(p string) bool {
	p = filepath.ToSlash(p)
	trimmed := strings.TrimPrefix(p, "/")
	for _, pattern := range f.patterns {
		if ok, err := doublestar.Match(pattern, p); err == nil && ok {
			return true
		}
		if ok, err := doublestar.Match(pattern, trimmed); err == nil && ok {
			return true
		}
	}
	return false
}

// Apply drops every diagnostic whose location matches an external dependency pattern.
// Lines following a diagnostic (source snippet, caret, fix-it hints) belong to it
// and are dropped together with it. Other lines are kept.
func (f *Filter) Apply(output string) string {
	if len(f.patterns) == 0 || output == "" {
		return output
	}
	lines := strings.Split(output, "\n")
	kept := make([]string, 0, len(lines))
	dropping := false
	for _, line := range lines {
		if m := diagnosticPattern.FindStringSubmatch(line); m != nil {
			dropping = f.Match(m[1])
		}
		if dropping {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}
