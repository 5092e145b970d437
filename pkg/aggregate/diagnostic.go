package aggregate

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Diagnostic is a warning or an error parsed from clang-tidy output.
type Diagnostic struct {
	File     string
	Line     int
	Column   int
	Severity string
	Message  string
	Check    string
}

var checkPattern = regexp.MustCompile(`^(.*) \[([\w.,-]+)\]$`)

// ParseDiagnostics extracts warnings and errors from output.
// Notes and remarks are attached information and are skipped.
// So is a line whose position doesn't fit in an int.
func ParseDiagnostics(output string) []*Diagnostic {
	diags := []*Diagnostic{}
	for _, line := range strings.Split(output, "\n") {
		m := diagnosticPattern.FindStringSubmatch(strings.TrimRight(line, "\r"))
		if m == nil {
			continue
		}
		severity := m[4]
		if severity != "warning" && severity != "error" && severity != "fatal error" {
			continue
		}
		lineNum, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		col, err := strconv.Atoi(m[3])
		if err != nil {
			continue
		}
		d := &Diagnostic{
			File:     m[1],
			Line:     lineNum,
			Column:   col,
			Severity: severity,
			Message:  m[5],
		}
		if cm := checkPattern.FindStringSubmatch(d.Message); cm != nil {
			d.Message = cm[1]
			d.Check = cm[2]
		}
		diags = append(diags, d)
	}
	return diags
}

// Diagnostics parses the filtered output of every flagged result.
// A header included by several files is reported once.
func (s *Summary) Diagnostics() []*Diagnostic {
	type key struct {
		file    string
		line    int
		column  int
		message string
	}
	seen := map[key]struct{}{}
	diags := []*Diagnostic{}
	for _, r := range s.Flagged {
		for _, d := range ParseDiagnostics(r.FilteredOutput) {
			k := key{file: d.File, line: d.Line, column: d.Column, message: d.Message}
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			diags = append(diags, d)
		}
	}
	sort.SliceStable(diags, func(i, j int) bool {
		if diags[i].File != diags[j].File {
			return diags[i].File < diags[j].File
		}
		return diags[i].Line < diags[j].Line
	})
	return diags
}
