package pipeline

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/clangrun/clangrun/pkg/aggregate"
	"github.com/fatih/color"
	"github.com/spf13/afero"
)

type colorFunc func(a ...any) string

// Printer writes a human readable summary.
// The same text is written to the report file without colors.
type Printer struct {
	w       io.Writer
	verbose bool
	red     colorFunc
	yellow  colorFunc
	green   colorFunc
}

func NewPrinter(w io.Writer, verbose bool) *Printer {
	return &Printer{
		w:       w,
		verbose: verbose,
		red:     color.New(color.FgRed).SprintFunc(),
		yellow:  color.New(color.FgYellow).SprintFunc(),
		green:   color.New(color.FgGreen).SprintFunc(),
	}
}

func newPlainPrinter(w io.Writer, verbose bool) *Printer {
	return &Printer{
		w:       w,
		verbose: verbose,
		red:     fmt.Sprint,
		yellow:  fmt.Sprint,
		green:   fmt.Sprint,
	}
}

func (p *Printer) Print(tool string, s *aggregate.Summary) {
	if p.verbose {
		for _, r := range s.Clean {
			fmt.Fprintf(p.w, "%s %s\n", p.green("CLEAN"), r.Path)
		}
	}
	for _, r := range s.Flagged {
		fmt.Fprintf(p.w, "%s %s\n", p.red("FLAGGED"), r.Path)
		p.printOutput(r.FilteredOutput)
	}
	for _, r := range s.Failed {
		fmt.Fprintf(p.w, "%s %s\n", p.yellow("FAILED"), r.Path)
		if r.Err != nil {
			fmt.Fprintln(p.w, r.Err.Error())
		}
		if p.verbose {
			p.printOutput(r.RawOutput)
		}
	}
	if len(s.Failed) > 0 {
		fmt.Fprintf(p.w, "\n%s couldn't analyze %d file(s):\n", tool, len(s.Failed))
		for _, r := range s.Failed {
			fmt.Fprintf(p.w, "  %s\n", r.Path)
		}
	}
	summary := fmt.Sprintf("%s: %d file(s), %d clean, %d flagged, %d failed",
		tool, s.Total(), len(s.Clean), len(s.Flagged), len(s.Failed))
	if s.ExitCode() == 0 {
		fmt.Fprintln(p.w, p.green(summary))
		return
	}
	fmt.Fprintln(p.w, p.red(summary))
}

func (p *Printer) printOutput(out string) {
	out = strings.TrimRight(out, "\n")
	if out == "" {
		return
	}
	fmt.Fprintln(p.w, out)
}

const reportPermission os.FileMode = 0o644

// WriteReport writes the summary to path as plain text.
func WriteReport(fs afero.Fs, path, tool string, s *aggregate.Summary, verbose bool) error {
	buf := &bytes.Buffer{}
	newPlainPrinter(buf, verbose).Print(tool, s)
	if err := afero.WriteFile(fs, path, buf.Bytes(), reportPermission); err != nil {
		return fmt.Errorf("write a report file: %w", err)
	}
	return nil
}
