// Package compdb prepares compile_commands.json for clang-tidy.
// GCC-only flags such as -fmodules-ts make clang-tidy fail for every file,
// so they are removed and the result is written next to the original database.
package compdb

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/suzuki-shunsuke/logrus-error/logerr"
)

const (
	FileName = "compile_commands.json"
	// FilteredDir is created in the build directory and passed to clang-tidy via -p.
	FilteredDir = "clangrun"

	dirPermission  os.FileMode = 0o755
	filePermission os.FileMode = 0o644
)

var ErrNotFound = errors.New("compile_commands.json isn't found")

// Entry is a compile command.
// https://clang.llvm.org/docs/JSONCompilationDatabase.html
type Entry struct {
	Directory string   `json:"directory"`
	File      string   `json:"file"`
	Command   string   `json:"command,omitempty"`
	Arguments []string `json:"arguments,omitempty"`
	Output    string   `json:"output,omitempty"`
}

type Filter struct {
	fs          afero.Fs
	unsupported []string
}

// NewFilter creates a Filter. An unsupported flag ending with "=" matches any token with the prefix,
// e.g. "-fmodule-mapper=" matches "-fmodule-mapper=foo.modmap". Other flags match exactly.
func NewFilter(fs afero.Fs, unsupported []string) *Filter {
	return &Filter{
		fs:          fs,
		unsupported: unsupported,
	}
}

func (f *Filter) isUnsupported(token string) bool {
	for _, u := range f.unsupported {
		if strings.HasSuffix(u, "=") {
			if strings.HasPrefix(token, u) {
				return true
			}
			continue
		}
		if token == u {
			return true
		}
	}
	return false
}

// filterTokens returns the kept tokens and whether any token was removed.
func (f *Filter) filterTokens(tokens []string) ([]string, bool) {
	kept := make([]string, 0, len(tokens))
	removed := false
	for _, token := range tokens {
		if f.isUnsupported(token) {
			removed = true
			continue
		}
		kept = append(kept, token)
	}
	return kept, removed
}

// FilterEntries removes unsupported flags from entries.
// A command string is rebuilt only when a token is removed, so a database
// without unsupported flags is returned unchanged.
func (f *Filter) FilterEntries(entries []*Entry) ([]*Entry, int) {
	ret := make([]*Entry, len(entries))
	count := 0
	for i, e := range entries {
		entry := *e
		if entry.Command != "" {
			if tokens, removed := f.filterTokens(strings.Fields(entry.Command)); removed {
				entry.Command = strings.Join(tokens, " ")
				count++
			}
		}
		if entry.Arguments != nil {
			if args, removed := f.filterTokens(entry.Arguments); removed {
				entry.Arguments = args
				count++
			}
		}
		ret[i] = &entry
	}
	return ret, count
}

// Prepare reads buildDir/compile_commands.json, removes unsupported flags and writes
// buildDir/clangrun/compile_commands.json. It returns the directory of the filtered database.
func (f *Filter) Prepare(logE *logrus.Entry, buildDir string) (string, error) {
	src := filepath.Join(buildDir, FileName)
	b, err := afero.ReadFile(f.fs, src)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, src)
		}
		return "", fmt.Errorf("read a compilation database: %w", err)
	}
	entries := []*Entry{}
	if err := json.Unmarshal(b, &entries); err != nil {
		return "", fmt.Errorf("parse a compilation database as JSON: %w", logerr.WithFields(err, logrus.Fields{
			"path": src,
		}))
	}
	filtered, count := f.FilterEntries(entries)
	logE.WithFields(logrus.Fields{
		"entries":          len(entries),
		"filtered_entries": count,
	}).Debug("filter the compilation database")

	dir := filepath.Join(buildDir, FilteredDir)
	if err := f.fs.MkdirAll(dir, dirPermission); err != nil {
		return "", fmt.Errorf("create a directory for the filtered compilation database: %w", err)
	}
	out, err := json.MarshalIndent(filtered, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal the filtered compilation database: %w", err)
	}
	if err := afero.WriteFile(f.fs, filepath.Join(dir, FileName), append(out, '\n'), filePermission); err != nil {
		return "", fmt.Errorf("write the filtered compilation database: %w", err)
	}
	return dir, nil
}
