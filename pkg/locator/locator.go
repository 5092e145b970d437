// Package locator finds source files under a root directory.
package locator

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/clangrun/clangrun/pkg/analysis"
	gitignore "github.com/denormal/go-gitignore"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

type Locator struct {
	fs         afero.Fs
	extensions map[string]struct{}
	excludes   map[string]struct{}
	paths      []string
	ignore     gitignore.GitIgnore
}

type Param struct {
	Extensions  []string
	ExcludeDirs []string
	// ExcludePaths are absolute directories skipped with everything under them,
	// e.g. the build directory whatever its name is.
	ExcludePaths []string
	// GitIgnore is optional. Paths it ignores are skipped.
	GitIgnore gitignore.GitIgnore
}

func New(fs afero.Fs, param *Param) *Locator {
	l := &Locator{
		fs:         fs,
		extensions: make(map[string]struct{}, len(param.Extensions)),
		excludes:   make(map[string]struct{}, len(param.ExcludeDirs)),
		ignore:     param.GitIgnore,
	}
	for _, ext := range param.Extensions {
		l.extensions[ext] = struct{}{}
	}
	for _, dir := range param.ExcludeDirs {
		l.excludes[dir] = struct{}{}
	}
	for _, p := range param.ExcludePaths {
		l.paths = append(l.paths, filepath.Clean(p))
	}
	return l
}

// LoadGitIgnore reads root/.gitignore. It returns nil if the file doesn't exist.
func LoadGitIgnore(fs afero.Fs, root string) gitignore.GitIgnore {
	f, err := fs.Open(filepath.Join(root, ".gitignore"))
	if err != nil {
		return nil
	}
	defer f.Close()
	return gitignore.New(f, root, nil)
}

// Locate returns files under root whose extension is accepted and
// none of whose path components relative to root is an excluded name.
// Files are returned in lexical walk order. Unreadable entries are skipped,
// so the result is empty rather than an error when nothing can be found.
func (l *Locator) Locate(logE *logrus.Entry, root string) []*analysis.FileRecord {
	files := []*analysis.FileRecord{}
	_ = afero.Walk(l.fs, root, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			logE.WithField("path", p).WithError(err).Debug("skip an unreadable path")
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			logE.WithFields(logrus.Fields{
				"root": root,
				"path": p,
			}).WithError(err).Debug("get a relative path")
			return nil
		}
		if info.IsDir() {
			if p == root {
				return nil
			}
			if l.excluded(info.Name()) || l.underExcludedPath(p) || l.ignored(rel, true) {
				logE.WithField("dir", p).Debug("skip an excluded directory")
				return filepath.SkipDir
			}
			return nil
		}
		ext := filepath.Ext(p)
		if _, ok := l.extensions[ext]; !ok {
			return nil
		}
		if l.excludedPath(rel) || l.underExcludedPath(p) || l.ignored(rel, false) {
			return nil
		}
		files = append(files, &analysis.FileRecord{
			Path: p,
			Ext:  ext,
		})
		return nil
	})
	return files
}

func (l *Locator) excluded(name string) bool {
	_, ok := l.excludes[name]
	return ok
}

// excludedPath checks every directory component of a relative file path.
// Directories are already pruned during the walk; this keeps the invariant
// independent of how the walk reaches a file.
func (l *Locator) excludedPath(rel string) bool {
	parts := strings.Split(filepath.ToSlash(filepath.Dir(rel)), "/")
	for _, part := range parts {
		if l.excluded(part) {
			return true
		}
	}
	return false
}

func (l *Locator) underExcludedPath(p string) bool {
	p = filepath.Clean(p)
	for _, dir := range l.paths {
		if p == dir || strings.HasPrefix(p, dir+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

func (l *Locator) ignored(rel string, isDir bool) bool {
	if l.ignore == nil {
		return false
	}
	m := l.ignore.Relative(filepath.ToSlash(rel), isDir)
	return m != nil && m.Ignore()
}
