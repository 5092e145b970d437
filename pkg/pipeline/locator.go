package pipeline

import (
	"path/filepath"

	"github.com/clangrun/clangrun/pkg/config"
	"github.com/clangrun/clangrun/pkg/locator"
	"github.com/spf13/afero"
)

// BuildDir returns dir resolved from root. An empty dir means tidy.build_dir.
func BuildDir(cfg *config.Config, root, dir string) string {
	if dir == "" {
		dir = cfg.Tidy.BuildDir
	}
	if filepath.IsAbs(dir) {
		return filepath.Clean(dir)
	}
	return filepath.Join(root, dir)
}

// NewLocator creates a Locator from the configuration.
// Both commands use the same exclusion rules, so a file skipped by clang-tidy is skipped by clang-format too.
// buildDir is never scanned, whether or not its name is in exclude_dirs.
func NewLocator(fs afero.Fs, cfg *config.Config, root, buildDir string) *locator.Locator {
	param := &locator.Param{
		Extensions:   cfg.Extensions,
		ExcludeDirs:  cfg.ExcludeDirs,
		ExcludePaths: []string{buildDir},
	}
	if cfg.RespectGitignore {
		param.GitIgnore = locator.LoadGitIgnore(fs, root)
	}
	return locator.New(fs, param)
}
