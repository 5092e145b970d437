package pipeline

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/clangrun/clangrun/pkg/command"
	"github.com/spf13/afero"
)

var (
	ErrToolNotFound = errors.New("the tool isn't found")
	ErrRootNotFound = errors.New("the root directory isn't found")
)

// ConfigError is a fatal misconfiguration detected before any file is processed.
// Remediation tells users how to fix it.
type ConfigError struct {
	Err         error
	Remediation string
}

func (e *ConfigError) Error() string {
	return e.Err.Error()
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// ResolveTool returns the path of the tool.
// If path is empty, name is looked up from PATH.
func ResolveTool(exe command.Executor, name, path string) (string, error) {
	target := name
	if path != "" {
		target = path
	}
	p, err := exe.LookPath(target)
	if err != nil {
		return "", &ConfigError{
			Err: fmt.Errorf("%w: %s: %w", ErrToolNotFound, target, err),
			Remediation: fmt.Sprintf(
				"install %s (e.g. apt install %s, brew install llvm) and add it to PATH, or pass the executable path with --%s",
				name, name, name),
		}
	}
	return p, nil
}

// ResolveRoot returns the absolute path of root and checks it's a directory.
// On the OS filesystem symbolic links are resolved, because the walk doesn't follow a linked root.
func ResolveRoot(fs afero.Fs, root string) (string, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("get the absolute path of the root directory: %w", err)
	}
	if _, ok := fs.(*afero.OsFs); ok {
		if p, err := filepath.EvalSymlinks(abs); err == nil {
			abs = p
		}
	}
	ok, err := afero.DirExists(fs, abs)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("check if the root directory exists: %w", err)
	}
	if !ok {
		return "", &ConfigError{
			Err:         fmt.Errorf("%w: %s", ErrRootNotFound, abs),
			Remediation: "pass an existing directory with --root",
		}
	}
	return abs, nil
}
