package initcmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

const (
	templateConfig = `# yaml-language-server: $schema=https://raw.githubusercontent.com/clangrun/clangrun/refs/heads/main/json-schema/clangrun.json
# clangrun - https://github.com/clangrun/clangrun
version: 1
# extensions: [.c, .cc, .cpp, .cxx, .h, .hpp]
# exclude_dirs: [.git, build, _deps, third_party, external, vendor]
# external_patterns:
#   - "**/_deps/**"
#   - "/usr/**"
# respect_gitignore: true

tidy:
  build_dir: build
  # checks: "-*,bugprone-*,modernize-*"
  # min_version: "15"
  # extra_args: [--quiet]
  # unsupported_flags: [-fmodules-ts, -fmodule-mapper=]

format:
  style: file
  # min_version: "15"
`
	filePermission os.FileMode = 0o644
	dirPermission  os.FileMode = 0o755
)

// Init creates a configuration file if it doesn't exist.
// An existing file is left untouched.
func (c *Controller) Init(logE *logrus.Entry, configFilePath string) error {
	f, err := afero.Exists(c.fs, configFilePath)
	if err != nil {
		return fmt.Errorf("check if a configuration file exists: %w", err)
	}
	if f {
		logE.WithField("config", configFilePath).Info("the configuration file already exists")
		return nil
	}
	if err := c.fs.MkdirAll(filepath.Dir(configFilePath), dirPermission); err != nil {
		return fmt.Errorf("create a directory: %w", err)
	}
	if err := afero.WriteFile(c.fs, configFilePath, []byte(templateConfig), filePermission); err != nil {
		return fmt.Errorf("create a configuration file: %w", err)
	}
	logE.WithField("config", configFilePath).Info("created a configuration file")
	return nil
}
