// Package tidy implements `clangrun tidy`.
// It prepares the compilation database, runs clang-tidy for every source file
// and reports files with warnings or errors.
package tidy

import (
	"io"

	"github.com/clangrun/clangrun/pkg/command"
	"github.com/clangrun/clangrun/pkg/config"
	"github.com/spf13/afero"
)

const ToolName = "clang-tidy"

const (
	FormatText  = "text"
	FormatSARIF = "sarif"
)

type Controller struct {
	fs    afero.Fs
	exe   command.Executor
	cfg   *config.Config
	param *Param
}

type Param struct {
	Root string
	// BuildDir overrides tidy.build_dir. A relative path is resolved from Root.
	BuildDir    string
	Checks      string
	ToolPath    string
	Fix         bool
	Verbose     bool
	Parallelism int
	OutputFile  string
	Format      string
	Stdout      io.Writer
}

func New(fs afero.Fs, exe command.Executor, cfg *config.Config, param *Param) *Controller {
	return &Controller{
		fs:    fs,
		exe:   exe,
		cfg:   cfg,
		param: param,
	}
}
