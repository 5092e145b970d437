// Package format implements `clangrun format`.
package format

import (
	"errors"
	"io"

	"github.com/clangrun/clangrun/pkg/command"
	"github.com/clangrun/clangrun/pkg/config"
	"github.com/spf13/afero"
)

const ToolName = "clang-format"

var ErrModeConflict = errors.New("--check and --fix can't be used together")

type Controller struct {
	fs    afero.Fs
	exe   command.Executor
	cfg   *config.Config
	param *Param
}

type Param struct {
	Root string
	// Check is the default mode. It only reports files that need formatting.
	Check       bool
	Fix         bool
	Verbose     bool
	Parallelism int
	OutputFile  string
	ToolPath    string
	// Style overrides format.style.
	Style  string
	Stdout io.Writer
}

func New(fs afero.Fs, exe command.Executor, cfg *config.Config, param *Param) *Controller {
	return &Controller{
		fs:    fs,
		exe:   exe,
		cfg:   cfg,
		param: param,
	}
}
