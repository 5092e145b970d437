// Package format implements the 'clangrun format' command.
package format

import (
	"context"
	"fmt"
	"os"

	"github.com/clangrun/clangrun/pkg/cli/flag"
	"github.com/clangrun/clangrun/pkg/command"
	"github.com/clangrun/clangrun/pkg/config"
	"github.com/clangrun/clangrun/pkg/controller/format"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/suzuki-shunsuke/urfave-cli-v3-util/log"
	"github.com/urfave/cli/v3"
)

type runner struct {
	logE   *logrus.Entry
	gFlags *flag.GlobalFlags
}

func New(logE *logrus.Entry, gFlags *flag.GlobalFlags) *cli.Command {
	r := &runner{
		logE:   logE,
		gFlags: gFlags,
	}
	return r.Command()
}

func (r *runner) Command() *cli.Command {
	return &cli.Command{
		Name:  "format",
		Usage: "Run clang-format for every source file",
		Description: `Check the formatting of every source file under the root directory.

$ clangrun format

Files are formatted in place with --fix.

$ clangrun format --fix

The exit code is 1 if any file needs formatting or couldn't be processed.
`,
		Action: r.action,
		Flags: append(flag.ToolFlags(),
			&cli.BoolFlag{
				Name:  "check",
				Usage: "report files which need formatting without modifying them. This is the default",
			},
			&cli.StringFlag{
				Name:  "style",
				Usage: "value of clang-format --style. By default format.style",
			},
			&cli.StringFlag{
				Name:    "clang-format",
				Usage:   "clang-format executable path",
				Sources: cli.EnvVars("CLANGRUN_CLANG_FORMAT"),
			},
		),
	}
}

func (r *runner) action(ctx context.Context, c *cli.Command) error {
	if err := log.Set(r.logE, r.gFlags.LogLevel, r.gFlags.LogColor); err != nil {
		return fmt.Errorf("configure logger: %w", err)
	}
	fs := afero.NewOsFs()
	root := c.String("root")
	cfg, p, err := config.Load(fs, r.gFlags.Config, root)
	if err != nil {
		return err //nolint:wrapcheck
	}
	r.logE.WithField("config", p).Debug("read the configuration")
	ctrl := format.New(fs, command.NewExec(c.Duration("timeout")), cfg, &format.Param{
		Root:        root,
		Check:       c.Bool("check"),
		Fix:         c.Bool("fix"),
		Verbose:     c.Bool("verbose"),
		Parallelism: c.Int("jobs"),
		OutputFile:  c.String("output"),
		ToolPath:    c.String("clang-format"),
		Style:       c.String("style"),
		Stdout:      os.Stdout,
	})
	return ctrl.Run(ctx, r.logE) //nolint:wrapcheck
}
