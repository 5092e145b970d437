// Package tidy implements the 'clangrun tidy' command.
package tidy

import (
	"context"
	"fmt"
	"os"

	"github.com/clangrun/clangrun/pkg/cli/flag"
	"github.com/clangrun/clangrun/pkg/command"
	"github.com/clangrun/clangrun/pkg/config"
	"github.com/clangrun/clangrun/pkg/controller/tidy"
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
		Name:  "tidy",
		Usage: "Run clang-tidy for every source file",
		Description: `Run clang-tidy for every source file under the root directory.
compile_commands.json must exist in the build directory.

$ cmake -S . -B build -DCMAKE_EXPORT_COMPILE_COMMANDS=ON
$ clangrun tidy

The exit code is 1 if any file has warnings or errors, or couldn't be analyzed.
`,
		Action: r.action,
		Flags: append(flag.ToolFlags(),
			&cli.StringFlag{
				Name:    "build-dir",
				Aliases: []string{"p"},
				Usage:   "directory containing compile_commands.json. By default tidy.build_dir",
			},
			&cli.StringFlag{
				Name:  "checks",
				Usage: "value of clang-tidy --checks. By default tidy.checks or .clang-tidy",
			},
			&cli.StringFlag{
				Name:  "format",
				Usage: "output format. One of 'text', 'sarif'",
				Value: tidy.FormatText,
			},
			&cli.StringFlag{
				Name:    "clang-tidy",
				Usage:   "clang-tidy executable path",
				Sources: cli.EnvVars("CLANGRUN_CLANG_TIDY"),
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
	ctrl := tidy.New(fs, command.NewExec(c.Duration("timeout")), cfg, &tidy.Param{
		Root:        root,
		BuildDir:    c.String("build-dir"),
		Checks:      c.String("checks"),
		ToolPath:    c.String("clang-tidy"),
		Fix:         c.Bool("fix"),
		Verbose:     c.Bool("verbose"),
		Parallelism: c.Int("jobs"),
		OutputFile:  c.String("output"),
		Format:      c.String("format"),
		Stdout:      os.Stdout,
	})
	return ctrl.Run(ctx, r.logE) //nolint:wrapcheck
}
