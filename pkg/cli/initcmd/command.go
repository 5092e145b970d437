// Package initcmd implements the 'clangrun init' command.
package initcmd

import (
	"context"
	"fmt"

	"github.com/clangrun/clangrun/pkg/cli/flag"
	"github.com/clangrun/clangrun/pkg/controller/initcmd"
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
		Name:  "init",
		Usage: "Create .clangrun.yaml if it doesn't exist",
		Description: `Create .clangrun.yaml if it doesn't exist

$ clangrun init

You can also pass configuration file path.

e.g.

$ clangrun init .github/clangrun.yaml
`,
		Action: r.action,
	}
}

func (r *runner) action(_ context.Context, c *cli.Command) error {
	if err := log.Set(r.logE, r.gFlags.LogLevel, r.gFlags.LogColor); err != nil {
		return fmt.Errorf("configure logger: %w", err)
	}
	configFilePath := c.Args().First()
	if configFilePath == "" {
		configFilePath = r.gFlags.Config
	}
	if configFilePath == "" {
		configFilePath = ".clangrun.yaml"
	}
	return initcmd.New(afero.NewOsFs()).Init(r.logE, configFilePath) //nolint:wrapcheck
}
