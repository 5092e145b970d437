package cli

import (
	"context"

	"github.com/clangrun/clangrun/pkg/cli/flag"
	"github.com/clangrun/clangrun/pkg/cli/format"
	"github.com/clangrun/clangrun/pkg/cli/initcmd"
	"github.com/clangrun/clangrun/pkg/cli/tidy"
	"github.com/sirupsen/logrus"
	"github.com/suzuki-shunsuke/urfave-cli-v3-util/urfave"
	"github.com/urfave/cli/v3"
)

func Run(ctx context.Context, logE *logrus.Entry, ldFlags *urfave.LDFlags, args ...string) error {
	gFlags := &flag.GlobalFlags{}
	cmd := &cli.Command{
		Name:                  "clangrun",
		Usage:                 "Run clang-tidy and clang-format over a C/C++ source tree",
		Version:               ldFlags.Version + " (" + ldFlags.Commit + ")",
		Flags:                 gFlags.Flags(),
		EnableShellCompletion: true,
		Commands: []*cli.Command{
			tidy.New(logE, gFlags),
			format.New(logE, gFlags),
			initcmd.New(logE, gFlags),
			newVersionCommand(ldFlags),
		},
	}
	return cmd.Run(ctx, args) //nolint:wrapcheck
}
