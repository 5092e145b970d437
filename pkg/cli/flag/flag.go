// Package flag defines flags shared by every subcommand.
package flag

import "github.com/urfave/cli/v3"

type GlobalFlags struct {
	LogLevel string
	LogColor string
	Config   string
}

func (gf *GlobalFlags) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level",
			Sources:     cli.EnvVars("CLANGRUN_LOG_LEVEL"),
			Destination: &gf.LogLevel,
		},
		&cli.StringFlag{
			Name:        "log-color",
			Usage:       "log color. One of 'auto', 'always', 'never'",
			Value:       "auto",
			Sources:     cli.EnvVars("CLANGRUN_LOG_COLOR"),
			Destination: &gf.LogColor,
		},
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "configuration file path",
			Sources:     cli.EnvVars("CLANGRUN_CONFIG"),
			Destination: &gf.Config,
		},
	}
}

// ToolFlags returns flags shared by tidy and format.
func ToolFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "root",
			Usage: "root directory of source files",
			Value: ".",
		},
		&cli.BoolFlag{
			Name:  "fix",
			Usage: "fix files in place",
		},
		&cli.BoolFlag{
			Name:  "verbose",
			Usage: "show clean files and the raw output of failed files",
		},
		&cli.IntFlag{
			Name:    "jobs",
			Aliases: []string{"j"},
			Usage:   "number of parallel jobs. By default the number of CPUs",
			Sources: cli.EnvVars("CLANGRUN_JOBS"),
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "write the report to a file",
		},
		&cli.DurationFlag{
			Name:    "timeout",
			Usage:   "timeout of each tool invocation. 0 means no timeout",
			Sources: cli.EnvVars("CLANGRUN_TIMEOUT"),
		},
	}
}
