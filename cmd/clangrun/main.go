package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/clangrun/clangrun/pkg/aggregate"
	"github.com/clangrun/clangrun/pkg/cli"
	"github.com/clangrun/clangrun/pkg/log"
	"github.com/clangrun/clangrun/pkg/pipeline"
	"github.com/sirupsen/logrus"
	"github.com/suzuki-shunsuke/logrus-error/logerr"
	"github.com/suzuki-shunsuke/urfave-cli-v3-util/urfave"
)

var (
	version = ""
	commit  = "" //nolint:gochecknoglobals
	date    = "" //nolint:gochecknoglobals
)

func main() {
	logE := log.New(version)
	if err := core(logE); err != nil {
		if errors.Is(err, aggregate.ErrIssuesFound) {
			os.Exit(1)
		}
		cfgErr := &pipeline.ConfigError{}
		if errors.As(err, &cfgErr) {
			logE = logE.WithField("remediation", cfgErr.Remediation)
		}
		logerr.WithError(logE, err).Fatal("clangrun failed")
	}
}

func core(logE *logrus.Entry) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return cli.Run(ctx, logE, &urfave.LDFlags{ //nolint:wrapcheck
		Version: version,
		Commit:  commit,
		Date:    date,
	}, os.Args...)
}
