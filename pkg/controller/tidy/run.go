package tidy

import (
	"context"
	"errors"
	"fmt"

	"github.com/clangrun/clangrun/pkg/aggregate"
	"github.com/clangrun/clangrun/pkg/command"
	"github.com/clangrun/clangrun/pkg/compdb"
	"github.com/clangrun/clangrun/pkg/pipeline"
	"github.com/clangrun/clangrun/pkg/runner"
	"github.com/sirupsen/logrus"
)

// Run returns aggregate.ErrIssuesFound if any file is flagged or couldn't be analyzed.
// Configuration errors are returned as *pipeline.ConfigError before any file is processed.
func (c *Controller) Run(ctx context.Context, logE *logrus.Entry) error {
	if c.param.Format != "" && c.param.Format != FormatText && c.param.Format != FormatSARIF {
		return fmt.Errorf("unsupported output format: %s", c.param.Format)
	}
	root, err := pipeline.ResolveRoot(c.fs, c.param.Root)
	if err != nil {
		return err //nolint:wrapcheck
	}
	tool, err := pipeline.ResolveTool(c.exe, ToolName, c.toolPath())
	if err != nil {
		return err //nolint:wrapcheck
	}
	logE = logE.WithField("tool", tool)
	if err := c.checkVersion(ctx, logE, tool); err != nil {
		return err
	}
	buildDir := pipeline.BuildDir(c.cfg, root, c.param.BuildDir)
	dbDir, err := c.prepareDatabase(logE, root, buildDir)
	if err != nil {
		return err
	}

	inspector := aggregate.NewInspector(&aggregate.InspectorParam{
		ExternalPatterns: c.cfg.ExternalPatterns,
		IssueMarkers:     c.cfg.Tidy.IssueMarkers,
		CleanMarkers:     c.cfg.Tidy.CleanMarkers,
	})
	r := runner.New(c.exe, &runner.TidyArgs{
		DatabaseDir: dbDir,
		Checks:      c.checks(),
		Fix:         c.param.Fix,
		ExtraArgs:   c.cfg.Tidy.ExtraArgs,
	}, inspector, &runner.Param{
		Tool:        tool,
		Dir:         root,
		Parallelism: c.param.Parallelism,
	})
	summary := pipeline.New(pipeline.NewLocator(c.fs, c.cfg, root, buildDir), r).Run(ctx, logE, root)

	if err := c.output(summary); err != nil {
		return err
	}
	return summary.Err() //nolint:wrapcheck
}

func (c *Controller) toolPath() string {
	if c.param.ToolPath != "" {
		return c.param.ToolPath
	}
	return c.cfg.Tidy.Path
}

func (c *Controller) checks() string {
	if c.param.Checks != "" {
		return c.param.Checks
	}
	return c.cfg.Tidy.Checks
}

func (c *Controller) checkVersion(ctx context.Context, logE *logrus.Entry, tool string) error {
	minVersion := c.cfg.Tidy.MinVersion
	v, err := command.CheckMinVersion(ctx, c.exe, tool, minVersion)
	if err != nil {
		return &pipeline.ConfigError{
			Err:         fmt.Errorf("check the clang-tidy version: %w", err),
			Remediation: fmt.Sprintf("install clang-tidy %s or later, or change tidy.min_version", minVersion),
		}
	}
	if v != nil {
		logE.WithField("tool_version", v.String()).Debug("checked the tool version")
	}
	return nil
}

func (c *Controller) prepareDatabase(logE *logrus.Entry, root, buildDir string) (string, error) {
	dbDir, err := compdb.NewFilter(c.fs, c.cfg.Tidy.UnsupportedFlags).Prepare(logE, buildDir)
	if err != nil {
		if errors.Is(err, compdb.ErrNotFound) {
			return "", &pipeline.ConfigError{
				Err: err,
				Remediation: fmt.Sprintf(
					"generate it with `cmake -S %s -B %s -DCMAKE_EXPORT_COMPILE_COMMANDS=ON`, or pass the build directory with --build-dir",
					root, buildDir),
			}
		}
		return "", fmt.Errorf("prepare the compilation database: %w", err)
	}
	return dbDir, nil
}

func (c *Controller) output(summary *aggregate.Summary) error {
	if c.param.Format == FormatSARIF {
		if err := c.outputSARIF(summary); err != nil {
			return err
		}
	} else {
		pipeline.NewPrinter(c.param.Stdout, c.param.Verbose).Print(ToolName, summary)
	}
	if c.param.OutputFile == "" {
		return nil
	}
	return pipeline.WriteReport(c.fs, c.param.OutputFile, ToolName, summary, c.param.Verbose) //nolint:wrapcheck
}
