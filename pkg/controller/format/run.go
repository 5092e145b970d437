package format

import (
	"context"
	"fmt"

	"github.com/clangrun/clangrun/pkg/aggregate"
	"github.com/clangrun/clangrun/pkg/command"
	"github.com/clangrun/clangrun/pkg/pipeline"
	"github.com/clangrun/clangrun/pkg/runner"
	"github.com/sirupsen/logrus"
)

// clang-format --dry-run --Werror reports every unformatted region with this warning flag.
var issueMarkers = []string{"[-Wclang-format-violations]"}

// Run checks or fixes the formatting of every source file under the root directory.
// It returns aggregate.ErrIssuesFound if any file needs formatting or couldn't be processed.
func (c *Controller) Run(ctx context.Context, logE *logrus.Entry) error {
	if c.param.Check && c.param.Fix {
		return ErrModeConflict
	}
	root, err := pipeline.ResolveRoot(c.fs, c.param.Root)
	if err != nil {
		return err //nolint:wrapcheck
	}
	tool, err := pipeline.ResolveTool(c.exe, ToolName, c.toolPath())
	if err != nil {
		return err //nolint:wrapcheck
	}
	logE = logE.WithFields(logrus.Fields{
		"tool": tool,
		"fix":  c.param.Fix,
	})
	if err := c.checkVersion(ctx, logE, tool); err != nil {
		return err
	}
	style := c.style()
	if style == styleFile {
		if err := c.validateStyleFile(logE, root); err != nil {
			return err
		}
	}

	inspector := aggregate.NewInspector(&aggregate.InspectorParam{
		ExternalPatterns:  c.cfg.ExternalPatterns,
		IssueMarkers:      issueMarkers,
		FlagOnNonZeroExit: true,
	})
	r := runner.New(c.exe, &runner.FormatArgs{
		Style: style,
		Fix:   c.param.Fix,
	}, inspector, &runner.Param{
		Tool:        tool,
		Dir:         root,
		Parallelism: c.param.Parallelism,
	})
	summary := pipeline.New(pipeline.NewLocator(c.fs, c.cfg, root, pipeline.BuildDir(c.cfg, root, "")), r).Run(ctx, logE, root)

	pipeline.NewPrinter(c.param.Stdout, c.param.Verbose).Print(ToolName, summary)
	if c.param.OutputFile != "" {
		if err := pipeline.WriteReport(c.fs, c.param.OutputFile, ToolName, summary, c.param.Verbose); err != nil {
			return err //nolint:wrapcheck
		}
	}
	return summary.Err() //nolint:wrapcheck
}

func (c *Controller) toolPath() string {
	if c.param.ToolPath != "" {
		return c.param.ToolPath
	}
	return c.cfg.Format.Path
}

func (c *Controller) style() string {
	if c.param.Style != "" {
		return c.param.Style
	}
	return c.cfg.Format.Style
}

func (c *Controller) checkVersion(ctx context.Context, logE *logrus.Entry, tool string) error {
	minVersion := c.cfg.Format.MinVersion
	v, err := command.CheckMinVersion(ctx, c.exe, tool, minVersion)
	if err != nil {
		return &pipeline.ConfigError{
			Err:         fmt.Errorf("check the clang-format version: %w", err),
			Remediation: fmt.Sprintf("install clang-format %s or later, or change format.min_version", minVersion),
		}
	}
	if v != nil {
		logE.WithField("tool_version", v.String()).Debug("checked the tool version")
	}
	return nil
}
