// Package pipeline wires the locator, the runner and the aggregator together.
// Both clang-tidy and clang-format go through the same pipeline:
// locate source files, run the tool per file, then classify the results.
package pipeline

import (
	"context"

	"github.com/clangrun/clangrun/pkg/aggregate"
	"github.com/clangrun/clangrun/pkg/analysis"
	"github.com/sirupsen/logrus"
)

type Locator interface {
	Locate(logE *logrus.Entry, root string) []*analysis.FileRecord
}

type Runner interface {
	Run(ctx context.Context, logE *logrus.Entry, files []*analysis.FileRecord) []*analysis.Result
}

type Pipeline struct {
	locator Locator
	runner  Runner
}

func New(locator Locator, runner Runner) *Pipeline {
	return &Pipeline{
		locator: locator,
		runner:  runner,
	}
}

// Run processes every file under root. It always runs to completion;
// per-file failures are reported in the summary instead of being returned.
func (p *Pipeline) Run(ctx context.Context, logE *logrus.Entry, root string) *aggregate.Summary {
	files := p.locator.Locate(logE, root)
	logE.WithField("files", len(files)).Info("found source files")
	if len(files) == 0 {
		return aggregate.Aggregate(nil)
	}
	results := p.runner.Run(ctx, logE, files)
	summary := aggregate.Aggregate(results)
	logE.WithFields(logrus.Fields{
		"clean":   len(summary.Clean),
		"flagged": len(summary.Flagged),
		"failed":  len(summary.Failed),
	}).Debug("aggregated results")
	return summary
}
