// Package runner invokes an external tool once per file with bounded parallelism.
package runner

import (
	"context"
	"runtime"
	"sync"

	"github.com/clangrun/clangrun/pkg/analysis"
	"github.com/clangrun/clangrun/pkg/command"
	"github.com/sirupsen/logrus"
	"github.com/suzuki-shunsuke/logrus-error/logerr"
	"golang.org/x/sync/errgroup"
)

const maxParallelism = 64

// Parallelism returns n clamped to [1, 64]. If n isn't positive, the number of CPUs is used.
func Parallelism(n int) int {
	if n <= 0 {
		n = runtime.NumCPU()
	}
	return min(max(n, 1), maxParallelism)
}

// ArgsBuilder builds the arguments for one file.
type ArgsBuilder interface {
	Args(file string) []string
}

// Inspector filters raw output and decides whether it contains issues.
type Inspector interface {
	Inspect(output string, exitCode int) (string, bool)
}

type Runner struct {
	exe         command.Executor
	tool        string
	dir         string
	args        ArgsBuilder
	inspector   Inspector
	parallelism int
}

type Param struct {
	// Tool is the resolved path of the executable.
	Tool string
	// Dir is the working directory of each invocation.
	Dir         string
	Parallelism int
}

func New(exe command.Executor, args ArgsBuilder, inspector Inspector, param *Param) *Runner {
	return &Runner{
		exe:         exe,
		tool:        param.Tool,
		dir:         param.Dir,
		args:        args,
		inspector:   inspector,
		parallelism: Parallelism(param.Parallelism),
	}
}

// Run analyzes every file and returns one result per file.
// A failure of one file never stops the others, and the order of results is unspecified.
func (r *Runner) Run(ctx context.Context, logE *logrus.Entry, files []*analysis.FileRecord) []*analysis.Result {
	results := make([]*analysis.Result, 0, len(files))
	var mu sync.Mutex
	eg := &errgroup.Group{}
	eg.SetLimit(r.parallelism)
	for _, file := range files {
		eg.Go(func() error {
			result := r.runFile(ctx, logE.WithField("file", file.Path), file)
			mu.Lock()
			results = append(results, result)
			mu.Unlock()
			return nil
		})
	}
	_ = eg.Wait()
	return results
}

func (r *Runner) runFile(ctx context.Context, logE *logrus.Entry, file *analysis.FileRecord) *analysis.Result {
	logE.Debug("run the tool")
	out, err := r.exe.Run(ctx, &command.Command{
		Path: r.tool,
		Args: r.args.Args(file.Path),
		Dir:  r.dir,
	})
	if err != nil {
		logerr.WithError(logE, err).Debug("the tool failed")
		result := &analysis.Result{
			Path: file.Path,
			Err:  err,
		}
		if out != nil {
			result.RawOutput = out.Combined
			result.ExitCode = out.ExitCode
		}
		return result
	}
	filtered, hasIssues := r.inspector.Inspect(out.Combined, out.ExitCode)
	return &analysis.Result{
		Path:           file.Path,
		Success:        true,
		HasIssues:      hasIssues,
		ExitCode:       out.ExitCode,
		FilteredOutput: filtered,
		RawOutput:      out.Combined,
	}
}
