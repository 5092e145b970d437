// Package command runs external tools such as clang-tidy and clang-format.
// The Executor interface lets tests replace real processes with fakes.
package command

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"
)

type Command struct {
	Path string
	Args []string
	Dir  string
}

// Output is the result of a process which ran to completion.
type Output struct {
	ExitCode int
	Combined string
}

type Executor interface {
	// Run executes the command and returns its combined stdout and stderr.
	// A non-zero exit status isn't an error. An error means the process
	// couldn't be started, was killed, or timed out.
	Run(ctx context.Context, cmd *Command) (*Output, error)
	LookPath(file string) (string, error)
}

const waitDelay = 5 * time.Second

type Exec struct {
	// Timeout is applied per invocation. Zero means no timeout.
	Timeout time.Duration
}

func NewExec(timeout time.Duration) *Exec {
	return &Exec{Timeout: timeout}
}

func (e *Exec) LookPath(file string) (string, error) {
	p, err := exec.LookPath(file)
	if err != nil {
		return "", fmt.Errorf("look up %s: %w", file, err)
	}
	return p, nil
}

func (e *Exec) Run(ctx context.Context, cmd *Command) (*Output, error) {
	if e.Timeout > 0 {
		c, cancel := context.WithTimeout(ctx, e.Timeout)
		defer cancel()
		ctx = c
	}
	c := exec.CommandContext(ctx, cmd.Path, cmd.Args...) //nolint:gosec
	c.Dir = cmd.Dir
	c.WaitDelay = waitDelay
	buf := &bytes.Buffer{}
	c.Stdout = buf
	c.Stderr = buf
	err := c.Run()
	out := &Output{
		Combined: buf.String(),
	}
	if err == nil {
		return out, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return out, fmt.Errorf("run %s: %w", cmd.Path, ctxErr)
	}
	exitErr := &exec.ExitError{}
	if errors.As(err, &exitErr) {
		if exitErr.ExitCode() < 0 {
			// killed by a signal, e.g. the tool crashed
			return out, fmt.Errorf("run %s: %w", cmd.Path, err)
		}
		out.ExitCode = exitErr.ExitCode()
		return out, nil
	}
	return out, fmt.Errorf("start %s: %w", cmd.Path, err)
}
