// Package commandtest provides a fake command.Executor for tests.
package commandtest

import (
	"context"
	"errors"
	"sync"

	"github.com/clangrun/clangrun/pkg/command"
)

var ErrNotFound = errors.New("executable file not found in $PATH")

type Handler func(ctx context.Context, cmd *command.Command) (*command.Output, error)

// Executor records every command and delegates to Handler.
// LookPath resolves names through Paths.
type Executor struct {
	Paths   map[string]string
	Handler Handler

	mu    sync.Mutex
	calls []*command.Command
}

func (e *Executor) LookPath(file string) (string, error) {
	if p, ok := e.Paths[file]; ok {
		return p, nil
	}
	return "", ErrNotFound
}

func (e *Executor) Run(ctx context.Context, cmd *command.Command) (*command.Output, error) {
	e.mu.Lock()
	e.calls = append(e.calls, cmd)
	e.mu.Unlock()
	if e.Handler == nil {
		return &command.Output{}, nil
	}
	return e.Handler(ctx, cmd)
}

// Calls returns a copy of the recorded commands.
func (e *Executor) Calls() []*command.Command {
	e.mu.Lock()
	defer e.mu.Unlock()
	ret := make([]*command.Command, len(e.calls))
	copy(ret, e.calls)
	return ret
}
