// Package exectest provides a scripted CommandRunner for tests.
package exectest

import (
	"context"
	"strings"
	"sync"

	"github.com/tacogips/mkapp/internal/exec"
)

// Call records a single invocation.
type Call struct {
	Name string
	Args []string
	Opts exec.RunOpts
}

// Line returns the call as a single space-joined command line.
func (c Call) Line() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// Response is the scripted outcome for a command line prefix.
type Response struct {
	Result exec.CmdResult
	Err    error
}

// FakeRunner records calls and replies with scripted responses. Commands
// without a matching script succeed with empty output.
type FakeRunner struct {
	mu        sync.Mutex
	Calls     []Call
	responses []scripted
}

type scripted struct {
	prefix string
	resp   Response
}

// On scripts the response for any command line starting with prefix.
// Later scripts take precedence over earlier ones.
func (f *FakeRunner) On(prefix string, resp Response) *FakeRunner {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses = append(f.responses, scripted{prefix: prefix, resp: resp})
	return f
}

// Run implements exec.CommandRunner.
func (f *FakeRunner) Run(_ context.Context, name string, args []string, opts exec.RunOpts) (exec.CmdResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	call := Call{Name: name, Args: append([]string(nil), args...), Opts: opts}
	f.Calls = append(f.Calls, call)

	line := call.Line()
	for i := len(f.responses) - 1; i >= 0; i-- {
		if strings.HasPrefix(line, f.responses[i].prefix) {
			return f.responses[i].resp.Result, f.responses[i].resp.Err
		}
	}
	return exec.CmdResult{}, nil
}

// Lines returns every recorded call as a command line.
func (f *FakeRunner) Lines() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	lines := make([]string, len(f.Calls))
	for i, c := range f.Calls {
		lines[i] = c.Line()
	}
	return lines
}
