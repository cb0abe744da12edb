// Package initializer runs the technology-specific setup script shipped with
// each template after it has been fetched.
package initializer

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/tacogips/mkapp/internal/catalog"
	"github.com/tacogips/mkapp/internal/debug"
	mkerrors "github.com/tacogips/mkapp/internal/errors"
	"github.com/tacogips/mkapp/internal/exec"
)

// Request carries what an initializer needs about the new project.
type Request struct {
	Tech    catalog.Tech
	AppName string
	// Dir is the directory the template was fetched into.
	Dir string
	// Owner is the GitHub owner. Go templates need it for the module path.
	Owner string
}

// Command is a single process invocation.
type Command struct {
	Name string
	Args []string
}

func (c Command) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// Plan is the ordered list of commands for one technology.
type Plan interface {
	Commands() []Command
	plan()
}

// NPMPlan installs dependencies and runs the template's init-template script.
type NPMPlan struct {
	AppName string
}

func (p NPMPlan) Commands() []Command {
	return []Command{
		{Name: "npm", Args: []string{"install"}},
		{Name: "npm", Args: []string{"run", "init-template", p.AppName}},
	}
}

func (NPMPlan) plan() {}

// GoModulePlan rewrites the template's module path via its init script.
type GoModulePlan struct {
	ModulePath string
}

func (p GoModulePlan) Commands() []Command {
	return []Command{
		{Name: "go", Args: []string{"run", "scripts/init-template.go", p.ModulePath}},
	}
}

func (GoModulePlan) plan() {}

// PlanFor selects the plan for req.Tech. It fails with a precondition error
// when the technology has no initializer or a required input is missing.
func PlanFor(req Request) (Plan, error) {
	switch req.Tech {
	case catalog.TechNode, catalog.TechReact, catalog.TechTypeScript:
		return NPMPlan{AppName: req.AppName}, nil
	case catalog.TechGo:
		owner := strings.TrimSpace(req.Owner)
		if owner == "" {
			return nil, mkerrors.NewPreconditionError(
				"go templates require --owner (GitHub owner) to build the module path", nil)
		}
		return GoModulePlan{ModulePath: fmt.Sprintf("github.com/%s/%s", owner, req.AppName)}, nil
	case catalog.TechKotlin, catalog.TechJava:
		return nil, mkerrors.NewPreconditionError(
			fmt.Sprintf("template tech '%s' is not implemented yet (use --skip-init)", req.Tech), nil)
	default:
		return nil, mkerrors.NewPreconditionError(
			fmt.Sprintf("unsupported template tech: %s", req.Tech), nil)
	}
}

// Runner executes initializer plans.
type Runner struct {
	cmd    exec.CommandRunner
	stdout io.Writer
	stderr io.Writer
}

// NewRunner creates a Runner. Command output is streamed to stdout and
// stderr as it is produced; either may be nil.
func NewRunner(cmd exec.CommandRunner, stdout, stderr io.Writer) *Runner {
	return &Runner{cmd: cmd, stdout: stdout, stderr: stderr}
}

// Run plans and executes the initializer for req, stopping at the first
// failing command.
func (r *Runner) Run(ctx context.Context, req Request) error {
	plan, err := PlanFor(req)
	if err != nil {
		return err
	}

	for _, c := range plan.Commands() {
		debug.Debug("[initializer] %s (in %s)", c, req.Dir)

		res, err := r.cmd.Run(ctx, c.Name, c.Args, exec.RunOpts{
			Dir:    req.Dir,
			Stdout: r.stdout,
			Stderr: r.stderr,
		})
		if err != nil {
			return mkerrors.NewExternalToolError(fmt.Sprintf("failed to run %s", c), err)
		}
		if res.ExitCode != 0 {
			var cause error
			if tail := exec.Tail(res.Stderr, 10); tail != "" {
				cause = fmt.Errorf("%s", tail)
			}
			return mkerrors.NewExternalToolError(
				fmt.Sprintf("%s exited with code %d", c, res.ExitCode), cause)
		}
	}
	return nil
}
