package app

import (
	"context"
	"io"

	"github.com/tacogips/mkapp/internal/catalog"
	"github.com/tacogips/mkapp/internal/config"
	"github.com/tacogips/mkapp/internal/debug"
	"github.com/tacogips/mkapp/internal/exec"
	"github.com/tacogips/mkapp/internal/fsutil"
	"github.com/tacogips/mkapp/internal/git"
	"github.com/tacogips/mkapp/internal/github"
	"github.com/tacogips/mkapp/internal/initializer"
	"github.com/tacogips/mkapp/internal/pipeline"
	"github.com/tacogips/mkapp/internal/scaffold"
	"github.com/tacogips/mkapp/internal/template/provider"
)

// CreateOptions holds options for the create workflow.
type CreateOptions struct {
	// Raw is what the user passed on the command line.
	Raw scaffold.RawInputs
	// Prompter asks for missing inputs and the final confirmation.
	Prompter scaffold.Prompter
	// Catalog defaults to the built-in catalog.
	Catalog *catalog.Catalog
	// Config defaults to config.DefaultConfig().
	Config *config.Config
	// Runner defaults to exec.NewRealRunner().
	Runner exec.CommandRunner
	// Stdout and Stderr receive initializer output.
	Stdout io.Writer
	Stderr io.Writer
	// Observer is notified of step progress.
	Observer pipeline.Observer
	// Deps, when set, replaces the collaborators built from Config.
	Deps *pipeline.Deps
}

// CreateResult holds the outcome of the create workflow.
type CreateResult struct {
	Config scaffold.ResolvedConfiguration
	Report *pipeline.Report
}

// Create resolves the configuration, asks for confirmation and runs the
// pipeline. Nothing is written before the confirmation succeeds.
//
// The result is non-nil whenever resolution succeeded, so callers can report
// partial progress after a step failure.
func Create(ctx context.Context, opts CreateOptions) (*CreateResult, error) {
	debug.DebugSection("[app] Create workflow start")

	cat := opts.Catalog
	if cat == nil {
		cat = catalog.Default()
	}

	cfg, err := scaffold.NewResolver(cat, opts.Prompter).Resolve(ctx, opts.Raw)
	if err != nil {
		return nil, err
	}
	result := &CreateResult{Config: cfg}

	if err := scaffold.Confirm(cfg, opts.Prompter); err != nil {
		return result, err
	}

	deps := NewDeps(opts)
	report, err := pipeline.New(deps).Run(ctx, cfg)
	result.Report = report

	debug.DebugValue("[app] Run ID", report.RunID)
	return result, err
}

// NewDeps builds the production collaborators for the pipeline.
func NewDeps(opts CreateOptions) pipeline.Deps {
	if opts.Deps != nil {
		deps := *opts.Deps
		if deps.Observer == nil {
			deps.Observer = opts.Observer
		}
		return deps
	}

	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	runner := opts.Runner
	if runner == nil {
		runner = exec.NewRealRunner()
	}

	return pipeline.Deps{
		Preparer:    fsutil.Preparer{},
		Fetcher:     provider.NewGitHubProvider(cfg.GitHub.APIURL, cfg.GitHub.Timeout),
		Initializer: initializer.NewRunner(runner, opts.Stdout, opts.Stderr),
		VCS:         git.NewDriver(runner, cfg.Git.DefaultBranch, cfg.Git.CommitMessage),
		Host:        github.NewClient(cfg.GitHub.APIURL, cfg.GitHub.Timeout),
		Tokens:      github.NewTokenSource(runner),
		Observer:    opts.Observer,
	}
}
