// Package pipeline runs the side-effecting steps that turn a resolved
// configuration into a project on disk and, optionally, on GitHub.
// Steps execute in a fixed order and the first failure stops the run.
// Nothing is rolled back.
package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/tacogips/mkapp/internal/debug"
	mkerrors "github.com/tacogips/mkapp/internal/errors"
	"github.com/tacogips/mkapp/internal/github"
	"github.com/tacogips/mkapp/internal/initializer"
	"github.com/tacogips/mkapp/internal/scaffold"
)

// DirectoryPreparer makes sure the output directory exists and is empty.
type DirectoryPreparer interface {
	Prepare(dir string) error
}

// TemplateFetcher writes a template's files into a directory.
type TemplateFetcher interface {
	Fetch(ctx context.Context, source string, dest string) error
}

// Initializer runs the technology-specific setup of a fetched template.
type Initializer interface {
	Run(ctx context.Context, req initializer.Request) error
}

// VCS creates the local repository and publishes it.
type VCS interface {
	InitAndCommit(ctx context.Context, dir string) error
	AddRemoteAndPush(ctx context.Context, dir, cloneURL, token string) error
}

// RepositoryHost creates the remote repository.
type RepositoryHost interface {
	CreateRepository(ctx context.Context, token string, req github.CreateRepoRequest) (*github.Repository, error)
}

// TokenSource provides the credential for the remote steps.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Observer is notified at step boundaries. Used by the CLI for progress.
type Observer interface {
	StepStarted(name StepName)
	StepFinished(result StepResult)
}

// Deps are the collaborators a pipeline drives.
type Deps struct {
	Preparer    DirectoryPreparer
	Fetcher     TemplateFetcher
	Initializer Initializer
	VCS         VCS
	Host        RepositoryHost
	Tokens      TokenSource
	// Observer is optional.
	Observer Observer
}

// StepName identifies a pipeline step.
type StepName string

// Step names, in execution order.
const (
	StepPrepareOutputDirectory StepName = "prepare-output-directory"
	StepFetchTemplate          StepName = "fetch-template"
	StepRunInitializer         StepName = "run-initializer"
	StepInitAndCommit          StepName = "version-control-init-and-commit"
	StepCreateRemote           StepName = "create-remote-repository"
	StepAddRemoteAndPush       StepName = "add-remote-and-push"
)

// Steps returns every step name in execution order.
func Steps() []StepName {
	return []StepName{
		StepPrepareOutputDirectory,
		StepFetchTemplate,
		StepRunInitializer,
		StepInitAndCommit,
		StepCreateRemote,
		StepAddRemoteAndPush,
	}
}

// Outcome is the result of a single step.
type Outcome string

const (
	OutcomeSucceeded Outcome = "succeeded"
	OutcomeFailed    Outcome = "failed"
	OutcomeSkipped   Outcome = "skipped"
)

// StepResult records what happened to one step.
type StepResult struct {
	Name     StepName
	Outcome  Outcome
	Err      error
	Duration time.Duration
}

// Report is the outcome of a run.
type Report struct {
	RunID           string
	OutputDirectory string
	Steps           []StepResult
	// Repository is set once the remote repository has been created, even
	// if a later step failed.
	Repository *github.Repository
	// Warnings are non-fatal conditions worth telling the user about.
	Warnings []string
}

// Succeeded reports whether every step succeeded or was skipped.
func (r *Report) Succeeded() bool {
	if len(r.Steps) != len(Steps()) {
		return false
	}
	for _, s := range r.Steps {
		if s.Outcome == OutcomeFailed {
			return false
		}
	}
	return true
}

// Step returns the result for name, if the step was reached.
func (r *Report) Step(name StepName) (StepResult, bool) {
	for _, s := range r.Steps {
		if s.Name == name {
			return s, true
		}
	}
	return StepResult{}, false
}

// StepError is returned when a step fails. Err keeps its error kind.
type StepError struct {
	Step StepName
	Err  error
}

// Error implements the error interface.
func (e *StepError) Error() string {
	return fmt.Sprintf("step %s failed: %v", e.Step, e.Err)
}

// Unwrap returns the underlying error.
func (e *StepError) Unwrap() error {
	return e.Err
}

// step binds a name to its skip predicate and body.
type step struct {
	name StepName
	skip func() bool
	run  func(ctx context.Context) error
}

// Pipeline executes the steps for one configuration.
type Pipeline struct {
	deps    Deps
	nowFunc func() time.Time
	newID   func() string
}

// New creates a pipeline over deps.
func New(deps Deps) *Pipeline {
	return &Pipeline{
		deps:    deps,
		nowFunc: time.Now,
		newID:   func() string { return uuid.NewString() },
	}
}

// SetNowFunc overrides the time source for testing.
func (p *Pipeline) SetNowFunc(fn func() time.Time) {
	p.nowFunc = fn
}

// Run executes the steps in order:
//  1. prepare output directory
//  2. fetch template
//  3. run initializer (unless SkipInitializer)
//  4. git init and first commit
//  5. create remote repository (unless SkipRemoteCreation)
//  6. add remote and push (only when step 5 ran)
//
// The report is returned even on failure. The error is a *StepError.
func (p *Pipeline) Run(ctx context.Context, cfg scaffold.ResolvedConfiguration) (*Report, error) {
	report := &Report{
		RunID:           p.newID(),
		OutputDirectory: cfg.OutputDirectory,
	}
	log := debug.WithFields(logrus.Fields{"run_id": report.RunID})
	log.Debugf("pipeline started for %s (template %s)", cfg.AppName, cfg.TemplateKey)

	for _, s := range p.steps(cfg, report) {
		if s.skip != nil && s.skip() {
			result := StepResult{Name: s.name, Outcome: OutcomeSkipped}
			report.Steps = append(report.Steps, result)
			log.WithFields(logrus.Fields{"step": s.name, "outcome": result.Outcome}).Debug("step finished")
			p.finished(result)
			continue
		}

		if p.deps.Observer != nil {
			p.deps.Observer.StepStarted(s.name)
		}

		start := p.nowFunc()
		err := s.run(ctx)
		result := StepResult{Name: s.name, Outcome: OutcomeSucceeded, Duration: p.nowFunc().Sub(start)}
		if err != nil {
			result.Outcome = OutcomeFailed
			result.Err = classify(err)
		}
		report.Steps = append(report.Steps, result)

		log.WithFields(logrus.Fields{
			"step":     s.name,
			"outcome":  result.Outcome,
			"duration": result.Duration.Round(time.Millisecond),
		}).Debug("step finished")
		p.finished(result)

		if err != nil {
			if report.Repository != nil && s.name == StepAddRemoteAndPush {
				report.Warnings = append(report.Warnings, fmt.Sprintf(
					"remote repository %s was created but the push failed; it has been left in place",
					report.Repository.HTMLURL))
			}
			return report, &StepError{Step: s.name, Err: result.Err}
		}
	}

	return report, nil
}

func (p *Pipeline) finished(result StepResult) {
	if p.deps.Observer != nil {
		p.deps.Observer.StepFinished(result)
	}
}

func (p *Pipeline) steps(cfg scaffold.ResolvedConfiguration, report *Report) []step {
	dir := cfg.OutputDirectory

	return []step{
		{
			name: StepPrepareOutputDirectory,
			run: func(ctx context.Context) error {
				return p.deps.Preparer.Prepare(dir)
			},
		},
		{
			name: StepFetchTemplate,
			run: func(ctx context.Context) error {
				return p.deps.Fetcher.Fetch(ctx, cfg.Template.Source(), dir)
			},
		},
		{
			name: StepRunInitializer,
			skip: func() bool { return cfg.SkipInitializer },
			run: func(ctx context.Context) error {
				return p.deps.Initializer.Run(ctx, initializer.Request{
					Tech:    cfg.Template.Tech,
					AppName: cfg.AppName,
					Dir:     dir,
					Owner:   cfg.Owner,
				})
			},
		},
		{
			name: StepInitAndCommit,
			run: func(ctx context.Context) error {
				return p.deps.VCS.InitAndCommit(ctx, dir)
			},
		},
		{
			name: StepCreateRemote,
			skip: func() bool { return cfg.SkipRemoteCreation },
			run: func(ctx context.Context) error {
				if strings.TrimSpace(cfg.Owner) == "" {
					return mkerrors.NewPreconditionError("owner is required to create the remote repository", nil)
				}
				token, err := p.deps.Tokens.Token(ctx)
				if err != nil {
					return err
				}
				repo, err := p.deps.Host.CreateRepository(ctx, token, github.CreateRepoRequest{
					Owner:       cfg.Owner,
					Name:        cfg.AppName,
					IsOrg:       cfg.IsOrganization,
					Private:     cfg.Visibility.Private(),
					Description: cfg.RepoDescription(),
				})
				if err != nil {
					return err
				}
				report.Repository = repo
				if !cfg.IsOrganization && repo.OwnerLogin != "" && !strings.EqualFold(repo.OwnerLogin, cfg.Owner) {
					report.Warnings = append(report.Warnings, fmt.Sprintf(
						"repository was created under the authenticated user '%s', not '%s' (use --org for organizations)",
						repo.OwnerLogin, cfg.Owner))
				}
				return nil
			},
		},
		{
			name: StepAddRemoteAndPush,
			skip: func() bool { return cfg.SkipRemoteCreation || report.Repository == nil },
			run: func(ctx context.Context) error {
				token, err := p.deps.Tokens.Token(ctx)
				if err != nil {
					return err
				}
				return p.deps.VCS.AddRemoteAndPush(ctx, dir, report.Repository.CloneURL, token)
			},
		},
	}
}

// classify leaves taxonomy errors untouched and treats anything else as an
// external tool failure.
func classify(err error) error {
	if mkerrors.KindOf(err) != mkerrors.Unknown {
		return err
	}
	return mkerrors.NewExternalToolError("step failed", err)
}
