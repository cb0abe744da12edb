package scaffold

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/tacogips/mkapp/internal/catalog"
	"github.com/tacogips/mkapp/internal/debug"
	mkerrors "github.com/tacogips/mkapp/internal/errors"
)

// Prompter asks questions interactively. Implementations return a
// Cancelled error when the user aborts.
type Prompter interface {
	Select(q Question) (string, error)
	Input(q Question) (string, error)
	Confirm(q Question) (bool, error)
}

// Resolver merges raw inputs with interactive answers.
type Resolver struct {
	catalog  *catalog.Catalog
	prompter Prompter
}

// NewResolver creates a Resolver over cat. prompter may be nil when the
// caller guarantees no question will be needed.
func NewResolver(cat *catalog.Catalog, prompter Prompter) *Resolver {
	return &Resolver{catalog: cat, prompter: prompter}
}

// Resolve resolves raw against the built-in catalog.
func Resolve(ctx context.Context, raw RawInputs, prompter Prompter) (ResolvedConfiguration, error) {
	return NewResolver(catalog.Default(), prompter).Resolve(ctx, raw)
}

// Resolve produces a validated configuration from raw, prompting only for
// what is missing.
func (r *Resolver) Resolve(ctx context.Context, raw RawInputs) (ResolvedConfiguration, error) {
	debug.DebugSection("Resolve configuration")

	var explicitVisibility Visibility
	if raw.Visibility != "" {
		v, err := ParseVisibility(raw.Visibility)
		if err != nil {
			return ResolvedConfiguration{}, mkerrors.NewValidationError(FieldVisibility, err.Error())
		}
		explicitVisibility = v
	}

	var answers WizardAnswers
	if NeedsWizard(raw) {
		debug.Debug("[resolve] interactive input required")
		a, err := r.ask(ctx, BuildQuestions(raw, r.catalog))
		if err != nil {
			return ResolvedConfiguration{}, err
		}
		answers = a
	}

	cfg := ResolvedConfiguration{
		TemplateKey:        firstNonBlank(raw.TemplateKey, answers.TemplateKey),
		AppName:            firstNonBlank(raw.AppName, answers.AppName),
		Owner:              firstNonBlank(raw.Owner, answers.Owner),
		SkipRemoteCreation: raw.SkipRemoteCreation,
		SkipInitializer:    raw.SkipInitializer,
		SkipConfirmation:   raw.SkipConfirmation,
	}

	switch {
	case raw.SkipRemoteCreation:
		cfg.IsOrganization = false
	case raw.IsOrganization != nil:
		cfg.IsOrganization = *raw.IsOrganization
	case answers.IsOrganization != nil:
		cfg.IsOrganization = *answers.IsOrganization
	}

	switch {
	case explicitVisibility != "":
		cfg.Visibility = explicitVisibility
	case answers.Visibility != "":
		cfg.Visibility = answers.Visibility
	default:
		cfg.Visibility = VisibilityPublic
	}

	if cfg.AppName == "" {
		return ResolvedConfiguration{}, mkerrors.NewValidationError(FieldAppName, "app name is required")
	}
	if !cfg.SkipRemoteCreation && cfg.Owner == "" {
		return ResolvedConfiguration{}, mkerrors.NewValidationError(FieldOwner,
			"owner is required unless --skip-github is set")
	}

	out := strings.TrimSpace(raw.OutputDirectory)
	if out == "" {
		out = "./" + cfg.AppName
	}
	abs, err := filepath.Abs(out)
	if err != nil {
		return ResolvedConfiguration{}, mkerrors.WrapValidationError("out", "cannot resolve output directory", err)
	}
	cfg.OutputDirectory = abs

	if cfg.TemplateKey == "" {
		return ResolvedConfiguration{}, mkerrors.NewValidationError(FieldTemplate, "template is required")
	}
	tmpl, err := r.catalog.Lookup(cfg.TemplateKey)
	if err != nil {
		return ResolvedConfiguration{}, mkerrors.WrapValidationError(FieldTemplate, "not in the catalog", err)
	}
	cfg.Template = tmpl

	debug.DebugJSON("resolved configuration", cfg)
	return cfg, nil
}

// ask collects answers for qs in order, stopping at the first error.
func (r *Resolver) ask(ctx context.Context, qs []Question) (WizardAnswers, error) {
	var a WizardAnswers
	if r.prompter == nil {
		return a, mkerrors.NewValidationError(qs[0].Field, "missing and no interactive prompt is available")
	}

	for _, q := range qs {
		if err := ctx.Err(); err != nil {
			return a, mkerrors.NewCancelledError("cancelled")
		}

		switch q.Kind {
		case KindSelect:
			v, err := r.prompter.Select(q)
			if err != nil {
				return a, err
			}
			switch q.Field {
			case FieldTemplate:
				a.TemplateKey = v
			case FieldVisibility:
				vis, err := ParseVisibility(v)
				if err != nil {
					return a, mkerrors.NewValidationError(FieldVisibility, err.Error())
				}
				a.Visibility = vis
			}
		case KindText:
			v, err := r.prompter.Input(q)
			if err != nil {
				return a, err
			}
			switch q.Field {
			case FieldAppName:
				a.AppName = v
			case FieldOwner:
				a.Owner = v
			}
		case KindConfirm:
			v, err := r.prompter.Confirm(q)
			if err != nil {
				return a, err
			}
			if q.Field == FieldOrganization {
				a.IsOrganization = &v
			}
		default:
			return a, fmt.Errorf("unsupported question kind %s", q.Kind)
		}
	}
	return a, nil
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if t := strings.TrimSpace(v); t != "" {
			return t
		}
	}
	return ""
}
