package scaffold

import (
	"fmt"
	"strings"

	"github.com/tacogips/mkapp/internal/catalog"
)

// Kind is the kind of interactive question.
type Kind int

const (
	KindSelect Kind = iota
	KindText
	KindConfirm
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindSelect:
		return "select"
	case KindText:
		return "text"
	case KindConfirm:
		return "confirm"
	default:
		return "unknown"
	}
}

// Option is one choice of a select question.
type Option struct {
	Value string
	Label string
}

// Question describes a single prompt independently of how it is rendered.
type Question struct {
	Field   string
	Kind    Kind
	Message string
	// Detail is optional multi-line context shown before the prompt.
	Detail string
	// Options lists the choices of a select question.
	Options []Option
	// Default is the pre-selected value for select and text questions.
	Default string
	// DefaultBool is the default answer of a confirm question.
	DefaultBool bool
	// Validate, when set, rejects text answers.
	Validate func(string) error
}

// RequireNonBlank rejects empty or whitespace-only answers.
func RequireNonBlank(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("value is required")
	}
	return nil
}

// NeedsWizard reports whether interactive input is required: the template
// key or application name is missing, or the owner is required and missing.
func NeedsWizard(raw RawInputs) bool {
	return strings.TrimSpace(raw.TemplateKey) == "" ||
		strings.TrimSpace(raw.AppName) == "" ||
		(raw.ownerRequired() && strings.TrimSpace(raw.Owner) == "")
}

// BuildQuestions returns the minimal ordered question set for raw.
//
// Template, application name and owner are asked only when absent; owner and
// organization only when the remote repository will be created. Visibility
// is always asked, pre-selecting the explicit value when one was given.
// Questions whose value is already fixed by a flag say so in their message,
// since the explicit value wins over the answer.
func BuildQuestions(raw RawInputs, cat *catalog.Catalog) []Question {
	var qs []Question

	if strings.TrimSpace(raw.TemplateKey) == "" {
		opts := make([]Option, 0, len(cat.Keys()))
		for _, t := range cat.All() {
			opts = append(opts, Option{Value: t.Key, Label: fmt.Sprintf("%s (%s)", t.Key, t.Repo)})
		}
		qs = append(qs, Question{
			Field:   FieldTemplate,
			Kind:    KindSelect,
			Message: "Template:",
			Options: opts,
		})
	}

	if strings.TrimSpace(raw.AppName) == "" {
		qs = append(qs, Question{
			Field:    FieldAppName,
			Kind:     KindText,
			Message:  "App name:",
			Validate: RequireNonBlank,
		})
	}

	if raw.ownerRequired() {
		if strings.TrimSpace(raw.Owner) == "" {
			qs = append(qs, Question{
				Field:    FieldOwner,
				Kind:     KindText,
				Message:  "GitHub owner (user or org):",
				Validate: RequireNonBlank,
			})
		}

		isOrg := false
		msg := "Is the owner an organization?"
		if raw.IsOrganization != nil {
			isOrg = *raw.IsOrganization
			answer := "no"
			if isOrg {
				answer = "yes"
			}
			msg += fixedByFlag(answer)
		}
		qs = append(qs, Question{
			Field:       FieldOrganization,
			Kind:        KindConfirm,
			Message:     msg,
			DefaultBool: isOrg,
		})
	}

	visibility := string(VisibilityPublic)
	msg := "Repository visibility:"
	if _, err := ParseVisibility(raw.Visibility); err == nil {
		visibility = raw.Visibility
		msg = "Repository visibility" + fixedByFlag(raw.Visibility) + ":"
	}
	opts := make([]Option, 0, len(Visibilities()))
	for _, v := range Visibilities() {
		opts = append(opts, Option{Value: string(v), Label: string(v)})
	}
	qs = append(qs, Question{
		Field:   FieldVisibility,
		Kind:    KindSelect,
		Message: msg,
		Options: opts,
		Default: visibility,
	})

	return qs
}

// fixedByFlag annotates a question whose answer an explicit flag overrides.
func fixedByFlag(value string) string {
	return fmt.Sprintf(" (set to %s by flag; this answer is ignored)", value)
}
