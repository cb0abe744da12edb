// Package scaffold turns command-line inputs and interactive answers into a
// single validated configuration, and asks the user to approve it before
// anything is written.
package scaffold

import (
	"fmt"
	"strings"

	"github.com/tacogips/mkapp/internal/catalog"
)

// Visibility is the visibility of the remote repository.
type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

// Visibilities returns the accepted visibility values.
func Visibilities() []Visibility {
	return []Visibility{VisibilityPublic, VisibilityPrivate}
}

// ParseVisibility accepts exactly "public" or "private".
func ParseVisibility(s string) (Visibility, error) {
	switch Visibility(s) {
	case VisibilityPublic, VisibilityPrivate:
		return Visibility(s), nil
	default:
		return "", fmt.Errorf("must be 'public' or 'private', got '%s'", s)
	}
}

// Private reports whether the repository should be private.
func (v Visibility) Private() bool {
	return v == VisibilityPrivate
}

// Field names used in questions and validation errors.
const (
	FieldTemplate     = "template"
	FieldAppName      = "appName"
	FieldOwner        = "owner"
	FieldOrganization = "organization"
	FieldVisibility   = "visibility"
	FieldConfirm      = "confirm"
)

// RawInputs holds what the user supplied on the command line. Empty strings
// and nil pointers mean "not given". Nothing here is validated.
type RawInputs struct {
	TemplateKey     string
	AppName         string
	Owner           string
	IsOrganization  *bool
	Visibility      string
	OutputDirectory string

	SkipRemoteCreation bool
	SkipInitializer    bool
	SkipConfirmation   bool
}

func (r RawInputs) ownerRequired() bool {
	return !r.SkipRemoteCreation
}

// WizardAnswers holds the answers collected interactively. A field is only
// populated when the matching question was asked.
type WizardAnswers struct {
	TemplateKey    string
	AppName        string
	Owner          string
	IsOrganization *bool
	Visibility     Visibility
}

// ResolvedConfiguration is the validated configuration the pipeline runs
// with. It is produced only by Resolve.
type ResolvedConfiguration struct {
	Template        catalog.Template
	TemplateKey     string
	AppName         string
	OutputDirectory string
	Owner           string
	IsOrganization  bool
	Visibility      Visibility

	SkipRemoteCreation bool
	SkipInitializer    bool
	SkipConfirmation   bool
}

// OwnerKind returns "org" or "user" for display.
func (c ResolvedConfiguration) OwnerKind() string {
	if c.IsOrganization {
		return "org"
	}
	return "user"
}

// RepoDescription is the description given to the remote repository.
func (c ResolvedConfiguration) RepoDescription() string {
	if d := strings.TrimSpace(c.Template.Description); d != "" {
		return d
	}
	return "Created from template " + c.Template.Repo
}
