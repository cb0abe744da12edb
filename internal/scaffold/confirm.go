package scaffold

import (
	"fmt"
	"strings"

	mkerrors "github.com/tacogips/mkapp/internal/errors"
)

// Summary describes the pending action in plain text.
func Summary(cfg ResolvedConfiguration) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Create app '%s' from template '%s' into:\n  %s\n\n", cfg.AppName, cfg.TemplateKey, cfg.OutputDirectory)
	if cfg.SkipRemoteCreation {
		b.WriteString("GitHub: skipped")
	} else {
		fmt.Fprintf(&b, "GitHub:\n  owner=%s (%s)\n  visibility=%s", cfg.Owner, cfg.OwnerKind(), cfg.Visibility)
	}
	if cfg.SkipInitializer {
		b.WriteString("\nInitializer: skipped")
	}
	return b.String()
}

// Confirm asks the user to approve cfg. It returns nil when approved or when
// SkipConfirmation is set, and a Cancelled error otherwise. No mutation may
// happen unless Confirm returned nil.
func Confirm(cfg ResolvedConfiguration, p Prompter) error {
	if cfg.SkipConfirmation {
		return nil
	}
	if p == nil {
		return mkerrors.NewValidationError(FieldConfirm, "confirmation required (use --yes)")
	}

	ok, err := p.Confirm(Question{
		Field:       FieldConfirm,
		Kind:        KindConfirm,
		Message:     "Proceed?",
		Detail:      Summary(cfg),
		DefaultBool: true,
	})
	if err != nil {
		return err
	}
	if !ok {
		return mkerrors.NewCancelledError("aborted by user")
	}
	return nil
}
