package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"golang.org/x/term"

	mkerrors "github.com/tacogips/mkapp/internal/errors"
	"github.com/tacogips/mkapp/internal/scaffold"
)

// SurveyPrompter asks scaffold questions on the terminal.
type SurveyPrompter struct {
	out        io.Writer
	isTerminal func() bool
	askOne     func(p survey.Prompt, response interface{}, opts ...survey.AskOpt) error
}

// NewSurveyPrompter creates a prompter reading from stdin. Question details
// (the confirmation summary) are written to out.
func NewSurveyPrompter(out io.Writer) *SurveyPrompter {
	return &SurveyPrompter{
		out:        out,
		isTerminal: func() bool { return term.IsTerminal(int(os.Stdin.Fd())) },
		askOne:     survey.AskOne,
	}
}

// Select implements scaffold.Prompter.
func (p *SurveyPrompter) Select(q scaffold.Question) (string, error) {
	if err := p.ready(q); err != nil {
		return "", err
	}

	labels := make([]string, len(q.Options))
	var def interface{}
	for i, o := range q.Options {
		labels[i] = o.Label
		if o.Value == q.Default {
			def = o.Label
		}
	}

	prompt := &survey.Select{
		Message: q.Message,
		Options: labels,
	}
	if def != nil {
		prompt.Default = def
	}

	var idx int
	if err := p.askOne(prompt, &idx); err != nil {
		return "", mapPromptError(q, err)
	}
	if idx < 0 || idx >= len(q.Options) {
		return "", mkerrors.NewValidationError(q.Field, "no option selected")
	}
	return q.Options[idx].Value, nil
}

// Input implements scaffold.Prompter.
func (p *SurveyPrompter) Input(q scaffold.Question) (string, error) {
	if err := p.ready(q); err != nil {
		return "", err
	}

	prompt := &survey.Input{
		Message: q.Message,
		Default: q.Default,
	}

	var opts []survey.AskOpt
	if q.Validate != nil {
		validate := q.Validate
		opts = append(opts, survey.WithValidator(func(ans interface{}) error {
			s, ok := ans.(string)
			if !ok {
				return fmt.Errorf("expected string, got %T", ans)
			}
			return validate(s)
		}))
	}

	var result string
	if err := p.askOne(prompt, &result, opts...); err != nil {
		return "", mapPromptError(q, err)
	}
	return result, nil
}

// Confirm implements scaffold.Prompter.
func (p *SurveyPrompter) Confirm(q scaffold.Question) (bool, error) {
	if err := p.ready(q); err != nil {
		return false, err
	}

	var result bool
	prompt := &survey.Confirm{
		Message: q.Message,
		Default: q.DefaultBool,
	}
	if err := p.askOne(prompt, &result); err != nil {
		return false, mapPromptError(q, err)
	}
	return result, nil
}

// ready refuses to prompt without a terminal and prints the question's
// detail block.
func (p *SurveyPrompter) ready(q scaffold.Question) error {
	if !p.isTerminal() {
		if q.Field == scaffold.FieldConfirm {
			return mkerrors.NewValidationError(q.Field,
				"stdin is not a terminal; pass --yes to skip confirmation")
		}
		return mkerrors.NewValidationError(q.Field,
			"value is missing and stdin is not a terminal; pass it as a flag")
	}
	if q.Detail != "" && p.out != nil {
		fmt.Fprintln(p.out, summaryBox(q.Detail))
	}
	return nil
}

// mapPromptError turns an interrupt into a cancellation.
func mapPromptError(q scaffold.Question, err error) error {
	if errors.Is(err, terminal.InterruptErr) || errors.Is(err, io.EOF) {
		return mkerrors.NewCancelledError("cancelled")
	}
	return mkerrors.WrapValidationError(q.Field, "failed to read answer", err)
}
