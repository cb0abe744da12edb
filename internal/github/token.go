package github

import (
	"context"
	"os"
	"strings"

	"github.com/tacogips/mkapp/internal/debug"
	mkerrors "github.com/tacogips/mkapp/internal/errors"
	"github.com/tacogips/mkapp/internal/exec"
)

// Environment variables consulted for a token, in order.
var TokenEnvVars = []string{"GITHUB_TOKEN", "GH_TOKEN"}

// TokenSource finds a GitHub token from the environment, falling back to
// the GitHub CLI's stored credentials.
type TokenSource struct {
	cmd    exec.CommandRunner
	getenv func(string) string
}

// NewTokenSource creates a TokenSource reading the process environment.
func NewTokenSource(cmd exec.CommandRunner) *TokenSource {
	return &TokenSource{cmd: cmd, getenv: os.Getenv}
}

// WithGetenv replaces the environment lookup. Used by tests.
func (s *TokenSource) WithGetenv(getenv func(string) string) *TokenSource {
	s.getenv = getenv
	return s
}

// Token returns the first non-empty credential. The result is not cached.
func (s *TokenSource) Token(ctx context.Context) (string, error) {
	for _, name := range TokenEnvVars {
		if token := strings.TrimSpace(s.getenv(name)); token != "" {
			debug.Debug("[github] using token from %s", name)
			return token, nil
		}
	}

	res, err := s.cmd.Run(ctx, "gh", []string{"auth", "token"}, exec.RunOpts{})
	if err == nil && res.ExitCode == 0 {
		if token := strings.TrimSpace(res.Stdout); token != "" {
			debug.Debug("[github] using token from gh auth token")
			return token, nil
		}
	}
	if err != nil {
		debug.Debug("[github] gh auth token unavailable: %v", err)
	}

	return "", mkerrors.NewAuthenticationError(
		"GitHub authentication required: set GITHUB_TOKEN (or GH_TOKEN), or install the GitHub CLI and run 'gh auth login'", nil)
}
