// Package provider downloads template repositories into a local directory.
package provider

import (
	"context"
	"fmt"
	"strings"
)

// Fetcher abstracts where template contents come from.
type Fetcher interface {
	// Fetch writes the contents of the template identified by source into
	// dest. dest must already exist. Source has the form "owner/repo" or
	// "owner/repo#ref".
	Fetch(ctx context.Context, source string, dest string) error
}

// Source identifies a template repository and an optional ref.
type Source struct {
	Owner string
	Repo  string
	// Ref is a branch, tag or commit. Empty means the default branch.
	Ref string
}

// String formats the source back into "owner/repo[#ref]" form.
func (s Source) String() string {
	if s.Ref == "" {
		return s.Owner + "/" + s.Repo
	}
	return s.Owner + "/" + s.Repo + "#" + s.Ref
}

// ParseSource parses "owner/repo" or "owner/repo#ref". A leading
// "github.com/" and a trailing ".git" are tolerated.
func ParseSource(s string) (Source, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Source{}, fmt.Errorf("source cannot be empty")
	}

	var ref string
	if idx := strings.Index(s, "#"); idx != -1 {
		ref = s[idx+1:]
		s = s[:idx]
		if ref == "" {
			return Source{}, fmt.Errorf("empty ref after '#'")
		}
	}

	s = strings.TrimPrefix(s, "https://")
	s = strings.TrimPrefix(s, "github.com/")
	s = strings.TrimSuffix(s, ".git")

	parts := strings.Split(s, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return Source{}, fmt.Errorf("expected owner/repo, got '%s'", s)
	}

	return Source{Owner: parts[0], Repo: parts[1], Ref: ref}, nil
}
