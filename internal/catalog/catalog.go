// Package catalog holds the fixed set of templates mkapp can scaffold from.
//
// The catalog is defined by an embedded YAML document that is parsed once at
// first use. Entries are returned by value and never mutated afterwards.
package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/sahilm/fuzzy"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Tech is the target technology of a template. It selects the initializer.
type Tech string

const (
	TechNode       Tech = "node"
	TechReact      Tech = "react"
	TechTypeScript Tech = "typescript"
	TechGo         Tech = "go"
	TechKotlin     Tech = "kotlin"
	TechJava       Tech = "java"
)

// Techs returns every known technology.
func Techs() []Tech {
	return []Tech{TechNode, TechReact, TechTypeScript, TechGo, TechKotlin, TechJava}
}

// ParseTech converts a string to a Tech, rejecting unknown values.
func ParseTech(s string) (Tech, error) {
	for _, t := range Techs() {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown template tech %q", s)
}

// Template is a single catalog entry.
type Template struct {
	// Key is the unique identifier used by --template.
	Key string
	// Repo is the source repository as "owner/repo".
	Repo string
	// Ref is an optional git ref (branch, tag or commit).
	Ref string
	// Tech is the target technology.
	Tech Tech
	// Description is an optional human-readable description.
	Description string
}

// Source returns the repository with its ref appended as "owner/repo#ref".
func (t Template) Source() string {
	if t.Ref == "" {
		return t.Repo
	}
	return t.Repo + "#" + t.Ref
}

// RepoOwner returns the owner part of Repo.
func (t Template) RepoOwner() string {
	owner, _, _ := strings.Cut(t.Repo, "/")
	return owner
}

// RepoName returns the repository name part of Repo.
func (t Template) RepoName() string {
	_, name, _ := strings.Cut(t.Repo, "/")
	return name
}

// UnknownTemplateError is returned when a key is not in the catalog.
type UnknownTemplateError struct {
	// Key is the requested key.
	Key string
	// Suggestions are close matches, best first.
	Suggestions []string
}

// Error implements the error interface.
func (e *UnknownTemplateError) Error() string {
	if len(e.Suggestions) > 0 {
		return fmt.Sprintf("unknown template '%s' (did you mean: %s?)", e.Key, strings.Join(e.Suggestions, ", "))
	}
	return fmt.Sprintf("unknown template '%s'", e.Key)
}

// Catalog is an immutable set of templates in declaration order.
type Catalog struct {
	byKey map[string]Template
	keys  []string
}

// New builds a catalog from the given templates.
func New(templates ...Template) (*Catalog, error) {
	c := &Catalog{byKey: make(map[string]Template, len(templates))}
	for i, t := range templates {
		if t.Key == "" {
			return nil, fmt.Errorf("template #%d: key cannot be empty", i)
		}
		if _, dup := c.byKey[t.Key]; dup {
			return nil, fmt.Errorf("template %q: duplicate key", t.Key)
		}
		if t.RepoOwner() == "" || t.RepoName() == "" || strings.Count(t.Repo, "/") != 1 {
			return nil, fmt.Errorf("template %q: repo must be owner/repo, got %q", t.Key, t.Repo)
		}
		if _, err := ParseTech(string(t.Tech)); err != nil {
			return nil, fmt.Errorf("template %q: %w", t.Key, err)
		}
		c.byKey[t.Key] = t
		c.keys = append(c.keys, t.Key)
	}
	return c, nil
}

type catalogDocument struct {
	Templates []struct {
		Key         string `yaml:"key"`
		Repo        string `yaml:"repo"`
		Ref         string `yaml:"ref"`
		Tech        string `yaml:"tech"`
		Description string `yaml:"description"`
	} `yaml:"templates"`
}

// Parse builds a catalog from a YAML document.
func Parse(data []byte) (*Catalog, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc catalogDocument
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	templates := make([]Template, 0, len(doc.Templates))
	for _, t := range doc.Templates {
		templates = append(templates, Template{
			Key:         t.Key,
			Repo:        t.Repo,
			Ref:         t.Ref,
			Tech:        Tech(t.Tech),
			Description: t.Description,
		})
	}
	return New(templates...)
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the built-in catalog. It panics if the embedded document is
// invalid, which is a build defect.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Parse(catalogYAML)
		if err != nil {
			panic(fmt.Sprintf("embedded catalog is invalid: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// Lookup returns the template for key or an *UnknownTemplateError.
func (c *Catalog) Lookup(key string) (Template, error) {
	if t, ok := c.byKey[key]; ok {
		return t, nil
	}
	return Template{}, &UnknownTemplateError{Key: key, Suggestions: c.Suggest(key, 3)}
}

// Keys returns the template keys in declaration order.
func (c *Catalog) Keys() []string {
	keys := make([]string, len(c.keys))
	copy(keys, c.keys)
	return keys
}

// All returns every template in declaration order.
func (c *Catalog) All() []Template {
	all := make([]Template, 0, len(c.keys))
	for _, k := range c.keys {
		all = append(all, c.byKey[k])
	}
	return all
}

// Suggest returns up to max keys that fuzzily match key, best first.
func (c *Catalog) Suggest(key string, max int) []string {
	if key == "" || max <= 0 {
		return nil
	}
	matches := fuzzy.Find(key, c.keys)
	var out []string
	for _, m := range matches {
		if len(out) == max {
			break
		}
		out = append(out, m.Str)
	}
	return out
}
