package scaffold

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tacogips/mkapp/internal/catalog"
	mkerrors "github.com/tacogips/mkapp/internal/errors"
)

// scriptedPrompter answers by field and records every question asked.
type scriptedPrompter struct {
	text    map[string]string
	bools   map[string]bool
	errs    map[string]error
	asked   []Question
	noTouch bool
}

func (p *scriptedPrompter) record(q Question) error {
	p.asked = append(p.asked, q)
	if p.noTouch {
		return fmt.Errorf("unexpected prompt for %s", q.Field)
	}
	return p.errs[q.Field]
}

func (p *scriptedPrompter) Select(q Question) (string, error) {
	if err := p.record(q); err != nil {
		return "", err
	}
	if v, ok := p.text[q.Field]; ok {
		return v, nil
	}
	return q.Default, nil
}

func (p *scriptedPrompter) Input(q Question) (string, error) {
	if err := p.record(q); err != nil {
		return "", err
	}
	return p.text[q.Field], nil
}

func (p *scriptedPrompter) Confirm(q Question) (bool, error) {
	if err := p.record(q); err != nil {
		return false, err
	}
	if v, ok := p.bools[q.Field]; ok {
		return v, nil
	}
	return q.DefaultBool, nil
}

func (p *scriptedPrompter) fields() []string {
	out := make([]string, len(p.asked))
	for i, q := range p.asked {
		out[i] = q.Field
	}
	return out
}

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.New(
		catalog.Template{Key: "t1", Repo: "acme/node-starter", Tech: catalog.TechNode, Description: "Node starter"},
		catalog.Template{Key: "t2", Repo: "acme/go-starter", Tech: catalog.TechGo},
	)
	require.NoError(t, err)
	return cat
}

func boolPtr(b bool) *bool { return &b }

func complete() RawInputs {
	return RawInputs{
		TemplateKey: "t1",
		AppName:     "demo",
		Owner:       "alice",
		Visibility:  "private",
	}
}

func TestResolve_CompleteInputsNeverPrompt(t *testing.T) {
	tests := []struct {
		name string
		raw  RawInputs
	}{
		{name: "all fields", raw: complete()},
		{name: "visibility unset", raw: RawInputs{TemplateKey: "t1", AppName: "demo", Owner: "alice"}},
		{name: "skip github without owner", raw: RawInputs{TemplateKey: "t2", AppName: "demo", SkipRemoteCreation: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &scriptedPrompter{noTouch: true}
			cfg, err := NewResolver(testCatalog(t), p).Resolve(context.Background(), tt.raw)
			require.NoError(t, err)
			assert.Empty(t, p.asked)
			assert.Equal(t, tt.raw.TemplateKey, cfg.Template.Key)
		})
	}
}

func TestResolve_NilPrompterWithCompleteInputs(t *testing.T) {
	_, err := NewResolver(testCatalog(t), nil).Resolve(context.Background(), complete())
	assert.NoError(t, err)
}

func TestResolve_UnsetVisibilityDefaultsToPublic(t *testing.T) {
	raw := complete()
	raw.Visibility = ""

	cfg, err := NewResolver(testCatalog(t), nil).Resolve(context.Background(), raw)
	require.NoError(t, err)
	assert.Equal(t, VisibilityPublic, cfg.Visibility)
}

func TestResolve_BadVisibilityFailsBeforePrompting(t *testing.T) {
	for _, v := range []string{"internal", "Public", " private", "yes"} {
		t.Run(v, func(t *testing.T) {
			p := &scriptedPrompter{noTouch: true}
			_, err := NewResolver(testCatalog(t), p).Resolve(context.Background(), RawInputs{Visibility: v})

			require.Error(t, err)
			assert.True(t, mkerrors.Is(err, mkerrors.Validation))
			assert.Contains(t, err.Error(), FieldVisibility)
			assert.Empty(t, p.asked)
		})
	}
}

func TestResolve_SkipRemoteForcesUserMode(t *testing.T) {
	tests := []struct {
		name  string
		owner string
		org   *bool
	}{
		{name: "org flag true", owner: "acme", org: boolPtr(true)},
		{name: "no owner", owner: "", org: boolPtr(true)},
		{name: "org unset", owner: "acme", org: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := RawInputs{
				TemplateKey:        "t1",
				AppName:            "demo",
				Owner:              tt.owner,
				IsOrganization:     tt.org,
				SkipRemoteCreation: true,
			}
			cfg, err := NewResolver(testCatalog(t), nil).Resolve(context.Background(), raw)
			require.NoError(t, err)
			assert.False(t, cfg.IsOrganization)
			assert.True(t, cfg.SkipRemoteCreation)
			assert.Equal(t, tt.owner, cfg.Owner)
		})
	}
}

func TestResolve_ExplicitValuesWin(t *testing.T) {
	raw := RawInputs{
		TemplateKey:    "t1",
		AppName:        "demo",
		IsOrganization: boolPtr(true),
		Visibility:     "private",
	}
	p := &scriptedPrompter{
		text: map[string]string{
			FieldOwner:      "wizard-owner",
			FieldVisibility: "public",
		},
		bools: map[string]bool{FieldOrganization: false},
	}

	cfg, err := NewResolver(testCatalog(t), p).Resolve(context.Background(), raw)
	require.NoError(t, err)

	assert.Equal(t, []string{FieldOwner, FieldOrganization, FieldVisibility}, p.fields())
	assert.Equal(t, "wizard-owner", cfg.Owner)
	assert.True(t, cfg.IsOrganization, "explicit --org must beat the wizard answer")
	assert.Equal(t, VisibilityPrivate, cfg.Visibility, "explicit --visibility must beat the wizard answer")
}

func TestResolve_WizardFillsGaps(t *testing.T) {
	p := &scriptedPrompter{
		text: map[string]string{
			FieldTemplate:   "t2",
			FieldAppName:    "  payments  ",
			FieldOwner:      " my-org ",
			FieldVisibility: "private",
		},
		bools: map[string]bool{FieldOrganization: true},
	}

	cfg, err := NewResolver(testCatalog(t), p).Resolve(context.Background(), RawInputs{})
	require.NoError(t, err)

	assert.Equal(t, []string{FieldTemplate, FieldAppName, FieldOwner, FieldOrganization, FieldVisibility}, p.fields())
	assert.Equal(t, "t2", cfg.TemplateKey)
	assert.Equal(t, catalog.TechGo, cfg.Template.Tech)
	assert.Equal(t, "payments", cfg.AppName)
	assert.Equal(t, "my-org", cfg.Owner)
	assert.True(t, cfg.IsOrganization)
	assert.Equal(t, VisibilityPrivate, cfg.Visibility)
}

func TestResolve_OutputDirectory(t *testing.T) {
	t.Run("defaults to ./appName", func(t *testing.T) {
		cfg, err := NewResolver(testCatalog(t), nil).Resolve(context.Background(), complete())
		require.NoError(t, err)

		want, err := filepath.Abs("./demo")
		require.NoError(t, err)
		assert.Equal(t, want, cfg.OutputDirectory)
		assert.True(t, filepath.IsAbs(cfg.OutputDirectory))
	})

	t.Run("explicit out is made absolute", func(t *testing.T) {
		raw := complete()
		raw.OutputDirectory = "build/out"

		cfg, err := NewResolver(testCatalog(t), nil).Resolve(context.Background(), raw)
		require.NoError(t, err)

		want, err := filepath.Abs("build/out")
		require.NoError(t, err)
		assert.Equal(t, want, cfg.OutputDirectory)
	})
}

func TestResolve_UnknownTemplate(t *testing.T) {
	raw := complete()
	raw.TemplateKey = "t3"

	_, err := NewResolver(testCatalog(t), nil).Resolve(context.Background(), raw)
	require.Error(t, err)
	assert.True(t, mkerrors.Is(err, mkerrors.Validation))

	var unk *catalog.UnknownTemplateError
	require.True(t, errors.As(err, &unk))
	assert.Equal(t, "t3", unk.Key)
}

func TestResolve_Cancellation(t *testing.T) {
	p := &scriptedPrompter{
		errs: map[string]error{FieldAppName: mkerrors.NewCancelledError("interrupted")},
	}

	_, err := NewResolver(testCatalog(t), p).Resolve(context.Background(), RawInputs{TemplateKey: "t1", Owner: "alice"})
	require.Error(t, err)
	assert.True(t, mkerrors.Is(err, mkerrors.Cancelled))
	assert.Equal(t, []string{FieldAppName}, p.fields(), "no question may be asked after cancellation")
}

func TestResolve_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := &scriptedPrompter{}
	_, err := NewResolver(testCatalog(t), p).Resolve(ctx, RawInputs{TemplateKey: "t1", Owner: "alice"})
	assert.True(t, mkerrors.Is(err, mkerrors.Cancelled))
	assert.Empty(t, p.asked)
}

func TestResolve_MissingInputWithoutPrompter(t *testing.T) {
	_, err := NewResolver(testCatalog(t), nil).Resolve(context.Background(), RawInputs{TemplateKey: "t1", Owner: "alice"})
	require.Error(t, err)
	assert.True(t, mkerrors.Is(err, mkerrors.Validation))
	assert.Contains(t, err.Error(), FieldAppName)
}

func TestResolve_BlankWizardAnswers(t *testing.T) {
	t.Run("blank owner", func(t *testing.T) {
		p := &scriptedPrompter{text: map[string]string{FieldOwner: "   "}}
		_, err := NewResolver(testCatalog(t), p).Resolve(context.Background(), RawInputs{TemplateKey: "t1", AppName: "demo"})
		require.Error(t, err)
		assert.True(t, mkerrors.Is(err, mkerrors.Validation))
		assert.Contains(t, err.Error(), FieldOwner)
	})

	t.Run("blank app name", func(t *testing.T) {
		p := &scriptedPrompter{text: map[string]string{FieldAppName: ""}}
		_, err := NewResolver(testCatalog(t), p).Resolve(context.Background(), RawInputs{TemplateKey: "t1", Owner: "alice"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), FieldAppName)
	})
}

func TestNeedsWizard(t *testing.T) {
	tests := []struct {
		name string
		raw  RawInputs
		want bool
	}{
		{name: "complete", raw: complete(), want: false},
		{name: "missing template", raw: RawInputs{AppName: "a", Owner: "o"}, want: true},
		{name: "blank app name", raw: RawInputs{TemplateKey: "t1", AppName: "  ", Owner: "o"}, want: true},
		{name: "missing owner", raw: RawInputs{TemplateKey: "t1", AppName: "a"}, want: true},
		{name: "missing owner but skipping github", raw: RawInputs{TemplateKey: "t1", AppName: "a", SkipRemoteCreation: true}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NeedsWizard(tt.raw))
		})
	}
}

func TestBuildQuestions_Minimal(t *testing.T) {
	cat := testCatalog(t)

	t.Run("only visibility and org when owner given", func(t *testing.T) {
		qs := BuildQuestions(RawInputs{TemplateKey: "t1", AppName: "a", Owner: "o"}, cat)
		require.Len(t, qs, 2)
		assert.Equal(t, FieldOrganization, qs[0].Field)
		assert.Equal(t, FieldVisibility, qs[1].Field)
	})

	t.Run("skip github drops owner and org", func(t *testing.T) {
		qs := BuildQuestions(RawInputs{SkipRemoteCreation: true}, cat)
		var fields []string
		for _, q := range qs {
			fields = append(fields, q.Field)
		}
		assert.Equal(t, []string{FieldTemplate, FieldAppName, FieldVisibility}, fields)
	})

	t.Run("template options label key and repo", func(t *testing.T) {
		qs := BuildQuestions(RawInputs{}, cat)
		require.Equal(t, FieldTemplate, qs[0].Field)
		assert.Equal(t, KindSelect, qs[0].Kind)
		assert.Equal(t, []Option{
			{Value: "t1", Label: "t1 (acme/node-starter)"},
			{Value: "t2", Label: "t2 (acme/go-starter)"},
		}, qs[0].Options)
	})

	t.Run("visibility preselects explicit value", func(t *testing.T) {
		qs := BuildQuestions(RawInputs{Visibility: "private"}, cat)
		last := qs[len(qs)-1]
		assert.Equal(t, FieldVisibility, last.Field)
		assert.Equal(t, "private", last.Default)
		assert.Contains(t, last.Message, "set to private by flag")
		assert.Equal(t, []Option{
			{Value: "public", Label: "public"},
			{Value: "private", Label: "private"},
		}, last.Options)
	})

	t.Run("unset flags leave messages plain", func(t *testing.T) {
		qs := BuildQuestions(RawInputs{}, cat)
		for _, q := range qs {
			assert.NotContains(t, q.Message, "by flag", q.Field)
		}
	})

	t.Run("org question defaults to explicit flag", func(t *testing.T) {
		qs := BuildQuestions(RawInputs{IsOrganization: boolPtr(true)}, cat)
		for _, q := range qs {
			if q.Field == FieldOrganization {
				assert.True(t, q.DefaultBool)
				assert.Contains(t, q.Message, "set to yes by flag")
				return
			}
		}
		t.Fatal("organization question missing")
	})

	t.Run("text questions reject blanks", func(t *testing.T) {
		qs := BuildQuestions(RawInputs{}, cat)
		for _, q := range qs {
			if q.Kind == KindText {
				require.NotNil(t, q.Validate, q.Field)
				assert.Error(t, q.Validate("  "))
				assert.NoError(t, q.Validate("x"))
			}
		}
	})
}

func TestSummary(t *testing.T) {
	cfg := ResolvedConfiguration{
		TemplateKey:     "t1",
		AppName:         "demo",
		OutputDirectory: "/work/demo",
		Owner:           "acme",
		IsOrganization:  true,
		Visibility:      VisibilityPrivate,
	}

	assert.Equal(t,
		"Create app 'demo' from template 't1' into:\n  /work/demo\n\nGitHub:\n  owner=acme (org)\n  visibility=private",
		Summary(cfg))

	cfg.SkipRemoteCreation = true
	assert.Equal(t,
		"Create app 'demo' from template 't1' into:\n  /work/demo\n\nGitHub: skipped",
		Summary(cfg))
}

func TestConfirm(t *testing.T) {
	cfg := ResolvedConfiguration{TemplateKey: "t1", AppName: "demo", OutputDirectory: "/work/demo", Owner: "alice"}

	t.Run("skip confirmation never prompts", func(t *testing.T) {
		c := cfg
		c.SkipConfirmation = true
		p := &scriptedPrompter{noTouch: true}
		assert.NoError(t, Confirm(c, p))
		assert.Empty(t, p.asked)
	})

	t.Run("approved", func(t *testing.T) {
		p := &scriptedPrompter{bools: map[string]bool{FieldConfirm: true}}
		require.NoError(t, Confirm(cfg, p))
		require.Len(t, p.asked, 1)
		assert.True(t, p.asked[0].DefaultBool)
		assert.Equal(t, Summary(cfg), p.asked[0].Detail)
	})

	t.Run("declined", func(t *testing.T) {
		p := &scriptedPrompter{bools: map[string]bool{FieldConfirm: false}}
		err := Confirm(cfg, p)
		assert.True(t, mkerrors.Is(err, mkerrors.Cancelled))
	})

	t.Run("interrupted", func(t *testing.T) {
		p := &scriptedPrompter{errs: map[string]error{FieldConfirm: mkerrors.NewCancelledError("interrupted")}}
		err := Confirm(cfg, p)
		assert.True(t, mkerrors.Is(err, mkerrors.Cancelled))
	})
}

func TestRepoDescription(t *testing.T) {
	cfg := ResolvedConfiguration{Template: catalog.Template{Repo: "acme/go-starter"}}
	assert.Equal(t, "Created from template acme/go-starter", cfg.RepoDescription())

	cfg.Template.Description = "Go starter"
	assert.Equal(t, "Go starter", cfg.RepoDescription())
}
