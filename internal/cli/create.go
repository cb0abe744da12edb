package cli

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tacogips/mkapp/internal/app"
	"github.com/tacogips/mkapp/internal/config"
	"github.com/tacogips/mkapp/internal/debug"
	"github.com/tacogips/mkapp/internal/scaffold"
)

// createCmd represents the create command
var createCmd = &cobra.Command{
	Use:   "create [appName]",
	Short: "Create a new app from a template",
	Long: `Create a new app from a catalog template.

Steps:
  1. Prepare an empty output directory
  2. Download the template
  3. Run the template's init script (unless --skip-init)
  4. git init and commit
  5. Create the GitHub repository (unless --skip-github)
  6. Push the first commit

Anything not given as a flag is asked for interactively.

Examples:
  mkapp create
  mkapp create my-api --template go-api-rest-template --owner my-org --org
  mkapp create web --template react-ts-web-app-template --skip-github --yes`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCreate,
}

// createOptions holds the create command flags.
type createOptions struct {
	template   string
	name       string
	owner      string
	org        bool
	visibility string
	out        string
	skipGitHub bool
	skipInit   bool
	yes        bool
}

var createOpts createOptions

func init() {
	bindCreateFlags(createCmd, &createOpts)
}

func bindCreateFlags(cmd *cobra.Command, o *createOptions) {
	f := cmd.Flags()
	f.StringVar(&o.template, FlagTemplate, "", DescTemplate)
	f.StringVar(&o.name, FlagName, "", DescName)
	f.StringVar(&o.owner, FlagOwner, "", DescOwner)
	f.BoolVar(&o.org, FlagOrg, false, DescOrg)
	f.StringVar(&o.visibility, FlagVisibility, string(scaffold.VisibilityPublic), DescVisibility)
	f.StringVar(&o.out, FlagOut, "", DescOut)
	f.BoolVar(&o.skipGitHub, FlagSkipGitHub, false, DescSkipGitHub)
	f.BoolVar(&o.skipInit, FlagSkipInit, false, DescSkipInit)
	f.BoolVarP(&o.yes, FlagYes, "y", false, DescYes)
}

// rawInputs converts parsed flags into scaffold inputs. Flags the user did
// not pass are reported as unset, so defaults never override wizard answers.
func rawInputs(cmd *cobra.Command, args []string, o createOptions) scaffold.RawInputs {
	f := cmd.Flags()

	raw := scaffold.RawInputs{
		TemplateKey:        o.template,
		AppName:            o.name,
		Owner:              o.owner,
		OutputDirectory:    o.out,
		SkipRemoteCreation: o.skipGitHub,
		SkipInitializer:    o.skipInit,
		SkipConfirmation:   o.yes,
	}
	if strings.TrimSpace(raw.AppName) == "" && len(args) > 0 {
		raw.AppName = args[0]
	}
	if f.Changed(FlagOrg) {
		org := o.org
		raw.IsOrganization = &org
	}
	if f.Changed(FlagVisibility) {
		raw.Visibility = o.visibility
	}
	return raw
}

func runCreate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()

	cfg, err := config.FromEnv(os.Getenv)
	if err != nil {
		return err
	}
	debug.DebugJSON("config", cfg)

	raw := rawInputs(cmd, args, createOpts)
	debug.DebugJSON("raw inputs", raw)

	result, err := app.Create(cmd.Context(), app.CreateOptions{
		Raw:      raw,
		Prompter: NewSurveyPrompter(out),
		Config:   cfg,
		Stdout:   out,
		Stderr:   errOut,
		Observer: progressObserver{w: out},
	})
	if err != nil {
		if result != nil {
			printFailure(errOut, result.Report)
		}
		return err
	}

	printReport(out, result.Report)
	return nil
}
