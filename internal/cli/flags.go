package cli

// Common flag names and descriptions
const (
	// Flag names
	FlagTemplate   = "template"
	FlagName       = "name"
	FlagOwner      = "owner"
	FlagOrg        = "org"
	FlagVisibility = "visibility"
	FlagOut        = "out"
	FlagSkipGitHub = "skip-github"
	FlagSkipInit   = "skip-init"
	FlagYes        = "yes"
	FlagNoColor    = "no-color"
	FlagQuiet      = "quiet"
	FlagDebug      = "debug"

	// Flag descriptions
	DescTemplate   = "Template key from the catalog (see 'mkapp templates')"
	DescName       = "Application name (repo name); overrides the positional argument"
	DescOwner      = "GitHub user or organization that will own the repo"
	DescOrg        = "Treat --owner as an organization"
	DescVisibility = "Repository visibility: public|private"
	DescOut        = "Output directory (default: ./<appName>)"
	DescSkipGitHub = "Do not create a GitHub repo or push"
	DescSkipInit   = "Do not run the template's init script"
	DescYes        = "Skip the confirmation prompt"
	DescNoColor    = "Disable colored output"
	DescQuiet      = "Suppress non-error output"
	DescDebug      = "Enable debug logging"
)
