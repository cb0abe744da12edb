package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tacogips/mkapp/internal/debug"
	mkerrors "github.com/tacogips/mkapp/internal/errors"
	"github.com/tacogips/mkapp/internal/version"
)

// Alias version variables for compatibility
var (
	Version   = version.Version
	GitCommit = version.GitCommit
	BuildDate = version.BuildDate
)

// Global flags
var (
	globalNoColor bool
	globalQuiet   bool
	globalDebug   bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mkapp",
	Short: "Scaffold an app from a GitHub template",
	Long: `mkapp scaffolds a new app from a GitHub template.

Use "mkapp create [appName]" to:
  1. Download a template into a new directory
  2. Run the template's initializer
  3. Create the first git commit
  4. Create a GitHub repository and push to it

Use "mkapp templates" to list the available templates.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Set debug mode
		debug.SetDebug(globalDebug)
		debug.SetNoColor(globalNoColor)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		printError(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVar(&globalNoColor, FlagNoColor, false, DescNoColor)
	rootCmd.PersistentFlags().BoolVarP(&globalQuiet, FlagQuiet, "q", false, DescQuiet)
	rootCmd.PersistentFlags().BoolVar(&globalDebug, FlagDebug, false, DescDebug)

	// Add subcommands
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(templatesCmd)
	rootCmd.AddCommand(versionCmd)
}

// printError prints an error message to w. A cancellation is a notice, not
// an error.
func printError(w io.Writer, err error) {
	if mkerrors.Is(err, mkerrors.Cancelled) {
		if !globalQuiet {
			fmt.Fprintln(w, "Cancelled.")
		}
		return
	}
	fmt.Fprintf(w, "Error: %v\n", err)
}
