package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/tacogips/mkapp/internal/catalog"
)

// templatesCmd represents the templates command
var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List available templates",
	Long: `List the templates that can be passed to 'mkapp create --template'.

Examples:
  mkapp templates
  mkapp templates --keys`,
	Args: cobra.NoArgs,
	RunE: runTemplates,
}

var templatesKeysOnly bool

func init() {
	templatesCmd.Flags().BoolVar(&templatesKeysOnly, "keys", false, "Print template keys only")
}

func runTemplates(cmd *cobra.Command, args []string) error {
	printTemplates(cmd.OutOrStdout(), catalog.Default(), templatesKeysOnly)
	return nil
}

func printTemplates(w io.Writer, cat *catalog.Catalog, keysOnly bool) {
	if keysOnly {
		for _, k := range cat.Keys() {
			fmt.Fprintln(w, k)
		}
		return
	}

	width := 0
	for _, k := range cat.Keys() {
		if len(k) > width {
			width = len(k)
		}
	}
	keyStyle := lipgloss.NewStyle().Bold(true).Width(width + 2)
	techStyle := lipgloss.NewStyle().Foreground(colorInfo).Width(12)
	mutedStyle := lipgloss.NewStyle().Foreground(colorMuted)

	for _, t := range cat.All() {
		key := keyStyle.Render(t.Key)
		tech := techStyle.Render(string(t.Tech))
		source := t.Source()
		if !globalNoColor {
			source = mutedStyle.Render(source)
		}
		fmt.Fprintf(w, "%s%s%s\n", key, tech, source)
		if t.Description != "" {
			fmt.Fprintf(w, "%s%s%s\n", keyStyle.Render(""), techStyle.Render(""), t.Description)
		}
	}
}
