package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/jatstemplate/textparser"
)

var parsersCmd = &cobra.Command{
	Use:   "parsers",
	Short: "List registered galley text parsers",
	Long: `List the text parsers used to extract full text from non-HTML
galleys, with the media types each one handles.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		out := cmd.OutOrStdout()
		names := textparser.DefaultRegistry.List()
		if len(names) == 0 {
			fmt.Fprintln(out, "No parsers registered")
			return nil
		}

		fmt.Fprintln(out, "Available parsers:")
		for _, name := range names {
			p, _ := textparser.DefaultRegistry.Parser(name)
			fmt.Fprintf(out, "  %-12s %-40s %s\n", name, strings.Join(p.MIMETypes(), ", "), p.Description())
		}
		return nil
	},
}
