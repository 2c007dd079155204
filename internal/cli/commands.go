package cli

import (
	"github.com/spf13/cobra"
)

func (c *cli) markdownCommand() *cobra.Command {
	var pretty bool
	cmd := &cobra.Command{
		Use:     "markdown <document>",
		Aliases: []string{"md"},
		Short:   "Transform a requirement catalogue into Markdown",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Markdown(cmd.Context(), args[0], pretty)
		},
	}
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Render with terminal styling instead of raw markdown.")
	return cmd
}

func (c *cli) htmlCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "html <document>",
		Short: "Transform a requirement catalogue into a standalone HTML page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.HTML(cmd.Context(), args[0])
		},
	}
}

func (c *cli) checkCommand() *cobra.Command {
	var patterns []string
	cmd := &cobra.Command{
		Use:   "check <document> <test-results>...",
		Short: "Check test output against the requirement catalogue",
		Long: `Check scans each test-result file, in the given order, for the markers
"<id>: failed" and "<id>: passed" and reports the status of every
requirement whose identifier matches an allowed pattern.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Check(cmd.Context(), args[0], patterns, args[1:])
		},
	}
	// StringArray, not StringSlice: a regex may contain commas (e.g. a
	// {m,n} quantifier) and must never be split on them.
	cmd.Flags().StringArrayVarP(&patterns, "allowed-requirements", "a", []string{"REQ-.*"},
		"Regex selecting which requirement identifiers are checked. Repeatable.")
	return cmd
}

func (c *cli) schemaCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Output the JSON schema for catalogue documents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Schema(cmd.Context())
		},
	}
}

func (c *cli) demoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Output the embedded demo catalogue in YAML format",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Demo(cmd.Context())
		},
	}
}

func (c *cli) browseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "browse [document]",
		Short: "Browse a catalogue in a read-only terminal UI",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) > 0 {
				path = args[0]
			}
			return c.app.Browse(cmd.Context(), path)
		},
	}
}
