package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/vk/reqgrid/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// cli carries the writers and the lazily constructed App shared by all
// subcommands.
type cli struct {
	outW io.Writer
	errW io.Writer
	app  *app.App

	logLevel  string
	logFormat string
}

// New builds the root command with every subcommand attached. Shell
// completion and version/help output come from cobra itself.
func New(outW, errW io.Writer, version string) *cobra.Command {
	c := &cli{outW: outW, errW: errW}

	root := &cobra.Command{
		Use:     "reqgrid",
		Short:   "Requirement catalogue renderer and compliance checker",
		Long: `reqgrid keeps a project's requirements in one structured document
(YAML, JSON, TOML, or HCL) and derives prose documentation and
test-compliance reports from it.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.NewConfig(app.Config{
				LogLevel:  c.logLevel,
				LogFormat: c.logFormat,
			})
			if err != nil {
				return &ExitError{Code: 2, Message: err.Error()}
			}
			c.app = app.New(c.outW, c.errW, cfg)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "info",
		"Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	root.PersistentFlags().StringVar(&c.logFormat, "log-format", "text",
		"Log output format. Options: 'text' or 'json'.")

	root.AddCommand(
		c.markdownCommand(),
		c.htmlCommand(),
		c.checkCommand(),
		c.schemaCommand(),
		c.demoCommand(),
		c.browseCommand(),
	)
	return root
}
