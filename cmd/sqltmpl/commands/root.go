// Package commands implements the sqltmpl command line.
package commands

import (
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/galatic-association/Dapper/logger"
)

const version = "0.1.0"

// NewRootCmd builds the sqltmpl command tree reading query files from fs.
func NewRootCmd(fs afero.Fs) *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:   "sqltmpl",
		Short: "Render and run templated SQL queries",
		Long: `sqltmpl assembles SQL from a template with /**group**/ markers and the
clauses listed in a query file, then prints or executes the result.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			data, err := logger.New().
				FromWriter(cmd.ErrOrStderr()).
				WithLevel(logLevel).
				Console().
				Make()
			if err != nil {
				return err
			}
			cmd.SetContext(data.Logger.WithContext(cmd.Context()))
			return nil
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (trace, debug, info, warn, error)")

	root.AddCommand(
		newRenderCmd(fs),
		newNamesCmd(fs),
		newExecCmd(fs),
	)
	return root
}
