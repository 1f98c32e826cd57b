package commands

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/galatic-association/Dapper/connector"
	"github.com/galatic-association/Dapper/database"
	"github.com/galatic-association/Dapper/internal/queryfile"
)

func newExecCmd(fs afero.Fs) *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "exec",
		Short: "Execute a query file against the PostgreSQL server in its connection section",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := queryfile.Load(fs, path, cmd.Flags())
			if err != nil {
				return err
			}
			tmpl, err := f.Build()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			conn, err := connector.Connect(ctx, f.Connection)
			if err != nil {
				return err
			}
			defer conn.Close()

			res, err := conn.Database(database.WithLogger(*zerolog.Ctx(ctx))).Exec(ctx, tmpl)
			if err != nil {
				return err
			}
			n, err := res.RowsAffected()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%d rows affected\n", n)
			return err
		},
	}

	cmd.Flags().StringVarP(&path, "file", "f", "", "Path to the query file (yaml, json or toml)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
