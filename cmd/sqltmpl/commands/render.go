package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/galatic-association/Dapper/bind"
	"github.com/galatic-association/Dapper/builder"
	"github.com/galatic-association/Dapper/dialect"
	"github.com/galatic-association/Dapper/internal/queryfile"
)

const (
	formatText = "text"
	formatJSON = "json"
)

type rendered struct {
	SQL     string         `json:"sql"`
	Dialect string         `json:"dialect,omitempty"`
	Params  map[string]any `json:"params,omitempty"`
	Args    []any          `json:"args,omitempty"`
}

func addQueryFlags(cmd *cobra.Command, path *string) {
	cmd.Flags().StringVarP(path, "file", "f", "", "Path to the query file (yaml, json or toml)")
	cmd.Flags().String("dialect", "", "Bind parameters for this dialect (postgres, mysql, tidb, sqlite, sqlserver, oracle)")
	_ = cmd.MarkFlagRequired("file")
}

func loadTemplate(cmd *cobra.Command, fs afero.Fs, path string) (*builder.Template, dialect.Dialect, error) {
	f, err := queryfile.Load(fs, path, cmd.Flags())
	if err != nil {
		return nil, nil, err
	}
	d, err := f.ResolveDialect()
	if err != nil {
		return nil, nil, err
	}
	tmpl, err := f.Build()
	if err != nil {
		return nil, nil, err
	}
	zerolog.Ctx(cmd.Context()).Debug().
		Str("file", path).
		Int("clauses", len(f.Clauses)).
		Msg("query file loaded")
	return tmpl, d, nil
}

func newRenderCmd(fs afero.Fs) *cobra.Command {
	var (
		path   string
		format string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Print the SQL and parameters of a query file",
		Long: `Resolve the template of a query file against its clauses.

Without a dialect the SQL keeps its named references and the merged
parameters are printed. With a dialect the references are bound to
positional placeholders and the argument list is printed instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if format != formatText && format != formatJSON {
				return fmt.Errorf("unknown format %q (want %s or %s)", format, formatText, formatJSON)
			}

			tmpl, d, err := loadTemplate(cmd, fs, path)
			if err != nil {
				return err
			}

			out := rendered{SQL: tmpl.SQL(), Params: tmpl.Params().Map()}
			if d != nil {
				sql, args, err := tmpl.Bind(d)
				if err != nil {
					return err
				}
				out = rendered{SQL: sql, Dialect: d.Name(), Args: args}
			}

			if format == formatJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}
			return writeText(cmd.OutOrStdout(), out, d)
		},
	}

	addQueryFlags(cmd, &path)
	cmd.Flags().StringVar(&format, "format", formatText, "Output format (text, json)")
	return cmd
}

func writeText(w io.Writer, out rendered, d dialect.Dialect) error {
	if _, err := fmt.Fprintln(w, out.SQL); err != nil {
		return err
	}
	if d != nil {
		for i, arg := range out.Args {
			if _, err := fmt.Fprintf(w, "-- %s = %v\n", d.Placeholder(i+1), arg); err != nil {
				return err
			}
		}
		return nil
	}

	names := make([]string, 0, len(out.Params))
	for name := range out.Params {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		if _, err := fmt.Fprintf(w, "-- @%s = %v\n", name, out.Params[name]); err != nil {
			return err
		}
	}
	return nil
}

func newNamesCmd(fs afero.Fs) *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "names",
		Short: "List the parameter names referenced by the resolved SQL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tmpl, _, err := loadTemplate(cmd, fs, path)
			if err != nil {
				return err
			}
			for _, name := range bind.Names(tmpl.SQL()) {
				_, bound := tmpl.Params().Get(name)
				status := "bound"
				if !bound {
					status = "missing"
				}
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", name, status); err != nil {
					return err
				}
			}
			return nil
		},
	}

	addQueryFlags(cmd, &path)
	return cmd
}
