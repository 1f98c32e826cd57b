// Package queryfile loads templated queries described in YAML, JSON or TOML
// files and turns them into builder templates.
//
//	dialect: postgres
//	template: SELECT /**select**/ FROM users /**where**/ LIMIT @limit
//	params:
//	  limit: 20
//	clauses:
//	  - kind: select
//	    sql: id
//	  - kind: where
//	    sql: status = @status
//	    params:
//	      status: active
//
// Keys are case-insensitive, parameter names included: they reach the
// template lowercased.
package queryfile

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/galatic-association/Dapper/bind"
	"github.com/galatic-association/Dapper/builder"
	"github.com/galatic-association/Dapper/connector"
	"github.com/galatic-association/Dapper/dialect"
)

// EnvPrefix prefixes the environment variables overriding file settings,
// e.g. SQLTMPL_DIALECT.
const EnvPrefix = "SQLTMPL"

var (
	ErrNoTemplate    = errors.New("queryfile: template is required")
	ErrUnknownClause = errors.New("queryfile: unknown clause kind")
	// ErrParamCase is returned when the SQL references a mixed-case name
	// that only exists lowercased among the file's parameters.
	ErrParamCase = errors.New("queryfile: parameter names are lowercased when loaded")
)

// Clause is one fragment added to the builder. Kind names a clause helper;
// kind "clause" adds to the group called Name with the given joiner, prefix
// and postfix.
type Clause struct {
	Kind    string         `mapstructure:"kind"`
	SQL     string         `mapstructure:"sql"`
	Params  map[string]any `mapstructure:"params"`
	Name    string         `mapstructure:"name"`
	Joiner  string         `mapstructure:"joiner"`
	Prefix  string         `mapstructure:"prefix"`
	Postfix string         `mapstructure:"postfix"`
}

type File struct {
	Template   string           `mapstructure:"template"`
	Dialect    string           `mapstructure:"dialect"`
	Params     map[string]any   `mapstructure:"params"`
	Clauses    []Clause         `mapstructure:"clauses"`
	Connection connector.Config `mapstructure:"connection"`
}

type helper func(b *builder.Builder, sql string, p ...any) *builder.Builder

var helpers = map[string]helper{
	builder.GroupSelect:    (*builder.Builder).Select,
	builder.GroupWhere:     (*builder.Builder).Where,
	"orwhere":              (*builder.Builder).OrWhere,
	builder.GroupOrderBy:   (*builder.Builder).OrderBy,
	builder.GroupGroupBy:   (*builder.Builder).GroupBy,
	builder.GroupHaving:    (*builder.Builder).Having,
	builder.GroupSet:       (*builder.Builder).Set,
	builder.GroupJoin:      (*builder.Builder).Join,
	builder.GroupInnerJoin: (*builder.Builder).InnerJoin,
	builder.GroupLeftJoin:  (*builder.Builder).LeftJoin,
	builder.GroupRightJoin: (*builder.Builder).RightJoin,
	builder.GroupIntersect: (*builder.Builder).Intersect,
}

// Load reads the query file at path from fs. Environment variables with
// EnvPrefix override the file, and flags in flags that were set on the
// command line override both; only the "dialect" flag is consulted.
func Load(fs afero.Fs, path string, flags *pflag.FlagSet) (*File, error) {
	v := viper.New()
	v.SetFs(fs)
	v.SetConfigFile(path)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("dialect"); err != nil {
		return nil, err
	}
	if flags != nil {
		if f := flags.Lookup("dialect"); f != nil {
			if err := v.BindPFlag("dialect", f); err != nil {
				return nil, err
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("queryfile: read %s: %w", path, err)
	}

	var f File
	if err := v.Unmarshal(&f); err != nil {
		return nil, fmt.Errorf("queryfile: decode %s: %w", path, err)
	}
	return &f, nil
}

// Build replays the clauses on a new builder and returns the template.
func (f *File) Build() (*builder.Template, error) {
	if strings.TrimSpace(f.Template) == "" {
		return nil, ErrNoTemplate
	}

	b := builder.New()
	for i, c := range f.Clauses {
		kind := strings.ToLower(strings.TrimSpace(c.Kind))
		switch kind {
		case "parameters":
			b.AddParameters(c.Params)
		case "clause":
			if c.Name == "" {
				return nil, fmt.Errorf("queryfile: clause %d: name is required", i)
			}
			b.AddClause(c.Name, c.SQL, c.Params, c.Joiner, c.Prefix, c.Postfix)
		default:
			add, ok := helpers[kind]
			if !ok {
				return nil, fmt.Errorf("%w: clause %d: %q", ErrUnknownClause, i, c.Kind)
			}
			add(b, c.SQL, c.Params)
		}
	}

	tmpl := b.AddTemplate(f.Template, f.Params)
	if err := tmpl.Err(); err != nil {
		return nil, err
	}
	if err := checkNameCase(tmpl); err != nil {
		return nil, err
	}
	return tmpl, nil
}

func checkNameCase(tmpl *builder.Template) error {
	p := tmpl.Params()
	for _, name := range bind.Names(tmpl.SQL()) {
		if _, ok := p.Get(name); ok {
			continue
		}
		lower := strings.ToLower(name)
		if _, ok := p.Get(lower); ok && lower != name {
			return fmt.Errorf("%w: reference @%s as @%s", ErrParamCase, name, lower)
		}
	}
	return nil
}

// ResolveDialect returns the dialect named by the file, or nil when it names
// none.
func (f *File) ResolveDialect() (dialect.Dialect, error) {
	if f.Dialect == "" {
		return nil, nil
	}
	return dialect.ByName(f.Dialect)
}
