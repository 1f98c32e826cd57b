package queryfile

import (
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/galatic-association/Dapper/dialect"
)

const usersQuery = `
dialect: postgres
template: "SELECT /**select**/ FROM users u /**leftjoin**/ /**where**/ /**orderby**/LIMIT @limit"
params:
  limit: 20
clauses:
  - kind: select
    sql: u.id
  - kind: select
    sql: o.name
  - kind: leftjoin
    sql: orgs o ON o.id = u.org_id
  - kind: where
    sql: u.status = @status
    params:
      status: active
  - kind: orwhere
    sql: u.id IN (@ids)
    params:
      ids: [3, 4]
  - kind: orderby
    sql: u.id
connection:
  host: db.internal
  port: 5433
  database: app
  connect_timeout: 5s
  pool:
    max_open: 4
`

func writeFile(t *testing.T, name, content string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, name, []byte(content), 0o644))
	return fs
}

func TestLoadAndBuild(t *testing.T) {
	fs := writeFile(t, "users.yaml", usersQuery)

	f, err := Load(fs, "users.yaml", nil)
	require.NoError(t, err)
	assert.Equal(t, "postgres", f.Dialect)
	require.Len(t, f.Clauses, 6)
	assert.Equal(t, "db.internal", f.Connection.Host)
	assert.Equal(t, 5433, f.Connection.Port)
	assert.Equal(t, 5*time.Second, f.Connection.ConnectTimeout)
	assert.Equal(t, 4, f.Connection.Pool.MaxOpen)

	tmpl, err := f.Build()
	require.NoError(t, err)
	assert.Equal(t,
		"SELECT u.id , o.name\n FROM users u \nLEFT JOIN orgs o ON o.id = u.org_id\n "+
			"WHERE u.status = @status OR u.id IN (@ids)\n ORDER BY u.id\nLIMIT @limit",
		tmpl.SQL())

	d, err := f.ResolveDialect()
	require.NoError(t, err)
	sql, args, err := tmpl.Bind(d)
	require.NoError(t, err)
	assert.Contains(t, sql, "WHERE u.status = $1 OR u.id IN ($2,$3)")
	assert.Contains(t, sql, "LIMIT $4")
	assert.Equal(t, []any{"active", 3, 4, 20}, args)
}

func TestLoadJSON(t *testing.T) {
	fs := writeFile(t, "count.json", `{
		"template": "SELECT COUNT(*) FROM t /**where**/",
		"clauses": [{"kind": "where", "sql": "deleted_at IS NULL"}]
	}`)

	f, err := Load(fs, "count.json", nil)
	require.NoError(t, err)

	tmpl, err := f.Build()
	require.NoError(t, err)
	assert.Equal(t, "SELECT COUNT(*) FROM t WHERE deleted_at IS NULL\n", tmpl.SQL())

	d, err := f.ResolveDialect()
	assert.NoError(t, err)
	assert.Nil(t, d)
}

func TestDialectOverrides(t *testing.T) {
	t.Run("environment", func(t *testing.T) {
		t.Setenv("SQLTMPL_DIALECT", "mysql")
		f, err := Load(writeFile(t, "q.yaml", usersQuery), "q.yaml", nil)
		require.NoError(t, err)
		assert.Equal(t, "mysql", f.Dialect)
	})

	t.Run("flag beats environment", func(t *testing.T) {
		t.Setenv("SQLTMPL_DIALECT", "mysql")
		flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
		flags.String("dialect", "", "")
		require.NoError(t, flags.Parse([]string{"--dialect", "sqlserver"}))

		f, err := Load(writeFile(t, "q.yaml", usersQuery), "q.yaml", flags)
		require.NoError(t, err)
		assert.Equal(t, "sqlserver", f.Dialect)
	})

	t.Run("unset flag keeps file", func(t *testing.T) {
		flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
		flags.String("dialect", "", "")

		f, err := Load(writeFile(t, "q.yaml", usersQuery), "q.yaml", flags)
		require.NoError(t, err)
		assert.Equal(t, "postgres", f.Dialect)
	})
}

func TestCustomClauseAndParameters(t *testing.T) {
	f := &File{
		Template: "INSERT INTO t (/**cols**/) VALUES (@a, @b) /**--parameters**/",
		Clauses: []Clause{
			{Kind: "clause", Name: "cols", SQL: "a", Joiner: ", "},
			{Kind: "clause", Name: "cols", SQL: "b"},
			{Kind: "parameters", Params: map[string]any{"a": 1, "b": 2}},
		},
	}

	tmpl, err := f.Build()
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO t (a, b) VALUES (@a, @b) ", tmpl.SQL())
	assert.Equal(t, map[string]any{"a": 1, "b": 2}, tmpl.Params().Map())
}

func TestBuildErrors(t *testing.T) {
	_, err := (&File{}).Build()
	assert.ErrorIs(t, err, ErrNoTemplate)

	_, err = (&File{Template: "x", Clauses: []Clause{{Kind: "window", SQL: "w"}}}).Build()
	assert.ErrorIs(t, err, ErrUnknownClause)

	_, err = (&File{Template: "x", Clauses: []Clause{{Kind: "clause", SQL: "w"}}}).Build()
	assert.Error(t, err)

	_, err = (&File{Dialect: "db2"}).ResolveDialect()
	assert.ErrorIs(t, err, dialect.ErrUnknownDialect)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(afero.NewMemMapFs(), "nope.yaml", nil)
	assert.Error(t, err)
}

func TestMixedCaseParamNames(t *testing.T) {
	fs := writeFile(t, "q.yaml", `
template: "SELECT * FROM users /**where**/"
clauses:
  - kind: where
    sql: id = @userId
params:
  userId: 1
`)

	f, err := Load(fs, "q.yaml", nil)
	require.NoError(t, err)

	_, err = f.Build()
	assert.ErrorIs(t, err, ErrParamCase)
	assert.ErrorContains(t, err, "reference @userId as @userid")
}

func TestMissingParamLeftToBind(t *testing.T) {
	f := &File{Template: "SELECT * FROM t WHERE id = @Id AND x = @x", Params: map[string]any{"x": 1}}

	tmpl, err := f.Build()
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM t WHERE id = @Id AND x = @x", tmpl.SQL())
}
