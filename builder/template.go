package builder

import (
	"errors"
	"regexp"
	"strings"

	"github.com/galatic-association/Dapper/bind"
	"github.com/galatic-association/Dapper/dialect"
	"github.com/galatic-association/Dapper/params"
)

// unresolved is the cached sequence of a template that was never resolved.
const unresolved = -1

// leftoverMarker matches any marker that no group replaced.
var leftoverMarker = regexp.MustCompile(`(?s)/\*\*.+?\*\*/`)

// Marker returns the marker a template uses to place the group called name.
func Marker(name string) string {
	return "/**" + name + "**/"
}

// Template is a SQL string with group markers, resolved against the current
// state of its Builder.
type Template struct {
	builder *Builder
	raw     string
	initial *params.Bag
	err     error

	seq    int
	sql    string
	params *params.Bag
}

func newTemplate(b *Builder, raw string, p any) *Template {
	t := &Template{
		builder: b,
		raw:     raw,
		seq:     unresolved,
	}
	bag, err := toBag(p)
	if err != nil {
		t.err = err
		bag = params.New()
	}
	t.initial = bag
	return t
}

// Raw returns the template text before resolution.
func (t *Template) Raw() string { return t.raw }

// SQL returns the resolved SQL text.
func (t *Template) SQL() string {
	t.resolve()
	return t.sql
}

// Params returns the resolved parameters: the template's own parameters
// overwritten by those of every group of the Builder. The bag is cached along
// with the SQL and is returned as is until the Builder changes; callers must
// not modify it.
func (t *Template) Params() *params.Bag {
	t.resolve()
	return t.params
}

// Err reports a failure to convert the template's parameters and every error
// recorded on its Builder.
func (t *Template) Err() error {
	return errors.Join(t.err, t.builder.Err())
}

// Bind resolves the template and rewrites its named parameter references into
// the positional placeholders of d, returning the matching argument list.
func (t *Template) Bind(d dialect.Dialect) (string, []any, error) {
	if err := t.Err(); err != nil {
		return "", nil, err
	}
	return bind.Bind(d, t.SQL(), t.Params())
}

func (t *Template) resolve() {
	if t.seq == t.builder.seq {
		return
	}

	sink := t.initial.Clone()
	sql := t.raw

	// Every group is resolved, marker or not, so its parameters always reach
	// the sink.
	for _, g := range t.builder.Groups() {
		sql = strings.ReplaceAll(sql, Marker(g.name), g.Resolve(sink))
	}
	if t.builder.where == nil {
		sql = strings.ReplaceAll(sql, Marker(GroupWhere), "")
	}
	sql = leftoverMarker.ReplaceAllLiteralString(sql, "")

	t.sql = sql
	t.params = sink
	t.seq = t.builder.seq
}
