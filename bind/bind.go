// Package bind rewrites named parameter references into positional
// placeholders.
//
// References are written "@name" or ":name". Each reference becomes one
// placeholder of the target dialect, in order of appearance, and the value
// bound to the name is appended to the argument list:
//
//	sql, args, err := bind.Bind(dialect.NewPostgresDialect(),
//		`SELECT * FROM users WHERE status = @status AND id IN (@ids)`,
//		params.New().Set("status", "active").Set("ids", []int{1, 2, 3}),
//	)
//	// sql  => SELECT * FROM users WHERE status = $1 AND id IN ($2,$3,$4)
//	// args => ["active", 1, 2, 3]
//
// Slice and array values expand to one placeholder per element; an empty one
// becomes NULL. []byte, byte arrays such as uuid.UUID, and driver.Valuer
// values bind as a single argument. The surrounding parentheses of an IN list
// are part of the SQL, not added by the expansion.
//
// Quoted strings and identifiers, comments, dollar-quoted bodies, "::" casts
// and "@@" system variables are left untouched.
package bind

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/galatic-association/Dapper/cache"
	"github.com/galatic-association/Dapper/dialect"
	"github.com/galatic-association/Dapper/params"
)

// ErrMissingParam is returned when the SQL references a name with no value.
var ErrMissingParam = errors.New("bind: missing value for parameter")

// Binder binds SQL text, caching the scan of each distinct text.
// It is safe for concurrent use.
type Binder struct {
	plans *cache.PlanCache[[]ref]
}

// NewBinder creates a Binder caching up to size scans.
func NewBinder(size int) (*Binder, error) {
	plans, err := cache.NewPlanCache[[]ref](size)
	if err != nil {
		return nil, fmt.Errorf("bind: plan cache: %w", err)
	}
	return &Binder{plans: plans}, nil
}

var defaultBinder = mustBinder(cache.DefaultPlanCacheSize)

func mustBinder(size int) *Binder {
	b, err := NewBinder(size)
	if err != nil {
		panic(err)
	}
	return b
}

// Bind binds sql with the package-level Binder.
func Bind(d dialect.Dialect, sql string, p *params.Bag) (string, []any, error) {
	return defaultBinder.Bind(d, sql, p)
}

// Names returns the parameter names referenced by sql, in order of
// appearance and without duplicates.
func Names(sql string) []string {
	return defaultBinder.Names(sql)
}

// Bind rewrites the named references of sql into placeholders of d and
// returns the matching arguments taken from p.
func (b *Binder) Bind(d dialect.Dialect, sql string, p *params.Bag) (string, []any, error) {
	refs := b.refs(sql)
	if len(refs) == 0 {
		return sql, nil, nil
	}

	var sb strings.Builder
	sb.Grow(len(sql) + 4*len(refs))
	args := make([]any, 0, len(refs))
	last := 0

	for _, r := range refs {
		sb.WriteString(sql[last:r.start])

		val, ok := p.Get(r.name)
		if !ok {
			return "", nil, fmt.Errorf("%w: %s", ErrMissingParam, r.name)
		}

		if items, ok := expand(val); ok {
			if len(items) == 0 {
				sb.WriteString("NULL")
			}
			for i, item := range items {
				if i > 0 {
					sb.WriteByte(',')
				}
				args = append(args, item)
				sb.WriteString(d.Placeholder(len(args)))
			}
		} else {
			args = append(args, val)
			sb.WriteString(d.Placeholder(len(args)))
		}
		last = r.end
	}
	sb.WriteString(sql[last:])
	return sb.String(), args, nil
}

// Names returns the parameter names referenced by sql without duplicates.
func (b *Binder) Names(sql string) []string {
	refs := b.refs(sql)
	seen := make(map[string]bool, len(refs))
	var out []string
	for _, r := range refs {
		if !seen[r.name] {
			seen[r.name] = true
			out = append(out, r.name)
		}
	}
	return out
}

func (b *Binder) refs(sql string) []ref {
	refs, _ := b.plans.GetOrBuild(sql, func(s string) ([]ref, error) {
		return scan(s), nil
	})
	return refs
}

// expand returns the elements of list values.
func expand(v any) ([]any, bool) {
	if v == nil {
		return nil, false
	}
	if _, ok := v.(driver.Valuer); ok {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return nil, false
		}
	default:
		return nil, false
	}

	items := make([]any, rv.Len())
	for i := range items {
		items[i] = rv.Index(i).Interface()
	}
	return items, true
}
