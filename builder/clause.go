package builder

import (
	"strings"

	"github.com/galatic-association/Dapper/params"
)

// Logical joiners for WHERE fragments.
const (
	And = " AND "
	Or  = " OR "
)

// Fragment is one piece of SQL appended to a clause group together with the
// parameters it binds. Fragments are not modified after they are added.
type Fragment struct {
	sql    string
	params *params.Bag
	joiner string
}

// SQL returns the fragment text.
func (f Fragment) SQL() string { return f.sql }

// Params returns the parameters bound by the fragment. The bag is shared with
// the group and must not be modified.
func (f Fragment) Params() *params.Bag { return f.params }

// Joiner returns the joiner the fragment was added with.
func (f Fragment) Joiner() string { return f.joiner }

// joinerFunc returns the text written between a fragment and the one before it.
type joinerFunc func(g *ClauseGroup, f Fragment) string

func groupJoiner(g *ClauseGroup, _ Fragment) string { return g.joiner }

func fragmentJoiner(_ *ClauseGroup, f Fragment) string { return f.joiner }

// ClauseGroup is an ordered list of fragments resolved into one piece of SQL.
type ClauseGroup struct {
	name      string
	prefix    string
	postfix   string
	joiner    string
	joinerFor joinerFunc
	fragments []Fragment
}

func newClauseGroup(name, joiner, prefix, postfix string) *ClauseGroup {
	return &ClauseGroup{
		name:      name,
		prefix:    prefix,
		postfix:   postfix,
		joiner:    joiner,
		joinerFor: groupJoiner,
	}
}

func newWhereGroup() *ClauseGroup {
	return &ClauseGroup{
		name:      GroupWhere,
		prefix:    "WHERE ",
		postfix:   "\n",
		joinerFor: fragmentJoiner,
	}
}

func (g *ClauseGroup) append(f Fragment) {
	g.fragments = append(g.fragments, f)
}

// Name returns the group name, which is also its marker name.
func (g *ClauseGroup) Name() string { return g.name }

// Len returns the number of fragments in the group.
func (g *ClauseGroup) Len() int { return len(g.fragments) }

// Fragments returns the fragments in the order they were added.
func (g *ClauseGroup) Fragments() []Fragment {
	out := make([]Fragment, len(g.fragments))
	copy(out, g.fragments)
	return out
}

// Resolve renders the group and merges the parameters of every fragment into
// sink. A nil sink discards the parameters. An empty group resolves to its
// prefix followed by its postfix.
func (g *ClauseGroup) Resolve(sink *params.Bag) string {
	var sb strings.Builder
	sb.WriteString(g.prefix)
	for i, f := range g.fragments {
		if i > 0 {
			sb.WriteString(g.joinerFor(g, f))
		}
		sb.WriteString(f.sql)
		if sink != nil {
			sink.Merge(f.params)
		}
	}
	sb.WriteString(g.postfix)
	return sb.String()
}
