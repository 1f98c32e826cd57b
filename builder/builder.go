package builder

import (
	"errors"
	"fmt"

	"github.com/galatic-association/Dapper/params"
)

// Builder collects SQL fragments into named clause groups.
//
// The zero value is ready to use. A Builder is shared by reference with every
// Template created from it.
type Builder struct {
	groups map[string]*ClauseGroup
	order  []string
	where  *ClauseGroup
	seq    int
	errors []error
}

// New creates an empty Builder.
func New() *Builder {
	return &Builder{groups: make(map[string]*ClauseGroup)}
}

// AddClause appends sql to the group called name, binding the parameters held
// by p (see params.Bag.AddObject for the accepted shapes).
//
// A group is created by the first fragment added to it and keeps the joiner,
// prefix and postfix given then; later calls only add fragments. The "where"
// group ignores prefix and postfix and records joiner on the fragment itself,
// as the text connecting it to the previous WHERE fragment.
//
// Every successful call advances the Builder's modification counter by one.
// If p cannot be converted the fragment is dropped and the error is recorded;
// see Err.
func (b *Builder) AddClause(name, sql string, p any, joiner, prefix, postfix string) *Builder {
	bag, err := toBag(p)
	if err != nil {
		b.AddError(fmt.Errorf("builder: %s clause %q: %w", name, sql, err))
		return b
	}

	f := Fragment{sql: sql, params: bag, joiner: joiner}
	if name == GroupWhere {
		if b.where == nil {
			b.where = newWhereGroup()
			b.register(b.where)
		}
		b.where.append(f)
	} else {
		g, ok := b.groups[name]
		if !ok {
			g = newClauseGroup(name, joiner, prefix, postfix)
			b.register(g)
		}
		g.append(f)
	}

	b.seq++
	return b
}

func (b *Builder) register(g *ClauseGroup) {
	if b.groups == nil {
		b.groups = make(map[string]*ClauseGroup)
	}
	b.groups[g.name] = g
	b.order = append(b.order, g.name)
}

// Seq returns the modification counter: the number of fragments added so far.
func (b *Builder) Seq() int {
	return b.seq
}

// Group returns the group called name, if any fragment was ever added to it.
func (b *Builder) Group(name string) (*ClauseGroup, bool) {
	g, ok := b.groups[name]
	return g, ok
}

// Groups returns every group in the order the groups were created.
func (b *Builder) Groups() []*ClauseGroup {
	out := make([]*ClauseGroup, 0, len(b.order))
	for _, name := range b.order {
		out = append(out, b.groups[name])
	}
	return out
}

// AddTemplate creates a Template over sql bound to b. The parameters held by
// p seed every resolution of the template.
func (b *Builder) AddTemplate(sql string, p ...any) *Template {
	return newTemplate(b, sql, objects(p))
}

// AddError records err on the builder. Nil errors are ignored.
func (b *Builder) AddError(err error) {
	if err != nil {
		b.errors = append(b.errors, err)
	}
}

// HasErrors reports whether any error was recorded.
func (b *Builder) HasErrors() bool {
	return len(b.errors) > 0
}

// Err returns every recorded error joined into one, or nil.
func (b *Builder) Err() error {
	return errors.Join(b.errors...)
}

// objects is the variadic parameter list of the clause helpers; every
// element is merged into one bag in order.
type objects []any

func toBag(p any) (*params.Bag, error) {
	list, ok := p.(objects)
	if !ok {
		return params.From(p)
	}
	bag := params.New()
	for _, obj := range list {
		if err := bag.AddObject(obj); err != nil {
			return nil, err
		}
	}
	return bag, nil
}
