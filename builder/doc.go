// Package builder assembles SQL text from named clause groups and splices it into
// templates.
//
// A Builder collects fragments of SQL, each with the parameters it binds, into
// named groups ("select", "where", "orderby", ...). A Template is a SQL string
// with markers of the form /**name**/; resolving the template replaces each
// marker with the text of the group of that name and merges the parameters of
// every group into one params.Bag.
//
// 	b := builder.New()
// 	tmpl := b.AddTemplate(`SELECT /**select**/ FROM users /**where**/ /**orderby**/`)
//
// 	b.Select("id").Select("email")
// 	if name != "" {
// 		b.Where("name = @name", map[string]any{"name": name})
// 	}
// 	b.OrderBy("created_at DESC")
//
// 	sql, args := tmpl.SQL(), tmpl.Params()
//
// # Groups
//
// Fragments of a group are joined in the order they were added. Every group but
// "where" is joined with the joiner it was created with; the prefix, postfix and
// joiner of a group are fixed by the first fragment added to it. The "where"
// group is always wrapped as "WHERE ...\n" and each fragment carries its own
// joiner: Where connects with AND, OrWhere with OR. The joiner of the first
// WHERE fragment is never written.
//
// 	b.Where("a = 1").OrWhere("b = 2").Where("c = 3")
// 	// WHERE a = 1 OR b = 2 AND c = 3
//
// No parentheses are added; wrap the fragment text when precedence matters.
//
// # Resolution
//
// Templates read the Builder when they are resolved, not when they are created.
// Many templates may share one Builder (a page query and its count query, for
// example), and every change to the Builder is seen by all of them. A resolved
// template is cached until the Builder changes again; any change, to any group,
// invalidates the cache of every template bound to it.
//
// Markers left after all groups are substituted, including /**where**/ when no
// WHERE fragment was ever added, are removed. Parameters of every group the
// Builder knows are merged into the result, whether or not the template has a
// marker for that group. When two fragments bind the same name the later merge
// wins.
//
// # Concurrency
//
// Builder and Template are not safe for concurrent use. Resolving a template
// writes its cache, so even concurrent reads of one Template need external
// synchronization.
package builder
