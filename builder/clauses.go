package builder

// Group names used by the clause helpers. Templates refer to them with
// markers such as /**select**/.
const (
	GroupSelect     = "select"
	GroupWhere      = "where"
	GroupOrderBy    = "orderby"
	GroupGroupBy    = "groupby"
	GroupHaving     = "having"
	GroupSet        = "set"
	GroupJoin       = "join"
	GroupInnerJoin  = "innerjoin"
	GroupLeftJoin   = "leftjoin"
	GroupRightJoin  = "rightjoin"
	GroupIntersect  = "intersect"
	GroupParameters = "--parameters"
)

// Select adds a column expression: "id , name\n".
func (b *Builder) Select(sql string, p ...any) *Builder {
	return b.AddClause(GroupSelect, sql, objects(p), " , ", "", "\n")
}

// Where adds a predicate connected to the previous one with AND.
func (b *Builder) Where(sql string, p ...any) *Builder {
	return b.AddClause(GroupWhere, sql, objects(p), And, "", "")
}

// OrWhere adds a predicate connected to the previous one with OR.
func (b *Builder) OrWhere(sql string, p ...any) *Builder {
	return b.AddClause(GroupWhere, sql, objects(p), Or, "", "")
}

func (b *Builder) OrderBy(sql string, p ...any) *Builder {
	return b.AddClause(GroupOrderBy, sql, objects(p), " , ", "ORDER BY ", "\n")
}

func (b *Builder) GroupBy(sql string, p ...any) *Builder {
	return b.AddClause(GroupGroupBy, sql, objects(p), " , ", "\nGROUP BY ", "\n")
}

// Having adds a HAVING predicate; predicates are always joined with AND.
func (b *Builder) Having(sql string, p ...any) *Builder {
	return b.AddClause(GroupHaving, sql, objects(p), "\nAND ", "HAVING ", "\n")
}

// Set adds an assignment of an UPDATE statement.
func (b *Builder) Set(sql string, p ...any) *Builder {
	return b.AddClause(GroupSet, sql, objects(p), " , ", "SET ", "\n")
}

func (b *Builder) Join(sql string, p ...any) *Builder {
	return b.AddClause(GroupJoin, sql, objects(p), "\nJOIN ", "\nJOIN ", "\n")
}

func (b *Builder) InnerJoin(sql string, p ...any) *Builder {
	return b.AddClause(GroupInnerJoin, sql, objects(p), "\nINNER JOIN ", "\nINNER JOIN ", "\n")
}

func (b *Builder) LeftJoin(sql string, p ...any) *Builder {
	return b.AddClause(GroupLeftJoin, sql, objects(p), "\nLEFT JOIN ", "\nLEFT JOIN ", "\n")
}

func (b *Builder) RightJoin(sql string, p ...any) *Builder {
	return b.AddClause(GroupRightJoin, sql, objects(p), "\nRIGHT JOIN ", "\nRIGHT JOIN ", "\n")
}

// Intersect adds a query combined with the others by INTERSECT.
func (b *Builder) Intersect(sql string, p ...any) *Builder {
	return b.AddClause(GroupIntersect, sql, objects(p), "\nINTERSECT\n ", "\n ", "\n")
}

// AddParameters binds parameters without adding any SQL text.
func (b *Builder) AddParameters(p ...any) *Builder {
	return b.AddClause(GroupParameters, "", objects(p), "", "", "")
}
