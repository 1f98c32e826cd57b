// Package dapper assembles SQL text from templates and named clause groups.
//
//	b := dapper.New().
//		Select("id").Select("email").
//		Where("status = @status", map[string]any{"status": "active"})
//	tmpl := b.AddTemplate("SELECT /**select**/ FROM users /**where**/")
//
//	tmpl.SQL()    // SELECT id , email\n FROM users WHERE status = @status\n
//	tmpl.Params() // status=active
//
// The builder, template and parameter types live in the builder and params
// packages; this package re-exports the common entry points.
package dapper

import (
	"context"

	"github.com/galatic-association/Dapper/builder"
	"github.com/galatic-association/Dapper/connector"
	"github.com/galatic-association/Dapper/dialect"
	"github.com/galatic-association/Dapper/params"
)

type (
	Builder  = builder.Builder
	Template = builder.Template
	Params   = params.Bag
	Config   = connector.Config
	Dialect  = dialect.Dialect
)

// New returns an empty Builder.
func New() *Builder {
	return builder.New()
}

// NewParams returns an empty parameter bag.
func NewParams() *Params {
	return params.New()
}

// Connect opens a PostgreSQL pool; see connector.Connect.
func Connect(ctx context.Context, cfg Config) (*connector.PostgresConnector, error) {
	return connector.Connect(ctx, cfg)
}
