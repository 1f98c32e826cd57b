package dapper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/galatic-association/Dapper/dialect"
)

func TestPaging(t *testing.T) {
	b := New().
		Select("id").Select("email").
		Where("status = @status", NewParams().Set("status", "active")).
		OrderBy("created_at DESC")

	page := b.AddTemplate("SELECT /**select**/ FROM users /**where**/ /**orderby**/LIMIT @limit OFFSET @offset",
		map[string]any{"limit": 10, "offset": 20})
	count := b.AddTemplate("SELECT COUNT(*) FROM users /**where**/")

	assert.Equal(t, "SELECT id , email\n FROM users WHERE status = @status\n ORDER BY created_at DESC\nLIMIT @limit OFFSET @offset", page.SQL())
	assert.Equal(t, "SELECT COUNT(*) FROM users WHERE status = @status\n", count.SQL())

	sql, args, err := count.Bind(dialect.NewMySQLDialect())
	require.NoError(t, err)
	assert.Equal(t, "SELECT COUNT(*) FROM users WHERE status = ?\n", sql)
	assert.Equal(t, []any{"active"}, args)
}
