package dialect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantName string
		wantPh   string
	}{
		{"pgx driver", "pgx", "postgres", "$3"},
		{"postgres", " PostgreSQL ", "postgres", "$3"},
		{"mysql", "mysql", "mysql", "?"},
		{"tidb", "tidb", "tidb", "?"},
		{"sqlite", "sqlite3", "sqlite", "?"},
		{"sqlserver", "mssql", "sqlserver", "@p3"},
		{"oracle", "godror", "oracle", ":3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := ByName(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, d.Name())
			assert.Equal(t, tt.wantPh, d.Placeholder(3))
		})
	}
}

func TestByNameUnknown(t *testing.T) {
	_, err := ByName("dbase")
	assert.ErrorIs(t, err, ErrUnknownDialect)
}
