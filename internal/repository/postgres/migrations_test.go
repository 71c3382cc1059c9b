package postgres

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationsAreOrdered(t *testing.T) {
	migrations, err := Migrations()
	require.NoError(t, err)
	require.Len(t, migrations, 2)

	assert.Equal(t, "migrations/001_fiscal_figures.sql", migrations[0].Name)
	assert.Contains(t, migrations[0].SQL, "CREATE TABLE IF NOT EXISTS fiscal_figures")
	assert.True(t, strings.HasSuffix(migrations[1].Name, "002_sheet_writes.sql"))
}
