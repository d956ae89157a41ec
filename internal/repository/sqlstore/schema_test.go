package sqlstore

import (
	"context"
	"strings"
	"testing"

	"github.com/ignite/social-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Length limits are enforced by the services, never by column types.
func TestSchema_NoColumnLengthCaps(t *testing.T) {
	for _, name := range []string{"schema/postgres.sql", "schema/sqlite.sql"} {
		ddl, err := schemaFS.ReadFile(name)
		require.NoError(t, err)
		assert.NotContains(t, strings.ToUpper(string(ddl)), "VARCHAR", name)
	}
}

func TestSQLite_LongUsernameStored(t *testing.T) {
	accounts := openSQLite(t)
	long := strings.Repeat("u", 300)

	a, err := accounts.Insert(context.Background(), domain.Account{Username: long, Password: "pass1"})
	require.NoError(t, err)

	got, err := accounts.FindByUsername(context.Background(), long)
	require.NoError(t, err)
	assert.Equal(t, a, got)
}
