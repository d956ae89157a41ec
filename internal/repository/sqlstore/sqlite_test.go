package sqlstore

import (
	"context"
	"strings"
	"testing"

	"github.com/ignite/social-api/internal/config"
	"github.com/ignite/social-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openSQLite(t *testing.T) *AccountRepo {
	t.Helper()
	ctx := context.Background()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := Open(ctx, config.DatabaseConfig{
		Driver: config.DriverSQLite,
		URL:    "file:" + name + "?mode=memory&cache=shared",
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, EnsureSchema(ctx, db, config.DriverSQLite))
	return NewAccountRepo(db)
}

func TestSQLite_MessageRoundTrip(t *testing.T) {
	accounts := openSQLite(t)
	messages := NewMessageRepo(accounts.db)
	ctx := context.Background()

	want := domain.Message{PostedBy: 1, MessageText: "hello", TimePostedEpoch: 1669947792}
	inserted, err := messages.Insert(ctx, want)
	require.NoError(t, err)
	require.NotZero(t, inserted.MessageID)

	got, err := messages.GetByID(ctx, inserted.MessageID)
	require.NoError(t, err)
	want.MessageID = inserted.MessageID
	assert.Equal(t, &want, got)

	ok, err := messages.Delete(ctx, *got)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = messages.Delete(ctx, *got)
	require.NoError(t, err)
	assert.False(t, ok, "second delete must affect no row")
}

func TestSQLite_UniqueUsernameIsConflict(t *testing.T) {
	accounts := openSQLite(t)
	ctx := context.Background()

	first, err := accounts.Insert(ctx, domain.Account{Username: "alice", Password: "pass1"})
	require.NoError(t, err)

	_, err = accounts.Insert(ctx, domain.Account{Username: "alice", Password: "other"})
	assert.ErrorIs(t, err, domain.ErrConflict)

	all, err := accounts.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Account{*first}, all)
}

func TestSQLite_EnsureSchemaIsIdempotent(t *testing.T) {
	accounts := openSQLite(t)
	assert.NoError(t, EnsureSchema(context.Background(), accounts.db, config.DriverSQLite))
}

func TestSQLite_ListTables(t *testing.T) {
	accounts := openSQLite(t)
	tables, err := ListTables(context.Background(), accounts.db, config.DriverSQLite)
	require.NoError(t, err)
	assert.Equal(t, []string{"account", "message"}, tables)
}
