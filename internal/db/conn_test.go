package db

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T, parts ...string) (*Store, string) {
	t.Helper()
	path := filepath.Join(append([]string{t.TempDir()}, parts...)...)
	store, err := NewStore(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store, path
}

func TestNewStore(t *testing.T) {
	ctx := context.Background()

	t.Run("creates nested data directory", func(t *testing.T) {
		_, path := openTemp(t, "data", "nested", "adnova.db")
		_, err := os.Stat(path)
		assert.NoError(t, err)
	})

	store, _ := openTemp(t, "adnova.db")
	pragmas := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
	}
	for _, p := range pragmas {
		t.Run(p.pragma, func(t *testing.T) {
			var got string
			require.NoError(t, store.QueryRowContext(ctx, "PRAGMA "+p.pragma).Scan(&got))
			assert.Equal(t, p.want, got)
		})
	}
}

func TestStore_Migrate(t *testing.T) {
	ctx := context.Background()
	store, _ := openTemp(t, "adnova.db")

	require.NoError(t, store.Migrate(ctx))
	require.NoError(t, store.Migrate(ctx), "second run must be a no-op")

	var applied int
	require.NoError(t, store.QueryRowContext(ctx, "SELECT COUNT(*) FROM schema_migrations").Scan(&applied))
	assert.Equal(t, 2, applied)

	for _, table := range []string{"briefs", "ads", "feedback", "brand_voices", "reflections", "client_strategies"} {
		var n int
		err := store.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&n)
		require.NoError(t, err)
		assert.Equal(t, 1, n, table)
	}

	st, err := store.Stats(ctx)
	require.NoError(t, err)
	assert.Zero(t, st.Briefs)
	assert.Empty(t, st.AdsByType)
}

func TestExtractUpMigration(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "up and down",
			content: "-- +migrate Up\nCREATE TABLE briefs (id TEXT);\n\n-- +migrate Down\nDROP TABLE briefs;\n",
			want:    "CREATE TABLE briefs (id TEXT);",
		},
		{
			name:    "no down marker",
			content: "CREATE TABLE briefs (id TEXT);",
			want:    "CREATE TABLE briefs (id TEXT);",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractUpMigration(tt.content))
		})
	}
}
