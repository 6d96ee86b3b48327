//go:build integration

package mysql

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/docker/go-connections/nat"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/mysql"
	"go.uber.org/zap"
)

var tables = []string{"notifications", "daily_reports", "todos", "admins"}

// startMySQL runs a MySQL container with db/schema.sql applied and returns a
// store connected to it. The container lives as long as t.
func startMySQL(t *testing.T) *Store {
	t.Helper()
	ctx := context.Background()

	root, err := os.Getwd()
	require.NoError(t, err)
	schema := filepath.Join(root, "..", "..", "..", "db", "schema.sql")

	container, err := mysql.RunContainer(ctx,
		mysql.WithDatabase("teamboard_test"),
		mysql.WithUsername("teamboard"),
		mysql.WithPassword("teamboard"),
		mysql.WithScripts(schema),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, nat.Port("3306/tcp"))
	require.NoError(t, err)

	conn, err := Open("teamboard:teamboard@tcp(" + host + ":" + port.Port() + ")/teamboard_test?loc=UTC")
	require.NoError(t, err)
	store := New(conn, zap.NewNop())
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func truncate(t *testing.T, store *Store) {
	t.Helper()
	for _, table := range tables {
		_, err := store.conn.Exec("TRUNCATE TABLE " + table)
		require.NoError(t, err)
	}
}
