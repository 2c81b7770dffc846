package migrations

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Simplici0/clinicprice/internal/db"
)

func TestUpCreatesSchemaAndIsRepeatable(t *testing.T) {
	database, err := db.Open(filepath.Join(t.TempDir(), "migrate.db"))
	require.NoError(t, err)
	defer database.Close()

	ctx := context.Background()
	version, err := Up(ctx, database, "../../migrations")
	require.NoError(t, err)
	require.EqualValues(t, 1, version)

	again, err := Up(ctx, database, "../../migrations")
	require.NoError(t, err)
	require.Equal(t, version, again)

	var tables int
	require.NoError(t, database.QueryRow(`
		SELECT COUNT(*) FROM sqlite_master
		WHERE type = 'table' AND name IN ('global_settings', 'clinic_capacity', 'services', 'service_equipment')
	`).Scan(&tables))
	require.Equal(t, 4, tables)
}
