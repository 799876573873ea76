package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	corestore "github.com/skylark/droneops/core/store"
	infrastore "github.com/skylark/droneops/infra/store"
)

const seedJSON = `{
  "missions": [
    ["M101", "Acme", "Austin", "thermal", "2024-01-01", "2024-01-05", "normal", "Open", "", ""]
  ],
  "pilot_roster": [
    ["Ana", "thermal", "Part107", "5y", "Austin", "", "Available", "Yes"]
  ],
  "drone_fleet": [
    ["D7", "M350", "thermal", "Available", "Austin", "2024-06-01", ""]
  ]
}`

func writeSeed(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.json")
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

func TestSeedStoreMemory(t *testing.T) {
	st := infrastore.NewMemoryStore()
	require.NoError(t, seedStore(context.Background(), st, writeSeed(t, seedJSON)))

	rows, err := st.ReadAll(context.Background(), corestore.KindMissions)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "M101", rows[0][0])
}

func TestSeedStoreSQLite(t *testing.T) {
	st, err := infrastore.NewSQLiteStore(filepath.Join(t.TempDir(), "ops.db"))
	require.NoError(t, err)
	defer func() { assert.NoError(t, st.Close()) }()

	require.NoError(t, seedStore(context.Background(), st, writeSeed(t, seedJSON)))

	rows, err := st.ReadAll(context.Background(), corestore.KindPilots)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Ana", rows[0][0])
}

func TestSeedStoreSkipsNonEmptyTables(t *testing.T) {
	st := infrastore.NewMemoryStore()
	st.Seed(corestore.KindMissions, []corestore.Row{
		{"M200", "Initech", "Boston", "lidar", "2024-02-01", "2024-02-03", "normal", "Open", "", ""},
	})

	require.NoError(t, seedStore(context.Background(), st, writeSeed(t, seedJSON)))

	rows, err := st.ReadAll(context.Background(), corestore.KindMissions)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "M200", rows[0][0])
}

func TestSeedStoreRejectsWrongWidth(t *testing.T) {
	st := infrastore.NewMemoryStore()
	err := seedStore(context.Background(), st, writeSeed(t, `{"missions": [["M101", "Acme"]]}`))
	assert.Error(t, err)
}

func TestSeedStoreRejectsUnknownTable(t *testing.T) {
	st := infrastore.NewMemoryStore()
	err := seedStore(context.Background(), st, writeSeed(t, `{"hangars": []}`))
	assert.Error(t, err)
}
