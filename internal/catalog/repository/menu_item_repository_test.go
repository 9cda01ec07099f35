package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brewline/internal/testutil"
)

func TestNewMySQLMenuItemRepository(t *testing.T) {
	db := &sql.DB{}
	repo := NewMySQLMenuItemRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

func TestMenuItemRepository_ListAvailable(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	testutil.SeedMenuItem(t, db, "Espresso", "50.00", true)
	testutil.SeedMenuItem(t, db, "Seasonal special", "80.00", false)

	repo := NewMySQLMenuItemRepository(db)

	all, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 2)

	available, err := repo.ListAvailable(context.Background())
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, "Espresso", available[0].Name)
}

func TestMenuItemRepository_FindAvailableByIDs(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	espressoID := testutil.SeedMenuItem(t, db, "Espresso", "50.00", true)
	hiddenID := testutil.SeedMenuItem(t, db, "Seasonal special", "80.00", false)

	repo := NewMySQLMenuItemRepository(db)

	tx, err := db.Begin()
	require.NoError(t, err)
	defer tx.Rollback()

	found, err := repo.FindAvailableByIDs(context.Background(), tx, []uint{espressoID, hiddenID, 9999})
	require.NoError(t, err)

	require.Len(t, found, 1)
	assert.Equal(t, espressoID, found[0].ID)
}

func TestMenuItemRepository_FindAvailableByIDs_EmptyInput(t *testing.T) {
	repo := NewMySQLMenuItemRepository(nil)

	found, err := repo.FindAvailableByIDs(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Nil(t, found)
}
