package items

import (
	"context"
	"database/sql"
	"testing"

	"github.com/dberzins/stockroom/internal/client/localdb"
	"github.com/dberzins/stockroom/internal/client/models"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := localdb.InitDatabase(context.Background(), "file:itemsrepo?mode=memory&cache=shared")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestGetAll_ReturnsSeededDemoDataset(t *testing.T) {
	repo := NewSQLiteRepository(setupDB(t))

	records, err := repo.GetAll(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, records)

	groups := map[string]bool{}
	for _, r := range records {
		groups[r.GroupID] = true
		require.Equal(t, "demo", r.OrganizationID)
	}
	require.True(t, groups["DemoWarehouse001"])
	require.True(t, groups["DemoGarage000001"])
}

func TestGetByGroup(t *testing.T) {
	repo := NewSQLiteRepository(setupDB(t))

	records, err := repo.GetByGroup(context.Background(), "DemoGarage000001")
	require.NoError(t, err)
	require.NotEmpty(t, records)
	for _, r := range records {
		require.Equal(t, "DemoGarage000001", r.GroupID)
		require.Equal(t, "Demo Garage", r.GroupName)
	}

	empty, err := repo.GetByGroup(context.Background(), "missing")
	require.NoError(t, err)
	require.Empty(t, empty)
}

func TestReplaceAll_SwapsDataSet(t *testing.T) {
	repo := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	err := repo.ReplaceAll(ctx, []models.Record{
		{ItemID: "i1", Name: "Bolts", Quantity: 10, GroupID: "g1", GroupName: "W", OrganizationID: "org1"},
		{ItemID: "i2", Name: "anvils", Quantity: 1, GroupID: "g1", GroupName: "W", OrganizationID: "org1"},
	})
	require.NoError(t, err)

	records, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	// Collation is case-insensitive.
	require.Equal(t, "anvils", records[0].Name)
	require.Equal(t, "Bolts", records[1].Name)
}

func TestReplaceAll_RollsBackOnConflict(t *testing.T) {
	repo := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, repo.ReplaceAll(ctx, []models.Record{
		{ItemID: "i1", Name: "Bolts", GroupID: "g1"},
	}))

	// Duplicate primary key inside the batch fails the transaction; the
	// previous data set must survive.
	err := repo.ReplaceAll(ctx, []models.Record{
		{ItemID: "dup", Name: "A", GroupID: "g2"},
		{ItemID: "dup", Name: "B", GroupID: "g2"},
	})
	require.Error(t, err)

	records, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, "Bolts", records[0].Name)
}
