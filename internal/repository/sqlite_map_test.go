package repository

import (
	"context"
	"testing"

	"github.com/mapwise/capmap/internal/domain"
	"github.com/mapwise/capmap/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapRepo_CreateAndGet(t *testing.T) {
	repo := NewSQLiteMapRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	m := testutil.NewTestMap("Platform", testutil.WithPhaseColors(map[domain.Phase]string{
		domain.Phase1: "#1f6feb",
	}))
	require.NoError(t, repo.Create(ctx, m))

	got, err := repo.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "Platform", got.Name)
	assert.Equal(t, domain.DefaultSizeHours(), got.SizeHours)
	assert.Equal(t, "#1f6feb", got.PhaseColors[domain.Phase1])
}

func TestMapRepo_GetMissing(t *testing.T) {
	repo := NewSQLiteMapRepo(testutil.NewTestDB(t))
	_, err := repo.GetByID(context.Background(), "nope")
	assert.Error(t, err)
}

func TestMapRepo_List(t *testing.T) {
	repo := NewSQLiteMapRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestMap("One")))
	require.NoError(t, repo.Create(ctx, testutil.NewTestMap("Two")))

	maps, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, maps, 2)
}

func TestMapRepo_Update(t *testing.T) {
	repo := NewSQLiteMapRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	m := testutil.NewTestMap("Old")
	require.NoError(t, repo.Create(ctx, m))

	m.Name = "New"
	m.SizeHours[domain.SizeXL] = 40
	require.NoError(t, repo.Update(ctx, m))

	got, err := repo.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "New", got.Name)
	assert.Equal(t, 40, got.SizeHours[domain.SizeXL])
}

func TestMapRepo_DeleteCascades(t *testing.T) {
	database := testutil.NewTestDB(t)
	maps := NewSQLiteMapRepo(database)
	cats := NewSQLiteCategoryRepo(database)
	caps := NewSQLiteCapabilityRepo(database)
	ctx := context.Background()

	m := testutil.NewTestMap("Doomed")
	require.NoError(t, maps.Create(ctx, m))
	cat := testutil.NewTestCategory(m.ID, "Col")
	require.NoError(t, cats.Create(ctx, cat))
	require.NoError(t, caps.Create(ctx, testutil.NewTestCapability(cat.ID, "Tile")))

	require.NoError(t, maps.Delete(ctx, m.ID))

	left, err := caps.ListByMap(ctx, m.ID)
	require.NoError(t, err)
	assert.Empty(t, left, "capabilities cascade with the map")
}
