package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/mapwise/capmap/internal/domain"
	"github.com/mapwise/capmap/internal/repository"
	"github.com/mapwise/capmap/internal/testutil"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	DB       *sql.DB
	Maps     MapService
	Cats     CategoryService
	Caps     CapabilityService
	Bulk     BulkService
	MapRepo  repository.MapRepo
	CatRepo  repository.CategoryRepo
	CapRepo  repository.CapabilityRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	mapRepo := repository.NewSQLiteMapRepo(database)
	catRepo := repository.NewSQLiteCategoryRepo(database)
	capRepo := repository.NewSQLiteCapabilityRepo(database)
	appliedRepo := repository.NewSQLiteAppliedTemplateRepo(database)
	uow := testutil.NewTestUoW(database)

	return &testEnv{
		DB:      database,
		Maps:    NewMapService(mapRepo, catRepo, capRepo, appliedRepo),
		Cats:    NewCategoryService(catRepo, uow),
		Caps:    NewCapabilityService(capRepo, catRepo, mapRepo),
		Bulk:    NewBulkService(mapRepo, capRepo),
		MapRepo: mapRepo,
		CatRepo: catRepo,
		CapRepo: capRepo,
	}
}

// seedBoard creates a map with one category and returns both.
func seedBoard(t *testing.T, env *testEnv, opts ...testutil.MapOption) (*domain.Map, *domain.Category) {
	t.Helper()
	ctx := context.Background()

	m := testutil.NewTestMap("Board", opts...)
	require.NoError(t, env.MapRepo.Create(ctx, m))
	cat := testutil.NewTestCategory(m.ID, "Core")
	require.NoError(t, env.CatRepo.Create(ctx, cat))
	return m, cat
}
