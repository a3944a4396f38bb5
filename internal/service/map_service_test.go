package service

import (
	"context"
	"testing"

	"github.com/mapwise/capmap/internal/domain"
	"github.com/mapwise/capmap/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapService_CreateDefaults(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	m := &domain.Map{Name: "Platform"}
	require.NoError(t, env.Maps.Create(ctx, m))

	assert.NotEmpty(t, m.ID, "service should assign UUID")
	assert.Equal(t, domain.DefaultSizeHours(), m.SizeHours)

	got, err := env.Maps.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "Platform", got.Name)
}

func TestMapService_CreateRequiresName(t *testing.T) {
	env := newTestEnv(t)
	err := env.Maps.Create(context.Background(), &domain.Map{})
	assert.Error(t, err)
}

func TestMapService_LoadBoard(t *testing.T) {
	env := newTestEnv(t)
	m, cat := seedBoard(t, env)
	ctx := context.Background()

	require.NoError(t, env.CapRepo.Create(ctx, testutil.NewTestCapability(cat.ID, "Tile")))

	data, err := env.Maps.LoadBoard(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, m.ID, data.Map.ID)
	require.Len(t, data.Categories, 1)
	require.Len(t, data.Capabilities, 1)
	assert.Equal(t, "Tile", data.Capabilities[0].Name)
	assert.Empty(t, data.AppliedTemplates)
}

func TestMapService_LoadBoardMissingMap(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.Maps.LoadBoard(context.Background(), "ghost")
	assert.Error(t, err)
}
