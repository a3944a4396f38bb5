package service

import (
	"context"
	"testing"

	"github.com/mapwise/capmap/internal/board"
	"github.com/mapwise/capmap/internal/domain"
	"github.com/mapwise/capmap/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBulkApplyField_SizeRecomputesHours(t *testing.T) {
	env := newTestEnv(t)
	_, cat := seedBoard(t, env, testutil.WithSizeHours(map[domain.Size]int{domain.SizeXL: 32}))
	ctx := context.Background()

	a := testutil.NewTestCapability(cat.ID, "A", testutil.WithSize(domain.SizeM))
	c := testutil.NewTestCapability(cat.ID, "C", testutil.WithSize(domain.SizeL))
	require.NoError(t, env.CapRepo.Create(ctx, a))
	require.NoError(t, env.CapRepo.Create(ctx, c))

	size := domain.SizeXL
	applied, err := env.Bulk.ApplyField(ctx, cat.MapID, []string{a.ID, c.ID}, domain.CapabilityPatch{Size: &size})
	require.NoError(t, err)
	require.NotNil(t, applied.Hours)
	assert.Equal(t, 32, *applied.Hours)

	for _, id := range []string{a.ID, c.ID} {
		got, err := env.CapRepo.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, domain.SizeXL, got.Size)
		assert.Equal(t, 32, got.EffectiveHours())
	}
}

func TestBulkApplyField_OverrideStillWins(t *testing.T) {
	env := newTestEnv(t)
	_, cat := seedBoard(t, env)
	ctx := context.Background()

	c := testutil.NewTestCapability(cat.ID, "C", testutil.WithHoursOverride(100))
	require.NoError(t, env.CapRepo.Create(ctx, c))

	size := domain.SizeXL
	_, err := env.Bulk.ApplyField(ctx, cat.MapID, []string{c.ID}, domain.CapabilityPatch{Size: &size})
	require.NoError(t, err)

	got, err := env.CapRepo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 32, got.Hours, "computed hours updated")
	assert.Equal(t, 100, got.EffectiveHours(), "override keeps winning")
}

func TestBulkApplyField_Idempotent(t *testing.T) {
	env := newTestEnv(t)
	_, cat := seedBoard(t, env)
	ctx := context.Background()

	c := testutil.NewTestCapability(cat.ID, "C")
	require.NoError(t, env.CapRepo.Create(ctx, c))

	size := domain.SizeS
	_, err := env.Bulk.ApplyField(ctx, cat.MapID, []string{c.ID}, domain.CapabilityPatch{Size: &size})
	require.NoError(t, err)
	once, err := env.CapRepo.GetByID(ctx, c.ID)
	require.NoError(t, err)

	_, err = env.Bulk.ApplyField(ctx, cat.MapID, []string{c.ID}, domain.CapabilityPatch{Size: &size})
	require.NoError(t, err)
	twice, err := env.CapRepo.GetByID(ctx, c.ID)
	require.NoError(t, err)

	twice.UpdatedAt = once.UpdatedAt
	assert.Equal(t, once, twice, "same update twice equals once")
}

func TestBulkApplyField_PhaseAdoptsEstablishedColor(t *testing.T) {
	env := newTestEnv(t)
	_, cat := seedBoard(t, env)
	ctx := context.Background()

	existing := testutil.NewTestCapability(cat.ID, "Existing",
		testutil.WithPhase(domain.Phase2), testutil.WithColor("#112233"))
	fresh := testutil.NewTestCapability(cat.ID, "Fresh")
	require.NoError(t, env.CapRepo.Create(ctx, existing))
	require.NoError(t, env.CapRepo.Create(ctx, fresh))

	phase := domain.Phase2
	applied, err := env.Bulk.ApplyField(ctx, cat.MapID, []string{fresh.ID}, domain.CapabilityPatch{Phase: &phase})
	require.NoError(t, err)
	require.NotNil(t, applied.Color)
	assert.Equal(t, "#112233", *applied.Color)

	got, err := env.CapRepo.GetByID(ctx, fresh.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.Phase2, got.Phase)
	assert.Equal(t, "#112233", got.Color, "adopted the phase's color")
}

func TestBulkApplyField_ValidationRejectedBeforePersist(t *testing.T) {
	env := newTestEnv(t)
	_, cat := seedBoard(t, env)
	ctx := context.Background()

	c := testutil.NewTestCapability(cat.ID, "C")
	require.NoError(t, env.CapRepo.Create(ctx, c))

	bad := domain.Size("massive")
	_, err := env.Bulk.ApplyField(ctx, cat.MapID, []string{c.ID}, domain.CapabilityPatch{Size: &bad})
	require.Error(t, err)

	got, err := env.CapRepo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SizeTBD, got.Size, "no state change on validation failure")
}

func TestBulkApplyField_EmptySelectionRejected(t *testing.T) {
	env := newTestEnv(t)
	m, _ := seedBoard(t, env)
	name := "X"
	_, err := env.Bulk.ApplyField(context.Background(), m.ID, nil, domain.CapabilityPatch{Name: &name})
	assert.Error(t, err)
}

func TestBulkApplyColor_PropagatesAcrossPhase(t *testing.T) {
	env := newTestEnv(t)
	_, cat := seedBoard(t, env)
	ctx := context.Background()

	a := testutil.NewTestCapability(cat.ID, "A", testutil.WithPhase(domain.Phase1))
	b := testutil.NewTestCapability(cat.ID, "B", testutil.WithPhase(domain.Phase1))
	other := testutil.NewTestCapability(cat.ID, "Other", testutil.WithPhase(domain.Phase2))
	for _, c := range []*domain.Capability{a, b, other} {
		require.NoError(t, env.CapRepo.Create(ctx, c))
	}

	affected, err := env.Bulk.ApplyColor(ctx, cat.MapID, []string{a.ID}, "#FF8800", false)
	require.NoError(t, err)
	assert.Len(t, affected, 2, "selection plus phase-wide propagation")

	for _, id := range []string{a.ID, b.ID} {
		got, err := env.CapRepo.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "#ff8800", got.Color)
	}
	untouched, err := env.CapRepo.GetByID(ctx, other.ID)
	require.NoError(t, err)
	assert.Empty(t, untouched.Color)
}

func TestBulkApplyColor_RecordsPhaseColorOnMap(t *testing.T) {
	env := newTestEnv(t)
	m, cat := seedBoard(t, env)
	ctx := context.Background()

	a := testutil.NewTestCapability(cat.ID, "A", testutil.WithPhase(domain.Phase1))
	require.NoError(t, env.CapRepo.Create(ctx, a))

	_, err := env.Bulk.ApplyColor(ctx, cat.MapID, []string{a.ID}, "#FF8800", false)
	require.NoError(t, err)

	got, err := env.MapRepo.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "#ff8800", got.PhaseColors[domain.Phase1])
}

func TestBulkApplyColor_OverrideDoesNotClaimPhaseColor(t *testing.T) {
	env := newTestEnv(t)
	m, cat := seedBoard(t, env)
	ctx := context.Background()

	a := testutil.NewTestCapability(cat.ID, "A", testutil.WithPhase(domain.Phase1))
	require.NoError(t, env.CapRepo.Create(ctx, a))

	_, err := env.Bulk.ApplyColor(ctx, cat.MapID, []string{a.ID}, "#FF8800", true)
	require.NoError(t, err)

	got, err := env.MapRepo.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Empty(t, got.PhaseColors[domain.Phase1], "override colors the selection only")
}

func TestBulkApplyColor_ConflictLeavesStateUntouched(t *testing.T) {
	env := newTestEnv(t)
	_, cat := seedBoard(t, env)
	ctx := context.Background()

	a := testutil.NewTestCapability(cat.ID, "A",
		testutil.WithPhase(domain.Phase1), testutil.WithColor("#111111"))
	b := testutil.NewTestCapability(cat.ID, "B",
		testutil.WithPhase(domain.Phase1), testutil.WithColor("#111111"))
	require.NoError(t, env.CapRepo.Create(ctx, a))
	require.NoError(t, env.CapRepo.Create(ctx, b))

	// b holds Phase1's color outside the selection: recolor must be rejected.
	_, err := env.Bulk.ApplyColor(ctx, cat.MapID, []string{a.ID}, "#222222", false)
	require.ErrorIs(t, err, board.ErrPhaseHasColor)

	got, err := env.CapRepo.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "#111111", got.Color, "nothing persisted on conflict")
}

func TestBulkApplyColor_OverrideBypassesConflict(t *testing.T) {
	env := newTestEnv(t)
	_, cat := seedBoard(t, env)
	ctx := context.Background()

	a := testutil.NewTestCapability(cat.ID, "A",
		testutil.WithPhase(domain.Phase1), testutil.WithColor("#111111"))
	b := testutil.NewTestCapability(cat.ID, "B",
		testutil.WithPhase(domain.Phase1), testutil.WithColor("#111111"))
	require.NoError(t, env.CapRepo.Create(ctx, a))
	require.NoError(t, env.CapRepo.Create(ctx, b))

	affected, err := env.Bulk.ApplyColor(ctx, cat.MapID, []string{a.ID}, "#222222", true)
	require.NoError(t, err)
	assert.Equal(t, []string{a.ID}, affected, "override touches the selection only")

	got, err := env.CapRepo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "#111111", got.Color)
}

func TestBulkSaveColors_OneCallPerDistinctColor(t *testing.T) {
	env := newTestEnv(t)
	_, cat := seedBoard(t, env)
	ctx := context.Background()

	a := testutil.NewTestCapability(cat.ID, "A")
	b := testutil.NewTestCapability(cat.ID, "B")
	c := testutil.NewTestCapability(cat.ID, "C")
	for _, item := range []*domain.Capability{a, b, c} {
		require.NoError(t, env.CapRepo.Create(ctx, item))
	}

	require.NoError(t, env.Bulk.SaveColors(ctx, map[string]string{
		a.ID: "#111111",
		b.ID: "#111111",
		c.ID: "#222222",
	}))

	for id, want := range map[string]string{a.ID: "#111111", b.ID: "#111111", c.ID: "#222222"} {
		got, err := env.CapRepo.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, want, got.Color)
	}
}

func TestBulkSaveColors_InvalidColorRejectedUpfront(t *testing.T) {
	env := newTestEnv(t)
	_, cat := seedBoard(t, env)
	ctx := context.Background()

	a := testutil.NewTestCapability(cat.ID, "A")
	require.NoError(t, env.CapRepo.Create(ctx, a))

	err := env.Bulk.SaveColors(ctx, map[string]string{a.ID: "mauve"})
	require.Error(t, err)

	got, err := env.CapRepo.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Color)
}
