package board

import (
	"testing"

	"github.com/mapwise/capmap/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSnapshot() Snapshot {
	return Snapshot{
		Categories: []domain.Category{
			{ID: "cat1", MapID: "m1", Name: "Cat1", SortOrder: 0},
			{ID: "cat2", MapID: "m1", Name: "Cat2", SortOrder: 1},
		},
		Capabilities: []domain.Capability{
			{ID: "a", CategoryID: "cat1", Name: "Alpha", Size: domain.SizeM, SortOrder: 0},
			{ID: "b", CategoryID: "cat1", Name: "Beta", Size: domain.SizeTBD, SortOrder: 1},
			{ID: "c", CategoryID: "cat2", Name: "Gamma", Size: domain.SizeL, SortOrder: 0},
		},
	}
}

func tileIDs(col Column) []string {
	ids := make([]string, 0, len(col.Tiles))
	for _, t := range col.Tiles {
		ids = append(ids, t.Capability.ID)
	}
	return ids
}

func TestBuild_SizedModeExcludesTBD(t *testing.T) {
	f := NewFilters()
	f.Mode = ViewSized
	v := Build(testSnapshot(), f, nil)

	require.Len(t, v.Columns, 2)
	assert.Equal(t, "Cat1", v.Columns[0].Category.Name)
	assert.Equal(t, []string{"a"}, tileIDs(v.Columns[0]))
	assert.Equal(t, []string{"c"}, tileIDs(v.Columns[1]))
	assert.Equal(t, 2, v.Visible)
	assert.Equal(t, 3, v.Total)
}

func TestBuild_TBDModeKeepsOnlyTBD(t *testing.T) {
	f := NewFilters()
	f.Mode = ViewTBD
	v := Build(testSnapshot(), f, nil)

	assert.Equal(t, []string{"b"}, tileIDs(v.Columns[0]))
	assert.Empty(t, v.Columns[1].Tiles)
}

func TestBuild_SearchIsCaseInsensitiveSubstring(t *testing.T) {
	f := NewFilters()
	f.Search = "ALPH"
	v := Build(testSnapshot(), f, nil)

	assert.Equal(t, []string{"a"}, tileIDs(v.Columns[0]))
	assert.Empty(t, v.Columns[1].Tiles)
	assert.Equal(t, 1, v.Visible)
}

func TestBuild_ExcludedSizes(t *testing.T) {
	f := NewFilters()
	f.ExcludedSizes[domain.SizeL] = true
	v := Build(testSnapshot(), f, nil)

	assert.Equal(t, []string{"a", "b"}, tileIDs(v.Columns[0]))
	assert.Empty(t, v.Columns[1].Tiles)
}

func TestBuild_OrphanCapabilityIsInvisible(t *testing.T) {
	snap := testSnapshot()
	snap.Capabilities = append(snap.Capabilities, domain.Capability{
		ID: "x", CategoryID: "deleted", Name: "Ghost",
	})
	v := Build(snap, NewFilters(), nil)

	for _, col := range v.Columns {
		assert.NotContains(t, tileIDs(col), "x")
	}
	assert.Equal(t, 3, v.Total, "orphans do not count as belonging anywhere")
}

func TestBuild_HighlightDefaultsTrueForAll(t *testing.T) {
	v := Build(testSnapshot(), NewFilters(), nil)
	for _, col := range v.Columns {
		for _, tile := range col.Tiles {
			assert.True(t, tile.Highlight)
		}
	}
}

func TestBuild_ChipsDimWithoutExcluding(t *testing.T) {
	f := NewFilters()
	f.SizeChips[domain.SizeM] = true
	v := Build(testSnapshot(), f, nil)

	// All three capabilities still visible.
	assert.Equal(t, 3, v.Visible)

	byID := map[string]bool{}
	for _, col := range v.Columns {
		for _, tile := range col.Tiles {
			byID[tile.Capability.ID] = tile.Highlight
		}
	}
	assert.True(t, byID["a"])
	assert.False(t, byID["b"])
	assert.False(t, byID["c"])
}

func TestBuild_PhaseAndSizeChipsBothApply(t *testing.T) {
	snap := testSnapshot()
	snap.Capabilities[0].Phase = domain.Phase1
	f := NewFilters()
	f.PhaseChips[domain.Phase1] = true
	f.SizeChips[domain.SizeL] = true

	v := Build(snap, f, nil)
	byID := map[string]bool{}
	for _, col := range v.Columns {
		for _, tile := range col.Tiles {
			byID[tile.Capability.ID] = tile.Highlight
		}
	}
	assert.False(t, byID["a"], "matches phase chip but not size chip")
	assert.False(t, byID["c"], "matches size chip but not phase chip")
}

func TestBuild_SelectionFlag(t *testing.T) {
	v := Build(testSnapshot(), NewFilters(), map[string]bool{"c": true})
	assert.False(t, v.Columns[0].Tiles[0].Selected)
	assert.True(t, v.Columns[1].Tiles[0].Selected)
}

func TestBuild_StableSortBySortOrder(t *testing.T) {
	snap := Snapshot{
		Categories: []domain.Category{{ID: "cat1", Name: "C", SortOrder: 0}},
		Capabilities: []domain.Capability{
			{ID: "p", CategoryID: "cat1", Name: "P", SortOrder: 1},
			{ID: "q", CategoryID: "cat1", Name: "Q", SortOrder: 0},
			{ID: "r", CategoryID: "cat1", Name: "R", SortOrder: 1},
		},
	}
	v := Build(snap, NewFilters(), nil)
	// Ties (p, r) keep their prior relative order.
	assert.Equal(t, []string{"q", "p", "r"}, tileIDs(v.Columns[0]))
}

func TestBuild_ResolvesPhaseColorForUncoloredTiles(t *testing.T) {
	snap := testSnapshot()
	snap.Capabilities[0].Phase = domain.Phase1
	snap.Capabilities[0].Color = "#112233"
	snap.Capabilities[2].Phase = domain.Phase1 // no explicit color

	v := Build(snap, NewFilters(), nil)
	assert.Equal(t, "#112233", v.Columns[0].Tiles[0].Color)
	assert.Equal(t, "#112233", v.Columns[1].Tiles[0].Color, "inherits phase color")
}

func TestBuild_DeterministicAndBounded(t *testing.T) {
	snap := testSnapshot()
	f := NewFilters()
	f.Search = "a"
	f.Mode = ViewSized

	first := Build(snap, f, map[string]bool{"a": true})
	second := Build(snap, f, map[string]bool{"a": true})
	assert.Equal(t, first, second, "identical inputs produce identical output")
	assert.LessOrEqual(t, first.Visible, len(snap.Capabilities))
	for _, col := range first.Columns {
		assert.LessOrEqual(t, len(col.Tiles), len(snap.Capabilities))
	}
}

func TestBuild_CategoriesOrderedBySortOrder(t *testing.T) {
	snap := testSnapshot()
	snap.Categories[0].SortOrder = 5 // Cat1 now after Cat2
	v := Build(snap, NewFilters(), nil)
	assert.Equal(t, "Cat2", v.Columns[0].Category.Name)
	assert.Equal(t, "Cat1", v.Columns[1].Category.Name)
}
