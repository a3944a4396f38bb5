package cli

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mapwise/capmap/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTUI_BoardLoadsOnStartup(t *testing.T) {
	app := testApp(t)
	mapID, _ := seedBoard(t, app)

	d := NewBoardDriver(t, app, mapID)

	assert.Equal(t, ViewBoard, d.ActiveViewID())
	view := d.View()
	assert.Contains(t, view, "Auth")
	assert.Contains(t, view, "Billing")
	assert.Contains(t, view, "Login")
	assert.Contains(t, view, "3/3 shown")
}

func TestTUI_QuitKeys(t *testing.T) {
	app := testApp(t)
	mapID, _ := seedBoard(t, app)

	d := NewBoardDriver(t, app, mapID)
	d.PressKey('q')
	assert.True(t, d.IsQuitting())

	d = NewBoardDriver(t, app, mapID)
	d.PressCtrlC()
	assert.True(t, d.IsQuitting())
}

func TestTUI_SpaceTogglesSelection(t *testing.T) {
	app := testApp(t)
	mapID, capIDs := seedBoard(t, app)

	d := NewBoardDriver(t, app, mapID)

	d.PressKey(' ')
	assert.Equal(t, []string{capIDs[0]}, d.Board().bd.SelectionIDs())
	assert.Contains(t, d.View(), "1 selected")

	d.PressKey(' ')
	assert.Empty(t, d.Board().bd.SelectionIDs())
}

func TestTUI_EscClearsSelectionAtRoot(t *testing.T) {
	app := testApp(t)
	mapID, _ := seedBoard(t, app)

	d := NewBoardDriver(t, app, mapID)
	d.PressKey(' ')
	require.Len(t, d.Board().bd.SelectionIDs(), 1)

	d.PressEsc()
	assert.Empty(t, d.Board().bd.SelectionIDs())
	assert.Equal(t, 1, d.ViewStackLen())
}

func TestTUI_SearchFiltersTiles(t *testing.T) {
	app := testApp(t)
	mapID, _ := seedBoard(t, app)

	d := NewBoardDriver(t, app, mapID)

	d.PressKey('/')
	assert.True(t, d.Board().CapturesInput())
	d.Type("log")
	d.PressEnter()

	assert.False(t, d.Board().CapturesInput())
	view := d.View()
	assert.Contains(t, view, "Login")
	assert.NotContains(t, view, "SSO")
	assert.Contains(t, view, "1/3 shown")
}

func TestTUI_SearchEscDiscardsTerm(t *testing.T) {
	app := testApp(t)
	mapID, _ := seedBoard(t, app)

	d := NewBoardDriver(t, app, mapID)
	d.PressKey('/')
	d.Type("log")
	d.PressEsc()

	assert.Contains(t, d.View(), "3/3 shown")
}

func TestTUI_ViewModeCycles(t *testing.T) {
	app := testApp(t)
	mapID, _ := seedBoard(t, app)

	d := NewBoardDriver(t, app, mapID)
	assert.Contains(t, d.View(), "view:all")

	d.PressKey('v')
	view := d.View()
	assert.Contains(t, view, "view:sized")
	assert.NotContains(t, view, "Invoices") // TBD hidden

	d.PressKey('v')
	view = d.View()
	assert.Contains(t, view, "view:tbd")
	assert.Contains(t, view, "Invoices")
	assert.NotContains(t, view, "Login")

	d.PressKey('v')
	assert.Contains(t, d.View(), "view:all")
}

func TestTUI_PhaseChipsDimWithoutHiding(t *testing.T) {
	app := testApp(t)
	mapID, capIDs := seedBoard(t, app)
	ctx := context.Background()

	_, err := app.Bulk.ApplyField(ctx, mapID, capIDs[:1], domain.CapabilityPatch{Phase: phasePtr(domain.Phase1)})
	require.NoError(t, err)

	d := NewBoardDriver(t, app, mapID)
	d.PressKey('1')

	view := d.Board().projection()
	var highlighted, dimmed int
	for _, col := range view.Columns {
		for _, tile := range col.Tiles {
			if tile.Highlight {
				highlighted++
			} else {
				dimmed++
			}
		}
	}
	assert.Equal(t, 1, highlighted)
	assert.Equal(t, 2, dimmed)
	assert.Equal(t, 3, view.Visible)

	// Toggling the chip off restores full highlight.
	d.PressKey('1')
	view = d.Board().projection()
	for _, col := range view.Columns {
		for _, tile := range col.Tiles {
			assert.True(t, tile.Highlight)
		}
	}
}

func TestTUI_SizeChipsDimWithoutHiding(t *testing.T) {
	app := testApp(t)
	mapID, _ := seedBoard(t, app)

	d := NewBoardDriver(t, app, mapID)

	// Chip M in the highlight multiselect: down twice from XS, toggle,
	// confirm both fields.
	d.PressKey('f')
	require.Equal(t, ViewForm, d.ActiveViewID())
	d.PressDown()
	d.PressDown()
	d.PressKey(' ')
	d.PressEnter()
	d.PressEnter()

	require.Equal(t, 1, d.ViewStackLen())
	view := d.Board().projection()
	assert.Equal(t, 3, view.Visible, "chips dim, they never hide")
	var highlighted int
	for _, col := range view.Columns {
		for _, tile := range col.Tiles {
			if tile.Highlight {
				highlighted++
				assert.Equal(t, domain.SizeM, tile.Capability.Size)
			}
		}
	}
	assert.Equal(t, 1, highlighted)
	assert.Contains(t, d.View(), "chips:M")
}

func TestTUI_SizeFilterFormHidesExcludedSizes(t *testing.T) {
	app := testApp(t)
	mapID, _ := seedBoard(t, app)

	d := NewBoardDriver(t, app, mapID)

	// Skip the highlight field, then exclude XL: down four from XS.
	d.PressKey('f')
	d.PressEnter()
	for i := 0; i < 4; i++ {
		d.PressDown()
	}
	d.PressKey(' ')
	d.PressEnter()

	view := d.View()
	assert.Contains(t, view, "2/3 shown")
	assert.NotContains(t, view, "SSO")
	assert.Contains(t, view, "hide:XL")

	// Reopening and clearing the exclusion restores the tile.
	d.PressKey('f')
	d.PressEnter()
	for i := 0; i < 4; i++ {
		d.PressDown()
	}
	d.PressKey(' ')
	d.PressEnter()
	assert.Contains(t, d.View(), "3/3 shown")
}

func TestTUI_ZoomClamped(t *testing.T) {
	app := testApp(t)
	mapID, _ := seedBoard(t, app)

	d := NewBoardDriver(t, app, mapID)
	for i := 0; i < 10; i++ {
		d.PressKey('+')
	}
	assert.Equal(t, 2.0, d.Board().bd.Zoom())

	for i := 0; i < 20; i++ {
		d.PressKey('-')
	}
	assert.Equal(t, 0.25, d.Board().bd.Zoom())
}

func TestTUI_SizeFormMutatesCursorTileAndUndoRestores(t *testing.T) {
	app := testApp(t)
	mapID, capIDs := seedBoard(t, app)
	ctx := context.Background()

	d := NewBoardDriver(t, app, mapID)

	// No selection: the form targets the tile under the cursor (Login).
	d.PressKey('s')
	require.Equal(t, ViewForm, d.ActiveViewID())
	require.Equal(t, 2, d.ViewStackLen())

	// First option in the size select is XS.
	d.PressEnter()

	assert.Equal(t, 1, d.ViewStackLen())
	c, err := app.Capabilities.GetByID(ctx, capIDs[0])
	require.NoError(t, err)
	assert.Equal(t, domain.SizeXS, c.Size)
	assert.Equal(t, 4, c.EffectiveHours())

	// The board mirrors the confirmed change without a reload.
	snap := d.Board().bd.Snapshot()
	assert.Equal(t, domain.SizeXS, snap.Capability(capIDs[0]).Size)

	// Undo restores both board state and storage.
	d.PressKey('u')
	snap = d.Board().bd.Snapshot()
	assert.Equal(t, domain.SizeM, snap.Capability(capIDs[0]).Size)

	c, err = app.Capabilities.GetByID(ctx, capIDs[0])
	require.NoError(t, err)
	assert.Equal(t, domain.SizeM, c.Size)
	assert.Equal(t, 16, c.EffectiveHours())

	// Redo reapplies it.
	d.SendKey(tea.KeyMsg{Type: tea.KeyCtrlR})
	c, err = app.Capabilities.GetByID(ctx, capIDs[0])
	require.NoError(t, err)
	assert.Equal(t, domain.SizeXS, c.Size)
}

func TestTUI_SizeFormAppliesToSelection(t *testing.T) {
	app := testApp(t)
	mapID, capIDs := seedBoard(t, app)
	ctx := context.Background()

	d := NewBoardDriver(t, app, mapID)

	// Select Login and SSO in the Auth column.
	d.PressKey(' ')
	d.PressDown()
	d.PressKey(' ')
	require.Len(t, d.Board().bd.SelectionIDs(), 2)

	d.PressKey('s')
	d.PressEnter()

	for _, id := range capIDs[:2] {
		c, err := app.Capabilities.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, domain.SizeXS, c.Size)
	}
	c, err := app.Capabilities.GetByID(ctx, capIDs[2])
	require.NoError(t, err)
	assert.Equal(t, domain.SizeTBD, c.Size)
}

func TestTUI_UndoAtBoundaryReportsNothing(t *testing.T) {
	app := testApp(t)
	mapID, _ := seedBoard(t, app)

	d := NewBoardDriver(t, app, mapID)
	d.PressKey('u')
	assert.Contains(t, d.Status(), "Nothing to undo")

	d.SendKey(tea.KeyMsg{Type: tea.KeyCtrlR})
	assert.Contains(t, d.Status(), "Nothing to redo")
}

func TestTUI_FormEscCancelsWithoutMutating(t *testing.T) {
	app := testApp(t)
	mapID, capIDs := seedBoard(t, app)

	d := NewBoardDriver(t, app, mapID)
	d.PressKey('d')
	require.Equal(t, ViewForm, d.ActiveViewID())

	d.PressEsc()
	assert.Equal(t, 1, d.ViewStackLen())

	_, err := app.Capabilities.GetByID(context.Background(), capIDs[0])
	assert.NoError(t, err)
}

func TestTUI_CursorNavigationClamps(t *testing.T) {
	app := testApp(t)
	mapID, capIDs := seedBoard(t, app)

	d := NewBoardDriver(t, app, mapID)

	// Way past the edges in every direction stays in bounds.
	for i := 0; i < 5; i++ {
		d.PressKey('l')
	}
	for i := 0; i < 5; i++ {
		d.PressKey('j')
	}
	b := d.Board()
	assert.Equal(t, 1, b.col)
	assert.Equal(t, 0, b.row) // Billing has one tile
	require.NotNil(t, b.currentTile())
	assert.Equal(t, capIDs[2], b.currentTile().Capability.ID)

	for i := 0; i < 5; i++ {
		d.PressKey('h')
	}
	assert.Equal(t, 0, d.Board().col)
}

func phasePtr(p domain.Phase) *domain.Phase { return &p }
