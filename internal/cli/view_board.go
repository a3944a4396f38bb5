package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mapwise/capmap/internal/board"
	"github.com/mapwise/capmap/internal/cli/formatter"
	"github.com/mapwise/capmap/internal/domain"
	"github.com/mapwise/capmap/internal/service"
)

// boardLoadedMsg signals that board data has been (re)loaded.
type boardLoadedMsg struct {
	data *service.BoardData
	err  error
}

// bulkAppliedMsg mirrors a persisted bulk field update into board state.
type bulkAppliedMsg struct {
	ids   []string
	patch domain.CapabilityPatch
	label string
}

// colorAppliedMsg mirrors a persisted color assignment into board state.
type colorAppliedMsg struct {
	affected []string
	color    string
}

// capsDeletedMsg mirrors persisted deletions into board state.
type capsDeletedMsg struct {
	ids []string
}

// capsMovedMsg mirrors persisted category moves into board state.
type capsMovedMsg struct {
	ids        []string
	categoryID string
}

// capAddedMsg mirrors a persisted creation into board state.
type capAddedMsg struct {
	cap domain.Capability
}

// sizeFiltersMsg replaces the size highlight chips and hard exclusions.
type sizeFiltersMsg struct {
	chips    map[domain.Size]bool
	excluded map[domain.Size]bool
}

// boardReloadMsg asks the board to refetch from storage.
type boardReloadMsg struct{}

// boardView renders one map as columns of capability tiles. It owns the
// in-memory board state, the undo/redo history, and the cursor.
type boardView struct {
	state *SharedState
	mapID string

	bd   *board.State
	hist *board.History

	loading bool
	err     error

	// Cursor position within the derived view.
	col, row int

	// Derived projection, memoized against the state version.
	view      board.View
	viewVsn   uint64
	viewValid bool

	// Search input, active while searching.
	search    textinput.Model
	searching bool
}

func newBoardView(state *SharedState, mapID string) *boardView {
	ti := textinput.New()
	ti.Placeholder = "search"
	ti.Prompt = "/"
	ti.CharLimit = 64

	return &boardView{
		state:   state,
		mapID:   mapID,
		bd:      board.NewState(),
		hist:    board.NewHistory(board.DefaultHistoryCap),
		loading: true,
		search:  ti,
	}
}

func (v *boardView) ID() ViewID    { return ViewBoard }
func (v *boardView) Title() string { return "board" }

func (v *boardView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("space"), key.WithHelp("space", "select")),
		key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "size")),
		key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "phase")),
		key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "color")),
		key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "view")),
		key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "sizes")),
		key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "undo")),
		key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("^r", "redo")),
	}
}

// CapturesInput routes all keys to the search box while it is focused.
func (v *boardView) CapturesInput() bool { return v.searching }

func (v *boardView) Init() tea.Cmd {
	return v.load()
}

func (v *boardView) load() tea.Cmd {
	app := v.state.App
	mapID := v.mapID
	return func() tea.Msg {
		data, err := app.Maps.LoadBoard(context.Background(), mapID)
		return boardLoadedMsg{data: data, err: err}
	}
}

func (v *boardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case boardLoadedMsg:
		v.loading = false
		if msg.err != nil {
			v.err = msg.err
			return v, nil
		}
		v.err = nil
		v.state.Map = msg.data.Map
		v.bd.Load(boardSnapshot(msg.data))
		v.hist.Reset()
		v.hist.Push(v.bd.Snapshot())
		return v, nil

	case boardReloadMsg:
		return v, v.load()

	case sizeFiltersMsg:
		f := v.bd.Filters()
		f.SizeChips = msg.chips
		f.ExcludedSizes = msg.excluded
		v.bd.SetFilters(f)
		v.clampCursor()
		return v, statusCmd("Size filters updated")

	case bulkAppliedMsg:
		v.bd.ApplyFieldUpdate(msg.ids, msg.patch)
		v.hist.Push(v.bd.Snapshot())
		return v, statusCmd(msg.label)

	case colorAppliedMsg:
		color := msg.color
		v.bd.ApplyFieldUpdate(msg.affected, domain.CapabilityPatch{Color: &color})
		v.hist.Push(v.bd.Snapshot())
		return v, statusCmd(fmt.Sprintf("Colored %d capabilities", len(msg.affected)))

	case capsDeletedMsg:
		v.bd.RemoveCapabilities(msg.ids)
		v.hist.Push(v.bd.Snapshot())
		return v, statusCmd(fmt.Sprintf("Deleted %d", len(msg.ids)))

	case capsMovedMsg:
		for _, id := range msg.ids {
			if err := v.bd.MoveCapability(id, msg.categoryID); err != nil {
				return v, v.load()
			}
		}
		v.hist.Push(v.bd.Snapshot())
		return v, statusCmd(fmt.Sprintf("Moved %d", len(msg.ids)))

	case capAddedMsg:
		snap := v.bd.Snapshot()
		snap.Capabilities = append(snap.Capabilities, msg.cap)
		v.bd.Load(snap)
		v.hist.Push(v.bd.Snapshot())
		return v, statusCmd(fmt.Sprintf("Added %s", msg.cap.Name))

	case tea.KeyMsg:
		return v.handleKey(msg)
	}

	if v.searching {
		var cmd tea.Cmd
		v.search, cmd = v.search.Update(msg)
		return v, cmd
	}

	return v, nil
}

func (v *boardView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if v.searching {
		switch msg.Type {
		case tea.KeyEnter, tea.KeyEsc:
			if msg.Type == tea.KeyEsc {
				v.search.SetValue("")
			}
			v.searching = false
			v.search.Blur()
			f := v.bd.Filters()
			f.Search = v.search.Value()
			v.bd.SetFilters(f)
			v.clampCursor()
			return v, nil
		}
		var cmd tea.Cmd
		v.search, cmd = v.search.Update(msg)
		f := v.bd.Filters()
		f.Search = v.search.Value()
		v.bd.SetFilters(f)
		v.clampCursor()
		return v, cmd
	}

	switch msg.String() {
	case "left", "h":
		v.moveCursor(-1, 0)
	case "right", "l":
		v.moveCursor(1, 0)
	case "up", "k":
		v.moveCursor(0, -1)
	case "down", "j":
		v.moveCursor(0, 1)

	case " ":
		if t := v.currentTile(); t != nil {
			v.bd.ToggleSelect(t.Capability.ID)
		}
	case "esc":
		v.bd.ClearSelection()

	case "/":
		v.searching = true
		v.search.Focus()
		return v, textinput.Blink

	case "v":
		f := v.bd.Filters()
		switch f.Mode {
		case board.ViewAll:
			f.Mode = board.ViewSized
		case board.ViewSized:
			f.Mode = board.ViewTBD
		default:
			f.Mode = board.ViewAll
		}
		v.bd.SetFilters(f)
		v.clampCursor()
		return v, statusCmd(fmt.Sprintf("View: %s", f.Mode))

	case "1", "2", "3", "4", "5", "6":
		phases := []domain.Phase{domain.Phase1, domain.Phase2, domain.Phase3,
			domain.Phase4, domain.PhaseFuture, domain.PhaseOutOfScope}
		p := phases[int(msg.String()[0]-'1')]
		f := v.bd.Filters()
		if f.PhaseChips[p] {
			delete(f.PhaseChips, p)
		} else {
			f.PhaseChips[p] = true
		}
		v.bd.SetFilters(f)

	case "f":
		return v, pushView(newSizeFilterForm(v.state, v.bd.Filters()))

	case "+", "=":
		v.bd.SetZoom(v.bd.Zoom() + 0.25)
	case "-":
		v.bd.SetZoom(v.bd.Zoom() - 0.25)

	case "u":
		return v, v.undo()
	case "ctrl+r":
		return v, v.redo()
	case "R":
		v.loading = true
		return v, v.load()

	case "s":
		return v.withTargets(func(ids []string) tea.Cmd {
			return pushView(newBulkSizeForm(v.state, v.mapID, ids))
		})
	case "p":
		return v.withTargets(func(ids []string) tea.Cmd {
			return pushView(newBulkPhaseForm(v.state, v.mapID, ids))
		})
	case "c":
		return v.withTargets(func(ids []string) tea.Cmd {
			return pushView(newColorForm(v.state, v.mapID, ids))
		})
	case "o":
		return v.withTargets(func(ids []string) tea.Cmd {
			return pushView(newHoursForm(v.state, v.mapID, ids))
		})
	case "m":
		return v.withTargets(func(ids []string) tea.Cmd {
			return pushView(newMoveForm(v.state, v.bd.Snapshot(), ids))
		})
	case "d":
		return v.withTargets(func(ids []string) tea.Cmd {
			return pushView(newDeleteConfirmForm(v.state, ids))
		})
	case "a":
		return v, pushView(newAddCapabilityForm(v.state, v.bd.Snapshot(), v.currentCategoryID()))
	}

	return v, nil
}

// withTargets resolves the mutation target set: the selection when one
// exists, else the tile under the cursor.
func (v *boardView) withTargets(fn func(ids []string) tea.Cmd) (tea.Model, tea.Cmd) {
	ids := v.bd.SelectionIDs()
	if len(ids) == 0 {
		if t := v.currentTile(); t != nil {
			ids = []string{t.Capability.ID}
		}
	}
	if len(ids) == 0 {
		return v, statusCmd(formatter.Dim("Nothing selected."))
	}
	return v, fn(ids)
}

func (v *boardView) undo() tea.Cmd {
	snap, ok := v.hist.Undo()
	if !ok {
		return statusCmd(formatter.Dim("Nothing to undo."))
	}
	prev := v.bd.Snapshot()
	v.bd.Load(snap)
	v.clampCursor()
	return tea.Batch(statusCmd("Undone"), v.syncRestore(prev, snap))
}

func (v *boardView) redo() tea.Cmd {
	snap, ok := v.hist.Redo()
	if !ok {
		return statusCmd(formatter.Dim("Nothing to redo."))
	}
	prev := v.bd.Snapshot()
	v.bd.Load(snap)
	v.clampCursor()
	return tea.Batch(statusCmd("Redone"), v.syncRestore(prev, snap))
}

// syncRestore persists the difference between the replaced snapshot and
// the restored one, so storage follows the history walk. Creations are
// re-issued with their original IDs; an Update after Create restores the
// exact field values the snapshot recorded.
func (v *boardView) syncRestore(prev, restored board.Snapshot) tea.Cmd {
	app := v.state.App
	return func() tea.Msg {
		ctx := context.Background()

		restoredByID := make(map[string]domain.Capability, len(restored.Capabilities))
		for _, c := range restored.Capabilities {
			restoredByID[c.ID] = c
		}
		prevByID := make(map[string]domain.Capability, len(prev.Capabilities))
		for _, c := range prev.Capabilities {
			prevByID[c.ID] = c
		}

		for _, c := range prev.Capabilities {
			if _, ok := restoredByID[c.ID]; !ok {
				if err := app.Capabilities.Delete(ctx, c.ID); err != nil {
					return statusMsg{text: err.Error(), isErr: true}
				}
			}
		}
		for _, c := range restored.Capabilities {
			want := c
			old, existed := prevByID[c.ID]
			if !existed {
				created := want
				if err := app.Capabilities.Create(ctx, &created); err != nil {
					return statusMsg{text: err.Error(), isErr: true}
				}
			} else if capabilitiesEqual(old, want) {
				continue
			}
			if err := app.Capabilities.Update(ctx, &want); err != nil {
				return statusMsg{text: err.Error(), isErr: true}
			}
		}
		return nil
	}
}

// capabilitiesEqual compares everything except timestamps.
func capabilitiesEqual(a, b domain.Capability) bool {
	if (a.HoursOverride == nil) != (b.HoursOverride == nil) {
		return false
	}
	if a.HoursOverride != nil && *a.HoursOverride != *b.HoursOverride {
		return false
	}
	a.HoursOverride, b.HoursOverride = nil, nil
	a.CreatedAt, b.CreatedAt = time.Time{}, time.Time{}
	a.UpdatedAt, b.UpdatedAt = time.Time{}, time.Time{}
	return a == b
}

// ── cursor and projection ────────────────────────────────────────────────────

// projection rebuilds the derived view when the state version moved.
func (v *boardView) projection() board.View {
	if !v.viewValid || v.viewVsn != v.bd.Version() {
		v.view = board.Build(v.bd.Snapshot(), v.bd.Filters(), v.bd.Selection())
		v.viewVsn = v.bd.Version()
		v.viewValid = true
	}
	return v.view
}

func (v *boardView) moveCursor(dc, dr int) {
	v.col += dc
	v.row += dr
	v.clampCursor()
}

func (v *boardView) clampCursor() {
	view := v.projection()
	if len(view.Columns) == 0 {
		v.col, v.row = 0, 0
		return
	}
	if v.col < 0 {
		v.col = 0
	}
	if v.col >= len(view.Columns) {
		v.col = len(view.Columns) - 1
	}
	tiles := len(view.Columns[v.col].Tiles)
	if tiles == 0 {
		v.row = 0
		return
	}
	if v.row < 0 {
		v.row = 0
	}
	if v.row >= tiles {
		v.row = tiles - 1
	}
}

func (v *boardView) currentTile() *board.Tile {
	view := v.projection()
	if v.col >= len(view.Columns) {
		return nil
	}
	col := view.Columns[v.col]
	if v.row >= len(col.Tiles) {
		return nil
	}
	return &col.Tiles[v.row]
}

func (v *boardView) currentCategoryID() string {
	view := v.projection()
	if v.col < len(view.Columns) {
		return view.Columns[v.col].Category.ID
	}
	return ""
}

// ── rendering ────────────────────────────────────────────────────────────────

func (v *boardView) View() string {
	if v.loading {
		return "\n  " + formatter.Dim("Loading board…")
	}
	if v.err != nil {
		return "\n  " + formatter.StyleRed.Render(v.err.Error())
	}

	view := v.projection()
	v.clampCursor()

	var b strings.Builder
	b.WriteString(v.renderFilterBar(view))
	b.WriteString("\n")

	if len(view.Columns) == 0 {
		b.WriteString("\n  " + formatter.Dim("No categories yet. Apply a template or add one with: capmap category add"))
		return b.String()
	}

	cols := make([]string, 0, len(view.Columns))
	for i, col := range view.Columns {
		cols = append(cols, v.renderColumn(col, i == v.col))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cols...))
	return b.String()
}

// tileWidth scales the column width with the zoom factor.
func (v *boardView) tileWidth() int {
	w := int(24 * v.bd.Zoom())
	if w < 8 {
		w = 8
	}
	return w
}

func (v *boardView) renderFilterBar(view board.View) string {
	f := v.bd.Filters()
	parts := []string{
		formatter.Dim(fmt.Sprintf("%d/%d shown", view.Visible, view.Total)),
		formatter.Dim(fmt.Sprintf("view:%s", f.Mode)),
		formatter.Dim(fmt.Sprintf("zoom:%.0f%%", v.bd.Zoom()*100)),
	}
	if v.searching || v.search.Value() != "" {
		parts = append(parts, v.search.View())
	}
	var chips []string
	for _, p := range domain.PhaseOrder {
		if f.PhaseChips[p] {
			chips = append(chips, p.DisplayName())
		}
	}
	for _, s := range domain.SizeOrder {
		if f.SizeChips[s] {
			chips = append(chips, s.DisplayName())
		}
	}
	if len(chips) > 0 {
		parts = append(parts, formatter.StyleYellow.Render("chips:"+strings.Join(chips, ",")))
	}
	var hidden []string
	for _, s := range domain.SizeOrder {
		if f.ExcludedSizes[s] {
			hidden = append(hidden, s.DisplayName())
		}
	}
	if len(hidden) > 0 {
		parts = append(parts, formatter.StyleRed.Render("hide:"+strings.Join(hidden, ",")))
	}
	if n := len(v.bd.SelectionIDs()); n > 0 {
		parts = append(parts, formatter.StyleHeader.Render(fmt.Sprintf("%d selected", n)))
	}
	return " " + strings.Join(parts, "  ")
}

func (v *boardView) renderColumn(col board.Column, active bool) string {
	width := v.tileWidth()

	name := col.Category.Name
	if col.Category.Subcategory {
		name = "· " + name
	}
	header := formatter.StyleBold.Render(truncate(name, width))
	if active {
		header = formatter.StyleHeader.Render(truncate(name, width))
	}

	lines := []string{header, formatter.Dim(strings.Repeat("─", width))}
	for i, t := range col.Tiles {
		lines = append(lines, v.renderTile(t, width, active && i == v.row))
	}
	if len(col.Tiles) == 0 {
		lines = append(lines, formatter.Dim("(empty)"))
	}

	return lipgloss.NewStyle().
		Width(width + 2).
		PaddingRight(2).
		Render(strings.Join(lines, "\n"))
}

func (v *boardView) renderTile(t board.Tile, width int, underCursor bool) string {
	c := t.Capability

	marker := " "
	if t.Selected {
		marker = "▸"
	}
	dot := " "
	if t.Color != "" {
		dot = lipgloss.NewStyle().Foreground(lipgloss.Color(t.Color)).Render("●")
	}

	label := fmt.Sprintf("%s%s %s", marker, dot, truncate(c.Name, width-10))
	meta := fmt.Sprintf("%s %s", c.Size.DisplayName(), formatter.FormatHours(c.EffectiveHours()))

	line := label + " " + meta
	style := lipgloss.NewStyle().MaxWidth(width)
	switch {
	case underCursor:
		style = style.Reverse(true)
	case !t.Highlight:
		style = style.Foreground(formatter.ColorDim)
	}
	return style.Render(line)
}

func truncate(s string, max int) string {
	if max < 1 {
		max = 1
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max == 1 {
		return "…"
	}
	return string(r[:max-1]) + "…"
}
