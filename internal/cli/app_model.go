package cli

import (
	"strings"

	"github.com/mapwise/capmap/internal/cli/formatter"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// appModel is the root bubbletea Model for the TUI.
// It manages a view stack over one open map.
type appModel struct {
	state     *SharedState
	viewStack []View
	quitting  bool

	// Transient status line shown in the bottom bar.
	status    string
	statusErr bool
}

func newAppModel(app *App, mapID string) appModel {
	state := &SharedState{App: app}
	return appModel{
		state:     state,
		viewStack: []View{newBoardView(state, mapID)},
	}
}

// inputCapturer is implemented by views that own a focused text input and
// need every key, including ones bound globally.
type inputCapturer interface {
	CapturesInput() bool
}

// activeView returns the top view on the stack, or nil.
func (m *appModel) activeView() View {
	if len(m.viewStack) == 0 {
		return nil
	}
	return m.viewStack[len(m.viewStack)-1]
}

// setActiveView replaces the top of the view stack.
func (m *appModel) setActiveView(v View) {
	if len(m.viewStack) > 0 {
		m.viewStack[len(m.viewStack)-1] = v
	}
}

func (m appModel) Init() tea.Cmd {
	if v := m.activeView(); v != nil {
		return v.Init()
	}
	return nil
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.state.Width = msg.Width
		m.state.Height = msg.Height
		if v := m.activeView(); v != nil {
			updated, cmd := v.Update(msg)
			m.setActiveView(updated.(View))
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case pushViewMsg:
		m.status = ""
		m.viewStack = append(m.viewStack, msg.view)
		return m, msg.view.Init()

	case popViewMsg:
		if len(m.viewStack) > 1 {
			m.viewStack = m.viewStack[:len(m.viewStack)-1]
		}
		return m, nil

	case wizardCompleteMsg:
		// Atomically pop the wizard view and execute the follow-up command.
		if len(m.viewStack) > 1 {
			m.viewStack = m.viewStack[:len(m.viewStack)-1]
		}
		return m, msg.nextCmd

	case statusMsg:
		m.status = msg.text
		m.statusErr = msg.isErr
		return m, nil
	}

	if v := m.activeView(); v != nil {
		updated, cmd := v.Update(msg)
		m.setActiveView(updated.(View))
		return m, cmd
	}

	return m, nil
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}

	// Any key clears a stale status line.
	m.status = ""

	// Views with a focused text input get every key.
	if v := m.activeView(); v != nil {
		if c, ok := v.(inputCapturer); ok && c.CapturesInput() {
			updated, cmd := v.Update(msg)
			m.setActiveView(updated.(View))
			return m, cmd
		}
	}

	switch {
	case msg.String() == "q" && m.activeView() != nil && m.activeView().ID() == ViewBoard:
		m.quitting = true
		return m, tea.Quit

	case msg.Type == tea.KeyEsc && len(m.viewStack) > 1:
		m.viewStack = m.viewStack[:len(m.viewStack)-1]
		return m, nil
	}

	if v := m.activeView(); v != nil {
		updated, cmd := v.Update(msg)
		m.setActiveView(updated.(View))
		return m, cmd
	}

	return m, nil
}

func (m appModel) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{
		m.renderHeader(),
	}

	if v := m.activeView(); v != nil {
		sections = append(sections, v.View())
	}

	sections = append(sections, m.renderStatusBar())

	result := strings.Join(sections, "\n")

	// Pad to terminal height to prevent stale line artifacts from
	// bubbletea's line-diff renderer in alt-screen mode.
	if m.state.Height > 0 {
		lines := strings.Count(result, "\n") + 1
		if lines < m.state.Height {
			result += strings.Repeat("\n", m.state.Height-lines)
		}
	}

	return result
}

func (m *appModel) renderHeader() string {
	crumbs := []string{formatter.StylePurple.Render("capmap"), m.state.MapName()}
	for _, v := range m.viewStack[1:] {
		crumbs = append(crumbs, v.Title())
	}

	width := m.state.Width
	if width <= 0 {
		width = 80
	}
	title := strings.Join(crumbs, formatter.Dim(" ▸ "))
	sep := formatter.Dim(strings.Repeat("─", width))
	return title + "\n" + sep
}

func (m *appModel) renderStatusBar() string {
	width := m.state.Width
	if width <= 0 {
		width = 80
	}
	sep := formatter.Dim(strings.Repeat("─", width))

	if m.status != "" {
		line := m.status
		if m.statusErr {
			line = formatter.StyleRed.Render(line)
		} else {
			line = formatter.StyleGreen.Render(line)
		}
		return sep + "\n" + line
	}

	var hints []string
	if v := m.activeView(); v != nil {
		for _, b := range v.ShortHelp() {
			h := b.Help()
			hints = append(hints, formatter.Bold(h.Key)+" "+formatter.Dim(h.Desc))
		}
	}
	hints = append(hints, formatter.Bold("q")+" "+formatter.Dim("quit"))
	return sep + "\n" + lipgloss.NewStyle().MaxWidth(width).Render(strings.Join(hints, "  "))
}
