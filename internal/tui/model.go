package tui

import (
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/jmylchreest/dreamspinner/internal/colorscheme"
	"github.com/jmylchreest/dreamspinner/internal/config"
	"github.com/jmylchreest/dreamspinner/internal/dream"
)

type panelKind int

const (
	panelSettings panelKind = iota
	panelSelect
	panelAbout
	panelDream
)

type panel struct {
	title  string
	kind   panelKind
	handle *dream.Handle
}

// Model is the settings editor.
type Model struct {
	store    *config.Store
	registry *dream.Registry
	version  string
	logger   *slog.Logger

	panels []panel
	panel  int
	focus  int
	inputs int // input rows on the current panel as of the last layout

	// lastSaved is the snapshot most recently written to disk; the live
	// settings differing from it is what makes a save available.
	lastSaved *config.Settings
	savedAt   time.Time
	dirty     bool

	keys      KeyMap
	help      help.Model
	showHelp  bool
	statusMsg string
	statusErr bool

	width  int
	height int
}

// New creates the editor for the given store and registry. The store must
// already be loaded.
func New(store *config.Store, registry *dream.Registry, version string, logger *slog.Logger) (Model, error) {
	if logger == nil {
		logger = slog.Default()
	}

	saved, err := store.Snapshot()
	if err != nil {
		return Model{}, fmt.Errorf("failed to read settings: %w", err)
	}

	panels := []panel{
		{title: "Settings", kind: panelSettings},
		{title: "Select Dreams", kind: panelSelect},
		{title: "About", kind: panelAbout},
	}
	for _, desc := range registry.List(saved.AllowDevDreams) {
		h, _ := registry.Lookup(desc.ID)
		panels = append(panels, panel{title: desc.Name, kind: panelDream, handle: h})
	}

	m := Model{
		store:     store,
		registry:  registry,
		version:   version,
		logger:    logger,
		panels:    panels,
		lastSaved: saved,
		keys:      DefaultKeyMap(),
		help:      help.New(),
	}
	m.inputs = m.layout(actionNone).inputs
	return m, nil
}

// Init initializes the TUI.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case statusMsg:
		m.statusMsg = msg.text
		m.statusErr = msg.isErr
		return m, tea.Tick(3*time.Second, func(t time.Time) tea.Msg {
			return clearStatusMsg{}
		})

	case clearStatusMsg:
		m.statusMsg = ""
		m.statusErr = false
		return m, nil
	}
	return m, nil
}

type statusMsg struct {
	text  string
	isErr bool
}

type clearStatusMsg struct{}

func status(text string, isErr bool) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{text: text, isErr: isErr}
	}
}

// handleKey handles key presses.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil

	case key.Matches(msg, m.keys.Save):
		return m.save()

	case key.Matches(msg, m.keys.NextPanel):
		m.switchPanel((m.panel + 1) % len(m.panels))
		return m, nil

	case key.Matches(msg, m.keys.PrevPanel):
		m.switchPanel((m.panel - 1 + len(m.panels)) % len(m.panels))
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.focus > 0 {
			m.focus--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.focus < m.inputs-1 {
			m.focus++
		}
		return m, nil

	case key.Matches(msg, m.keys.Increase):
		return m.apply(actionIncrease)

	case key.Matches(msg, m.keys.Decrease):
		return m.apply(actionDecrease)

	case key.Matches(msg, m.keys.Activate):
		return m.apply(actionActivate)
	}
	return m, nil
}

func (m *Model) switchPanel(i int) {
	m.panel = i
	m.focus = 0
	m.inputs = m.layout(actionNone).inputs
}

// apply runs a layout pass that delivers act to the focused row.
func (m Model) apply(act action) (tea.Model, tea.Cmd) {
	res := m.layout(act)
	m.inputs = res.inputs
	if m.focus >= m.inputs {
		m.focus = max(0, m.inputs-1)
	}
	m.refreshDirty()

	switch {
	case res.err != nil:
		m.logger.Error("failed to apply change", "panel", m.panels[m.panel].title, "error", res.err)
		return m, status("Error: "+res.err.Error(), true)
	case res.refused != "":
		return m, status(res.refused, true)
	}
	return m, nil
}

// save stores every dream and writes the settings file.
func (m Model) save() (tea.Model, tea.Cmd) {
	m.refreshDirty()
	if !m.dirty {
		return m, status("No changes to save", false)
	}

	if err := m.registry.StoreAll(); err != nil {
		m.logger.Error("failed to store dreams", "error", err)
		return m, status("Save failed: "+err.Error(), true)
	}
	saved, err := m.store.Save()
	if err != nil {
		m.logger.Error("failed to save settings", "path", m.store.Path(), "error", err)
		return m, status("Save failed: "+err.Error(), true)
	}

	m.lastSaved = saved
	m.savedAt = time.Now()
	m.dirty = false
	m.logger.Info("saved settings", "path", m.store.Path())
	return m, status("Settings saved", false)
}

func (m *Model) refreshDirty() {
	snapshot, err := m.store.Snapshot()
	if err != nil {
		m.logger.Warn("failed to read settings", "error", err)
		return
	}
	m.dirty = !snapshot.Equal(m.lastSaved)
}

// Dirty reports whether the live settings differ from the last save.
func (m Model) Dirty() bool {
	return m.dirty
}

type layoutResult struct {
	form    *form
	inputs  int
	refused string
	err     error
}

// layout builds the current panel. With actionNone nothing is modified.
func (m Model) layout(act action) layoutResult {
	f := newForm(m.focus, act)
	res := layoutResult{form: f}

	p := m.panels[m.panel]
	switch p.kind {
	case panelSettings:
		res.err = m.edit(act, func(s *config.Settings) { layoutSettings(f, s) })
	case panelSelect:
		res.err = m.edit(act, func(s *config.Settings) {
			res.refused = m.layoutSelect(f, s)
		})
	case panelAbout:
		m.layoutAbout(f)
	case panelDream:
		_, res.err = p.handle.Configure(f)
	}

	res.inputs = f.inputs
	return res
}

// edit runs fn under the store's exclusive lock only when it may change
// something.
func (m Model) edit(act action, fn func(*config.Settings)) error {
	if act == actionNone {
		return m.store.Read(fn)
	}
	return m.store.Write(fn)
}

func layoutSettings(f *form, s *config.Settings) {
	f.Heading("Display")
	f.Toggle("Show FPS", &s.ShowFPS)
	f.Toggle("Detect additional screens", &s.AttemptMultiscreen)
	if s.AttemptMultiscreen {
		modes := config.ValidPresentationModes()
		titles := make([]string, len(modes))
		for i, mode := range modes {
			titles[i] = mode.Title()
		}
		selected := max(0, slices.Index(modes, s.PresentationMode))
		if f.Choice("Presentation mode", &selected, titles) {
			s.PresentationMode = modes[selected]
		}
	}

	f.Heading("Appearance")
	names := colorscheme.Names()
	selected := max(0, slices.Index(names, s.ColorScheme))
	if f.Choice("Color scheme", &selected, names) {
		s.ColorScheme = names[selected]
	}
}

// layoutSelect returns a message when a deselect had to be refused.
func (m Model) layoutSelect(f *form, s *config.Settings) string {
	f.Heading("Dreams to show")
	refused := ""
	for _, desc := range m.registry.List(s.AllowDevDreams) {
		id := string(desc.ID)
		on := s.IsSelected(id)
		if !f.Toggle(desc.Name, &on) {
			continue
		}
		if on {
			s.Select(id)
		} else if !s.Deselect(id) {
			refused = "At least one dream must stay selected"
		}
	}
	return refused
}

func (m Model) layoutAbout(f *form) {
	f.Heading("dreamspinner " + m.version)
	f.Label("A screensaver that spins dreams across your displays.")
	f.Label("Settings file: " + m.store.Path())
	f.Label(fmt.Sprintf("Dreams available: %d", len(m.registry.Handles())))
	f.Label(fmt.Sprintf("Color schemes: %d", len(colorscheme.Names())))
}

var (
	tabStyle       = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("8"))
	activeTabStyle = lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(lipgloss.Color("12")).Underline(true)
	bodyStyle      = lipgloss.NewStyle().Padding(1, 2)
	dirtyStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

// View renders the TUI.
func (m Model) View() string {
	tabs := make([]string, len(m.panels))
	for i, p := range m.panels {
		if i == m.panel {
			tabs[i] = activeTabStyle.Render(p.title)
		} else {
			tabs[i] = tabStyle.Render(p.title)
		}
	}
	s := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)

	res := m.layout(actionNone)
	s += "\n" + bodyStyle.Render(res.form.render(m.width-4))

	s += "\n" + m.saveState()

	if m.showHelp {
		s += "\n" + m.help.FullHelpView(m.keys.FullHelp())
	} else if m.statusMsg != "" {
		statusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
		if m.statusErr {
			statusStyle = statusStyle.Foreground(lipgloss.Color("9"))
		}
		s += "\n" + statusStyle.Render(m.statusMsg)
	} else {
		s += "\n" + m.buildKeybindBar(m.width)
	}
	return s
}

func (m Model) saveState() string {
	switch {
	case m.dirty:
		return dirtyStyle.Render("● unsaved changes (ctrl+s to save)")
	case !m.savedAt.IsZero():
		return labelStyle.Render("saved " + humanize.Time(m.savedAt))
	default:
		return labelStyle.Render("no changes")
	}
}

type keybind struct {
	key  string
	desc string
}

// buildKeybindBar builds a keybind bar that fits within the given width.
func (m Model) buildKeybindBar(width int) string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	keyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("10"))

	binds := []keybind{
		{"q", "close"},
		{"tab", "panel"},
		{"↑/↓", "move"},
		{"←/→", "adjust"},
		{"enter", "toggle"},
	}
	if m.dirty {
		binds = slices.Insert(binds, 1, keybind{"ctrl+s", "save"})
	}
	binds = append(binds, keybind{"?", "help"})

	const separator = "  "
	result := ""
	for _, b := range binds {
		item := keyStyle.Render(b.key) + " " + b.desc
		if result != "" {
			item = separator + item
		}
		if width > 0 && lipgloss.Width(result+item) > width {
			break
		}
		result += item
	}
	return style.Render(result)
}

// RunOptions configures the TUI.
type RunOptions struct {
	Store    *config.Store
	Registry *dream.Registry
	Version  string
	Logger   *slog.Logger
}

// Run starts the settings editor and blocks until it is closed.
func Run(opts RunOptions) error {
	m, err := New(opts.Store, opts.Registry, opts.Version, opts.Logger)
	if err != nil {
		return err
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
