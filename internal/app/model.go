package app

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Rorical/RoriShell/internal/config"
	"github.com/Rorical/RoriShell/internal/models"
	"github.com/Rorical/RoriShell/internal/update"
	"github.com/Rorical/RoriShell/internal/utils"
	"github.com/Rorical/RoriShell/ui/components"
	"github.com/Rorical/RoriShell/ui/styles"
)

const (
	headerHeight = 1
	inputHeight  = 3
	statusHeight = 1
	minTreeWidth = 24
)

// panelKey identifies what a viewport currently shows, so content is only
// re-rendered when it changes.
type panelKey struct {
	revision int
	width    int
	theme    string
	mode     models.Mode
}

// AppModel is the bubbletea model: it forwards input to the session and
// lays out the session state.
type AppModel struct {
	session *update.Session
	themes  []config.Theme

	theme config.Theme
	st    styles.Styles
	hl    *utils.Highlighter
	md    *utils.MarkdownRenderer

	terminal viewport.Model
	chat     viewport.Model
	editor   viewport.Model
	spinner  spinner.Model

	terminalKey panelKey
	chatKey     panelKey
	editorKey   panelKey
}

func NewAppModel(session *update.Session, themes []config.Theme) *AppModel {
	if len(themes) == 0 {
		themes = config.BuiltinThemes()
	}
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := &AppModel{
		session:  session,
		themes:   themes,
		terminal: viewport.New(0, 0),
		chat:     viewport.New(0, 0),
		editor:   viewport.New(0, 0),
		spinner:  sp,
	}
	m.applyTheme(config.FindTheme(themes, session.Model.Settings.ThemeID))
	return m
}

func (m *AppModel) Init() tea.Cmd {
	return tea.Batch(m.session.Init(), m.spinner.Tick)
}

func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case spinner.TickMsg:
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		switch msg.String() {
		case "pgup":
			m.scroll(-1)
			return m, nil
		case "pgdown":
			m.scroll(1)
			return m, nil
		}
	}

	cmd = m.session.Update(msg)
	m.sync()
	return m, cmd
}

// activeThemeID previews the theme being picked in the settings form.
func (m *AppModel) activeThemeID() string {
	s := m.session.Model
	if s.SettingsForm.Open {
		return s.SettingsForm.Draft.ThemeID
	}
	return s.Settings.ThemeID
}

func (m *AppModel) applyTheme(theme config.Theme) {
	m.theme = theme
	m.st = styles.New(theme)
	m.hl = utils.NewHighlighter(theme.Chroma)
	m.md = utils.NewMarkdownRenderer(m.st.Markdown, m.hl)
	m.spinner.Style = m.st.Accent
}

func (m *AppModel) activeViewport() *viewport.Model {
	switch m.session.Model.Mode.Panel() {
	case models.IdePanel:
		return &m.editor
	case models.ChatPanel:
		return &m.chat
	default:
		return &m.terminal
	}
}

func (m *AppModel) scroll(pages int) {
	vp := m.activeViewport()
	vp.SetYOffset(vp.YOffset + pages*max(vp.Height-1, 1))
}

// sync resizes the viewports and refreshes the content of the visible one.
func (m *AppModel) sync() {
	if id := m.activeThemeID(); id != m.theme.ID {
		m.applyTheme(config.FindTheme(m.themes, id))
	}

	s := m.session.Model
	body := m.bodyHeight()
	width := max(s.Width, 1)

	switch s.Mode.Panel() {
	case models.TerminalPanel:
		m.terminal.Width, m.terminal.Height = width, body
		key := panelKey{revision: s.Terminal.Revision(), width: width, theme: m.theme.ID}
		if key != m.terminalKey {
			follow := key.revision != m.terminalKey.revision
			m.terminalKey = key
			m.terminal.SetContent(components.RenderTerminal(m.st, s.Terminal.Entries(), width))
			if follow {
				m.terminal.GotoBottom()
			}
		}
	case models.ChatPanel:
		m.chat.Width, m.chat.Height = width, body
		key := panelKey{revision: s.Chat.Revision(), width: width, theme: m.theme.ID, mode: s.Mode}
		if key != m.chatKey {
			follow := key.revision != m.chatKey.revision
			m.chatKey = key
			m.chat.SetContent(components.RenderMessages(m.st, m.md, s.Chat.Entries(), s.Mode, width))
			if follow {
				m.chat.GotoBottom()
			}
		}
	case models.IdePanel:
		_, editorWidth := m.paneWidths()
		m.editor.Width, m.editor.Height = max(editorWidth-2, 1), max(body-3, 1)
		key := panelKey{revision: s.Editor.Revision, width: editorWidth, theme: m.theme.ID}
		if key != m.editorKey {
			reopened := key.revision != m.editorKey.revision
			m.editorKey = key
			m.editor.SetContent(components.RenderEditor(m.st, m.hl, s.Editor))
			if reopened {
				m.editor.GotoTop()
			}
		}
	}
}

func (m *AppModel) paneWidths() (tree, editor int) {
	width := max(m.session.Model.Width, 1)
	tree = max(width/3, minTreeWidth)
	if tree >= width {
		return width, 0
	}
	return tree, width - tree
}

func (m *AppModel) overlay() string {
	s := m.session.Model
	width := max(s.Width, 1)
	switch {
	case s.SettingsForm.Open:
		return components.RenderSettingsForm(m.st, &s.SettingsForm, m.themeName, width)
	case s.Overlay == models.SlashOverlay:
		return components.RenderSlashMenu(m.st, s.Slash, width)
	case s.Overlay == models.AutocompleteOverlay:
		return components.RenderAutocomplete(m.st, &s.Autocomplete, width)
	}
	return ""
}

func (m *AppModel) themeName(id string) string {
	return config.FindTheme(m.themes, id).Name
}

func (m *AppModel) bodyHeight() int {
	used := headerHeight + inputHeight + statusHeight
	if overlay := m.overlay(); overlay != "" {
		used += lipgloss.Height(overlay)
	}
	return max(m.session.Model.Height-used, 1)
}

func (m *AppModel) View() string {
	s := m.session.Model
	if s.Width == 0 {
		return "Загрузка..."
	}

	parts := []string{
		components.RenderHeader(m.st, s.Mode, s.CurrentDir, s.Width),
		m.panel(),
	}
	if overlay := m.overlay(); overlay != "" {
		parts = append(parts, overlay)
	}
	parts = append(parts,
		components.RenderInput(m.st, s.Input.View(), s.Width),
		components.RenderStatus(m.st, s.Status, s.Busy(), m.spinner.View(), s.Width),
	)
	return strings.Join(parts, "\n")
}

func (m *AppModel) panel() string {
	s := m.session.Model
	switch s.Mode.Panel() {
	case models.IdePanel:
		return m.idePanel()
	case models.ChatPanel:
		return m.chat.View()
	default:
		return m.terminal.View()
	}
}

func (m *AppModel) idePanel() string {
	s := m.session.Model
	body := m.bodyHeight()
	treeWidth, editorWidth := m.paneWidths()

	treeBody := components.RenderFileTree(m.st, s.Tree, max(treeWidth-2, 1), max(body-3, 1))
	tree := m.st.PaneStyle(treeWidth, body, true).
		Render(m.st.PaneTitle.Render("Файлы") + "\n" + treeBody)
	if editorWidth == 0 {
		return tree
	}
	editor := m.st.PaneStyle(editorWidth, body, false).
		Render(components.RenderEditorTitle(m.st, s.Editor) + "\n" + m.editor.View())
	return lipgloss.JoinHorizontal(lipgloss.Top, tree, editor)
}
