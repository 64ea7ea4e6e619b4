package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Rorical/RoriShell/internal/config"
	"github.com/Rorical/RoriShell/internal/utils"
)

// Styles is a theme translated into lipgloss styles.
type Styles struct {
	Theme config.Theme

	Header    lipgloss.Style
	Tab       lipgloss.Style
	ActiveTab lipgloss.Style
	Dir       lipgloss.Style

	Muted  lipgloss.Style
	Accent lipgloss.Style
	Error  lipgloss.Style
	Text   lipgloss.Style

	Command lipgloss.Style
	Stdout  lipgloss.Style
	Stderr  lipgloss.Style

	UserLabel      lipgloss.Style
	AssistantLabel lipgloss.Style
	UserBubble     lipgloss.Style
	AssistantBody  lipgloss.Style

	OverlayTitle lipgloss.Style
	Item         lipgloss.Style
	SelectedItem lipgloss.Style
	Hint         lipgloss.Style

	TreeDir    lipgloss.Style
	TreeFile   lipgloss.Style
	TreeCursor lipgloss.Style
	PaneTitle  lipgloss.Style

	Markdown utils.MarkdownStyles

	colors palette
}

type palette struct {
	bg, fg, muted, surface, accent, border lipgloss.Color
}

func New(theme config.Theme) Styles {
	c := palette{
		bg:      lipgloss.Color(theme.Background),
		fg:      lipgloss.Color(theme.Foreground),
		muted:   lipgloss.Color(theme.Muted),
		surface: lipgloss.Color(theme.Surface),
		accent:  lipgloss.Color(theme.Accent),
		border:  lipgloss.Color(theme.Border),
	}
	errorColor := lipgloss.Color("#ff5f5f")

	markdown := utils.DefaultMarkdownStyles()
	markdown.Code = markdown.Code.Background(c.surface).Foreground(c.fg)
	markdown.Title = markdown.Title.Foreground(c.accent)
	markdown.Subtitle = markdown.Subtitle.Foreground(c.accent)
	markdown.Link = markdown.Link.Foreground(c.accent)
	markdown.Fence = markdown.Fence.Foreground(c.muted)
	markdown.Quote = markdown.Quote.Foreground(c.muted)

	return Styles{
		Theme: theme,

		Header:    lipgloss.NewStyle().Background(c.surface).Foreground(c.fg),
		Tab:       lipgloss.NewStyle().Foreground(c.muted).Padding(0, 1),
		ActiveTab: lipgloss.NewStyle().Foreground(c.bg).Background(c.accent).Bold(true).Padding(0, 1),
		Dir:       lipgloss.NewStyle().Foreground(c.muted).Padding(0, 1),

		Muted:  lipgloss.NewStyle().Foreground(c.muted),
		Accent: lipgloss.NewStyle().Foreground(c.accent),
		Error:  lipgloss.NewStyle().Foreground(errorColor),
		Text:   lipgloss.NewStyle().Foreground(c.fg),

		Command: lipgloss.NewStyle().Foreground(c.accent).Bold(true),
		Stdout:  lipgloss.NewStyle().Foreground(c.fg),
		Stderr:  lipgloss.NewStyle().Foreground(errorColor),

		UserLabel:      lipgloss.NewStyle().Foreground(c.accent).Bold(true),
		AssistantLabel: lipgloss.NewStyle().Foreground(c.muted).Bold(true),
		UserBubble: lipgloss.NewStyle().
			Foreground(c.fg).
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(c.accent).
			Padding(0, 1).
			MarginLeft(2),
		AssistantBody: lipgloss.NewStyle().
			Foreground(c.fg).
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(c.border).
			Padding(0, 1).
			MarginLeft(2),

		OverlayTitle: lipgloss.NewStyle().Foreground(c.muted).Bold(true),
		Item:         lipgloss.NewStyle().Foreground(c.fg).Padding(0, 1),
		SelectedItem: lipgloss.NewStyle().Foreground(c.bg).Background(c.accent).Padding(0, 1),
		Hint:         lipgloss.NewStyle().Foreground(c.muted),

		TreeDir:    lipgloss.NewStyle().Foreground(c.accent),
		TreeFile:   lipgloss.NewStyle().Foreground(c.fg),
		TreeCursor: lipgloss.NewStyle().Background(c.surface).Bold(true),
		PaneTitle:  lipgloss.NewStyle().Foreground(c.muted).Bold(true),

		Markdown: markdown,
		colors:   c,
	}
}

func (s Styles) InputStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.colors.accent).
		Padding(0, 1).
		Width(max(width-2, 1))
}

func (s Styles) StatusStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(s.colors.muted).
		Background(s.colors.surface).
		Padding(0, 1).
		Width(max(width, 1))
}

// OverlayStyle frames the menus and the settings form above the input.
func (s Styles) OverlayStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.colors.border).
		Padding(0, 1).
		Width(max(width-2, 1))
}

// PaneStyle frames the tree and editor panes.
func (s Styles) PaneStyle(width, height int, focused bool) lipgloss.Style {
	border := s.colors.border
	if focused {
		border = s.colors.accent
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(max(width-2, 1)).
		Height(max(height-2, 1))
}
