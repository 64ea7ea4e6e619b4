package utils

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// MarkdownStyles are the styles used for rendered markdown elements.
type MarkdownStyles struct {
	Code     lipgloss.Style
	Fence    lipgloss.Style
	Bold     lipgloss.Style
	Italic   lipgloss.Style
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Link     lipgloss.Style
	List     lipgloss.Style
	Quote    lipgloss.Style
}

func DefaultMarkdownStyles() MarkdownStyles {
	return MarkdownStyles{
		Code:     lipgloss.NewStyle().Background(lipgloss.Color("236")).Padding(0, 1),
		Fence:    lipgloss.NewStyle().Faint(true),
		Bold:     lipgloss.NewStyle().Bold(true),
		Italic:   lipgloss.NewStyle().Italic(true),
		Title:    lipgloss.NewStyle().Bold(true).Underline(true),
		Subtitle: lipgloss.NewStyle().Bold(true),
		Link:     lipgloss.NewStyle().Underline(true),
		List:     lipgloss.NewStyle().MarginLeft(2),
		Quote:    lipgloss.NewStyle().Faint(true).MarginLeft(2),
	}
}

var (
	orderedListPattern = regexp.MustCompile(`^(\d+)\.\s+(.*)`)
	inlineCodePattern  = regexp.MustCompile("``[^`]*``|`[^`]*`")
	linkPattern        = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
	boldPattern        = regexp.MustCompile(`\*\*([^*]|\*[^*])*\*\*`)
	underscoreItalic   = regexp.MustCompile(`(?:^|[^\pL\pN_])_([^_]+)_(?:[^\pL\pN_]|$)`)
	asteriskItalic     = regexp.MustCompile(`(?:^|[^*])\*([^*]+)\*(?:[^*]|$)`)
	italicInner        = regexp.MustCompile(`([_*])([^_*]+)([_*])`)
	paragraphBreak     = regexp.MustCompile(`\n\s*\n`)
)

// MarkdownRenderer turns assistant replies into styled terminal text.
// Fenced code blocks keep their layout and are syntax highlighted.
type MarkdownRenderer struct {
	styles      MarkdownStyles
	highlighter *Highlighter
}

func NewMarkdownRenderer(styles MarkdownStyles, highlighter *Highlighter) *MarkdownRenderer {
	return &MarkdownRenderer{styles: styles, highlighter: highlighter}
}

// RenderMarkdown renders with the default styles and the monokai palette.
func RenderMarkdown(text string) string {
	return NewMarkdownRenderer(DefaultMarkdownStyles(), NewHighlighter("monokai")).Render(text)
}

func (r *MarkdownRenderer) Render(text string) string {
	var out []string
	for _, block := range splitFences(text) {
		if block.code {
			out = append(out, r.renderCode(block))
			continue
		}
		prose := normalizeMarkdownNewlines(block.text)
		if prose == "" {
			continue
		}
		out = append(out, r.renderProse(prose))
	}
	return strings.Join(out, "\n")
}

type mdBlock struct {
	code     bool
	language string
	text     string
}

// splitFences separates fenced code blocks from prose. An unterminated
// fence runs to the end of the text.
func splitFences(text string) []mdBlock {
	var blocks []mdBlock
	var current []string
	inCode := false
	language := ""

	flush := func() {
		blocks = append(blocks, mdBlock{code: inCode, language: language, text: strings.Join(current, "\n")})
		current = nil
	}

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") {
			flush()
			if inCode {
				inCode, language = false, ""
			} else {
				inCode, language = true, strings.TrimSpace(strings.TrimPrefix(trimmed, "```"))
			}
			continue
		}
		current = append(current, line)
	}
	if len(current) > 0 || inCode {
		flush()
	}
	return blocks
}

func (r *MarkdownRenderer) renderCode(block mdBlock) string {
	label := block.language
	if label == "" {
		label = "code"
	}
	code := strings.TrimRight(block.text, "\n")
	highlighted := code
	if r.highlighter != nil && block.language != "" {
		highlighted = r.highlighter.Highlight(code, block.language)
	}
	return r.styles.Fence.Render("┌─ "+label) + "\n" + highlighted + "\n" + r.styles.Fence.Render("└─")
}

func (r *MarkdownRenderer) renderProse(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = r.renderLine(line)
	}
	return strings.Join(lines, "\n")
}

func (r *MarkdownRenderer) renderLine(line string) string {
	s := r.styles
	switch {
	case strings.HasPrefix(line, "### "):
		return s.Subtitle.Render(r.inline(strings.TrimPrefix(line, "### ")))
	case strings.HasPrefix(line, "## "):
		return s.Title.Render(r.inline(strings.TrimPrefix(line, "## ")))
	case strings.HasPrefix(line, "# "):
		return s.Title.Render(r.inline(strings.TrimPrefix(line, "# ")))
	case strings.HasPrefix(line, "- "), strings.HasPrefix(line, "* "):
		return s.List.Render("• " + r.inline(line[2:]))
	case strings.HasPrefix(line, "> "):
		return s.Quote.Render("│ " + r.inline(strings.TrimPrefix(line, "> ")))
	}
	if m := orderedListPattern.FindStringSubmatch(line); m != nil {
		return s.List.Render(m[1] + ". " + r.inline(m[2]))
	}
	return r.inline(line)
}

// inline renders code spans first so their content is not formatted.
func (r *MarkdownRenderer) inline(line string) string {
	s := r.styles
	var spans []string
	line = inlineCodePattern.ReplaceAllStringFunc(line, func(match string) string {
		spans = append(spans, s.Code.Render(strings.Trim(match, "`")))
		return spanMarker(len(spans) - 1)
	})

	line = linkPattern.ReplaceAllStringFunc(line, func(match string) string {
		m := linkPattern.FindStringSubmatch(match)
		return s.Link.Render(r.emphasis(m[1]))
	})
	line = r.emphasis(line)

	for i, span := range spans {
		line = strings.Replace(line, spanMarker(i), span, 1)
	}
	return line
}

func spanMarker(i int) string {
	return "\x00" + strconv.Itoa(i) + "\x00"
}

func (r *MarkdownRenderer) emphasis(text string) string {
	s := r.styles
	text = boldPattern.ReplaceAllStringFunc(text, func(match string) string {
		return s.Bold.Render(r.italic(strings.TrimSuffix(strings.TrimPrefix(match, "**"), "**")))
	})
	return r.italic(text)
}

func (r *MarkdownRenderer) italic(text string) string {
	for _, pattern := range []*regexp.Regexp{underscoreItalic, asteriskItalic} {
		text = pattern.ReplaceAllStringFunc(text, func(match string) string {
			loc := italicInner.FindStringSubmatchIndex(match)
			if loc == nil {
				return match
			}
			return match[:loc[0]] + r.styles.Italic.Render(match[loc[4]:loc[5]]) + match[loc[1]:]
		})
	}
	return text
}

// normalizeMarkdownNewlines joins soft-wrapped lines within a paragraph
// and collapses paragraph breaks. Headings, list items, and quotes stay on
// their own lines.
func normalizeMarkdownNewlines(text string) string {
	var paragraphs []string
	for _, paragraph := range paragraphBreak.Split(text, -1) {
		var lines []string
		for _, line := range strings.Split(paragraph, "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			if len(lines) > 0 && !isSpecialFormattingLine(line) && !isSpecialFormattingLine(lines[len(lines)-1]) {
				lines[len(lines)-1] += " " + line
				continue
			}
			lines = append(lines, line)
		}
		if len(lines) > 0 {
			paragraphs = append(paragraphs, strings.Join(lines, "\n"))
		}
	}
	return strings.Join(paragraphs, "\n")
}

func isSpecialFormattingLine(line string) bool {
	switch {
	case strings.HasPrefix(line, "#"),
		strings.HasPrefix(line, "- "),
		strings.HasPrefix(line, "* "),
		strings.HasPrefix(line, "> "):
		return true
	}
	return orderedListPattern.MatchString(line)
}
