package utils

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/x/ansi"
)

// Highlighter colours source code for a 256-colour terminal.
type Highlighter struct {
	style     *chroma.Style
	formatter chroma.Formatter
}

// NewHighlighter uses the named chroma style, or chroma's fallback.
func NewHighlighter(styleName string) *Highlighter {
	style := styles.Get(styleName)
	if style == nil {
		style = styles.Fallback
	}
	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}
	return &Highlighter{style: style, formatter: formatter}
}

// StyleName returns the chroma style name in use.
func (h *Highlighter) StyleName() string {
	return h.style.Name
}

// Highlight colours code without changing its text. language may be a chroma alias such as "go" or
// a file name; unknown languages are guessed from the content. Code that
// cannot be lexed is returned unchanged.
func (h *Highlighter) Highlight(code, language string) string {
	lexer := findLexer(code, language)
	if lexer == nil {
		return code
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}

	var buf bytes.Buffer
	if err := h.formatter.Format(&buf, h.style, iterator); err != nil {
		return code
	}

	// Lexers may append a final newline the input did not have.
	out := buf.String()
	if !strings.HasSuffix(code, "\n") {
		if i := strings.LastIndex(out, "\n"); i >= 0 && ansi.Strip(out[i+1:]) == "" {
			out = out[:i] + out[i+1:]
		}
	}
	return out
}

func findLexer(code, language string) chroma.Lexer {
	if language != "" {
		if lexer := lexers.Get(language); lexer != nil {
			return lexer
		}
		if lexer := lexers.Match(filepath.Base(language)); lexer != nil {
			return lexer
		}
	}
	if strings.TrimSpace(code) == "" {
		return nil
	}
	return lexers.Analyse(code)
}

// DetectLanguage names the language of a file from its name, or "text".
func DetectLanguage(filename string) string {
	if lexer := lexers.Match(filepath.Base(filename)); lexer != nil {
		return lexer.Config().Name
	}
	return "text"
}
