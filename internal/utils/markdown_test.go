package utils

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

func plain(text string) string {
	lines := strings.Split(ansi.Strip(RenderMarkdown(text)), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	return strings.Join(lines, "\n")
}

func TestRenderMarkdownBlocks(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"soft wrap joins lines", "first line\nsecond line", "first line second line"},
		{"paragraphs", "one\n\ntwo", "one\ntwo"},
		{"heading", "## Шаги", "Шаги"},
		{"bullets", "- a\n* b", "  • a\n  • b"},
		{"ordered", "1. build\n2. test", "  1. build\n  2. test"},
		{"quote", "> note", "  │ note"},
		{"bold and italic", "**bold** and _it_", "bold and it"},
		{"asterisk italic", "an *important* word", "an important word"},
		{"snake case untouched", "use my_var_name here", "use my_var_name here"},
		{"link", "see [docs](https://example.com)", "see docs"},
		{"inline code keeps marks", "run `a_b*c*`", "run  a_b*c*"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, plain(tt.in))
		})
	}
}

func TestRenderMarkdownCodeBlockKeepsLayout(t *testing.T) {
	in := "Пример:\n```go\nfunc main() {\n\tif ok {\n\t\treturn\n\t}\n}\n```\nГотово"

	got := plain(in)

	assert.Equal(t, "Пример:\n┌─ go\nfunc main() {\n\tif ok {\n\t\treturn\n\t}\n}\n└─\nГотово", got)
}

func TestRenderMarkdownUnterminatedFence(t *testing.T) {
	got := plain("```\nx := 1")
	assert.Equal(t, "┌─ code\nx := 1\n└─", got)
}
