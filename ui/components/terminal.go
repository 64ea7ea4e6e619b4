package components

import (
	"strconv"
	"strings"

	"github.com/Rorical/RoriShell/internal/models"
	"github.com/Rorical/RoriShell/ui/styles"
)

const terminalWelcome = "Введите команду. Tab дополняет пути, / открывает меню."

// RenderTerminal renders the transcript, oldest entry first.
func RenderTerminal(st styles.Styles, entries []models.TerminalEntry, width int) string {
	if len(entries) == 0 {
		return st.Muted.Render(terminalWelcome)
	}

	wrap := st.Text.Width(max(width, 1))
	blocks := make([]string, 0, len(entries))
	for _, e := range entries {
		var b strings.Builder
		b.WriteString(st.Command.Render("$ " + e.Command))
		if e.Pending() {
			b.WriteString("\n" + st.Muted.Render(e.Status))
		}
		if e.Stdout != "" {
			b.WriteString("\n" + wrap.Render(st.Stdout.Render(e.Stdout)))
		}
		if e.Stderr != "" {
			b.WriteString("\n" + wrap.Render(st.Stderr.Render(e.Stderr)))
		}
		if e.ExitCode != nil {
			code := st.Muted
			if *e.ExitCode != 0 {
				code = st.Error
			}
			b.WriteString("\n" + code.Render("Код выхода: "+strconv.Itoa(*e.ExitCode)))
		}
		if e.CurrentDir != "" {
			b.WriteString("\n" + st.Muted.Render("Текущий каталог: "+e.CurrentDir))
		}
		blocks = append(blocks, b.String())
	}
	return strings.Join(blocks, "\n\n")
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
