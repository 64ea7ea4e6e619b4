package components

import (
	"github.com/Rorical/RoriShell/ui/styles"
)

func RenderInput(st styles.Styles, input string, width int) string {
	return st.InputStyle(width).Render(input)
}
