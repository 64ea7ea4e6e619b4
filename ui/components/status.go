package components

import (
	"github.com/Rorical/RoriShell/ui/styles"
)

// RenderStatus shows the status text, prefixed by the spinner frame while
// host calls are pending.
func RenderStatus(st styles.Styles, status string, busy bool, spinner string, width int) string {
	statusContent := status
	if busy {
		statusContent = spinner + " " + status
	}
	return st.StatusStyle(width).Render(statusContent)
}
