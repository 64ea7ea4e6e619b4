package components

import (
	"strings"

	"github.com/Rorical/RoriShell/internal/models"
	"github.com/Rorical/RoriShell/internal/utils"
	"github.com/Rorical/RoriShell/ui/styles"
)

func chatWelcome(mode models.Mode) string {
	if mode == models.Agent {
		return "Опишите задачу: модель предложит шаги и команды."
	}
	return "Задайте вопрос модели. Команды терминала можно запускать через !"
}

// RenderMessages renders the chat log. Assistant replies are markdown.
func RenderMessages(st styles.Styles, md *utils.MarkdownRenderer, entries []models.ChatEntry, mode models.Mode, width int) string {
	if len(entries) == 0 {
		return st.Muted.Render(chatWelcome(mode))
	}

	bodyWidth := max(width-4, 1)
	var b strings.Builder
	for i, msg := range entries {
		if i > 0 {
			b.WriteString("\n\n")
		}
		switch msg.Role {
		case models.User:
			b.WriteString(st.UserLabel.Render("Пользователь") + "\n")
			b.WriteString(st.UserBubble.Width(bodyWidth).Render(msg.Text))
		case models.Assistant:
			b.WriteString(st.AssistantLabel.Render("Модель") + "\n")
			b.WriteString(st.AssistantBody.Width(bodyWidth).Render(md.Render(msg.Text)))
		}
	}
	return b.String()
}
