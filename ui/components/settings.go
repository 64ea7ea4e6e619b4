package components

import (
	"strconv"
	"strings"

	"github.com/Rorical/RoriShell/internal/models"
	"github.com/Rorical/RoriShell/ui/styles"
)

const settingsHelp = "↑↓ - поле, ←→ - изменить, Enter - сохранить, Esc - отмена"

var sectionTitles = map[string]string{
	"":       "Настройки",
	"fonts":  "Настройки: шрифты",
	"ollama": "Настройки: Ollama",
}

// RenderSettingsForm lists the draft values with the focused field
// highlighted. themeName maps a theme id to its display name.
func RenderSettingsForm(st styles.Styles, form *models.SettingsForm, themeName func(id string) string, width int) string {
	lines := []string{st.OverlayTitle.Render(sectionTitles[form.Section])}

	for _, field := range form.Fields() {
		value := settingsValue(form.Draft, field, themeName)
		if field == form.Field() {
			if field.Editable() {
				value += "▏"
			} else {
				value = "‹ " + value + " ›"
			}
			lines = append(lines, st.SelectedItem.Render(field.Label()+": "+value))
			continue
		}
		lines = append(lines, st.Item.Render(field.Label()+": "+value))
	}
	lines = append(lines, st.Hint.Render(settingsHelp))
	return st.OverlayStyle(width).Render(strings.Join(lines, "\n"))
}

func settingsValue(s models.Settings, field models.SettingsField, themeName func(string) string) string {
	switch field {
	case models.ThemeField:
		if themeName != nil {
			return themeName(s.ThemeID)
		}
		return s.ThemeID
	case models.FontFamilyField:
		return s.FontFamily
	case models.FontSizeField:
		return strconv.Itoa(s.FontSize)
	case models.ModelField:
		return s.Ollama.Model
	case models.TemperatureField:
		return strconv.FormatFloat(float64(s.Ollama.Temperature), 'f', 1, 32)
	}
	return ""
}
