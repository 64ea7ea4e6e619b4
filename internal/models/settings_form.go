package models

import (
	"math"
	"strings"
)

type SettingsField int

const (
	ThemeField SettingsField = iota
	FontFamilyField
	FontSizeField
	ModelField
	TemperatureField
	settingsFieldCount
)

const (
	MinFontSize    = 10
	MaxFontSize    = 28
	MinTemperature = 0
	MaxTemperature = 2
)

var settingsFieldLabels = map[SettingsField]string{
	ThemeField:       "Тема",
	FontFamilyField:  "Шрифт",
	FontSizeField:    "Размер шрифта",
	ModelField:       "Модель",
	TemperatureField: "Температура",
}

func (f SettingsField) Label() string {
	return settingsFieldLabels[f]
}

// Editable reports whether typed text goes into the field.
func (f SettingsField) Editable() bool {
	return f == FontFamilyField || f == ModelField
}

// SettingsForm is the state of the settings overlay.
type SettingsForm struct {
	Open    bool
	Section string // "", "fonts" or "ollama"
	Draft   Settings
	Themes  []string
	field   Selection
}

// Show opens the overlay on a copy of current, focused on section.
func (f *SettingsForm) Show(section string, current Settings, themes []string) {
	f.Open = true
	f.Section = section
	f.Draft = current
	f.Themes = themes
	f.field.Reset(int(settingsFieldCount))
	switch section {
	case "fonts":
		f.field.Set(int(FontFamilyField))
	case "ollama":
		f.field.Set(int(ModelField))
	}
}

func (f *SettingsForm) Close() {
	f.Open = false
	f.Section = ""
}

func (f *SettingsForm) Field() SettingsField {
	return SettingsField(f.field.Index())
}

func (f *SettingsForm) Fields() []SettingsField {
	fields := make([]SettingsField, 0, settingsFieldCount)
	for i := SettingsField(0); i < settingsFieldCount; i++ {
		fields = append(fields, i)
	}
	return fields
}

func (f *SettingsForm) MoveField(delta int) {
	f.field.Move(delta)
}

// Adjust steps the focused field: cycles the theme, nudges numbers.
func (f *SettingsForm) Adjust(delta int) {
	switch f.Field() {
	case ThemeField:
		if len(f.Themes) == 0 {
			return
		}
		i := 0
		for j, id := range f.Themes {
			if id == f.Draft.ThemeID {
				i = j
				break
			}
		}
		var sel Selection
		sel.Reset(len(f.Themes))
		sel.Set(i)
		sel.Move(delta)
		f.Draft.ThemeID = f.Themes[sel.Index()]
	case FontSizeField:
		f.Draft.FontSize = clamp(f.Draft.FontSize+delta, MinFontSize, MaxFontSize)
	case TemperatureField:
		t := float64(f.Draft.Ollama.Temperature) + 0.1*float64(delta)
		t = math.Round(t*10) / 10
		f.Draft.Ollama.Temperature = float32(math.Min(math.Max(t, MinTemperature), MaxTemperature))
	}
}

// Type appends text to an editable field.
func (f *SettingsForm) Type(text string) {
	switch f.Field() {
	case FontFamilyField:
		f.Draft.FontFamily += text
	case ModelField:
		f.Draft.Ollama.Model += text
	}
}

// Backspace removes the last rune of an editable field.
func (f *SettingsForm) Backspace() {
	switch f.Field() {
	case FontFamilyField:
		f.Draft.FontFamily = dropLastRune(f.Draft.FontFamily)
	case ModelField:
		f.Draft.Ollama.Model = dropLastRune(f.Draft.Ollama.Model)
	}
}

// Patch returns the draft as an update; blank text fields are omitted.
func (f *SettingsForm) Patch(mode Mode) SettingsPatch {
	d := f.Draft
	patch := SettingsPatch{
		ThemeID:  &d.ThemeID,
		FontSize: &d.FontSize,
		Mode:     &mode,
		Ollama:   &OllamaSettingsPatch{Temperature: &d.Ollama.Temperature},
	}
	if strings.TrimSpace(d.FontFamily) != "" {
		patch.FontFamily = &d.FontFamily
	}
	if strings.TrimSpace(d.Ollama.Model) != "" {
		patch.Ollama.Model = &d.Ollama.Model
	}
	return patch
}

func dropLastRune(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	return string(r[:len(r)-1])
}
