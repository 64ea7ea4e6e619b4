package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Theme is a named colour palette. Colours are hex strings.
type Theme struct {
	ID         string `yaml:"id"`
	Name       string `yaml:"name"`
	Background string `yaml:"background"`
	Foreground string `yaml:"foreground"`
	Muted      string `yaml:"muted"`
	Surface    string `yaml:"surface"`
	Accent     string `yaml:"accent"`
	Border     string `yaml:"border"`
	Chroma     string `yaml:"chroma"` // syntax highlighting style
}

type themesFileContent struct {
	Themes []Theme `yaml:"themes"`
}

// BuiltinThemes returns the themes that are always available.
func BuiltinThemes() []Theme {
	return []Theme{
		{ID: "graphite", Name: "Terminal Black", Background: "#0a0a0a", Foreground: "#ffffff", Muted: "#888888", Surface: "#1a1a1a", Accent: "#00ff88", Border: "#333333", Chroma: "monokai"},
		{ID: "dusk", Name: "Dusk", Background: "#1d1f24", Foreground: "#f8f9fb", Muted: "#838b95", Surface: "#272a31", Accent: "#ff866c", Border: "#383b44", Chroma: "dracula"},
		{ID: "light", Name: "Light", Background: "#f7f8fb", Foreground: "#1f2227", Muted: "#59616d", Surface: "#ffffff", Accent: "#4867f4", Border: "#d7dbe4", Chroma: "github"},
	}
}

// LoadThemes returns the built-in themes followed by those in path. A user
// theme with a built-in id replaces it; blank colours inherit from graphite.
func LoadThemes(path string) ([]Theme, error) {
	themes := BuiltinThemes()
	if path == "" {
		return themes, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return themes, nil
	}
	if err != nil {
		return themes, fmt.Errorf("failed to read themes: %w", err)
	}

	var content themesFileContent
	if err := yaml.Unmarshal(data, &content); err != nil {
		return themes, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	for _, theme := range content.Themes {
		if theme.ID == "" {
			continue
		}
		theme = withFallback(theme, themes[0])
		replaced := false
		for i := range themes {
			if themes[i].ID == theme.ID {
				themes[i] = theme
				replaced = true
				break
			}
		}
		if !replaced {
			themes = append(themes, theme)
		}
	}
	return themes, nil
}

func withFallback(theme, base Theme) Theme {
	fill := func(v *string, fallback string) {
		if *v == "" {
			*v = fallback
		}
	}
	fill(&theme.Name, theme.ID)
	fill(&theme.Background, base.Background)
	fill(&theme.Foreground, base.Foreground)
	fill(&theme.Muted, base.Muted)
	fill(&theme.Surface, base.Surface)
	fill(&theme.Accent, base.Accent)
	fill(&theme.Border, base.Border)
	fill(&theme.Chroma, base.Chroma)
	return theme
}

// ThemeIDs lists the ids of themes in order.
func ThemeIDs(themes []Theme) []string {
	ids := make([]string, 0, len(themes))
	for _, t := range themes {
		ids = append(ids, t.ID)
	}
	return ids
}

// FindTheme returns the theme with id, or the first theme.
func FindTheme(themes []Theme, id string) Theme {
	for _, t := range themes {
		if t.ID == id {
			return t
		}
	}
	if len(themes) == 0 {
		return BuiltinThemes()[0]
	}
	return themes[0]
}
