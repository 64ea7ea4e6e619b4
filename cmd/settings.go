package cmd

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/Rorical/RoriShell/internal/config"
	"github.com/Rorical/RoriShell/internal/models"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage persisted settings",
	Long:  `Show, edit or reset the settings the shell stores in ~/.rorishell/settings.json.`,
}

var showSettingsCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	Run: func(cmd *cobra.Command, args []string) {
		store := loadStore()
		themes := mustLoadThemes()
		writeSettings(os.Stdout, store.Path(), store.Get(), themes)
	},
}

var editSettingsCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit settings interactively",
	Run: func(cmd *cobra.Command, args []string) {
		store := loadStore()

		patch, err := promptSettings(store.Get(), mustLoadThemes())
		if err != nil {
			log.Fatalf("Prompt failed: %v", err)
		}
		if _, err := store.Update(patch); err != nil {
			log.Fatalf("Failed to save settings: %v", err)
		}
		fmt.Println("Settings saved")
	},
}

var resetSettingsCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore default settings",
	Run: func(cmd *cobra.Command, args []string) {
		store := loadStore()

		confirmPrompt := promptui.Prompt{
			Label:     "Reset all settings to defaults? (y/N)",
			IsConfirm: true,
		}
		if _, err := confirmPrompt.Run(); err != nil {
			fmt.Println("Reset cancelled")
			return
		}

		if _, err := store.Reset(); err != nil {
			log.Fatalf("Failed to reset settings: %v", err)
		}
		fmt.Println("Settings reset to defaults")
	},
}

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List available themes",
	Run: func(cmd *cobra.Command, args []string) {
		store := loadStore()
		writeThemes(os.Stdout, mustLoadThemes(), store.Get().ThemeID)
	},
}

// loadStore opens the settings file, falling back to the defaults when it
// cannot be read so that edit and reset can repair it.
func loadStore() *config.Store {
	path, err := config.SettingsPath()
	if err != nil {
		log.Fatalf("Failed to get settings path: %v", err)
	}
	store, err := config.OpenStore(path)
	if err != nil {
		log.Printf("Using default settings: %v", err)
		return config.NewStore(path)
	}
	return store
}

func mustLoadThemes() []config.Theme {
	path, err := config.ThemesPath()
	if err != nil {
		log.Fatalf("Failed to get themes path: %v", err)
	}
	themes, err := config.LoadThemes(path)
	if err != nil {
		log.Printf("Using built-in themes: %v", err)
	}
	return themes
}

func writeSettings(w io.Writer, path string, s models.Settings, themes []config.Theme) {
	fmt.Fprintf(w, "Settings file: %s\n\n", path)
	fmt.Fprintf(w, "Theme: %s (%s)\n", config.FindTheme(themes, s.ThemeID).Name, s.ThemeID)
	fmt.Fprintf(w, "Font: %s, %d\n", s.FontFamily, s.FontSize)
	fmt.Fprintf(w, "Start mode: %s\n", s.Mode)
	fmt.Fprintln(w, "Ollama:")
	fmt.Fprintf(w, "  Model: %s\n", s.Ollama.Model)
	fmt.Fprintf(w, "  Temperature: %.1f\n", s.Ollama.Temperature)
	fmt.Fprintf(w, "  Base URL: %s\n", s.Ollama.BaseURL)
}

func writeThemes(w io.Writer, themes []config.Theme, active string) {
	for _, theme := range themes {
		marker := ""
		if theme.ID == active {
			marker = " (active)"
		}
		fmt.Fprintf(w, "  %s%s\n", theme.ID, marker)
		fmt.Fprintf(w, "    Name: %s\n", theme.Name)
		fmt.Fprintf(w, "    Code style: %s\n", theme.Chroma)
	}
}

// promptSettings asks for every field, defaulting to the current value.
func promptSettings(current models.Settings, themes []config.Theme) (models.SettingsPatch, error) {
	var patch models.SettingsPatch

	themeNames := make([]string, len(themes))
	cursor := 0
	for i, theme := range themes {
		themeNames[i] = theme.Name
		if theme.ID == current.ThemeID {
			cursor = i
		}
	}
	themeSelect := promptui.Select{Label: "Theme", Items: themeNames, CursorPos: cursor}
	i, _, err := themeSelect.Run()
	if err != nil {
		return patch, err
	}
	patch.ThemeID = &themes[i].ID

	fontPrompt := promptui.Prompt{Label: "Font family", Default: current.FontFamily, AllowEdit: true}
	font, err := fontPrompt.Run()
	if err != nil {
		return patch, err
	}
	patch.FontFamily = &font

	sizePrompt := promptui.Prompt{
		Label:    fmt.Sprintf("Font size (%d-%d)", models.MinFontSize, models.MaxFontSize),
		Default:  strconv.Itoa(current.FontSize),
		Validate: validateFontSize,
	}
	sizeText, err := sizePrompt.Run()
	if err != nil {
		return patch, err
	}
	size, _ := parseFontSize(sizeText)
	patch.FontSize = &size

	modes := modeNames()
	modeSelect := promptui.Select{Label: "Start mode", Items: modes, CursorPos: int(current.Mode)}
	_, modeName, err := modeSelect.Run()
	if err != nil {
		return patch, err
	}
	mode, err := parseMode(modeName)
	if err != nil {
		return patch, err
	}
	patch.Mode = &mode

	patch.Ollama = &models.OllamaSettingsPatch{}
	modelPrompt := promptui.Prompt{Label: "Ollama model", Default: current.Ollama.Model, AllowEdit: true}
	model, err := modelPrompt.Run()
	if err != nil {
		return patch, err
	}
	patch.Ollama.Model = &model

	tempPrompt := promptui.Prompt{
		Label:    "Temperature (0-2)",
		Default:  strconv.FormatFloat(float64(current.Ollama.Temperature), 'f', 1, 32),
		Validate: validateTemperature,
	}
	tempText, err := tempPrompt.Run()
	if err != nil {
		return patch, err
	}
	temp, _ := parseTemperature(tempText)
	patch.Ollama.Temperature = &temp

	urlPrompt := promptui.Prompt{Label: "Ollama base URL", Default: current.Ollama.BaseURL, AllowEdit: true}
	baseURL, err := urlPrompt.Run()
	if err != nil {
		return patch, err
	}
	patch.Ollama.BaseURL = &baseURL

	return patch, nil
}

var (
	errFontSize    = fmt.Errorf("font size must be a number between %d and %d", models.MinFontSize, models.MaxFontSize)
	errTemperature = errors.New("temperature must be a number between 0 and 2")
)

func parseFontSize(text string) (int, error) {
	size, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || size < models.MinFontSize || size > models.MaxFontSize {
		return 0, errFontSize
	}
	return size, nil
}

func parseTemperature(text string) (float32, error) {
	t, err := strconv.ParseFloat(strings.TrimSpace(text), 32)
	if err != nil || t < models.MinTemperature || t > models.MaxTemperature {
		return 0, errTemperature
	}
	return float32(t), nil
}

func validateFontSize(text string) error {
	_, err := parseFontSize(text)
	return err
}

func validateTemperature(text string) error {
	_, err := parseTemperature(text)
	return err
}

func init() {
	settingsCmd.AddCommand(showSettingsCmd)
	settingsCmd.AddCommand(editSettingsCmd)
	settingsCmd.AddCommand(resetSettingsCmd)
}
