package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Rorical/RoriShell/internal/models"
)

var useCmd = &cobra.Command{
	Use:       "use <mode>",
	Short:     "Switch the start mode and run the shell",
	Long:      `Persist the mode (terminal, ide, chat or agent) and immediately start the shell in it.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: modeNames(),
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, err := parseMode(args[0])
		if err != nil {
			return err
		}

		if _, err := loadStore().Update(models.SettingsPatch{Mode: &mode}); err != nil {
			return err
		}

		return runApp()
	},
}

func modeNames() []string {
	names := make([]string, 0, len(models.AllModes()))
	for _, mode := range models.AllModes() {
		names = append(names, mode.String())
	}
	return names
}

// parseMode accepts only the exact mode names.
func parseMode(name string) (models.Mode, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for _, mode := range models.AllModes() {
		if mode.String() == normalized {
			return mode, nil
		}
	}
	return models.Terminal, fmt.Errorf("unknown mode %q (expected one of: %s)", name, strings.Join(modeNames(), ", "))
}
