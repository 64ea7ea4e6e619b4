package cmd

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/Rorical/RoriShell/internal/app"
	"github.com/Rorical/RoriShell/internal/dispatcher"
)

var runOpts app.Options

var rootCmd = &cobra.Command{
	Use:   "rorishell",
	Short: "Terminal, file browser and local LLM chat in one screen",
	Long: `RoriShell is a terminal developer shell: run commands, browse and read
files, and talk to a local Ollama model without leaving the terminal.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp()
	},
}

func runApp() error {
	application, err := app.NewApplication(runOpts)
	if err != nil {
		return err
	}
	defer application.Stop()

	return application.Start()
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution error: %v", err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&runOpts.Dir, "dir", "", "starting directory (defaults to the current one)")
	flags.BoolVar(&runOpts.Debug, "debug", false, "write debug records to the log")
	flags.StringVar(&runOpts.LogFile, "log-file", "", "log file (defaults to ~/.rorishell/rorishell.log)")
	flags.DurationVar(&runOpts.Timeouts.Default, "timeout", dispatcher.DefaultTimeout, "limit for host calls")
	flags.DurationVar(&runOpts.Timeouts.Model, "model-timeout", dispatcher.DefaultModelTimeout, "limit for model queries")

	rootCmd.AddCommand(useCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(themesCmd)
}
