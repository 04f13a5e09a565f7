package main

import (
	"github.com/spf13/cobra"

	"agrow/config"
	"agrow/pkg/logging"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

var cfg config.AppConfig

var rootCmd = &cobra.Command{
	Use:   "agrow",
	Short: "Farming assistant backend: crop, budget and disease advice over HTTP.",
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = config.Load()
		logging.SetFormat(cfg.LogFormat)
		return logging.SetLevel(cfg.LogLevel)
	},
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, catalogCmd)
}
