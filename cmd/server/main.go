package main

import (
	"os"

	"agrow/pkg/logging"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		logging.Log.WithError(err).Error("agrow exited")
		os.Exit(1)
	}
}
