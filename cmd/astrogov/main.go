package main

import (
	"os"

	"github.com/rs/zerolog"
)

func main() {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		logger := zerolog.New(os.Stderr)
		logger.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}
