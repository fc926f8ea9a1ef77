package main

import (
	"os"

	"github.com/AINative-studio/ainative-code/internal/cmd"
	"github.com/AINative-studio/ainative-code/internal/logger"
)

func main() {
	logger.Init()

	if err := cmd.Execute(); err != nil {
		logger.ErrorEvent().Err(err).Msg("command failed")
		os.Exit(1)
	}
}
