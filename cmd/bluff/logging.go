package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
)

// setupFileLogger opens the debug log. The terminal belongs to the game,
// so everything is logged to a file instead.
func setupFileLogger(path string, level log.Level) (*log.Logger, func(), error) {
	debugFile, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o666)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create debug log: %w", err)
	}

	logger := log.NewWithOptions(debugFile, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Prefix:          "MAIN",
		Level:           level,
	})

	closer := func() {
		if err := debugFile.Close(); err != nil {
			log.Error("Failed to close debug file", "error", err)
		}
	}
	return logger, closer, nil
}

// setupConsoleLogger logs to stderr, for commands that do not own the terminal
func setupConsoleLogger(level log.Level) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Level:           level,
	})
}
