package main

import (
	"fmt"
	"io"
	"os"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"
)

// logRelPath is the log file location relative to the XDG state home.
const logRelPath = "onedrop/onedrop.log"

var (
	logger  = log.New(io.Discard)
	logFile *os.File
)

// setupLogging points the shared logger at the XDG state file.
// The game owns the terminal, so logs never go to stdout or stderr here.
func setupLogging(level string) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", level, err)
	}

	path, err := xdg.StateFile(logRelPath)
	if err != nil {
		// Logging is optional; keep discarding
		return nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil
	}

	logFile = f
	logger = log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "onedrop",
		Level:           lvl,
	})
	return nil
}

func closeLogging() {
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}
