package main

import (
	"log/slog"
	"os"

	"github.com/dasdy/flaykeys/cmd/flaykeys"
	"github.com/dasdy/flaykeys/logging"
)

func main() {
	// Replaced once flags are parsed, see flaykeys.setupLogging.
	slog.SetDefault(slog.New(logging.NewHandler(logging.StyleSlogor, slog.LevelInfo, os.Stderr)))

	flaykeys.Execute()
}
