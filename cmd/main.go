package main

import (
	"log/slog"
	"os"

	"github.com/dasdy/vkbd/cmd/vkbd"
	"github.com/dasdy/vkbd/logging"
)

func main() {
	// replaced once flags are parsed and --verbose is known
	slog.SetDefault(logging.NewLogger(os.Stderr, false))

	vkbd.Execute()
}
