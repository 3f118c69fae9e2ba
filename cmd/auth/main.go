package main

import (
	"os"

	"github.com/aussiebroadwan/arcade/internal/auth/app"
)

// Set at build time via -ldflags.
var version = "dev"

func main() {
	if version != "dev" {
		app.BuildVersion = version
	}

	cmd := NewRootCmd()
	cmd.Version = app.BuildVersion

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
