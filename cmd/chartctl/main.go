// Package main is chartctl, a command line front end to the chart engine.
// It computes charts in process with the built-in ephemeris; no server is
// needed.
package main

import (
	"os"

	"github.com/joho/godotenv"
)

// Version is injected via ldflags.
var Version = "dev"

func main() {
	// Same APP_ variables as the service; a missing .env is fine.
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
