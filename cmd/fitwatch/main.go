// Package main is the entry point for the fitwatch CLI.
package main

import (
	// Load FITWATCH_* overrides from a .env file in the working directory.
	_ "github.com/joho/godotenv/autoload"

	"github.com/blackwell-systems/fitwatch/internal/app"
)

// version is set at build time via ldflags:
//
//	go build -ldflags "-X main.version=1.0.0"
var version = "dev"

func main() {
	app.SetVersion(version)
	app.Execute()
}
