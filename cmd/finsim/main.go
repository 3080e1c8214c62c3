package main

import (
	"os"

	"github.com/wonny/finsim/backend/cmd/finsim/commands"
)

// main is the entry point for the finsim CLI
// ⭐ unified entry point: go run ./cmd/finsim [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
