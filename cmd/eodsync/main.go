package main

import (
	"os"

	"github.com/quantline/eodsync/cmd/eodsync/commands"
)

// main is the entry point for the eodsync CLI
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
