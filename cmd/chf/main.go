package main

import (
	"os"

	"github.com/haritlabs/chf/cmd/chf/commands"
)

// main is the entry point for the CHF CLI
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
