// Package main is the entry point for the scp-mcp CLI.
package main

import (
	"os"

	"github.com/Laurian/scp-mcp/cmd/scp-mcp/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
