package main

import (
	"os"

	"github.com/dyike/eodhd-cli/internal/cli"
)

func main() {
	// Execute the root command
	os.Exit(cli.Execute())
}
