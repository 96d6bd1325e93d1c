package main

import (
	"fmt"
	"os"

	"github.com/agiangrant/win32api/cmd/win32api/commands"
)

const version = "0.1.0"

func main() {
	if err := commands.NewRootCommand(version).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
