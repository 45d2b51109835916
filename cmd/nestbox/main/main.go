package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/nestbox/cmd/nestbox"
	"github.com/fatih/color"
)

func main() {
	rootCmd := nestbox.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		// Print the error in red
		fmt.Fprintln(os.Stderr, color.RedString("Error: %v", err))
		os.Exit(nestbox.ExitCode(err))
	}
}
