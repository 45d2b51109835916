package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/nestbox/cmd/nestbox"
	"github.com/arthur-debert/nestbox/internal/version"
)

func main() {
	rootCmd := nestbox.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "NESTBOX",
		Section: "1",
		Source:  "nestbox " + version.Version,
		Manual:  "nestbox manual",
	}

	err := doc.GenMan(rootCmd, header, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
