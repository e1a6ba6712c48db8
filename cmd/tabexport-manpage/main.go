package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/tabexport/cmd/tabexport"
	"github.com/arthur-debert/tabexport/internal/version"
)

func main() {
	rootCmd := tabexport.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "TABEXPORT",
		Section: "1",
		Source:  "tabexport " + version.Version,
		Manual:  "tabexport manual",
	}

	if err := doc.GenMan(rootCmd, header, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
