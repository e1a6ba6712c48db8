package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/tabexport/cmd/tabexport"
	"github.com/arthur-debert/tabexport/pkg/display"
)

func main() {
	rootCmd := tabexport.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		errorStyle := display.GetStyle("Error")
		fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}
