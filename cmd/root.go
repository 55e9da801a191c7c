package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "brickyard",
	Short: "Brickyard inventory and production capacity engine CLI",
}

// Execute runs the CLI. Applies commands registered from custom packages first.
func Execute() {
	Apply()
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
