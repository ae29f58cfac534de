package main

import (
	"fmt"

	"github.com/sandevgo/scribe/internal/core"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the Scribe version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("%s %s\n", core.ScribeName, core.ScribeVersion)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
