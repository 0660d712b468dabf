package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/corkboard"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of corkboard",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("corkboard version %s\n", strings.TrimSpace(corkboard.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
