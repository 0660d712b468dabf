package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/corkboard"
	"github.com/aretw0/corkboard/pkg/core"
)

var colorCmd = &cobra.Command{
	Use:   "color <id> <color>",
	Short: "Recolor a note with a palette color",
	Long:  "Recolor a note. Valid colors: " + paletteNames() + ".",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		board, err := openBoard(ctx)
		if err != nil {
			fmt.Printf("Error opening board: %v\n", err)
			os.Exit(1)
		}

		note, err := resolveNote(board, args[0])
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		if err := board.UpdateColor(ctx, note.ID, core.Color(args[1])); err != nil {
			fmt.Printf("Error recoloring note: %v (valid: %s)\n", err, paletteNames())
			os.Exit(1)
		}
	},
}

func paletteNames() string {
	out := ""
	for i, c := range corkboard.Palette() {
		if i > 0 {
			out += ", "
		}
		out += string(c)
	}
	return out
}

func init() {
	rootCmd.AddCommand(colorCmd)
}
