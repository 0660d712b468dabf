package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add [text...]",
	Short: "Create a new note, optionally with initial text",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		board, err := openBoard(ctx)
		if err != nil {
			fmt.Printf("Error opening board: %v\n", err)
			os.Exit(1)
		}

		note := board.CreateNote(ctx)
		if len(args) > 0 {
			if err := board.UpdateContent(ctx, note.ID, strings.Join(args, " ")); err != nil {
				fmt.Printf("Error setting text: %v\n", err)
				os.Exit(1)
			}
		}

		fmt.Printf("%s (%s at %.0f,%.0f)\n", note.ID, note.Color, note.X, note.Y)
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
}
