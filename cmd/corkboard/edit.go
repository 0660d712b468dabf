package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit <id> <text...>",
	Short: "Replace a note's text",
	Args:  cobra.MinimumNArgs(2),
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

		if err := board.UpdateContent(ctx, note.ID, strings.Join(args[1:], " ")); err != nil {
			fmt.Printf("Error editing note: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
}
