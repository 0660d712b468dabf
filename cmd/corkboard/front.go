package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var frontCmd = &cobra.Command{
	Use:   "front <id>",
	Short: "Bring a note to the front of the stack",
	Args:  cobra.ExactArgs(1),
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

		if err := board.BringToFront(ctx, note.ID); err != nil {
			fmt.Printf("Error raising note: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(frontCmd)
}
