package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

var moveCmd = &cobra.Command{
	Use:   "move <id> <x> <y>",
	Short: "Move a note to an absolute canvas position",
	Args:  cobra.ExactArgs(3),
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
		x, errX := strconv.ParseFloat(args[1], 64)
		y, errY := strconv.ParseFloat(args[2], 64)
		if errX != nil || errY != nil {
			fmt.Printf("Invalid coordinates: %s %s\n", args[1], args[2])
			os.Exit(1)
		}

		if err := board.MoveNote(ctx, note.ID, x, y); err != nil {
			fmt.Printf("Error moving note: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("%s -> (%.0f,%.0f)\n", note.ID, x, y)
	},
}

func init() {
	rootCmd.AddCommand(moveCmd)
}
