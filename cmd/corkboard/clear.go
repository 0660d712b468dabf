package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var clearYes bool

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Wipe the whole board and erase its record",
	Long: `Removes every note and erases the persisted record entirely.
Unlike deleting each note (which leaves an empty snapshot behind), clear
makes the record absent, as if the board never existed.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		board, err := openBoard(ctx)
		if err != nil {
			fmt.Printf("Error opening board: %v\n", err)
			os.Exit(1)
		}

		if !clearYes {
			fmt.Printf("Wipe %d note(s) and erase the board? This cannot be undone. [y/N] ", board.Len())
			answer, _ := bufio.NewReader(os.Stdin).ReadString('\n')
			if strings.ToLower(strings.TrimSpace(answer)) != "y" {
				fmt.Println("Aborted.")
				return
			}
		}

		if err := board.ClearAll(ctx); err != nil {
			fmt.Printf("Error clearing board: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Board cleared.")
	},
}

func init() {
	clearCmd.Flags().BoolVarP(&clearYes, "yes", "y", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(clearCmd)
}
