package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aretw0/corkboard"
	"github.com/aretw0/corkboard/internal/tui"
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Open the interactive board view",
	Long: `Opens the full-screen board view in the terminal.
Notes are drawn on the canvas and can be dragged by their top edge with the
mouse. The view follows external edits to the snapshot while it is open.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		board, err := openBoard(ctx, corkboard.WithAutoReload(true))
		if err != nil {
			fmt.Printf("Error opening board: %v\n", err)
			os.Exit(1)
		}

		if err := tui.Run(ctx, board, slog.Default()); err != nil {
			fmt.Printf("Error running board view: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(boardCmd)
}
