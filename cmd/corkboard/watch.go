package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/aretw0/corkboard"
)

var watchPattern string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Stream board changes to stdout",
	Long: `Subscribes to board events and prints one line per change until
interrupted. The --pattern flag filters events by note ID glob; clear
events are always delivered.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		board, err := openBoard(ctx, corkboard.WithAutoReload(true))
		if err != nil {
			fmt.Printf("Error opening board: %v\n", err)
			os.Exit(1)
		}

		events, err := board.Watch(ctx, watchPattern)
		if err != nil {
			fmt.Printf("Error subscribing: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Watching %s (pattern %q). Press Ctrl+C to stop.\n", boardPath, watchPattern)
		for {
			select {
			case <-ctx.Done():
				return
			case e, ok := <-events:
				if !ok {
					return
				}
				fmt.Printf("%s %s\n", time.Unix(e.Timestamp, 0).Format("15:04:05"), e)
			}
		}
	},
}

func init() {
	watchCmd.Flags().StringVarP(&watchPattern, "pattern", "p", "*", "Note ID glob to filter events")
	rootCmd.AddCommand(watchCmd)
}
