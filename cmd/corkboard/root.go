package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/corkboard"
	"github.com/aretw0/corkboard/pkg/core"
)

var (
	verbose   bool
	boardPath string
	adapter   string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "corkboard",
	Short: "A sticky-note board that lives in a single file",
	Long: `Corkboard keeps freeform sticky notes on an infinite canvas.
Notes persist to a single snapshot file (or an SQLite database) and can be
created, moved, recolored, edited and deleted from the command line or from
the interactive board view.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&boardPath, "board", "b", "board.json", "Board snapshot file (or database for --adapter sqlite)")
	rootCmd.PersistentFlags().StringVar(&adapter, "adapter", "fs", "Storage adapter (fs or sqlite)")
}

// openBoard wires the configured adapter and loads the board.
func openBoard(ctx context.Context, opts ...corkboard.Option) (*core.Board, error) {
	opts = append([]corkboard.Option{
		corkboard.WithAdapter(adapter),
		corkboard.WithLogger(slog.Default()),
	}, opts...)
	return corkboard.New(ctx, boardPath, opts...)
}

// resolveNote accepts a full note ID or any unique prefix of one.
func resolveNote(board *core.Board, arg string) (core.Note, error) {
	if n, ok := board.Get(arg); ok {
		return n, nil
	}

	var matches []core.Note
	for _, n := range board.Snapshot() {
		if strings.HasPrefix(n.ID, arg) {
			matches = append(matches, n)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return core.Note{}, fmt.Errorf("no note matches %q", arg)
	default:
		return core.Note{}, fmt.Errorf("%q is ambiguous (%d matches)", arg, len(matches))
	}
}
