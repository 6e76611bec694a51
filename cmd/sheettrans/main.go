package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"codeberg.org/snonux/sheettrans/internal/cli"
	"codeberg.org/snonux/sheettrans/internal/processor"
)

func main() {
	// Create flags instance
	flags := cli.NewFlags()

	// Create root command
	rootCmd := cli.CreateRootCommand(flags)

	// Set up command initialization
	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
	})

	// Set the run function
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd, args, flags)
	}

	// Ctrl+C cancels the running translation
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Execute command
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func runCommand(cmd *cobra.Command, args []string, flags *cli.Flags) error {
	// Config file and environment fill in what the command line left alone
	cli.ApplyConfig(flags)

	ctx := cmd.Context()
	proc := processor.NewProcessor(flags)

	// Handle --list-models flag
	if flags.ListModels {
		return proc.ListModels(ctx)
	}

	// Handle --list-columns flag
	if flags.ListColumns {
		if len(args) == 0 {
			return fmt.Errorf("--list-columns needs a file")
		}
		return proc.ListColumns(args[0])
	}

	switch {
	case flags.BatchFile != "":
		return proc.ProcessBatch(ctx)
	case len(args) > 0 && !flags.GUIMode:
		if _, err := proc.ProcessFile(ctx, args[0], flags.Sheet); err != nil {
			if errors.Is(err, context.Canceled) {
				fmt.Fprintln(os.Stderr, "Translation cancelled, no file was written")
			}
			return err
		}
	default:
		// No input provided - launch GUI mode by default
		return proc.RunGUIMode()
	}

	fmt.Printf("\nDone!\n")
	return nil
}
