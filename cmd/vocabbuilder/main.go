package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"codeberg.org/snonux/vocabbuilder/internal/cli"
	"codeberg.org/snonux/vocabbuilder/internal/models"
	"codeberg.org/snonux/vocabbuilder/internal/processor"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

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
		return runCommand(cmd.Context(), flags)
	}

	// Execute command
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runCommand(ctx context.Context, flags *cli.Flags) error {
	flags.LoadFromViper()
	if err := flags.Validate(); err != nil {
		return err
	}

	logger, err := cli.NewLogger(flags.LogLevel, flags.LogFormat)
	if err != nil {
		return err
	}

	// Handle --list-models flag
	if flags.ListModels {
		lister := models.NewLister(cli.GetOpenAIKey())
		return lister.ListAvailableModels(ctx, os.Stdout)
	}

	proc, err := processor.NewProcessor(ctx, flags, logger)
	if err != nil {
		return err
	}

	summary, err := proc.Run(ctx)
	if err != nil {
		return err
	}

	if summary.OutputPath != "" {
		fmt.Printf("\nDone! Import %s into Anki via File > Import.\n", summary.OutputPath)
	}
	return nil
}
