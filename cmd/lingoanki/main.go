package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"codeberg.org/snonux/lingoanki/internal/cli"
	"codeberg.org/snonux/lingoanki/internal/processor"
)

func main() {
	// Create flags instance
	flags := cli.NewFlags()

	// Create root command; the processor is built per command once the
	// configuration is loaded
	rootCmd := cli.CreateRootCommand(flags, func() (cli.Runner, error) {
		return processor.NewProcessor(flags)
	})

	// Set up command initialization
	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile, flags.EnvFile)
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Execute command
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
