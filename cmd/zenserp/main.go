package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	apiKey string
	debug  bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// NewRootCmd собирает дерево команд; вынесено отдельно для тестов.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "zenserp",
		Short:         "Command line client for the Zenserp search API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&opts.apiKey, "api-key", "k", os.Getenv("ZENSERP_API_KEY"), "Zenserp API key")
	rootCmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Log HTTP traffic at debug level")

	rootCmd.AddCommand(newStatusCmd(opts))
	rootCmd.AddCommand(newSearchCmd(opts))
	rootCmd.AddCommand(newHLCmd(opts))
	rootCmd.AddCommand(newGLCmd(opts))
	rootCmd.AddCommand(newLocationsCmd(opts))
	rootCmd.AddCommand(newSearchEnginesCmd(opts))
	rootCmd.AddCommand(newCatalogCmd(opts))
	rootCmd.AddCommand(newHistoryCmd(opts))

	return rootCmd
}
