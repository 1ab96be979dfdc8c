package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pthm-cable/ocean/config"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ocean",
		Short: "Crab and reef hunting simulation",
		Long: `ocean simulates crabs that live on beaches and hunt prey on shared reefs.

Each tick every crab hunts once. Crabs that keep failing starve, beaches
breed new crabs, and reefs are restocked on a fixed schedule. Window
statistics can be logged and written as CSV.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		newRunCmd(),
		newDefaultsCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newDefaultsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "defaults",
		Short: "Print the embedded default configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := cmd.OutOrStdout().Write(config.Defaults())
			return err
		},
	}
}
