package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"rpschain/internal/config"
)

const version = "v1.0.0"

// NewRootCmd creates the rpsd root command. It is called once in main.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "rpsd",
		Short:         "Wagered rock-paper-scissors ABCI application",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	config.AddFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(
		StartCmd(),
		InitCmd(),
		CommitmentCmd(),
		VersionCmd(),
	)
	return rootCmd
}

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	return config.Load(config.NewViper(), cmd.Flags())
}

func VersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the application version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}
}
