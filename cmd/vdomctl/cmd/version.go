package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-drift/vdom/pkg/loader"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	// Version needs no configuration.
	PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "vdomctl version %s (built %s)\n", Version, BuildTime)
		fmt.Fprintf(cmd.OutOrStdout(), "document format %s.x\n", loader.SupportedMajor)
	},
}

func init() {
	RootCmd.AddCommand(versionCmd)
}
