package cmd

import (
	"github.com/spf13/cobra"

	"fieldgen/pkg/game/renderer"
)

// Version is set at build time with -ldflags "-X fieldgen/cmd.Version=..."
var Version = "dev"

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the fieldgen version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			renderer.PrintLine("VERSION", Version)
		},
	})
}
