package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/obelisk-mc/obelisk/internal/server/packet"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "obelisk %s (%s)\n", version, commit)
			fmt.Fprintf(out, "  Minecraft:  %s (protocol %d)\n", packet.VersionName, packet.ProtocolVersion)
			fmt.Fprintf(out, "  Go version: %s\n", runtime.Version())
		},
	}
}
