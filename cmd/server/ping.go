package main

import (
	"context"
	"fmt"
	"io"
	"net"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/obelisk-mc/obelisk/internal/server/ping"
)

const defaultPort = 25565

func pingCmd() *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "ping <host[:port]>",
		Short: "Query a server's status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			res, err := ping.Ping(ctx, withDefaultPort(args[0]))
			if err != nil {
				return err
			}
			printStatus(cmd.OutOrStdout(), res)
			return nil
		},
	}

	cmd.Flags().DurationVarP(&timeout, "timeout", "t", 5*time.Second, "query timeout")
	return cmd
}

func withDefaultPort(addr string) string {
	if _, _, err := net.SplitHostPort(addr); err == nil {
		return addr
	}
	return net.JoinHostPort(addr, strconv.Itoa(defaultPort))
}

func printStatus(w io.Writer, res *ping.Result) {
	st := res.Status
	fmt.Fprintf(w, "%s\n", st.Description.Text)
	fmt.Fprintf(w, "version %s (protocol %d), %d/%d players, %s\n",
		st.Version.Name, st.Version.Protocol, st.Players.Online, st.Players.Max,
		res.Latency.Round(time.Millisecond))

	if len(st.Players.Sample) == 0 {
		return
	}
	tw := tablewriter.NewWriter(w)
	tw.SetHeader([]string{"Name", "UUID"})
	tw.SetBorder(true)
	tw.SetAutoWrapText(false)
	for _, p := range st.Players.Sample {
		tw.Append([]string{p.Name, p.ID})
	}
	tw.Render()
}
