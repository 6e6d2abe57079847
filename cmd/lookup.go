package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"toolbelt/internal/netinfo"
)

var (
	lookupInfo      bool
	lookupPing      bool
	lookupPingCount int
	lookupPort      int
)

var lookupCmd = &cobra.Command{
	Use:   "lookup <host>",
	Short: "Resolve a remote host, ping it or probe a TCP port",
	Args:  cobra.ExactArgs(1),
	RunE:  runLookup,
}

func init() {
	rootCmd.AddCommand(lookupCmd)
	lookupCmd.Flags().BoolVar(&lookupInfo, "info", false, "show canonical and reverse names")
	lookupCmd.Flags().BoolVar(&lookupPing, "ping", false, "send ICMP echo requests")
	lookupCmd.Flags().IntVar(&lookupPingCount, "ping-count", 4, "number of echo requests")
	lookupCmd.Flags().IntVar(&lookupPort, "port", 0, "probe a TCP connection to this port")
}

func runLookup(cmd *cobra.Command, args []string) error {
	host := args[0]
	ctx := cmd.Context()

	record, err := netinfo.Resolve(ctx, host)
	if err != nil {
		return err
	}

	fmt.Printf("Host: %s\n", record.Host)
	fmt.Printf("IP:   %s\n", record.IP())

	if lookupInfo {
		if record.CNAME != "" {
			fmt.Printf("CNAME: %s\n", record.CNAME)
		}
		if len(record.Addrs) > 1 {
			fmt.Println("Addresses:")
			for _, addr := range record.Addrs {
				fmt.Printf("  %s\n", addr)
			}
		}
		for _, name := range record.Names {
			fmt.Printf("Reverse: %s\n", name)
		}
	}

	if lookupPort > 0 {
		result := netinfo.CheckConnect(ctx, host, lookupPort)
		if result.OK {
			fmt.Printf("TCP %d: open, %s -> %s in %s\n", lookupPort,
				result.LocalAddr, result.RemoteAddr, result.Elapsed.Round(time.Millisecond))
		} else {
			fmt.Printf("TCP %d: closed\n", lookupPort)
		}
	}

	if lookupPing {
		report, err := netinfo.Ping(ctx, host, lookupPingCount)
		if err != nil {
			return err
		}

		fmt.Printf("\nPing %s (%s): %d sent, %d received, %.0f%% loss\n",
			report.Host, report.Addr, report.Sent, report.Received, report.LossPct)
		fmt.Printf("RTT min/avg/max/stddev = %s/%s/%s/%s\n",
			report.MinRTT.Round(time.Microsecond),
			report.AvgRTT.Round(time.Microsecond),
			report.MaxRTT.Round(time.Microsecond),
			report.StdDevRTT.Round(time.Microsecond))
	}

	return nil
}
