package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"toolbelt/internal/netinfo"
)

var (
	ipNoExternal bool
	ipDetails    bool
)

var ipCmd = &cobra.Command{
	Use:   "ip",
	Short: "Show local and external IP addresses",
	RunE:  runIP,
}

func init() {
	rootCmd.AddCommand(ipCmd)
	ipCmd.Flags().BoolVar(&ipNoExternal, "no-external", false, "skip the external IP lookup")
	ipCmd.Flags().BoolVar(&ipDetails, "details", false, "list every network interface")
}

func runIP(cmd *cobra.Command, args []string) error {
	fmt.Printf("Hostname:    %s\n", netinfo.Hostname())
	fmt.Printf("Local IP:    %s\n", netinfo.OutboundIP())

	if !ipNoExternal {
		external, err := netinfo.ExternalIP(cmd.Context())
		if err != nil {
			log.Warn().Err(err).Msg("could not determine external IP")
		} else {
			fmt.Printf("External IP: %s\n", external)
		}
	}

	if ipDetails {
		interfaces, err := netinfo.Interfaces()
		if err != nil {
			return err
		}

		fmt.Println("\nInterfaces:")
		for _, iface := range interfaces {
			fmt.Printf("  %s\n", iface.Name)
			if iface.MAC != "" {
				fmt.Printf("    MAC:  %s\n", iface.MAC)
			}
			for _, addr := range iface.Addrs {
				fmt.Printf("    Addr: %s\n", addr)
			}
		}
	}

	return nil
}
