package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"toolbelt/internal/sysstats"
)

var (
	monitorContinuous bool
	monitorInterval   int
	monitorDuration   int
	monitorOutput     string
)

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Show system resource usage",
	Long: `Show a snapshot of CPU, memory, disk, network and process usage.
With --continuous the report redraws every interval until the duration
elapses or the command is interrupted.`,
	RunE: runMonitor,
}

func init() {
	rootCmd.AddCommand(monitorCmd)
	monitorCmd.Flags().BoolVarP(&monitorContinuous, "continuous", "c", false, "redraw continuously")
	monitorCmd.Flags().IntVarP(&monitorInterval, "interval", "i", 2, "seconds between redraws")
	monitorCmd.Flags().IntVar(&monitorDuration, "duration", 0, "stop after this many seconds (0 runs until interrupted)")
	monitorCmd.Flags().StringVar(&monitorOutput, "output", "", "write the snapshot as JSON to this file")
}

// monitoredPaths returns the extra mount points to report on, from config or
// the defaults.
func monitoredPaths() []string {
	if paths := viper.GetStringSlice("monitor.paths"); len(paths) > 0 {
		return paths
	}
	return sysstats.GetMonitoredPaths(viper.GetString("data_dir"))
}

func runMonitor(cmd *cobra.Command, args []string) error {
	if monitorContinuous {
		return monitorLoop(cmd.Context())
	}

	stats, err := sysstats.GetStats(monitoredPaths())
	if err != nil {
		return err
	}

	if monitorOutput != "" {
		return writeSnapshot(stats, monitorOutput)
	}

	printReport(stats)

	if procs, err := sysstats.TopProcesses(sysstats.SortByMemory, 5); err == nil {
		fmt.Println("\nTop processes by memory:")
		printProcessTable(procs)
	}
	return nil
}

func monitorLoop(ctx context.Context) error {
	interval := time.Duration(monitorInterval) * time.Second
	if interval < time.Second {
		interval = time.Second
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if monitorDuration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(monitorDuration)*time.Second)
		defer cancel()
	}

	for {
		stats, err := sysstats.GetStats(monitoredPaths())
		if err != nil {
			return err
		}

		// ANSI clear screen, cursor home.
		fmt.Print("\033[2J\033[H")
		printReport(stats)
		if procs, err := sysstats.TopProcesses(sysstats.SortByCPU, 10); err == nil {
			fmt.Println("\nTop processes by CPU:")
			printProcessTable(procs)
		}
		fmt.Println("\nPress Ctrl+C to stop")

		select {
		case <-ctx.Done():
			fmt.Println()
			return nil
		case <-time.After(interval):
		}
	}
}

func writeSnapshot(stats *sysstats.Stats, path string) error {
	data, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	fmt.Printf("Snapshot written to %s\n", path)
	return nil
}

func printReport(stats *sysstats.Stats) {
	host := stats.Host
	fmt.Printf("%s  %s %s (%s)",
		stats.Timestamp.Format("2006-01-02 15:04:05"), host.Platform, host.PlatformVersion, host.Architecture)
	if host.Uptime != "" {
		fmt.Printf("  up %s", host.Uptime)
	}
	fmt.Println()
	fmt.Println(strings.Repeat("=", 64))

	fmt.Printf("CPU  %s  %d cores", gauge(stats.CPU.UsagePercent), stats.CPU.Cores)
	if stats.CPU.FrequencyMHz > 0 {
		fmt.Printf(" @ %.0f MHz", stats.CPU.FrequencyMHz)
	}
	fmt.Println()

	fmt.Printf("MEM  %s  %s / %s\n", gauge(stats.Memory.UsedPercent),
		sysstats.FormatBytes(stats.Memory.Used), sysstats.FormatBytes(stats.Memory.Total))
	if stats.Swap.Total > 0 {
		fmt.Printf("SWAP %s  %s / %s\n", gauge(stats.Swap.UsedPercent),
			sysstats.FormatBytes(stats.Swap.Used), sysstats.FormatBytes(stats.Swap.Total))
	}

	if len(stats.Disks) > 0 {
		fmt.Println("\nDisks:")
		for _, d := range stats.Disks {
			fmt.Printf("  %-20s %s  %s free\n", d.Path, gauge(d.UsedPercent), sysstats.FormatBytes(d.Free))
		}
	}

	fmt.Printf("\nNetwork: %s sent, %s received\n",
		sysstats.FormatBytes(stats.Network.BytesSent), sysstats.FormatBytes(stats.Network.BytesRecv))
}

// gauge renders a fixed-width usage bar like "[████░░░░]  42.0%".
func gauge(percent float64) string {
	const width = 30

	filled := int(percent / 100 * width)
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	return fmt.Sprintf("[%s%s] %5.1f%%",
		strings.Repeat("█", filled), strings.Repeat("░", width-filled), percent)
}

func printProcessTable(procs []sysstats.ProcessInfo) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"PID", "Name", "User", "CPU %", "Mem %", "RSS"})
	for _, p := range procs {
		table.Append([]string{
			strconv.Itoa(int(p.PID)),
			p.Name,
			p.Username,
			fmt.Sprintf("%.1f", p.CPUPercent),
			fmt.Sprintf("%.1f", p.MemPercent),
			sysstats.FormatBytes(p.RSS),
		})
	}
	table.Render()
}
