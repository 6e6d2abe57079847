package sysstats

import (
	"fmt"
	"os"
	"runtime"
	"sort"
	"syscall"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
	gnet "github.com/shirou/gopsutil/v3/net"
)

// Stats represents a point-in-time snapshot of system statistics
type Stats struct {
	CPU       CPUStats      `json:"cpu"`
	Memory    MemoryStats   `json:"memory"`
	Swap      SwapStats     `json:"swap"`
	Disks     []DiskStats   `json:"disks"`
	DiskIO    []DiskIOStats `json:"disk_io,omitempty"`
	Network   NetworkStats  `json:"network"`
	Host      HostInfo      `json:"host"`
	Timestamp time.Time     `json:"timestamp"`
}

// CPUStats represents CPU statistics
type CPUStats struct {
	UsagePercent float64   `json:"usage_percent"`
	PerCore      []float64 `json:"per_core,omitempty"`
	Cores        int       `json:"cores"`
	FrequencyMHz float64   `json:"frequency_mhz,omitempty"`
}

// MemoryStats represents memory statistics
type MemoryStats struct {
	Total       uint64  `json:"total"`
	Used        uint64  `json:"used"`
	Free        uint64  `json:"free"`
	UsedPercent float64 `json:"used_percent"`
}

// SwapStats represents swap usage
type SwapStats struct {
	Total       uint64  `json:"total"`
	Used        uint64  `json:"used"`
	UsedPercent float64 `json:"used_percent"`
}

// DiskStats represents disk usage for one mounted filesystem
type DiskStats struct {
	Path        string  `json:"path"`
	Device      string  `json:"device,omitempty"`
	Fstype      string  `json:"fstype,omitempty"`
	Total       uint64  `json:"total"`
	Used        uint64  `json:"used"`
	Free        uint64  `json:"free"`
	UsedPercent float64 `json:"used_percent"`
}

// DiskIOStats represents cumulative IO counters for one device
type DiskIOStats struct {
	Device     string `json:"device"`
	ReadBytes  uint64 `json:"read_bytes"`
	WriteBytes uint64 `json:"write_bytes"`
	ReadCount  uint64 `json:"read_count"`
	WriteCount uint64 `json:"write_count"`
}

// NetworkStats represents cumulative traffic counters across all interfaces
type NetworkStats struct {
	BytesSent   uint64 `json:"bytes_sent"`
	BytesRecv   uint64 `json:"bytes_recv"`
	PacketsSent uint64 `json:"packets_sent"`
	PacketsRecv uint64 `json:"packets_recv"`
}

// HostInfo represents host system information
type HostInfo struct {
	Hostname        string    `json:"hostname"`
	OS              string    `json:"os"`
	Platform        string    `json:"platform"`
	PlatformVersion string    `json:"platform_version"`
	Architecture    string    `json:"architecture"`
	BootTime        time.Time `json:"boot_time,omitempty"`
	Uptime          string    `json:"uptime,omitempty"`
}

// GetStats retrieves current system statistics. Metric sources that fail are
// left at their zero value rather than aborting the whole snapshot.
func GetStats(paths []string) (*Stats, error) {
	stats := &Stats{
		Timestamp: time.Now(),
	}

	// Get host information
	hostInfo, err := host.Info()
	if err == nil {
		stats.Host = HostInfo{
			Hostname:        hostInfo.Hostname,
			OS:              hostInfo.OS,
			Platform:        hostInfo.Platform,
			PlatformVersion: hostInfo.PlatformVersion,
			Architecture:    hostInfo.KernelArch,
			BootTime:        time.Unix(int64(hostInfo.BootTime), 0),
			Uptime:          formatUptime(time.Duration(hostInfo.Uptime) * time.Second),
		}
	} else {
		// Fallback to runtime info if host.Info fails
		stats.Host = HostInfo{
			OS:           runtime.GOOS,
			Architecture: runtime.GOARCH,
		}
	}

	// Get CPU stats
	cpuPercent, err := cpu.Percent(time.Second, false)
	if err == nil && len(cpuPercent) > 0 {
		stats.CPU.UsagePercent = cpuPercent[0]
	}
	if perCore, err := cpu.Percent(0, true); err == nil {
		stats.CPU.PerCore = perCore
	}
	if info, err := cpu.Info(); err == nil && len(info) > 0 {
		stats.CPU.FrequencyMHz = info[0].Mhz
	}
	stats.CPU.Cores = runtime.NumCPU()

	// Get memory stats
	vmStat, err := mem.VirtualMemory()
	if err == nil {
		stats.Memory.Total = vmStat.Total
		stats.Memory.Used = vmStat.Used
		stats.Memory.Free = vmStat.Available
		stats.Memory.UsedPercent = vmStat.UsedPercent
	}
	if swapStat, err := mem.SwapMemory(); err == nil {
		stats.Swap.Total = swapStat.Total
		stats.Swap.Used = swapStat.Used
		stats.Swap.UsedPercent = swapStat.UsedPercent
	}

	// Get disk stats for physical partitions first, then any extra paths
	seen := map[string]bool{}
	if parts, err := disk.Partitions(false); err == nil {
		for _, part := range parts {
			if seen[part.Mountpoint] {
				continue
			}
			diskStat, err := getDiskStats(part.Mountpoint)
			if err != nil {
				continue
			}
			diskStat.Device = part.Device
			diskStat.Fstype = part.Fstype
			stats.Disks = append(stats.Disks, diskStat)
			seen[part.Mountpoint] = true
		}
	}
	for _, path := range paths {
		if seen[path] {
			continue
		}
		diskStat, err := getDiskStats(path)
		if err != nil {
			diskStat, err = getDiskStatsManual(path)
		}
		if err == nil {
			stats.Disks = append(stats.Disks, diskStat)
			seen[path] = true
		}
	}

	// Get cumulative IO counters per device
	if counters, err := disk.IOCounters(); err == nil {
		devices := make([]string, 0, len(counters))
		for name := range counters {
			devices = append(devices, name)
		}
		sort.Strings(devices)
		for _, name := range devices {
			c := counters[name]
			stats.DiskIO = append(stats.DiskIO, DiskIOStats{
				Device:     name,
				ReadBytes:  c.ReadBytes,
				WriteBytes: c.WriteBytes,
				ReadCount:  c.ReadCount,
				WriteCount: c.WriteCount,
			})
		}
	}

	// Get aggregate network traffic counters
	if counters, err := gnet.IOCounters(false); err == nil && len(counters) > 0 {
		stats.Network = NetworkStats{
			BytesSent:   counters[0].BytesSent,
			BytesRecv:   counters[0].BytesRecv,
			PacketsSent: counters[0].PacketsSent,
			PacketsRecv: counters[0].PacketsRecv,
		}
	}

	return stats, nil
}

// getDiskStats gets disk usage for a specific path
func getDiskStats(path string) (DiskStats, error) {
	usage, err := disk.Usage(path)
	if err != nil {
		return DiskStats{}, err
	}

	return DiskStats{
		Path:        path,
		Total:       usage.Total,
		Used:        usage.Used,
		Free:        usage.Free,
		UsedPercent: usage.UsedPercent,
	}, nil
}

// getDiskStatsManual is a fallback method using syscall
func getDiskStatsManual(path string) (DiskStats, error) {
	var stat syscall.Statfs_t
	err := syscall.Statfs(path, &stat)
	if err != nil {
		return DiskStats{}, err
	}

	total := stat.Blocks * uint64(stat.Bsize)
	free := stat.Bfree * uint64(stat.Bsize)
	used := total - free
	usedPercent := 0.0
	if total > 0 {
		usedPercent = float64(used) / float64(total) * 100
	}

	return DiskStats{
		Path:        path,
		Total:       total,
		Used:        used,
		Free:        free,
		UsedPercent: usedPercent,
	}, nil
}

// formatUptime formats duration into human-readable uptime
func formatUptime(d time.Duration) string {
	days := int(d.Hours() / 24)
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	if days > 0 {
		return fmt.Sprintf("%dd %dh %dm %ds", days, hours, minutes, seconds)
	} else if hours > 0 {
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
	} else if minutes > 0 {
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	}
	return fmt.Sprintf("%ds", seconds)
}

// FormatBytes formats bytes into human-readable format
func FormatBytes(bytes uint64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := uint64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

// GetMonitoredPaths returns paths to monitor based on configuration
func GetMonitoredPaths(dataDir string) []string {
	paths := []string{"/"}

	// Add data directory if it's on a different mount
	if dataDir != "" {
		if _, err := os.Stat(dataDir); err == nil {
			paths = append(paths, dataDir)
		}
	}

	return paths
}
