package sysstats

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shirou/gopsutil/v3/process"
)

// Sort keys accepted by TopProcesses.
const (
	SortByCPU    = "cpu"
	SortByMemory = "memory"
	SortByName   = "name"
)

// ProcessInfo represents one running process
type ProcessInfo struct {
	PID        int32   `json:"pid"`
	Name       string  `json:"name"`
	Username   string  `json:"username,omitempty"`
	Status     string  `json:"status,omitempty"`
	CPUPercent float64 `json:"cpu_percent"`
	MemPercent float32 `json:"mem_percent"`
	RSS        uint64  `json:"rss"`
}

// TopProcesses lists running processes ordered by the given key, trimmed to
// limit entries. Processes that disappear mid-scan are skipped. An unknown
// sort key orders by CPU.
func TopProcesses(sortBy string, limit int) ([]ProcessInfo, error) {
	procs, err := process.Processes()
	if err != nil {
		return nil, fmt.Errorf("failed to list processes: %w", err)
	}

	out := make([]ProcessInfo, 0, len(procs))
	for _, p := range procs {
		name, err := p.Name()
		if err != nil {
			continue
		}

		info := ProcessInfo{PID: p.Pid, Name: name}
		if v, err := p.CPUPercent(); err == nil {
			info.CPUPercent = v
		}
		if v, err := p.MemoryPercent(); err == nil {
			info.MemPercent = v
		}
		if memInfo, err := p.MemoryInfo(); err == nil && memInfo != nil {
			info.RSS = memInfo.RSS
		}
		if user, err := p.Username(); err == nil {
			info.Username = user
		}
		if status, err := p.Status(); err == nil && len(status) > 0 {
			info.Status = status[0]
		}
		out = append(out, info)
	}

	switch sortBy {
	case SortByMemory:
		sort.Slice(out, func(i, j int) bool { return out[i].MemPercent > out[j].MemPercent })
	case SortByName:
		sort.Slice(out, func(i, j int) bool {
			return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
		})
	default:
		sort.Slice(out, func(i, j int) bool { return out[i].CPUPercent > out[j].CPUPercent })
	}

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}

	return out, nil
}
