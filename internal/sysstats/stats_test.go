package sysstats

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetStats(t *testing.T) {
	stats, err := GetStats([]string{"/"})
	require.NoError(t, err)

	assert.Greater(t, stats.CPU.Cores, 0)
	assert.Greater(t, stats.Memory.Total, uint64(0))
	assert.NotEmpty(t, stats.Disks)
	assert.NotEmpty(t, stats.Host.OS)
	assert.WithinDuration(t, time.Now(), stats.Timestamp, 10*time.Second)
}

func TestGetStatsExtraPath(t *testing.T) {
	dir := t.TempDir()

	stats, err := GetStats([]string{dir})
	require.NoError(t, err)

	var found bool
	for _, d := range stats.Disks {
		if d.Path == dir {
			found = true
			assert.Greater(t, d.Total, uint64(0))
		}
	}
	assert.True(t, found, "expected disk stats for %s", dir)
}

func TestFormatUptime(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{5 * time.Second, "5s"},
		{65 * time.Second, "1m 5s"},
		{3*time.Hour + 2*time.Minute + 3*time.Second, "3h 2m 3s"},
		{49*time.Hour + 30*time.Second, "2d 1h 0m 30s"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, formatUptime(tt.d))
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		bytes uint64
		want  string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{1048576, "1.0 MiB"},
		{5 << 30, "5.0 GiB"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatBytes(tt.bytes))
	}
}

func TestGetMonitoredPaths(t *testing.T) {
	assert.Equal(t, []string{"/"}, GetMonitoredPaths(""))
	assert.Equal(t, []string{"/"}, GetMonitoredPaths("/definitely/not/a/real/dir"))

	dir := t.TempDir()
	assert.Equal(t, []string{"/", dir}, GetMonitoredPaths(dir))
}

func TestTopProcesses(t *testing.T) {
	procs, err := TopProcesses(SortByCPU, 5)
	require.NoError(t, err)
	require.NotEmpty(t, procs)
	assert.LessOrEqual(t, len(procs), 5)

	for i := 1; i < len(procs); i++ {
		assert.GreaterOrEqual(t, procs[i-1].CPUPercent, procs[i].CPUPercent)
	}
}

func TestTopProcessesSortByMemory(t *testing.T) {
	procs, err := TopProcesses(SortByMemory, 10)
	require.NoError(t, err)
	require.NotEmpty(t, procs)

	for i := 1; i < len(procs); i++ {
		assert.GreaterOrEqual(t, procs[i-1].MemPercent, procs[i].MemPercent)
	}
}

func TestTopProcessesSortByName(t *testing.T) {
	procs, err := TopProcesses(SortByName, 0)
	require.NoError(t, err)
	require.NotEmpty(t, procs)

	for i := 1; i < len(procs); i++ {
		assert.LessOrEqual(t, strings.ToLower(procs[i-1].Name), strings.ToLower(procs[i].Name))
	}
}
