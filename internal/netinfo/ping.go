package netinfo

import (
	"context"
	"fmt"
	"time"

	probing "github.com/prometheus-community/pro-bing"
)

// PingReport summarises an ICMP echo exchange with one host.
type PingReport struct {
	Host      string
	Addr      string
	Sent      int
	Received  int
	LossPct   float64
	MinRTT    time.Duration
	AvgRTT    time.Duration
	MaxRTT    time.Duration
	StdDevRTT time.Duration
}

const (
	defaultPingCount   = 4
	defaultPingTimeout = 10 * time.Second
)

// Ping sends count ICMP echo requests to host and reports the round trip
// statistics. Uses unprivileged UDP pings so no elevated capabilities are
// needed. A count below one falls back to the default of 4.
func Ping(ctx context.Context, host string, count int) (*PingReport, error) {
	if count < 1 {
		count = defaultPingCount
	}

	pinger, err := probing.NewPinger(host)
	if err != nil {
		return nil, fmt.Errorf("could not resolve %q: %w", host, err)
	}
	pinger.Count = count
	pinger.Timeout = defaultPingTimeout
	pinger.SetPrivileged(false)

	if err := pinger.RunWithContext(ctx); err != nil {
		return nil, fmt.Errorf("ping %s failed: %w", host, err)
	}

	stats := pinger.Statistics()
	return &PingReport{
		Host:      host,
		Addr:      stats.Addr,
		Sent:      stats.PacketsSent,
		Received:  stats.PacketsRecv,
		LossPct:   stats.PacketLoss,
		MinRTT:    stats.MinRtt,
		AvgRTT:    stats.AvgRtt,
		MaxRTT:    stats.MaxRtt,
		StdDevRTT: stats.StdDevRtt,
	}, nil
}
