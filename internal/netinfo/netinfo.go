// Package netinfo reports local, external and remote host information.
package netinfo

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	gnet "github.com/shirou/gopsutil/v3/net"
)

// externalIPURL is the service queried for the public address. Package
// variable so tests can point it at a local server.
var externalIPURL = "https://api.ipify.org"

const externalIPTimeout = 5 * time.Second

// Hostname returns the local machine's hostname, or "unknown" when the
// operating system cannot provide one.
func Hostname() string {
	name, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return name
}

// OutboundIP returns the local address the machine would use to reach the
// internet. It opens a UDP socket towards a public resolver and reads the
// chosen local endpoint; no packet is sent. Falls back to resolving the
// hostname, then to the loopback address.
func OutboundIP() string {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err == nil {
		defer conn.Close()
		localAddr := conn.LocalAddr().(*net.UDPAddr)
		return localAddr.IP.String()
	}

	if addrs, err := net.LookupHost(Hostname()); err == nil && len(addrs) > 0 {
		return addrs[0]
	}

	return "127.0.0.1"
}

// ExternalIP queries a public echo service for the machine's external
// (public) address.
func ExternalIP(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, externalIPTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, externalIPURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to query external IP service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("external IP service returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64))
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	value := strings.TrimSpace(string(body))
	if net.ParseIP(value) == nil {
		return "", fmt.Errorf("external IP service returned %q, not an address", value)
	}

	return value, nil
}

// Interface describes one network interface.
type Interface struct {
	Name  string
	MAC   string
	Addrs []string
}

// Interfaces lists the machine's network interfaces with their hardware and
// protocol addresses.
func Interfaces() ([]Interface, error) {
	stats, err := gnet.Interfaces()
	if err != nil {
		return nil, fmt.Errorf("failed to list network interfaces: %w", err)
	}

	out := make([]Interface, 0, len(stats))
	for _, st := range stats {
		addrs := make([]string, 0, len(st.Addrs))
		for _, a := range st.Addrs {
			addrs = append(addrs, a.Addr)
		}
		out = append(out, Interface{Name: st.Name, MAC: st.HardwareAddr, Addrs: addrs})
	}

	return out, nil
}

// HostRecord holds the DNS view of a remote host.
type HostRecord struct {
	Host  string
	CNAME string
	Addrs []string // all A/AAAA records
	Names []string // reverse names of the first address
}

// IP returns the primary resolved address.
func (r *HostRecord) IP() string {
	if len(r.Addrs) == 0 {
		return ""
	}
	return r.Addrs[0]
}

// Resolve looks up every address of host plus its canonical name and, when
// possible, the reverse names of the first address.
func Resolve(ctx context.Context, host string) (*HostRecord, error) {
	record := &HostRecord{Host: host}

	addrs, err := net.DefaultResolver.LookupHost(ctx, host)
	if err != nil {
		return nil, fmt.Errorf("could not resolve %q: %w", host, err)
	}
	record.Addrs = addrs

	// Canonical and reverse names are best effort.
	if cname, err := net.DefaultResolver.LookupCNAME(ctx, host); err == nil {
		cname = strings.TrimSuffix(cname, ".")
		if cname != host {
			record.CNAME = cname
		}
	}
	if len(addrs) > 0 {
		if names, err := net.DefaultResolver.LookupAddr(ctx, addrs[0]); err == nil {
			for _, name := range names {
				record.Names = append(record.Names, strings.TrimSuffix(name, "."))
			}
		}
	}

	return record, nil
}

// ConnectResult reports the outcome of a TCP connection probe.
type ConnectResult struct {
	OK         bool
	LocalAddr  string
	RemoteAddr string
	Elapsed    time.Duration
}

const connectTimeout = 2 * time.Second

// CheckConnect attempts a TCP connection to host:port and reports whether it
// succeeded along with both endpoints. Failure to connect is a result, not
// an error.
func CheckConnect(ctx context.Context, host string, port int) ConnectResult {
	start := time.Now()

	dialer := net.Dialer{Timeout: connectTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", net.JoinHostPort(host, strconv.Itoa(port)))
	if err != nil {
		return ConnectResult{Elapsed: time.Since(start)}
	}
	defer conn.Close()

	return ConnectResult{
		OK:         true,
		LocalAddr:  conn.LocalAddr().String(),
		RemoteAddr: conn.RemoteAddr().String(),
		Elapsed:    time.Since(start),
	}
}
