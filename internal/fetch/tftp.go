package fetch

import (
	"errors"
	"fmt"
	"io"
	"net"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/pin/tftp/v3"
)

const tftpTimeout = 10 * time.Second

func (f *Fetcher) fetchTFTP(u *url.URL) (*Result, error) {
	addr := u.Host
	if u.Port() == "" {
		addr = net.JoinHostPort(u.Hostname(), "69")
	}

	remote := strings.TrimPrefix(u.Path, "/")
	if remote == "" {
		return nil, errors.New("TFTP URL has no file path")
	}

	client, err := tftp.NewClient(addr)
	if err != nil {
		return nil, fmt.Errorf("failed to create TFTP client: %w", err)
	}
	client.SetTimeout(tftpTimeout)
	client.RequestTSize(true)

	wt, err := client.Receive(remote, "octet")
	if err != nil {
		return nil, fmt.Errorf("failed to request %s from %s: %w", remote, addr, err)
	}

	// Transfer size is only known when the server honours the tsize option.
	size := int64(-1)
	if t, ok := wt.(tftp.IncomingTransfer); ok {
		if s, ok := t.Size(); ok && s > 0 {
			size = s
		}
	}

	name := path.Base(remote)
	outPath := filepath.Join(f.outputDir, name)

	out, err := os.Create(outPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", outPath, err)
	}

	bar := f.newBar(size, name)
	n, err := wt.WriteTo(io.MultiWriter(out, bar))
	bar.Finish()
	if err != nil {
		out.Close()
		return nil, fmt.Errorf("transfer of %s failed: %w", remote, err)
	}
	if err := out.Close(); err != nil {
		return nil, err
	}

	f.log.Info().Str("file", remote).Str("path", outPath).Int64("bytes", n).Msg("TFTP transfer completed")

	return &Result{Path: outPath, Kind: KindTFTP, Bytes: n}, nil
}
