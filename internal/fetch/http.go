package fetch

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"path/filepath"
)

func (f *Fetcher) fetchHTTP(ctx context.Context, rawURL string) (*Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("server returned status %d for %s", resp.StatusCode, rawURL)
	}

	name := httpFilename(rawURL)
	outPath := filepath.Join(f.outputDir, name)

	n, err := f.writeStream(outPath, resp.Body, resp.ContentLength, name)
	if err != nil {
		return nil, err
	}

	f.log.Info().Str("url", rawURL).Str("path", outPath).Int64("bytes", n).Msg("download completed")

	return &Result{Path: outPath, Kind: KindHTTP, Bytes: n}, nil
}

// httpFilename derives a local file name from the URL path, ignoring any
// query string.
func httpFilename(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "download"
	}
	base := path.Base(u.Path)
	if base == "" || base == "/" || base == "." {
		return "download"
	}
	return base
}
