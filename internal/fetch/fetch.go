// Package fetch downloads media and files from YouTube, TFTP and plain
// HTTP sources into a common output directory.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/jellydator/validation"
	"github.com/rs/zerolog"
	"github.com/schollz/progressbar/v3"
)

// Download kinds, by source.
const (
	KindYouTube = "youtube"
	KindTFTP    = "tftp"
	KindHTTP    = "http"
)

// YouTube download types.
const (
	TypeVideo = "video"
	TypeAudio = "audio"
)

// Options tunes a YouTube fetch; other sources ignore it.
type Options struct {
	Type    string // video or audio; empty means video
	Quality string // e.g. "720", "1080p" or "best"
}

func (opts Options) Validate() error {
	err := validation.ValidateStruct(&opts,
		validation.Field(&opts.Type, validation.In(TypeVideo, TypeAudio)),
	)
	if err != nil {
		return fmt.Errorf("invalid fetch options: %w", err)
	}
	return nil
}

// Result describes one completed download.
type Result struct {
	Path     string
	Kind     string
	Bytes    int64
	Title    string // set for YouTube downloads
	Duration time.Duration
}

// Fetcher downloads into outputDir, reporting progress on progress.
type Fetcher struct {
	log       *zerolog.Logger
	outputDir string
	progress  io.Writer
}

func New(log *zerolog.Logger, outputDir string) *Fetcher {
	if outputDir == "" {
		outputDir = "downloads"
	}
	return &Fetcher{
		log:       log,
		outputDir: outputDir,
		progress:  os.Stderr,
	}
}

// Fetch downloads rawURL, picking the backend from the URL: tftp:// goes
// over TFTP, YouTube hosts through the YouTube API, anything else http(s)
// as a plain download.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL %q: %w", rawURL, err)
	}

	if err := os.MkdirAll(f.outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	start := time.Now()

	var result *Result
	switch {
	case u.Scheme == "tftp":
		result, err = f.fetchTFTP(u)
	case isYouTube(u):
		result, err = f.fetchYouTube(ctx, rawURL, opts)
	case u.Scheme == "http" || u.Scheme == "https":
		result, err = f.fetchHTTP(ctx, rawURL)
	default:
		return nil, fmt.Errorf("unsupported URL scheme %q", u.Scheme)
	}
	if err != nil {
		return nil, err
	}

	result.Duration = time.Since(start)
	return result, nil
}

func isYouTube(u *url.URL) bool {
	host := strings.ToLower(u.Hostname())
	host = strings.TrimPrefix(host, "www.")
	host = strings.TrimPrefix(host, "m.")
	host = strings.TrimPrefix(host, "music.")
	return host == "youtube.com" || host == "youtu.be"
}

// writeStream copies r into path with a progress bar. A non-positive size
// shows a spinner instead of a percentage.
func (f *Fetcher) writeStream(path string, r io.Reader, size int64, desc string) (int64, error) {
	out, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create %s: %w", path, err)
	}

	bar := f.newBar(size, desc)
	n, err := io.Copy(io.MultiWriter(out, bar), r)
	bar.Finish()
	if err != nil {
		out.Close()
		return n, fmt.Errorf("download interrupted: %w", err)
	}
	if err := out.Close(); err != nil {
		return n, err
	}
	return n, nil
}

func (f *Fetcher) newBar(size int64, desc string) *progressbar.ProgressBar {
	if size <= 0 {
		size = -1
	}
	return progressbar.NewOptions64(size,
		progressbar.OptionSetDescription(desc),
		progressbar.OptionSetWriter(f.progress),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(30),
		progressbar.OptionClearOnFinish(),
	)
}

var unsafeChars = strings.NewReplacer(
	"/", "_", "\\", "_", ":", "_", "*", "_", "?", "_",
	"\"", "_", "<", "_", ">", "_", "|", "_",
)

// sanitizeTitle makes a video title safe to use as a file name.
func sanitizeTitle(title string) string {
	return strings.Trim(unsafeChars.Replace(title), " .")
}
