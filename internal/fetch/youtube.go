package fetch

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/kkdai/youtube/v2"
)

func (f *Fetcher) fetchYouTube(ctx context.Context, rawURL string, opts Options) (*Result, error) {
	client := youtube.Client{}

	video, err := client.GetVideoContext(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch video metadata: %w", err)
	}

	var format *youtube.Format
	if opts.Type == TypeAudio {
		format = bestAudioFormat(video.Formats)
	} else {
		format = f.bestVideoFormat(video.Formats, opts.Quality)
	}
	if format == nil {
		return nil, fmt.Errorf("no usable %s stream for %q", opts.Type, video.Title)
	}

	name := sanitizeTitle(video.Title)
	if name == "" {
		name = "video"
	}
	path := filepath.Join(f.outputDir, name+extensionForMime(format.MimeType))

	stream, size, err := client.GetStreamContext(ctx, video, format)
	if err != nil {
		return nil, fmt.Errorf("failed to open stream: %w", err)
	}
	defer stream.Close()

	n, err := f.writeStream(path, stream, size, name)
	if err != nil {
		return nil, err
	}

	f.log.Info().
		Str("title", video.Title).
		Str("quality", format.QualityLabel).
		Str("path", path).
		Int64("bytes", n).
		Msg("video downloaded")

	return &Result{Path: path, Kind: KindYouTube, Bytes: n, Title: video.Title}, nil
}

// bestVideoFormat prefers muxed streams so the file plays with sound. When
// the requested quality is missing it falls back to the best one available.
func (f *Fetcher) bestVideoFormat(list youtube.FormatList, quality string) *youtube.Format {
	candidates := list.Type("video").WithAudioChannels()
	if len(candidates) == 0 {
		candidates = list.Type("video")
	}

	if quality != "" && quality != "best" {
		label := quality
		if !strings.HasSuffix(label, "p") {
			label += "p"
		}
		if matched := candidates.Quality(label); len(matched) > 0 {
			candidates = matched
		} else {
			f.log.Warn().Str("quality", quality).Msg("requested quality unavailable, using best")
		}
	}

	var best *youtube.Format
	for i := range candidates {
		c := &candidates[i]
		if best == nil || c.Height > best.Height ||
			(c.Height == best.Height && c.Bitrate > best.Bitrate) {
			best = c
		}
	}
	return best
}

func bestAudioFormat(list youtube.FormatList) *youtube.Format {
	candidates := list.Type("audio")

	var best *youtube.Format
	for i := range candidates {
		c := &candidates[i]
		if best == nil || c.Bitrate > best.Bitrate {
			best = c
		}
	}
	return best
}

// extensionForMime maps a stream MIME type onto a file extension.
func extensionForMime(mimeType string) string {
	mt := mimeType
	if i := strings.Index(mt, ";"); i >= 0 {
		mt = mt[:i]
	}
	mt = strings.TrimSpace(mt)

	switch mt {
	case "video/mp4":
		return ".mp4"
	case "video/webm":
		return ".webm"
	case "audio/mp4":
		return ".m4a"
	case "audio/webm":
		return ".webm"
	}
	if i := strings.Index(mt, "/"); i >= 0 && i < len(mt)-1 {
		return "." + mt[i+1:]
	}
	return ".bin"
}
