// Package imgproc compresses, resizes and converts images.
package imgproc

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/jellydator/validation"
	"github.com/rs/zerolog"
)

// DefaultQuality is the JPEG quality used when none is set.
const DefaultQuality = 85

// DefaultExtensions are the file types picked up by directory processing.
var DefaultExtensions = []string{"jpg", "jpeg", "png"}

// ErrUnsupportedFormat is returned for output formats we cannot encode,
// notably webp.
var ErrUnsupportedFormat = errors.New("unsupported output format")

var supportedFormats = map[string]bool{
	"jpg":  true,
	"jpeg": true,
	"png":  true,
	"gif":  true,
	"bmp":  true,
	"tif":  true,
	"tiff": true,
}

// Options configures compression for a single image or a directory.
type Options struct {
	Output        string // output file (single image) or directory (batch)
	Quality       int    // JPEG quality 1-100; 0 means DefaultQuality
	ResizePercent int
	MaxWidth      int
	MaxHeight     int
	Format        string   // convert to this format; empty keeps the input format
	Recursive     bool     // batch mode only
	Extensions    []string // batch mode only; empty means DefaultExtensions
}

func (opts Options) Validate() error {
	err := validation.ValidateStruct(&opts,
		validation.Field(&opts.Quality, validation.Min(0), validation.Max(100)),
		validation.Field(&opts.ResizePercent, validation.Min(0)),
		validation.Field(&opts.MaxWidth, validation.Min(0)),
		validation.Field(&opts.MaxHeight, validation.Min(0)),
	)
	if err != nil {
		return fmt.Errorf("invalid image options: %w", err)
	}

	if opts.Format != "" && !supportedFormats[strings.ToLower(opts.Format)] {
		return fmt.Errorf("%q: %w", opts.Format, ErrUnsupportedFormat)
	}
	return nil
}

// Result reports one processed image.
type Result struct {
	Path            string
	OriginalBytes   int64
	CompressedBytes int64
}

// Reduction returns the size reduction as a percentage.
func (r *Result) Reduction() float64 {
	if r.OriginalBytes == 0 {
		return 0
	}
	return (1 - float64(r.CompressedBytes)/float64(r.OriginalBytes)) * 100
}

// DirStats reports a batch run.
type DirStats struct {
	Processed       int
	Failed          int
	OriginalBytes   int64
	CompressedBytes int64
}

func (s *DirStats) Reduction() float64 {
	if s.OriginalBytes == 0 {
		return 0
	}
	return (1 - float64(s.CompressedBytes)/float64(s.OriginalBytes)) * 100
}

// Compressor processes images.
type Compressor struct {
	log *zerolog.Logger
}

func New(log *zerolog.Logger) *Compressor {
	return &Compressor{log: log}
}

// Compress processes a single image. Without an explicit output the result
// is written next to the input as "<name>_compressed.<ext>". When Format is
// set the output extension always follows it.
func (c *Compressor) Compress(inputPath string, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	quality := opts.Quality
	if quality == 0 {
		quality = DefaultQuality
	}

	img, err := imaging.Open(inputPath, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}

	outputPath := opts.Output
	if outputPath == "" {
		outputPath = defaultOutputPath(inputPath)
	}
	if opts.Format != "" {
		ext := "." + strings.ToLower(opts.Format)
		outputPath = strings.TrimSuffix(outputPath, filepath.Ext(outputPath)) + ext
	}

	img = resizeImage(img, opts)

	if err := imaging.Save(img, outputPath, encodeOptions(outputPath, quality)...); err != nil {
		return nil, fmt.Errorf("failed to save image: %w", err)
	}

	origInfo, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}
	newInfo, err := os.Stat(outputPath)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Path:            outputPath,
		OriginalBytes:   origInfo.Size(),
		CompressedBytes: newInfo.Size(),
	}

	c.log.Debug().
		Str("input", inputPath).
		Str("output", outputPath).
		Int64("original_bytes", result.OriginalBytes).
		Int64("compressed_bytes", result.CompressedBytes).
		Msg("image processed")

	return result, nil
}

// CompressDir processes every matching image under a directory. Failures are
// counted but do not stop the batch.
func (c *Compressor) CompressDir(inputDir string, opts Options) (*DirStats, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	info, err := os.Stat(inputDir)
	if err != nil {
		return nil, fmt.Errorf("directory %q not found: %w", inputDir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%q is not a directory", inputDir)
	}

	outputDir := opts.Output
	if outputDir != "" {
		if err := os.MkdirAll(outputDir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	files, err := collectImages(inputDir, opts.Recursive, opts.Extensions)
	if err != nil {
		return nil, err
	}

	stats := &DirStats{}
	for _, path := range files {
		fileOpts := opts
		fileOpts.Output = ""
		if outputDir != "" {
			rel, err := filepath.Rel(inputDir, path)
			if err != nil {
				stats.Failed++
				continue
			}
			target := filepath.Join(outputDir, rel)
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				stats.Failed++
				continue
			}
			fileOpts.Output = target
		}

		result, err := c.Compress(path, fileOpts)
		if err != nil {
			c.log.Warn().Err(err).Str("path", path).Msg("failed to process image")
			stats.Failed++
			continue
		}

		stats.Processed++
		stats.OriginalBytes += result.OriginalBytes
		stats.CompressedBytes += result.CompressedBytes
	}

	c.log.Info().
		Str("dir", inputDir).
		Int("processed", stats.Processed).
		Int("failed", stats.Failed).
		Msg("directory processed")

	return stats, nil
}

func collectImages(dir string, recursive bool, extensions []string) ([]string, error) {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	wanted := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		wanted[strings.ToLower(strings.TrimPrefix(ext, "."))] = true
	}

	match := func(name string) bool {
		return wanted[strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))]
	}

	var files []string
	if recursive {
		err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && match(d.Name()) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to scan directory: %w", err)
		}
	} else {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("failed to read directory: %w", err)
		}
		for _, entry := range entries {
			if !entry.IsDir() && match(entry.Name()) {
				files = append(files, filepath.Join(dir, entry.Name()))
			}
		}
	}

	sort.Strings(files)
	return files, nil
}

func defaultOutputPath(inputPath string) string {
	ext := filepath.Ext(inputPath)
	stem := strings.TrimSuffix(filepath.Base(inputPath), ext)
	return filepath.Join(filepath.Dir(inputPath), stem+"_compressed"+ext)
}

// resizeImage applies the percentage resize first, then the bounding box.
// Bounds only ever shrink.
func resizeImage(img image.Image, opts Options) image.Image {
	if opts.ResizePercent > 0 && opts.ResizePercent != 100 {
		b := img.Bounds()
		w := b.Dx() * opts.ResizePercent / 100
		h := b.Dy() * opts.ResizePercent / 100
		if w > 0 && h > 0 {
			img = imaging.Resize(img, w, h, imaging.Lanczos)
		}
	}

	b := img.Bounds()
	switch {
	case opts.MaxWidth > 0 && opts.MaxHeight > 0:
		img = imaging.Fit(img, opts.MaxWidth, opts.MaxHeight, imaging.Lanczos)
	case opts.MaxWidth > 0 && b.Dx() > opts.MaxWidth:
		img = imaging.Resize(img, opts.MaxWidth, 0, imaging.Lanczos)
	case opts.MaxHeight > 0 && b.Dy() > opts.MaxHeight:
		img = imaging.Resize(img, 0, opts.MaxHeight, imaging.Lanczos)
	}

	return img
}

func encodeOptions(path string, quality int) []imaging.EncodeOption {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")) {
	case "jpg", "jpeg":
		return []imaging.EncodeOption{imaging.JPEGQuality(quality)}
	case "png":
		return []imaging.EncodeOption{imaging.PNGCompressionLevel(png.BestCompression)}
	}
	return nil
}
