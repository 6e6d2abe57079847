// Package qrgen renders QR codes as SVG or PNG files.
package qrgen

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/jellydator/validation"
	qrcode "github.com/skip2/go-qrcode"
)

// Output formats.
const (
	FormatSVG = "svg"
	FormatPNG = "png"
)

// Rendering defaults.
const (
	DefaultScale      = 8
	DefaultBorder     = 4
	DefaultForeground = "#003366"
	DefaultBackground = "#ffffff"
)

// Options controls how a code is rendered and where it is written.
type Options struct {
	Output     string // target file; empty derives a name from the content
	Format     string // svg or png; empty means svg
	Scale      int    // pixels per module; 0 means DefaultScale
	Border     int    // quiet zone width in modules
	Foreground string // hex color of the modules
	Background string // hex color behind them
}

// DefaultOptions mirrors the classic defaults: SVG, scale 8, border 4,
// dark blue on white.
func DefaultOptions() Options {
	return Options{
		Format:     FormatSVG,
		Scale:      DefaultScale,
		Border:     DefaultBorder,
		Foreground: DefaultForeground,
		Background: DefaultBackground,
	}
}

func (opts Options) Validate() error {
	err := validation.ValidateStruct(&opts,
		validation.Field(&opts.Format, validation.In(FormatSVG, FormatPNG)),
		validation.Field(&opts.Scale, validation.Min(0)),
		validation.Field(&opts.Border, validation.Min(0)),
	)
	if err != nil {
		return fmt.Errorf("invalid QR options: %w", err)
	}
	return nil
}

// OutputName derives a file stem from the encoded content: URLs become
// their host with dots replaced by underscores, anything else is "qrcode".
func OutputName(content string) string {
	if strings.HasPrefix(content, "http://") || strings.HasPrefix(content, "https://") {
		if u, err := url.Parse(content); err == nil && u.Host != "" {
			host := strings.ReplaceAll(u.Host, ".", "_")
			return strings.ReplaceAll(host, ":", "_")
		}
	}
	return "qrcode"
}

// Generate encodes content at the highest error correction level and writes
// the rendered code to disk, returning the file path.
func Generate(content string, opts Options) (string, error) {
	if content == "" {
		return "", errors.New("no content to encode")
	}

	opts.Format = strings.ToLower(opts.Format)
	if err := opts.Validate(); err != nil {
		return "", err
	}

	format := opts.Format
	if format == "" {
		format = FormatSVG
	}
	scale := opts.Scale
	if scale == 0 {
		scale = DefaultScale
	}
	foreground := opts.Foreground
	if foreground == "" {
		foreground = DefaultForeground
	}
	background := opts.Background
	if background == "" {
		background = DefaultBackground
	}

	filename := opts.Output
	if filename == "" {
		filename = OutputName(content)
	}
	if !strings.HasSuffix(strings.ToLower(filename), "."+format) {
		filename += "." + format
	}

	code, err := qrcode.New(content, qrcode.Highest)
	if err != nil {
		return "", fmt.Errorf("failed to encode content: %w", err)
	}
	// Bitmap must carry only the modules; the quiet zone is ours to draw.
	code.DisableBorder = true
	bitmap := code.Bitmap()

	var data []byte
	switch format {
	case FormatPNG:
		fg, err := parseHexColor(foreground)
		if err != nil {
			return "", err
		}
		bg, err := parseHexColor(background)
		if err != nil {
			return "", err
		}
		data, err = renderPNG(bitmap, scale, opts.Border, fg, bg)
		if err != nil {
			return "", err
		}
	default:
		if _, err := parseHexColor(foreground); err != nil {
			return "", err
		}
		if _, err := parseHexColor(background); err != nil {
			return "", err
		}
		data = renderSVG(bitmap, scale, opts.Border, foreground, background)
	}

	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return filename, nil
}

// renderSVG draws each row of dark modules as run-length merged rects.
func renderSVG(bitmap [][]bool, scale, border int, fg, bg string) []byte {
	size := (len(bitmap) + 2*border) * scale

	var b bytes.Buffer
	b.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	fmt.Fprintf(&b, "<svg xmlns=\"http://www.w3.org/2000/svg\" width=\"%d\" height=\"%d\" viewBox=\"0 0 %d %d\">\n", size, size, size, size)
	fmt.Fprintf(&b, "<rect width=\"%d\" height=\"%d\" fill=\"%s\"/>\n", size, size, bg)

	for y, row := range bitmap {
		for x := 0; x < len(row); {
			if !row[x] {
				x++
				continue
			}
			start := x
			for x < len(row) && row[x] {
				x++
			}
			fmt.Fprintf(&b, "<rect x=\"%d\" y=\"%d\" width=\"%d\" height=\"%d\" fill=\"%s\"/>\n",
				(start+border)*scale, (y+border)*scale, (x-start)*scale, scale, fg)
		}
	}

	b.WriteString("</svg>\n")
	return b.Bytes()
}

func renderPNG(bitmap [][]bool, scale, border int, fg, bg color.NRGBA) ([]byte, error) {
	size := (len(bitmap) + 2*border) * scale

	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: bg}, image.Point{}, draw.Src)

	for y, row := range bitmap {
		for x, dark := range row {
			if !dark {
				continue
			}
			cell := image.Rect((x+border)*scale, (y+border)*scale, (x+border+1)*scale, (y+border+1)*scale)
			draw.Draw(img, cell, &image.Uniform{C: fg}, image.Point{}, draw.Src)
		}
	}

	var b bytes.Buffer
	if err := png.Encode(&b, img); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return b.Bytes(), nil
}

func parseHexColor(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.NRGBA{}, fmt.Errorf("invalid color %q", s)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q", s)
	}

	return color.NRGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 255,
	}, nil
}
